package testutil

import (
	"fmt"
	"io"
	"testing"

	"portfolio_backend/database"
	"portfolio_backend/internal/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewTestDB - отдельная in-memory sqlite на каждый тест, с миграциями
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger.InitWithWriter("test", io.Discard)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.Options{
		Driver: "sqlite",
		DSN:    dsn,
		Env:    "test",
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}
