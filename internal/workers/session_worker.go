package workers

import (
	"context"
	"time"

	"portfolio_backend/internal/logger"

	"gorm.io/gorm"
)

// SessionPurger - то, что умеет удалять просроченные сессии
type SessionPurger interface {
	PurgeExpired(ctx context.Context, db *gorm.DB) (int64, error)
}

type SessionWorker struct {
	db       *gorm.DB
	sessions SessionPurger
	interval time.Duration
}

func NewSessionWorker(db *gorm.DB, sessions SessionPurger, interval time.Duration) *SessionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionWorker{db: db, sessions: sessions, interval: interval}
}

// Start запускает периодическую чистку просроченных сессий
func (w *SessionWorker) Start(ctx context.Context) {
	go w.purgeExpiredSessions(ctx)
}

func (w *SessionWorker) purgeExpiredSessions(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *SessionWorker) runOnce(ctx context.Context) {
	purged, err := w.sessions.PurgeExpired(ctx, w.db)
	if err != nil {
		logger.Error("Error purging expired sessions", "error", err)
		return
	}
	if purged > 0 {
		logger.Info("Purged expired sessions", "count", purged)
	}
}
