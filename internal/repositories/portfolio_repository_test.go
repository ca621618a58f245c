package repositories_test

import (
	"testing"
	"time"

	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPortfolioRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPortfolioRepository()

	item := &models.PortfolioItem{
		Title:    "Sunset",
		Category: strPtr("Landscape"),
		FilePath: "portfolio/1_a.jpg",
		MimeType: strPtr("image/jpeg"),
	}
	require.NoError(t, repo.Create(db, item))
	assert.NotZero(t, item.ID)

	found, err := repo.FindByID(db, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sunset", found.Title)
	assert.Equal(t, "Landscape", *found.Category)
	assert.Nil(t, found.Description)
	assert.False(t, found.IsVideo)
}

func TestPortfolioRepository_FindMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPortfolioRepository()

	_, err := repo.FindByID(db, 999)
	assert.ErrorIs(t, err, repositories.ErrPortfolioItemNotFound)
}

func TestPortfolioRepository_ListAllNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPortfolioRepository()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		item := &models.PortfolioItem{Title: title, FilePath: "portfolio/" + title}
		item.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(db, item))
	}
	// одинаковое время создания - порядок по id
	tie := &models.PortfolioItem{Title: "tie", FilePath: "portfolio/tie"}
	tie.CreatedAt = base.Add(2 * time.Hour)
	require.NoError(t, repo.Create(db, tie))

	items, err := repo.ListAll(db)
	require.NoError(t, err)
	require.Len(t, items, 4)

	titles := make([]string, 0, len(items))
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	assert.Equal(t, []string{"tie", "third", "second", "first"}, titles)
}

func TestPortfolioRepository_UpdateClearsNullableFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPortfolioRepository()

	item := &models.PortfolioItem{
		Title:       "Old",
		Category:    strPtr("Wedding"),
		Description: strPtr("desc"),
		FilePath:    "portfolio/old.jpg",
	}
	require.NoError(t, repo.Create(db, item))

	item.Title = "New"
	item.Category = nil
	item.Description = nil
	item.FilePath = "portfolio/new.mp4"
	item.MimeType = strPtr("video/mp4")
	item.IsVideo = true
	require.NoError(t, repo.Update(db, item))

	found, err := repo.FindByID(db, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", found.Title)
	assert.Nil(t, found.Category)
	assert.Nil(t, found.Description)
	assert.Equal(t, "portfolio/new.mp4", found.FilePath)
	assert.True(t, found.IsVideo)
}

func TestPortfolioRepository_UpdateAndDeleteMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPortfolioRepository()

	err := repo.Update(db, &models.PortfolioItem{BaseModel: models.BaseModel{ID: 42}, Title: "x", FilePath: "p"})
	assert.ErrorIs(t, err, repositories.ErrPortfolioItemNotFound)

	err = repo.Delete(db, 42, "p")
	assert.ErrorIs(t, err, repositories.ErrPortfolioItemNotFound)
}

func TestPortfolioRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPortfolioRepository()

	item := &models.PortfolioItem{Title: "gone", FilePath: "portfolio/gone.jpg"}
	require.NoError(t, repo.Create(db, item))
	// строка уже ссылается на другой файл
	err := repo.Delete(db, item.ID, "portfolio/old.jpg")
	assert.ErrorIs(t, err, repositories.ErrPortfolioItemNotFound)
	_, err = repo.FindByID(db, item.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(db, item.ID, item.FilePath))

	_, err = repo.FindByID(db, item.ID)
	assert.ErrorIs(t, err, repositories.ErrPortfolioItemNotFound)
}
