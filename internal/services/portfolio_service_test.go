package services

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/testutil"
	"portfolio_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func upload(name, mime, content string) *dto.FileUpload {
	return &dto.FileUpload{
		Filename: name,
		MimeType: mime,
		Size:     int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func str(s string) *string { return &s }

type portfolioFixture struct {
	db    *gorm.DB
	repo  *flakyPortfolioRepo
	blobs *memBlobStore
	svc   PortfolioService
}

func newPortfolioFixture(t *testing.T) *portfolioFixture {
	db := testutil.NewTestDB(t)
	repo := &flakyPortfolioRepo{PortfolioRepository: repositories.NewPortfolioRepository()}
	blobs := newMemBlobStore()
	return &portfolioFixture{
		db:    db,
		repo:  repo,
		blobs: blobs,
		svc:   NewPortfolioService(repo, blobs),
	}
}

func (f *portfolioFixture) mustCreate(t *testing.T, name, mime string) *dto.PortfolioItemResponse {
	resp, err := f.svc.Create(context.Background(), f.db, &dto.CreatePortfolioRequest{File: upload(name, mime, "data-"+name)})
	require.NoError(t, err)
	return resp
}

func (f *portfolioFixture) row(t *testing.T, id string) *models.PortfolioItem {
	n, err := strconv.ParseUint(id, 10, 64)
	require.NoError(t, err)
	item, err := f.repo.FindByID(f.db, uint(n))
	require.NoError(t, err)
	return item
}

func TestPortfolioService_CreateDefaults(t *testing.T) {
	f := newPortfolioFixture(t)

	resp := f.mustCreate(t, "beach.jpg", "image/jpeg")

	assert.Equal(t, "beach.jpg", resp.Title)
	require.NotNil(t, resp.Category)
	assert.Equal(t, "Other", *resp.Category)
	assert.Nil(t, resp.Description)
	require.NotNil(t, resp.ImageURL)
	assert.Nil(t, resp.VideoURL)

	item := f.row(t, resp.ID)
	assert.Equal(t, "http://files.test/"+item.FilePath, *resp.ImageURL)
	assert.True(t, strings.HasPrefix(item.FilePath, "portfolio/"))
	assert.Equal(t, "image/jpeg", *item.MimeType)
	assert.Equal(t, int64(len("data-beach.jpg")), *item.Size)

	exists, _ := f.blobs.Exists(context.Background(), item.FilePath)
	assert.True(t, exists)
}

func TestPortfolioService_CreateVideoWithFields(t *testing.T) {
	f := newPortfolioFixture(t)

	resp, err := f.svc.Create(context.Background(), f.db, &dto.CreatePortfolioRequest{
		Title:       str("Reel"),
		Category:    str("Wedding"),
		Description: str("Highlights"),
		File:        upload("reel.mp4", "video/mp4", "mp4bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Reel", resp.Title)
	assert.Equal(t, "Wedding", *resp.Category)
	assert.Equal(t, "Highlights", *resp.Description)
	assert.Nil(t, resp.ImageURL)
	require.NotNil(t, resp.VideoURL)
	assert.True(t, f.row(t, resp.ID).IsVideo)
}

func TestPortfolioService_CreateSniffsMissingMime(t *testing.T) {
	f := newPortfolioFixture(t)

	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00"
	resp, err := f.svc.Create(context.Background(), f.db, &dto.CreatePortfolioRequest{File: upload("pixel.png", "", png)})
	require.NoError(t, err)

	item := f.row(t, resp.ID)
	assert.Equal(t, "image/png", *item.MimeType)
	assert.Equal(t, []byte(png), f.blobs.blobs[item.FilePath])
}

func TestPortfolioService_CreateFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		f := newPortfolioFixture(t)
		_, err := f.svc.Create(ctx, f.db, &dto.CreatePortfolioRequest{Title: str("x")})
		assert.ErrorIs(t, err, apperrors.ErrFileMissing)
	})

	t.Run("unreadable file", func(t *testing.T) {
		f := newPortfolioFixture(t)
		file := upload("a.jpg", "image/jpeg", "x")
		file.Open = func() (io.ReadCloser, error) { return nil, errBoom }

		_, err := f.svc.Create(ctx, f.db, &dto.CreatePortfolioRequest{File: file})
		assert.ErrorIs(t, err, apperrors.ErrFileInvalid)
		assert.Empty(t, f.blobs.refs())
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newPortfolioFixture(t)
		f.blobs.putErr = errBoom

		_, err := f.svc.Create(ctx, f.db, &dto.CreatePortfolioRequest{File: upload("a.jpg", "image/jpeg", "x")})
		assert.ErrorIs(t, err, apperrors.ErrStorageFailed)

		items, err := f.svc.List(ctx, f.db)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("insert failure removes the new blob", func(t *testing.T) {
		f := newPortfolioFixture(t)
		f.repo.createErr = errBoom

		_, err := f.svc.Create(ctx, f.db, &dto.CreatePortfolioRequest{File: upload("a.jpg", "image/jpeg", "x")})
		assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
		assert.Empty(t, f.blobs.refs())
	})
}

func TestPortfolioService_ReplaceFile(t *testing.T) {
	f := newPortfolioFixture(t)
	ctx := context.Background()

	created := f.mustCreate(t, "old.jpg", "image/jpeg")
	oldRef := f.row(t, created.ID).FilePath

	resp, err := f.svc.Replace(ctx, f.db, created.ID, &dto.UpdatePortfolioRequest{
		File: upload("new.mp4", "video/mp4", "new"),
	})
	require.NoError(t, err)

	item := f.row(t, created.ID)
	assert.NotEqual(t, oldRef, item.FilePath)
	assert.Equal(t, []string{item.FilePath}, f.blobs.refs())
	assert.True(t, item.IsVideo)
	assert.Equal(t, "old.jpg", resp.Title)
	require.NotNil(t, resp.VideoURL)
	assert.Nil(t, resp.ImageURL)
}

func TestPortfolioService_ReplaceMetadataOnly(t *testing.T) {
	f := newPortfolioFixture(t)
	ctx := context.Background()

	created := f.mustCreate(t, "a.jpg", "image/jpeg")
	ref := f.row(t, created.ID).FilePath

	resp, err := f.svc.Replace(ctx, f.db, created.ID, &dto.UpdatePortfolioRequest{
		Title:       str("Renamed"),
		Category:    str(""),
		Description: str("now described"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", resp.Title)
	assert.Nil(t, resp.Category)
	assert.Equal(t, "now described", *resp.Description)

	item := f.row(t, created.ID)
	assert.Equal(t, ref, item.FilePath)
	assert.Equal(t, []string{ref}, f.blobs.refs())
}

func TestPortfolioService_ReplaceUpdateFailureKeepsOldState(t *testing.T) {
	f := newPortfolioFixture(t)
	ctx := context.Background()

	created := f.mustCreate(t, "old.jpg", "image/jpeg")
	before := f.row(t, created.ID)

	f.repo.updateErr = errBoom
	_, err := f.svc.Replace(ctx, f.db, created.ID, &dto.UpdatePortfolioRequest{
		Title: str("changed"),
		File:  upload("new.jpg", "image/jpeg", "new"),
	})
	assert.ErrorIs(t, err, apperrors.ErrUpdateFailed)

	after := f.row(t, created.ID)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.FilePath, after.FilePath)
	// старый файл на месте, новый убран
	assert.Equal(t, []string{before.FilePath}, f.blobs.refs())
}

func TestPortfolioService_ReplaceStorageFailureKeepsOldState(t *testing.T) {
	f := newPortfolioFixture(t)
	ctx := context.Background()

	created := f.mustCreate(t, "old.jpg", "image/jpeg")
	before := f.row(t, created.ID)

	f.blobs.putErr = errBoom
	_, err := f.svc.Replace(ctx, f.db, created.ID, &dto.UpdatePortfolioRequest{
		Title: str("changed"),
		File:  upload("new.jpg", "image/jpeg", "new"),
	})
	assert.ErrorIs(t, err, apperrors.ErrStorageFailed)

	after := f.row(t, created.ID)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, []string{before.FilePath}, f.blobs.refs())
}

func TestPortfolioService_ReplaceRacingRemove(t *testing.T) {
	f := newPortfolioFixture(t)
	ctx := context.Background()

	created := f.mustCreate(t, "old.jpg", "image/jpeg")
	oldRef := f.row(t, created.ID).FilePath

	// запись исчезает между чтением и обновлением
	f.repo.beforeUpdate = func(db *gorm.DB, item *models.PortfolioItem) {
		require.NoError(t, db.Delete(&models.PortfolioItem{}, item.ID).Error)
	}

	_, err := f.svc.Replace(ctx, f.db, created.ID, &dto.UpdatePortfolioRequest{
		File: upload("new.jpg", "image/jpeg", "new"),
	})
	assert.ErrorIs(t, err, apperrors.ErrPortfolioNotFound)

	// новый файл убран, остался только старый
	assert.Equal(t, []string{oldRef}, f.blobs.refs())
}

func TestPortfolioService_ReplaceNotFound(t *testing.T) {
	f := newPortfolioFixture(t)
	ctx := context.Background()

	for _, id := range []string{"999", "abc", "0", ""} {
		_, err := f.svc.Replace(ctx, f.db, id, &dto.UpdatePortfolioRequest{File: upload("a.jpg", "image/jpeg", "x")})
		assert.ErrorIs(t, err, apperrors.ErrPortfolioNotFound, id)
	}
	assert.Empty(t, f.blobs.refs())
}

func TestPortfolioService_Remove(t *testing.T) {
	f := newPortfolioFixture(t)
	ctx := context.Background()

	created := f.mustCreate(t, "a.jpg", "image/jpeg")

	require.NoError(t, f.svc.Remove(ctx, f.db, created.ID))
	assert.Empty(t, f.blobs.refs())

	items, err := f.svc.List(ctx, f.db)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, f.svc.Remove(ctx, f.db, created.ID), apperrors.ErrPortfolioNotFound)
}

func TestPortfolioService_RemoveBlobFailureKeepsRecord(t *testing.T) {
	f := newPortfolioFixture(t)
	ctx := context.Background()

	created := f.mustCreate(t, "a.jpg", "image/jpeg")
	f.blobs.deleteErr = errBoom

	err := f.svc.Remove(ctx, f.db, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrDeleteFailed)

	item := f.row(t, created.ID)
	exists, _ := f.blobs.Exists(ctx, item.FilePath)
	assert.True(t, exists)
}

func TestPortfolioService_RemoveRowFailureAfterBlob(t *testing.T) {
	f := newPortfolioFixture(t)
	ctx := context.Background()

	created := f.mustCreate(t, "a.jpg", "image/jpeg")
	f.repo.deleteErr = errBoom

	err := f.svc.Remove(ctx, f.db, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrDeleteFailed)
	assert.True(t, errors.Is(err, errBoom))
}

func TestPortfolioService_RemoveRacingReplace(t *testing.T) {
	f := newPortfolioFixture(t)
	ctx := context.Background()

	created := f.mustCreate(t, "old.jpg", "image/jpeg")

	// параллельная замена файла между удалением файла и удалением строки
	swapped := false
	f.repo.beforeDelete = func(db *gorm.DB, id uint) {
		if swapped {
			return
		}
		swapped = true
		ref, err := f.blobs.Put(ctx, strings.NewReader("new"), "new.jpg", "portfolio", "image/jpeg")
		require.NoError(t, err)
		require.NoError(t, db.Model(&models.PortfolioItem{}).Where("id = ?", id).Update("file_path", ref).Error)
	}

	require.NoError(t, f.svc.Remove(ctx, f.db, created.ID))
	assert.True(t, swapped)

	// ни строки, ни осиротевшего нового файла
	assert.Empty(t, f.blobs.refs())
	items, err := f.svc.List(ctx, f.db)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPortfolioService_RemoveRacingRemove(t *testing.T) {
	f := newPortfolioFixture(t)
	ctx := context.Background()

	created := f.mustCreate(t, "a.jpg", "image/jpeg")

	f.repo.beforeDelete = func(db *gorm.DB, id uint) {
		require.NoError(t, db.Delete(&models.PortfolioItem{}, id).Error)
	}

	err := f.svc.Remove(ctx, f.db, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPortfolioNotFound)
	assert.Empty(t, f.blobs.refs())
}

func TestPortfolioService_ListNewestFirst(t *testing.T) {
	f := newPortfolioFixture(t)
	ctx := context.Background()

	first := f.mustCreate(t, "1.jpg", "image/jpeg")
	second := f.mustCreate(t, "2.mp4", "video/mp4")

	items, err := f.svc.List(ctx, f.db)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)

	for _, it := range items {
		assert.True(t, (it.ImageURL == nil) != (it.VideoURL == nil))
	}
}
