package services

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestSessionService(t *testing.T) (*sessionService, *gorm.DB) {
	db := testutil.NewTestDB(t)
	codec, err := auth.NewSessionTokenCodec([]byte("test-secret"))
	require.NoError(t, err)
	svc := NewSessionService(repositories.NewSessionRepository(), codec, time.Hour).(*sessionService)
	return svc, db
}

func TestSessionService_CreateAndDestroy(t *testing.T) {
	svc, db := newTestSessionService(t)
	ctx := context.Background()

	issued, err := svc.Create(ctx, db, dto.SessionMeta{IPAddress: "127.0.0.1", UserAgent: "test"})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)

	assert.True(t, svc.IsAuthenticated(ctx, db, issued.Token))
	loginTime := svc.GetLoginTime(ctx, db, issued.Token)
	require.NotNil(t, loginTime)
	assert.WithinDuration(t, issued.LoginTime, *loginTime, time.Second)
	assert.Equal(t, issued.SessionID, svc.SessionID(ctx, db, issued.Token))

	require.NoError(t, svc.Destroy(ctx, db, issued.Token))
	assert.False(t, svc.IsAuthenticated(ctx, db, issued.Token))
	assert.Nil(t, svc.GetLoginTime(ctx, db, issued.Token))

	// повторный destroy - no-op
	require.NoError(t, svc.Destroy(ctx, db, issued.Token))
}

func TestSessionService_Anonymous(t *testing.T) {
	svc, db := newTestSessionService(t)
	ctx := context.Background()

	assert.False(t, svc.IsAuthenticated(ctx, db, ""))
	assert.Nil(t, svc.GetLoginTime(ctx, db, ""))
	require.NoError(t, svc.Destroy(ctx, db, ""))
	require.NoError(t, svc.Destroy(ctx, db, "garbage"))

	// подпись чужим ключом
	other, err := auth.NewSessionTokenCodec([]byte("other"))
	require.NoError(t, err)
	issued, err := svc.Create(ctx, db, dto.SessionMeta{})
	require.NoError(t, err)
	forged, err := other.Sign(issued.SessionID, time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, svc.IsAuthenticated(ctx, db, forged))
	assert.True(t, svc.IsAuthenticated(ctx, db, issued.Token))
}

func TestSessionService_SessionsAreIndependent(t *testing.T) {
	svc, db := newTestSessionService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, db, dto.SessionMeta{})
	require.NoError(t, err)
	b, err := svc.Create(ctx, db, dto.SessionMeta{})
	require.NoError(t, err)
	assert.NotEqual(t, a.SessionID, b.SessionID)

	require.NoError(t, svc.Destroy(ctx, db, a.Token))
	assert.False(t, svc.IsAuthenticated(ctx, db, a.Token))
	assert.True(t, svc.IsAuthenticated(ctx, db, b.Token))
}

func TestSessionService_Expiry(t *testing.T) {
	svc, db := newTestSessionService(t)
	ctx := context.Background()

	issued, err := svc.Create(ctx, db, dto.SessionMeta{})
	require.NoError(t, err)

	// строка истекла раньше токена
	require.NoError(t, db.Model(&models.AdminSession{}).
		Where("id = ?", issued.SessionID).
		Update("expires_at", time.Now().UTC().Add(-time.Minute)).Error)

	assert.False(t, svc.IsAuthenticated(ctx, db, issued.Token))

	_, err = repositories.NewSessionRepository().FindByID(db, issued.SessionID)
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)
}

func TestSessionService_PurgeExpired(t *testing.T) {
	svc, db := newTestSessionService(t)
	ctx := context.Background()

	live, err := svc.Create(ctx, db, dto.SessionMeta{})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().UTC().Add(-2 * time.Hour) }
	_, err = svc.Create(ctx, db, dto.SessionMeta{})
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Now().UTC() }

	n, err := svc.PurgeExpired(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.True(t, svc.IsAuthenticated(ctx, db, live.Token))
}

func TestTruncate_KeepsRuneBoundary(t *testing.T) {
	// 2 байта на руну: 512 попадает в середину "ж"
	ua := "x" + strings.Repeat("ж", 300)
	got := truncate(ua, 512)
	assert.True(t, utf8.ValidString(got))
	assert.Len(t, got, 511)

	assert.Equal(t, "short", truncate("short", 512))
	assert.True(t, utf8.ValidString(truncate("bad\xffagent", 512)))
}

func TestSessionService_CreateWithLongMultibyteAgent(t *testing.T) {
	svc, db := newTestSessionService(t)
	ctx := context.Background()

	issued, err := svc.Create(ctx, db, dto.SessionMeta{UserAgent: "x" + strings.Repeat("ж", 300)})
	require.NoError(t, err)

	var row models.AdminSession
	require.NoError(t, db.First(&row, "id = ?", issued.SessionID).Error)
	assert.True(t, utf8.ValidString(row.UserAgent))
	assert.LessOrEqual(t, len(row.UserAgent), 512)
}
