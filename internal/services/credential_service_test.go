package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/testutil"
	"portfolio_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialService_FallbackOnlyWhenUnset(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewCredentialService(repositories.NewAdminRepository(), "fallback-secret")
	ctx := context.Background()

	for candidate, want := range map[string]bool{
		"fallback-secret":  true,
		"fallback-secret ": false,
		"wrong":            false,
		"":                 false,
	} {
		ok, err := svc.Verify(ctx, db, candidate)
		require.NoError(t, err)
		assert.Equal(t, want, ok, "candidate %q", candidate)
	}

	set, err := svc.IsSet(ctx, db)
	require.NoError(t, err)
	assert.False(t, set)
}

func TestCredentialService_EmptyFallbackNeverMatches(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewCredentialService(repositories.NewAdminRepository(), "")

	ok, err := svc.Verify(context.Background(), db, "")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Verify(context.Background(), db, "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialService_SetThenRotate(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewCredentialService(repositories.NewAdminRepository(), "fallback-secret")
	ctx := context.Background()

	// bootstrap без текущего пароля
	require.NoError(t, svc.SetPassword(ctx, db, "first-pass", nil))

	ok, err := svc.Verify(ctx, db, "first-pass")
	require.NoError(t, err)
	assert.True(t, ok)

	current := "first-pass"
	require.NoError(t, svc.SetPassword(ctx, db, "second-pass", &current))

	ok, err = svc.Verify(ctx, db, "second-pass")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Verify(ctx, db, "first-pass")
	require.NoError(t, err)
	assert.False(t, ok)

	// резервный пароль продолжает работать
	ok, err = svc.Verify(ctx, db, "fallback-secret")
	require.NoError(t, err)
	assert.True(t, ok)

	set, err := svc.IsSet(ctx, db)
	require.NoError(t, err)
	assert.True(t, set)
}

func TestCredentialService_WrongCurrentRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewCredentialService(repositories.NewAdminRepository(), "")
	ctx := context.Background()

	require.NoError(t, svc.SetPassword(ctx, db, "first-pass", nil))

	wrong := "nope"
	err := svc.SetPassword(ctx, db, "second-pass", &wrong)
	assert.ErrorIs(t, err, apperrors.ErrIncorrectCurrentSecret)

	ok, err := svc.Verify(ctx, db, "first-pass")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Verify(ctx, db, "second-pass")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialService_TooShort(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewCredentialService(repositories.NewAdminRepository(), "")

	err := svc.SetPassword(context.Background(), db, "12345", nil)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPCode)

	set, err := svc.IsSet(context.Background(), db)
	require.NoError(t, err)
	assert.False(t, set)
}

func TestCredentialService_TooLongForBcrypt(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewCredentialService(repositories.NewAdminRepository(), "")
	ctx := context.Background()

	require.NoError(t, svc.SetPassword(ctx, db, "first-pass", nil))

	// 40 рун, 80 байт
	err := svc.SetPassword(ctx, db, strings.Repeat("ж", 40), nil)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPCode)

	ok, err = svc.Verify(ctx, db, "first-pass")
	require.NoError(t, err)
	assert.True(t, ok)
}
