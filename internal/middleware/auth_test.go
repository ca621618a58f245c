package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCookies = auth.CookieConfig{Name: "portfolio_session", SameSite: http.SameSiteLaxMode}

func newGatedRouter(t *testing.T) (*gin.Engine, services.SessionService, *bool) {
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	codec, err := auth.NewSessionTokenCodec([]byte("secret"))
	require.NoError(t, err)
	sessions := services.NewSessionService(repositories.NewSessionRepository(), codec, time.Hour)

	reached := false
	r := gin.New()
	r.Use(DBMiddleware(db))
	r.POST("/protected", AdminAuthMiddleware(sessions, testCookies), func(c *gin.Context) {
		reached = true
		id, ok := GetSessionID(c)
		assert.True(t, ok)
		assert.NotEmpty(t, id)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/login", func(c *gin.Context) {
		issued, err := sessions.Create(c.Request.Context(), GetDB(c), dto.SessionMeta{})
		require.NoError(t, err)
		testCookies.SetSessionCookie(c, issued.Token, time.Hour)
		c.Status(http.StatusNoContent)
	})
	r.POST("/logout", func(c *gin.Context) {
		require.NoError(t, sessions.Destroy(c.Request.Context(), GetDB(c), testCookies.ReadSessionCookie(c)))
		c.Status(http.StatusNoContent)
	})

	return r, sessions, &reached
}

func doRequest(r http.Handler, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthMiddleware_RejectsAnonymous(t *testing.T) {
	r, _, reached := newGatedRouter(t)

	for name, cookie := range map[string]*http.Cookie{
		"no cookie":     nil,
		"empty cookie":  {Name: testCookies.Name, Value: ""},
		"garbage value": {Name: testCookies.Name, Value: "abc.def.ghi"},
	} {
		w := doRequest(r, "/protected", cookie)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Unauthenticated.", body["message"])
	}
	assert.False(t, *reached)
}

func TestAdminAuthMiddleware_SessionLifecycle(t *testing.T) {
	r, _, reached := newGatedRouter(t)

	login := doRequest(r, "/login", nil)
	require.Equal(t, http.StatusNoContent, login.Code)
	cookies := login.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)

	w := doRequest(r, "/protected", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *reached)

	*reached = false
	require.Equal(t, http.StatusNoContent, doRequest(r, "/logout", cookie).Code)

	w = doRequest(r, "/protected", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}

func TestAdminAuthMiddleware_ForeignSignature(t *testing.T) {
	r, _, reached := newGatedRouter(t)

	// cookie подписан другим ключом
	other, err := auth.NewSessionTokenCodec([]byte("other"))
	require.NoError(t, err)
	forged, err := other.Sign("whatever", time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	w := doRequest(r, "/protected", &http.Cookie{Name: testCookies.Name, Value: forged})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}
