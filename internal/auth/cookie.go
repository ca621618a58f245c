package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieConfig - параметры cookie сессии администратора
type CookieConfig struct {
	Name     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// ParseSameSite - "lax", "strict", "none"; все остальное считается lax
func ParseSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// SetSessionCookie выставляет HttpOnly cookie на весь сайт
func (cc CookieConfig) SetSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(cc.SameSite)
	c.SetCookie(cc.Name, token, int(ttl.Seconds()), "/", cc.Domain, cc.Secure, true)
}

// ClearSessionCookie просит браузер удалить cookie
func (cc CookieConfig) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(cc.SameSite)
	c.SetCookie(cc.Name, "", -1, "/", cc.Domain, cc.Secure, true)
}

// ReadSessionCookie - пустая строка, если cookie нет
func (cc CookieConfig) ReadSessionCookie(c *gin.Context) string {
	v, err := c.Cookie(cc.Name)
	if err != nil {
		return ""
	}
	return v
}
