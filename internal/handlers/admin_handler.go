package handlers

import (
	"net/http"

	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	credentials services.CredentialService
	sessions    services.SessionService
	cookies     auth.CookieConfig
}

func NewAdminHandler(base *BaseHandler, credentials services.CredentialService, sessions services.SessionService, cookies auth.CookieConfig) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		credentials: credentials,
		sessions:    sessions,
		cookies:     cookies,
	}
}

// RegisterRoutes регистрирует вход, выход и смену пароля.
// /user проверяет сессию сам: ему нужен ответ {authenticated:false}, а не общий 401.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, gate gin.HandlerFunc) {
	admin := rg.Group("/admin")
	{
		admin.POST("/login", h.Login)
		admin.POST("/logout", h.Logout)
		admin.POST("/change-password", gate, h.ChangePassword)
	}

	rg.GET("/user", h.CurrentUser)
}

// Login godoc
// @Summary Вход администратора
// @Description Проверяет пароль и выдает HttpOnly cookie сессии
// @Tags admin
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Пароль"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.MessageResponse "Invalid credentials"
// @Failure 422 {object} dto.MessageResponse "Validation failed"
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	ctx := c.Request.Context()
	db := h.GetDB(c)

	ok, err := h.credentials.Verify(ctx, db, req.Password)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !ok {
		logger.CtxWarn(ctx, "Failed admin login attempt", "ip", c.ClientIP())
		apperrors.HandleError(c, apperrors.ErrInvalidCredentials)
		return
	}

	// старая сессия этого браузера больше не нужна
	if previous := h.cookies.ReadSessionCookie(c); previous != "" {
		if err := h.sessions.Destroy(ctx, db, previous); err != nil {
			logger.CtxWarnWithError(ctx, "Failed to drop previous session", err)
		}
	}

	issued, err := h.sessions.Create(ctx, db, dto.SessionMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.cookies.SetSessionCookie(c, issued.Token, h.sessions.Lifetime())
	logger.CtxInfo(logger.WithSessionID(ctx, issued.SessionID), "Admin logged in", "ip", c.ClientIP())

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		User: dto.AdminUser{
			Role:          auth.RoleAdmin,
			Authenticated: true,
		},
	})
}

// Logout godoc
// @Summary Выход администратора
// @Description Уничтожает сессию (если она есть) и удаляет cookie
// @Tags admin
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if token := h.cookies.ReadSessionCookie(c); token != "" {
		if err := h.sessions.Destroy(ctx, h.GetDB(c), token); err != nil {
			h.HandleServiceError(c, err)
			return
		}
	}

	h.cookies.ClearSessionCookie(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// CurrentUser godoc
// @Summary Текущая сессия
// @Tags admin
// @Produce json
// @Success 200 {object} dto.CurrentUserResponse
// @Failure 401 {object} dto.CurrentUserResponse "authenticated=false"
// @Router /user [get]
func (h *AdminHandler) CurrentUser(c *gin.Context) {
	ctx := c.Request.Context()
	db := h.GetDB(c)
	token := h.cookies.ReadSessionCookie(c)

	if token == "" || !h.sessions.IsAuthenticated(ctx, db, token) {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, dto.CurrentUserResponse{
		Role:          auth.RoleAdmin,
		Authenticated: true,
		LoginTime:     h.sessions.GetLoginTime(ctx, db, token),
	})
}

// ChangePassword godoc
// @Summary Смена пароля администратора
// @Description current_password проверяется, только если пароль уже был задан и поле передано
// @Tags admin
// @Accept json
// @Produce json
// @Param body body dto.ChangePasswordRequest true "Пароли"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.MessageResponse "Unauthenticated."
// @Failure 422 {object} dto.MessageResponse "Validation failed / Current password is incorrect"
// @Router /admin/change-password [post]
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.credentials.SetPassword(ctx, h.GetDB(c), req.NewPassword, req.CurrentPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(ctx, "Admin password updated")
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated"})
}
