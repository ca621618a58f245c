package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// SessionService - серверные сессии администратора.
// Токен = подписанное значение cookie, внутри только id сессии.
type SessionService interface {
	Create(ctx context.Context, db *gorm.DB, meta dto.SessionMeta) (*dto.IssuedSession, error)
	IsAuthenticated(ctx context.Context, db *gorm.DB, token string) bool
	// GetLoginTime - nil для анонимной сессии
	GetLoginTime(ctx context.Context, db *gorm.DB, token string) *time.Time
	// SessionID - id живой аутентифицированной сессии или ""
	SessionID(ctx context.Context, db *gorm.DB, token string) string
	// Destroy идемпотентен, битый или пустой токен - не ошибка
	Destroy(ctx context.Context, db *gorm.DB, token string) error
	PurgeExpired(ctx context.Context, db *gorm.DB) (int64, error)
	Lifetime() time.Duration
}

type sessionService struct {
	sessionRepo repositories.SessionRepository
	codec       *auth.SessionTokenCodec
	lifetime    time.Duration
	now         func() time.Time
}

func NewSessionService(sessionRepo repositories.SessionRepository, codec *auth.SessionTokenCodec, lifetime time.Duration) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		codec:       codec,
		lifetime:    lifetime,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *sessionService) Lifetime() time.Duration {
	return s.lifetime
}

func (s *sessionService) Create(ctx context.Context, db *gorm.DB, meta dto.SessionMeta) (*dto.IssuedSession, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("generate session id: %w", err))
	}

	now := s.now()
	session := &models.AdminSession{
		ID:            id,
		Authenticated: true,
		LoginTime:     &now,
		ExpiresAt:     now.Add(s.lifetime),
		IPAddress:     meta.IPAddress,
		UserAgent:     truncate(meta.UserAgent, 512),
	}

	if err := s.sessionRepo.Create(db.WithContext(ctx), session); err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("store session: %w", err))
	}

	token, err := s.codec.Sign(id, now, session.ExpiresAt)
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("sign session: %w", err))
	}

	return &dto.IssuedSession{
		Token:     token,
		SessionID: id,
		LoginTime: now,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *sessionService) IsAuthenticated(ctx context.Context, db *gorm.DB, token string) bool {
	session := s.resolve(ctx, db, token)
	return session != nil && session.Authenticated
}

func (s *sessionService) GetLoginTime(ctx context.Context, db *gorm.DB, token string) *time.Time {
	session := s.resolve(ctx, db, token)
	if session == nil || !session.Authenticated {
		return nil
	}
	return session.LoginTime
}

func (s *sessionService) SessionID(ctx context.Context, db *gorm.DB, token string) string {
	session := s.resolve(ctx, db, token)
	if session == nil || !session.Authenticated {
		return ""
	}
	return session.ID
}

func (s *sessionService) Destroy(ctx context.Context, db *gorm.DB, token string) error {
	if token == "" {
		return nil
	}

	// для поддельного или истекшего токена удалять нечего,
	// истекшие записи подчищает PurgeExpired
	id, err := s.codec.Parse(token)
	if err != nil {
		return nil
	}

	if err := s.sessionRepo.Delete(db.WithContext(ctx), id); err != nil {
		return apperrors.InternalError(fmt.Errorf("delete session: %w", err))
	}
	return nil
}

func (s *sessionService) PurgeExpired(ctx context.Context, db *gorm.DB) (int64, error) {
	n, err := s.sessionRepo.DeleteExpired(db.WithContext(ctx), s.now())
	if err != nil {
		return 0, apperrors.InternalError(fmt.Errorf("purge sessions: %w", err))
	}
	return n, nil
}

// resolve - nil для пустого, поддельного, неизвестного или истекшего токена
func (s *sessionService) resolve(ctx context.Context, db *gorm.DB, token string) *models.AdminSession {
	if token == "" {
		return nil
	}

	id, err := s.codec.Parse(token)
	if err != nil {
		return nil
	}

	session, err := s.sessionRepo.FindByID(db.WithContext(ctx), id)
	if err != nil {
		if !errors.Is(err, repositories.ErrSessionNotFound) {
			logger.CtxWithError(ctx, "Failed to load session", err)
		}
		return nil
	}

	if session.IsExpired(s.now()) {
		if err := s.sessionRepo.Delete(db.WithContext(ctx), session.ID); err != nil {
			logger.CtxWarnWithError(ctx, "Failed to delete expired session", err)
		}
		return nil
	}

	return session
}

// generateSessionID - 32 случайных байта в hex
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// truncate режет до n байт по границе руны; битые байты заменяются
func truncate(s string, n int) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
