package services

import (
	"portfolio_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	CredentialService CredentialService
	SessionService    SessionService
	PortfolioService  PortfolioService
	ContactService    ContactService
	EmailService      email.Provider
	Blobs             BlobStore
}
