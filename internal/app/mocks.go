package app

import (
	"portfolio_backend/internal/email"
	"portfolio_backend/internal/logger"
)

// MockEmailProvider используется для тестов и локальной разработки.
// Письма не отправляются, а пишутся в лог.
type MockEmailProvider struct {
	renderer email.TemplateRenderer
}

func NewMockEmailProvider(renderer email.TemplateRenderer) *MockEmailProvider {
	return &MockEmailProvider{renderer: renderer}
}

func (m *MockEmailProvider) Send(msg *email.Email) error {
	logger.Info("Email (not sent)",
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
	)
	return nil
}

func (m *MockEmailProvider) SendWithTemplate(templateName string, data email.TemplateData, msg *email.Email) error {
	if m.renderer != nil {
		body, err := m.renderer.Render(templateName, data)
		if err != nil {
			return err
		}
		msg.HTMLBody = body
	}
	return m.Send(msg)
}

func (m *MockEmailProvider) Validate() error { return nil }
func (m *MockEmailProvider) Close() error    { return nil }
