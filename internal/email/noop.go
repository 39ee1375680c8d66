package email

import (
	"log/slog"

	"blogapp_backend/internal/logger"
)

// NoopProvider логирует письма вместо отправки.
// Используется в тестах и при незаполненной SMTP конфигурации.
type NoopProvider struct{}

// NewNoopProvider создает noop провайдер
func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(email *Email) error {
	logger.GetLogger().Info("email send skipped",
		slog.Any("to", email.To),
		slog.String("subject", email.Subject))
	return nil
}

func (p *NoopProvider) SendVerification(to string, username string, verifyURL string) error {
	logger.GetLogger().Info("verification email skipped",
		slog.String("to", to),
		slog.String("verify_url", verifyURL))
	return nil
}

func (p *NoopProvider) SendPasswordReset(to string, username string, resetURL string) error {
	logger.GetLogger().Info("password reset email skipped",
		slog.String("to", to),
		slog.String("reset_url", resetURL))
	return nil
}

func (p *NoopProvider) Close() error {
	return nil
}
