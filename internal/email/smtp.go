package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig конфигурация SMTP провайдера
type SMTPConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	FromEmail    string
	FromName     string
	TemplatePath string
}

// Validate проверяет валидность конфигурации
func (c *SMTPConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", c.Port)
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	config    *SMTPConfig
	dialer    *gomail.Dialer
	templates *TemplateManager
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(config *SMTPConfig) (*SMTPProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	tm, err := NewTemplateManager(config.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create template manager: %w", err)
	}

	return &SMTPProvider{
		config:    config,
		dialer:    gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		templates: tm,
	}, nil
}

// Send отправляет email сообщение
func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// sendTemplate рендерит шаблон и отправляет письмо
func (p *SMTPProvider) sendTemplate(to string, subject string, templateName string, data TemplateData) error {
	html, err := p.templates.Render(templateName, data)
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: html,
	})
}

// SendVerification отправляет письмо с ссылкой верификации аккаунта
func (p *SMTPProvider) SendVerification(to string, username string, verifyURL string) error {
	return p.sendTemplate(to, "Verify your account", "verification", TemplateData{
		"Username":  username,
		"VerifyURL": verifyURL,
	})
}

// SendPasswordReset отправляет письмо со ссылкой сброса пароля
func (p *SMTPProvider) SendPasswordReset(to string, username string, resetURL string) error {
	return p.sendTemplate(to, "Reset your password", "password_reset", TemplateData{
		"Username": username,
		"ResetURL": resetURL,
	})
}

// Close закрывает соединение с провайдером
func (p *SMTPProvider) Close() error {
	return nil
}
