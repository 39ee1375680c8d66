package email

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}

// Email представляет структуру email сообщения
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendVerification отправляет письмо с ссылкой верификации аккаунта
	SendVerification(to string, username string, verifyURL string) error

	// SendPasswordReset отправляет письмо со ссылкой сброса пароля
	SendPasswordReset(to string, username string, resetURL string) error

	// Close закрывает соединение с провайдером
	Close() error
}
