package email

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
)

// TemplateManager управляет HTML-шаблонами писем
type TemplateManager struct {
	templates map[string]*template.Template
}

// Встроенные шаблоны используются, когда директория с шаблонами
// не настроена или файл отсутствует.
var builtinTemplates = map[string]string{
	"verification": `<html><body>
<h2>Hi, {{.Username}}!</h2>
<p>Thanks for signing up. Please confirm your email address to activate your account.</p>
<p><a href="{{.VerifyURL}}">Verify your account</a></p>
<p>The link expires in 30 minutes. If you did not create an account, you can ignore this email.</p>
</body></html>`,
	"password_reset": `<html><body>
<h2>Hi, {{.Username}}!</h2>
<p>We received a request to reset your password.</p>
<p><a href="{{.ResetURL}}">Reset your password</a></p>
<p>The link expires in 15 minutes. If you did not request a reset, you can ignore this email.</p>
</body></html>`,
}

// NewTemplateManager создает менеджер шаблонов. Если templatePath указан,
// шаблоны из директории перекрывают встроенные.
func NewTemplateManager(templatePath string) (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	for name, text := range builtinTemplates {
		tpl, err := template.New(name).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse builtin template %s: %w", name, err)
		}
		tm.templates[name] = tpl
	}

	if templatePath != "" {
		if err := tm.loadFromDir(templatePath); err != nil {
			return nil, err
		}
	}

	return tm, nil
}

// loadFromDir загружает *.html шаблоны из директории
func (tm *TemplateManager) loadFromDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read template directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".html")
		tpl, err := template.ParseFiles(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		tm.templates[name] = tpl
	}

	return nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(name string, data TemplateData) (string, error) {
	tpl, ok := tm.templates[name]
	if !ok {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}

	return buf.String(), nil
}
