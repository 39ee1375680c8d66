package email

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_BuiltinTemplates(t *testing.T) {
	tm, err := NewTemplateManager("")
	require.NoError(t, err)

	html, err := tm.Render("verification", TemplateData{
		"Username":  "alice",
		"VerifyURL": "http://localhost:8080/api/v1/verify/1/token",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "alice")
	assert.Contains(t, html, "http://localhost:8080/api/v1/verify/1/token")

	html, err = tm.Render("password_reset", TemplateData{
		"Username": "bob",
		"ResetURL": "http://localhost:3000/reset?token=abc",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "bob")
}

func TestTemplateManager_UnknownTemplate(t *testing.T) {
	tm, err := NewTemplateManager("")
	require.NoError(t, err)

	_, err = tm.Render("welcome", TemplateData{})
	assert.Error(t, err)
}

func TestTemplateManager_DirectoryOverride(t *testing.T) {
	dir := t.TempDir()
	custom := `<p>Custom for {{.Username}}</p>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "verification.html"), []byte(custom), 0o644))

	tm, err := NewTemplateManager(dir)
	require.NoError(t, err)

	html, err := tm.Render("verification", TemplateData{"Username": "carol"})
	require.NoError(t, err)
	assert.Equal(t, "<p>Custom for carol</p>", html)
}

func TestSMTPConfig_Validate(t *testing.T) {
	cfg := &SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "noreply@example.com"}
	assert.NoError(t, cfg.Validate())

	assert.Error(t, (&SMTPConfig{Port: 587, FromEmail: "a@b.c"}).Validate())
	assert.Error(t, (&SMTPConfig{Host: "h", Port: 0, FromEmail: "a@b.c"}).Validate())
	assert.Error(t, (&SMTPConfig{Host: "h", Port: 587}).Validate())
}
