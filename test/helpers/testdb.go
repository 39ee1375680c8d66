package helpers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"blogapp_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser создает пользователя напрямую в базе.
// Сырой пароль хешируется, аккаунт по умолчанию верифицирован.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashed)
	}
	user.IsVerified = true

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, result.Error)
		return result.Error
	}
	return nil
}

// CreateAndLoginUser создает верифицированного пользователя и логинит
// его через API. Возвращает сессионный токен и объект пользователя.
func CreateAndLoginUser(t *testing.T, ts *TestServer, username, email, password string, isAdmin bool) (string, *models.User) {
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: password,
		IsAdmin:      isAdmin,
	}
	err := CreateUser(t, ts.DB, user)
	require.NoError(t, err, "Создание тестового пользователя не должно вызывать ошибку")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err, "Не удалось распарсить JSON")
	assert.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")

	return loginResponse.Token, user
}

// CreatePost создает пост напрямую в базе
func CreatePost(t *testing.T, db *gorm.DB, authorID, title, content string) *models.Post {
	post := &models.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}
	require.NoError(t, db.Create(post).Error, "Создание тестового поста не должно вызывать ошибку")
	return post
}
