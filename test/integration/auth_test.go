package integration_test

import (
	"net/http"
	"testing"
	"time"

	"blogapp_backend/internal/auth"
	"blogapp_backend/internal/models"
	"blogapp_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSignupAndUnverifiedLogin - регистрация проходит, но логин
// до подтверждения email отклоняется
func TestSignupAndUnverifiedLogin(t *testing.T) {
	ts := GetTestServer(t)

	signupBody := map[string]interface{}{
		"username":        "fresh_user",
		"email":           "fresh@test.com",
		"password":        "super_password123",
		"confirmPassword": "super_password123",
	}

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/signup", "", signupBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Contains(t, bodyStr, "Account created")

	loginBody := map[string]interface{}{
		"email":    "fresh@test.com",
		"password": "super_password123",
	}
	res, bodyStr = ts.SendRequest(t, "POST", "/api/v1/login", "", loginBody)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "User not verified")
}

// TestSignup_DuplicateEmail - повторная регистрация на тот же email
func TestSignup_DuplicateEmail(t *testing.T) {
	ts := GetTestServer(t)

	signupBody := map[string]interface{}{
		"username":        "dup_user",
		"email":           "dup@test.com",
		"password":        "super_password123",
		"confirmPassword": "super_password123",
	}

	res, _ := ts.SendRequest(t, "POST", "/api/v1/signup", "", signupBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	signupBody["username"] = "dup_user_2"
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/signup", "", signupBody)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, bodyStr, "Email already exists")
}

// TestSignup_PasswordMismatch - confirmPassword обязан совпадать
func TestSignup_PasswordMismatch(t *testing.T) {
	ts := GetTestServer(t)

	signupBody := map[string]interface{}{
		"username":        "mismatch_user",
		"email":           "mismatch@test.com",
		"password":        "super_password123",
		"confirmPassword": "another_password123",
	}

	res, _ := ts.SendRequest(t, "POST", "/api/v1/signup", "", signupBody)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

// TestLogin_NotRegistered и TestLogin_WrongPassword - сервис сознательно
// различает эти два отказа
func TestLogin_NotRegistered(t *testing.T) {
	ts := GetTestServer(t)

	loginBody := map[string]interface{}{
		"email":    "nobody@test.com",
		"password": "whatever123",
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/login", "", loginBody)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, bodyStr, "User not registered")
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := GetTestServer(t)

	user := &models.User{
		Username:     "wrongpw_user",
		Email:        "wrongpw@test.com",
		PasswordHash: "correct_password1",
	}
	require.NoError(t, helpers.CreateUser(t, ts.DB, user))

	loginBody := map[string]interface{}{
		"email":    "wrongpw@test.com",
		"password": "wrong_password1",
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/login", "", loginBody)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Incorrect password")
}

// TestVerifyFlow - подтверждение аккаунта по ссылке из письма
func TestVerifyFlow(t *testing.T) {
	ts := GetTestServer(t)

	signupBody := map[string]interface{}{
		"username":        "verify_user",
		"email":           "verify@test.com",
		"password":        "super_password123",
		"confirmPassword": "super_password123",
	}
	res, _ := ts.SendRequest(t, "POST", "/api/v1/signup", "", signupBody)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var user models.User
	require.NoError(t, ts.DB.First(&user, "email = ?", "verify@test.com").Error)
	assert.False(t, user.IsVerified)

	// Токен эквивалентен тому, что ушел в письме
	token, err := auth.GenerateToken(user.ID, false, 30*time.Minute)
	require.NoError(t, err)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/verify/"+user.ID+"/"+token, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "verified")

	loginBody := map[string]interface{}{
		"email":    "verify@test.com",
		"password": "super_password123",
	}
	res, bodyStr = ts.SendRequest(t, "POST", "/api/v1/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "token")
}

// TestVerify_TokenForAnotherUser - чужой токен не подтверждает аккаунт,
// вместо этого пользователю переотправляется новая ссылка
func TestVerify_TokenForAnotherUser(t *testing.T) {
	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/signup", "", map[string]interface{}{
		"username":        "victim_user",
		"email":           "victim@test.com",
		"password":        "Password123",
		"confirmPassword": "Password123",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var user models.User
	require.NoError(t, ts.DB.First(&user, "email = ?", "victim@test.com").Error)

	token, err := auth.GenerateToken("someone-else", false, 30*time.Minute)
	require.NoError(t, err)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/verify/"+user.ID+"/"+token, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "new link has been sent")

	// аккаунт остался неподтвержденным
	require.NoError(t, ts.DB.First(&user, "id = ?", user.ID).Error)
	assert.False(t, user.IsVerified)
}

// TestResetPasswordFlow - полный цикл сброса пароля
func TestResetPasswordFlow(t *testing.T) {
	ts := GetTestServer(t)

	user := &models.User{
		Username:     "reset_user",
		Email:        "reset@test.com",
		PasswordHash: "old_password123",
	}
	require.NoError(t, helpers.CreateUser(t, ts.DB, user))

	res, _ := ts.SendRequest(t, "POST", "/api/v1/forgot-password", "", map[string]interface{}{
		"email": "reset@test.com",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	// Токен сохранен на пользователе, в письме была та же строка
	var stored models.User
	require.NoError(t, ts.DB.First(&stored, "email = ?", "reset@test.com").Error)
	require.NotEmpty(t, stored.ResetToken)

	// Старый пароль повторно использовать нельзя
	res, bodyStr := ts.SendRequest(t, "PUT", "/api/v1/reset-password", "", map[string]interface{}{
		"token":           stored.ResetToken,
		"password":        "old_password123",
		"confirmPassword": "old_password123",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "previous password")

	res, _ = ts.SendRequest(t, "PUT", "/api/v1/reset-password", "", map[string]interface{}{
		"token":           stored.ResetToken,
		"password":        "new_password456",
		"confirmPassword": "new_password456",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Токен одноразовый
	res, _ = ts.SendRequest(t, "PUT", "/api/v1/reset-password", "", map[string]interface{}{
		"token":           stored.ResetToken,
		"password":        "yet_another_pw789",
		"confirmPassword": "yet_another_pw789",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// Старый пароль мертв, новый работает
	res, _ = ts.SendRequest(t, "POST", "/api/v1/login", "", map[string]interface{}{
		"email":    "reset@test.com",
		"password": "old_password123",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = ts.SendRequest(t, "POST", "/api/v1/login", "", map[string]interface{}{
		"email":    "reset@test.com",
		"password": "new_password456",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

// TestProtectedRoute_RequiresToken - без токена закрытые маршруты недоступны
func TestProtectedRoute_RequiresToken(t *testing.T) {
	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, "GET", "/api/v1/get-users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, "GET", "/api/v1/get-users", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestProtectedRoute_DeletedUser - токен удаленного аккаунта перестает работать
func TestProtectedRoute_DeletedUser(t *testing.T) {
	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginUser(t, ts, "shortlived", "shortlived@test.com", "super_password123", false)

	res, _ := ts.SendRequest(t, "GET", "/api/v1/get-users", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, "DELETE", "/api/v1/delete-user", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	// Подпись токена все еще валидна, но пользователя больше нет
	res, _ = ts.SendRequest(t, "GET", "/api/v1/get-users", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	var count int64
	ts.DB.Model(&models.User{}).Where("id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

// TestSignout - выход затирает сохраненный маркер сброса пароля
func TestSignout(t *testing.T) {
	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginUser(t, ts, "signout_user", "signout@test.com", "super_password123", false)

	// запрос сброса оставляет маркер на пользователе
	res, _ := ts.SendRequest(t, "POST", "/api/v1/forgot-password", "", map[string]interface{}{
		"email": "signout@test.com",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var stored models.User
	require.NoError(t, ts.DB.First(&stored, "id = ?", user.ID).Error)
	require.NotEmpty(t, stored.ResetToken)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/signout", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Signed out")

	require.NoError(t, ts.DB.First(&stored, "id = ?", user.ID).Error)
	assert.Empty(t, stored.ResetToken)
}
