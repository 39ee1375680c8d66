package auth

import (
	"errors"
	"time"

	"blogapp_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoSecret - секрет подписи не задан в конфигурации.
	// Это ошибка конфигурации процесса, а не запроса.
	ErrNoSecret = errors.New("jwt secret is not configured")

	// ErrInvalidToken - единый результат любой неудачной проверки токена.
	// Подделка, истечение срока и мусор на входе неразличимы для
	// вызывающего: текст ошибки не должен подсказывать, что именно не так.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims - утверждения сессионного/ссылочного токена
type Claims struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken выпускает подписанный HS256 токен на userID.
// ttl задается вызывающим: часы для сессии, минуты для ссылок
// верификации и сброса пароля.
func GenerateToken(userID string, isAdmin bool, ttl time.Duration) (string, error) {
	secret := config.GetConfig().JWT.Secret
	if secret == "" {
		return "", ErrNoSecret
	}

	now := time.Now()
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись и срок действия токена.
// Любая причина отказа сворачивается в ErrInvalidToken.
func ParseToken(tokenStr string) (*Claims, error) {
	secret := config.GetConfig().JWT.Secret
	if secret == "" {
		return nil, ErrNoSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
