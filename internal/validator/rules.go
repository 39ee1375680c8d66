package validator

import (
	"log"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'username': имя пользователя - буквы, цифры, пробелы, '_', '-'
	mustRegister("username", validateUsername)

	// 'password-strength': минимальные требования к паролю
	mustRegister("password-strength", validatePasswordStrength)
}

// --- Функции валидации ---

func validateUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые проверяет 'required'
	}

	for _, r := range value {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) &&
			r != ' ' && r != '_' && r != '-' {
			return false
		}
	}
	return strings.TrimSpace(value) != ""
}

func validatePasswordStrength(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	var hasLetter, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return len(value) >= 8 && hasLetter && hasDigit
}
