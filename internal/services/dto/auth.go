package dto

// SignupRequest - запрос регистрации
type SignupRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=30,username"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,password-strength"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest - запрос ссылки сброса пароля
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest - установка нового пароля по токену из письма
type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,password-strength"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// AuthResponse - ответ после входа
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MessageResponse - простой ответ с текстом
type MessageResponse struct {
	Message string `json:"message"`
}
