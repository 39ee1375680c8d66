package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для ошибок
бизнес-логики блога.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrUpstream - фабрика для ошибок внешних сервисов (медиа-хостинг, почта).
// 502, потому что сбой на нашей стороне шлюза, а не у клиента.
func ErrUpstream(err error, domain, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, message, http.StatusBadGateway)
}

// --- Auth ---

// ErrEmailAlreadyExists - email уже используется
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already exists!",
	http.StatusConflict,
)

// ErrUserNotRegistered - пользователь с таким email не зарегистрирован.
// Ответы логина различают "не зарегистрирован" и "неверный пароль".
var ErrUserNotRegistered = New(
	CodeNotFound,
	"auth",
	"User not registered",
	http.StatusNotFound,
)

// ErrIncorrectPassword - пароль не подошел
var ErrIncorrectPassword = New(
	CodeInvalidCredentials,
	"auth",
	"Incorrect password",
	http.StatusBadRequest,
)

// ErrUserNotVerified - email не подтвержден
var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"User not verified. Check your email to verify your account!",
	http.StatusForbidden,
)

// ErrInvalidToken - неверный или просроченный токен (session, verify, reset)
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrNotAnAdmin - аутентифицирован, но не админ
var ErrNotAnAdmin = New(
	CodeForbidden,
	"auth",
	"Not an Admin! User not authorized",
	http.StatusForbidden,
)

// ErrNoResetToken - сброс пароля не запрашивался
var ErrNoResetToken = New(
	CodeNotFound,
	"auth",
	"No reset token provided",
	http.StatusNotFound,
)

// ErrResetLinkExpired - ссылка сброса пароля невалидна или истекла
var ErrResetLinkExpired = New(
	CodeInvalidToken,
	"auth",
	"Link has expired!",
	http.StatusBadRequest,
)

// ErrPasswordsDoNotMatch - password и confirm_password не совпали
var ErrPasswordsDoNotMatch = New(
	CodeValidationFailed,
	"auth",
	"Passwords do not match",
	http.StatusBadRequest,
)

// ErrPreviousPassword - новый пароль совпадает со старым
var ErrPreviousPassword = New(
	CodeValidationFailed,
	"auth",
	"Can't use previous password!",
	http.StatusBadRequest,
)

// --- Content ---

// ErrNotPostAuthor - обновлять пост может только автор
var ErrNotPostAuthor = New(
	CodeForbidden,
	"post",
	"You are not allowed to update this post",
	http.StatusForbidden,
)

// ErrNotCommentAuthor - менять комментарий может только автор
var ErrNotCommentAuthor = New(
	CodeForbidden,
	"comment",
	"You are not allowed to modify this comment",
	http.StatusForbidden,
)

// --- Uploads ---

// ErrFileTooLarge - файл превышает максимальный размер
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrInvalidFileType - MIME-тип файла не разрешен
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"Only images (JPEG, PNG, GIF), PDFs, and DOC/DOCX files are allowed!",
	http.StatusUnsupportedMediaType,
)
