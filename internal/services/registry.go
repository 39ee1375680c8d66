package services

import (
	"blogapp_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService    AuthService
	UserService    UserService
	PostService    PostService
	CommentService CommentService
	UploadService  UploadService
	EmailService   email.Provider
}
