package routes

import (
	"blogapp_backend/internal/handlers"
	"blogapp_backend/internal/middleware"
	"blogapp_backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты под /api/v1.
// Публичные: регистрация, верификация, вход, сброс пароля,
// чтение постов, выдача файлов.
// Все остальное требует сессии, админские маршруты закрыты отдельно.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	userRepo repositories.UserRepository,
) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.FileHandler.RegisterRoutes(api)
	}

	protected := api.Group("", middleware.AuthMiddleware(userRepo))
	{
		appHandlers.AuthHandler.RegisterProtectedRoutes(protected)
		appHandlers.UserHandler.RegisterRoutes(protected, middleware.AdminMiddleware())
		appHandlers.CommentHandler.RegisterRoutes(protected)
	}

	appHandlers.PostHandler.RegisterRoutes(api, protected)
}
