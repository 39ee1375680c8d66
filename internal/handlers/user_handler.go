package handlers

import (
	"net/http"

	"blogapp_backend/internal/services"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// RegisterRoutes регистрирует маршруты пользователя.
// Группа rg уже защищена AuthMiddleware, админские маршруты
// дополнительно закрыты adminMW.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	rg.GET("/get-users", h.GetUsers)
	rg.GET("/get-all-users", h.GetAllUsers)
	rg.PUT("/update-user", h.UpdateUser)
	rg.DELETE("/delete-user", h.DeleteUser)
	rg.PUT("/profilePic", h.UploadProfilePic)

	admin := rg.Group("", adminMW)
	{
		admin.POST("/make-admin/:id", h.MakeAdmin)
	}
}

// GetUsers возвращает профиль владельца сессии
func (h *UserHandler) GetUsers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.userService.GetUser(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	resp, err := h.userService.GetAllUsers()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdateUser(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account deleted successfully"})
}

func (h *UserHandler) MakeAdmin(c *gin.Context) {
	resp, err := h.userService.MakeAdmin(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UploadProfilePic(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("File is required"))
		return
	}

	resp, err := h.userService.UploadProfilePicture(c.Request.Context(), userID, fileHeader)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
