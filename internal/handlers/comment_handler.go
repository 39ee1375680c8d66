package handlers

import (
	"fmt"
	"net/http"

	"blogapp_backend/internal/services"
	"blogapp_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	*BaseHandler
	commentService services.CommentService
}

func NewCommentHandler(base *BaseHandler, commentService services.CommentService) *CommentHandler {
	return &CommentHandler{
		BaseHandler: base,
		commentService: commentService,
	}
}

// RegisterRoutes регистрирует маршруты комментариев, лайков и репостов.
// Группа rg уже защищена AuthMiddleware. В маршрутах комментария :id -
// идентификатор комментария, в остальных - поста.
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	comment := rg.Group("/comment")
	{
		comment.POST("/add-comment/:id", h.AddComment)
		comment.GET("/view-comments/:id", h.ViewComments)
		comment.GET("/view-comment/:id", h.ViewComment)
		comment.PUT("/update-comment/:id", h.UpdateComment)
		comment.DELETE("/delete-comment/:id", h.DeleteComment)
		comment.DELETE("/delete-comments/:id", h.DeleteComments)
		comment.POST("/like-post/:id", h.LikePost)
		comment.POST("/share-post/:id", h.SharePost)
	}
}

func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.commentService.AddComment(c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *CommentHandler) ViewComments(c *gin.Context) {
	resp, err := h.commentService.ViewComments(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) ViewComment(c *gin.Context) {
	resp, err := h.commentService.ViewComment(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.commentService.UpdateComment(c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Param("id"), userID, h.IsAdmin(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Comment deleted successfully"})
}

func (h *CommentHandler) DeleteComments(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	deleted, err := h.commentService.DeleteComments(c.Param("id"), userID, h.IsAdmin(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Deleted %d comments", deleted),
	})
}

func (h *CommentHandler) LikePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.commentService.LikePost(c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) SharePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.commentService.SharePost(c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
