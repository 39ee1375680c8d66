package handlers

import (
	"mime/multipart"
	"net/http"

	"blogapp_backend/internal/services"
	"blogapp_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	*BaseHandler
	postService services.PostService
}

func NewPostHandler(base *BaseHandler, postService services.PostService) *PostHandler {
	return &PostHandler{
		BaseHandler: base,
		postService: postService,
	}
}

// RegisterRoutes регистрирует маршруты постов.
// Чтение открыто без сессии, мутации идут через protected
// (группа уже защищена AuthMiddleware).
func (h *PostHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	read := public.Group("/post")
	{
		read.GET("/get-posts", h.GetPosts)
		read.GET("/get-post/:id", h.GetPost)
	}

	post := protected.Group("/post")
	{
		post.POST("/create-post", h.CreatePost)
		post.PUT("/update-post/:id", h.UpdatePost)
		post.DELETE("/delete-post/:id", h.DeletePost)
	}
}

// CreatePost принимает multipart форму: поля title, content
// и до десяти файлов в поле files
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}

	// Пост без вложений может прийти и обычным JSON-телом
	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["files"]
	}

	resp, err := h.postService.CreatePost(c.Request.Context(), userID, &req, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PostHandler) GetPosts(c *gin.Context) {
	page, limit := ParsePagination(c)

	resp, err := h.postService.GetPosts(page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	resp, err := h.postService.GetPost(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdatePost правит title/content; файлы в поле files, если они есть,
// заменяют прежние вложения целиком
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["files"]
	}

	resp, err := h.postService.UpdatePost(c.Request.Context(), c.Param("id"), userID, &req, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.postService.DeletePost(c.Request.Context(), c.Param("id"), userID, h.IsAdmin(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Post deleted successfully"})
}
