package handlers

import (
	"mime"
	"path/filepath"
	"strings"

	"blogapp_backend/internal/storage"
	"blogapp_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler отдает файлы из локального хранилища.
// При s3-хранилище клиенты ходят по публичным URL напрямую,
// и этот маршрут не используется.
type FileHandler struct {
	*BaseHandler
	store storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		store:       store,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/*path", h.ServeFile)
}

func (h *FileHandler) ServeFile(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("path"), "/")
	if key == "" {
		h.HandleServiceError(c, apperrors.NewBadRequestError("File path is required"))
		return
	}

	ctx := c.Request.Context()

	size, err := h.store.GetSize(ctx, key)
	if err != nil {
		h.HandleServiceError(c, apperrors.NewNotFoundError("File not found"))
		return
	}

	reader, err := h.store.Get(ctx, key)
	if err != nil {
		h.HandleServiceError(c, apperrors.NewNotFoundError("File not found"))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(200, size, contentType, reader, nil)
}
