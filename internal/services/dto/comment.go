package dto

import (
	"time"

	"blogapp_backend/internal/models"
)

// AddCommentRequest - новый комментарий к посту
type AddCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// UpdateCommentRequest - изменение комментария автором
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// CommentResponse - представление комментария в ответах
type CommentResponse struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	PostID    string       `json:"postId"`
	Author    UserResponse `json:"author"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// ToggleResponse - результат лайка или репоста
type ToggleResponse struct {
	Message      string            `json:"message"`
	Active       bool              `json:"active"`
	Count        int64             `json:"count"`
	ShareButtons map[string]string `json:"shareButtons,omitempty"`
}

// ToCommentResponse собирает ответ из модели
func ToCommentResponse(comment *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		PostID:    comment.PostID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	if comment.Author != nil {
		resp.Author = ToUserResponse(comment.Author)
	}
	return resp
}
