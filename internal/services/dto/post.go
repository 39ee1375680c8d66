package dto

import (
	"encoding/json"
	"time"

	"blogapp_backend/internal/models"
)

// CreatePostRequest - данные нового поста из multipart формы
type CreatePostRequest struct {
	Title   string `form:"title" json:"title" validate:"required,min=1,max=200"`
	Content string `form:"content" json:"content" validate:"required,min=1"`
}

// UpdatePostRequest - изменение поста автором
type UpdatePostRequest struct {
	Title   string `form:"title" json:"title" validate:"omitempty,min=1,max=200"`
	Content string `form:"content" json:"content" validate:"omitempty,min=1"`
}

// MediaFileResponse - медиафайл поста
type MediaFileResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// PostResponse - представление поста в ответах
type PostResponse struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Content      string              `json:"content"`
	Author       UserResponse        `json:"author"`
	MediaFiles   []MediaFileResponse `json:"mediaFiles"`
	Comments     []CommentResponse   `json:"comments,omitempty"`
	LikesCount   int                 `json:"likesCount"`
	SharesCount  int                 `json:"sharesCount"`
	ShareButtons map[string]string   `json:"shareButtons,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// PostListResponse - постраничная лента постов
type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ToPostResponse собирает ответ из модели с предзагруженными связями
func ToPostResponse(post *models.Post, includeComments bool) PostResponse {
	resp := PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		LikesCount:  len(post.Likes),
		SharesCount: len(post.Shares),
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}

	if post.Author != nil {
		resp.Author = ToUserResponse(post.Author)
	}

	if len(post.ShareButtons) > 0 {
		var buttons map[string]string
		if err := json.Unmarshal(post.ShareButtons, &buttons); err == nil {
			resp.ShareButtons = buttons
		}
	}

	resp.MediaFiles = make([]MediaFileResponse, 0, len(post.MediaFiles))
	for _, m := range post.MediaFiles {
		resp.MediaFiles = append(resp.MediaFiles, MediaFileResponse{
			ID:       m.ID,
			URL:      m.URL,
			PublicID: m.PublicID,
		})
	}

	if includeComments {
		resp.Comments = make([]CommentResponse, 0, len(post.Comments))
		for i := range post.Comments {
			resp.Comments = append(resp.Comments, ToCommentResponse(&post.Comments[i]))
		}
	}

	return resp
}
