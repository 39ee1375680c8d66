package dto

import (
	"time"

	"blogapp_backend/internal/models"
)

// UserResponse - публичное представление пользователя
type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsAdmin    bool      `json:"isAdmin"`
	IsVerified bool      `json:"isVerified"`
	PictureURL string    `json:"pictureUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UpdateUserRequest - изменение профиля
type UpdateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=30,username"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// PictureResponse - загруженный аватар
type PictureResponse struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// ToUserResponse собирает ответ из модели
func ToUserResponse(user *models.User) UserResponse {
	resp := UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		IsAdmin:    user.IsAdmin,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
	if user.UserPicture != nil {
		resp.PictureURL = user.UserPicture.URL
	}
	return resp
}
