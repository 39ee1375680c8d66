package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"blogapp_backend/internal/config"
	"blogapp_backend/internal/models"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

type CommentService interface {
	AddComment(postID, authorID string, req *dto.AddCommentRequest) (*dto.CommentResponse, error)
	ViewComments(postID string) ([]dto.CommentResponse, error)
	ViewComment(commentID string) (*dto.CommentResponse, error)
	UpdateComment(commentID, userID string, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(commentID, userID string, isAdmin bool) error
	DeleteComments(postID, userID string, isAdmin bool) (int64, error)

	LikePost(postID, userID string) (*dto.ToggleResponse, error)
	SharePost(postID, userID string) (*dto.ToggleResponse, error)
}

type CommentServiceImpl struct {
	commentRepo    repositories.CommentRepository
	postRepo       repositories.PostRepository
	engagementRepo repositories.EngagementRepository
	cfg            *config.Config
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	engagementRepo repositories.EngagementRepository,
	cfg *config.Config,
) CommentService {
	return &CommentServiceImpl{
		commentRepo:    commentRepo,
		postRepo:       postRepo,
		engagementRepo: engagementRepo,
		cfg:            cfg,
	}
}

// findPost возвращает пост или ошибку 404
func (s *CommentServiceImpl) findPost(postID string) (*models.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.NewNotFoundError("Post not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return post, nil
}

func (s *CommentServiceImpl) AddComment(postID, authorID string, req *dto.AddCommentRequest) (*dto.CommentResponse, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  req.Content,
		PostID:   postID,
		AuthorID: authorID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	created, err := s.commentRepo.FindByID(comment.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToCommentResponse(created)
	return &resp, nil
}

func (s *CommentServiceImpl) ViewComments(postID string) ([]dto.CommentResponse, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByPostID(postID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, dto.ToCommentResponse(&comments[i]))
	}
	return resp, nil
}

func (s *CommentServiceImpl) ViewComment(commentID string) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return nil, apperrors.NewNotFoundError("Comment not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToCommentResponse(comment)
	return &resp, nil
}

// UpdateComment - изменение комментария, доступно только автору
func (s *CommentServiceImpl) UpdateComment(commentID, userID string, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return nil, apperrors.NewNotFoundError("Comment not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if comment.AuthorID != userID {
		return nil, apperrors.ErrNotCommentAuthor
	}

	comment.Content = req.Content
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToCommentResponse(comment)
	return &resp, nil
}

// DeleteComment - удаление комментария автором или администратором
func (s *CommentServiceImpl) DeleteComment(commentID, userID string, isAdmin bool) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.NewNotFoundError("Comment not found")
		}
		return apperrors.InternalError(err)
	}

	if comment.AuthorID != userID && !isAdmin {
		return apperrors.ErrNotCommentAuthor
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// DeleteComments удаляет все комментарии поста.
// Доступно автору поста и администратору.
func (s *CommentServiceImpl) DeleteComments(postID, userID string, isAdmin bool) (int64, error) {
	post, err := s.findPost(postID)
	if err != nil {
		return 0, err
	}

	if post.AuthorID != userID && !isAdmin {
		return 0, apperrors.ErrNotPostAuthor
	}

	deleted, err := s.commentRepo.DeleteByPostID(postID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return deleted, nil
}

// LikePost - переключатель лайка: повторный вызов снимает лайк
func (s *CommentServiceImpl) LikePost(postID, userID string) (*dto.ToggleResponse, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}

	liked, err := s.engagementRepo.ToggleLike(postID, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	count, err := s.engagementRepo.CountLikes(postID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	return &dto.ToggleResponse{Message: message, Active: liked, Count: count}, nil
}

// SharePost - переключатель репоста. При первом репосте на посте
// сохраняются готовые ссылки "поделиться" для соцсетей.
func (s *CommentServiceImpl) SharePost(postID, userID string) (*dto.ToggleResponse, error) {
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}

	shared, err := s.engagementRepo.ToggleShare(postID, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	buttons := shareButtons(s.cfg.Server.BaseURL, post)
	if shared && len(post.ShareButtons) == 0 {
		raw, err := json.Marshal(buttons)
		if err == nil {
			if err := s.postRepo.UpdateShareButtons(postID, raw); err != nil {
				return nil, apperrors.InternalError(err)
			}
		}
	}

	count, err := s.engagementRepo.CountShares(postID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	message := "Post unshared"
	if shared {
		message = "Post shared"
	}
	return &dto.ToggleResponse{
		Message:      message,
		Active:       shared,
		Count:        count,
		ShareButtons: buttons,
	}, nil
}

// shareButtons собирает ссылки "поделиться" на публичный URL поста
func shareButtons(baseURL string, post *models.Post) map[string]string {
	postURL := fmt.Sprintf("%s/api/v1/post/get-post/%s", baseURL, post.ID)
	escaped := url.QueryEscape(postURL)

	return map[string]string{
		"facebook": "https://www.facebook.com/sharer/sharer.php?u=" + escaped,
		"twitter":  "https://twitter.com/intent/tweet?url=" + escaped + "&text=" + url.QueryEscape(post.Title),
		"linkedin": "https://www.linkedin.com/sharing/share-offsite/?url=" + escaped,
	}
}
