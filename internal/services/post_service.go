package services

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"

	"blogapp_backend/internal/logger"
	"blogapp_backend/internal/models"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

type PostService interface {
	CreatePost(ctx context.Context, authorID string, req *dto.CreatePostRequest, files []*multipart.FileHeader) (*dto.PostResponse, error)
	GetPosts(page, limit int) (*dto.PostListResponse, error)
	GetPost(postID string) (*dto.PostResponse, error)
	UpdatePost(ctx context.Context, postID, userID string, req *dto.UpdatePostRequest, files []*multipart.FileHeader) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, postID, userID string, isAdmin bool) error
}

type PostServiceImpl struct {
	postRepo repositories.PostRepository
	uploads  UploadService
	maxFiles int
}

func NewPostService(postRepo repositories.PostRepository, uploads UploadService, maxFiles int) PostService {
	return &PostServiceImpl{
		postRepo: postRepo,
		uploads:  uploads,
		maxFiles: maxFiles,
	}
}

// CreatePost создает пост с вложениями. Частичный успех исключен:
// все файлы проверяются заранее, при сбое загрузки уже записанные
// объекты убираются из хранилища, пост не создается.
func (s *PostServiceImpl) CreatePost(ctx context.Context, authorID string, req *dto.CreatePostRequest, files []*multipart.FileHeader) (*dto.PostResponse, error) {
	if len(files) > s.maxFiles {
		return nil, apperrors.NewBadRequestError("Too many files attached")
	}

	for _, f := range files {
		if err := s.uploads.ValidateFile(f); err != nil {
			return nil, err
		}
	}

	var media []models.MediaFile
	uploaded := make([]string, 0, len(files))

	cleanup := func() {
		for _, publicID := range uploaded {
			if err := s.uploads.Remove(ctx, publicID); err != nil {
				logger.GetLogger().Warn("failed to clean up uploaded file",
					slog.String("public_id", publicID))
			}
		}
	}

	for _, f := range files {
		publicID, url, err := s.uploads.Store(ctx, f, "posts")
		if err != nil {
			cleanup()
			return nil, err
		}
		uploaded = append(uploaded, publicID)
		media = append(media, models.MediaFile{URL: url, PublicID: publicID})
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}

	if err := s.postRepo.CreateWithMedia(post, media); err != nil {
		cleanup()
		return nil, apperrors.InternalError(err)
	}

	created, err := s.postRepo.FindByID(post.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToPostResponse(created, false)
	return &resp, nil
}

// GetPosts - лента постов, новые сверху
func (s *PostServiceImpl) GetPosts(page, limit int) (*dto.PostListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	posts, err := s.postRepo.FindAll(limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.PostListResponse{
		Posts: make([]dto.PostResponse, 0, len(posts)),
		Page:  page,
		Limit: limit,
	}
	for i := range posts {
		resp.Posts = append(resp.Posts, dto.ToPostResponse(&posts[i], false))
	}
	return resp, nil
}

func (s *PostServiceImpl) GetPost(postID string) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.NewNotFoundError("Post not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToPostResponse(post, true)
	return &resp, nil
}

// UpdatePost - изменение поста, доступно только автору.
// Новые вложения заменяют старый набор целиком.
func (s *PostServiceImpl) UpdatePost(ctx context.Context, postID, userID string, req *dto.UpdatePostRequest, files []*multipart.FileHeader) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.NewNotFoundError("Post not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if post.AuthorID != userID {
		return nil, apperrors.ErrNotPostAuthor
	}

	if len(files) > s.maxFiles {
		return nil, apperrors.NewBadRequestError("Too many files attached")
	}
	for _, f := range files {
		if err := s.uploads.ValidateFile(f); err != nil {
			return nil, err
		}
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if len(files) > 0 {
		oldMedia := post.MediaFiles

		var media []models.MediaFile
		uploaded := make([]string, 0, len(files))

		cleanup := func() {
			for _, publicID := range uploaded {
				if err := s.uploads.Remove(ctx, publicID); err != nil {
					logger.GetLogger().Warn("failed to clean up uploaded file",
						slog.String("public_id", publicID))
				}
			}
		}

		for _, f := range files {
			publicID, url, err := s.uploads.Store(ctx, f, "posts")
			if err != nil {
				cleanup()
				return nil, err
			}
			uploaded = append(uploaded, publicID)
			media = append(media, models.MediaFile{URL: url, PublicID: publicID})
		}

		if err := s.postRepo.ReplaceMedia(postID, media); err != nil {
			cleanup()
			return nil, apperrors.InternalError(err)
		}

		// Старые объекты убираются после успешной замены записей
		for _, m := range oldMedia {
			if err := s.uploads.Remove(ctx, m.PublicID); err != nil {
				logger.GetLogger().Warn("failed to delete replaced media file",
					slog.String("public_id", m.PublicID))
			}
		}
	}

	updated, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToPostResponse(updated, false)
	return &resp, nil
}

// DeletePost удаляет пост со всем связанным контентом.
// Доступно автору и администратору. Сначала удаляются записи в базе,
// затем объекты в хранилище: ошибка хранилища не оставляет
// полуживой пост в базе.
func (s *PostServiceImpl) DeletePost(ctx context.Context, postID, userID string, isAdmin bool) error {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.NewNotFoundError("Post not found")
		}
		return apperrors.InternalError(err)
	}

	if post.AuthorID != userID && !isAdmin {
		return apperrors.ErrNotPostAuthor
	}

	media := post.MediaFiles

	if err := s.postRepo.Delete(postID); err != nil {
		return apperrors.InternalError(err)
	}

	for _, m := range media {
		if err := s.uploads.Remove(ctx, m.PublicID); err != nil {
			logger.GetLogger().Warn("failed to delete post media from storage",
				slog.String("post_id", postID),
				slog.String("public_id", m.PublicID))
		}
	}

	return nil
}
