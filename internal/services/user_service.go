package services

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"strings"

	"blogapp_backend/internal/logger"
	"blogapp_backend/internal/models"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

type UserService interface {
	GetUser(userID string) (*dto.UserResponse, error)
	GetAllUsers() ([]dto.UserResponse, error)
	UpdateUser(userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(userID string) error
	MakeAdmin(targetID string) (*dto.UserResponse, error)
	UploadProfilePicture(ctx context.Context, userID string, header *multipart.FileHeader) (*dto.PictureResponse, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	uploads  UploadService
}

func NewUserService(userRepo repositories.UserRepository, uploads UploadService) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		uploads:  uploads,
	}
}

func (s *UserServiceImpl) GetUser(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// GetAllUsers - полный список без пагинации, новые сверху
func (s *UserServiceImpl) GetAllUsers() ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAll(0, 0)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(users) == 0 {
		return nil, apperrors.NewNotFoundError("No users found")
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.ToUserResponse(&users[i]))
	}
	return resp, nil
}

func (s *UserServiceImpl) UpdateUser(userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Username != "" {
		user.Username = strings.ToLower(strings.TrimSpace(req.Username))
	}
	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// DeleteUser удаляет аккаунт вместе со всем контентом пользователя
func (s *UserServiceImpl) DeleteUser(userID string) error {
	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("User not found")
		}
		return apperrors.InternalError(err)
	}

	logger.GetLogger().Info("user account deleted", slog.String("user_id", userID))
	return nil
}

// MakeAdmin выдает пользователю права администратора
func (s *UserServiceImpl) MakeAdmin(targetID string) (*dto.UserResponse, error) {
	if err := s.userRepo.SetAdmin(targetID, true); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(targetID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.GetLogger().Info("admin granted", slog.String("user_id", targetID))

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// UploadProfilePicture сохраняет новый аватар и удаляет предыдущий
// объект из хранилища. Новая картинка перезаписывает запись старой.
func (s *UserServiceImpl) UploadProfilePicture(ctx context.Context, userID string, header *multipart.FileHeader) (*dto.PictureResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	publicID, url, err := s.uploads.Store(ctx, header, "avatars/"+userID)
	if err != nil {
		return nil, err
	}

	if user.UserPicture != nil && user.UserPicture.PublicID != "" {
		// Старый объект лучше потерять из хранилища, чем провалить
		// загрузку нового: ошибка удаления только логируется.
		if err := s.uploads.Remove(ctx, user.UserPicture.PublicID); err != nil {
			logger.GetLogger().Warn("failed to delete previous avatar",
				slog.String("user_id", userID),
				slog.String("public_id", user.UserPicture.PublicID))
		}
	}

	picture := &models.Picture{
		PublicID: publicID,
		URL:      url,
		UserID:   userID,
	}
	if err := s.userRepo.SavePicture(picture); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.PictureResponse{PublicID: publicID, URL: url}, nil
}
