package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"blogapp_backend/internal/config"
	"blogapp_backend/internal/storage"
	"blogapp_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// UploadService проверяет загружаемые файлы против политики
// (размер, MIME-тип) и кладет их в хранилище.
type UploadService interface {
	ValidateFile(header *multipart.FileHeader) error
	Store(ctx context.Context, header *multipart.FileHeader, keyPrefix string) (publicID string, url string, err error)
	Remove(ctx context.Context, publicID string) error
}

type UploadServiceImpl struct {
	store storage.Storage
	cfg   *config.Config
}

func NewUploadService(store storage.Storage, cfg *config.Config) UploadService {
	return &UploadServiceImpl{store: store, cfg: cfg}
}

// ValidateFile проверяет размер и MIME-тип до записи в хранилище
func (s *UploadServiceImpl) ValidateFile(header *multipart.FileHeader) error {
	if header.Size > s.cfg.Upload.MaxSize {
		return apperrors.ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	for _, allowed := range s.cfg.Upload.AllowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return apperrors.ErrInvalidFileType
}

// Store валидирует файл и сохраняет его под уникальным ключом.
// Ключ становится public_id записи и используется при удалении.
func (s *UploadServiceImpl) Store(ctx context.Context, header *multipart.FileHeader, keyPrefix string) (string, string, error) {
	if err := s.ValidateFile(header); err != nil {
		return "", "", err
	}

	file, err := header.Open()
	if err != nil {
		return "", "", apperrors.InternalError(err)
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	key := fmt.Sprintf("%s/%s%s", keyPrefix, uuid.NewString(), ext)

	saveCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	contentType := header.Header.Get("Content-Type")
	if err := s.store.Save(saveCtx, key, file, contentType); err != nil {
		return "", "", apperrors.ErrUpstream(err, "storage", "Failed to store uploaded file")
	}

	url, err := s.store.GetURL(ctx, key)
	if err != nil {
		return "", "", apperrors.InternalError(err)
	}

	return key, url, nil
}

// Remove удаляет объект из хранилища по его public_id
func (s *UploadServiceImpl) Remove(ctx context.Context, publicID string) error {
	delCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.store.Delete(delCtx, publicID); err != nil {
		return apperrors.ErrUpstream(err, "storage", "Failed to delete stored file")
	}
	return nil
}
