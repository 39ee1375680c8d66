package repositories

import (
	"errors"

	"blogapp_backend/internal/models"

	"gorm.io/gorm"
)

type EngagementRepository interface {
	// ToggleLike снимает лайк, если он есть, иначе ставит.
	// Возвращает true, если после вызова лайк стоит.
	ToggleLike(postID, userID string) (bool, error)

	// ToggleShare аналогично ToggleLike для репостов
	ToggleShare(postID, userID string) (bool, error)

	CountLikes(postID string) (int64, error)
	CountShares(postID string) (int64, error)
}

type EngagementRepositoryImpl struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &EngagementRepositoryImpl{db: db}
}

func (r *EngagementRepositoryImpl) ToggleLike(postID, userID string) (bool, error) {
	var existing models.Like
	err := r.db.First(&existing, "post_id = ? AND user_id = ?", postID, userID).Error
	if err == nil {
		if err := r.db.Delete(&existing).Error; err != nil {
			return true, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	like := models.Like{PostID: postID, UserID: userID}
	if err := r.db.Create(&like).Error; err != nil {
		// Гонка двух одновременных лайков: уникальный индекс
		// (post_id, user_id) гарантирует единственную запись,
		// проигравший запрос считается успешным.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *EngagementRepositoryImpl) ToggleShare(postID, userID string) (bool, error) {
	var existing models.Share
	err := r.db.First(&existing, "post_id = ? AND user_id = ?", postID, userID).Error
	if err == nil {
		if err := r.db.Delete(&existing).Error; err != nil {
			return true, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	share := models.Share{PostID: postID, UserID: userID}
	if err := r.db.Create(&share).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *EngagementRepositoryImpl) CountLikes(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *EngagementRepositoryImpl) CountShares(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Share{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
