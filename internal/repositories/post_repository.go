package repositories

import (
	"errors"
	"time"

	"blogapp_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository interface {
	Create(post *models.Post) error
	CreateWithMedia(post *models.Post, media []models.MediaFile) error
	FindByID(id string) (*models.Post, error)
	FindAll(limit, offset int) ([]models.Post, error)
	Update(post *models.Post) error
	UpdateShareButtons(postID string, buttons datatypes.JSON) error
	ReplaceMedia(postID string, media []models.MediaFile) error
	Delete(postID string) error
}

type PostRepositoryImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// CreateWithMedia создает пост и его медиафайлы в одной транзакции.
// При ошибке записи медиа пост не сохраняется.
func (r *PostRepositoryImpl) CreateWithMedia(post *models.Post, media []models.MediaFile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for i := range media {
			media[i].PostID = post.ID
		}
		if len(media) > 0 {
			if err := tx.Create(&media).Error; err != nil {
				return err
			}
		}
		post.MediaFiles = media
		return nil
	})
}

func (r *PostRepositoryImpl) FindByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.
		Preload("Author").
		Preload("MediaFiles").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		Preload("Likes").
		Preload("Shares").
		First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepositoryImpl) FindAll(limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	query := r.db.
		Preload("Author").
		Preload("MediaFiles").
		Preload("Likes").
		Preload("Shares").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepositoryImpl) Update(post *models.Post) error {
	result := r.db.Model(post).Updates(map[string]interface{}{
		"title":      post.Title,
		"content":    post.Content,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// ReplaceMedia заменяет весь набор вложений поста одной транзакцией
func (r *PostRepositoryImpl) ReplaceMedia(postID string, media []models.MediaFile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.MediaFile{}).Error; err != nil {
			return err
		}

		if len(media) == 0 {
			return nil
		}
		for i := range media {
			media[i].PostID = postID
		}
		return tx.Create(&media).Error
	})
}

func (r *PostRepositoryImpl) UpdateShareButtons(postID string, buttons datatypes.JSON) error {
	result := r.db.Model(&models.Post{}).Where("id = ?", postID).Updates(map[string]interface{}{
		"share_buttons": buttons,
		"updated_at":    time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Delete удаляет пост вместе с комментариями, лайками, репостами
// и записями медиафайлов в одной транзакции
func (r *PostRepositoryImpl) Delete(postID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Share{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.MediaFile{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Post{}, "id = ?", postID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}
