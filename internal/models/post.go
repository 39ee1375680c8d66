package models

import "gorm.io/datatypes"

// Post - запись блога
type Post struct {
	BaseModel
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"not null" json:"content"`
	AuthorID string `gorm:"type:uuid;not null;index" json:"authorId"`

	// Ссылки "поделиться" для соцсетей, генерируются при первом шаринге
	ShareButtons datatypes.JSON `json:"shareButtons,omitempty"`

	// Relations
	Author     *User       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	MediaFiles []MediaFile `gorm:"foreignKey:PostID" json:"mediaFiles,omitempty"`
	Comments   []Comment   `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	Likes      []Like      `gorm:"foreignKey:PostID" json:"likes,omitempty"`
	Shares     []Share     `gorm:"foreignKey:PostID" json:"shares,omitempty"`
}

func (Post) TableName() string { return "posts" }

// MediaFile - вложение поста на медиа-хостинге.
// PublicID - ключ объекта у хостинга, по нему выполняется удаление.
type MediaFile struct {
	BaseModel
	URL      string `gorm:"not null" json:"url"`
	PublicID string `gorm:"column:public_id;not null" json:"public_id"`
	PostID   string `gorm:"type:uuid;not null;index" json:"postId"`
}

func (MediaFile) TableName() string { return "media_files" }
