package models

// Comment - комментарий к посту
type Comment struct {
	BaseModel
	Content  string `gorm:"not null" json:"content"`
	PostID   string `gorm:"type:uuid;not null;index" json:"postId"`
	AuthorID string `gorm:"type:uuid;not null;index" json:"authorId"`

	// Relations
	Post   *Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Comment) TableName() string { return "comments" }
