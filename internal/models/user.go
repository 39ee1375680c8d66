package models

// User - учетная запись. Хеш пароля наружу не сериализуется.
// ResetToken хранит единственный активный токен сброса пароля:
// повторный запрос перезаписывает предыдущий.
type User struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password;not null" json:"-"`
	IsAdmin      bool   `gorm:"default:false" json:"isAdmin"`
	IsVerified   bool   `gorm:"default:false" json:"isVerified"`
	PictureID    string `json:"pictureId,omitempty"`
	ResetToken   string `gorm:"column:token" json:"-"`

	// Relations
	UserPicture *Picture  `gorm:"foreignKey:UserID" json:"userPicture,omitempty"`
	Posts       []Post    `gorm:"foreignKey:AuthorID" json:"-"`
	Comments    []Comment `gorm:"foreignKey:AuthorID" json:"-"`
	Likes       []Like    `gorm:"foreignKey:UserID" json:"-"`
	Shares      []Share   `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string { return "users" }

// Picture - аватар пользователя на медиа-хостинге
type Picture struct {
	BaseModel
	PublicID string `gorm:"column:public_id;not null" json:"public_id"`
	URL      string `gorm:"not null" json:"url"`
	UserID   string `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
}

func (Picture) TableName() string { return "pictures" }
