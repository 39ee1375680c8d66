package models

// Like - переключаемая сущность: само существование строки означает
// "пост лайкнут этим пользователем". Уникальный индекс на (post_id, user_id)
// не дает двум конкурентным одинаковым запросам создать дубликат.
type Like struct {
	BaseModel
	PostID string `gorm:"type:uuid;not null;uniqueIndex:idx_likes_post_user" json:"postId"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_likes_post_user" json:"userId"`
}

func (Like) TableName() string { return "likes" }

// Share - та же семантика, что Like, но для репостов
type Share struct {
	BaseModel
	PostID string `gorm:"type:uuid;not null;uniqueIndex:idx_shares_post_user" json:"postId"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_shares_post_user" json:"userId"`
}

func (Share) TableName() string { return "shares" }
