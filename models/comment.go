package models

import "yatube/utils"

type Comment struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `gorm:"autoCreateTime;index" json:"created"`
	UserID    uint64 `gorm:"not null;index" json:"-"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	PostID    uint64 `gorm:"not null;index" json:"post_id"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Text      string `gorm:"type:text;not null" json:"text"`
}

const CommentOrder = "comments.created_at DESC, comments.id DESC"

func (c Comment) String() string {
	return utils.Truncate(c.Text, shortTextLen)
}
