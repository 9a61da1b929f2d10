package models

import "yatube/utils"

const shortTextLen = 15

// Post rows are always read newest first, see PostOrder
type Post struct {
	ID        uint64  `gorm:"primaryKey" json:"id"`
	CreatedAt int64   `gorm:"autoCreateTime;index" json:"pub_date"`
	UpdatedAt int64   `json:"-"`
	UserID    uint64  `gorm:"not null;index" json:"-"`
	User      User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID   *uint64 `gorm:"index" json:"-"`
	Group     *Group  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
	Text      string  `gorm:"type:text;not null" json:"text"`
	Image     string  `gorm:"type:varchar(255)" json:"image"`
}

// PostOrder is the feed ordering: newest first, ties broken by insertion order
const PostOrder = "posts.created_at DESC, posts.id DESC"

func (p Post) String() string {
	return utils.Truncate(p.Text, shortTextLen)
}

func (p *Post) IsOwnedBy(user *User) bool {
	return user.IsAuthenticated() && p.UserID == user.ID
}
