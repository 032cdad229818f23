package model

import (
	"time"

	"gorm.io/gorm"
)

// Comment 评论模型，只有作者本人可以修改或删除
type Comment struct {
	ID        string    `gorm:"type:varchar(36);primaryKey;comment:评论ID" json:"id"`
	VideoID   string    `gorm:"type:varchar(36);not null;index:idx_comments_video_created,priority:1;comment:被评论视频ID" json:"videoId"`
	UserID    string    `gorm:"type:varchar(36);not null;index:idx_comments_user_id;comment:评论作者" json:"userId"`
	Text      string    `gorm:"type:text;not null;comment:评论内容" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_video_created,priority:2;comment:评论时间" json:"timestamp"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`

	// 关联关系
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

// ResourceOwner 评论的可修改者（作者）
func (c *Comment) ResourceOwner() string {
	return c.UserID
}
