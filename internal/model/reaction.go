package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Reaction 用户对视频的态度，每个 (video_id, user_id) 至多一行，
// 因此同一用户不可能同时点赞和点踩
type Reaction struct {
	ID        string    `gorm:"type:varchar(36);primaryKey;comment:记录ID" json:"id"`
	VideoID   string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_reaction_video_user;index:idx_reactions_video_kind,priority:1;comment:视频ID" json:"videoId"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_reaction_video_user;index:idx_reactions_user_id;comment:用户ID" json:"userId"`
	Kind      string    `gorm:"size:10;not null;index:idx_reactions_video_kind,priority:2;comment:like/dislike" json:"kind"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Reaction) TableName() string {
	return "reactions"
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	return nil
}
