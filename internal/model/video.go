package model

import (
	"time"

	"gorm.io/gorm"
)

const DefaultCategory = "General"

// Video 视频模型，channel_id 与 uploader_id 创建后不可变
type Video struct {
	ID           string    `gorm:"type:varchar(36);primaryKey;comment:视频标识" json:"id"`
	Title        string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	ThumbnailURL string    `gorm:"size:500;not null;comment:封面地址" json:"thumbnailUrl"`
	VideoURL     string    `gorm:"size:500;not null;comment:播放地址" json:"videoUrl"`
	Description  string    `gorm:"type:text;comment:视频描述" json:"description"`
	Category     string    `gorm:"size:50;not null;default:'General';index:idx_videos_category;comment:分类" json:"category"`
	ChannelID    string    `gorm:"type:varchar(36);not null;index:idx_videos_channel_id;comment:所属频道" json:"channelId"`
	UploaderID   string    `gorm:"type:varchar(36);not null;index:idx_videos_uploader_id;comment:上传者" json:"uploader"`
	Views        int64     `gorm:"not null;default:0;comment:播放量" json:"views"`
	LikeCount    int64     `gorm:"not null;default:0;comment:点赞数" json:"likeCount"`
	DislikeCount int64     `gorm:"not null;default:0;comment:点踩数" json:"dislikeCount"`
	CommentCount int64     `gorm:"not null;default:0;comment:评论数" json:"commentCount"`
	UploadDate   time.Time `gorm:"autoCreateTime;index:idx_videos_upload_date;comment:上传时间" json:"uploadDate"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:创建时间" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`

	// 关联关系
	Uploader User    `gorm:"foreignKey:UploaderID" json:"-"`
	Channel  Channel `gorm:"foreignKey:ChannelID" json:"-"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = newID()
	}
	return nil
}

// ResourceOwner 视频的可修改者（上传者）
func (v *Video) ResourceOwner() string {
	return v.UploaderID
}
