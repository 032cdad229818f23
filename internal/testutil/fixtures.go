package testutil

import (
	"testing"
	"time"

	"vtube-go/internal/model"

	"gorm.io/gorm"
)

// CreateUser 直接写库创建用户（密码不可用于登录）
func CreateUser(t testing.TB, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-bcrypt-hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// CreateChannel 直接写库创建频道
func CreateChannel(t testing.TB, db *gorm.DB, owner *model.User, name string) *model.Channel {
	t.Helper()
	channel := &model.Channel{ChannelName: name, OwnerID: owner.ID}
	if err := db.Create(channel).Error; err != nil {
		t.Fatalf("create channel %s: %v", name, err)
	}
	return channel
}

// CreateVideo 直接写库创建视频，uploadedAt 为零值时使用当前时间
func CreateVideo(t testing.TB, db *gorm.DB, channel *model.Channel, title, category string, uploadedAt time.Time) *model.Video {
	t.Helper()
	if category == "" {
		category = model.DefaultCategory
	}
	video := &model.Video{
		Title:        title,
		ThumbnailURL: "https://cdn.example.com/" + title + ".jpg",
		VideoURL:     "https://cdn.example.com/" + title + ".mp4",
		Category:     category,
		ChannelID:    channel.ID,
		UploaderID:   channel.OwnerID,
		UploadDate:   uploadedAt,
	}
	if err := db.Create(video).Error; err != nil {
		t.Fatalf("create video %s: %v", title, err)
	}
	if err := db.Model(&model.Channel{}).Where("id = ?", channel.ID).
		UpdateColumn("video_count", gorm.Expr("video_count + 1")).Error; err != nil {
		t.Fatalf("bump video_count: %v", err)
	}
	return video
}
