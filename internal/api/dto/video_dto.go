package dto

import "time"

// VideoCreateRequest 发布视频请求（只含元数据，文件由客户端自行托管）
type VideoCreateRequest struct {
	Title        string `json:"title" binding:"required,min=1,max=200"`
	ThumbnailURL string `json:"thumbnailUrl" binding:"required,max=500"`
	VideoURL     string `json:"videoUrl" binding:"required,max=500"`
	Description  string `json:"description" binding:"omitempty,max=5000"`
	Category     string `json:"category" binding:"omitempty,max=50"`
	ChannelID    string `json:"channelId" binding:"required"`
}

// VideoUpdateRequest 视频更新请求，channelId 与上传者不可修改
type VideoUpdateRequest struct {
	Title        *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string `json:"description" binding:"omitempty,max=5000"`
	ThumbnailURL *string `json:"thumbnailUrl" binding:"omitempty,min=1,max=500"`
	VideoURL     *string `json:"videoUrl" binding:"omitempty,min=1,max=500"`
	Category     *string `json:"category" binding:"omitempty,min=1,max=50"`
}

// AuthorBrief 视频中嵌套的上传者简要信息
type AuthorBrief struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
}

// ChannelBrief 视频中嵌套的频道简要信息
type ChannelBrief struct {
	ID          string `json:"id"`
	ChannelName string `json:"channelName"`
}

// VideoInfo 视频详情
type VideoInfo struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	ThumbnailURL string        `json:"thumbnailUrl"`
	VideoURL     string        `json:"videoUrl"`
	Description  string        `json:"description"`
	Category     string        `json:"category"`
	ChannelID    string        `json:"channelId"`
	Uploader     string        `json:"uploader"`
	Views        int64         `json:"views"`
	Likes        int64         `json:"likes"`
	Dislikes     int64         `json:"dislikes"`
	CommentCount int64         `json:"commentCount"`
	UploadDate   time.Time     `json:"uploadDate"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	UploaderInfo *AuthorBrief  `json:"uploaderInfo,omitempty"`
	Channel      *ChannelBrief `json:"channel,omitempty"`
}

// VideoListData 视频列表响应数据（不分页）
type VideoListData struct {
	Videos []VideoInfo `json:"videos"`
	Total  int         `json:"total"`
}

// ReactionData 点赞/点踩结果，reaction 为当前用户的态度（空串表示无）
type ReactionData struct {
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
	Reaction string `json:"reaction"`
}
