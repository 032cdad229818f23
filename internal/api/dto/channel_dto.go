package dto

import "time"

// ChannelCreateRequest 创建频道请求
type ChannelCreateRequest struct {
	ChannelName   string `json:"channelName" binding:"required,min=1,max=100"`
	Description   string `json:"description" binding:"omitempty,max=5000"`
	ChannelBanner string `json:"channelBanner" binding:"omitempty,max=500"`
}

// ChannelUpdateRequest 更新频道请求，未提供的字段保持不变
type ChannelUpdateRequest struct {
	ChannelName   *string `json:"channelName" binding:"omitempty,min=1,max=100"`
	Description   *string `json:"description" binding:"omitempty,max=5000"`
	ChannelBanner *string `json:"channelBanner" binding:"omitempty,max=500"`
}

// OwnerBrief 频道所有者简要信息
type OwnerBrief struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
}

// ChannelInfo 频道信息
type ChannelInfo struct {
	ID              string    `json:"id"`
	ChannelName     string    `json:"channelName"`
	Owner           string    `json:"owner"`
	Description     string    `json:"description"`
	ChannelBanner   string    `json:"channelBanner"`
	SubscriberCount int64     `json:"subscriberCount"`
	VideoCount      int64     `json:"videoCount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ChannelDetail 频道详情：所有者、订阅者与按上传顺序排列的视频
type ChannelDetail struct {
	ChannelInfo
	OwnerInfo   *OwnerBrief `json:"ownerInfo"`
	Subscribers []string    `json:"subscribers"`
	Videos      []VideoInfo `json:"videos"`
}

// SubscriptionData 订阅状态
type SubscriptionData struct {
	Subscribed bool   `json:"subscribed"`
	SubCount   int64  `json:"subCount"`
	ChannelID  string `json:"channelId"`
}
