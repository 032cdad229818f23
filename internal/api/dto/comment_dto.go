package dto

import "time"

// CommentRequest 发表/修改评论请求
type CommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=1000"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"videoId"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedAt time.Time `json:"updatedAt"`
	Username  string    `json:"username"`
	Avatar    *string   `json:"avatar"`
}

// CommentListData 视频的全部评论，按发表时间升序
type CommentListData struct {
	VideoID  string        `json:"videoId"`
	Comments []CommentInfo `json:"comments"`
	Total    int           `json:"total"`
}
