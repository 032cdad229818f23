package service

import (
	"context"
	"io"
	"time"

	infraKafka "vtube-go/internal/infra/kafka"
	"vtube-go/internal/model"
)

// TokenStore 已吊销 token 的存储（按 jti）
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// VideoEventPublisher 发布视频变更事件，供搜索索引 worker 消费
type VideoEventPublisher interface {
	PublishVideoEvent(ctx context.Context, event *infraKafka.VideoEvent) error
}

// VideoSearcher 全文检索，返回按相关顺序排列的视频 ID
type VideoSearcher interface {
	SearchVideoIDs(ctx context.Context, query string, latest bool) ([]string, error)
}

// VideoIndexer 维护搜索索引
type VideoIndexer interface {
	IndexVideo(ctx context.Context, video *model.Video) error
	DeleteVideo(ctx context.Context, videoID string) error
	BulkIndex(ctx context.Context, videos []model.Video) (success, failed int, err error)
}

// ObjectStore 公开读的对象存储，返回对象访问 URL
type ObjectStore interface {
	PutPublicObject(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
}
