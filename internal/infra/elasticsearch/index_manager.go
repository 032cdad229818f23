package elasticsearch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"vtube-go/internal/config"
	"vtube-go/pkg/logger"

	"go.uber.org/zap"
)

// GetVideosIndexMapping 返回 videos 索引的 mapping。
// title/description/category 各带一个 wildcard 子字段 raw，用于大小写无关的子串匹配
func GetVideosIndexMapping() string {
	return `{
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 0
		},
		"mappings": {
			"properties": {
				"id": {"type": "keyword"},
				"title": {
					"type": "text",
					"fields": {"raw": {"type": "wildcard"}}
				},
				"description": {
					"type": "text",
					"fields": {"raw": {"type": "wildcard"}}
				},
				"category": {
					"type": "keyword",
					"fields": {"raw": {"type": "wildcard"}}
				},
				"channel_id": {"type": "keyword"},
				"channel_name": {"type": "keyword"},
				"uploader_id": {"type": "keyword"},
				"uploader_name": {"type": "keyword"},
				"views": {"type": "long"},
				"like_count": {"type": "long"},
				"dislike_count": {"type": "long"},
				"comment_count": {"type": "long"},
				"upload_date": {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
				"updated_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
			}
		}
	}`
}

// EnsureVideosIndex 确保 videos 索引存在，不存在则创建
func EnsureVideosIndex(ctx context.Context) error {
	indexName := config.GetElasticsearch().VideosIndex()

	exists, err := IndicesExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		logger.Info("Elasticsearch videos index already exists", zap.String("index", indexName))
		return nil
	}

	body := bytes.NewReader([]byte(GetVideosIndexMapping()))
	resp, err := IndicesCreate(ctx, indexName, body)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch videos index created", zap.String("index", indexName))
	return nil
}

// InitIndexes 初始化所有索引（启动时调用）
func InitIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return EnsureVideosIndex(ctx)
}
