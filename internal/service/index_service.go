package service

import (
	"context"
	"errors"
	"fmt"

	infraKafka "vtube-go/internal/infra/kafka"
	"vtube-go/internal/model"
	"vtube-go/internal/repository"
	"vtube-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const reindexBatchSize = 500

// IndexService 根据视频事件维护搜索索引（worker 使用）
type IndexService struct {
	videoRepo *repository.VideoRepository
	indexer   VideoIndexer
}

func NewIndexService(videoRepo *repository.VideoRepository, indexer VideoIndexer) *IndexService {
	return &IndexService{videoRepo: videoRepo, indexer: indexer}
}

// HandleVideoEvent 处理单个视频事件：创建/更新时按数据库最新状态重建文档，删除时移除文档
func (s *IndexService) HandleVideoEvent(ctx context.Context, event *infraKafka.VideoEvent) error {
	switch event.Type {
	case infraKafka.VideoEventCreated, infraKafka.VideoEventUpdated:
		video, err := s.videoRepo.GetByIDWithRefs(ctx, event.VideoID)
		if err != nil {
			// 事件到达前视频已被删除
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return s.indexer.DeleteVideo(ctx, event.VideoID)
			}
			return fmt.Errorf("load video %s: %w", event.VideoID, err)
		}
		return s.indexer.IndexVideo(ctx, video)
	case infraKafka.VideoEventDeleted:
		return s.indexer.DeleteVideo(ctx, event.VideoID)
	default:
		logger.Warn("Unknown video event type", zap.String("type", event.Type), zap.String("video_id", event.VideoID))
		return nil
	}
}

// Reindex 全量重建索引
func (s *IndexService) Reindex(ctx context.Context) (success, failed int, err error) {
	err = s.videoRepo.EachBatch(ctx, reindexBatchSize, func(videos []model.Video) error {
		ok, bad, err := s.indexer.BulkIndex(ctx, videos)
		success += ok
		failed += bad
		return err
	})
	if err != nil {
		return success, failed, err
	}

	logger.Info("Search index rebuilt", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}
