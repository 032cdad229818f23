package service

import (
	"context"
	"time"

	infraKafka "vtube-go/internal/infra/kafka"
	"vtube-go/pkg/logger"

	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// eventEmitter 包装 VideoEventPublisher：发布失败只记日志，不影响已提交的写操作
type eventEmitter struct {
	publisher VideoEventPublisher
}

func newEventEmitter(publisher VideoEventPublisher) *eventEmitter {
	return &eventEmitter{publisher: publisher}
}

func (e *eventEmitter) videoCreated(ctx context.Context, videoID string) {
	e.emit(ctx, infraKafka.VideoEventCreated, videoID)
}

func (e *eventEmitter) videoUpdated(ctx context.Context, videoID string) {
	e.emit(ctx, infraKafka.VideoEventUpdated, videoID)
}

func (e *eventEmitter) videoDeleted(ctx context.Context, videoID string) {
	e.emit(ctx, infraKafka.VideoEventDeleted, videoID)
}

func (e *eventEmitter) emit(ctx context.Context, eventType, videoID string) {
	if e.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := &infraKafka.VideoEvent{
		Type:       eventType,
		VideoID:    videoID,
		OccurredAt: time.Now().Unix(),
	}
	if err := e.publisher.PublishVideoEvent(ctx, event); err != nil {
		logger.Warn("Publish video event failed",
			zap.String("type", eventType),
			zap.String("video_id", videoID),
			zap.Error(err),
		)
	}
}
