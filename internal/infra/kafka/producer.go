package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vtube-go/internal/config"
	"vtube-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	VideoEventCreated = "created"
	VideoEventUpdated = "updated"
	VideoEventDeleted = "deleted"
)

// VideoEvent 视频变更事件消息体，只携带 ID，消费者按数据库最新状态处理
type VideoEvent struct {
	Type       string `json:"type"`
	VideoID    string `json:"video_id"`
	OccurredAt int64  `json:"occurred_at"`
}

var producer *kafka.Writer

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	if len(cfg.Brokers) == 0 {
		return fmt.Errorf("kafka brokers is empty")
	}

	producer = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// EventPublisher 将视频事件写入指定 topic
type EventPublisher struct {
	topic string
}

func NewEventPublisher(topic string) *EventPublisher {
	return &EventPublisher{topic: topic}
}

// PublishVideoEvent 以视频 ID 为 key 发送，同一视频的事件落在同一分区保持有序
func (p *EventPublisher) PublishVideoEvent(ctx context.Context, event *VideoEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal video event: %w", err)
	}

	if err := SendRaw(ctx, p.topic, event.VideoID, payload); err != nil {
		return err
	}

	logger.Debug("Video event sent",
		zap.String("type", event.Type),
		zap.String("video_id", event.VideoID),
		zap.String("topic", p.topic),
	)
	return nil
}

// SendRaw 发送原始消息到指定 topic
func SendRaw(ctx context.Context, topic, key string, value []byte) error {
	if producer == nil {
		return fmt.Errorf("kafka producer not initialized")
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send kafka message: %w", err)
	}
	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
