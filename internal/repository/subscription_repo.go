package repository

import (
	"context"

	"vtube-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionState 订阅切换后的状态
type SubscriptionState struct {
	Subscribed      bool
	SubscriberCount int64
}

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Toggle 切换订阅：已订阅则取消，否则订阅。
// 整个过程在一个事务内完成并持有频道行锁，DELETE 的影响行数即为切换前的成员状态
func (r *SubscriptionRepository) Toggle(ctx context.Context, channelID, userID string) (*SubscriptionState, error) {
	state := &SubscriptionState{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockChannel(tx, channelID); err != nil {
			return err
		}

		result := tx.Where("channel_id = ? AND user_id = ?", channelID, userID).
			Delete(&model.Subscription{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			sub := &model.Subscription{ChannelID: channelID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(sub).Error; err != nil {
				return err
			}
			state.Subscribed = true
		}

		count, err := countSubscribers(tx, channelID)
		if err != nil {
			return err
		}
		state.SubscriberCount = count

		return tx.Model(&model.Channel{}).Where("id = ?", channelID).
			UpdateColumn("subscriber_count", count).Error
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Exists 检查是否已订阅
func (r *SubscriptionRepository) Exists(ctx context.Context, channelID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Count(&count).Error
	return count > 0, err
}

// CountByChannel 统计频道订阅数
func (r *SubscriptionRepository) CountByChannel(ctx context.Context, channelID string) (int64, error) {
	return countSubscribers(r.db.WithContext(ctx), channelID)
}

// ListSubscriberIDs 获取频道订阅者 ID（按订阅时间）
func (r *SubscriptionRepository) ListSubscriberIDs(ctx context.Context, channelID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func countSubscribers(db *gorm.DB, channelID string) (int64, error) {
	var count int64
	err := db.Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}
