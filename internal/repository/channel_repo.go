package repository

import (
	"context"

	"vtube-go/internal/model"

	"gorm.io/gorm"
)

type ChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// Create 创建频道，频道名冲突由唯一索引拒绝（gorm.ErrDuplicatedKey）
func (r *ChannelRepository) Create(ctx context.Context, channel *model.Channel) error {
	return r.db.WithContext(ctx).Create(channel).Error
}

// GetByID 根据 ID 获取频道
func (r *ChannelRepository) GetByID(ctx context.Context, id string) (*model.Channel, error) {
	var channel model.Channel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&channel).Error
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

// GetDetail 获取频道详情（含所有者与按上传顺序排列的视频）
func (r *ChannelRepository) GetDetail(ctx context.Context, id string) (*model.Channel, error) {
	var channel model.Channel
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("upload_date ASC")
		}).
		Where("id = ?", id).First(&channel).Error
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

// ListByOwner 获取用户拥有的频道（按创建时间）
func (r *ChannelRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Channel, error) {
	var channels []model.Channel
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at ASC").Find(&channels).Error
	return channels, err
}

// FirstIDByOwner 获取用户的第一个频道 ID，没有频道时返回空串
func (r *ChannelRepository) FirstIDByOwner(ctx context.Context, ownerID string) (string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Channel{}).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").Limit(1).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return "", err
	}
	return ids[0], nil
}

// Update 更新频道字段
func (r *ChannelRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Channel, error) {
	result := r.db.WithContext(ctx).Model(&model.Channel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// DeleteCascade 在一个事务中删除频道及其视频、视频的评论与态度、频道订阅，
// 返回被删除的视频 ID
func (r *ChannelRepository) DeleteCascade(ctx context.Context, id string) ([]string, error) {
	var videoIDs []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockChannel(tx, id); err != nil {
			return err
		}

		if err := tx.Model(&model.Video{}).Where("channel_id = ?", id).
			Pluck("id", &videoIDs).Error; err != nil {
			return err
		}

		if len(videoIDs) > 0 {
			if err := tx.Where("video_id IN ?", videoIDs).Delete(&model.Reaction{}).Error; err != nil {
				return err
			}
			if err := tx.Where("video_id IN ?", videoIDs).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", videoIDs).Delete(&model.Video{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("channel_id = ?", id).Delete(&model.Subscription{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&model.Channel{}).Error
	})
	if err != nil {
		return nil, err
	}
	return videoIDs, nil
}
