package repository

import (
	"context"
	"strings"

	"vtube-go/internal/model"

	"gorm.io/gorm"
)

// VideoFilter 视频列表筛选条件，零值表示不筛选
type VideoFilter struct {
	ChannelID string
	Category  string // 精确匹配
	Query     string // title/description/category 大小写无关子串，任一命中即可
}

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// CreateInChannel 在一个事务中创建视频并增加所属频道的视频数，
// 频道不存在（或已被并发删除）时返回 gorm.ErrRecordNotFound
func (r *VideoRepository) CreateInChannel(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockChannel(tx, video.ChannelID); err != nil {
			return err
		}
		if err := tx.Create(video).Error; err != nil {
			return err
		}
		return tx.Model(&model.Channel{}).Where("id = ?", video.ChannelID).
			UpdateColumn("video_count", gorm.Expr("video_count + 1")).Error
	})
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithRefs 根据 ID 获取视频（含上传者与频道）
func (r *VideoRepository) GetByIDWithRefs(ctx context.Context, id string) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Preload("Uploader").Preload("Channel").
		Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDsWithRefs 批量获取视频（含上传者与频道），顺序不保证
func (r *VideoRepository) GetByIDsWithRefs(ctx context.Context, ids []string) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.WithContext(ctx).Preload("Uploader").Preload("Channel").
		Where("id IN ?", ids).Find(&videos).Error
	return videos, err
}

// List 按条件列出全部匹配视频，最新上传在前
func (r *VideoRepository) List(ctx context.Context, filter VideoFilter) ([]model.Video, error) {
	query := r.db.WithContext(ctx).Model(&model.Video{})

	if filter.ChannelID != "" {
		query = query.Where("channel_id = ?", filter.ChannelID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := likePattern(q)
		query = query.Where(
			`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}

	var videos []model.Video
	err := query.Preload("Uploader").Preload("Channel").
		Order("upload_date DESC").Find(&videos).Error
	return videos, err
}

// Update 更新视频字段
func (r *VideoRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByIDWithRefs(ctx, id)
}

// DeleteCascade 在一个事务中删除视频及其评论、态度，并减少频道视频数
func (r *VideoRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		video, err := lockVideo(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Where("video_id = ?", id).Delete(&model.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&model.Video{}).Error; err != nil {
			return err
		}

		return tx.Model(&model.Channel{}).
			Where("id = ? AND video_count > 0", video.ChannelID).
			UpdateColumn("video_count", gorm.Expr("video_count - 1")).Error
	})
}

// IncrementViews 播放量 +1
func (r *VideoRepository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// EachBatch 分批遍历全部视频（含上传者与频道），用于重建搜索索引
func (r *VideoRepository) EachBatch(ctx context.Context, size int, fn func([]model.Video) error) error {
	var batch []model.Video
	result := r.db.WithContext(ctx).Preload("Uploader").Preload("Channel").
		FindInBatches(&batch, size, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		})
	return result.Error
}
