package repository

import (
	"context"

	"vtube-go/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 在一个事务中创建评论并增加视频评论数，
// 视频不存在时返回 gorm.ErrRecordNotFound
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockVideo(tx, comment.VideoID); err != nil {
			return err
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&model.Video{}).Where("id = ?", comment.VideoID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	})
}

// GetByID 获取某视频下的评论
func (r *CommentRepository) GetByID(ctx context.Context, videoID, commentID string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND video_id = ?", commentID, videoID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateText 更新评论内容
func (r *CommentRepository) UpdateText(ctx context.Context, commentID, text string) error {
	result := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", commentID).
		Update("text", text)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 在一个事务中删除评论并减少视频评论数
func (r *CommentRepository) Delete(ctx context.Context, videoID, commentID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockVideo(tx, videoID); err != nil {
			return err
		}
		result := tx.Where("id = ? AND video_id = ?", commentID, videoID).Delete(&model.Comment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&model.Video{}).
			Where("id = ? AND comment_count > 0", videoID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - 1")).Error
	})
}

// ListByVideo 获取视频的全部评论（含作者），按发表时间升序
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).Preload("User").
		Where("video_id = ?", videoID).
		Order("created_at ASC").Find(&comments).Error
	return comments, err
}
