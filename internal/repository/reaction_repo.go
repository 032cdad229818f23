package repository

import (
	"context"
	"errors"

	"vtube-go/internal/model"

	"gorm.io/gorm"
)

// ReactionState 视频态度统计与当前用户的态度（"" 表示无）
type ReactionState struct {
	Likes    int64
	Dislikes int64
	Reaction string
}

type ReactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Toggle 切换用户对视频的态度：
//   - 无记录：写入 kind
//   - 已是 kind：删除（取消）
//   - 是相反态度：改为 kind
//
// 持有视频行锁在一个事务中完成，并在同一事务内回写视频的点赞/点踩计数
func (r *ReactionRepository) Toggle(ctx context.Context, videoID, userID, kind string) (*ReactionState, error) {
	state := &ReactionState{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockVideo(tx, videoID); err != nil {
			return err
		}

		var existing model.Reaction
		err := tx.Where("video_id = ? AND user_id = ?", videoID, userID).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&model.Reaction{VideoID: videoID, UserID: userID, Kind: kind}).Error; err != nil {
				return err
			}
			state.Reaction = kind
		case err != nil:
			return err
		case existing.Kind == kind:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		default:
			if err := tx.Model(&existing).Update("kind", kind).Error; err != nil {
				return err
			}
			state.Reaction = kind
		}

		likes, dislikes, err := countReactions(tx, videoID)
		if err != nil {
			return err
		}
		state.Likes, state.Dislikes = likes, dislikes

		return tx.Model(&model.Video{}).Where("id = ?", videoID).
			UpdateColumns(map[string]interface{}{
				"like_count":    likes,
				"dislike_count": dislikes,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Get 查询用户对视频的态度与视频统计
func (r *ReactionRepository) Get(ctx context.Context, videoID, userID string) (*ReactionState, error) {
	db := r.db.WithContext(ctx)
	state := &ReactionState{}

	var kinds []string
	if err := db.Model(&model.Reaction{}).
		Where("video_id = ? AND user_id = ?", videoID, userID).
		Limit(1).Pluck("kind", &kinds).Error; err != nil {
		return nil, err
	}
	if len(kinds) > 0 {
		state.Reaction = kinds[0]
	}

	likes, dislikes, err := countReactions(db, videoID)
	if err != nil {
		return nil, err
	}
	state.Likes, state.Dislikes = likes, dislikes
	return state, nil
}

func countReactions(db *gorm.DB, videoID string) (likes, dislikes int64, err error) {
	var rows []struct {
		Kind  string
		Total int64
	}
	err = db.Model(&model.Reaction{}).
		Select("kind, COUNT(*) AS total").
		Where("video_id = ?", videoID).
		Group("kind").Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}
	for _, row := range rows {
		switch row.Kind {
		case model.ReactionLike:
			likes = row.Total
		case model.ReactionDislike:
			dislikes = row.Total
		}
	}
	return likes, dislikes, nil
}
