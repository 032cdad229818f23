package service

import (
	"context"
	"errors"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/model"
	"vtube-go/internal/repository"

	"gorm.io/gorm"
)

type ReactionService struct {
	reactionRepo *repository.ReactionRepository
	videoRepo    *repository.VideoRepository
}

func NewReactionService(reactionRepo *repository.ReactionRepository, videoRepo *repository.VideoRepository) *ReactionService {
	return &ReactionService{reactionRepo: reactionRepo, videoRepo: videoRepo}
}

// Toggle 切换点赞/点踩。重复同一操作会取消，另一操作会互斥替换；
// 两次相同调用后状态复原，因此不是幂等操作
func (s *ReactionService) Toggle(ctx context.Context, videoID, userID, kind string) (*dto.ReactionData, error) {
	if kind != model.ReactionLike && kind != model.ReactionDislike {
		return nil, ErrInvalidReaction
	}

	state, err := s.reactionRepo.Toggle(ctx, videoID, userID, kind)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	return toReactionData(state), nil
}

// Get 查询当前用户对视频的态度与计数
func (s *ReactionService) Get(ctx context.Context, videoID, userID string) (*dto.ReactionData, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	state, err := s.reactionRepo.Get(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}
	return toReactionData(state), nil
}

func toReactionData(state *repository.ReactionState) *dto.ReactionData {
	return &dto.ReactionData{
		Likes:    state.Likes,
		Dislikes: state.Dislikes,
		Reaction: state.Reaction,
	}
}
