package service

import (
	"context"
	"errors"
	"strings"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/model"
	"vtube-go/internal/repository"

	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	videoRepo   *repository.VideoRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, videoRepo *repository.VideoRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

// Create 发表评论，返回视频的全部评论
func (s *CommentService) Create(ctx context.Context, videoID, userID string, req *dto.CommentRequest) (*dto.CommentListData, error) {
	text, err := commentText(req)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		VideoID: videoID,
		UserID:  userID,
		Text:    text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	return s.listComments(ctx, videoID)
}

// Update 修改评论（仅作者），返回视频的全部评论
func (s *CommentService) Update(ctx context.Context, videoID, commentID, actorID string, req *dto.CommentRequest) (*dto.CommentListData, error) {
	text, err := commentText(req)
	if err != nil {
		return nil, err
	}

	comment, err := s.loadComment(ctx, videoID, commentID)
	if err != nil {
		return nil, err
	}
	if err := ensureCanMutate(actorID, comment); err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateText(ctx, commentID, text); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return s.listComments(ctx, videoID)
}

// Delete 删除评论（仅作者），返回视频剩余的全部评论
func (s *CommentService) Delete(ctx context.Context, videoID, commentID, actorID string) (*dto.CommentListData, error) {
	comment, err := s.loadComment(ctx, videoID, commentID)
	if err != nil {
		return nil, err
	}
	if err := ensureCanMutate(actorID, comment); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Delete(ctx, videoID, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return s.listComments(ctx, videoID)
}

// ListByVideo 获取视频的全部评论
func (s *CommentService) ListByVideo(ctx context.Context, videoID string) (*dto.CommentListData, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return s.listComments(ctx, videoID)
}

// loadComment 视频不存在返回 ErrVideoNotFound，评论不属于该视频返回 ErrCommentNotFound
func (s *CommentService) loadComment(ctx context.Context, videoID, commentID string) (*model.Comment, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, videoID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) listComments(ctx context.Context, videoID string) (*dto.CommentListData, error) {
	comments, err := s.commentRepo.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		items = append(items, *toCommentInfo(&comments[i]))
	}

	return &dto.CommentListData{
		VideoID:  videoID,
		Comments: items,
		Total:    len(items),
	}, nil
}

func commentText(req *dto.CommentRequest) (string, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return "", Validationf("评论内容不能为空")
	}
	return text, nil
}

func toCommentInfo(comment *model.Comment) *dto.CommentInfo {
	return &dto.CommentInfo{
		ID:        comment.ID,
		VideoID:   comment.VideoID,
		UserID:    comment.UserID,
		Text:      comment.Text,
		Timestamp: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Username:  comment.User.Username,
		Avatar:    comment.User.Avatar,
	}
}
