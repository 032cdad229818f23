package service

import (
	"context"
	"errors"
	"strings"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/model"
	"vtube-go/internal/repository"
	"vtube-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type VideoService struct {
	videoRepo   *repository.VideoRepository
	channelRepo *repository.ChannelRepository
	events      *eventEmitter
}

func NewVideoService(
	videoRepo *repository.VideoRepository,
	channelRepo *repository.ChannelRepository,
	publisher VideoEventPublisher,
) *VideoService {
	return &VideoService{
		videoRepo:   videoRepo,
		channelRepo: channelRepo,
		events:      newEventEmitter(publisher),
	}
}

// Create 发布视频：频道必须存在且属于当前用户，视频与频道视频数在同一事务中写入
func (s *VideoService) Create(ctx context.Context, uploaderID string, req *dto.VideoCreateRequest) (*dto.VideoInfo, error) {
	channel, err := s.channelRepo.GetByID(ctx, req.ChannelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	if err := ensureCanMutate(uploaderID, channel); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = model.DefaultCategory
	}

	video := &model.Video{
		Title:        strings.TrimSpace(req.Title),
		ThumbnailURL: req.ThumbnailURL,
		VideoURL:     req.VideoURL,
		Description:  req.Description,
		Category:     category,
		ChannelID:    channel.ID,
		UploaderID:   uploaderID,
	}
	if video.Title == "" {
		return nil, Validationf("视频标题不能为空")
	}

	if err := s.videoRepo.CreateInChannel(ctx, video); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	s.events.videoCreated(ctx, video.ID)

	video.Channel = *channel
	return toVideoInfo(video), nil
}

// List 获取全部视频，最新上传在前
func (s *VideoService) List(ctx context.Context) (*dto.VideoListData, error) {
	return s.list(ctx, repository.VideoFilter{})
}

// ListByCategory 按分类精确筛选
func (s *VideoService) ListByCategory(ctx context.Context, category string) (*dto.VideoListData, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrEmptyCategory
	}
	return s.list(ctx, repository.VideoFilter{Category: category})
}

// ListByChannel 获取频道下的视频
func (s *VideoService) ListByChannel(ctx context.Context, channelID string) (*dto.VideoListData, error) {
	if _, err := s.channelRepo.GetByID(ctx, channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return s.list(ctx, repository.VideoFilter{ChannelID: channelID})
}

func (s *VideoService) list(ctx context.Context, filter repository.VideoFilter) (*dto.VideoListData, error) {
	videos, err := s.videoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return buildVideoListData(videos), nil
}

// GetDetail 获取视频详情（播放量 +1）
func (s *VideoService) GetDetail(ctx context.Context, videoID string) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByIDWithRefs(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
		logger.Warn("Increment video views failed", zap.String("video_id", videoID), zap.Error(err))
	} else {
		video.Views++
	}

	return toVideoInfo(video), nil
}

// Update 更新视频信息（仅上传者），频道与上传者不可修改
func (s *VideoService) Update(ctx context.Context, videoID, actorID string, req *dto.VideoUpdateRequest) (*dto.VideoInfo, error) {
	video, err := s.loadVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := ensureCanMutate(actorID, video); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, Validationf("视频标题不能为空")
		}
		updates["title"] = title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ThumbnailURL != nil {
		updates["thumbnail_url"] = *req.ThumbnailURL
	}
	if req.VideoURL != nil {
		updates["video_url"] = *req.VideoURL
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return nil, ErrEmptyCategory
		}
		updates["category"] = category
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.videoRepo.Update(ctx, videoID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	s.events.videoUpdated(ctx, videoID)
	return toVideoInfo(updated), nil
}

// Delete 删除视频（仅上传者），评论与态度一并删除
func (s *VideoService) Delete(ctx context.Context, videoID, actorID string) error {
	video, err := s.loadVideo(ctx, videoID)
	if err != nil {
		return err
	}
	if err := ensureCanMutate(actorID, video); err != nil {
		return err
	}

	if err := s.videoRepo.DeleteCascade(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	s.events.videoDeleted(ctx, videoID)
	return nil
}

func (s *VideoService) loadVideo(ctx context.Context, videoID string) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

// toVideoInfo 将 model.Video 转换为 dto.VideoInfo，关联未加载时省略嵌套信息
func toVideoInfo(video *model.Video) *dto.VideoInfo {
	info := &dto.VideoInfo{
		ID:           video.ID,
		Title:        video.Title,
		ThumbnailURL: video.ThumbnailURL,
		VideoURL:     video.VideoURL,
		Description:  video.Description,
		Category:     video.Category,
		ChannelID:    video.ChannelID,
		Uploader:     video.UploaderID,
		Views:        video.Views,
		Likes:        video.LikeCount,
		Dislikes:     video.DislikeCount,
		CommentCount: video.CommentCount,
		UploadDate:   video.UploadDate,
		UpdatedAt:    video.UpdatedAt,
	}

	if video.Uploader.ID != "" {
		info.UploaderInfo = &dto.AuthorBrief{
			ID:       video.Uploader.ID,
			Username: video.Uploader.Username,
			Avatar:   video.Uploader.Avatar,
		}
	}
	if video.Channel.ID != "" {
		info.Channel = &dto.ChannelBrief{
			ID:          video.Channel.ID,
			ChannelName: video.Channel.ChannelName,
		}
	}

	return info
}

func buildVideoListData(videos []model.Video) *dto.VideoListData {
	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, *toVideoInfo(&videos[i]))
	}
	return &dto.VideoListData{
		Videos: items,
		Total:  len(items),
	}
}
