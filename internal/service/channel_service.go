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

type ChannelService struct {
	channelRepo *repository.ChannelRepository
	subRepo     *repository.SubscriptionRepository
	events      *eventEmitter
}

func NewChannelService(
	channelRepo *repository.ChannelRepository,
	subRepo *repository.SubscriptionRepository,
	publisher VideoEventPublisher,
) *ChannelService {
	return &ChannelService{
		channelRepo: channelRepo,
		subRepo:     subRepo,
		events:      newEventEmitter(publisher),
	}
}

// Create 创建频道，频道名由唯一索引保证全局唯一
func (s *ChannelService) Create(ctx context.Context, ownerID string, req *dto.ChannelCreateRequest) (*dto.ChannelInfo, error) {
	name := strings.TrimSpace(req.ChannelName)
	if name == "" {
		return nil, Validationf("频道名不能为空")
	}

	channel := &model.Channel{
		ChannelName:   name,
		OwnerID:       ownerID,
		Description:   req.Description,
		ChannelBanner: req.ChannelBanner,
	}

	if err := s.channelRepo.Create(ctx, channel); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrChannelNameTaken
		}
		return nil, err
	}

	return toChannelInfo(channel), nil
}

// GetDetail 获取频道详情（所有者、订阅者、按上传顺序排列的视频）
func (s *ChannelService) GetDetail(ctx context.Context, channelID string) (*dto.ChannelDetail, error) {
	channel, err := s.channelRepo.GetDetail(ctx, channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	subscribers, err := s.subRepo.ListSubscriberIDs(ctx, channelID)
	if err != nil {
		return nil, err
	}

	detail := &dto.ChannelDetail{
		ChannelInfo: *toChannelInfo(channel),
		Subscribers: subscribers,
		Videos:      make([]dto.VideoInfo, 0, len(channel.Videos)),
	}
	if detail.Subscribers == nil {
		detail.Subscribers = []string{}
	}
	detail.SubscriberCount = int64(len(subscribers))

	if channel.Owner.ID != "" {
		detail.OwnerInfo = &dto.OwnerBrief{
			ID:       channel.Owner.ID,
			Username: channel.Owner.Username,
			Avatar:   channel.Owner.Avatar,
		}
	}

	for i := range channel.Videos {
		detail.Videos = append(detail.Videos, *toVideoInfo(&channel.Videos[i]))
	}

	return detail, nil
}

// ListMine 获取当前用户拥有的频道
func (s *ChannelService) ListMine(ctx context.Context, ownerID string) ([]dto.ChannelInfo, error) {
	channels, err := s.channelRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ChannelInfo, 0, len(channels))
	for i := range channels {
		items = append(items, *toChannelInfo(&channels[i]))
	}
	return items, nil
}

// Update 更新频道（仅所有者）
func (s *ChannelService) Update(ctx context.Context, channelID, actorID string, req *dto.ChannelUpdateRequest) (*dto.ChannelInfo, error) {
	channel, err := s.loadChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if err := ensureCanMutate(actorID, channel); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.ChannelName != nil {
		name := strings.TrimSpace(*req.ChannelName)
		if name == "" {
			return nil, Validationf("频道名不能为空")
		}
		updates["channel_name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ChannelBanner != nil {
		updates["channel_banner"] = *req.ChannelBanner
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.channelRepo.Update(ctx, channelID, updates)
	if err != nil {
		switch {
		case repository.IsDuplicateKey(err):
			return nil, ErrChannelNameTaken
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	return toChannelInfo(updated), nil
}

// Delete 删除频道（仅所有者），级联删除频道下的视频、评论、态度与订阅
func (s *ChannelService) Delete(ctx context.Context, channelID, actorID string) error {
	channel, err := s.loadChannel(ctx, channelID)
	if err != nil {
		return err
	}
	if err := ensureCanMutate(actorID, channel); err != nil {
		return err
	}

	videoIDs, err := s.channelRepo.DeleteCascade(ctx, channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChannelNotFound
		}
		return err
	}

	for _, id := range videoIDs {
		s.events.videoDeleted(ctx, id)
	}
	return nil
}

// ToggleSubscription 切换订阅状态
func (s *ChannelService) ToggleSubscription(ctx context.Context, channelID, userID string) (*dto.SubscriptionData, error) {
	state, err := s.subRepo.Toggle(ctx, channelID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	return &dto.SubscriptionData{
		Subscribed: state.Subscribed,
		SubCount:   state.SubscriberCount,
		ChannelID:  channelID,
	}, nil
}

// GetSubscription 查询当前用户对频道的订阅状态
func (s *ChannelService) GetSubscription(ctx context.Context, channelID, userID string) (*dto.SubscriptionData, error) {
	if _, err := s.loadChannel(ctx, channelID); err != nil {
		return nil, err
	}

	subscribed, err := s.subRepo.Exists(ctx, channelID, userID)
	if err != nil {
		return nil, err
	}
	count, err := s.subRepo.CountByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	return &dto.SubscriptionData{
		Subscribed: subscribed,
		SubCount:   count,
		ChannelID:  channelID,
	}, nil
}

func (s *ChannelService) loadChannel(ctx context.Context, channelID string) (*model.Channel, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return channel, nil
}

func toChannelInfo(channel *model.Channel) *dto.ChannelInfo {
	return &dto.ChannelInfo{
		ID:              channel.ID,
		ChannelName:     channel.ChannelName,
		Owner:           channel.OwnerID,
		Description:     channel.Description,
		ChannelBanner:   channel.ChannelBanner,
		SubscriberCount: channel.SubscriberCount,
		VideoCount:      channel.VideoCount,
		CreatedAt:       channel.CreatedAt,
		UpdatedAt:       channel.UpdatedAt,
	}
}
