package service

import (
	"context"
	"strings"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/model"
	"vtube-go/internal/repository"
	"vtube-go/pkg/logger"

	"go.uber.org/zap"
)

const SortLatest = "latest"

type SearchService struct {
	videoRepo *repository.VideoRepository
	searcher  VideoSearcher
}

// NewSearchService searcher 为空时直接查询数据库
func NewSearchService(videoRepo *repository.VideoRepository, searcher VideoSearcher) *SearchService {
	return &SearchService{videoRepo: videoRepo, searcher: searcher}
}

// SearchVideos 在标题/描述/分类中做大小写无关的子串匹配（任一字段命中即可）。
// ES 优先，失败则降级到 DB；无匹配时返回空列表
func (s *SearchService) SearchVideos(ctx context.Context, req *dto.SearchVideoRequest) (*dto.VideoListData, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptySearchQuery
	}
	latest := req.Sort == SortLatest

	if s.searcher != nil {
		data, err := s.searchFromES(ctx, query, latest)
		if err == nil {
			return data, nil
		}
		logger.Warn("ES search failed, fallback to DB", zap.String("query", query), zap.Error(err))
	}

	return s.searchFromDB(ctx, query)
}

// FilterByCategory 按分类精确匹配
func (s *SearchService) FilterByCategory(ctx context.Context, req *dto.FilterVideoRequest) (*dto.VideoListData, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, ErrEmptyCategory
	}

	videos, err := s.videoRepo.List(ctx, repository.VideoFilter{Category: category})
	if err != nil {
		return nil, err
	}
	return buildVideoListData(videos), nil
}

func (s *SearchService) searchFromES(ctx context.Context, query string, latest bool) (*dto.VideoListData, error) {
	ids, err := s.searcher.SearchVideoIDs(ctx, query, latest)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return buildVideoListData(nil), nil
	}

	videos, err := s.videoRepo.GetByIDsWithRefs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 按 ES 返回顺序输出，索引中残留的已删除视频直接跳过
	videoMap := make(map[string]*model.Video, len(videos))
	for i := range videos {
		videoMap[videos[i].ID] = &videos[i]
	}
	ordered := make([]model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := videoMap[id]; ok {
			ordered = append(ordered, *v)
		}
	}

	return buildVideoListData(ordered), nil
}

func (s *SearchService) searchFromDB(ctx context.Context, query string) (*dto.VideoListData, error) {
	videos, err := s.videoRepo.List(ctx, repository.VideoFilter{Query: query})
	if err != nil {
		return nil, err
	}
	return buildVideoListData(videos), nil
}
