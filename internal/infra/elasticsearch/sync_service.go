package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"vtube-go/internal/config"
	"vtube-go/internal/model"
	"vtube-go/pkg/logger"

	"go.uber.org/zap"
)

// ESVideoDoc ES 视频文档结构
type ESVideoDoc struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	ChannelID    string `json:"channel_id"`
	ChannelName  string `json:"channel_name"`
	UploaderID   string `json:"uploader_id"`
	UploaderName string `json:"uploader_name"`
	Views        int64  `json:"views"`
	LikeCount    int64  `json:"like_count"`
	DislikeCount int64  `json:"dislike_count"`
	CommentCount int64  `json:"comment_count"`
	UploadDate   string `json:"upload_date"`
	UpdatedAt    string `json:"updated_at"`
}

func videoToESDoc(v *model.Video) *ESVideoDoc {
	return &ESVideoDoc{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		Category:     v.Category,
		ChannelID:    v.ChannelID,
		ChannelName:  v.Channel.ChannelName,
		UploaderID:   v.UploaderID,
		UploaderName: v.Uploader.Username,
		Views:        v.Views,
		LikeCount:    v.LikeCount,
		DislikeCount: v.DislikeCount,
		CommentCount: v.CommentCount,
		UploadDate:   v.UploadDate.UTC().Format(time.RFC3339Nano),
		UpdatedAt:    v.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// SyncVideo 同步单个视频到 ES（v 需预加载 Uploader 与 Channel）
func SyncVideo(ctx context.Context, v *model.Video) error {
	indexName := config.GetElasticsearch().VideosIndex()

	body, err := json.Marshal(videoToESDoc(v))
	if err != nil {
		return err
	}

	resp, err := Index(ctx, indexName, v.ID, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video synced to ES", zap.String("video_id", v.ID))
	return nil
}

// DeleteVideo 从 ES 删除视频，文档不存在视为成功
func DeleteVideo(ctx context.Context, videoID string) error {
	indexName := config.GetElasticsearch().VideosIndex()

	resp, err := Delete(ctx, indexName, videoID)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkSyncVideos 批量同步视频到 ES
func BulkSyncVideos(ctx context.Context, videos []model.Video) (success, failed int, err error) {
	indexName := config.GetElasticsearch().VideosIndex()

	var buf strings.Builder
	for i := range videos {
		v := &videos[i]
		docBody, err := json.Marshal(videoToESDoc(v))
		if err != nil {
			failed++
			continue
		}

		buf.WriteString(fmt.Sprintf(`{"index":{"_index":%q,"_id":%q}}`, indexName, v.ID))
		buf.WriteString("\n")
		buf.Write(docBody)
		buf.WriteString("\n")
	}

	if buf.Len() == 0 {
		return 0, failed, nil
	}

	resp, err := Bulk(ctx, strings.NewReader(buf.String()))
	if err != nil {
		return 0, len(videos), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(videos), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, len(videos), fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

// VideoIndex 视频索引的读写入口，供服务层使用
type VideoIndex struct{}

func NewVideoIndex() *VideoIndex {
	return &VideoIndex{}
}

func (VideoIndex) IndexVideo(ctx context.Context, v *model.Video) error {
	return SyncVideo(ctx, v)
}

func (VideoIndex) DeleteVideo(ctx context.Context, videoID string) error {
	return DeleteVideo(ctx, videoID)
}

func (VideoIndex) BulkIndex(ctx context.Context, videos []model.Video) (int, int, error) {
	return BulkSyncVideos(ctx, videos)
}

func (VideoIndex) SearchVideoIDs(ctx context.Context, query string, latest bool) ([]string, error) {
	return SearchVideoIDs(ctx, query, latest)
}
