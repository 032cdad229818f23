package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/config"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// 图片用途及其最大尺寸（等比缩放，不放大）
const (
	ImageKindThumbnail = "thumbnail"
	ImageKindBanner    = "banner"
	ImageKindAvatar    = "avatar"
)

type imageBounds struct {
	Width  int
	Height int
}

var imageKindBounds = map[string]imageBounds{
	ImageKindThumbnail: {Width: 1280, Height: 720},
	ImageKindBanner:    {Width: 2560, Height: 1440},
	ImageKindAvatar:    {Width: 400, Height: 400},
}

var allowedImageFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

type MediaService struct {
	store ObjectStore
}

// NewMediaService store 为空时上传返回 ErrStorageUnavailable
func NewMediaService(store ObjectStore) *MediaService {
	return &MediaService{store: store}
}

// UploadImage 校验并缩放图片，统一转为 JPEG 存入公开 Bucket，返回访问 URL
func (s *MediaService) UploadImage(ctx context.Context, uploaderID, kind string, r io.Reader) (*dto.ImageUploadData, error) {
	bounds, ok := imageKindBounds[kind]
	if !ok {
		return nil, ErrInvalidImageKind
	}
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	mediaCfg := config.GetMedia()
	maxBytes := mediaCfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrImageTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || !allowedImageFormats[format] {
		return nil, ErrUnsupportedImage
	}

	// 解码前按头部声明的尺寸限制像素数，小文件也可能声明超大画布
	maxPixels := mediaCfg.MaxPixels
	if maxPixels <= 0 {
		maxPixels = 40000000
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, ErrImageTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	fitted := imaging.Fit(img, bounds.Width, bounds.Height, imaging.Lanczos)

	quality := mediaCfg.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	size := int64(buf.Len())
	objectName := fmt.Sprintf("%s/%s/%s.jpg", kind, uploaderID, uuid.NewString())

	url, err := s.store.PutPublicObject(ctx, objectName, &buf, size, "image/jpeg")
	if err != nil {
		return nil, err
	}

	b := fitted.Bounds()
	return &dto.ImageUploadData{
		URL:    url,
		Kind:   kind,
		Width:  b.Dx(),
		Height: b.Dy(),
		Size:   size,
	}, nil
}
