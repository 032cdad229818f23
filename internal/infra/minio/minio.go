package minio

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"vtube-go/internal/config"
	"vtube-go/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var client *minio.Client

// Init 初始化 MinIO 客户端，确保图片 Bucket 存在并设置为公开读
func Init(cfg *config.MinIOConfig) error {
	c, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bucket := cfg.PublicBucket
	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := c.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		logger.Info("MinIO bucket created", zap.String("bucket", bucket))
	}

	// 缩略图、横幅、头像需要公开读，供前端直接引用
	policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
	if err := c.SetBucketPolicy(ctx, bucket, policy); err != nil {
		return fmt.Errorf("failed to set public policy for %s: %w", bucket, err)
	}

	client = c
	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", bucket),
	)

	return nil
}

// UploadFile 上传文件到指定 Bucket
func UploadFile(ctx context.Context, bucket, objectName string, reader io.Reader, fileSize int64, contentType string) error {
	if client == nil {
		return fmt.Errorf("minio client not initialized")
	}
	_, err := client.PutObject(ctx, bucket, objectName, reader, fileSize, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return fmt.Errorf("failed to upload to minio: %w", err)
	}
	return nil
}

// GetPublicURL 生成公开访问 URL；配置了 public_url（CDN/反向代理）时优先使用
func GetPublicURL(cfg *config.MinIOConfig, objectName string) string {
	if base := strings.TrimRight(cfg.PublicURL, "/"); base != "" {
		return fmt.Sprintf("%s/%s/%s", base, cfg.PublicBucket, objectName)
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, cfg.Endpoint, cfg.PublicBucket, objectName)
}

// PublicStore 公开读 Bucket 的对象存储
type PublicStore struct {
	cfg *config.MinIOConfig
}

func NewPublicStore(cfg *config.MinIOConfig) *PublicStore {
	return &PublicStore{cfg: cfg}
}

// PutPublicObject 上传对象并返回公开访问 URL
func (s *PublicStore) PutPublicObject(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	if err := UploadFile(ctx, s.cfg.PublicBucket, objectName, r, size, contentType); err != nil {
		return "", err
	}
	return GetPublicURL(s.cfg, objectName), nil
}
