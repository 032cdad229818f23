// Package testutil 提供测试用的内存数据库
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"vtube-go/internal/config"
	"vtube-go/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB 为每个测试创建独立的内存 SQLite 库并完成迁移
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	// 共享缓存 + 唯一库名：同一测试内多连接看到同一份数据，测试之间相互隔离
	dsn := fmt.Sprintf("file:vtube_test_%d?mode=memory&cache=shared&_foreign_keys=off", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// SQLite 单写者，限制为一个连接避免 database is locked
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

// InstallConfig 安装测试配置（JWT 等依赖全局配置）
func InstallConfig() *config.Config {
	cfg := &config.Config{
		App: config.AppConfig{Name: "vtube-go-test", Mode: "test"},
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 168},
		Media: config.MediaConfig{
			MaxBytes:    5 << 20,
			MaxPixels:   40000000,
			JPEGQuality: 85,
		},
		MinIO: config.MinIOConfig{PublicBucket: "public-images"},
	}
	config.Set(cfg)
	return cfg
}
