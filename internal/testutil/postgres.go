package testutil

import (
	"fmt"
	"os"
	"testing"

	"vtube-go/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// PostgresDSNEnv 键值对形式的 DSN，例如 "host=localhost user=postgres password=postgres dbname=vtube_test sslmode=disable"
const PostgresDSNEnv = "VTUBE_TEST_POSTGRES_DSN"

// NewPostgresDB 在独立 schema 中建库，未设置 PostgresDSNEnv 时跳过
func NewPostgresDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s 未设置，跳过 Postgres 用例", PostgresDSNEnv)
	}

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}

	admin, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	adminDB, err := admin.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}

	schema := fmt.Sprintf("vtube_test_%d_%d", os.Getpid(), dbSeq.Add(1))
	if err := admin.Exec("CREATE SCHEMA " + schema).Error; err != nil {
		_ = adminDB.Close()
		t.Fatalf("create schema: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dsn+" search_path="+schema), gormCfg)
	if err != nil {
		t.Fatalf("open postgres schema %s: %v", schema, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
		_ = admin.Exec("DROP SCHEMA " + schema + " CASCADE").Error
		_ = adminDB.Close()
	})

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

// ForEachDB 依次在 SQLite 与 Postgres 上运行 fn
//
// SQLite 只有一个连接且忽略 FOR UPDATE，并发事务实际被串行执行，只能校验计数结果；
// 行锁在 Postgres 上才真正生效。
func ForEachDB(t *testing.T, fn func(t *testing.T, db *gorm.DB)) {
	t.Run("sqlite", func(t *testing.T) {
		fn(t, NewDB(t))
	})
	t.Run("postgres", func(t *testing.T) {
		fn(t, NewPostgresDB(t))
	})
}
