package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vtube-go/internal/config"
	"vtube-go/internal/infra/database"
	infraES "vtube-go/internal/infra/elasticsearch"
	infraKafka "vtube-go/internal/infra/kafka"
	"vtube-go/internal/repository"
	"vtube-go/internal/service"
	"vtube-go/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// 搜索索引 worker：消费视频事件同步 ES，并按计划全量重建索引
func main() {
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	reindex := flag.Bool("reindex", false, "rebuild the search index from the database on startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	if err := infraES.InitIndexes(); err != nil {
		logger.Fatal("Failed to init elasticsearch indexes", zap.Error(err))
	}

	videoRepo := repository.NewVideoRepository(database.Get())
	indexService := service.NewIndexService(videoRepo, infraES.NewVideoIndex())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	runReindex := func() {
		rctx, rcancel := context.WithTimeout(ctx, 30*time.Minute)
		defer rcancel()
		if _, _, err := indexService.Reindex(rctx); err != nil {
			logger.Error("Reindex videos failed", zap.Error(err))
		}
	}

	if *reindex {
		runReindex()
	}

	c := cron.New(cron.WithSeconds())
	if spec := cfg.Worker.ReindexCron; spec != "" {
		if _, err := c.AddFunc(spec, runReindex); err != nil {
			logger.Fatal("Invalid reindex cron", zap.String("spec", spec), zap.Error(err))
		}
		c.Start()
		defer func() { <-c.Stop().Done() }()
		logger.Info("Scheduled search reindex", zap.String("cron", spec))
	}

	topic := cfg.Kafka.VideoEventsTopic()
	logger.Info("Search index worker started",
		zap.String("topic", topic),
		zap.String("group", cfg.Worker.GroupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	// 阻塞直到 ctx 取消
	infraKafka.StartVideoEventConsumer(ctx, cfg.Kafka.Brokers, topic, cfg.Worker.GroupID, indexService.HandleVideoEvent)

	logger.Info("Search index worker stopped")
}
