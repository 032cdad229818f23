package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vtube-go/internal/api/handler"
	"vtube-go/internal/api/middleware"
	"vtube-go/internal/api/router"
	"vtube-go/internal/config"
	"vtube-go/internal/infra/database"
	infraES "vtube-go/internal/infra/elasticsearch"
	infraKafka "vtube-go/internal/infra/kafka"
	infraMinio "vtube-go/internal/infra/minio"
	infraRedis "vtube-go/internal/infra/redis"
	"vtube-go/internal/model"
	"vtube-go/internal/repository"
	"vtube-go/internal/service"
	"vtube-go/pkg/logger"

	_ "vtube-go/api/openapi"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title VTube-Go API
// @version 1.0
// @description 视频分享平台 API 服务：频道、视频、评论、点赞与订阅

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	// 加载配置文件
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(model.All()...); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	checks := map[string]handler.Pinger{
		"database": func(ctx context.Context) error {
			sqlDB, err := database.Get().DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	// Redis：登出黑名单（可选，不可用时登出只由客户端丢弃 token）
	var tokenStore service.TokenStore
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis init failed, token revocation disabled", zap.Error(err))
	} else {
		defer infraRedis.Close()
		tokenStore = infraRedis.NewTokenStore(infraRedis.Get())
		checks["redis"] = infraRedis.Ping
	}

	// MinIO：图片上传（可选）
	var objectStore service.ObjectStore
	if err := infraMinio.Init(&cfg.MinIO); err != nil {
		logger.Warn("MinIO init failed, image upload disabled", zap.Error(err))
	} else {
		objectStore = infraMinio.NewPublicStore(&cfg.MinIO)
	}

	// Kafka：视频事件（可选，索引可由 worker 定时全量重建）
	var publisher service.VideoEventPublisher
	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Warn("Kafka producer init failed, video events disabled", zap.Error(err))
	} else {
		defer infraKafka.CloseProducer()
		publisher = infraKafka.NewEventPublisher(cfg.Kafka.VideoEventsTopic())
	}

	// Elasticsearch（可选，失败则搜索降级到 DB）
	var searcher service.VideoSearcher
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
	} else {
		defer infraES.Close()
		if err := infraES.InitIndexes(); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
		searcher = infraES.NewVideoIndex()
	}

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	channelRepo := repository.NewChannelRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := service.NewAuthService(userRepo, channelRepo, tokenStore)
	channelService := service.NewChannelService(channelRepo, subRepo, publisher)
	videoService := service.NewVideoService(videoRepo, channelRepo, publisher)
	reactionService := service.NewReactionService(reactionRepo, videoRepo)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	searchService := service.NewSearchService(videoRepo, searcher)
	mediaService := service.NewMediaService(objectStore)

	authHandler := handler.NewAuthHandler(authService)
	channelHandler := handler.NewChannelHandler(channelService)
	videoHandler := handler.NewVideoHandler(videoService, reactionService)
	commentHandler := handler.NewCommentHandler(commentService)
	searchHandler := handler.NewSearchHandler(searchService)
	mediaHandler := handler.NewMediaHandler(mediaService)
	healthHandler := handler.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks)

	gin.SetMode(cfg.App.Mode)

	r := gin.New()
	r.MaxMultipartMemory = cfg.Media.MaxBytes
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", healthHandler.Healthz)
	r.GET("/", healthHandler.Root)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Setup(r,
		middleware.AuthRequired(authService),
		authHandler,
		channelHandler,
		videoHandler,
		commentHandler,
		searchHandler,
		mediaHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}
