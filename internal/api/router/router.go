package router

import (
	"vtube-go/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authRequired gin.HandlerFunc,
	authHandler *handler.AuthHandler,
	channelHandler *handler.ChannelHandler,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
	searchHandler *handler.SearchHandler,
	mediaHandler *handler.MediaHandler,
) {
	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		authAuth := auth.Group("", authRequired)
		{
			authAuth.POST("/logout", authHandler.Logout)
			authAuth.GET("/me", authHandler.Me)
		}
	}

	// --- 频道模块 ---
	channels := v1.Group("/channels")
	{
		channels.GET("/:id", channelHandler.GetDetail)

		channelsAuth := channels.Group("", authRequired)
		{
			channelsAuth.POST("", channelHandler.Create)
			channelsAuth.GET("/mine", channelHandler.ListMine)
			channelsAuth.PUT("/:id", channelHandler.Update)
			channelsAuth.DELETE("/:id", channelHandler.Delete)
			channelsAuth.POST("/:id/subscribe", channelHandler.ToggleSubscription)
			channelsAuth.GET("/:id/subscription", channelHandler.GetSubscription)
		}
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 公开接口（不需要登录）
		videos.GET("", videoHandler.List)
		videos.GET("/search", searchHandler.SearchVideos)
		videos.GET("/filter", searchHandler.FilterByCategory)
		videos.GET("/category/:category", videoHandler.ListByCategory)
		videos.GET("/channel/:channelId", videoHandler.ListByChannel)
		videos.GET("/:id", videoHandler.GetDetail)

		videosAuth := videos.Group("", authRequired)
		{
			videosAuth.POST("", videoHandler.Create)
			videosAuth.PUT("/:id", videoHandler.Update)
			videosAuth.DELETE("/:id", videoHandler.Delete)
			videosAuth.POST("/:id/like", videoHandler.Like)
			videosAuth.POST("/:id/dislike", videoHandler.Dislike)
			videosAuth.GET("/:id/reaction", videoHandler.GetReaction)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments")
	{
		comments.GET("/:videoId", commentHandler.ListByVideo)

		commentsAuth := comments.Group("", authRequired)
		{
			commentsAuth.POST("/:videoId", commentHandler.Create)
			commentsAuth.PUT("/:videoId/:commentId", commentHandler.Update)
			commentsAuth.DELETE("/:videoId/:commentId", commentHandler.Delete)
		}
	}

	// --- 媒体上传 ---
	v1.POST("/media/images", authRequired, mediaHandler.UploadImage)
}
