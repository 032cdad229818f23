package handler

import (
	"vtube-go/internal/api/middleware"
	"vtube-go/internal/api/response"
	"vtube-go/internal/service"
	"vtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// parseID 解析路径中的实体 ID，格式非法时直接返回 400
func parseID(c *gin.Context, param, label string) (string, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, "无效的"+label+"ID")
		return "", false
	}
	return id.String(), true
}

// currentUserID 获取当前登录用户，AuthRequired 之后调用
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "无法获取用户信息")
		return "", false
	}
	return userID, true
}

// handleServiceError 按业务错误分类映射 HTTP 状态码，未分类错误记日志并返回通用提示
func handleServiceError(c *gin.Context, op string, err error) {
	switch service.KindOf(err) {
	case service.KindValidation:
		response.BadRequest(c, err.Error())
	case service.KindNotFound:
		response.NotFound(c, err.Error())
	case service.KindForbidden:
		response.Forbidden(c, err.Error())
	case service.KindConflict:
		response.Conflict(c, err.Error())
	case service.KindUnauthenticated:
		response.Unauthorized(c, err.Error())
	case service.KindUnavailable:
		response.ServiceUnavailable(c, err.Error())
	default:
		userID, _ := middleware.GetCurrentUserID(c)
		logger.Error(op+" failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
