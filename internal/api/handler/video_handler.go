package handler

import (
	"vtube-go/internal/api/dto"
	"vtube-go/internal/api/response"
	"vtube-go/internal/model"
	"vtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService    *service.VideoService
	reactionService *service.ReactionService
}

func NewVideoHandler(videoService *service.VideoService, reactionService *service.ReactionService) *VideoHandler {
	return &VideoHandler{videoService: videoService, reactionService: reactionService}
}

// Create 发布视频
// @Summary 发布视频
// @Description 只保存元数据，频道必须属于当前用户
// @Tags 视频
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VideoCreateRequest true "视频信息"
// @Success 201 {object} response.Response{data=dto.VideoInfo} "发布成功"
// @Failure 403 {object} response.ErrorResponse "不是频道所有者"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /videos [post]
func (h *VideoHandler) Create(c *gin.Context) {
	var req dto.VideoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	info, err := h.videoService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, "Create video", err)
		return
	}

	response.Created(c, "发布视频成功", info)
}

// List 视频列表
// @Summary 获取全部视频
// @Description 最新上传在前
// @Tags 视频
// @Produce json
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Router /videos [get]
func (h *VideoHandler) List(c *gin.Context) {
	data, err := h.videoService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, "List videos", err)
		return
	}

	response.OK(c, "获取视频列表成功", data)
}

// ListByCategory 分类视频
// @Summary 按分类获取视频
// @Tags 视频
// @Produce json
// @Param category path string true "分类"
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Failure 400 {object} response.ErrorResponse "分类不能为空"
// @Router /videos/category/{category} [get]
func (h *VideoHandler) ListByCategory(c *gin.Context) {
	data, err := h.videoService.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		handleServiceError(c, "List videos by category", err)
		return
	}

	response.OK(c, "获取分类视频成功", data)
}

// ListByChannel 频道视频
// @Summary 获取频道下的视频
// @Tags 视频
// @Produce json
// @Param channelId path string true "频道ID"
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /videos/channel/{channelId} [get]
func (h *VideoHandler) ListByChannel(c *gin.Context) {
	channelID, ok := parseID(c, "channelId", "频道")
	if !ok {
		return
	}

	data, err := h.videoService.ListByChannel(c.Request.Context(), channelID)
	if err != nil {
		handleServiceError(c, "List videos by channel", err)
		return
	}

	response.OK(c, "获取频道视频成功", data)
}

// GetDetail 视频详情
// @Summary 获取视频详情
// @Tags 视频
// @Produce json
// @Param id path string true "视频ID"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id} [get]
func (h *VideoHandler) GetDetail(c *gin.Context) {
	videoID, ok := parseID(c, "id", "视频")
	if !ok {
		return
	}

	info, err := h.videoService.GetDetail(c.Request.Context(), videoID)
	if err != nil {
		handleServiceError(c, "Get video", err)
		return
	}

	response.OK(c, "获取视频详情成功", info)
}

// Update 更新视频（仅上传者）
// @Summary 更新视频
// @Tags 视频
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "视频ID"
// @Param request body dto.VideoUpdateRequest true "更新字段"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "不是上传者"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id} [put]
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, ok := parseID(c, "id", "视频")
	if !ok {
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	info, err := h.videoService.Update(c.Request.Context(), videoID, userID, &req)
	if err != nil {
		handleServiceError(c, "Update video", err)
		return
	}

	response.OK(c, "更新视频成功", info)
}

// Delete 删除视频（仅上传者）
// @Summary 删除视频
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path string true "视频ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "不是上传者"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, ok := parseID(c, "id", "视频")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), videoID, userID); err != nil {
		handleServiceError(c, "Delete video", err)
		return
	}

	response.OK(c, "删除视频成功", gin.H{"id": videoID})
}

// Like 点赞/取消点赞
// @Summary 点赞视频
// @Description 重复调用会取消点赞；已点踩时改为点赞
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path string true "视频ID"
// @Success 200 {object} response.Response{data=dto.ReactionData} "操作成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/like [post]
func (h *VideoHandler) Like(c *gin.Context) {
	h.toggleReaction(c, model.ReactionLike)
}

// Dislike 点踩/取消点踩
// @Summary 点踩视频
// @Description 重复调用会取消点踩；已点赞时改为点踩
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path string true "视频ID"
// @Success 200 {object} response.Response{data=dto.ReactionData} "操作成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/dislike [post]
func (h *VideoHandler) Dislike(c *gin.Context) {
	h.toggleReaction(c, model.ReactionDislike)
}

func (h *VideoHandler) toggleReaction(c *gin.Context, kind string) {
	videoID, ok := parseID(c, "id", "视频")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	data, err := h.reactionService.Toggle(c.Request.Context(), videoID, userID, kind)
	if err != nil {
		handleServiceError(c, "Toggle "+kind, err)
		return
	}

	response.OK(c, "操作成功", data)
}

// GetReaction 当前态度
// @Summary 获取当前用户对视频的态度与计数
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path string true "视频ID"
// @Success 200 {object} response.Response{data=dto.ReactionData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/reaction [get]
func (h *VideoHandler) GetReaction(c *gin.Context) {
	videoID, ok := parseID(c, "id", "视频")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	data, err := h.reactionService.Get(c.Request.Context(), videoID, userID)
	if err != nil {
		handleServiceError(c, "Get reaction", err)
		return
	}

	response.OK(c, "获取成功", data)
}
