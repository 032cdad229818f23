package handler

import (
	"vtube-go/internal/api/dto"
	"vtube-go/internal/api/response"
	"vtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	channelService *service.ChannelService
}

func NewChannelHandler(channelService *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

// Create 创建频道
// @Summary 创建频道
// @Tags 频道
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChannelCreateRequest true "频道信息"
// @Success 201 {object} response.Response{data=dto.ChannelInfo} "创建成功"
// @Failure 409 {object} response.ErrorResponse "频道名已被占用"
// @Router /channels [post]
func (h *ChannelHandler) Create(c *gin.Context) {
	var req dto.ChannelCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	info, err := h.channelService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, "Create channel", err)
		return
	}

	response.Created(c, "创建频道成功", info)
}

// GetDetail 获取频道详情
// @Summary 获取频道详情
// @Description 含所有者、订阅者与按上传顺序排列的视频
// @Tags 频道
// @Produce json
// @Param id path string true "频道ID"
// @Success 200 {object} response.Response{data=dto.ChannelDetail} "获取成功"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /channels/{id} [get]
func (h *ChannelHandler) GetDetail(c *gin.Context) {
	channelID, ok := parseID(c, "id", "频道")
	if !ok {
		return
	}

	detail, err := h.channelService.GetDetail(c.Request.Context(), channelID)
	if err != nil {
		handleServiceError(c, "Get channel", err)
		return
	}

	response.OK(c, "获取频道详情成功", detail)
}

// ListMine 我的频道
// @Summary 获取当前用户拥有的频道
// @Tags 频道
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]dto.ChannelInfo} "获取成功"
// @Failure 401 {object} response.ErrorResponse "未登录"
// @Router /channels/mine [get]
func (h *ChannelHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	channels, err := h.channelService.ListMine(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, "List my channels", err)
		return
	}

	response.OK(c, "获取我的频道成功", channels)
}

// Update 更新频道（仅所有者）
// @Summary 更新频道
// @Tags 频道
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "频道ID"
// @Param request body dto.ChannelUpdateRequest true "更新字段"
// @Success 200 {object} response.Response{data=dto.ChannelInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "不是频道所有者"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Failure 409 {object} response.ErrorResponse "频道名已被占用"
// @Router /channels/{id} [put]
func (h *ChannelHandler) Update(c *gin.Context) {
	channelID, ok := parseID(c, "id", "频道")
	if !ok {
		return
	}

	var req dto.ChannelUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	info, err := h.channelService.Update(c.Request.Context(), channelID, userID, &req)
	if err != nil {
		handleServiceError(c, "Update channel", err)
		return
	}

	response.OK(c, "更新频道成功", info)
}

// Delete 删除频道（仅所有者）
// @Summary 删除频道
// @Description 同时删除频道下的视频、评论、态度与订阅
// @Tags 频道
// @Produce json
// @Security BearerAuth
// @Param id path string true "频道ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "不是频道所有者"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /channels/{id} [delete]
func (h *ChannelHandler) Delete(c *gin.Context) {
	channelID, ok := parseID(c, "id", "频道")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.channelService.Delete(c.Request.Context(), channelID, userID); err != nil {
		handleServiceError(c, "Delete channel", err)
		return
	}

	response.OK(c, "删除频道成功", gin.H{"id": channelID})
}

// ToggleSubscription 订阅/取消订阅
// @Summary 订阅/取消订阅频道
// @Description 已订阅则取消，未订阅则订阅
// @Tags 频道
// @Produce json
// @Security BearerAuth
// @Param id path string true "频道ID"
// @Success 200 {object} response.Response{data=dto.SubscriptionData} "操作成功"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /channels/{id}/subscribe [post]
func (h *ChannelHandler) ToggleSubscription(c *gin.Context) {
	channelID, ok := parseID(c, "id", "频道")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	data, err := h.channelService.ToggleSubscription(c.Request.Context(), channelID, userID)
	if err != nil {
		handleServiceError(c, "Toggle subscription", err)
		return
	}

	message := "已取消订阅"
	if data.Subscribed {
		message = "订阅成功"
	}
	response.OK(c, message, data)
}

// GetSubscription 订阅状态
// @Summary 获取当前用户对频道的订阅状态
// @Tags 频道
// @Produce json
// @Security BearerAuth
// @Param id path string true "频道ID"
// @Success 200 {object} response.Response{data=dto.SubscriptionData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /channels/{id}/subscription [get]
func (h *ChannelHandler) GetSubscription(c *gin.Context) {
	channelID, ok := parseID(c, "id", "频道")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	data, err := h.channelService.GetSubscription(c.Request.Context(), channelID, userID)
	if err != nil {
		handleServiceError(c, "Get subscription", err)
		return
	}

	response.OK(c, "获取订阅状态成功", data)
}
