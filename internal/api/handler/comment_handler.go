package handler

import (
	"vtube-go/internal/api/dto"
	"vtube-go/internal/api/response"
	"vtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create 发表评论
// @Summary 发表评论
// @Description 返回视频的全部评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Param request body dto.CommentRequest true "评论内容"
// @Success 201 {object} response.Response{data=dto.CommentListData} "发表成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /comments/{videoId} [post]
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, ok := parseID(c, "videoId", "视频")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	data, err := h.commentService.Create(c.Request.Context(), videoID, userID, &req)
	if err != nil {
		handleServiceError(c, "Create comment", err)
		return
	}

	response.Created(c, "评论成功", data)
}

// Update 修改评论（仅作者）
// @Summary 修改评论
// @Description 返回修改后该视频的完整评论列表
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Param commentId path string true "评论ID"
// @Param request body dto.CommentRequest true "评论内容"
// @Success 200 {object} response.Response{data=dto.CommentListData} "更新成功"
// @Failure 403 {object} response.ErrorResponse "不是评论作者"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /comments/{videoId}/{commentId} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	videoID, ok := parseID(c, "videoId", "视频")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "commentId", "评论")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	data, err := h.commentService.Update(c.Request.Context(), videoID, commentID, userID, &req)
	if err != nil {
		handleServiceError(c, "Update comment", err)
		return
	}

	response.OK(c, "更新评论成功", data)
}

// Delete 删除评论（仅作者）
// @Summary 删除评论
// @Description 返回删除后该视频的完整评论列表
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Param commentId path string true "评论ID"
// @Success 200 {object} response.Response{data=dto.CommentListData} "删除成功"
// @Failure 403 {object} response.ErrorResponse "不是评论作者"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /comments/{videoId}/{commentId} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	videoID, ok := parseID(c, "videoId", "视频")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "commentId", "评论")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	data, err := h.commentService.Delete(c.Request.Context(), videoID, commentID, userID)
	if err != nil {
		handleServiceError(c, "Delete comment", err)
		return
	}

	response.OK(c, "删除评论成功", data)
}

// ListByVideo 评论列表
// @Summary 获取视频的评论
// @Tags 评论
// @Produce json
// @Param videoId path string true "视频ID"
// @Success 200 {object} response.Response{data=dto.CommentListData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /comments/{videoId} [get]
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, ok := parseID(c, "videoId", "视频")
	if !ok {
		return
	}

	data, err := h.commentService.ListByVideo(c.Request.Context(), videoID)
	if err != nil {
		handleServiceError(c, "List comments", err)
		return
	}

	response.OK(c, "获取评论列表成功", data)
}
