package handler

import (
	"vtube-go/internal/api/dto"
	"vtube-go/internal/api/response"
	"vtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchVideos 搜索视频
// @Summary 搜索视频
// @Description 标题/描述/分类中大小写无关的子串匹配，任一字段命中即返回；无匹配返回空列表
// @Tags 搜索
// @Produce json
// @Param query query string true "搜索关键词"
// @Param sort query string false "排序方式: latest"
// @Success 200 {object} response.Response{data=dto.VideoListData} "搜索成功"
// @Failure 400 {object} response.ErrorResponse "搜索关键词不能为空"
// @Router /videos/search [get]
func (h *SearchHandler) SearchVideos(c *gin.Context) {
	var req dto.SearchVideoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.searchService.SearchVideos(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, "Search videos", err)
		return
	}

	response.OK(c, "搜索成功", data)
}

// FilterByCategory 按分类筛选
// @Summary 按分类筛选视频
// @Tags 搜索
// @Produce json
// @Param category query string true "分类（精确匹配）"
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Failure 400 {object} response.ErrorResponse "分类不能为空"
// @Router /videos/filter [get]
func (h *SearchHandler) FilterByCategory(c *gin.Context) {
	var req dto.FilterVideoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.searchService.FilterByCategory(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, "Filter videos", err)
		return
	}

	response.OK(c, "获取成功", data)
}
