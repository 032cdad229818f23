package handler

import (
	"errors"
	"net/http"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/api/response"
	"vtube-go/internal/config"
	"vtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

// multipartSlack 表单字段与分隔符的额外余量
const multipartSlack = 1 << 20

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadImage 上传图片
// @Summary 上传图片
// @Description 缩略图/频道横幅/头像，按用途等比缩放后以 JPEG 存储，返回公开 URL
// @Tags 媒体
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param kind formData string true "用途: thumbnail, banner, avatar"
// @Param file formData file true "图片文件（jpeg/png/gif）"
// @Success 201 {object} response.Response{data=dto.ImageUploadData} "上传成功"
// @Failure 400 {object} response.ErrorResponse "文件无效"
// @Failure 413 {object} response.ErrorResponse "请求体过大"
// @Failure 503 {object} response.ErrorResponse "存储服务不可用"
// @Router /media/images [post]
func (h *MediaHandler) UploadImage(c *gin.Context) {
	maxBytes := config.GetMedia().MaxBytes
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartSlack)

	var req dto.ImageUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, http.StatusRequestEntityTooLarge, "RequestEntityTooLarge", "请求体过大")
			return
		}
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "请上传图片文件")
		return
	}
	if file.Size == 0 {
		response.BadRequest(c, "图片文件不能为空")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	f, err := file.Open()
	if err != nil {
		response.InternalError(c, "打开上传文件失败")
		return
	}
	defer f.Close()

	data, err := h.mediaService.UploadImage(c.Request.Context(), userID, req.Kind, f)
	if err != nil {
		handleServiceError(c, "Upload image", err)
		return
	}

	response.Created(c, "上传成功", data)
}
