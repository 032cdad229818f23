package dto

// ImageUploadRequest 图片上传表单（文件字段为 file）
type ImageUploadRequest struct {
	Kind string `form:"kind" binding:"required,oneof=thumbnail banner avatar"`
}

// ImageUploadData 图片上传结果
type ImageUploadData struct {
	URL    string `json:"url"`
	Kind   string `json:"kind"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
}
