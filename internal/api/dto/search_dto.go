package dto

// SearchVideoRequest 搜索请求参数
type SearchVideoRequest struct {
	Query string `form:"query"`
	Sort  string `form:"sort"` // latest
}

// FilterVideoRequest 分类筛选请求参数
type FilterVideoRequest struct {
	Category string `form:"category"`
}
