package pagination

import (
	"math"

	"github.com/gin-gonic/gin"
)

// 门户列表页的分页约定
// 房间列表带照片字段，页大小上限压低，避免单页拉取过多大字段
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageParams 分页参数
type PageParams struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// Normalize 参数归一化
// 非法或缺失的值回退到缺省，超限的页大小压到上限
func (p *PageParams) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// ParsePageParams 从查询参数解析分页
// 解析失败按缺省分页处理，不中断请求
func ParsePageParams(c *gin.Context) *PageParams {
	var params PageParams
	_ = c.ShouldBindQuery(&params)
	params.Normalize()
	return &params
}

// GetOffset 计算offset
func (p *PageParams) GetOffset() int {
	return (p.Page - 1) * p.PageSize
}

// GetLimit 计算limit
func (p *PageParams) GetLimit() int {
	return p.PageSize
}

// PageInfo 分页信息
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPageInfo 计算分页信息
// 空集合时总页数为0且前后页均不可用
func NewPageInfo(page, pageSize int, total int64) *PageInfo {
	totalPages := 0
	if total > 0 && pageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}

	return &PageInfo{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && totalPages > 0,
	}
}
