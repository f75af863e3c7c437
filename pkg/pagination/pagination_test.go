package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/rooms?"+query, nil)
	return c
}

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
	}{
		{"缺省参数", "", 1, 20},
		{"正常参数", "page=3&page_size=50", 3, 50},
		{"页码为零回退", "page=0&page_size=10", 1, 10},
		{"负数回退", "page=-2&page_size=-5", 1, 20},
		{"超限压到上限", "page=1&page_size=500", 1, 100},
		{"非数字按缺省", "page=abc&page_size=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := ParsePageParams(testContext(tt.query))
			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.pageSize, params.PageSize)
		})
	}
}

func TestPageParamsOffsetLimit(t *testing.T) {
	params := &PageParams{Page: 3, PageSize: 20}
	assert.Equal(t, 40, params.GetOffset())
	assert.Equal(t, 20, params.GetLimit())
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(2, 20, 45)
	assert.Equal(t, 3, info.TotalPages)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrev)

	last := NewPageInfo(3, 20, 45)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)
}

// 空集合时不能出现"上一页可用"的假象
func TestNewPageInfoEmpty(t *testing.T) {
	info := NewPageInfo(1, 20, 0)
	assert.Equal(t, 0, info.TotalPages)
	assert.False(t, info.HasNext)
	assert.False(t, info.HasPrev)

	beyond := NewPageInfo(5, 20, 0)
	assert.False(t, beyond.HasPrev)
}
