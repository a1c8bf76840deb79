package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1
)

// Params holds validated pagination parameters
type Params struct {
	Page     int
	PageSize int
	Offset   int
}

// Parse extracts and validates page/page_size from query parameters.
// The older "limit" parameter is accepted when page_size is absent.
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	sizeParam := c.Query("page_size")
	if sizeParam == "" {
		sizeParam = c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize))
	}
	pageSize, _ := strconv.Atoi(sizeParam)
	return Normalize(page, pageSize)
}

// Normalize clamps page and pageSize into their allowed ranges
func Normalize(page, pageSize int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < MinPageSize {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Params{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}
