package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageNumber = 1
	defaultPageSize   = 20
	maxPageSize       = 100
)

// QueryParams holds the common pagination query parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
}

// FromEchoContext parses page/page_size with defaults and bounds.
func FromEchoContext(c echo.Context) QueryParams {
	p := QueryParams{
		PageNumber: defaultPageNumber,
		PageSize:   defaultPageSize,
	}

	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		p.PageNumber = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 {
		if v > maxPageSize {
			v = maxPageSize
		}
		p.PageSize = v
	}

	return p
}
