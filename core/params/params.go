package params

import (
	"strconv"
	"strings"

	"work-exchange-api/core/constants"

	"github.com/labstack/echo/v4"
)

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
	Status     string
}

// NewQueryParams reads page_number, page_size, search and status from the
// query string, clamping paging to sane bounds.
func NewQueryParams(c echo.Context) QueryParams {
	pageNumber, err := strconv.Atoi(c.QueryParam("page_number"))
	if err != nil || pageNumber < 1 {
		pageNumber = 1
	}
	pageSize, err := strconv.Atoi(c.QueryParam("page_size"))
	if err != nil || pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return QueryParams{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.QueryParam("search")),
		Status:     strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))),
	}
}

func (p QueryParams) Offset() int {
	if p.PageNumber < 1 {
		return 0
	}
	return (p.PageNumber - 1) * p.PageSize
}
