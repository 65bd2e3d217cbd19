package leads

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jordanlanch/leaddesk/pkg/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// Pagination is a validated page request.
type Pagination struct {
	Page  int
	Limit int
}

// Offset is the number of rows skipped before the page starts.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePagination reads page and limit from params. Missing or empty
// values take the defaults; anything that is not a positive integer is
// rejected instead of being clamped.
func ParsePagination(params url.Values) (Pagination, error) {
	page, err := positiveInt(params, "page", DefaultPage)
	if err != nil {
		return Pagination{}, err
	}
	limit, err := positiveInt(params, "limit", DefaultLimit)
	if err != nil {
		return Pagination{}, err
	}
	return Pagination{Page: page, Limit: limit}, nil
}

func positiveInt(params url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(params.Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 1 {
		return 0, domain.NewInvalidPaginationError(name, raw)
	}
	return int(n), nil
}

// TotalPages is ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
