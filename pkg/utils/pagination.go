package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// PageSize is the fixed number of results per list page
const PageSize = 20

// ErrInvalidPage is returned for non-numeric or out-of-range pages
var ErrInvalidPage = errors.New("invalid page")

// PageResult is the body of every paginated list
type PageResult struct {
	Count      int64       `json:"count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
	Next       *string     `json:"next"`
	Previous   *string     `json:"previous"`
	Results    interface{} `json:"results"`
}

// ParsePage reads the page query value; empty means 1
func ParsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, ErrInvalidPage
	}
	return page, nil
}

// TotalPages returns the page count; an empty result still has one page
func TotalPages(count int64) int {
	if count == 0 {
		return 1
	}
	return int((count + PageSize - 1) / PageSize)
}

// CheckPage rejects pages past the last one
func CheckPage(page int, count int64) error {
	if page < 1 || page > TotalPages(count) {
		return ErrInvalidPage
	}
	return nil
}

// Offset returns the row offset for page
func Offset(page int) int {
	return (page - 1) * PageSize
}

// NewPageResult assembles a page with next/previous links relative to the request
func NewPageResult(c *gin.Context, page int, count int64, results interface{}) PageResult {
	total := TotalPages(count)
	result := PageResult{
		Count:      count,
		Page:       page,
		PageSize:   PageSize,
		TotalPages: total,
		Results:    results,
	}
	if page < total {
		link := pageLink(c, page+1)
		result.Next = &link
	}
	if page > 1 {
		link := pageLink(c, page-1)
		result.Previous = &link
	}
	return result
}

func pageLink(c *gin.Context, page int) string {
	u := *c.Request.URL
	q := u.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.RequestURI()
}

// OrderClause turns "?ordering=-a,b" into SQL using only whitelisted fields
// Unknown fields are ignored; fallback is used when nothing valid remains
func OrderClause(raw string, allowed map[string]string, fallback string) string {
	var parts []string
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		desc := strings.HasPrefix(field, "-")
		column, ok := allowed[strings.TrimPrefix(field, "-")]
		if !ok {
			continue
		}
		if desc {
			parts = append(parts, column+" DESC")
		} else {
			parts = append(parts, column+" ASC")
		}
	}
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, ", ")
}
