package shared

import (
	"net/http"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageWindow is a zero-based page index and page size taken from the query string.
type PageWindow struct {
	Page int
	Size int
}

func ParsePageWindow(r *http.Request, defaultSize, maxSize int) PageWindow {
	size := defaultSize
	page := 0
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			size = v
		}
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			page = v
		}
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	return PageWindow{Page: page, Size: size}
}
