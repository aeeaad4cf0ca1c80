package reports

import (
	"strings"

	"staffdesk/internal/domain/staff"
)

// Filter keeps records whose name, email, department or title contains query,
// ignoring case. The query is matched verbatim, surrounding spaces included.
// An empty query keeps everything in the original order.
func Filter(records []staff.Employee, query string) []staff.Employee {
	needle := strings.ToLower(query)
	if needle == "" {
		out := make([]staff.Employee, len(records))
		copy(out, records)
		return out
	}
	out := make([]staff.Employee, 0, len(records))
	for _, e := range records {
		if matches(e, needle) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e staff.Employee, needle string) bool {
	for _, field := range []string{e.FirstName, e.LastName, e.Email, e.Company.Department, e.Company.Title} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Paginate returns items[page*size : page*size+size], clipped to the slice.
// Out-of-range pages and non-positive sizes yield an empty page.
func Paginate[T any](items []T, page, size int) []T {
	if page < 0 || size <= 0 {
		return []T{}
	}
	start := page * size
	if start >= len(items) || start/size != page {
		return []T{}
	}
	end := start + size
	if end > len(items) || end < start {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
