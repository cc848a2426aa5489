// Package pagination implements page/size list pagination shared by the
// list endpoints.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Params is a parsed, clamped page request.
type Params struct {
	Page int
	Size int
}

// Offset converts the page number to a row offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

// Parse reads page and size from query values. Absent, non-numeric, or
// non-positive values fall back to the 1/10 defaults; size is capped at
// MaxSize.
func Parse(q url.Values) Params {
	p := Params{Page: DefaultPage, Size: DefaultSize}

	if n, err := strconv.Atoi(q.Get("page")); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("size")); err == nil && n >= 1 {
		if n > MaxSize {
			n = MaxSize
		}
		p.Size = n
	}
	return p
}

// Meta is the pagination block returned alongside list payloads.
type Meta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// NewMeta derives the response metadata for a page of a total result set.
func NewMeta(p Params, total int64) Meta {
	pages := int(total) / p.Size
	if int(total)%p.Size != 0 {
		pages++
	}
	return Meta{
		Page:       p.Page,
		Size:       p.Size,
		TotalItems: total,
		TotalPages: pages,
	}
}
