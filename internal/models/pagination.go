package models

// PageMeta describes a page of a listing.
type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPageMeta computes the page count for total results split into pages of limit.
func NewPageMeta(page, limit int, total int64) PageMeta {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PageMeta{Page: page, Limit: limit, Total: total, Pages: pages}
}

// HasNext reports whether a page follows this one.
func (m PageMeta) HasNext() bool {
	return m.Page < m.Pages
}

// HasPrev reports whether a page precedes this one.
func (m PageMeta) HasPrev() bool {
	return m.Page > 1 && m.Pages > 0
}
