package repository

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListOptions selects one page of an owner-scoped listing, optionally filtered by a search term.
type ListOptions struct {
	Query string
	Page  int
	Limit int
}

// Normalize clamps page to at least 1 and limit to [1, MaxPageSize], defaulting to DefaultPageSize.
func (o ListOptions) Normalize() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit <= 0 {
		o.Limit = DefaultPageSize
	}
	if o.Limit > MaxPageSize {
		o.Limit = MaxPageSize
	}
	o.Query = strings.TrimSpace(o.Query)
	return o
}

// Offset is the number of rows skipped before this page.
func (o ListOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive LIKE pattern matching q anywhere.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}
