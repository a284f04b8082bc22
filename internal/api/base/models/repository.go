// Package models holds the result shapes shared by every repository (pages, counts).
package models

import "math"

// MaxPageLimit caps the page size of every listing.
const MaxPageLimit int64 = 1000

// PaginateResult is one page of a listing.
type PaginateResult[T any] struct {
	Page      int64 `json:"page" bson:"page"`
	Limit     int64 `json:"limit" bson:"limit"`
	ItemCount int64 `json:"itemCount" bson:"itemCount"` // items on this page
	Items     []T   `json:"items" bson:"items"`
	Total     int64 `json:"total" bson:"total"`
	TotalPage int64 `json:"totalPage" bson:"totalPage"`
}

// TotalPages returns ceil(total/limit), 0 when there is nothing to list.
func TotalPages(total, limit int64) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// NormalizePage coerces page to >= 1 and limit into (0, MaxPageLimit], using def when
// limit is not positive.
func NormalizePage(page, limit, def int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = def
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// Skip returns the number of documents before page.
//
// Returns:
//   - skip: (page-1)*limit, 0 for the first page
//   - ok: false when the offset does not fit an int64; such a page is empty
func Skip(page, limit int64) (skip int64, ok bool) {
	if page <= 1 || limit <= 0 {
		return 0, true
	}
	if page-1 > math.MaxInt64/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}
