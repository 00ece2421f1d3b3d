// internal/app/system/paging/paging.go

// Package paging splits an ordered sequence into fixed-size numbered
// pages. It is entity-agnostic: the same engine drives the global feed,
// group feeds, author feeds, and the followed-authors feed, which keeps
// page-size and ordering behavior identical across views.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the number of posts shown per page on every feed.
const PageSize = 10

// Page is a bounded slice of a sequence plus navigation metadata.
type Page[T any] struct {
	Items      []T
	Number     int // 1-based, clamped into [1, max(TotalPages,1)]
	TotalPages int // ceil(count/PageSize); 0 for an empty sequence
	HasNext    bool
	HasPrev    bool
}

// NextNumber returns the page number the "next" link should target.
func (p Page[T]) NextNumber() int { return p.Number + 1 }

// PrevNumber returns the page number the "previous" link should target.
func (p Page[T]) PrevNumber() int { return p.Number - 1 }

// ParsePage extracts the 1-based "page" query parameter.
// Absent or non-numeric values default to 1; range clamping is left to
// Paginate, which knows the sequence length.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return n
}

// Paginate slices items into the requested page.
//
// Out-of-range requests clamp to the nearest valid page instead of
// failing: number <= 0 clamps to the first page, number beyond the last
// page clamps to the last. An empty sequence yields a valid empty page
// with TotalPages 0. Paginate never returns an error for a malformed
// page number.
func Paginate[T any](items []T, number int) Page[T] {
	total := (len(items) + PageSize - 1) / PageSize

	if number < 1 {
		number = 1
	}
	if total > 0 && number > total {
		number = total
	}
	if total == 0 {
		number = 1
	}

	lo := (number - 1) * PageSize
	hi := lo + PageSize
	if lo > len(items) {
		lo = len(items)
	}
	if hi > len(items) {
		hi = len(items)
	}

	return Page[T]{
		Items:      items[lo:hi],
		Number:     number,
		TotalPages: total,
		HasNext:    number < total,
		HasPrev:    number > 1,
	}
}
