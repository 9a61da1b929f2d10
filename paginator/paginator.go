// Package paginator cuts ordered sequences into fixed size, 1-based pages.
package paginator

import (
	"strconv"
	"strings"
)

type Paginator struct {
	Count   int64
	PerPage int
}

// Page is a resolved page of a sequence of Count items
type Page struct {
	Number      int   `json:"number"`
	NumPages    int   `json:"num_pages"`
	Count       int64 `json:"count"`
	PerPage     int   `json:"per_page"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

func New(count int64, perPage int) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	return &Paginator{Count: count, PerPage: perPage}
}

// NumPages is never less than one, an empty sequence has a single empty page
func (p *Paginator) NumPages() int {
	if p.Count == 0 {
		return 1
	}
	return int((p.Count + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Page resolves the raw ?page= value. Missing or non numeric values give the first page,
// out of range values are clamped to the first/last page.
func (p *Paginator) Page(raw string) Page {
	return p.PageNumber(ParseNumber(raw))
}

// ParseNumber is the requested page before clamping to the last page, never less than 1
func ParseNumber(raw string) int {
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || number < 1 {
		return 1
	}
	return number
}

func (p *Paginator) PageNumber(number int) Page {
	numPages := p.NumPages()
	if number < 1 {
		number = 1
	} else if number > numPages {
		number = numPages
	}
	return Page{
		Number:      number,
		NumPages:    numPages,
		Count:       p.Count,
		PerPage:     p.PerPage,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
}

func (pg Page) Offset() int {
	return (pg.Number - 1) * pg.PerPage
}

func (pg Page) Limit() int {
	return pg.PerPage
}

// StartIndex is the 1-based position of the first item on the page, 0 for an empty page
func (pg Page) StartIndex() int64 {
	if pg.Count == 0 {
		return 0
	}
	return int64(pg.Offset()) + 1
}

// Slice applies the page to an in-memory sequence, clipping to its bounds
func Slice[T any](items []T, pg Page) []T {
	start := pg.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + pg.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
