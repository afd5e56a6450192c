// Package derive holds the pure projections of store snapshots: pagination
// windows, filtered subsets, budget progress, and report aggregation. Every
// function is referentially transparent and safe to recompute on demand.
package derive

// DefaultPageSize matches the API's default listing size.
const DefaultPageSize = 10

// Pager computes a half-open index window over a list. Pages are 0-based.
type Pager struct {
	TotalItems int
	Page       int
	PageSize   int
}

// NewPager creates a Pager on page 0.
func NewPager(totalItems, pageSize int) Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if totalItems < 0 {
		totalItems = 0
	}
	return Pager{TotalItems: totalItems, PageSize: pageSize}
}

// TotalPages returns the number of pages, at least 1.
func (p Pager) TotalPages() int {
	if p.TotalItems <= 0 {
		return 1
	}
	return (p.TotalItems + p.PageSize - 1) / p.PageSize
}

// Window returns [start, end) for the current page, clamping the page down
// first so a deletion or page-size change never leaves an out-of-range page.
func (p Pager) Window() (start, end int) {
	p.clamp()
	start = p.Page * p.PageSize
	end = min(start+p.PageSize, p.TotalItems)
	return start, end
}

// SetTotal records a new item count, clamping the page if it fell out of
// range.
func (p *Pager) SetTotal(n int) {
	if n < 0 {
		n = 0
	}
	p.TotalItems = n
	p.clamp()
}

// SetPage moves to the given page, clamped into range.
func (p *Pager) SetPage(n int) {
	p.Page = n
	p.clamp()
}

// SetPageSize changes the page size and resets to page 0.
func (p *Pager) SetPageSize(n int) {
	if n <= 0 {
		n = DefaultPageSize
	}
	p.PageSize = n
	p.Page = 0
}

// Next advances one page unless already on the last.
func (p *Pager) Next() {
	p.SetPage(p.Page + 1)
}

// Prev moves back one page unless already on the first.
func (p *Pager) Prev() {
	p.SetPage(p.Page - 1)
}

func (p *Pager) clamp() {
	last := p.TotalPages() - 1
	if p.Page > last {
		p.Page = last
	}
	if p.Page < 0 {
		p.Page = 0
	}
}

// PageOf returns the slice of items visible through the pager's window.
func PageOf[T any](items []T, p Pager) []T {
	p.TotalItems = len(items)
	start, end := p.Window()
	return items[start:end]
}
