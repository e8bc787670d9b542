package page

// DefaultSize is used when a list request does not carry a page size.
const DefaultSize = 10

// Pagination mirrors the page metadata of the last backend list response.
type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalElements int  `json:"totalElements"`
	Size          int  `json:"size"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// Page is one fetched page of entities.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// Empty reports whether the page holds no records at all.
func (p Pagination) Empty() bool {
	return p.TotalElements == 0 || p.TotalPages == 0
}

// OutOfRange reports whether the requested page lies past the last page of a
// non-empty result.
func (p Pagination) OutOfRange() bool {
	return !p.Empty() && p.CurrentPage >= p.TotalPages
}

// LastPage returns the zero-based index of the last page.
func (p Pagination) LastPage() int {
	if p.TotalPages <= 0 {
		return 0
	}
	return p.TotalPages - 1
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool {
	return !p.First && p.CurrentPage > 0
}

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool {
	return !p.Last && p.CurrentPage+1 < p.TotalPages
}

// Window returns up to n page indexes centred on the current page.
func (p Pagination) Window(n int) []int {
	if p.TotalPages <= 0 || n <= 0 {
		return nil
	}
	start := p.CurrentPage - n/2
	if start < 0 {
		start = 0
	}
	end := start + n
	if end > p.TotalPages {
		end = p.TotalPages
		start = end - n
		if start < 0 {
			start = 0
		}
	}
	pages := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// Request is the page selector shared by every list filter.
type Request struct {
	Page int `url:"page,omitempty"`
	Size int `url:"size,omitempty"`
}

// Normalize clamps negative pages and fills the default size.
func (r Request) Normalize() Request {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	return r
}
