package service

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// Pagination is 1-based. Zero values fall back to the first page of ten.
type Pagination struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

func (p Pagination) normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}

	switch {
	case p.PerPage < 1:
		p.PerPage = defaultPerPage
	case p.PerPage > maxPerPage:
		p.PerPage = maxPerPage
	}

	return p
}

func (p Pagination) offset() int {
	return (p.Page - 1) * p.PerPage
}
