package pagination

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Offset is limit/offset paging as used by the orders list.
type Offset struct {
	Limit  int
	Offset int
}

// NewOffset applies request defaults: limit 20 (capped at 100), offset 0.
func NewOffset(limit, offset int) Offset {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Offset{Limit: limit, Offset: offset}
}

// OffsetMeta echoes the effective parameters plus the unpaged total.
type OffsetMeta struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// Page is 1-indexed page/limit paging as used by the users list.
type Page struct {
	Page  int
	Limit int
}

func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}
}

// Offset converts the page number to a row offset.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}
