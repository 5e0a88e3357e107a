package domain

const (
	// DefaultPageSize кол-во записей на странице по умолчанию
	DefaultPageSize = 20
	// MaxPageSize максимальное кол-во записей на странице
	MaxPageSize = 100
)

// Pager параметры постраничной выборки (page нумеруется с 1)
type Pager struct {
	page, perPage int32
}

func NewPager(page int32, perPage int32) *Pager {
	return &Pager{page: page, perPage: perPage}
}

// Limit вернет SQL LIMIT
func (p *Pager) Limit() int64 {
	if p == nil || p.perPage <= 0 {
		return DefaultPageSize
	}
	return min(MaxPageSize, int64(p.perPage))
}

// Offset вернет для SQL OFFSET
func (p *Pager) Offset() int64 {
	if p == nil || p.page <= 1 {
		return 0
	}
	return int64(p.page-1) * p.Limit()
}

// Page вернет номер страницы (с 1)
func (p *Pager) Page() int32 {
	if p == nil || p.page <= 0 {
		return 1
	}
	return p.page
}

// PagedResult результат постраничной выборки
type PagedResult[T any] struct {
	Items      []T
	TotalCount int64
	Page       int32
	PerPage    int64
}

// Pages вернет общее число страниц
func (r *PagedResult[T]) Pages() int64 {
	if r.PerPage <= 0 {
		return 0
	}
	return (r.TotalCount + r.PerPage - 1) / r.PerPage
}
