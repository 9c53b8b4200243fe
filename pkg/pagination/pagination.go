package pagination

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 12
	// MaxPerPage caps how many rows any listing query can request.
	MaxPerPage = 60
)

// Params holds page pagination inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// PageInfo describes the resolved window sent back to clients.
type PageInfo struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// Normalize clamps page and per-page into their allowed ranges.
func Normalize(p Params) Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	n := Normalize(p)
	return (n.Page - 1) * n.PerPage
}

// Limit returns the row limit for the normalized params.
func (p Params) Limit() int {
	return Normalize(p).PerPage
}

// Info builds the page descriptor for a total row count.
func Info(p Params, total int64) PageInfo {
	n := Normalize(p)
	pages := int(total / int64(n.PerPage))
	if total%int64(n.PerPage) != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return PageInfo{
		Page:       n.Page,
		PerPage:    n.PerPage,
		TotalItems: total,
		TotalPages: pages,
	}
}
