package controllers

import "strconv"

// Pagination describes one page of a filtered listing. Pages are 1-indexed;
// the window spans the current page ± 2, clamped to [1, TotalPages].
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
	PrevPage   int   `json:"prev_page"`
	NextPage   int   `json:"next_page"`
	StartPage  int   `json:"start_page"`
	EndPage    int   `json:"end_page"`
	Pages      []int `json:"pages"`
}

func paginate(page, perPage int, total int64) Pagination {
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	p := Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if p.HasPrev {
		p.PrevPage = page - 1
	}
	if p.HasNext {
		p.NextPage = page + 1
	}

	p.StartPage = max(1, page-2)
	p.EndPage = min(totalPages, page+2)
	for n := p.StartPage; n <= p.EndPage; n++ {
		p.Pages = append(p.Pages, n)
	}
	return p
}

// queryInt parses a positive query parameter, falling back to def and
// clamping to [lo, hi].
func queryInt(raw string, def, lo, hi int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		n = def
	}
	if n < lo {
		n = lo
	}
	if n > hi {
		n = hi
	}
	return n
}
