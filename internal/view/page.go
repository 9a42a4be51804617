package view

// Page describes the half-open range [First, Last) of a filtered list that
// belongs to one page.
type Page struct {
	First      int
	Last       int
	Size       int
	TotalPages int
}

// Paginate locates page (1-indexed) of size pageSize in a list of n
// records. A page before the first or past the last gives an empty range
// clamped to the list bounds. pageSize below 1 is treated as 1.
func Paginate(n, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	p := Page{
		Size:       pageSize,
		TotalPages: (n + pageSize - 1) / pageSize,
	}
	if page < 1 || page > p.TotalPages {
		// Empty, positioned where the page would start.
		start := 0
		if page > p.TotalPages {
			start = n
		}
		p.First, p.Last = start, start
		return p
	}

	p.First = (page - 1) * pageSize
	p.Last = min(p.First+pageSize, n)
	return p
}

// PageWindow lists the page numbers to show for navigation: every page
// when there are at most WindowSize of them, otherwise WindowSize
// consecutive pages centred on current and shifted to stay inside
// [1, total].
func PageWindow(current, total int) []int {
	if total <= 0 {
		return []int{}
	}

	if total <= WindowSize {
		return pageRange(1, total)
	}

	// Clamp before the arithmetic so a huge current cannot overflow.
	current = min(max(current, 1), total)
	start := max(1, current-WindowSize/2)
	end := start + WindowSize - 1
	if end > total {
		end = total
		start = max(1, end-WindowSize+1)
	}
	return pageRange(start, end)
}

func pageRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(size, def, maxSize int) int {
	if size <= 0 {
		size = def
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	if size <= 0 {
		size = 1
	}
	return size
}
