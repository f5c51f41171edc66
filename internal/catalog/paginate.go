// ABOUTME: Pure slicing of an already-filtered book list into fixed pages
// ABOUTME: Also computes the windowed page-number bar with ellipsis gaps

package catalog

import "github.com/NewOlosko23/booksarc-cli/internal/api"

// Ellipsis marks a gap between page numbers in a page window.
const Ellipsis = -1

// Paginate slices items into the requested 1-based page. pageCount is
// ceil(len(items)/pageSize), zero for an empty list. A page beyond the last
// yields an empty slice; callers clamp the page before asking.
func Paginate(items []api.Book, pageSize, page int) (pageItems []api.Book, pageCount int) {
	if pageSize <= 0 {
		return nil, 0
	}
	pageCount = (len(items) + pageSize - 1) / pageSize
	if page < 1 || page > pageCount {
		return nil, pageCount
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], pageCount
}

// ClampPage forces page into [1, pageCount]. With no pages it returns 1 so
// a later non-empty filter result starts at the beginning.
func ClampPage(page, pageCount int) int {
	if page < 1 || pageCount == 0 {
		return 1
	}
	if page > pageCount {
		return pageCount
	}
	return page
}

// PageWindow returns the page numbers to show for a pagination bar: always
// the first and last page, plus pages within one of current. An Ellipsis
// entry stands between shown pages whose numbers differ by more than one.
func PageWindow(current, pageCount int) []int {
	if pageCount <= 0 {
		return nil
	}

	var window []int
	prev := 0
	for p := 1; p <= pageCount; p++ {
		if p != 1 && p != pageCount && abs(p-current) > 1 {
			continue
		}
		if prev != 0 && p-prev > 1 {
			window = append(window, Ellipsis)
		}
		window = append(window, p)
		prev = p
	}
	return window
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
