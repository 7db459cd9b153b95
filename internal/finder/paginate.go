package finder

const (
	smallViewportWidth  = 640
	mediumViewportWidth = 1280

	smallPageSize  = 6
	mediumPageSize = 8
	largePageSize  = 12
)

// DefaultItemsPerPage applies when the viewport width is unknown.
const DefaultItemsPerPage = largePageSize

// ItemsPerPage maps a viewport width in pixels to a page size.
func ItemsPerPage(width int) int {
	switch {
	case width < smallViewportWidth:
		return smallPageSize
	case width < mediumViewportWidth:
		return mediumPageSize
	default:
		return largePageSize
	}
}

// TotalPages is ceil(count / perPage).
func TotalPages(count, perPage int) int {
	if perPage <= 0 || count <= 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}

// Page - one slice of an ordered result set
type Page[T any] struct {
	Items        []T
	Number       int
	TotalPages   int
	Total        int
	ItemsPerPage int
}

// Paginate returns the 1-indexed page of items. Out-of-range pages are
// clamped into [1, TotalPages].
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = largePageSize
	}
	total := len(items)
	pages := TotalPages(total, perPage)

	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:        items[start:end:end],
		Number:       page,
		TotalPages:   pages,
		Total:        total,
		ItemsPerPage: perPage,
	}
}
