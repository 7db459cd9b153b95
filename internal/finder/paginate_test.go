package finder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/together-as-one/internal/finder"
)

func TestItemsPerPage(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{0, 6},
		{500, 6},
		{639, 6},
		{640, 8},
		{1000, 8},
		{1279, 8},
		{1280, 12},
		{1400, 12},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, finder.ItemsPerPage(tt.width), "width %d", tt.width)
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 20)
	for i := range items {
		items[i] = i
	}

	t.Run("pages concatenate to the input", func(t *testing.T) {
		for _, perPage := range []int{1, 6, 8, 12, 20, 25} {
			first := finder.Paginate(items, 1, perPage)
			assert.Equal(t, (len(items)+perPage-1)/perPage, first.TotalPages)

			var all []int
			for p := 1; p <= first.TotalPages; p++ {
				all = append(all, finder.Paginate(items, p, perPage).Items...)
			}
			assert.Equal(t, items, all, "perPage %d", perPage)
		}
	})

	t.Run("last page is partial", func(t *testing.T) {
		page := finder.Paginate(items, 3, 8)
		assert.Equal(t, []int{16, 17, 18, 19}, page.Items)
		assert.Equal(t, 3, page.Number)
		assert.Equal(t, 20, page.Total)
	})

	t.Run("out of range clamps", func(t *testing.T) {
		assert.Equal(t, 3, finder.Paginate(items, 99, 8).Number)
		assert.Equal(t, 1, finder.Paginate(items, -2, 8).Number)
	})

	t.Run("empty input", func(t *testing.T) {
		page := finder.Paginate([]int{}, 1, 6)
		assert.Empty(t, page.Items)
		assert.Equal(t, 0, page.TotalPages)
		assert.Equal(t, 1, page.Number)
	})
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, finder.TotalPages(0, 6))
	assert.Equal(t, 1, finder.TotalPages(6, 6))
	assert.Equal(t, 2, finder.TotalPages(7, 6))
	assert.Equal(t, 0, finder.TotalPages(7, 0))
}
