package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginateThirteenItems(t *testing.T) {
	items := numbers(13)

	first := Paginate(items, "", PerPage)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, first.NumPages)
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())

	second := Paginate(items, "2", PerPage)
	assert.Len(t, second.Items, 3)
	assert.Equal(t, []int{11, 12, 13}, second.Items)
	assert.False(t, second.HasNext())
	assert.True(t, second.HasPrevious())
	assert.Equal(t, 1, second.PreviousPageNumber())
}

func TestResolveFallbacks(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"absent", "", 1},
		{"not a number", "abc", 1},
		{"decimal", "1.5", 1},
		{"in range", "2", 2},
		{"past the end", "99", 3},
		{"zero", "0", 3},
		{"negative", "-4", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Resolve(tt.raw, 25, 10)
			assert.Equal(t, tt.want, w.Number)
			assert.Equal(t, 3, w.NumPages)
		})
	}
}

func TestResolveEmptyCollectionHasOnePage(t *testing.T) {
	w := Resolve("5", 0, 10)
	assert.Equal(t, 1, w.Number)
	assert.Equal(t, 1, w.NumPages)
	assert.Equal(t, 0, w.Offset())

	p := Paginate([]string{}, "5", 10)
	assert.Empty(t, p.Items)
	assert.False(t, p.HasOtherPages())
}

func TestWindowOffset(t *testing.T) {
	w := Resolve("3", 30, 10)
	assert.Equal(t, 20, w.Offset())
	assert.Equal(t, 10, w.Limit())
}

func TestPageRange(t *testing.T) {
	p := Paginate(numbers(21), "1", 10)
	assert.Equal(t, []int{1, 2, 3}, p.PageRange())
}
