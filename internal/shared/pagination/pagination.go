package pagination

import "strconv"

// PerPage là số item mặc định trên một trang
const PerPage = 10

// Window là vị trí của một trang trong collection đã biết tổng số item
type Window struct {
	Number   int // 1-based
	PerPage  int
	Count    int // tổng số item
	NumPages int
}

// Offset cho câu query LIMIT/OFFSET
func (w Window) Offset() int {
	return (w.Number - 1) * w.PerPage
}

func (w Window) Limit() int {
	return w.PerPage
}

// Resolve chuyển page number thô từ query string thành trang hợp lệ:
//   - không phải số nguyên (hoặc rỗng) -> trang 1
//   - nhỏ hơn 1 hoặc lớn hơn số trang  -> trang cuối
//
// Collection rỗng vẫn có đúng một trang (rỗng).
func Resolve(raw string, total, perPage int) Window {
	if perPage < 1 {
		perPage = PerPage
	}
	if total < 0 {
		total = 0
	}

	numPages := (total + perPage - 1) / perPage
	if numPages == 0 {
		numPages = 1
	}

	number, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		number = 1
	case number < 1 || number > numPages:
		number = numPages
	}

	return Window{Number: number, PerPage: perPage, Count: total, NumPages: numPages}
}

// Page là page object truyền vào template
type Page[T any] struct {
	Items []T
	Window
}

// NewPage gói items đã được fetch cho window
func NewPage[T any](items []T, w Window) *Page[T] {
	return &Page[T]{Items: items, Window: w}
}

// Paginate cắt một collection in-memory đã sort sẵn
func Paginate[T any](items []T, raw string, perPage int) *Page[T] {
	w := Resolve(raw, len(items), perPage)

	start := w.Offset()
	end := start + w.PerPage
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return NewPage(items[start:end], w)
}

func (p *Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p *Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p *Page[T]) NextPageNumber() int {
	return p.Number + 1
}

func (p *Page[T]) PreviousPageNumber() int {
	return p.Number - 1
}

// PageRange trả về 1..NumPages, dùng để render thanh điều hướng
func (p *Page[T]) PageRange() []int {
	r := make([]int, p.NumPages)
	for i := range r {
		r[i] = i + 1
	}
	return r
}
