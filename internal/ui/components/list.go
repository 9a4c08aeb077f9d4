package components

// List tracks a cursor and scroll offset over n items.
type List struct {
	Len      int
	Cursor   int
	Offset   int
	PageSize int
}

// NewList creates a list with the given page size.
func NewList(pageSize int) *List {
	if pageSize <= 0 {
		pageSize = 1
	}
	return &List{PageSize: pageSize}
}

// Reset sets the item count and puts the cursor back on top.
func (l *List) Reset(n int) {
	l.Len = n
	l.Cursor = 0
	l.Offset = 0
}

// Down moves the cursor down.
func (l *List) Down() {
	if l.Cursor >= l.Len-1 {
		return
	}
	l.Cursor++
	if l.Cursor >= l.Offset+l.PageSize {
		l.Offset = l.Cursor - l.PageSize + 1
	}
}

// Up moves the cursor up.
func (l *List) Up() {
	if l.Cursor == 0 {
		return
	}
	l.Cursor--
	if l.Cursor < l.Offset {
		l.Offset = l.Cursor
	}
}

// Window returns the [start, end) range of visible items.
func (l *List) Window() (int, int) {
	end := l.Offset + l.PageSize
	if end > l.Len {
		end = l.Len
	}
	return l.Offset, end
}

// Selected returns the index of the selected item.
func (l *List) Selected() int {
	return l.Cursor
}
