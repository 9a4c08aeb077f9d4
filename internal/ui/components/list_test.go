package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListScrollsWithCursor(t *testing.T) {
	list := NewList(3)
	list.Reset(5)

	list.Down()
	list.Down()
	start, end := list.Window()
	assert.Equal(t, [2]int{0, 3}, [2]int{start, end})

	list.Down()
	assert.Equal(t, 3, list.Selected())
	start, end = list.Window()
	assert.Equal(t, [2]int{1, 4}, [2]int{start, end})

	list.Down()
	list.Down()
	assert.Equal(t, 4, list.Selected())
	assert.Equal(t, 2, list.Offset)
}

func TestListUpStopsAtTop(t *testing.T) {
	list := NewList(2)
	list.Reset(4)
	list.Down()
	list.Down()
	list.Down()

	list.Up()
	list.Up()
	assert.Equal(t, 1, list.Cursor)
	assert.Equal(t, 1, list.Offset)
	list.Up()
	list.Up()
	assert.Equal(t, 0, list.Cursor)
	assert.Equal(t, 0, list.Offset)
}

func TestListEmpty(t *testing.T) {
	list := NewList(0)
	list.Reset(0)
	list.Down()
	assert.Equal(t, 0, list.Selected())
	start, end := list.Window()
	assert.Equal(t, 0, end-start)
}
