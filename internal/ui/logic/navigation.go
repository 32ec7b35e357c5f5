package logic

// GridNavigator tracks the cursor and the scroll position of a grid
// laid out row-major with a fixed number of columns.
type GridNavigator struct {
	columns      int
	total        int
	selected     int
	rowOffset    int
	viewportRows int
}

// NewGridNavigator creates a navigator for columns columns
func NewGridNavigator(columns int) *GridNavigator {
	if columns < 1 {
		columns = 1
	}
	return &GridNavigator{
		columns:      columns,
		viewportRows: 1,
	}
}

func (n *GridNavigator) Columns() int { return n.columns }

func (n *GridNavigator) Selected() int { return n.selected }

// RowOffset is the first visible row
func (n *GridNavigator) RowOffset() int { return n.rowOffset }

func (n *GridNavigator) ViewportRows() int { return n.viewportRows }

// Rows returns the number of rows needed for the current item count
func (n *GridNavigator) Rows() int {
	return (n.total + n.columns - 1) / n.columns
}

// SetTotal updates the item count and clamps the cursor into range
func (n *GridNavigator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	n.total = total
	n.clamp()
}

// SetViewportRows updates how many rows fit on screen
func (n *GridNavigator) SetViewportRows(rows int) {
	if rows < 1 {
		rows = 1
	}
	n.viewportRows = rows
	n.ensureSelectedVisible()
}

// Reset moves the cursor to the first cell
func (n *GridNavigator) Reset() {
	n.selected = 0
	n.rowOffset = 0
}

// SetSelected moves the cursor to index and keeps it visible
func (n *GridNavigator) SetSelected(index int) {
	n.selected = index
	n.clamp()
}

// Move applies a navigation direction
func (n *GridNavigator) Move(direction string) {
	if n.total == 0 {
		return
	}

	col := n.selected % n.columns
	switch direction {
	case "up":
		if n.selected-n.columns >= 0 {
			n.selected -= n.columns
		}
	case "down":
		if n.selected+n.columns < n.total {
			n.selected += n.columns
		} else if n.selected/n.columns < n.Rows()-1 {
			// short last row
			n.selected = n.total - 1
		}
	case "left":
		if col > 0 {
			n.selected--
		}
	case "right":
		if col < n.columns-1 && n.selected+1 < n.total {
			n.selected++
		}
	case "pageup":
		n.selected -= n.columns * n.viewportRows
		if n.selected < 0 {
			n.selected = col
		}
	case "pagedown":
		n.selected += n.columns * n.viewportRows
		if n.selected >= n.total {
			n.selected = n.total - 1
		}
	case "home":
		n.selected = 0
	case "end":
		n.selected = n.total - 1
	}
	n.clamp()
}

func (n *GridNavigator) clamp() {
	if n.selected >= n.total {
		n.selected = n.total - 1
	}
	if n.selected < 0 {
		n.selected = 0
	}
	n.ensureSelectedVisible()
}

// ensureSelectedVisible adjusts the row offset to keep the cursor row
// on screen without scrolling past the last row
func (n *GridNavigator) ensureSelectedVisible() {
	row := n.selected / n.columns

	if row < n.rowOffset {
		n.rowOffset = row
	}
	if row >= n.rowOffset+n.viewportRows {
		n.rowOffset = row - n.viewportRows + 1
	}

	maxOffset := n.Rows() - n.viewportRows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.rowOffset > maxOffset {
		n.rowOffset = maxOffset
	}
	if n.rowOffset < 0 {
		n.rowOffset = 0
	}
}
