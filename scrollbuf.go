package thermoscroll

import (
	"fmt"
	"strings"
)

// Default grid dimensions, matching a 12x8 LED matrix.
const (
	DefaultRows    = 8
	DefaultColumns = 12
)

// Column state is kept as one bit per column in a uint16.
const maxColumns = 16

// Style selects how a bar is drawn into its time slot.
type Style int

const (
	// Filled lights every cell from the baseline up to the bar height.
	Filled Style = iota
	// Outline lights the single cell at the bar height.
	Outline
)

// Buffer is a fixed-size scrolling history of quantized readings.
//
// It is a rows×cols binary grid: cols ordered time slots, oldest to
// newest from left to right, each slot holding one bar of rows cells.
// Row 0 is the physical top of the display. A Buffer is not safe for
// concurrent use; the polling loop is its only writer.
type Buffer struct {
	rows, cols int
	// cells[r] bit c is the cell at row r, column c.
	cells []uint16
}

// NewBuffer creates an empty buffer. rows must be at least 1 and cols
// between 1 and 16.
func NewBuffer(rows, cols int) (*Buffer, error) {
	if rows < 1 {
		return nil, fmt.Errorf("thermoscroll: rows must be at least 1, got %d", rows)
	}
	if cols < 1 || cols > maxColumns {
		return nil, fmt.Errorf("thermoscroll: cols must be between 1 and %d, got %d", maxColumns, cols)
	}
	return &Buffer{rows: rows, cols: cols, cells: make([]uint16, rows)}, nil
}

// Size returns the grid dimensions.
func (b *Buffer) Size() (rows, cols int) {
	return b.rows, b.cols
}

// Lit reports whether the cell at row, col is on. Out-of-range
// coordinates are off.
func (b *Buffer) Lit(row, col int) bool {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return false
	}
	return b.cells[row]&(1<<uint(col)) != 0
}

// Clear turns every cell off.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = 0
	}
}

// Push inserts one reading into the history.
//
// The reading is quantized against w into a bar height in [0, rows],
// every time slot is shifted one position to the left (the oldest slot
// is discarded for good) and the new bar is drawn into the rightmost
// slot using the given style.
func (b *Buffer) Push(reading float64, w Window, style Style) {
	level := w.Level(reading, b.rows)
	newest := uint16(1) << uint(b.cols-1)
	for r := range b.cells {
		// Slot c+1 moves to slot c; slot 0 falls off. Bits at or above
		// cols are never set, so the vacated rightmost slot comes out
		// clear.
		b.cells[r] >>= 1

		// Height of this row above the baseline. Row 0 is the top, so
		// the index inverts: higher levels light cells nearer the top.
		p := b.rows - 1 - r
		var lit bool
		switch style {
		case Outline:
			lit = p == level-1
		default:
			lit = p < level
		}
		if lit {
			b.cells[r] |= newest
		}
	}
}

// String renders the grid with '#' for lit cells, top row first.
func (b *Buffer) String() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < b.cols; c++ {
			if b.Lit(r, c) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
