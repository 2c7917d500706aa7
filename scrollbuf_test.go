package thermoscroll

import "testing"

// identityWindow maps a reading in [0, 8] directly onto the bar height
// of an 8-row buffer.
var identityWindow = Window{Min: 0, Max: 8}

// barHeight counts the lit cells of one column from the bottom up and
// fails the test if the column is not a solid bar.
func barHeight(t *testing.T, b *Buffer, col int) int {
	t.Helper()
	rows, _ := b.Size()
	height := 0
	for p := 0; p < rows; p++ {
		if b.Lit(rows-1-p, col) {
			if p != height {
				t.Fatalf("column %d is not contiguous from the baseline:\n%v", col, b)
			}
			height++
		}
	}
	return height
}

func TestNewBufferValidation(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		cols    int
		wantErr bool
	}{
		{"defaults", DefaultRows, DefaultColumns, false},
		{"minimum 1x1", 1, 1, false},
		{"maximum columns", 8, 16, false},
		{"zero rows", 0, 12, true},
		{"negative rows", -1, 12, true},
		{"zero cols", 8, 0, true},
		{"too many cols", 8, 17, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBuffer(tt.rows, tt.cols)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBuffer(%d, %d) error = %v, wantErr %v", tt.rows, tt.cols, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			rows, cols := b.Size()
			if rows != tt.rows || cols != tt.cols {
				t.Errorf("Size() = %dx%d, want %dx%d", rows, cols, tt.rows, tt.cols)
			}
		})
	}
}

func TestPushEndToEnd(t *testing.T) {
	// The original demo configuration: 8x12 grid, window calibrated
	// from a 20.0 degree reading.
	window, err := NewWindow(20.0, 0.98, 5)
	if err != nil {
		t.Fatal(err)
	}
	if (window != Window{Min: 19, Max: 24}) {
		t.Fatalf("calibration window = %+v, want {19 24}", window)
	}

	b, err := NewBuffer(8, 12)
	if err != nil {
		t.Fatal(err)
	}

	readings := []float64{19.0, 21.5, 24.0}
	for _, r := range readings {
		b.Push(r, window, Filled)
	}

	// Newest on the right: 24.0 clamps to a full bar, 21.5 quantizes
	// to floor(2.5/5*8) = 4, 19.0 sits on the floor and shows nothing.
	wantHeights := map[int]int{11: 8, 10: 4, 9: 0}
	for col, want := range wantHeights {
		if got := barHeight(t, b, col); got != want {
			t.Errorf("column %d height = %d, want %d\n%v", col, got, want, b)
		}
	}
	// Slots the history has not reached yet stay empty.
	for col := 0; col < 9; col++ {
		if got := barHeight(t, b, col); got != 0 {
			t.Errorf("column %d height = %d, want empty", col, got)
		}
	}
}

func TestPushScrollFIFO(t *testing.T) {
	b, err := NewBuffer(8, 12)
	if err != nil {
		t.Fatal(err)
	}

	// Push more values than the buffer holds; heights cycle 0..8 so
	// consecutive columns stay distinguishable.
	const n = 30
	heights := make([]int, n)
	for i := 0; i < n; i++ {
		heights[i] = i % 9
		b.Push(float64(heights[i]), identityWindow, Filled)
	}

	// The rightmost slot holds the newest value and the leftmost the
	// (n-11)th; everything older is gone.
	for col := 0; col < 12; col++ {
		want := heights[n-12+col]
		if got := barHeight(t, b, col); got != want {
			t.Errorf("column %d height = %d, want %d\n%v", col, got, want, b)
		}
	}
}

func TestPushDiscardsOldest(t *testing.T) {
	b, err := NewBuffer(8, 4)
	if err != nil {
		t.Fatal(err)
	}

	b.Push(8, identityWindow, Filled)
	for i := 0; i < 4; i++ {
		b.Push(0, identityWindow, Filled)
	}

	// The full bar has been shifted out; nothing of it remains.
	rows, cols := b.Size()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if b.Lit(r, c) {
				t.Fatalf("cell (%d, %d) still lit after the bar scrolled off\n%v", r, c, b)
			}
		}
	}
}

func TestFilledBarsAreSupersets(t *testing.T) {
	rows := 8
	for low := 0; low <= rows; low++ {
		for high := low + 1; high <= rows; high++ {
			a, _ := NewBuffer(rows, 12)
			b, _ := NewBuffer(rows, 12)
			a.Push(float64(high), identityWindow, Filled)
			b.Push(float64(low), identityWindow, Filled)

			for r := 0; r < rows; r++ {
				if b.Lit(r, 11) && !a.Lit(r, 11) {
					t.Fatalf("height %d bar is missing a cell of the height %d bar at row %d", high, low, r)
				}
			}
			if barHeight(t, a, 11) <= barHeight(t, b, 11) {
				t.Fatalf("height %d bar is not strictly taller than height %d bar", high, low)
			}
		}
	}
}

func TestOutlineLightsExactlyOneCell(t *testing.T) {
	rows := 8
	for level := 0; level <= rows; level++ {
		b, _ := NewBuffer(rows, 12)
		b.Push(float64(level), identityWindow, Outline)

		lit := 0
		litRow := -1
		for r := 0; r < rows; r++ {
			if b.Lit(r, 11) {
				lit++
				litRow = r
			}
		}
		if level == 0 {
			if lit != 0 {
				t.Errorf("level 0 outline lit %d cells, want 0\n%v", lit, b)
			}
			continue
		}
		if lit != 1 {
			t.Errorf("level %d outline lit %d cells, want 1\n%v", level, lit, b)
			continue
		}
		// The marker sits at the bar's top cell; row 0 is the top.
		if want := rows - level; litRow != want {
			t.Errorf("level %d outline at row %d, want %d", level, litRow, want)
		}
	}
}

func TestPushTopRowOrientation(t *testing.T) {
	b, _ := NewBuffer(8, 12)

	b.Push(8, identityWindow, Filled)
	if !b.Lit(0, 11) {
		t.Error("full bar does not reach the top row")
	}

	b.Clear()
	b.Push(1, identityWindow, Filled)
	if !b.Lit(7, 11) {
		t.Error("height 1 bar does not light the bottom row")
	}
	if b.Lit(6, 11) {
		t.Error("height 1 bar lights more than the bottom row")
	}
}

func TestClear(t *testing.T) {
	b, _ := NewBuffer(8, 12)
	b.Push(8, identityWindow, Filled)
	b.Clear()
	if got := barHeight(t, b, 11); got != 0 {
		t.Errorf("height after Clear() = %d, want 0", got)
	}
}

func TestLitOutOfRange(t *testing.T) {
	b, _ := NewBuffer(8, 12)
	b.Push(8, identityWindow, Filled)
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 12}, {100, 100}} {
		if b.Lit(rc[0], rc[1]) {
			t.Errorf("Lit(%d, %d) = true for out-of-range cell", rc[0], rc[1])
		}
	}
}

func TestString(t *testing.T) {
	b, _ := NewBuffer(2, 3)
	b.Push(2, Window{Min: 0, Max: 2}, Filled)
	want := "..#\n..#"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
