// Package thermoscroll renders a temperature history as a scrolling
// bar chart on a small monochrome LED matrix.
//
// The package holds the two pieces of pure logic behind the display:
// a one-shot range calibration that anchors the chart to the ambient
// temperature at power-on, and a fixed-width scroll buffer that turns
// each reading into a quantized bar and shifts it into the history.
// The bus drivers for the sensor and the matrix live in the sht4x and
// ht16k33 subpackages.
//
// # Calibration
//
// The display window is derived from the first successful reading and
// stays fixed until the next restart:
//
//	min = floor(scale * reading)
//	max = min + width
//
// scale is strictly below 1 so that the window floor sits slightly
// under the calibration reading. The chart therefore starts near the
// bottom and a rising temperature fills the display upward instead of
// hovering around the middle row.
//
// # Scroll buffer
//
// The buffer is a rows×columns binary grid. Columns are time slots,
// oldest on the left. Each Push quantizes the reading into a bar
// height in [0, rows], shifts every slot one position to the left
// (discarding the oldest) and draws the new bar in the rightmost
// slot. Readings outside the calibrated window clamp to an empty or a
// full bar. Row 0 is the physical top of the display, so higher
// readings light cells nearer the top.
//
// # Basic Usage
//
//	window, err := thermoscroll.Calibrate(readTemp, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	buf, err := thermoscroll.NewBuffer(thermoscroll.DefaultRows, thermoscroll.DefaultColumns)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for {
//		if t, err := readTemp(); err == nil {
//			buf.Push(t, window, thermoscroll.Filled)
//			dev.DrawBitmap(buf)
//		}
//		time.Sleep(time.Second)
//	}
//
// See examples/thermoscroll_demo for the complete hardware loop and
// examples/thermoscroll_sim for a terminal rendition that needs no
// hardware at all.
package thermoscroll
