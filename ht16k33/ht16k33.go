// Package ht16k33 controls a Holtek HT16K33 LED controller driving a
// 16x8 LED matrix via I²C.
//
// The HT16K33 multiplexes up to 128 LEDs from a 16-byte display RAM
// and refreshes them autonomously; the host only pushes frame buffer
// updates. This driver covers the matrix backpack use case: pixel
// addressing, full-frame flush, brightness and the hardware blink
// modes. 7-segment decoding is out of scope.
//
// Datasheet:
// https://www.holtek.com/webapi/116711/HT16K33Av102.pdf
package ht16k33

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// DefaultAddr is the backpack's I²C address with all address solder
// jumpers open.
const DefaultAddr uint16 = 0x70

// Matrix dimensions. The controller always scans the full 16x8 RAM;
// smaller displays simply leave columns unconnected.
const (
	Rows    = 8
	Columns = 16
)

const (
	cmdSystemSetup  = 0x20 // | 0x01 turns the oscillator on
	cmdDisplaySetup = 0x80 // | 0x01 display on, | rate<<1 blink mode
	cmdBrightness   = 0xE0 // | level (0-15)
	ramAddr         = 0x00
)

// BlinkRate selects the hardware blink frequency of the whole display.
type BlinkRate byte

const (
	BlinkOff    BlinkRate = 0x0
	Blink2Hz    BlinkRate = 0x1
	Blink1Hz    BlinkRate = 0x2
	BlinkHalfHz BlinkRate = 0x3
)

// Bitmap is a fixed-size binary frame. Row 0 is the top of the
// display and column 0 the leftmost slot.
type Bitmap interface {
	Size() (rows, cols int)
	Lit(row, col int) bool
}

// Opts is the configuration for the display.
type Opts struct {
	// Brightness is the initial duty cycle, 0 (dimmest) to 15.
	Brightness uint8
}

// Dev is a handle to an HT16K33 matrix.
type Dev struct {
	c      conn.Conn
	addr   uint16
	buffer [16]byte
	halted bool
}

// New opens a handle to the controller, starts its oscillator, turns
// the display on and flushes an empty frame. An addr of 0 selects
// DefaultAddr; a nil opts uses maximum brightness.
func New(bus i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if addr == 0 {
		addr = DefaultAddr
	}
	if opts == nil {
		opts = &Opts{Brightness: 15}
	}
	if opts.Brightness > 15 {
		return nil, errors.New("ht16k33: brightness must be between 0 and 15")
	}

	d := &Dev{c: &i2c.Dev{Bus: bus, Addr: addr}, addr: addr}
	if err := d.c.Tx([]byte{cmdSystemSetup | 0x01}, nil); err != nil {
		return nil, fmt.Errorf("ht16k33: oscillator start failed: %w", err)
	}
	if err := d.c.Tx([]byte{cmdDisplaySetup | 0x01}, nil); err != nil {
		return nil, fmt.Errorf("ht16k33: display enable failed: %w", err)
	}
	if err := d.SetBrightness(opts.Brightness); err != nil {
		return nil, err
	}
	// The display RAM content is undefined at power-on.
	if err := d.Display(); err != nil {
		return nil, err
	}
	return d, nil
}

// SetPixel updates one cell in the frame buffer. The display is not
// touched until Display is called. Out-of-range coordinates are
// ignored.
func (d *Dev) SetPixel(row, col int, on bool) {
	if row < 0 || row >= Rows || col < 0 || col >= Columns {
		return
	}
	idx := row*2 + col/8
	mask := byte(1) << uint(col%8)
	if on {
		d.buffer[idx] |= mask
	} else {
		d.buffer[idx] &^= mask
	}
}

// Clear turns every cell of the frame buffer off.
func (d *Dev) Clear() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
}

// Display transfers the frame buffer to the display RAM.
func (d *Dev) Display() error {
	if d.halted {
		return errors.New("ht16k33: halted")
	}
	data := append([]byte{ramAddr}, d.buffer[:]...)
	return d.c.Tx(data, nil)
}

// DrawBitmap renders b anchored at the top-left corner of the matrix
// and flushes the frame. Cells outside b's size are turned off.
func (d *Dev) DrawBitmap(b Bitmap) error {
	rows, cols := b.Size()
	if rows > Rows || cols > Columns {
		return fmt.Errorf("ht16k33: bitmap %dx%d exceeds the %dx%d matrix", rows, cols, Rows, Columns)
	}
	d.Clear()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			d.SetPixel(r, c, b.Lit(r, c))
		}
	}
	return d.Display()
}

// Fill turns every pixel on and flushes the frame.
func (d *Dev) Fill() error {
	for i := range d.buffer {
		d.buffer[i] = 0xFF
	}
	return d.Display()
}

// SetBrightness sets the display duty cycle, 0 (dimmest) to 15. The
// effect is immediate; 0 does not turn the display off.
func (d *Dev) SetBrightness(level uint8) error {
	if d.halted {
		return errors.New("ht16k33: halted")
	}
	if level > 15 {
		return errors.New("ht16k33: brightness must be between 0 and 15")
	}
	return d.c.Tx([]byte{cmdBrightness | level}, nil)
}

// SetBlink sets the hardware blink mode of the whole display.
func (d *Dev) SetBlink(rate BlinkRate) error {
	if d.halted {
		return errors.New("ht16k33: halted")
	}
	if rate > BlinkHalfHz {
		return fmt.Errorf("ht16k33: invalid blink rate %d", rate)
	}
	return d.c.Tx([]byte{cmdDisplaySetup | 0x01 | byte(rate)<<1}, nil)
}

// Halt turns the display and the oscillator off. Further operations
// fail until a new handle is created.
func (d *Dev) Halt() error {
	d.halted = true
	if err := d.c.Tx([]byte{cmdDisplaySetup}, nil); err != nil {
		return err
	}
	return d.c.Tx([]byte{cmdSystemSetup}, nil)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ht16k33.Dev{%dx%d@%#02x}", Columns, Rows, d.addr)
}
