package thermoscroll

import (
	"errors"
	"math"
	"time"
)

// ReadFunc returns one temperature reading in the same scalar unit the
// display window is calibrated in, or an error for a failed
// measurement cycle.
type ReadFunc func() (float64, error)

// Window is the calibrated display range. The full bar height maps
// onto [Min, Max]. Max > Min always holds: a Window is only built by
// adding a positive width to its floor.
type Window struct {
	Min float64
	Max float64
}

// CalibrationOpts configures Calibrate.
type CalibrationOpts struct {
	// Scale is applied to the calibration reading before flooring it
	// into the window's lower bound. Must be in (0, 1): the floor sits
	// slightly below the first reading so a rising signal fills the
	// display upward.
	Scale float64
	// Width is the size of the window, in reading units. Must be > 0.
	Width float64
	// Interval is the pause between failed calibration attempts.
	Interval time.Duration
}

// DefaultCalibration matches the original demo configuration: a 5
// degree window anchored at 98% of the first reading, retried once a
// second.
var DefaultCalibration = CalibrationOpts{
	Scale:    0.98,
	Width:    5,
	Interval: time.Second,
}

// NewWindow builds a display window from a single calibration reading.
//
// The lower bound is floor(scale*reading); sub-unit precision is
// deliberately discarded because the display resolution is a handful
// of bar cells. The upper bound is the lower bound plus width.
func NewWindow(reading, scale, width float64) (Window, error) {
	if scale <= 0 || scale >= 1 {
		return Window{}, errors.New("thermoscroll: scale must be in (0, 1)")
	}
	if width <= 0 {
		return Window{}, errors.New("thermoscroll: width must be positive")
	}
	min := math.Floor(scale * reading)
	return Window{Min: min, Max: min + width}, nil
}

// Calibrate obtains the display window from the first successful
// reading. Failed readings are retried without an attempt limit,
// sleeping opts.Interval between attempts: a headless display has
// nobody to escalate to, so waiting for the first good sample is the
// whole policy. A nil opts uses DefaultCalibration.
func Calibrate(read ReadFunc, opts *CalibrationOpts) (Window, error) {
	if opts == nil {
		opts = &DefaultCalibration
	}
	// Validate up front so the retry loop cannot spin forever on a
	// window that can never be built.
	if _, err := NewWindow(0, opts.Scale, opts.Width); err != nil {
		return Window{}, err
	}
	for {
		reading, err := read()
		if err != nil {
			time.Sleep(opts.Interval)
			continue
		}
		return NewWindow(reading, opts.Scale, opts.Width)
	}
}

// Level quantizes a reading into a bar height in [0, steps].
//
// Readings below Min clamp to 0 and readings above Max clamp to
// steps; an out-of-window sample shows as an empty or a full bar,
// never as an error.
func (w Window) Level(reading float64, steps int) int {
	level := math.Floor((reading - w.Min) / (w.Max - w.Min) * float64(steps))
	// Clamp before leaving the float domain: converting an
	// out-of-range float to int is implementation-defined.
	if level >= float64(steps) {
		return steps
	}
	if level > 0 {
		return int(level)
	}
	return 0
}
