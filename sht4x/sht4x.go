// Package sht4x controls a Sensirion SHT4x temperature and humidity
// sensor via I²C.
//
// The SHT4x family (SHT40/SHT41/SHT45) is a single-command sensor: the
// host writes one command byte, waits for the conversion, then reads
// the result. Every 16-bit word on the wire is followed by a CRC-8
// checksum which this driver verifies.
//
// Datasheet:
// https://sensirion.com/media/documents/33FD6951/662A593A/HT_DS_Datasheet_SHT4x.pdf
package sht4x

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// DefaultAddr is the fixed I²C address of the SHT40-AD1B and SHT41
// variants.
const DefaultAddr uint16 = 0x44

const (
	cmdMeasureHigh = 0xFD // high repeatability T+RH measurement
	cmdReadSerial  = 0x89
	cmdSoftReset   = 0x94
)

const (
	// Conversion takes at most 8.3ms at high repeatability.
	measureDelay = 10 * time.Millisecond
	serialDelay  = time.Millisecond
	resetDelay   = time.Millisecond
)

// Dev is a handle to an SHT4x sensor.
type Dev struct {
	c      conn.Conn
	addr   uint16
	serial uint32
	halted bool
}

// New opens a handle to the sensor on the given bus. An addr of 0
// selects DefaultAddr.
//
// The sensor is soft-reset and its serial number is read as an
// identity probe; if either transaction fails there is no sensor on
// the bus and the error is not recoverable by retrying a measurement.
func New(bus i2c.Bus, addr uint16) (*Dev, error) {
	if addr == 0 {
		addr = DefaultAddr
	}
	d := &Dev{c: &i2c.Dev{Bus: bus, Addr: addr}, addr: addr}
	if err := d.c.Tx([]byte{cmdSoftReset}, nil); err != nil {
		return nil, fmt.Errorf("sht4x: soft reset failed: %w", err)
	}
	time.Sleep(resetDelay)

	var buf [6]byte
	if err := d.command(cmdReadSerial, serialDelay, buf[:]); err != nil {
		return nil, fmt.Errorf("sht4x: serial number read failed: %w", err)
	}
	hi, err := word(buf[0:3])
	if err != nil {
		return nil, fmt.Errorf("sht4x: serial number: %w", err)
	}
	lo, err := word(buf[3:6])
	if err != nil {
		return nil, fmt.Errorf("sht4x: serial number: %w", err)
	}
	d.serial = uint32(hi)<<16 | uint32(lo)
	return d, nil
}

// Serial returns the sensor's factory-programmed serial number.
func (d *Dev) Serial() uint32 {
	return d.serial
}

// Sense performs one high repeatability measurement and fills in the
// temperature and humidity of e. A failed measurement leaves e
// untouched; the caller is free to retry on the next cycle.
func (d *Dev) Sense(e *physic.Env) error {
	if d.halted {
		return errors.New("sht4x: halted")
	}
	var buf [6]byte
	if err := d.command(cmdMeasureHigh, measureDelay, buf[:]); err != nil {
		return fmt.Errorf("sht4x: measurement failed: %w", err)
	}
	rawT, err := word(buf[0:3])
	if err != nil {
		return fmt.Errorf("sht4x: temperature: %w", err)
	}
	rawRH, err := word(buf[3:6])
	if err != nil {
		return fmt.Errorf("sht4x: humidity: %w", err)
	}

	// Conversion formulas from the datasheet, §4.6.
	tC := -45 + 175*float64(rawT)/65535
	rh := -6 + 125*float64(rawRH)/65535
	if rh < 0 {
		rh = 0
	} else if rh > 100 {
		rh = 100
	}
	e.Temperature = physic.ZeroCelsius + physic.Temperature(tC*float64(physic.Kelvin))
	e.Humidity = physic.RelativeHumidity(rh * float64(physic.PercentRH))
	return nil
}

// SenseTemp performs one measurement and returns only the temperature.
func (d *Dev) SenseTemp() (physic.Temperature, error) {
	var e physic.Env
	if err := d.Sense(&e); err != nil {
		return 0, err
	}
	return e.Temperature, nil
}

// Halt stops the device. Further measurements fail until a new handle
// is created.
func (d *Dev) Halt() error {
	d.halted = true
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("sht4x.Dev{%#02x}", d.addr)
}

// command writes a single command byte, waits out the conversion and
// reads the response. The SHT4x NAKs reads while busy, so the wait is
// a fixed worst-case delay rather than a poll.
func (d *Dev) command(cmd byte, wait time.Duration, resp []byte) error {
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		return err
	}
	time.Sleep(wait)
	return d.c.Tx(nil, resp)
}

// word decodes one 16-bit big-endian value followed by its CRC-8.
func word(b []byte) (uint16, error) {
	if got := crc8(b[:2]); got != b[2] {
		return 0, fmt.Errorf("CRC mismatch: calculated %#02x, got %#02x", got, b[2])
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// crc8 implements the checksum from the datasheet §4.4: polynomial
// 0x31, initialization 0xFF, no final XOR.
func crc8(data []byte) byte {
	crc := byte(0xFF)
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x31
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
