/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"encoding/binary"

	"github.com/named-data/udcn/core"
	"golang.org/x/exp/constraints"
)

// Frame is an immutable view of a received link-layer frame. Only bytes before End are valid,
// and every accessor checks its read against End before touching the buffer.
type Frame struct {
	buf []byte
	end int
}

// MakeFrame creates a view over all of buf.
func MakeFrame(buf []byte) Frame {
	return Frame{buf: buf, end: len(buf)}
}

// MakeFrameWithEnd creates a view over buf whose valid extent stops at end.
func MakeFrameWithEnd(buf []byte, end int) (Frame, error) {
	if end < 0 || end > len(buf) {
		return Frame{}, core.ErrBoundsViolation
	}
	return Frame{buf: buf, end: end}, nil
}

// End returns the validated length of the frame.
func (f Frame) End() int {
	return f.end
}

// Bytes returns the valid part of the frame.
func (f Frame) Bytes() []byte {
	return f.buf[:f.end]
}

func (f Frame) fits(offset int, width int) bool {
	return offset >= 0 && width >= 0 && offset <= f.end-width
}

// Uint8 reads one byte at offset.
func (f Frame) Uint8(offset int) (uint8, bool) {
	return loadUint[uint8](f, offset, binary.BigEndian)
}

// Uint16 reads a 2-byte field at offset in the given byte order.
func (f Frame) Uint16(offset int, order binary.ByteOrder) (uint16, bool) {
	return loadUint[uint16](f, offset, order)
}

// Uint32 reads a 4-byte field at offset in the given byte order.
func (f Frame) Uint32(offset int, order binary.ByteOrder) (uint32, bool) {
	return loadUint[uint32](f, offset, order)
}

// Tail returns the valid bytes from offset to the end of the frame.
func (f Frame) Tail(offset int) ([]byte, bool) {
	if !f.fits(offset, 0) {
		return nil, false
	}
	return f.buf[offset:f.end], true
}

// loadUint performs one bounds-checked fixed-width read.
func loadUint[T constraints.Unsigned](f Frame, offset int, order binary.ByteOrder) (T, bool) {
	var value T
	width := binary.Size(value)
	if width <= 0 || !f.fits(offset, width) {
		return 0, false
	}

	field := f.buf[offset : offset+width]
	switch width {
	case 1:
		return T(field[0]), true
	case 2:
		return T(order.Uint16(field)), true
	case 4:
		return T(order.Uint32(field)), true
	case 8:
		return T(order.Uint64(field)), true
	}
	return 0, false
}
