/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import "errors"

// Error definitions
var (
	// ErrBoundsViolation is returned when a read would pass the validated end of a frame.
	ErrBoundsViolation = errors.New("read exceeds validated frame extent")
	// ErrTableFull is returned when a bounded table has no room for a new key.
	ErrTableFull = errors.New("table is full")
	// ErrInternalFault marks any failure that is neither a bounds violation nor a full table.
	ErrInternalFault = errors.New("internal fault")
	// ErrUnsupported is returned when an attachment mode is unavailable on this platform.
	ErrUnsupported = errors.New("not supported on this platform")
)
