/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import "time"

// Version of µDCN.
var Version string

// StartTimestamp is the time the forwarder was started.
var StartTimestamp = time.Now()

// MaxFrameSize is the largest link-layer frame the fast path will look at.
const MaxFrameSize = 9018

// MonotonicNanos returns the nanoseconds elapsed since StartTimestamp.
// Table entries are stamped with this clock.
func MonotonicNanos() uint64 {
	return uint64(time.Since(StartTimestamp).Nanoseconds())
}
