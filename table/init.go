/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"github.com/named-data/udcn/core"
)

// Default table sizes.
const (
	DefaultPitCapacity      = 1024
	DefaultCsCapacity       = 512
	DefaultPayloadCapacity  = 512
	DefaultPayloadBlockSize = 256
)

var pitCapacity = DefaultPitCapacity
var csCapacity = DefaultCsCapacity
var payloadCapacity = DefaultPayloadCapacity
var payloadBlockSize = DefaultPayloadBlockSize

// Configure configures the tables.
func Configure() {
	pitCapacity = core.GetConfigIntDefault("tables.pit.capacity", DefaultPitCapacity)
	csCapacity = core.GetConfigIntDefault("tables.cs.capacity", DefaultCsCapacity)
	payloadCapacity = core.GetConfigIntDefault("tables.payload.capacity", DefaultPayloadCapacity)
	payloadBlockSize = core.GetConfigIntDefault("tables.payload.block_size", DefaultPayloadBlockSize)

	if pitCapacity < 1 {
		core.LogFatal("Table", "PIT capacity must be positive, got ", pitCapacity)
	}
	if csCapacity < 1 {
		core.LogFatal("Table", "CS capacity must be positive, got ", csCapacity)
	}
	if payloadCapacity < 1 || payloadBlockSize < 1 {
		core.LogFatal("Table", "Payload cache capacity and block size must be positive")
	}
}

// PitCapacity returns the configured PIT capacity.
func PitCapacity() int {
	return pitCapacity
}

// CsCapacity returns the configured Content Store capacity.
func CsCapacity() int {
	return csCapacity
}

// PayloadCapacity returns the configured number of payload cache blocks.
func PayloadCapacity() int {
	return payloadCapacity
}

// PayloadBlockSize returns the configured size of one payload cache block.
func PayloadBlockSize() int {
	return payloadBlockSize
}
