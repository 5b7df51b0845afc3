//go:build !linux

/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package impl

import (
	"github.com/named-data/udcn/core"
)

// OpenRawSocket returns an error on platforms without AF_PACKET.
func OpenRawSocket(device string) (PcapHandle, error) {
	core.LogError("Face-RawSocket", "AF_PACKET sockets are not supported on this platform")
	return nil, core.ErrUnsupported
}
