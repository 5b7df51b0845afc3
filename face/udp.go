/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"context"
	"net"
	"strconv"

	"github.com/named-data/udcn/face/impl"
	"github.com/named-data/udcn/ndn"
)

// ListenUDP opens a UDP socket on address with the reuse address option set.
// Use ":0" or "0.0.0.0:0" for an ephemeral port.
func ListenUDP(ctx context.Context, address string) (net.PacketConn, error) {
	listenConfig := &net.ListenConfig{Control: impl.SyscallReuseAddr}
	return listenConfig.ListenPacket(ctx, "udp", address)
}

// DefaultUDPAddress returns the loopback address on the NDN port, which the fast path
// intercepts.
func DefaultUDPAddress() string {
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(ndn.UDPPort))
}
