//go:build linux

/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package impl

import (
	"encoding/binary"
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/named-data/udcn/core"
	"golang.org/x/sys/unix"
)

// RawSocket is an AF_PACKET socket bound to one interface, receiving every inbound frame.
type RawSocket struct {
	fd      int
	addr    unix.SockaddrLinklayer
	ifindex int
	closed  atomic.Bool
}

func htons(v uint16) uint16 {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return binary.NativeEndian.Uint16(b[:])
}

// OpenRawSocket opens an AF_PACKET socket on device.
func OpenRawSocket(device string) (PcapHandle, error) {
	iface, err := net.InterfaceByName(device)
	if err != nil {
		core.LogError("Face-RawSocket", "Unable to find interface ", device, ": ", err)
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(htons(unix.ETH_P_ALL)))
	if err != nil {
		core.LogError("Face-RawSocket", "Unable to create AF_PACKET socket: ", err)
		return nil, err
	}

	s := &RawSocket{
		fd:      fd,
		addr:    unix.SockaddrLinklayer{Protocol: htons(unix.ETH_P_ALL), Ifindex: iface.Index},
		ifindex: iface.Index,
	}
	if err := unix.Bind(fd, &s.addr); err != nil {
		core.LogError("Face-RawSocket", "Unable to bind AF_PACKET socket to ", device, ": ", err)
		unix.Close(fd)
		return nil, err
	}

	// Wake up the receive loop periodically so it can observe Close
	timeout := unix.NsecToTimeval(time.Second.Nanoseconds())
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &timeout); err != nil {
		core.LogError("Face-RawSocket", "Unable to set receive timeout: ", err)
		unix.Close(fd)
		return nil, err
	}
	return s, nil
}

// ReadPacketData returns the next inbound frame. Frames sent by this host are skipped.
func (s *RawSocket) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	buf := make([]byte, core.MaxFrameSize)
	for {
		if s.closed.Load() {
			return nil, gopacket.CaptureInfo{}, io.EOF
		}

		n, from, err := unix.Recvfrom(s.fd, buf, 0)
		if err == unix.EAGAIN || err == unix.EINTR {
			continue
		} else if err != nil {
			if s.closed.Load() {
				return nil, gopacket.CaptureInfo{}, io.EOF
			}
			return nil, gopacket.CaptureInfo{}, err
		}

		if ll, ok := from.(*unix.SockaddrLinklayer); ok && ll.Pkttype == unix.PACKET_OUTGOING {
			continue
		}
		return buf[:n], gopacket.CaptureInfo{
			Timestamp:      time.Now(),
			CaptureLength:  n,
			Length:         n,
			InterfaceIndex: s.ifindex,
		}, nil
	}
}

// LinkType returns the Ethernet link type.
func (s *RawSocket) LinkType() layers.LinkType {
	return layers.LinkTypeEthernet
}

// WritePacketData transmits one frame on the bound interface.
func (s *RawSocket) WritePacketData(data []byte) error {
	return unix.Sendto(s.fd, data, 0, &s.addr)
}

// Close closes the socket.
func (s *RawSocket) Close() {
	if s.closed.Swap(true) {
		return
	}
	unix.Close(s.fd)
}
