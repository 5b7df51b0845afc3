/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"errors"
	"sync/atomic"

	"github.com/google/gopacket"
	"github.com/named-data/udcn/core"
	"github.com/named-data/udcn/face/impl"
)

// ErrFrameTooLarge is returned when a frame exceeds core.MaxFrameSize.
var ErrFrameTooLarge = errors.New("frame larger than maximum frame size")

// IngressTransport captures every frame received on one interface.
//
// Capture is observational: the kernel delivers frames to its own stack whatever the fast path
// decides, so Drop only means the frame is not acted upon further.
type IngressTransport struct {
	handle  impl.PcapHandle
	ifname  string
	mode    string
	HasQuit chan bool

	nInFrames  atomic.Uint64
	nOutFrames atomic.Uint64
}

// OpenIngressTransport attaches to ifname using the given mode.
func OpenIngressTransport(ifname string, mode string) (*IngressTransport, error) {
	var handle impl.PcapHandle
	var err error
	switch mode {
	case ModePcap:
		handle, err = impl.OpenPcap(ifname, ingressBPFFilter)
	case ModeAFPacket:
		handle, err = impl.OpenRawSocket(ifname)
	default:
		return nil, core.ErrUnsupported
	}
	if err != nil {
		return nil, err
	}
	return MakeIngressTransport(handle, ifname, mode), nil
}

// MakeIngressTransport wraps an already opened capture handle.
func MakeIngressTransport(handle impl.PcapHandle, ifname string, mode string) *IngressTransport {
	return &IngressTransport{
		handle:  handle,
		ifname:  ifname,
		mode:    mode,
		HasQuit: make(chan bool, 1),
	}
}

func (t *IngressTransport) String() string {
	return "IngressTransport, Interface=" + t.ifname + ", Mode=" + t.mode
}

// RunReceive hands every captured frame to deliver until the transport is closed.
func (t *IngressTransport) RunReceive(deliver func(frame []byte)) {
	source := gopacket.NewPacketSource(t.handle, t.handle.LinkType())
	source.DecodeOptions = gopacket.DecodeOptions{Lazy: true, NoCopy: true}
	for packet := range source.Packets() {
		frame := packet.Data()
		if len(frame) > core.MaxFrameSize {
			core.LogDebug(t, "Received frame of ", len(frame), " bytes - IGNORE")
			continue
		}
		t.nInFrames.Add(1)
		deliver(frame)
	}
	core.LogInfo(t, "Capture stopped")
	t.HasQuit <- true
}

// SendFrame transmits a frame out of the interface.
func (t *IngressTransport) SendFrame(frame []byte) error {
	if len(frame) > core.MaxFrameSize {
		return ErrFrameTooLarge
	}
	if err := t.handle.WritePacketData(frame); err != nil {
		return err
	}
	t.nOutFrames.Add(1)
	return nil
}

// Close detaches from the interface, which ends RunReceive.
func (t *IngressTransport) Close() {
	core.LogInfo(t, "Closing transport")
	t.handle.Close()
}

// NInFrames returns the number of frames received.
func (t *IngressTransport) NInFrames() uint64 {
	return t.nInFrames.Load()
}

// NOutFrames returns the number of frames sent.
func (t *IngressTransport) NOutFrames() uint64 {
	return t.nOutFrames.Load()
}
