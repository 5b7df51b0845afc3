//go:build windows || cgo

/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package impl

import (
	"fmt"
	"time"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	"github.com/named-data/udcn/core"
)

// pcapBufferSize is the kernel capture buffer requested for each handle.
const pcapBufferSize = 24 * 1024 * 1024

type pcapOption struct {
	name  string
	apply func() error
}

// OpenPcap creates and activates a PCAP handle capturing whole frames received on device.
// An empty bpfFilter captures everything.
func OpenPcap(device, bpfFilter string) (PcapHandle, error) {
	inactive, err := pcap.NewInactiveHandle(device)
	if err != nil {
		return nil, fmt.Errorf("unable to create PCAP handle on %s: %w", device, err)
	}
	defer inactive.CleanUp()

	// The timeout wakes up the capture loop periodically so it can observe Close.
	for _, opt := range []pcapOption{
		{"snap length", func() error { return inactive.SetSnapLen(core.MaxFrameSize) }},
		{"immediate mode", func() error { return inactive.SetImmediateMode(true) }},
		{"timeout", func() error { return inactive.SetTimeout(time.Second) }},
		{"buffer size", func() error { return inactive.SetBufferSize(pcapBufferSize) }},
	} {
		if err := opt.apply(); err != nil {
			return nil, fmt.Errorf("unable to set PCAP %s on %s: %w", opt.name, device, err)
		}
	}

	hdl, err := inactive.Activate()
	if err != nil {
		return nil, fmt.Errorf("unable to activate PCAP handle on %s: %w", device, err)
	}

	for _, opt := range []pcapOption{
		{"direction", func() error { return hdl.SetDirection(pcap.DirectionIn) }},
		{"link type", func() error { return hdl.SetLinkType(layers.LinkTypeEthernet) }},
		{"filter", func() error {
			if bpfFilter == "" {
				return nil
			}
			return hdl.SetBPFFilter(bpfFilter)
		}},
	} {
		if err := opt.apply(); err != nil {
			hdl.Close()
			return nil, fmt.Errorf("unable to set PCAP %s on %s: %w", opt.name, device, err)
		}
	}

	core.LogDebug("Face-Pcap", "Activated PCAP handle on ", device)
	return hdl, nil
}
