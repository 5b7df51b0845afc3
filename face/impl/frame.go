/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package impl

import (
	"errors"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// MinEthernetFrameSize is the smallest Ethernet frame, without FCS.
const MinEthernetFrameSize = 60

// ErrNotUDPFrame is returned when a frame is not Ethernet/IPv4/UDP.
var ErrNotUDPFrame = errors.New("frame is not Ethernet/IPv4/UDP")

// UDPEndpoints are the addresses of an Ethernet/IPv4/UDP frame.
type UDPEndpoints struct {
	SrcMAC  net.HardwareAddr
	DstMAC  net.HardwareAddr
	SrcIP   net.IP
	DstIP   net.IP
	SrcPort uint16
	DstPort uint16
}

// BuildUDPFrame serializes payload into an Ethernet/IPv4/UDP frame, padded to the Ethernet minimum.
func BuildUDPFrame(ep UDPEndpoints, payload []byte) ([]byte, error) {
	srcMAC, dstMAC := ep.SrcMAC, ep.DstMAC
	if srcMAC == nil {
		srcMAC = make(net.HardwareAddr, 6)
	}
	if dstMAC == nil {
		dstMAC = make(net.HardwareAddr, 6)
	}

	eth := layers.Ethernet{
		SrcMAC:       srcMAC,
		DstMAC:       dstMAC,
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    ep.SrcIP.To4(),
		DstIP:    ep.DstIP.To4(),
	}
	udp := layers.UDP{
		SrcPort: layers.UDPPort(ep.SrcPort),
		DstPort: layers.UDPPort(ep.DstPort),
	}
	if err := udp.SetNetworkLayerForChecksum(&ip); err != nil {
		return nil, err
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, &eth, &ip, &udp, gopacket.Payload(payload)); err != nil {
		return nil, err
	}

	frame := buf.Bytes()
	if len(frame) < MinEthernetFrameSize {
		frame = append(frame, make([]byte, MinEthernetFrameSize-len(frame))...)
	}
	return frame, nil
}

// ParseUDPFrame returns the endpoints and UDP payload of an Ethernet/IPv4/UDP frame.
func ParseUDPFrame(frame []byte) (UDPEndpoints, []byte, error) {
	packet := gopacket.NewPacket(frame, layers.LayerTypeEthernet, gopacket.DecodeOptions{Lazy: true, NoCopy: true})
	eth, ok := packet.Layer(layers.LayerTypeEthernet).(*layers.Ethernet)
	if !ok {
		return UDPEndpoints{}, nil, ErrNotUDPFrame
	}
	ip, ok := packet.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
	if !ok {
		return UDPEndpoints{}, nil, ErrNotUDPFrame
	}
	udp, ok := packet.Layer(layers.LayerTypeUDP).(*layers.UDP)
	if !ok {
		return UDPEndpoints{}, nil, ErrNotUDPFrame
	}

	ep := UDPEndpoints{
		SrcMAC:  eth.SrcMAC,
		DstMAC:  eth.DstMAC,
		SrcIP:   ip.SrcIP,
		DstIP:   ip.DstIP,
		SrcPort: uint16(udp.SrcPort),
		DstPort: uint16(udp.DstPort),
	}
	return ep, udp.Payload, nil
}

// BuildReplyFrame builds a frame carrying payload back to the sender of request, with every
// address pair swapped.
func BuildReplyFrame(request []byte, payload []byte) ([]byte, error) {
	ep, _, err := ParseUDPFrame(request)
	if err != nil {
		return nil, err
	}
	return BuildUDPFrame(UDPEndpoints{
		SrcMAC:  ep.DstMAC,
		DstMAC:  ep.SrcMAC,
		SrcIP:   ep.DstIP,
		DstIP:   ep.SrcIP,
		SrcPort: ep.DstPort,
		DstPort: ep.SrcPort,
	}, payload)
}
