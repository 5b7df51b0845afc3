/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"encoding/binary"
	"errors"

	"github.com/google/gopacket/layers"
	"github.com/named-data/udcn/core"
	"github.com/named-data/udcn/ndn"
)

// Header offsets and thresholds used by the classifier.
const (
	EthernetHeaderSize = 14
	EtherTypeOffset    = 12
	MinFrameSize       = EthernetHeaderSize + 20
	IPv4IHLOffset      = EthernetHeaderSize
	IPv4ProtocolOffset = EthernetHeaderSize + 9
	UDPHeaderSize      = 8
	UDPSrcPortOffset   = 0
	UDPDstPortOffset   = 2

	// MinNDNPayload is the payload needed to read the type discriminant.
	MinNDNPayload = 2
	// MinInterestPayload is stricter than the 10-byte Interest layout requires.
	MinInterestPayload = 12
	// MinDataPayload is less than the 12-byte Data header. A Data payload of 10 or 11 bytes passes
	// this check and is then rejected by the bounds check on the signature field.
	MinDataPayload = 10
)

// Reasons for a frame not being intercepted, besides core.ErrBoundsViolation.
var (
	ErrNotIPv4    = errors.New("not an IPv4 frame")
	ErrNotUDP     = errors.New("not a UDP datagram")
	ErrNotNDNPort = errors.New("neither UDP port is the NDN port")
	ErrNotNDNType = errors.New("payload is neither Interest nor Data")
	ErrTruncated  = errors.New("NDN payload shorter than its type threshold")
)

// Kind is the outcome of classifying a frame.
type Kind int

// Classification kinds.
const (
	NotIntercepted Kind = iota
	InterestPacket
	DataPacket
)

func (k Kind) String() string {
	switch k {
	case InterestPacket:
		return "Interest"
	case DataPacket:
		return "Data"
	}
	return "NotIntercepted"
}

// Classification is the typed result of Classify.
type Classification struct {
	Kind Kind
	// Type is the NDN discriminant once the payload was recognized as Interest or Data.
	// It is set even if the payload then turned out to be truncated.
	Type        ndn.PacketType
	NameHash    uint32
	Nonce       uint32
	ContentSize uint16
	Signature   uint32
	// Payload is the UDP payload of a Data packet, up to the end of the frame.
	Payload []byte
	// Reason explains why a frame was not intercepted.
	Reason error
}

func notIntercepted(reason error) Classification {
	return Classification{Kind: NotIntercepted, Reason: reason}
}

// Classify walks the Ethernet, IPv4 and UDP headers of frame and decodes the NDN packet it
// carries, if any. Besides stats.Drops (once per call) and stats.Forwards (once the frame is
// known to be UDP), it has no side effects.
func Classify(frame Frame, stats *Stats) Classification {
	stats.Drops.Add(1)

	if frame.End() < MinFrameSize {
		return notIntercepted(core.ErrBoundsViolation)
	}

	etherType, ok := frame.Uint16(EtherTypeOffset, binary.BigEndian)
	if !ok {
		return notIntercepted(core.ErrBoundsViolation)
	}
	if layers.EthernetType(etherType) != layers.EthernetTypeIPv4 {
		return notIntercepted(ErrNotIPv4)
	}

	versionIHL, ok := frame.Uint8(IPv4IHLOffset)
	if !ok {
		return notIntercepted(core.ErrBoundsViolation)
	}
	ipHeaderLen := int(versionIHL&0x0f) * 4
	udpStart := EthernetHeaderSize + ipHeaderLen
	if udpStart+UDPHeaderSize > frame.End() {
		return notIntercepted(core.ErrBoundsViolation)
	}

	protocol, ok := frame.Uint8(IPv4ProtocolOffset)
	if !ok {
		return notIntercepted(core.ErrBoundsViolation)
	}
	if layers.IPProtocol(protocol) != layers.IPProtocolUDP {
		return notIntercepted(ErrNotUDP)
	}

	dstPort, ok := frame.Uint16(udpStart+UDPDstPortOffset, binary.BigEndian)
	if !ok {
		return notIntercepted(core.ErrBoundsViolation)
	}
	srcPort, ok := frame.Uint16(udpStart+UDPSrcPortOffset, binary.BigEndian)
	if !ok {
		return notIntercepted(core.ErrBoundsViolation)
	}

	stats.Forwards.Add(1)
	if dstPort != ndn.UDPPort && srcPort != ndn.UDPPort {
		return notIntercepted(ErrNotNDNPort)
	}

	payloadStart := udpStart + UDPHeaderSize
	if payloadStart+MinNDNPayload > frame.End() {
		return notIntercepted(core.ErrBoundsViolation)
	}
	discriminant, ok := frame.Uint8(payloadStart)
	if !ok {
		return notIntercepted(core.ErrBoundsViolation)
	}

	switch ndn.PacketType(discriminant) {
	case ndn.TypeInterest:
		return classifyInterest(frame, payloadStart)
	case ndn.TypeData:
		return classifyData(frame, payloadStart)
	}
	return notIntercepted(ErrNotNDNType)
}

func classifyInterest(frame Frame, payloadStart int) Classification {
	c := Classification{Kind: NotIntercepted, Type: ndn.TypeInterest}
	if payloadStart+MinInterestPayload > frame.End() {
		c.Reason = ErrTruncated
		return c
	}

	var ok bool
	if c.NameHash, ok = frame.Uint32(payloadStart+ndn.InterestNameHashOffset, ndn.ByteOrder); !ok {
		c.Reason = core.ErrBoundsViolation
		return c
	}
	if c.Nonce, ok = frame.Uint32(payloadStart+ndn.InterestNonceOffset, ndn.ByteOrder); !ok {
		c.Reason = core.ErrBoundsViolation
		return c
	}
	c.Kind = InterestPacket
	return c
}

func classifyData(frame Frame, payloadStart int) Classification {
	c := Classification{Kind: NotIntercepted, Type: ndn.TypeData}
	if payloadStart+MinDataPayload > frame.End() {
		c.Reason = ErrTruncated
		return c
	}

	var ok bool
	if c.NameHash, ok = frame.Uint32(payloadStart+ndn.DataNameHashOffset, ndn.ByteOrder); !ok {
		c.Reason = core.ErrBoundsViolation
		return c
	}
	if c.ContentSize, ok = frame.Uint16(payloadStart+ndn.DataContentSizeOffset, ndn.ByteOrder); !ok {
		c.Reason = core.ErrBoundsViolation
		return c
	}
	if c.Signature, ok = frame.Uint32(payloadStart+ndn.DataSignatureOffset, ndn.ByteOrder); !ok {
		c.Reason = core.ErrBoundsViolation
		return c
	}
	if c.Payload, ok = frame.Tail(payloadStart); !ok {
		c.Reason = core.ErrBoundsViolation
		return c
	}
	c.Kind = DataPacket
	return c
}
