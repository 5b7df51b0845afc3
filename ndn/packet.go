/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"encoding/binary"

	"github.com/named-data/udcn/ndn/tlv"
)

// UDPPort is the well-known port carrying NDN traffic, used for both requests and replies.
const UDPPort = 6363

// EtherType is the Ethernet type registered for NDN.
const EtherType = 0x8624

// ByteOrder is the order of every multi-byte field inside an NDN packet. Packets are produced by
// the control plane in host order; both ends must share endianness.
var ByteOrder binary.ByteOrder = binary.NativeEndian

// PacketType is the first byte of an NDN packet.
type PacketType uint8

// Packet types.
const (
	TypeInterest PacketType = tlv.Interest
	TypeData     PacketType = tlv.Data
)

func (t PacketType) String() string {
	switch t {
	case TypeInterest:
		return "Interest"
	case TypeData:
		return "Data"
	}
	return "Other"
}

// Packet is one of *Interest, *Data or Other.
type Packet interface {
	Type() PacketType
	isPacket()
}

// Other is any payload that is not a decodable Interest or Data.
type Other struct {
	Discriminant uint8
	Err          error
}

// Type returns the discriminant byte of the payload (zero if there was none).
func (o Other) Type() PacketType {
	return PacketType(o.Discriminant)
}

func (Other) isPacket() {}

// Parse decodes wire into an Interest, a Data, or Other.
func Parse(wire []byte) Packet {
	hdr, err := tlv.DecodeHeader(wire)
	if err != nil {
		return Other{Err: err}
	}

	switch PacketType(hdr.Type) {
	case TypeInterest:
		interest, err := DecodeInterest(wire)
		if err != nil {
			return Other{Discriminant: hdr.Type, Err: err}
		}
		return interest
	case TypeData:
		data, err := DecodeData(wire)
		if err != nil {
			return Other{Discriminant: hdr.Type, Err: err}
		}
		return data
	}
	return Other{Discriminant: hdr.Type, Err: tlv.ErrUnexpected}
}

// IsNDNPacket returns whether wire starts with an Interest or Data discriminant.
func IsNDNPacket(wire []byte) bool {
	hdr, err := tlv.DecodeHeader(wire)
	if err != nil {
		return false
	}
	return hdr.Type == tlv.Interest || hdr.Type == tlv.Data
}
