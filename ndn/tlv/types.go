/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

// TLV types for NDN. Only Interest and Data appear as packet discriminants on the fast path.
const (
	// Packet types
	Interest = 0x05
	Data     = 0x06

	// Name and components
	Name                 = 0x07
	GenericNameComponent = 0x08

	// Interest packets
	Nonce = 0x0a

	// Data packets
	MetaInfo       = 0x14
	Content        = 0x15
	SignatureInfo  = 0x16
	SignatureValue = 0x17
)

// HeaderSize is the size of the type/length header that starts every fixed-layout packet.
const HeaderSize = 2

// Header is the two-byte header that starts every fixed-layout packet.
type Header struct {
	Type   uint8
	Length uint8
}

// DecodeHeader reads a packet header from the start of wire.
func DecodeHeader(wire []byte) (Header, error) {
	if len(wire) < HeaderSize {
		return Header{}, ErrBufferTooShort
	}
	return Header{Type: wire[0], Length: wire[1]}, nil
}
