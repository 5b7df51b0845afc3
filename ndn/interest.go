/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"math/rand"
	"strconv"

	"github.com/named-data/udcn/ndn/tlv"
	"github.com/named-data/udcn/ndn/util"
)

// Interest field layout: [type:1][length:1][name_hash:4][nonce:4].
const (
	InterestNameHashOffset = tlv.HeaderSize
	InterestNonceOffset    = InterestNameHashOffset + 4
	InterestSize           = InterestNonceOffset + 4
)

// Interest represents an NDN Interest packet.
type Interest struct {
	nameHash uint32
	nonce    uint32
}

// NewInterest creates a new Interest for the specified name fingerprint.
func NewInterest(nameHash uint32, nonce uint32) *Interest {
	return &Interest{nameHash: nameHash, nonce: nonce}
}

// MakeInterest creates a new Interest for name with a random nonce.
func MakeInterest(name string) *Interest {
	return NewInterest(HashName(name), rand.Uint32())
}

// DecodeInterest decodes an Interest from the wire.
func DecodeInterest(wire []byte) (*Interest, error) {
	if len(wire) < InterestSize {
		return nil, util.ErrTooShort
	}
	if wire[0] != tlv.Interest {
		return nil, tlv.ErrUnexpected
	}

	i := new(Interest)
	i.nameHash = ByteOrder.Uint32(wire[InterestNameHashOffset:])
	i.nonce = ByteOrder.Uint32(wire[InterestNonceOffset:])
	return i, nil
}

func (i *Interest) String() string {
	return "Interest(NameHash=0x" + strconv.FormatUint(uint64(i.nameHash), 16) + ", Nonce=0x" + strconv.FormatUint(uint64(i.nonce), 16) + ")"
}

// Type returns TypeInterest.
func (i *Interest) Type() PacketType {
	return TypeInterest
}

func (*Interest) isPacket() {}

// NameHash returns the name fingerprint of the Interest.
func (i *Interest) NameHash() uint32 {
	return i.nameHash
}

// Nonce returns the nonce of the Interest.
func (i *Interest) Nonce() uint32 {
	return i.nonce
}

// SetNonce sets the nonce of the Interest.
func (i *Interest) SetNonce(nonce uint32) {
	i.nonce = nonce
}

// Encode encodes the Interest into its wire format.
func (i *Interest) Encode() []byte {
	wire := make([]byte, InterestSize)
	wire[0] = tlv.Interest
	wire[1] = InterestSize
	ByteOrder.PutUint32(wire[InterestNameHashOffset:], i.nameHash)
	ByteOrder.PutUint32(wire[InterestNonceOffset:], i.nonce)
	return wire
}

// EncodeInterest encodes an Interest for name with the given nonce.
func EncodeInterest(name string, nonce uint32) []byte {
	return NewInterest(HashName(name), nonce).Encode()
}
