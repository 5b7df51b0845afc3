/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"math"
	"strconv"

	"github.com/named-data/udcn/ndn/tlv"
	"github.com/named-data/udcn/ndn/util"
)

// Data field layout: [type:1][length:1][name_hash:4][content_size:2][signature:4] then content.
const (
	DataNameHashOffset    = tlv.HeaderSize
	DataContentSizeOffset = DataNameHashOffset + 4
	DataSignatureOffset   = DataContentSizeOffset + 2
	DataHeaderSize        = DataSignatureOffset + 4
)

// MaxContentSize is the largest content a Data packet can declare.
const MaxContentSize = math.MaxUint16

// Data represents an NDN Data packet.
type Data struct {
	nameHash    uint32
	contentSize uint16
	signature   uint32
	content     []byte
}

// NewData creates a new Data packet. The content is not copied.
func NewData(nameHash uint32, content []byte, signature uint32) (*Data, error) {
	if len(content) > MaxContentSize {
		return nil, util.ErrTooLong
	}
	return &Data{
		nameHash:    nameHash,
		contentSize: uint16(len(content)),
		signature:   signature,
		content:     content,
	}, nil
}

// DecodeData decodes a Data packet from the wire. The returned content aliases wire.
func DecodeData(wire []byte) (*Data, error) {
	if len(wire) < DataHeaderSize {
		return nil, util.ErrTooShort
	}
	if wire[0] != tlv.Data {
		return nil, tlv.ErrUnexpected
	}

	d := new(Data)
	d.nameHash = ByteOrder.Uint32(wire[DataNameHashOffset:])
	d.contentSize = ByteOrder.Uint16(wire[DataContentSizeOffset:])
	d.signature = ByteOrder.Uint32(wire[DataSignatureOffset:])
	if len(wire) < DataHeaderSize+int(d.contentSize) {
		return nil, util.ErrTooShort
	}
	d.content = wire[DataHeaderSize : DataHeaderSize+int(d.contentSize)]
	return d, nil
}

func (d *Data) String() string {
	return "Data(NameHash=0x" + strconv.FormatUint(uint64(d.nameHash), 16) + ", ContentSize=" + strconv.Itoa(int(d.contentSize)) + ", Signature=0x" + strconv.FormatUint(uint64(d.signature), 16) + ")"
}

// Type returns TypeData.
func (d *Data) Type() PacketType {
	return TypeData
}

func (*Data) isPacket() {}

// NameHash returns the name fingerprint of the Data.
func (d *Data) NameHash() uint32 {
	return d.nameHash
}

// ContentSize returns the declared content size.
func (d *Data) ContentSize() uint16 {
	return d.contentSize
}

// Signature returns the signature field.
func (d *Data) Signature() uint32 {
	return d.signature
}

// Content returns the content bytes.
func (d *Data) Content() []byte {
	return d.content
}

// Encode encodes the Data into its wire format.
func (d *Data) Encode() []byte {
	wire := make([]byte, DataHeaderSize+len(d.content))
	wire[0] = tlv.Data
	wire[1] = DataHeaderSize
	ByteOrder.PutUint32(wire[DataNameHashOffset:], d.nameHash)
	ByteOrder.PutUint16(wire[DataContentSizeOffset:], d.contentSize)
	ByteOrder.PutUint32(wire[DataSignatureOffset:], d.signature)
	copy(wire[DataHeaderSize:], d.content)
	return wire
}

// EncodeData encodes a Data packet for name carrying content.
func EncodeData(name string, content []byte, signature uint32) ([]byte, error) {
	d, err := NewData(HashName(name), content, signature)
	if err != nil {
		return nil, err
	}
	return d.Encode(), nil
}
