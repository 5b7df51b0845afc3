/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn_test

import (
	"testing"

	"github.com/named-data/udcn/ndn"
	"github.com/named-data/udcn/ndn/tlv"
	"github.com/named-data/udcn/ndn/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataEncode(t *testing.T) {
	content := []byte("Hello, NDN!")
	wire, err := ndn.EncodeData("/test/data", content, 0x9abcdef0)
	require.NoError(t, err)
	require.Len(t, wire, ndn.DataHeaderSize+len(content))
	assert.Equal(t, byte(tlv.Data), wire[0])
	assert.Equal(t, byte(ndn.DataHeaderSize), wire[1])
	assert.Equal(t, uint16(len(content)), ndn.ByteOrder.Uint16(wire[6:]))
	assert.Equal(t, uint32(0x9abcdef0), ndn.ByteOrder.Uint32(wire[8:]))
	assert.Equal(t, content, wire[ndn.DataHeaderSize:])
}

func TestDataDecode(t *testing.T) {
	content := []byte("Hello, NDN!")
	wire, err := ndn.EncodeData("/test/data", content, 0x9abcdef0)
	require.NoError(t, err)

	d, err := ndn.DecodeData(wire)
	require.NoError(t, err)
	assert.Equal(t, ndn.HashName("/test/data"), d.NameHash())
	assert.Equal(t, uint16(11), d.ContentSize())
	assert.Equal(t, uint32(0x9abcdef0), d.Signature())
	assert.Equal(t, content, d.Content())
	assert.Equal(t, ndn.TypeData, d.Type())

	// Content shorter than declared
	_, err = ndn.DecodeData(wire[:len(wire)-1])
	assert.ErrorIs(t, err, util.ErrTooShort)

	_, err = ndn.DecodeData(wire[:ndn.DataHeaderSize-1])
	assert.ErrorIs(t, err, util.ErrTooShort)

	wire[0] = tlv.Interest
	_, err = ndn.DecodeData(wire)
	assert.ErrorIs(t, err, tlv.ErrUnexpected)
}

func TestDataContentTooLarge(t *testing.T) {
	_, err := ndn.NewData(1, make([]byte, ndn.MaxContentSize+1), 0)
	assert.ErrorIs(t, err, util.ErrTooLong)

	d, err := ndn.NewData(1, make([]byte, ndn.MaxContentSize), 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(ndn.MaxContentSize), d.ContentSize())
}
