/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
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

func TestInterestCreate(t *testing.T) {
	i := ndn.NewInterest(0x12345678, 0x9abcdef0)
	assert.Equal(t, uint32(0x12345678), i.NameHash())
	assert.Equal(t, uint32(0x9abcdef0), i.Nonce())
	assert.Equal(t, ndn.TypeInterest, i.Type())
	assert.Equal(t, "Interest(NameHash=0x12345678, Nonce=0x9abcdef0)", i.String())

	i.SetNonce(7)
	assert.Equal(t, uint32(7), i.Nonce())
}

func TestInterestEncode(t *testing.T) {
	wire := ndn.EncodeInterest("/test/data", 0x12345678)
	require.Len(t, wire, ndn.InterestSize)
	assert.Equal(t, byte(tlv.Interest), wire[0])
	assert.Equal(t, byte(ndn.InterestSize), wire[1])
	assert.Equal(t, ndn.HashName("/test/data"), ndn.ByteOrder.Uint32(wire[2:]))
	assert.Equal(t, uint32(0x12345678), ndn.ByteOrder.Uint32(wire[6:]))
}

func TestInterestDecode(t *testing.T) {
	wire := ndn.EncodeInterest("/test/data", 0x12345678)
	i, err := ndn.DecodeInterest(wire)
	require.NoError(t, err)
	assert.Equal(t, ndn.HashName("/test/data"), i.NameHash())
	assert.Equal(t, uint32(0x12345678), i.Nonce())

	_, err = ndn.DecodeInterest(wire[:ndn.InterestSize-1])
	assert.ErrorIs(t, err, util.ErrTooShort)

	wire[0] = tlv.Data
	_, err = ndn.DecodeInterest(wire)
	assert.ErrorIs(t, err, tlv.ErrUnexpected)
}

func TestMakeInterest(t *testing.T) {
	i := ndn.MakeInterest("/hello")
	assert.Equal(t, ndn.HashName("/hello"), i.NameHash())
}
