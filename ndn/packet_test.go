package ndn_test

import (
	"testing"

	"github.com/named-data/udcn/ndn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	interest := ndn.EncodeInterest("/test", 123)
	data, err := ndn.EncodeData("/test", []byte("content"), 456)
	require.NoError(t, err)

	p := ndn.Parse(interest)
	i, ok := p.(*ndn.Interest)
	require.True(t, ok)
	assert.Equal(t, uint32(123), i.Nonce())

	p = ndn.Parse(data)
	d, ok := p.(*ndn.Data)
	require.True(t, ok)
	assert.Equal(t, []byte("content"), d.Content())

	p = ndn.Parse([]byte{0xFF, 0x00})
	o, ok := p.(ndn.Other)
	require.True(t, ok)
	assert.Equal(t, uint8(0xFF), o.Discriminant)
	assert.Equal(t, "Other", o.Type().String())

	// Interest discriminant with a truncated body is not an Interest
	p = ndn.Parse(interest[:4])
	o, ok = p.(ndn.Other)
	require.True(t, ok)
	assert.Equal(t, ndn.TypeInterest, o.Type())
	assert.Error(t, o.Err)

	_, ok = ndn.Parse(nil).(ndn.Other)
	assert.True(t, ok)
}

func TestIsNDNPacket(t *testing.T) {
	data, err := ndn.EncodeData("/test", []byte("content"), 456)
	require.NoError(t, err)

	assert.True(t, ndn.IsNDNPacket(ndn.EncodeInterest("/test", 123)))
	assert.True(t, ndn.IsNDNPacket(data))
	assert.False(t, ndn.IsNDNPacket([]byte{0xFF, 0x00}))
	assert.False(t, ndn.IsNDNPacket([]byte{}))
}
