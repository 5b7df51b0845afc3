package fw

import (
	"encoding/binary"
	"testing"

	"github.com/named-data/udcn/core"
	"github.com/named-data/udcn/ndn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyInterest(t *testing.T) {
	stats := new(Stats)
	c := Classify(MakeFrame(interestFrame(t, 0xAABBCCDD, 0x11223344)), stats)

	assert.Equal(t, InterestPacket, c.Kind)
	assert.Equal(t, ndn.TypeInterest, c.Type)
	assert.Equal(t, uint32(0xAABBCCDD), c.NameHash)
	assert.Equal(t, uint32(0x11223344), c.Nonce)
	assert.NoError(t, c.Reason)
	assert.Equal(t, uint64(1), stats.Drops.Load())
	assert.Equal(t, uint64(1), stats.Forwards.Load())
}

func TestClassifyData(t *testing.T) {
	stats := new(Stats)
	content := []byte("hello world")
	c := Classify(MakeFrame(dataFrame(t, 0xAABBCCDD, content, 0xCAFEBABE)), stats)

	assert.Equal(t, DataPacket, c.Kind)
	assert.Equal(t, uint32(0xAABBCCDD), c.NameHash)
	assert.Equal(t, uint16(11), c.ContentSize)
	assert.Equal(t, uint32(0xCAFEBABE), c.Signature)
	assert.Equal(t, ndn.DataHeaderSize+len(content), len(c.Payload))
	assert.Equal(t, content, c.Payload[ndn.DataHeaderSize:])
}

func TestClassifySourcePort(t *testing.T) {
	stats := new(Stats)
	frame := udpFrame(t, ndn.UDPPort, 50000, ndn.NewInterest(1, 2).Encode())
	assert.Equal(t, InterestPacket, Classify(MakeFrame(frame), stats).Kind)
}

func TestClassifyNotIntercepted(t *testing.T) {
	stats := new(Stats)

	c := Classify(MakeFrame(arpFrame(t)), stats)
	assert.Equal(t, NotIntercepted, c.Kind)
	assert.ErrorIs(t, c.Reason, ErrNotIPv4)
	assert.Equal(t, uint64(0), stats.Forwards.Load())

	c = Classify(MakeFrame(udpFrame(t, 40000, 40001, ndn.NewInterest(1, 2).Encode())), stats)
	assert.ErrorIs(t, c.Reason, ErrNotNDNPort)
	assert.Equal(t, uint64(1), stats.Forwards.Load())

	c = Classify(MakeFrame(udpFrame(t, 40000, ndn.UDPPort, []byte("GET / HTTP/1.1"))), stats)
	assert.ErrorIs(t, c.Reason, ErrNotNDNType)
	assert.Equal(t, ndn.PacketType(0), c.Type)

	notUDP := interestFrame(t, 1, 2)
	notUDP[IPv4ProtocolOffset] = 6
	c = Classify(MakeFrame(notUDP), stats)
	assert.ErrorIs(t, c.Reason, ErrNotUDP)

	assert.Equal(t, uint64(4), stats.Drops.Load())
	assert.Equal(t, uint64(2), stats.Forwards.Load())
}

func TestClassifyIHL(t *testing.T) {
	stats := new(Stats)
	frame := interestFrame(t, 1, 2)

	// An IHL pointing past the frame end fails closed
	frame[IPv4IHLOffset] = 0x4f
	c := Classify(MakeFrame(frame), stats)
	assert.Equal(t, NotIntercepted, c.Kind)
	assert.ErrorIs(t, c.Reason, core.ErrBoundsViolation)
}

func TestClassifyTruncatedInterest(t *testing.T) {
	buf := interestFrame(t, 0xAABBCCDD, 0x11223344)
	for end := 0; end < payloadOffset+MinInterestPayload; end++ {
		frame, err := MakeFrameWithEnd(buf, end)
		assert.NoError(t, err)
		c := Classify(frame, new(Stats))
		assert.Equal(t, NotIntercepted, c.Kind, "end=%d", end)
		if end >= payloadOffset+MinNDNPayload {
			assert.Equal(t, ndn.TypeInterest, c.Type, "end=%d", end)
			assert.ErrorIs(t, c.Reason, ErrTruncated, "end=%d", end)
		}
	}

	frame, _ := MakeFrameWithEnd(buf, payloadOffset+MinInterestPayload)
	assert.Equal(t, InterestPacket, Classify(frame, new(Stats)).Kind)
}

func TestClassifyTruncatedData(t *testing.T) {
	buf := dataFrame(t, 0xAABBCCDD, []byte("hello world"), 0xCAFEBABE)
	for end := 0; end < payloadOffset+ndn.DataHeaderSize; end++ {
		frame, err := MakeFrameWithEnd(buf, end)
		assert.NoError(t, err)
		c := Classify(frame, new(Stats))
		assert.Equal(t, NotIntercepted, c.Kind, "end=%d", end)
	}

	// Payloads of 10 and 11 bytes pass the Data threshold but not the signature read
	for end := payloadOffset + MinDataPayload; end < payloadOffset+ndn.DataHeaderSize; end++ {
		frame, _ := MakeFrameWithEnd(buf, end)
		c := Classify(frame, new(Stats))
		assert.ErrorIs(t, c.Reason, core.ErrBoundsViolation, "end=%d", end)
	}

	// Content is not required to be present
	frame, _ := MakeFrameWithEnd(buf, payloadOffset+ndn.DataHeaderSize)
	c := Classify(frame, new(Stats))
	assert.Equal(t, DataPacket, c.Kind)
	assert.Equal(t, uint16(11), c.ContentSize)
	assert.Len(t, c.Payload, ndn.DataHeaderSize)
}

func TestClassifyNetworkByteOrderPorts(t *testing.T) {
	buf := interestFrame(t, 1, 2)
	port := binary.BigEndian.Uint16(buf[payloadOffset-UDPHeaderSize+UDPDstPortOffset:])
	assert.Equal(t, uint16(ndn.UDPPort), port)
}
