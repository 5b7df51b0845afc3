package fw

import (
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/named-data/udcn/face/impl"
	"github.com/named-data/udcn/ndn"
	"github.com/named-data/udcn/table"
	"github.com/stretchr/testify/require"
)

// payloadOffset is where the UDP payload starts in frames built by udpFrame.
const payloadOffset = EthernetHeaderSize + 20 + UDPHeaderSize

func udpFrame(t *testing.T, srcPort uint16, dstPort uint16, payload []byte) []byte {
	frame, err := impl.BuildUDPFrame(impl.UDPEndpoints{
		SrcMAC:  net.HardwareAddr{0x02, 0, 0, 0, 0, 1},
		DstMAC:  net.HardwareAddr{0x02, 0, 0, 0, 0, 2},
		SrcIP:   net.IPv4(10, 0, 0, 1),
		DstIP:   net.IPv4(10, 0, 0, 2),
		SrcPort: srcPort,
		DstPort: dstPort,
	}, payload)
	require.NoError(t, err)
	return frame
}

func interestFrame(t *testing.T, nameHash uint32, nonce uint32) []byte {
	return udpFrame(t, 40000, ndn.UDPPort, ndn.NewInterest(nameHash, nonce).Encode())
}

func dataFrame(t *testing.T, nameHash uint32, content []byte, signature uint32) []byte {
	data, err := ndn.NewData(nameHash, content, signature)
	require.NoError(t, err)
	return udpFrame(t, ndn.UDPPort, 40000, data.Encode())
}

func arpFrame(t *testing.T) []byte {
	eth := layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 1},
		DstMAC:       net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		EthernetType: layers.EthernetTypeARP,
	}
	arp := layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   []byte{0x02, 0, 0, 0, 0, 1},
		SourceProtAddress: []byte{10, 0, 0, 1},
		DstHwAddress:      []byte{0, 0, 0, 0, 0, 0},
		DstProtAddress:    []byte{10, 0, 0, 2},
	}
	buf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(buf, gopacket.SerializeOptions{FixLengths: true}, &eth, &arp))
	frame := buf.Bytes()
	for len(frame) < impl.MinEthernetFrameSize {
		frame = append(frame, 0)
	}
	return frame
}

func newTestForwarder(t *testing.T, pitCapacity int) *Forwarder {
	payloads, err := table.NewPayloadCache(8, 256)
	require.NoError(t, err)
	f := NewForwarder(table.NewPit(pitCapacity), table.NewContentStore(8), payloads)
	t.Cleanup(func() { f.Close() })
	return f
}
