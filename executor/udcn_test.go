package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"runtime/pprof"
	"sync"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/named-data/udcn/core"
	"github.com/named-data/udcn/face"
	"github.com/named-data/udcn/face/impl"
	"github.com/named-data/udcn/fw"
	"github.com/named-data/udcn/mgmt"
	"github.com/named-data/udcn/ndn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type replayHandle struct {
	frames chan []byte
	once   sync.Once
}

func (h *replayHandle) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	frame, ok := <-h.frames
	if !ok {
		return nil, gopacket.CaptureInfo{}, io.EOF
	}
	return frame, gopacket.CaptureInfo{Timestamp: time.Now(), CaptureLength: len(frame), Length: len(frame)}, nil
}

func (h *replayHandle) LinkType() layers.LinkType {
	return layers.LinkTypeEthernet
}

func (h *replayHandle) WritePacketData([]byte) error {
	return nil
}

func (h *replayHandle) Close() {
	h.once.Do(func() { close(h.frames) })
}

func writeConfig(t *testing.T, doc string) string {
	path := filepath.Join(t.TempDir(), "udcn.toml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func freePort(t *testing.T) int {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func interestFrame(t *testing.T, nameHash uint32) []byte {
	frame, err := impl.BuildUDPFrame(impl.UDPEndpoints{
		SrcMAC:  net.HardwareAddr{0x02, 0, 0, 0, 0, 1},
		DstMAC:  net.HardwareAddr{0x02, 0, 0, 0, 0, 2},
		SrcIP:   net.IPv4(10, 0, 0, 1),
		DstIP:   net.IPv4(10, 0, 0, 2),
		SrcPort: 40000,
		DstPort: ndn.UDPPort,
	}, ndn.NewInterest(nameHash, 7).Encode())
	require.NoError(t, err)
	return frame
}

func TestUdcnLifecycle(t *testing.T) {
	config := writeConfig(t, fmt.Sprintf(`
[tables.pit]
capacity = 16

[mgmt.stats]
port = %d
`, freePort(t)))
	udcn, err := NewUdcn(&UdcnConfig{
		Version:        "test",
		ConfigFileName: config,
		Interface:      "veth-test",
		StatsInterval:  10 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, "veth-test", face.IngressInterface)

	var out bytes.Buffer
	var outMutex sync.Mutex
	udcn.Out = writerFunc(func(p []byte) (int, error) {
		outMutex.Lock()
		defer outMutex.Unlock()
		return out.Write(p)
	})

	handle := &replayHandle{frames: make(chan []byte, 4)}
	require.NoError(t, udcn.StartWithTransport(face.MakeIngressTransport(handle, "veth-test", face.ModePcap)))
	assert.Equal(t, 16, udcn.Forwarder().Pit.Capacity())

	handle.frames <- interestFrame(t, 0x0a0b0c0d)
	require.Eventually(t, func() bool {
		return udcn.dispatcher.Verdicts()[face.MeasurementPass] == 1
	}, 2*time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	status, err := mgmt.FetchStatus(ctx, udcn.statsServer.URL())
	require.NoError(t, err)
	assert.Equal(t, "test", status.Version)
	assert.Equal(t, 1, status.NPitEntries)
	assert.Equal(t, uint64(1), status.Verdicts[face.MeasurementPass])

	require.Eventually(t, func() bool {
		outMutex.Lock()
		defer outMutex.Unlock()
		return bytes.Contains(out.Bytes(), []byte("Interests received: 1"))
	}, 2*time.Second, 5*time.Millisecond)

	udcn.Stop()
	assert.Contains(t, out.String(), "µDCN Statistics:")
}

func TestUdcnForwarderFailureStopsProfiler(t *testing.T) {
	udcn, err := NewUdcn(&UdcnConfig{
		CpuProfile: filepath.Join(t.TempDir(), "cpu.pprof"),
	})
	require.NoError(t, err)
	udcn.newForwarder = func() (*fw.Forwarder, error) {
		return nil, core.ErrInternalFault
	}

	handle := &replayHandle{frames: make(chan []byte)}
	err = udcn.StartWithTransport(face.MakeIngressTransport(handle, "veth-test", face.ModePcap))
	assert.ErrorIs(t, err, core.ErrInternalFault)
	assert.Nil(t, udcn.Forwarder())

	// CPU profiling must have been stopped, so it can be started again.
	require.NoError(t, pprof.StartCPUProfile(io.Discard))
	pprof.StopCPUProfile()
}

func TestUdcnBadConfig(t *testing.T) {
	_, err := NewUdcn(&UdcnConfig{ConfigFileName: filepath.Join(t.TempDir(), "missing.toml")})
	assert.Error(t, err)
}

func TestProfiler(t *testing.T) {
	dir := t.TempDir()
	config := &UdcnConfig{
		CpuProfile:   filepath.Join(dir, "cpu.pprof"),
		MemProfile:   filepath.Join(dir, "mem.pprof"),
		BlockProfile: filepath.Join(dir, "block.pprof"),
	}
	p := NewProfiler(config)
	require.NoError(t, p.Start())
	p.Stop()

	for _, path := range []string{config.CpuProfile, config.MemProfile, config.BlockProfile} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0), path)
	}
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) {
	return f(p)
}
