package mgmt

import (
	"context"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/named-data/udcn/fw"
	"github.com/named-data/udcn/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedVerdicts map[string]uint64

func (v fixedVerdicts) Verdicts() map[string]uint64 {
	return v
}

func newForwarder(t *testing.T) *fw.Forwarder {
	payloads, err := table.NewPayloadCache(4, 64)
	require.NoError(t, err)
	f := fw.NewForwarder(table.NewPit(16), table.NewContentStore(4), payloads)
	t.Cleanup(func() { f.Close() })
	return f
}

func startServer(t *testing.T, forwarder *fw.Forwarder, verdicts VerdictSource) *StatsServer {
	s := NewStatsServer(StatsServerConfig{Bind: "127.0.0.1", Port: 0}, forwarder, verdicts)
	require.NoError(t, s.Listen())
	go s.Run()
	t.Cleanup(func() {
		s.Close()
		<-s.HasQuit
	})
	return s
}

func TestStatsServerConfig(t *testing.T) {
	cfg := StatsServerConfig{Bind: "127.0.0.1", Port: 6364}
	assert.Equal(t, "ws://127.0.0.1:6364", cfg.URL().String())
	assert.Equal(t, "statistics service at ws://127.0.0.1:6364", cfg.String())

	cfg = StatsServerConfig{Bind: "::1", Port: 6364}
	assert.Equal(t, "ws://[::1]:6364", cfg.URL().String())
}

func TestFetchStatus(t *testing.T) {
	forwarder := newForwarder(t)
	forwarder.Stats.InterestsReceived.Add(3)
	forwarder.Stats.CacheHits.Add(1)
	require.NoError(t, forwarder.Pit.Insert(0x1234, 1, 1))
	forwarder.Cs.Upsert(0x5678, 4, 1)

	s := startServer(t, forwarder, fixedVerdicts{"verdict.pass": 7})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	status, err := FetchStatus(ctx, s.URL())
	require.NoError(t, err)

	assert.Equal(t, uint64(3), status.Stats.InterestsReceived)
	assert.Equal(t, uint64(1), status.Stats.CacheHits)
	assert.Equal(t, 1, status.NPitEntries)
	assert.Equal(t, 1, status.NCsEntries)
	assert.Equal(t, uint64(7), status.Verdicts["verdict.pass"])
	assert.False(t, status.CurrentTimestamp.Before(status.StartTimestamp))
}

func TestStatusRefreshOnRequest(t *testing.T) {
	forwarder := newForwarder(t)
	s := startServer(t, forwarder, nil)

	conn, _, err := websocket.DefaultDialer.Dial(s.URL(), nil)
	require.NoError(t, err)
	defer conn.Close()

	var first Status
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, uint64(0), first.Stats.DataReceived)
	assert.Nil(t, first.Verdicts)

	forwarder.Stats.DataReceived.Add(2)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("status")))

	var second Status
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, uint64(2), second.Stats.DataReceived)
}

func TestFetchStatusUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := FetchStatus(ctx, "ws://127.0.0.1:1")
	assert.Error(t, err)
}

func TestStatusString(t *testing.T) {
	status := Status{
		Stats:       fw.StatsSnapshot{InterestsReceived: 4, CacheHits: 1, CacheMisses: 1},
		NPitEntries: 2,
		Verdicts:    map[string]uint64{"verdict.pass": 4},
	}
	out := status.String()
	assert.Contains(t, out, "µDCN Statistics:")
	assert.Contains(t, out, "Interests received: 4\n")
	assert.Contains(t, out, "PIT entries:        2\n")
	assert.Contains(t, out, "Cache hit ratio:    50.00%")
	assert.Contains(t, out, "verdict.pass:")
	assert.NotContains(t, out, "Uptime")
}

func TestConfigure(t *testing.T) {
	Configure()
	assert.True(t, StatsEnabled())
	assert.Equal(t, StatsServerConfig{Bind: "127.0.0.1", Port: DefaultStatsPort}, ConfiguredStatsServer())
}

type queueDiagnostics struct {
	fixedVerdicts
}

func (queueDiagnostics) Latencies() map[string]float64 {
	return map[string]float64{"queue.0.latency_ns": 812}
}

func TestStatusLatencies(t *testing.T) {
	forwarder := newForwarder(t)
	status := MakeStatus(forwarder, queueDiagnostics{fixedVerdicts{"queue.0.frames": 5}})
	assert.Equal(t, uint64(5), status.Verdicts["queue.0.frames"])
	assert.Equal(t, 812.0, status.Latencies["queue.0.latency_ns"])
	assert.Contains(t, status.String(), "queue.0.latency_ns: 812\n")

	status = MakeStatus(forwarder, fixedVerdicts{"verdict.pass": 1})
	assert.Nil(t, status.Latencies)
}
