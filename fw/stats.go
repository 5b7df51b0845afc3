/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Stats holds the fast path packet counters. Counters only ever increase.
//
// Drops is incremented once for every frame that enters the fast path and once more for every
// frame actually dropped. Forwards is incremented for every UDP frame that reaches the port check.
// CacheMisses is never incremented by the fast path.
type Stats struct {
	InterestsReceived atomic.Uint64
	DataReceived      atomic.Uint64
	CacheHits         atomic.Uint64
	CacheMisses       atomic.Uint64
	PitHits           atomic.Uint64
	Forwards          atomic.Uint64
	Drops             atomic.Uint64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	InterestsReceived uint64 `json:"interests_received" yaml:"interests_received"`
	DataReceived      uint64 `json:"data_received" yaml:"data_received"`
	CacheHits         uint64 `json:"cache_hits" yaml:"cache_hits"`
	CacheMisses       uint64 `json:"cache_misses" yaml:"cache_misses"`
	PitHits           uint64 `json:"pit_hits" yaml:"pit_hits"`
	Forwards          uint64 `json:"forwards" yaml:"forwards"`
	Drops             uint64 `json:"drops" yaml:"drops"`
}

// Snapshot reads every counter. Counters are read one at a time, so concurrent updates may
// land between reads.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		InterestsReceived: s.InterestsReceived.Load(),
		DataReceived:      s.DataReceived.Load(),
		CacheHits:         s.CacheHits.Load(),
		CacheMisses:       s.CacheMisses.Load(),
		PitHits:           s.PitHits.Load(),
		Forwards:          s.Forwards.Load(),
		Drops:             s.Drops.Load(),
	}
}

// HitRatio returns the share of cache lookups that hit, in percent.
func (s StatsSnapshot) HitRatio() float64 {
	lookups := s.CacheHits + s.CacheMisses
	if lookups == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(lookups) * 100
}

func (s StatsSnapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Interests received: %d\n", s.InterestsReceived)
	fmt.Fprintf(&b, "Data received:      %d\n", s.DataReceived)
	fmt.Fprintf(&b, "Cache hits:         %d\n", s.CacheHits)
	fmt.Fprintf(&b, "Cache misses:       %d\n", s.CacheMisses)
	fmt.Fprintf(&b, "PIT hits:           %d\n", s.PitHits)
	fmt.Fprintf(&b, "Forwards:           %d\n", s.Forwards)
	fmt.Fprintf(&b, "Drops:              %d\n", s.Drops)
	if s.CacheHits+s.CacheMisses > 0 {
		fmt.Fprintf(&b, "Cache hit ratio:    %.2f%%\n", s.HitRatio())
	}
	return b.String()
}
