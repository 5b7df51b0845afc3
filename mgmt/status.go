/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/named-data/udcn/core"
	"github.com/named-data/udcn/fw"
)

// VerdictSource reports per-verdict frame counts.
type VerdictSource interface {
	Verdicts() map[string]uint64
}

// LatencySource reports average processing latencies, in nanoseconds.
type LatencySource interface {
	Latencies() map[string]float64
}

// Status is the forwarder status served to the stats tool.
type Status struct {
	Version          string             `json:"version"`
	StartTimestamp   time.Time          `json:"start_timestamp"`
	CurrentTimestamp time.Time          `json:"current_timestamp"`
	NPitEntries      int                `json:"n_pit_entries"`
	NCsEntries       int                `json:"n_cs_entries"`
	NPayloadEntries  int                `json:"n_payload_entries"`
	Stats            fw.StatsSnapshot   `json:"stats"`
	Verdicts         map[string]uint64  `json:"verdicts,omitempty"`
	Latencies        map[string]float64 `json:"latencies,omitempty"`
}

// MakeStatus collects the current status of a forwarder. verdicts may be nil.
func MakeStatus(forwarder *fw.Forwarder, verdicts VerdictSource) Status {
	status := Status{
		Version:          core.Version,
		StartTimestamp:   core.StartTimestamp,
		CurrentTimestamp: time.Now(),
		Stats:            forwarder.Stats.Snapshot(),
	}
	if forwarder.Pit != nil {
		status.NPitEntries = forwarder.Pit.Size()
	}
	if forwarder.Cs != nil {
		status.NCsEntries = forwarder.Cs.Size()
	}
	if forwarder.Payloads != nil {
		status.NPayloadEntries = forwarder.Payloads.Size()
	}
	if verdicts != nil {
		status.Verdicts = verdicts.Verdicts()
		if latencies, ok := verdicts.(LatencySource); ok {
			status.Latencies = latencies.Latencies()
		}
	}
	return status
}

func (s Status) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "µDCN Statistics:\n")
	fmt.Fprintf(&b, "================\n")
	b.WriteString(s.Stats.String())
	fmt.Fprintf(&b, "PIT entries:        %d\n", s.NPitEntries)
	fmt.Fprintf(&b, "CS entries:         %d\n", s.NCsEntries)
	for _, key := range sortedKeys(s.Verdicts) {
		fmt.Fprintf(&b, "%-19s %d\n", key+":", s.Verdicts[key])
	}
	for _, key := range sortedKeys(s.Latencies) {
		fmt.Fprintf(&b, "%-19s %.0f\n", key+":", s.Latencies[key])
	}
	if !s.StartTimestamp.IsZero() {
		fmt.Fprintf(&b, "Uptime:             %s\n", s.CurrentTimestamp.Sub(s.StartTimestamp).Round(time.Second))
	}
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
