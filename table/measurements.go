/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"sort"

	"github.com/cornelk/hashmap"
)

// Measurements is a lock-free table of named diagnostic counters, such as per-verdict
// and per-queue packet counts.
type Measurements struct {
	values *hashmap.HashMap
}

// NewMeasurements creates an empty measurements table.
func NewMeasurements() *Measurements {
	return &Measurements{values: hashmap.New(32)}
}

// Get returns the measurement table value at the specified key or nil if it does not exist.
func (m *Measurements) Get(key string) interface{} {
	value, isOk := m.values.GetStringKey(key)
	if !isOk {
		return nil
	}
	return value
}

// GetUint64 returns the counter at the specified key, or 0 if it does not exist.
func (m *Measurements) GetUint64(key string) uint64 {
	if value, ok := m.Get(key).(uint64); ok {
		return value
	}
	return 0
}

// Set atomically sets the value of the specified key only if it is equal to the expected value, returning whether the operation was successful.
func (m *Measurements) Set(key string, expected interface{}, value interface{}) bool {
	return m.values.Cas(key, expected, value)
}

// Add adds the specified value to the given counter key, setting as value if unitialized.
func (m *Measurements) Add(key string, value uint64) {
	wasSet := false
	for !wasSet {
		expected := m.Get(key)
		if expected != nil {
			wasSet = m.Set(key, expected, expected.(uint64)+value)
		} else {
			_, wasSet = m.values.GetOrInsert(key, value)
			// We need to flip this because it returns false if set
			wasSet = !wasSet
		}
	}
}

// AddSampleToEWMA adds a sample to an exponentially weighted moving average.
func (m *Measurements) AddSampleToEWMA(key string, measurement float64, alpha float64) {
	wasSet := false
	for !wasSet {
		expected := m.Get(key)
		if expected != nil {
			previous := expected.(float64)
			wasSet = m.Set(key, expected, previous+alpha*(measurement-previous))
		} else {
			_, wasSet = m.values.GetOrInsert(key, measurement)
			wasSet = !wasSet
		}
	}
}

// Snapshot returns all counters, keyed by name.
func (m *Measurements) Snapshot() map[string]uint64 {
	snapshot := make(map[string]uint64)
	for kv := range m.values.Iter() {
		key, ok := kv.Key.(string)
		if !ok {
			continue
		}
		if value, ok := kv.Value.(uint64); ok {
			snapshot[key] = value
		}
	}
	return snapshot
}

// Keys returns the sorted names of all measurements.
func (m *Measurements) Keys() []string {
	keys := make([]string, 0, m.values.Len())
	for kv := range m.values.Iter() {
		if key, ok := kv.Key.(string); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
