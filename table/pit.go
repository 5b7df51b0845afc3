/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"strconv"
	"sync"

	"github.com/named-data/udcn/core"
)

// PitEntry is an outstanding Interest. There is at most one per name fingerprint.
type PitEntry struct {
	NameHash  uint32
	FaceID    uint32
	Timestamp uint64
}

// Pit is a bounded Pending Interest Table keyed by name fingerprint. Each operation is atomic.
// Entries never expire: a stale entry stays until it is matched or overwritten.
type Pit struct {
	mutex    sync.Mutex
	entries  map[uint32]PitEntry
	capacity int
}

// NewPit creates a PIT holding at most capacity entries.
func NewPit(capacity int) *Pit {
	return &Pit{
		entries:  make(map[uint32]PitEntry, capacity),
		capacity: capacity,
	}
}

func (p *Pit) String() string {
	return "PIT(capacity=" + strconv.Itoa(p.capacity) + ")"
}

// Insert records an Interest for nameHash, overwriting any existing entry for the same
// fingerprint. It returns core.ErrTableFull when the table is at capacity and nameHash is new.
func (p *Pit) Insert(nameHash uint32, faceID uint32, timestamp uint64) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, ok := p.entries[nameHash]; !ok && len(p.entries) >= p.capacity {
		return core.ErrTableFull
	}
	p.entries[nameHash] = PitEntry{
		NameHash:  nameHash,
		FaceID:    faceID,
		Timestamp: timestamp,
	}
	return nil
}

// TakeIfPresent removes and returns the entry for nameHash, if any.
func (p *Pit) TakeIfPresent(nameHash uint32) (PitEntry, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	entry, ok := p.entries[nameHash]
	if ok {
		delete(p.entries, nameHash)
	}
	return entry, ok
}

// Find returns the entry for nameHash without removing it.
func (p *Pit) Find(nameHash uint32) (PitEntry, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	entry, ok := p.entries[nameHash]
	return entry, ok
}

// Size returns the number of entries in the PIT.
func (p *Pit) Size() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.entries)
}

// Capacity returns the maximum number of entries in the PIT.
func (p *Pit) Capacity() int {
	return p.capacity
}
