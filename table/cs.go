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
)

// CsEntry is the metadata of a previously seen Data packet. The Content Store keeps no content bytes.
type CsEntry struct {
	NameHash  uint32
	DataSize  uint16
	Timestamp uint64
}

// ContentStore is a bounded, recency-ordered cache of Data metadata keyed by name fingerprint.
type ContentStore struct {
	mutex       sync.Mutex
	entries     map[uint32]*CsEntry
	capacity    int
	replacement CsReplacementPolicy
	evictions   uint64
	onEvict     func(nameHash uint32)
}

// NewContentStore creates a Content Store holding at most capacity entries, evicted in LRU order.
func NewContentStore(capacity int) *ContentStore {
	cs := &ContentStore{
		entries:  make(map[uint32]*CsEntry, capacity+1),
		capacity: capacity,
	}
	cs.replacement = NewCsLRU(cs)
	return cs
}

func (cs *ContentStore) String() string {
	return "CS(capacity=" + strconv.Itoa(cs.capacity) + ")"
}

// TouchLookup returns the metadata for nameHash, if present, and marks it as most recently used.
func (cs *ContentStore) TouchLookup(nameHash uint32) (CsEntry, bool) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	entry, ok := cs.entries[nameHash]
	if !ok {
		return CsEntry{}, false
	}
	cs.replacement.BeforeUse(nameHash)
	return *entry, true
}

// Upsert inserts or refreshes the metadata for nameHash. When the store is over capacity,
// the least recently used entry is evicted.
func (cs *ContentStore) Upsert(nameHash uint32, dataSize uint16, timestamp uint64) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	if entry, ok := cs.entries[nameHash]; ok {
		entry.DataSize = dataSize
		entry.Timestamp = timestamp
		cs.replacement.AfterRefresh(nameHash)
		return
	}

	cs.entries[nameHash] = &CsEntry{
		NameHash:  nameHash,
		DataSize:  dataSize,
		Timestamp: timestamp,
	}
	cs.replacement.AfterInsert(nameHash)
	cs.replacement.EvictEntries()
}

// Contains reports whether nameHash has metadata, without touching its recency.
func (cs *ContentStore) Contains(nameHash uint32) bool {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	_, ok := cs.entries[nameHash]
	return ok
}

// Size returns the number of entries in the Content Store.
func (cs *ContentStore) Size() int {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	return len(cs.entries)
}

// OnEvict registers fn to be called with the lock held for every entry the replacement policy evicts.
func (cs *ContentStore) OnEvict(fn func(nameHash uint32)) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	cs.onEvict = fn
}

// Capacity returns the maximum number of entries in the Content Store.
func (cs *ContentStore) Capacity() int {
	return cs.capacity
}

// Evictions returns how many entries the replacement policy has evicted.
func (cs *ContentStore) Evictions() uint64 {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	return cs.evictions
}

// eraseFromReplacementStrategy is called by the replacement policy with the lock held.
func (cs *ContentStore) eraseFromReplacementStrategy(nameHash uint32) {
	if _, ok := cs.entries[nameHash]; ok {
		delete(cs.entries, nameHash)
		cs.evictions++
		if cs.onEvict != nil {
			cs.onEvict(nameHash)
		}
	}
}
