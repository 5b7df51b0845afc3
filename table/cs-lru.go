/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"container/list"
)

// CsLRU is a least recently used (LRU) replacement policy for the Content Store.
type CsLRU struct {
	cs        *ContentStore
	queue     *list.List
	locations map[uint32]*list.Element
}

// NewCsLRU creates a new LRU replacement policy for the Content Store.
func NewCsLRU(cs *ContentStore) *CsLRU {
	l := new(CsLRU)
	l.cs = cs
	l.queue = list.New()
	l.locations = make(map[uint32]*list.Element, cs.capacity+1)
	return l
}

// AfterInsert is called after a new entry is inserted into the Content Store.
func (l *CsLRU) AfterInsert(nameHash uint32) {
	l.locations[nameHash] = l.queue.PushBack(nameHash)
}

// AfterRefresh is called after a new Data packet refreshes an existing entry in the Content Store.
func (l *CsLRU) AfterRefresh(nameHash uint32) {
	l.moveToBack(nameHash)
}

// BeforeUse is called before an entry in the Content Store is returned by a lookup.
func (l *CsLRU) BeforeUse(nameHash uint32) {
	l.moveToBack(nameHash)
}

func (l *CsLRU) moveToBack(nameHash uint32) {
	if location, ok := l.locations[nameHash]; ok {
		l.queue.MoveToBack(location)
		return
	}
	l.locations[nameHash] = l.queue.PushBack(nameHash)
}

// EvictEntries is called to instruct the policy to evict enough entries to reduce the Content Store size to its size limit.
func (l *CsLRU) EvictEntries() {
	for l.queue.Len() > l.cs.capacity {
		front := l.queue.Front()
		nameHash := front.Value.(uint32)
		l.cs.eraseFromReplacementStrategy(nameHash)
		l.queue.Remove(front)
		delete(l.locations, nameHash)
	}
}
