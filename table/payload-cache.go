/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"errors"
	"sync"

	"github.com/named-data/udcn/core"
	"github.com/zjkmxy/stealthpool"
)

// ErrPayloadTooLarge is returned when a payload does not fit in one cache block.
var ErrPayloadTooLarge = errors.New("payload larger than cache block")

type payloadSlot struct {
	block  []byte
	length int
}

// PayloadCache holds raw content bytes keyed by name fingerprint, in fixed-size blocks
// drawn from an off-heap pool. The Data path never calls Put, so Get after a Data
// arrival reports absent unless the payload was stored by other means.
type PayloadCache struct {
	mutex     sync.RWMutex
	slots     map[uint32]*payloadSlot
	pool      *stealthpool.Pool
	capacity  int
	blockSize int
}

// NewPayloadCache allocates a payload cache of capacity blocks, each blockSize bytes.
func NewPayloadCache(capacity int, blockSize int) (*PayloadCache, error) {
	pool, err := stealthpool.New(capacity, stealthpool.WithBlockSize(blockSize))
	if err != nil {
		return nil, err
	}
	return &PayloadCache{
		slots:     make(map[uint32]*payloadSlot, capacity),
		pool:      pool,
		capacity:  capacity,
		blockSize: blockSize,
	}, nil
}

// Get returns a copy of the payload stored for nameHash.
func (c *PayloadCache) Get(nameHash uint32) ([]byte, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	slot, ok := c.slots[nameHash]
	if !ok {
		return nil, false
	}
	payload := make([]byte, slot.length)
	copy(payload, slot.block[:slot.length])
	return payload, true
}

// Put stores payload for nameHash, replacing any previous payload in place.
func (c *PayloadCache) Put(nameHash uint32, payload []byte) error {
	if len(payload) > c.blockSize {
		return ErrPayloadTooLarge
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	slot, ok := c.slots[nameHash]
	if !ok {
		if len(c.slots) >= c.capacity {
			return core.ErrTableFull
		}
		block, err := c.pool.Get()
		if err != nil {
			return core.ErrTableFull
		}
		slot = &payloadSlot{block: block}
		c.slots[nameHash] = slot
	}
	slot.length = copy(slot.block, payload)
	return nil
}

// Erase removes the payload for nameHash and returns its block to the pool.
func (c *PayloadCache) Erase(nameHash uint32) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	slot, ok := c.slots[nameHash]
	if !ok {
		return
	}
	delete(c.slots, nameHash)
	if err := c.pool.Return(slot.block); err != nil {
		core.LogWarn("PayloadCache", "Unable to return block to pool: ", err)
	}
}

// Size returns the number of payloads in the cache.
func (c *PayloadCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.slots)
}

// BlockSize returns the largest payload the cache accepts.
func (c *PayloadCache) BlockSize() int {
	return c.blockSize
}

// Close releases the pool memory. The cache must not be used afterwards.
func (c *PayloadCache) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.slots = make(map[uint32]*payloadSlot)
	return c.pool.Close()
}
