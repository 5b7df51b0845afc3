/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"errors"
	"strconv"

	"github.com/named-data/udcn/core"
	"github.com/named-data/udcn/ndn"
	"github.com/named-data/udcn/table"
)

// Action is the verdict of the fast path on one frame.
type Action int

// Actions.
const (
	// Pass hands the frame to the regular network stack.
	Pass Action = iota
	// Drop discards the frame by policy.
	Drop
	// Reply sends a cached payload back out of the face the frame arrived on.
	Reply
	// Abort reports an internal fault. It is never a policy decision.
	Abort
)

func (a Action) String() string {
	switch a {
	case Pass:
		return "Pass"
	case Drop:
		return "Drop"
	case Reply:
		return "Reply"
	case Abort:
		return "Abort"
	}
	return "Action(" + strconv.Itoa(int(a)) + ")"
}

// Result is the outcome of processing one frame.
type Result struct {
	Action         Action
	Classification Classification
	// Reply holds the cached payload to send back when Action is Reply.
	Reply []byte
}

// Forwarder owns the tables and counters shared by every invocation of the fast path.
type Forwarder struct {
	Pit      *table.Pit
	Cs       *table.ContentStore
	Payloads *table.PayloadCache
	Stats    *Stats

	clock func() uint64
}

// NewForwarder creates a forwarder over the given tables. Payloads of evicted Content Store
// entries are erased.
func NewForwarder(pit *table.Pit, cs *table.ContentStore, payloads *table.PayloadCache) *Forwarder {
	if cs != nil && payloads != nil {
		cs.OnEvict(payloads.Erase)
	}
	return &Forwarder{
		Pit:      pit,
		Cs:       cs,
		Payloads: payloads,
		Stats:    new(Stats),
		clock:    core.MonotonicNanos,
	}
}

// NewForwarderFromConfig creates a forwarder with tables sized from the configuration.
func NewForwarderFromConfig() (*Forwarder, error) {
	payloads, err := table.NewPayloadCache(table.PayloadCapacity(), table.PayloadBlockSize())
	if err != nil {
		return nil, err
	}
	return NewForwarder(
		table.NewPit(table.PitCapacity()),
		table.NewContentStore(table.CsCapacity()),
		payloads,
	), nil
}

func (f *Forwarder) String() string {
	return "Forwarder"
}

// Close releases the payload cache.
func (f *Forwarder) Close() error {
	if f.Payloads == nil {
		return nil
	}
	return f.Payloads.Close()
}

// Process runs the fast path over one frame received on faceID. An error is returned only
// together with Abort.
func (f *Forwarder) Process(frame Frame, faceID uint32) (Result, error) {
	if f.Pit == nil || f.Cs == nil || f.Payloads == nil || f.Stats == nil {
		return Result{Action: Abort}, core.ErrInternalFault
	}

	c := Classify(frame, f.Stats)
	switch c.Type {
	case ndn.TypeInterest:
		f.Stats.InterestsReceived.Add(1)
	case ndn.TypeData:
		f.Stats.DataReceived.Add(1)
	}

	switch c.Kind {
	case InterestPacket:
		return f.processInterest(c, faceID)
	case DataPacket:
		return f.processData(c)
	}
	return Result{Action: Pass, Classification: c}, nil
}

func (f *Forwarder) processInterest(c Classification, faceID uint32) (Result, error) {
	if _, ok := f.Cs.TouchLookup(c.NameHash); ok {
		f.Stats.CacheHits.Add(1)
		if payload, ok := f.Payloads.Get(c.NameHash); ok {
			core.LogTrace(f, "Content Store hit for 0x", strconv.FormatUint(uint64(c.NameHash), 16), " - REPLY")
			return Result{Action: Reply, Classification: c, Reply: payload}, nil
		}
	}

	err := f.Pit.Insert(c.NameHash, faceID, f.clock())
	if errors.Is(err, core.ErrTableFull) {
		f.Stats.Drops.Add(1)
		core.LogDebug(f, "PIT full, Interest for 0x", strconv.FormatUint(uint64(c.NameHash), 16), " - DROP")
		return Result{Action: Drop, Classification: c}, nil
	} else if err != nil {
		return Result{Action: Abort, Classification: c}, errors.Join(core.ErrInternalFault, err)
	}
	return Result{Action: Pass, Classification: c}, nil
}

func (f *Forwarder) processData(c Classification) (Result, error) {
	if _, ok := f.Pit.TakeIfPresent(c.NameHash); ok {
		f.Stats.PitHits.Add(1)
		f.Cs.Upsert(c.NameHash, c.ContentSize, f.clock())
		return Result{Action: Pass, Classification: c}, nil
	}

	f.Stats.Drops.Add(1)
	core.LogDebug(f, "Unsolicited Data for 0x", strconv.FormatUint(uint64(c.NameHash), 16), " - DROP")
	return Result{Action: Drop, Classification: c}, nil
}
