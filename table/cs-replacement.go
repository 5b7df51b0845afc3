/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

// CsReplacementPolicy represents a cache replacement policy for the Content Store.
// Policies are called with the Content Store lock held.
type CsReplacementPolicy interface {
	// AfterInsert is called after a new entry is inserted into the Content Store.
	AfterInsert(nameHash uint32)

	// AfterRefresh is called after a new Data packet refreshes an existing entry in the Content Store.
	AfterRefresh(nameHash uint32)

	// BeforeUse is called before an entry in the Content Store is returned by a lookup.
	BeforeUse(nameHash uint32)

	// EvictEntries is called to instruct the policy to evict enough entries to reduce the Content Store size to its size limit.
	EvictEntries()
}
