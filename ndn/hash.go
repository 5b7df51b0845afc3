/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

// 32-bit FNV-1a parameters.
const (
	fnvOffsetBasis32 uint32 = 0x811c9dc5
	fnvPrime32       uint32 = 0x01000193
)

// HashName returns the fingerprint of a slash-delimited name. Distinct names may collide.
func HashName(name string) uint32 {
	hash := fnvOffsetBasis32
	for i := 0; i < len(name); i++ {
		hash ^= uint32(name[i])
		hash *= fnvPrime32
	}
	return hash
}

