// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package sortedset provides an ordered set of entries keyed by byte
// strings, implemented as a 32-way bitmap trie.
//
// A key is consumed 5 bits at a time, each trie level is a branch with
// a 32-bit occupancy bitmap and a popcount compressed slice of children.
// Keys that share all bits up to a level but differ later are held in
// a collision node, the trie never needs to store internal prefixes
// and the entries iterate in ascending byte-lexicographic key order.
//
// The central mutation is [Set.Operate]: one descent finds the entry at
// a key together with its in-order successor, a callback decides to
// insert, replace or delete. Insert, Delete and Next are thin wrappers.
//
// Callbacks run before the trie is touched, a panic in a callback
// leaves the set unchanged. Mutating the set from inside a callback
// panics with [ErrReentrant].
//
// A Set is not safe for concurrent use.
package sortedset
