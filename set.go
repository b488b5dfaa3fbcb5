// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sortedset

import (
	"github.com/gaissmai/sortedset/internal/sparse"
)

// KeyFunc derives the key of an entry.
//
// For the lifetime of an entry in the set, KeyFunc must return
// byte-identical keys for it. The returned slice is retained by the set
// and must not be modified afterwards.
type KeyFunc[E any] func(E) []byte

// OperateFunc is the callback of [Set.Operate].
//
// existing and found report the entry stored at the operated key,
// next and hasNext the in-order successor of the operated key, the entry
// with the smallest key greater than the operated key.
//
// Return del == true to delete the existing entry (a no-op if not found),
// otherwise the returned entry is inserted or replaces the existing one.
type OperateFunc[E any] func(existing E, found bool, next E, hasNext bool) (_ E, del bool)

// Set is an ordered set of entries of type E, sorted in ascending
// byte-lexicographic order of their keys.
//
// The zero value is not usable, use [New].
//
// A Set is not safe for concurrent use, external synchronization
// is required for concurrent access.
type Set[E any] struct {
	keyFor KeyFunc[E]

	// root slot at depth 0, nil, *leaf[E], *branch[E] or *collision[E]
	root any

	size int

	// guard against mutations from inside callbacks
	busy bool
}

// leaf is a single entry, the key is cached from keyFor at insert.
type leaf[E any] struct {
	key   []byte
	entry E
}

// branch is a regular trie level. The children are indexed by the digit
// of the key at the branch depth and live one level deeper.
//
// Children are *leaf[E], *branch[E] or *collision[E].
// A branch has always two or more children.
type branch[E any] struct {
	sparse.Array32[any]
}

// collision holds entries that can't be distinguished by the digit
// at its depth. All keys below a collision share this digit.
//
// first is the smallest entry, second is a *leaf[E], *branch[E] or
// *collision[E] one level deeper with all the remaining entries.
type collision[E any] struct {
	first  *leaf[E]
	second any
}

// New returns an empty set, keyFor derives the key of an entry.
func New[E any](keyFor KeyFunc[E]) *Set[E] {
	if keyFor == nil {
		panic("sortedset: nil KeyFunc")
	}
	return &Set[E]{keyFor: keyFor}
}

// Len returns the number of entries in the set.
func (s *Set[E]) Len() int {
	if s == nil {
		return 0
	}
	return s.size
}

// enter marks the set as busy, it panics on reentrance.
func (s *Set[E]) enter() {
	if s.busy {
		panic(ErrReentrant)
	}
	s.busy = true
}

// leave is deferred after enter.
func (s *Set[E]) leave() {
	s.busy = false
}

// newBranch returns a regular branch with two children at different digits.
func newBranch[E any](d0 uint8, c0 any, d1 uint8, c1 any) *branch[E] {
	b := &branch[E]{}
	b.Items = make([]any, 0, 2)
	b.InsertAt(uint(d0), c0)
	b.InsertAt(uint(d1), c1)
	return b
}

// firstLeaf returns the leftmost leaf below n.
func firstLeaf[E any](n any) *leaf[E] {
	for {
		switch x := n.(type) {
		case *leaf[E]:
			return x
		case *branch[E]:
			n = x.Items[0]
		case *collision[E]:
			return x.first
		default:
			return nil
		}
	}
}

// lastLeaf returns the rightmost leaf below n.
func lastLeaf[E any](n any) *leaf[E] {
	for {
		switch x := n.(type) {
		case *leaf[E]:
			return x
		case *branch[E]:
			n = x.Items[len(x.Items)-1]
		case *collision[E]:
			n = x.second
		default:
			return nil
		}
	}
}
