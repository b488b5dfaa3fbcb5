// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sortedset

import (
	"bytes"

	"github.com/gaissmai/sortedset/internal/value"
)

// Equaler is a generic interface for types that can decide their own
// equality logic. It can be used to override the potentially expensive
// default comparison with [reflect.DeepEqual].
type Equaler[E any] interface {
	Equal(other E) bool
}

// Equal reports whether s and o hold the same keys with equal entries.
// Entries are compared with their Equal method if E implements
// [Equaler], otherwise with [reflect.DeepEqual].
//
// The trie layout is fully determined by the set of keys, two sets
// are compared node by node.
func (s *Set[E]) Equal(o *Set[E]) bool {
	if s == nil || o == nil {
		return s.Len() == 0 && o.Len() == 0
	}
	if s == o {
		return true
	}
	if s.size != o.size {
		return false
	}

	return equalRec[E](s.root, o.root)
}

// equalRec compares two slots recursively.
func equalRec[E any](n, o any) bool {
	switch n := n.(type) {
	case nil:
		return o == nil

	case *leaf[E]:
		// o must also be a leaf
		o, ok := o.(*leaf[E])
		if !ok {
			return false
		}
		if n == o {
			return true
		}

		return bytes.Equal(n.key, o.key) && value.Equal(n.entry, o.entry)

	case *collision[E]:
		// o must also be a collision
		o, ok := o.(*collision[E])
		if !ok {
			return false
		}

		return equalRec[E](n.first, o.first) && equalRec[E](n.second, o.second)

	case *branch[E]:
		// o must also be a branch
		o, ok := o.(*branch[E])
		if !ok {
			return false
		}
		if n.BitSet32 != o.BitSet32 {
			return false
		}

		for i, nKid := range n.Items {
			if !equalRec[E](nKid, o.Items[i]) {
				return false
			}
		}
		return true

	default:
		panic("logic error, wrong node type")
	}
}
