// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sortedset

import "github.com/gaissmai/sortedset/internal/value"

// Cloner is an interface that enables deep cloning of entries of type E.
// If an entry implements Cloner[E], [Set.Clone] uses its Clone method
// to perform deep copies.
type Cloner[E any] interface {
	Clone() E
}

// Clone returns a copy of the set.
//
// The entries are copied using assignment, unless E implements
// [Cloner], then Clone performs a deep copy of every entry.
//
// Branches and collisions are never shared between s and its clone.
// Without a [Cloner] the leaves are shared, a leaf is never modified
// in place, an update replaces it.
func (s *Set[E]) Clone() *Set[E] {
	if s == nil {
		return nil
	}

	c := &Set[E]{
		keyFor: s.keyFor,
		size:   s.size,
	}

	cloneFn := value.CloneFnFactory[E]()

	switch n := s.root.(type) {
	case nil:
	case *leaf[E]:
		if cloneFn != nil {
			c.root = &leaf[E]{key: n.key, entry: cloneFn(n.entry)}
		} else {
			c.root = n
		}
	default:
		// rebuilt bottom up, the node layout is the same
		c.root = lowerBranch(s.root, 0, cloneFn)
	}

	return c
}
