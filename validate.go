// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sortedset

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/gaissmai/sortedset/internal/keybits"
)

// validator collects the state of an in-order walk.
type validator[E any] struct {
	// digits of the current path, indexed by depth
	path []uint8

	prev  []byte
	count int
}

// validate checks the structural invariants of the whole trie:
//
//   - every branch has two or more children, bitset and items are in sync
//   - every key below a slot agrees with the digits on the path to the slot
//   - all keys below a collision share its digit, first sorts before second
//   - the keys are strictly ascending in iteration order
//   - the cached size matches the number of leaves
func (s *Set[E]) validate() error {
	v := &validator[E]{}

	if err := v.walk(s.root, 0); err != nil {
		return err
	}

	if v.count != s.size {
		return errors.Wrapf(ErrInvariant, "size is %d, counted %d leaves", s.size, v.count)
	}

	return nil
}

func (v *validator[E]) walk(n any, depth int) error {
	v.path = v.path[:depth]

	switch n := n.(type) {
	case nil:
		if depth != 0 {
			return errors.Wrapf(ErrInvariant, "nil slot at depth %d", depth)
		}
		return nil

	case *leaf[E]:
		return v.visit(n, depth)

	case *collision[E]:
		if n.first == nil || n.second == nil {
			return errors.Wrapf(ErrInvariant, "incomplete collision at depth %d", depth)
		}

		digit := keybits.Digit(n.first.key, depth)

		v.path = append(v.path, digit)
		if err := v.visit(n.first, depth+1); err != nil {
			return err
		}

		v.path = append(v.path[:depth], digit)
		return v.walk(n.second, depth+1)

	case *branch[E]:
		if n.Len() < 2 {
			return errors.Wrapf(ErrInvariant, "branch at depth %d has %d children", depth, n.Len())
		}
		if n.Size() != n.Len() {
			return errors.Wrapf(ErrInvariant, "branch at depth %d, bitset and items out of sync", depth)
		}

		for i, digit := range n.All() {
			if n.Items[i] == nil {
				return errors.Wrapf(ErrInvariant, "nil child at depth %d, digit %d", depth, digit)
			}

			v.path = append(v.path[:depth], uint8(digit))
			if err := v.walk(n.Items[i], depth+1); err != nil {
				return err
			}
		}
		return nil

	default:
		return errors.Wrapf(ErrInvariant, "unexpected node type %T at depth %d", n, depth)
	}
}

// visit checks a leaf in a slot at depth against the path and its predecessor.
func (v *validator[E]) visit(l *leaf[E], depth int) error {
	for d := range depth {
		if got := keybits.Digit(l.key, d); got != v.path[d] {
			return errors.Wrapf(ErrInvariant, "key %q has digit %d at depth %d, path has %d",
				l.key, got, d, v.path[d])
		}
	}

	if v.count > 0 && bytes.Compare(v.prev, l.key) >= 0 {
		return errors.Wrapf(ErrInvariant, "key %q is not greater than its predecessor %q", l.key, v.prev)
	}

	v.prev = l.key
	v.count++

	return nil
}
