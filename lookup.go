// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sortedset

import (
	"bytes"

	"github.com/gaissmai/sortedset/internal/keybits"
)

// Get returns the entry stored at key.
func (s *Set[E]) Get(key []byte) (e E, ok bool) {
	if s == nil {
		return
	}
	if l := s.lookup(key); l != nil {
		return l.entry, true
	}
	return
}

// Contains reports whether an entry is stored at key.
func (s *Set[E]) Contains(key []byte) bool {
	return s != nil && s.lookup(key) != nil
}

func (s *Set[E]) lookup(key []byte) *leaf[E] {
	n := s.root

	for depth := 0; ; depth++ {
		switch x := n.(type) {
		case *leaf[E]:
			if bytes.Equal(x.key, key) {
				return x
			}
			return nil

		case *branch[E]:
			c, ok := x.Get(uint(keybits.Digit(key, depth)))
			if !ok {
				return nil
			}
			n = c

		case *collision[E]:
			if keybits.Digit(key, depth) != keybits.Digit(x.first.key, depth) {
				return nil
			}
			if bytes.Equal(x.first.key, key) {
				return x.first
			}
			n = x.second

		default:
			return nil
		}
	}
}

// Insert adds e to the set or replaces the entry with the same key.
// It reports whether an entry was replaced.
func (s *Set[E]) Insert(e E) (replaced bool) {
	s.Operate(s.keyFor(e), func(_ E, found bool, _ E, _ bool) (E, bool) {
		replaced = found
		return e, false
	})
	return replaced
}

// Delete removes the entry at key and returns it.
func (s *Set[E]) Delete(key []byte) (old E, found bool) {
	s.Operate(key, func(existing E, ok bool, _ E, _ bool) (E, bool) {
		old, found = existing, ok
		return existing, true
	})
	return old, found
}

// Next returns the entry with the smallest key greater than key.
// It is a read-only query, it can be called from inside an [OperateFunc].
func (s *Set[E]) Next(key []byte) (e E, ok bool) {
	if s == nil {
		return
	}
	if l := s.successor(key); l != nil {
		return l.entry, true
	}
	return
}

// successor descends along the digits of key like operate, right is the
// nearest subtree to the right of the descent path.
func (s *Set[E]) successor(key []byte) *leaf[E] {
	n := s.root

	var right any

	for depth := 0; ; depth++ {
		switch x := n.(type) {
		case *leaf[E]:
			if bytes.Compare(key, x.key) < 0 {
				return x
			}
			return firstLeaf[E](right)

		case *branch[E]:
			digit := uint(keybits.Digit(key, depth))
			present := x.Test(digit)
			i := x.Rank0(digit)

			j := i
			if present {
				j++
			}
			if j < len(x.Items) {
				right = x.Items[j]
			}

			if !present {
				return firstLeaf[E](right)
			}
			n = x.Items[i]

		case *collision[E]:
			digit := keybits.Digit(key, depth)
			clDigit := keybits.Digit(x.first.key, depth)

			switch {
			case digit < clDigit:
				return x.first
			case digit > clDigit:
				return firstLeaf[E](right)
			}

			if keybits.Compare(key, x.first.key, depth+1) < 0 {
				return x.first
			}
			n = x.second

		default:
			return nil
		}
	}
}

// Min returns the entry with the smallest key.
func (s *Set[E]) Min() (e E, ok bool) {
	if s == nil {
		return
	}
	if l := firstLeaf[E](s.root); l != nil {
		return l.entry, true
	}
	return
}

// Max returns the entry with the largest key.
func (s *Set[E]) Max() (e E, ok bool) {
	if s == nil {
		return
	}
	if l := lastLeaf[E](s.root); l != nil {
		return l.entry, true
	}
	return
}
