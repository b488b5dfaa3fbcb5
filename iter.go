// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sortedset

import "iter"

// Iterator is a stateful cursor over the entries of a set, in ascending
// or descending key order.
//
// The set must not be mutated while an Iterator is in use,
// the behavior is undefined otherwise.
type Iterator[E any] struct {
	// stack of the partially visited branches and collisions
	stack []frame

	// pending single leaf at the root
	single any

	reverse bool
}

// frame is a stack entry, idx is the next child of node to visit.
// For a collision, idx 0 is the first leaf and 1 the second child.
type frame struct {
	node any
	idx  int
}

// Iter returns a new Iterator positioned before the first entry.
func (s *Set[E]) Iter() *Iterator[E] {
	return newIterator[E](s.root, false)
}

// ReverseIter returns a new Iterator positioned after the last entry,
// it yields the entries in descending key order.
func (s *Set[E]) ReverseIter() *Iterator[E] {
	return newIterator[E](s.root, true)
}

func newIterator[E any](n any, reverse bool) *Iterator[E] {
	it := &Iterator[E]{reverse: reverse}

	switch n.(type) {
	case nil:
	case *leaf[E]:
		it.single = n
	default:
		it.stack = make([]frame, 0, 8)
		it.push(n)
	}

	return it
}

// Next returns the next entry and true, or the zero value
// and false once the iterator is exhausted.
func (it *Iterator[E]) Next() (e E, ok bool) {
	if l := it.nextLeaf(); l != nil {
		return l.entry, true
	}
	return
}

// nextLeaf returns the next leaf in iteration order, nil at the end.
func (it *Iterator[E]) nextLeaf() *leaf[E] {
	if it.single != nil {
		l := it.single.(*leaf[E])
		it.single = nil
		return l
	}

	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]

		if top.idx < 0 || top.idx >= childCount[E](top.node) {
			// exhausted, pop
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		c := childAt[E](top.node, top.idx)
		if it.reverse {
			top.idx--
		} else {
			top.idx++
		}

		if l, ok := c.(*leaf[E]); ok {
			return l
		}

		it.push(c)
	}

	return nil
}

func (it *Iterator[E]) push(n any) {
	idx := 0
	if it.reverse {
		idx = childCount[E](n) - 1
	}
	it.stack = append(it.stack, frame{node: n, idx: idx})
}

func childCount[E any](n any) int {
	switch x := n.(type) {
	case *branch[E]:
		return len(x.Items)
	case *collision[E]:
		return 2
	default:
		panic("logic error, wrong node type")
	}
}

func childAt[E any](n any, idx int) any {
	switch x := n.(type) {
	case *branch[E]:
		return x.Items[idx]
	case *collision[E]:
		if idx == 0 {
			return x.first
		}
		return x.second
	default:
		panic("logic error, wrong node type")
	}
}

// All returns an iterator over all entries in ascending key order.
//
// The set must not be mutated during the iteration.
func (s *Set[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		if s == nil {
			return
		}

		it := s.Iter()
		for e, ok := it.Next(); ok; e, ok = it.Next() {
			if !yield(e) {
				return
			}
		}
	}
}

// Backward returns an iterator over all entries in descending key order.
//
// The set must not be mutated during the iteration.
func (s *Set[E]) Backward() iter.Seq[E] {
	return func(yield func(E) bool) {
		if s == nil {
			return
		}

		it := s.ReverseIter()
		for e, ok := it.Next(); ok; e, ok = it.Next() {
			if !yield(e) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys and entries in ascending key order.
// The keys are owned by the set and must not be modified.
func (s *Set[E]) Keys() iter.Seq2[[]byte, E] {
	return func(yield func([]byte, E) bool) {
		if s == nil {
			return
		}

		it := s.Iter()
		for l := it.nextLeaf(); l != nil; l = it.nextLeaf() {
			if !yield(l.key, l.entry) {
				return
			}
		}
	}
}
