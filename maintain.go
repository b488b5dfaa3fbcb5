// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sortedset

import (
	"github.com/gaissmai/sortedset/internal/keybits"
	"github.com/gaissmai/sortedset/internal/value"
)

// Structural helpers. None of them call KeyFunc or OperateFunc,
// leaves are never mutated, only replaced.

// twoLeaf returns the node for a slot at depth holding the two leaves,
// a.key < b.key. A regular branch if their digits differ at depth,
// a collision otherwise.
func twoLeaf[E any](a, b *leaf[E], depth int) any {
	da := keybits.Digit(a.key, depth)
	db := keybits.Digit(b.key, depth)

	if da == db {
		return &collision[E]{first: a, second: b}
	}
	return newBranch[E](da, a, db, b)
}

// prependUnique adds l to the subtree in the slot at depth.
// The key of l must be smaller than every key in the subtree.
func prependUnique[E any](slot *any, l *leaf[E], depth int) {
	for {
		switch n := (*slot).(type) {
		case nil:
			*slot = l
			return

		case *leaf[E]:
			*slot = twoLeaf(l, n, depth)
			return

		case *collision[E]:
			digit := keybits.Digit(l.key, depth)
			clDigit := keybits.Digit(n.first.key, depth)

			if digit == clDigit {
				// l becomes the new first, push the old one down
				l, n.first = n.first, l
				slot = &n.second
				depth++
				continue
			}

			// digit < clDigit, split the collision into a regular branch
			prependUnique(&n.second, n.first, depth+1)
			*slot = newBranch[E](digit, l, clDigit, n.second)
			return

		case *branch[E]:
			digit := uint(keybits.Digit(l.key, depth))
			lowest, _ := n.FirstSet()

			if digit < lowest {
				n.InsertAt(digit, l)
				return
			}

			// same digit as the leftmost child
			if m, ok := n.Items[0].(*leaf[E]); ok {
				n.Items[0] = twoLeaf(l, m, depth+1)
				return
			}

			slot = &n.Items[0]
			depth++

		default:
			panic("logic error, wrong node type")
		}
	}
}

// extractFirst removes and returns the leftmost leaf of the subtree in
// the slot at depth. The subtree is a branch or collision, it may
// collapse to a leaf or a collision in its slot.
func extractFirst[E any](slot *any, depth int) *leaf[E] {
	for {
		switch n := (*slot).(type) {
		case *collision[E]:
			first := n.first

			if l, ok := n.second.(*leaf[E]); ok {
				*slot = l
				return first
			}

			n.first = extractFirst[E](&n.second, depth+1)
			return first

		case *branch[E]:
			l, ok := n.Items[0].(*leaf[E])
			if !ok {
				slot = &n.Items[0]
				depth++
				continue
			}

			if n.Len() > 2 {
				lowest, _ := n.FirstSet()
				n.DeleteAt(lowest)
				return l
			}

			sibling := n.Items[1]
			if sl, ok := sibling.(*leaf[E]); ok {
				*slot = sl
				return l
			}

			*slot = elevate[E](sibling, depth+1)
			return l

		default:
			panic("logic error, wrong node type")
		}
	}
}

// elevate pulls the subtree sub one level up. sub was a branch or
// collision in a slot at depth, the returned collision replaces its
// parent in the slot at depth-1.
//
// All keys below sub share the digit at depth-1, the collision
// keeps this invariant with the smallest entry extracted as first.
func elevate[E any](sub any, depth int) *collision[E] {
	c := &collision[E]{second: sub}
	c.first = extractFirst[E](&c.second, depth)
	return c
}

// lowerBranch rebuilds all entries below n as a fresh subtree for a slot
// at depth. The entries are prepended in reverse order, the result has
// no dangling collisions.
//
// The leaves are shared unless cloneFn is not nil, then the entries are
// cloned into new leaves.
func lowerBranch[E any](n any, depth int, cloneFn value.CloneFunc[E]) any {
	var fresh any

	it := newIterator[E](n, true)
	for l := it.nextLeaf(); l != nil; l = it.nextLeaf() {
		if cloneFn != nil {
			l = &leaf[E]{key: l.key, entry: cloneFn(l.entry)}
		}
		prependUnique(&fresh, l, depth)
	}

	return fresh
}
