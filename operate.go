// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sortedset

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/gaissmai/sortedset/internal/keybits"
)

// Operate inserts, replaces or deletes the entry at atKey in a single step.
//
// The callback cb gets the entry at atKey, if any, and the in-order
// successor of atKey, the entry that follows atKey after this call
// regardless of the decision of cb. See [OperateFunc] for the result.
//
// The key of an entry returned from cb must be equal to atKey, Operate
// panics with an error wrapping [ErrKeyMismatch] otherwise.
//
// cb and the KeyFunc must not mutate the set, Operate panics with
// [ErrReentrant] in that case. If cb or the KeyFunc panics, the set is
// left exactly as it was before the call.
func (s *Set[E]) Operate(atKey []byte, cb OperateFunc[E]) {
	s.enter()
	defer s.leave()

	s.operate(atKey, cb)

	if debug {
		if err := s.validate(); err != nil {
			panic(err)
		}
	}
}

// decide runs the callbacks for atKey. Nothing in the trie is mutated
// before decide returns, a panic in cb or keyFor leaves the set untouched.
//
// It returns the new leaf for atKey or del.
func (s *Set[E]) decide(atKey []byte, existing, next *leaf[E], cb OperateFunc[E]) (_ *leaf[E], del bool) {
	var old, succ E
	if existing != nil {
		old = existing.entry
	}
	if next != nil {
		succ = next.entry
	}

	e, del := cb(old, existing != nil, succ, next != nil)
	if del {
		return nil, true
	}

	key := s.keyFor(e)
	if !bytes.Equal(key, atKey) {
		panic(errors.Wrapf(ErrKeyMismatch, "operated at %q, entry has key %q", atKey, key))
	}

	return &leaf[E]{key: key, entry: e}, false
}

// operate descends along the digits of atKey, starting at the root slot.
//
// right is the nearest subtree to the right of the descent path, its
// first leaf is the successor of atKey unless a greater key is found
// below the path. It is resolved only at the end of the descent.
func (s *Set[E]) operate(atKey []byte, cb OperateFunc[E]) {
	slot := &s.root
	depth := 0

	var right any

	for {
		switch n := (*slot).(type) {
		case nil:
			// empty set
			l, del := s.decide(atKey, nil, nil, cb)
			if !del {
				*slot = l
				s.size++
			}
			return

		case *leaf[E]:
			// single entry at the root, leaves below the root are
			// handled by their parent branch or collision
			s.operateRootLeaf(slot, n, atKey, cb)
			return

		case *branch[E]:
			digit := uint(keybits.Digit(atKey, depth))
			present := n.Test(digit)
			i := n.Rank0(digit)

			// subtree right of the digit
			next := right
			j := i
			if present {
				j++
			}
			if j < len(n.Items) {
				next = n.Items[j]
			}

			if !present {
				// nothing at digit, insert a new leaf
				l, del := s.decide(atKey, nil, firstLeaf[E](next), cb)
				if !del {
					n.InsertAt(digit, l)
					s.size++
				}
				return
			}

			if l, ok := n.Items[i].(*leaf[E]); ok {
				s.operateBranchLeaf(slot, n, digit, i, l, atKey, depth, next, cb)
				return
			}

			// go down
			right = next
			slot = &n.Items[i]
			depth++

		case *collision[E]:
			digit := keybits.Digit(atKey, depth)
			clDigit := keybits.Digit(n.first.key, depth)

			if digit != clDigit {
				// atKey doesn't collide at this depth
				s.resolveCollision(slot, n, atKey, digit, clDigit, depth, right, cb)
				return
			}

			cmp := keybits.Compare(atKey, n.first.key, depth+1)

			if second, ok := n.second.(*leaf[E]); ok {
				s.operateTwoLeafCollision(slot, n, second, cmp, atKey, depth, right, cb)
				return
			}

			if cmp <= 0 {
				s.operateCollisionFirst(slot, n, cmp, atKey, depth, cb)
				return
			}

			// atKey is greater than the first entry, go down
			slot = &n.second
			depth++

		default:
			panic(errors.Wrapf(ErrInvariant, "unexpected node type %T at depth %d", n, depth))
		}
	}
}

// operateRootLeaf, the set has exactly one entry.
func (s *Set[E]) operateRootLeaf(slot *any, l *leaf[E], atKey []byte, cb OperateFunc[E]) {
	cmp := bytes.Compare(atKey, l.key)

	if cmp == 0 {
		nl, del := s.decide(atKey, l, nil, cb)
		if !del {
			*slot = nl
			return
		}

		*slot = nil
		s.size--
		return
	}

	var next *leaf[E]
	if cmp < 0 {
		next = l
	}

	nl, del := s.decide(atKey, nil, next, cb)
	if del {
		return
	}

	a, b := ordered(l, nl, cmp)
	*slot = twoLeaf(a, b, 0)
	s.size++
}

// operateBranchLeaf, the branch n has a leaf l at the digit of atKey.
// right is the subtree following l.
func (s *Set[E]) operateBranchLeaf(slot *any, n *branch[E], digit uint, i int, l *leaf[E],
	atKey []byte, depth int, right any, cb OperateFunc[E],
) {
	cmp := keybits.Compare(atKey, l.key, depth+1)

	if cmp == 0 {
		nl, del := s.decide(atKey, l, firstLeaf[E](right), cb)
		if !del {
			n.Items[i] = nl
			return
		}

		s.size--

		if n.Len() > 2 {
			n.DeleteAt(digit)
			return
		}

		// two children, the branch dissolves into its slot
		sibling := n.Items[1-i]
		if sl, ok := sibling.(*leaf[E]); ok {
			*slot = sl
			return
		}

		// pull the sibling subtree up one level
		*slot = elevate[E](sibling, depth+1)
		return
	}

	next := l
	if cmp > 0 {
		next = firstLeaf[E](right)
	}

	nl, del := s.decide(atKey, nil, next, cb)
	if del {
		return
	}

	// split the leaf
	a, b := ordered(l, nl, cmp)
	n.Items[i] = twoLeaf(a, b, depth+1)
	s.size++
}

// resolveCollision, the digit of atKey differs from the digit shared by
// all entries of the collision n. On insert the collision turns into a
// regular branch with the new leaf and the lowered collision entries.
func (s *Set[E]) resolveCollision(slot *any, n *collision[E], atKey []byte,
	digit, clDigit uint8, depth int, right any, cb OperateFunc[E],
) {
	next := firstLeaf[E](right)
	if digit < clDigit {
		next = n.first
	}

	nl, del := s.decide(atKey, nil, next, cb)
	if del {
		return
	}

	lowered := lowerBranch[E](n, depth+1, nil)
	*slot = newBranch[E](digit, nl, clDigit, lowered)
	s.size++
}

// operateTwoLeafCollision, atKey collides with both leaves of n.
// cmp is the result of comparing atKey with the first leaf.
func (s *Set[E]) operateTwoLeafCollision(slot *any, n *collision[E], second *leaf[E],
	cmp int, atKey []byte, depth int, right any, cb OperateFunc[E],
) {
	first := n.first

	switch {
	case cmp < 0:
		// before first, move both leaves one level down
		nl, del := s.decide(atKey, nil, first, cb)
		if del {
			return
		}

		*slot = &collision[E]{first: nl, second: twoLeaf(first, second, depth+1)}
		s.size++

	case cmp == 0:
		nl, del := s.decide(atKey, first, second, cb)
		if !del {
			n.first = nl
			return
		}

		*slot = second
		s.size--

	default:
		cmp = keybits.Compare(atKey, second.key, depth+1)

		switch {
		case cmp < 0:
			// between first and second
			nl, del := s.decide(atKey, nil, second, cb)
			if del {
				return
			}

			n.second = twoLeaf(nl, second, depth+1)
			s.size++

		case cmp == 0:
			nl, del := s.decide(atKey, second, firstLeaf[E](right), cb)
			if !del {
				n.second = nl
				return
			}

			*slot = first
			s.size--

		default:
			// after second
			nl, del := s.decide(atKey, nil, firstLeaf[E](right), cb)
			if del {
				return
			}

			n.second = twoLeaf(second, nl, depth+1)
			s.size++
		}
	}
}

// operateCollisionFirst, atKey collides with n and sorts not after its
// first leaf, the second child of n is a subtree.
func (s *Set[E]) operateCollisionFirst(slot *any, n *collision[E], cmp int,
	atKey []byte, depth int, cb OperateFunc[E],
) {
	first := n.first

	if cmp < 0 {
		nl, del := s.decide(atKey, nil, first, cb)
		if del {
			return
		}

		// the old first leaf moves into the subtree
		prependUnique(&n.second, first, depth+1)
		n.first = nl
		s.size++
		return
	}

	nl, del := s.decide(atKey, first, firstLeaf[E](n.second), cb)
	if !del {
		n.first = nl
		return
	}

	*slot = elevate[E](n.second, depth+1)
	s.size--
}

// ordered returns l and nl in key order, cmp compares the key of nl with l.
func ordered[E any](l, nl *leaf[E], cmp int) (*leaf[E], *leaf[E]) {
	if cmp < 0 {
		return nl, l
	}
	return l, nl
}
