// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package sheet implements a property sheet, per-kind sections of terms
// with pending additions and deletions, each section an ordered set.
package sheet

import (
	"iter"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gaissmai/sortedset"
)

var log = logrus.WithField("component", "sheet")

// ErrNoSection is returned for a term of a kind without a section.
var ErrNoSection = errors.New("sheet: no section for kind")

// Change reports the new status of a term after a sheet operation.
type Change struct {
	Kind   string
	Value  string
	Status Status
}

// OperateFunc decides on a term. existing is nil if the term is absent,
// next is the term following it in its section, or nil.
// Return include to put the term, otherwise it is removed.
type OperateFunc func(existing, next *Term) (include bool)

// Sheet holds the sections in creation order.
//
// A Sheet is not safe for concurrent use.
type Sheet struct {
	kinds    []string
	sections map[string]*sortedset.Set[*Term]
}

// New returns a sheet with an empty section for every kind.
func New(kinds ...string) *Sheet {
	sh := &Sheet{sections: make(map[string]*sortedset.Set[*Term], len(kinds))}
	for _, kind := range kinds {
		sh.addSection(kind)
	}
	return sh
}

func (sh *Sheet) addSection(kind string) *sortedset.Set[*Term] {
	if sect, ok := sh.sections[kind]; ok {
		return sect
	}

	sect := sortedset.New(keyForTerm)
	sh.sections[kind] = sect
	sh.kinds = append(sh.kinds, kind)

	return sect
}

// Kinds returns the kinds of all sections in creation order.
func (sh *Sheet) Kinds() []string {
	return append([]string(nil), sh.kinds...)
}

// Section returns the ordered set of terms for kind.
func (sh *Sheet) Section(kind string) (*sortedset.Set[*Term], error) {
	sect, ok := sh.sections[kind]
	if !ok {
		return nil, errors.Wrapf(ErrNoSection, "kind %q", kind)
	}
	return sect, nil
}

// Len returns the number of stored terms, including pending deletions.
func (sh *Sheet) Len() int {
	n := 0
	for _, sect := range sh.sections {
		n += sect.Len()
	}
	return n
}

// Get returns the stored term of kind holding value, as its value or,
// for an edited term, as its original value.
func (sh *Sheet) Get(kind, value string) (*Term, bool) {
	sect, ok := sh.sections[kind]
	if !ok {
		return nil, false
	}

	t, ok := sect.Get(KeyFor(kind, value))
	if !ok {
		return nil, false
	}

	// single valued kinds share the key
	if t.Value != value && (t.Status != StatusEdited || t.Orig != value) {
		return nil, false
	}
	return t, true
}

// Status returns the status of value in the section of kind,
// [StatusAbsent] if not stored. The original value of an edited
// term is reported as [StatusDeleted].
func (sh *Sheet) Status(kind, value string) Status {
	t, _ := sh.Get(kind, value)
	return t.statusOf(value)
}

// Terms returns an iterator over the terms of kind in key order.
func (sh *Sheet) Terms(kind string) iter.Seq[*Term] {
	sect, ok := sh.sections[kind]
	if !ok {
		return func(func(*Term) bool) {}
	}
	return sect.All()
}

// Put includes the normalised term and returns its new status.
//
//   - an absent term is added
//   - a deleted term is restored
//   - a different value of a single valued kind replaces the stored one,
//     a committed value is kept as the original of the edited term
//   - editing back to the original value restores the committed term
func (sh *Sheet) Put(t Term) (Status, error) {
	return sh.Operate(t, func(*Term, *Term) bool { return true })
}

// Remove excludes the term and returns its new status.
//
//   - an added term is dropped, it was never committed
//   - a committed term is marked deleted
//   - an edited term is reverted to its original value and marked deleted
func (sh *Sheet) Remove(kind, value string) (Status, error) {
	return sh.Operate(Term{Kind: kind, Value: value}, func(*Term, *Term) bool { return false })
}

// Operate normalises t and decides with cb whether the term is included.
// cb sees the stored term, if any, and its successor in the section.
// The new status of the value of t is returned, see [Sheet.Status].
func (sh *Sheet) Operate(t Term, cb OperateFunc) (Status, error) {
	t = Normalise(t)
	t.Status, t.Orig = StatusCommitted, ""

	sect, err := sh.Section(t.Kind)
	if err != nil {
		return StatusAbsent, err
	}

	status := StatusAbsent

	sect.Operate(keyForTerm(&t), func(existing *Term, found bool, next *Term, hasNext bool) (*Term, bool) {
		if !found {
			existing = nil
		}
		if !hasNext {
			next = nil
		}

		include := cb(existing, next)

		var nt *Term
		if include {
			nt = assign(existing, t)
		} else {
			nt = unassign(existing, t.Value)
		}

		status = nt.statusOf(t.Value)

		if nt == nil {
			return existing, true
		}
		return nt, false
	})

	log.Debugf("operate %s: %s", t.String(), status)

	return status, nil
}

// assign returns the term after including t, existing may be nil.
// Stored terms are never modified, a changed term is a new one.
func assign(existing *Term, t Term) *Term {
	value := t.Value

	if existing == nil {
		return t.with(value, StatusAdded, "")
	}

	switch existing.Status {
	case StatusAdded:
		return existing.with(value, StatusAdded, "")

	case StatusDeleted:
		if value == existing.Value {
			return existing.with(value, StatusCommitted, "")
		}
		return existing.with(value, StatusEdited, existing.Value)

	case StatusEdited:
		if value == existing.Orig {
			// edited back
			return existing.with(value, StatusCommitted, "")
		}
		return existing.with(value, StatusEdited, existing.Orig)

	default:
		if value == existing.Value {
			return existing
		}
		return existing.with(value, StatusEdited, existing.Value)
	}
}

// unassign returns the term after excluding value, nil drops the term.
func unassign(existing *Term, value string) *Term {
	switch {
	case existing == nil:
		return nil
	case existing.Value != value:
		// another value of a single valued kind, nothing to remove
		return existing
	}

	switch existing.Status {
	case StatusAdded:
		return nil
	case StatusDeleted:
		return existing
	case StatusEdited:
		// revert the edit, then delete
		return existing.with(existing.Orig, StatusDeleted, "")
	default:
		return existing.with(value, StatusDeleted, "")
	}
}

// AcceptAll commits all pending changes: added and edited terms become
// committed, deleted terms are dropped. The changes are returned in
// section order.
func (sh *Sheet) AcceptAll() []Change {
	return sh.settle(func(t *Term) *Term {
		switch t.Status {
		case StatusDeleted:
			return nil
		default:
			return t.with(t.Value, StatusCommitted, "")
		}
	})
}

// ResetAll reverts all pending changes: added terms are dropped,
// deleted terms become committed again, edited terms get back their
// original value.
func (sh *Sheet) ResetAll() []Change {
	return sh.settle(func(t *Term) *Term {
		switch t.Status {
		case StatusAdded:
			return nil
		case StatusEdited:
			return t.with(t.Orig, StatusCommitted, "")
		default:
			return t.with(t.Value, StatusCommitted, "")
		}
	})
}

// settle replaces every pending term with the result of fn, nil drops it.
func (sh *Sheet) settle(fn func(*Term) *Term) []Change {
	var changes []Change

	for _, kind := range sh.kinds {
		sect := sh.sections[kind]

		// collect first, the set must not change during iteration
		var pending []*Term
		for t := range sect.All() {
			if t.Status != StatusCommitted {
				pending = append(pending, t)
			}
		}

		for _, t := range pending {
			nt := fn(t)

			c := Change{Kind: t.Kind, Value: t.Value, Status: StatusAbsent}
			if nt != nil {
				c.Value, c.Status = nt.Value, nt.Status
			}

			sect.Operate(keyForTerm(t), func(existing *Term, _ bool, _ *Term, _ bool) (*Term, bool) {
				if nt == nil {
					return existing, true
				}
				return nt, false
			})

			changes = append(changes, c)
		}
	}

	log.Debugf("settled %d changes", len(changes))

	return changes
}
