// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sheet

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Status of a term in a sheet.
type Status string

const (
	// StatusCommitted is an untouched term.
	StatusCommitted Status = ""

	// StatusAdded is a term added since the last accept.
	StatusAdded Status = "added"

	// StatusDeleted is a committed term marked for deletion.
	StatusDeleted Status = "deleted"

	// StatusEdited is a committed term of a single valued kind with a new
	// value, the committed value is kept in Orig.
	StatusEdited Status = "edited"

	// StatusAbsent is never stored, it reports a term not in the sheet.
	StatusAbsent Status = "absent"
)

// IsPositive reports whether a term with status s is in effect.
func (s Status) IsPositive() bool {
	return s == StatusCommitted || s == StatusAdded || s == StatusEdited
}

// Well known kinds.
const (
	KindTag      = ""
	KindSource   = "source"
	KindParent   = "parent"
	KindRating   = "rating"
	KindEmbedded = "embedded"
)

// KindSep separates kind and value in a metatag.
const KindSep = ':'

// EmptyPlaceholder is the value of a metatag set to nothing.
const EmptyPlaceholder = "none"

// Term is a single property of a sheet.
type Term struct {
	Kind   string `yaml:"kind"`
	Value  string `yaml:"value"`
	Status Status `yaml:"status,omitempty"`

	// Orig is the committed value of an edited term, empty otherwise.
	Orig string `yaml:"orig,omitempty"`
}

func (t *Term) String() string {
	s := t.Value
	if t.Kind != KindTag {
		s = t.Kind + string(KindSep) + t.Value
	}

	switch t.Status {
	case StatusCommitted:
	case StatusEdited:
		s += " (edited from " + t.Orig + ")"
	default:
		s += " (" + string(t.Status) + ")"
	}
	return s
}

// with returns a new term of the same kind.
func (t *Term) with(value string, status Status, orig string) *Term {
	return &Term{Kind: t.Kind, Value: value, Status: status, Orig: orig}
}

// statusOf reports the status of value held by t, t may be nil.
func (t *Term) statusOf(value string) Status {
	switch {
	case t == nil:
		return StatusAbsent
	case t.Value == value:
		return t.Status
	case t.Status == StatusEdited && t.Orig == value:
		return StatusDeleted
	default:
		return StatusAbsent
	}
}

// KeyFor returns the sort key of a term.
//
// Tags sort by their value. The single valued metatags source, parent,
// rating and embedded have fixed keys, a sheet holds at most one term
// of each. All other metatags sort by "kind:value".
func KeyFor(kind, value string) []byte {
	switch kind {
	case KindTag:
		return []byte(value)
	case KindSource:
		return []byte{}
	case KindParent:
		return []byte{0}
	case KindRating:
		return []byte{1}
	case KindEmbedded:
		return []byte{2}
	default:
		return []byte(kind + string(KindSep) + value)
	}
}

func keyForTerm(t *Term) []byte {
	return KeyFor(t.Kind, t.Value)
}

// foldTag maps a rune of a tag, tags are lowercase graphical ASCII.
func foldTag(r rune) rune {
	switch {
	case r < '!' || r > '~':
		return utf8.RuneError
	case 'A' <= r && r <= 'Z':
		return r + ('a' - 'A')
	default:
		return r
	}
}

// Normalise returns t with the canonical spelling of kind and value.
//
// Kinds are lowercased. Tag values are lowercased, every rune outside
// of graphical ASCII is replaced by U+FFFD. Empty metatag values and
// the spellings of "none" become [EmptyPlaceholder], ratings are reduced
// to their lowercase initial, embedded flags to "true" or "false".
func Normalise(t Term) Term {
	// a Caser is stateful, not shared
	lower := cases.Lower(language.Und)

	t.Kind = lower.String(t.Kind)

	if t.Kind == KindTag {
		if norm, _, err := transform.String(runes.Map(foldTag), t.Value); err == nil {
			t.Value = norm
		}
		return t
	}

	if t.Value == "" || strings.EqualFold(t.Value, EmptyPlaceholder) {
		t.Value = EmptyPlaceholder
		return t
	}

	switch t.Kind {
	case KindParent:
		if t.Value == "0" {
			t.Value = EmptyPlaceholder
		}

	case KindRating:
		r, _ := utf8.DecodeRuneInString(t.Value)
		t.Value = lower.String(string(r))

	case KindEmbedded:
		switch v := lower.String(t.Value); v {
		case "t", "yes", "y", "on", "1":
			t.Value = "true"
		case "f", "no", "n", "off", "0":
			t.Value = "false"
		default:
			t.Value = v
		}
	}

	return t
}
