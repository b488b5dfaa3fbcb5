// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(sh *Sheet, kind string) []string {
	var vs []string
	for t := range sh.Terms(kind) {
		vs = append(vs, t.String())
	}
	return vs
}

func TestPutRemove(t *testing.T) {
	t.Parallel()

	sh := New(KindTag, KindRating)

	st, err := sh.Put(Term{Value: "Blush"})
	require.NoError(t, err)
	assert.Equal(t, StatusAdded, st)
	assert.Equal(t, StatusAdded, sh.Status(KindTag, "blush"))

	// put again, unchanged
	st, err = sh.Put(Term{Value: "blush"})
	require.NoError(t, err)
	assert.Equal(t, StatusAdded, st)

	// an added term is dropped
	st, err = sh.Remove(KindTag, "blush")
	require.NoError(t, err)
	assert.Equal(t, StatusAbsent, st)
	assert.Equal(t, 0, sh.Len())

	// removing an absent term is a no-op
	st, err = sh.Remove(KindTag, "blush")
	require.NoError(t, err)
	assert.Equal(t, StatusAbsent, st)

	_, err = sh.Put(Term{Value: "smile"})
	require.NoError(t, err)
	sh.AcceptAll()
	assert.Equal(t, StatusCommitted, sh.Status(KindTag, "smile"))

	// a committed term is marked deleted and restored by a put
	st, err = sh.Remove(KindTag, "smile")
	require.NoError(t, err)
	assert.Equal(t, StatusDeleted, st)
	assert.Equal(t, 1, sh.Len())

	st, err = sh.Put(Term{Value: "smile"})
	require.NoError(t, err)
	assert.Equal(t, StatusCommitted, st)
}

func TestSingleValued(t *testing.T) {
	t.Parallel()

	sh := New(KindRating)

	_, err := sh.Put(Term{Kind: KindRating, Value: "safe"})
	require.NoError(t, err)
	sh.AcceptAll()

	// removing another value keeps the stored one
	st, err := sh.Remove(KindRating, "e")
	require.NoError(t, err)
	assert.Equal(t, StatusAbsent, st)
	assert.Equal(t, StatusCommitted, sh.Status(KindRating, "s"))

	// an edit keeps the committed value as original
	st, err = sh.Put(Term{Kind: KindRating, Value: "Explicit"})
	require.NoError(t, err)
	assert.Equal(t, StatusEdited, st)

	assert.Equal(t, 1, sh.Len())
	assert.Equal(t, StatusDeleted, sh.Status(KindRating, "s"))
	assert.Equal(t, StatusEdited, sh.Status(KindRating, "e"))

	got, ok := sh.Get(KindRating, "s")
	require.True(t, ok)
	assert.Equal(t, Term{Kind: KindRating, Value: "e", Status: StatusEdited, Orig: "s"}, *got)

	// edited again, same original
	st, err = sh.Put(Term{Kind: KindRating, Value: "q"})
	require.NoError(t, err)
	assert.Equal(t, StatusEdited, st)
	assert.Equal(t, StatusAbsent, sh.Status(KindRating, "e"))
	assert.Equal(t, StatusDeleted, sh.Status(KindRating, "s"))

	// edited back to the original
	st, err = sh.Put(Term{Kind: KindRating, Value: "s"})
	require.NoError(t, err)
	assert.Equal(t, StatusCommitted, st)
	assert.Empty(t, sh.AcceptAll())
}

func TestEditReset(t *testing.T) {
	t.Parallel()

	sh := New(KindRating)
	_, err := sh.Put(Term{Kind: KindRating, Value: "s"})
	require.NoError(t, err)
	sh.AcceptAll()

	_, err = sh.Put(Term{Kind: KindRating, Value: "e"})
	require.NoError(t, err)

	changes := sh.ResetAll()
	assert.Equal(t, []Change{{Kind: KindRating, Value: "s", Status: StatusCommitted}}, changes)

	assert.Equal(t, StatusCommitted, sh.Status(KindRating, "s"))
	assert.Equal(t, StatusAbsent, sh.Status(KindRating, "e"))
	assert.Equal(t, []string{"rating:s"}, values(sh, KindRating))
}

func TestEditAccept(t *testing.T) {
	t.Parallel()

	sh := New(KindRating)
	_, err := sh.Put(Term{Kind: KindRating, Value: "s"})
	require.NoError(t, err)
	sh.AcceptAll()

	_, err = sh.Put(Term{Kind: KindRating, Value: "e"})
	require.NoError(t, err)

	changes := sh.AcceptAll()
	assert.Equal(t, []Change{{Kind: KindRating, Value: "e", Status: StatusCommitted}}, changes)

	assert.Equal(t, StatusAbsent, sh.Status(KindRating, "s"))
	assert.Equal(t, StatusCommitted, sh.Status(KindRating, "e"))

	got, ok := sh.Get(KindRating, "e")
	require.True(t, ok)
	assert.Empty(t, got.Orig)
}

func TestEditRemove(t *testing.T) {
	t.Parallel()

	sh := New(KindRating)
	_, err := sh.Put(Term{Kind: KindRating, Value: "s"})
	require.NoError(t, err)
	sh.AcceptAll()

	_, err = sh.Put(Term{Kind: KindRating, Value: "e"})
	require.NoError(t, err)

	// removing the original of an edit changes nothing
	st, err := sh.Remove(KindRating, "s")
	require.NoError(t, err)
	assert.Equal(t, StatusDeleted, st)
	assert.Equal(t, StatusEdited, sh.Status(KindRating, "e"))

	// removing the edited value reverts the edit and deletes the original
	st, err = sh.Remove(KindRating, "e")
	require.NoError(t, err)
	assert.Equal(t, StatusAbsent, st)
	assert.Equal(t, StatusDeleted, sh.Status(KindRating, "s"))

	// a put of another value on a deleted term is an edit
	st, err = sh.Put(Term{Kind: KindRating, Value: "q"})
	require.NoError(t, err)
	assert.Equal(t, StatusEdited, st)

	got, _ := sh.Get(KindRating, "q")
	assert.Equal(t, "s", got.Orig)

	sh.ResetAll()
	assert.Equal(t, []string{"rating:s"}, values(sh, KindRating))
}

func TestNoSection(t *testing.T) {
	t.Parallel()

	sh := New(KindTag)

	_, err := sh.Put(Term{Kind: KindRating, Value: "s"})
	assert.ErrorIs(t, err, ErrNoSection)

	_, err = sh.Section("artist")
	assert.ErrorIs(t, err, ErrNoSection)

	assert.Equal(t, StatusAbsent, sh.Status("artist", "x"))
	assert.Empty(t, values(sh, "artist"))
}

func TestOperateSuccessor(t *testing.T) {
	t.Parallel()

	sh := New(KindTag)
	for _, v := range []string{"a", "c", "e"} {
		_, err := sh.Put(Term{Value: v})
		require.NoError(t, err)
	}

	var gotNext string
	st, err := sh.Operate(Term{Value: "b"}, func(existing, next *Term) bool {
		assert.Nil(t, existing)
		if next != nil {
			gotNext = next.Value
		}
		return false
	})
	require.NoError(t, err)

	assert.Equal(t, StatusAbsent, st)
	assert.Equal(t, "c", gotNext)

	_, err = sh.Operate(Term{Value: "e"}, func(existing, next *Term) bool {
		assert.NotNil(t, existing)
		assert.Nil(t, next)
		return true
	})
	require.NoError(t, err)
}

func TestAcceptResetAll(t *testing.T) {
	t.Parallel()

	load := func() *Sheet {
		sh := New(KindTag, KindRating)
		for _, v := range []string{"keep", "drop"} {
			_, err := sh.Put(Term{Value: v})
			require.NoError(t, err)
		}
		sh.AcceptAll()

		_, err := sh.Remove(KindTag, "drop")
		require.NoError(t, err)
		_, err = sh.Put(Term{Value: "new"})
		require.NoError(t, err)
		_, err = sh.Put(Term{Kind: KindRating, Value: "q"})
		require.NoError(t, err)
		return sh
	}

	sh := load()
	changes := sh.AcceptAll()
	assert.Equal(t, []Change{
		{Kind: KindTag, Value: "drop", Status: StatusAbsent},
		{Kind: KindTag, Value: "new", Status: StatusCommitted},
		{Kind: KindRating, Value: "q", Status: StatusCommitted},
	}, changes)
	assert.Equal(t, []string{"keep", "new"}, values(sh, KindTag))
	assert.Empty(t, sh.AcceptAll())

	sh = load()
	changes = sh.ResetAll()
	assert.Equal(t, []Change{
		{Kind: KindTag, Value: "drop", Status: StatusCommitted},
		{Kind: KindTag, Value: "new", Status: StatusAbsent},
		{Kind: KindRating, Value: "q", Status: StatusAbsent},
	}, changes)
	assert.Equal(t, []string{"drop", "keep"}, values(sh, KindTag))
	assert.Empty(t, values(sh, KindRating))
}

const sheetYAML = `sections:
- kind: ""
  terms:
  - value: Smile
  - value: blush
    status: added
  - value: 1girl
    status: deleted
- kind: Rating
  terms:
  - value: explicit
    status: edited
    orig: safe
- kind: artist
`

func TestLoadStore(t *testing.T) {
	t.Parallel()

	sh, err := Load(strings.NewReader(sheetYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{KindTag, KindRating, "artist"}, sh.Kinds())
	assert.Equal(t, []string{"1girl (deleted)", "blush (added)", "smile"}, values(sh, KindTag))
	assert.Equal(t, StatusEdited, sh.Status(KindRating, "e"))
	assert.Equal(t, StatusDeleted, sh.Status(KindRating, "s"))

	var buf bytes.Buffer
	require.NoError(t, sh.Store(&buf))

	want := `sections:
- kind: ""
  terms:
  - value: 1girl
    status: deleted
  - value: blush
    status: added
  - value: smile
- kind: rating
  terms:
  - value: e
    status: edited
    orig: s
- kind: artist
`
	assert.Equal(t, want, buf.String())

	// stored form loads to the same sheet
	again, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, values(sh, KindTag), values(again, KindTag))
	assert.Equal(t, sh.Kinds(), again.Kinds())

	// the original survives the round trip
	again.ResetAll()
	assert.Equal(t, []string{"rating:s"}, values(again, KindRating))
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("sections:\n- kind: \"\"\n  terms:\n  - value: x\n    status: bogus\n"))
	assert.ErrorContains(t, err, "invalid status")

	// edits exist only for single valued kinds
	_, err = Load(strings.NewReader("sections:\n- kind: \"\"\n  terms:\n  - value: x\n    status: edited\n    orig: y\n"))
	assert.ErrorContains(t, err, "invalid orig")

	_, err = Load(strings.NewReader("sections:\n- kind: rating\n  terms:\n  - value: s\n    orig: e\n"))
	assert.ErrorContains(t, err, "without edit")

	_, err = Load(strings.NewReader("sections: [\n"))
	assert.ErrorContains(t, err, "parsing sheet")
}
