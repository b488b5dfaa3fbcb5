// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sortedset

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ############ helpers ################################

// identity, byte slices are their own keys
func bytesKey(k []byte) []byte { return k }

func newByteSet() *Set[[]byte] { return New(bytesKey) }

func keysOf(ss ...string) [][]byte {
	keys := make([][]byte, 0, len(ss))
	for _, s := range ss {
		keys = append(keys, []byte(s))
	}
	return keys
}

// refSet is the reference, a sorted slice without duplicates.
type refSet [][]byte

func (r refSet) find(k []byte) (int, bool) {
	return slices.BinarySearchFunc(r, k, bytes.Compare)
}

// next returns the smallest key greater than k.
func (r refSet) next(k []byte) ([]byte, bool) {
	i, found := r.find(k)
	if found {
		i++
	}
	if i < len(r) {
		return r[i], true
	}
	return nil, false
}

func (r *refSet) upsert(k []byte) {
	if i, found := r.find(k); !found {
		*r = slices.Insert(*r, i, k)
	}
}

func (r *refSet) delete(k []byte) {
	if i, found := r.find(k); found {
		*r = slices.Delete(*r, i, i+1)
	}
}

// checkSet verifies the invariants and the content of s against ref.
func checkSet(t *testing.T, s *Set[[]byte], ref refSet) {
	t.Helper()

	require.NoError(t, s.validate(), s.dumpString())
	require.Equal(t, len(ref), s.Len(), s.dumpString())

	i := 0
	for k := range s.All() {
		require.Less(t, i, len(ref))
		require.Truef(t, bytes.Equal(ref[i], k), "entry %d: want %q, got %q\n%s", i, ref[i], k, s.dumpString())
		i++
	}
	require.Equal(t, len(ref), i)
}

// insertKeys inserts keys one by one, the successor handed to the
// callback is checked against the reference.
func insertKeys(t *testing.T, s *Set[[]byte], ref *refSet, keys ...[]byte) {
	t.Helper()

	for _, k := range keys {
		wantNext, wantHasNext := ref.next(k)
		ref.upsert(k)

		s.Operate(k, func(_ []byte, _ bool, next []byte, hasNext bool) ([]byte, bool) {
			assertNext(t, k, wantNext, wantHasNext, next, hasNext)
			return k, false
		})
	}

	checkSet(t, s, *ref)
}

// deleteKeys deletes keys one by one, checking the successor.
func deleteKeys(t *testing.T, s *Set[[]byte], ref *refSet, keys ...[]byte) {
	t.Helper()

	for _, k := range keys {
		wantNext, wantHasNext := ref.next(k)
		ref.delete(k)

		s.Operate(k, func(existing []byte, _ bool, next []byte, hasNext bool) ([]byte, bool) {
			assertNext(t, k, wantNext, wantHasNext, next, hasNext)
			return existing, true
		})
	}

	checkSet(t, s, *ref)
}

func assertNext(t *testing.T, k, wantNext []byte, wantHasNext bool, next []byte, hasNext bool) {
	t.Helper()

	if assert.Equalf(t, wantHasNext, hasNext, "next of %q", k) && hasNext {
		assert.Truef(t, bytes.Equal(wantNext, next), "next of %q: want %q, got %q", k, wantNext, next)
	}
}

// int32Hash is a single MurmurHash3 round, the PRNG of the reference tests.
func int32Hash(val, seed int32) int32 {
	h := uint32(val) * 0xcc9e2d51
	h = h<<15 | h>>17
	h = h*0x1b873593 ^ uint32(seed)
	h = h<<13 | h>>19
	return int32(h*5 + 0xe6546b64)
}

type hashPRNG struct{ state int32 }

func (p *hashPRNG) byte() byte {
	p.state = int32Hash(p.state, 0)
	return byte(p.state & 0xff)
}
