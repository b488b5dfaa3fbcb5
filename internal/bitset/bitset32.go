// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bitset implements the fixed size bitset used as the
// occupancy bitmap of a trie branch, a mapping between the
// digits [0..31] and boolean values.
//
// Studied [github.com/bits-and-blooms/bitset] inside out
// and rewrote needed parts from scratch for this project.
package bitset

import (
	"fmt"
	"math/bits"
)

// BitSet32 represents a fixed size bitset from [0..31]
type BitSet32 uint32

func (b BitSet32) String() string {
	return fmt.Sprint(b.All())
}

// MustSet sets the bit, bits > 31 are silently dropped by the shift.
func (b *BitSet32) MustSet(bit uint) {
	*b |= 1 << (bit & 31)
}

// MustClear clears the bit.
func (b *BitSet32) MustClear(bit uint) {
	*b &^= 1 << (bit & 31)
}

// Test if the bit is set.
func (b BitSet32) Test(bit uint) bool {
	return bit < 32 && b&(1<<bit) != 0
}

// IsEmpty returns true if no bit is set.
func (b BitSet32) IsEmpty() bool {
	return b == 0
}

// Size is the number of set bits (popcount).
func (b BitSet32) Size() int {
	return bits.OnesCount32(uint32(b))
}

// Rank0 returns the number of set bits strictly below idx.
// For a set bit this is the slice index of its item in a
// popcount compressed array.
func (b BitSet32) Rank0(idx uint) int {
	if idx >= 32 {
		return b.Size()
	}
	return bits.OnesCount32(uint32(b) & (1<<idx - 1))
}

// FirstSet returns the lowest set bit along with an ok code.
func (b BitSet32) FirstSet() (uint, bool) {
	if b == 0 {
		return 0, false
	}
	return uint(bits.TrailingZeros32(uint32(b))), true
}

// LastSet returns the highest set bit along with an ok code.
func (b BitSet32) LastSet() (uint, bool) {
	if b == 0 {
		return 0, false
	}
	return uint(bits.Len32(uint32(b))) - 1, true
}

// NextSet returns the next set bit strictly above bit.
func (b BitSet32) NextSet(bit uint) (uint, bool) {
	if bit >= 31 {
		return 0, false
	}
	// all bits above bit, wraparound safe in uint32
	rest := uint32(b) & -(uint32(2) << bit)
	if rest == 0 {
		return 0, false
	}
	return uint(bits.TrailingZeros32(rest)), true
}

// PrevSet returns the next set bit strictly below bit.
func (b BitSet32) PrevSet(bit uint) (uint, bool) {
	if bit > 31 {
		return b.LastSet()
	}
	rest := uint32(b) & (1<<bit - 1)
	if rest == 0 {
		return 0, false
	}
	return uint(bits.Len32(rest)) - 1, true
}

// AsSlice returns all set bits as slice of uint without
// heap allocations.
//
// It panics if the capacity of buf is < b.Size()
func (b BitSet32) AsSlice(buf []uint) []uint {
	buf = buf[:cap(buf)]

	size := 0
	for word := uint32(b); word != 0; size++ {
		buf[size] = uint(bits.TrailingZeros32(word))

		// clear the rightmost set bit
		word &= word - 1
	}

	return buf[:size]
}

// All returns all set bits. This has a simpler API but is slower than AsSlice.
func (b BitSet32) All() []uint {
	return b.AsSlice(make([]uint, 0, 32))
}
