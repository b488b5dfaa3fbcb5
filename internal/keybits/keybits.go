// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package keybits maps byte keys to the 5-bit digits of the trie.
//
// A key is read MSB first as an infinite stream of bits, all bits
// beyond the end of the key are zero. Depth d addresses the digit
// made of the bits [5d, 5d+5), giving a branching factor of 32.
//
//	key:    01100001 01100010           "ab"
//	digits: 01100 00101 10001 0|0000 00000 ...
//	depth:    0     1     2     3     4
package keybits

import "bytes"

// DigitBits is the stride of the trie in bits.
const DigitBits = 5

// Digit returns the 5-bit digit of key at depth, in the range [0..31].
func Digit(key []byte, depth int) uint8 {
	bitIdx := depth * DigitBits
	byteIdx := bitIdx >> 3
	offset := bitIdx & 7

	// two bytes window, out of bounds bytes are zero
	var w uint16
	if byteIdx < len(key) {
		w = uint16(key[byteIdx]) << 8
	}
	if offset > 3 && byteIdx+1 < len(key) {
		w |= uint16(key[byteIdx+1])
	}

	return uint8(w>>(11-offset)) & 0x1f
}

// Bit returns the digit of key at depth as one-hot bitmask.
func Bit(key []byte, depth int) uint32 {
	return 1 << Digit(key, depth)
}

// Compare returns an integer comparing two keys lexicographically,
// a key that is a strict prefix of the other sorts first.
//
// The caller guarantees that both keys agree on all digits below depth,
// the comparison starts at the byte holding the first bit of that digit.
func Compare(a, b []byte, depth int) int {
	off := depth * DigitBits >> 3
	if off > len(a) || off > len(b) {
		off = min(len(a), len(b))
	}
	return bytes.Compare(a[off:], b[off:])
}

// MaxDepth returns the number of digits needed to address every bit
// of a key with keyLen bytes, ceil(8*keyLen/5).
func MaxDepth(keyLen int) int {
	return (keyLen*8 + DigitBits - 1) / DigitBits
}
