// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package keybits

import (
	"bytes"
	"math/rand/v2"
	"testing"
)

// digitGolden reads the digit bit by bit
func digitGolden(key []byte, depth int) uint8 {
	var d uint8
	for i := range DigitBits {
		bit := depth*DigitBits + i
		d <<= 1
		if byteIdx := bit / 8; byteIdx < len(key) && key[byteIdx]&(0x80>>(bit%8)) != 0 {
			d |= 1
		}
	}
	return d
}

func TestDigit(t *testing.T) {
	t.Parallel()

	key := []byte("ab") // 01100001 01100010

	want := []uint8{0b01100, 0b00101, 0b10001, 0b00000, 0b00000}
	for depth, w := range want {
		if got := Digit(key, depth); got != w {
			t.Errorf("Digit(%q, %d), want %05b, got %05b", key, depth, w, got)
		}
	}

	if got := Digit(nil, 0); got != 0 {
		t.Errorf("Digit(nil, 0), want 0, got %d", got)
	}

	if got := Digit([]byte{0xff}, 1); got != 0b11100 {
		t.Errorf("Digit(0xff, 1), want 11100, got %05b", got)
	}

	if got := Bit(key, 0); got != 1<<12 {
		t.Errorf("Bit(%q, 0), want 1<<12, got %#x", key, got)
	}
}

func TestDigitRandom(t *testing.T) {
	t.Parallel()

	prng := rand.New(rand.NewPCG(42, 42))

	for range 1_000 {
		key := make([]byte, prng.IntN(8))
		for i := range key {
			key[i] = byte(prng.Uint32())
		}

		for depth := range MaxDepth(len(key)) + 2 {
			if got, want := Digit(key, depth), digitGolden(key, depth); got != want {
				t.Fatalf("Digit(%x, %d), want %05b, got %05b", key, depth, want, got)
			}
		}
	}
}

// TestDigitOrder, keys compare like their digit sequences up to a common prefix
func TestDigitOrder(t *testing.T) {
	t.Parallel()

	prng := rand.New(rand.NewPCG(4711, 42))

	for range 1_000 {
		a := []byte{byte(prng.IntN(4)), byte(prng.IntN(4))}[:prng.IntN(3)]
		b := []byte{byte(prng.IntN(4)), byte(prng.IntN(4))}[:prng.IntN(3)]

		cmp := bytes.Compare(a, b)

		for depth := range MaxDepth(2) {
			da, db := Digit(a, depth), Digit(b, depth)
			if da == db {
				continue
			}
			if (da < db) != (cmp < 0) {
				t.Fatalf("keys %x, %x: digit order at depth %d disagrees with byte order", a, b, depth)
			}
			break
		}
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b  string
		depth int
		want  int
	}{
		{"", "", 0, 0},
		{"a", "ab", 0, -1},
		{"ab", "a", 1, 1},
		{"abc", "abd", 3, -1},
		{"abc", "abc", 4, 0},
		{"a", "a\x00", 2, -1},
		{"shiny", "shiny_hair", 5, -1},
		{"xy", "xyz", 3, -1},
	}

	for _, tt := range tests {
		if got := Compare([]byte(tt.a), []byte(tt.b), tt.depth); got != tt.want {
			t.Errorf("Compare(%q, %q, %d), want %d, got %d", tt.a, tt.b, tt.depth, tt.want, got)
		}
	}
}

func TestMaxDepth(t *testing.T) {
	t.Parallel()

	tests := []struct{ keyLen, want int }{
		{0, 0},
		{1, 2},
		{2, 4},
		{5, 8},
		{6, 10},
	}

	for _, tt := range tests {
		if got := MaxDepth(tt.keyLen); got != tt.want {
			t.Errorf("MaxDepth(%d), want %d, got %d", tt.keyLen, tt.want, got)
		}
	}
}
