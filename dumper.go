// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sortedset

import (
	"fmt"
	"io"
	"strings"

	"github.com/gaissmai/sortedset/internal/keybits"
	"github.com/gaissmai/sortedset/internal/value"
)

// Stats reports the shape of the trie.
type Stats struct {
	Entries    int
	Branches   int
	Collisions int

	// MaxDepth is the deepest slot holding a leaf
	MaxDepth int
}

// Stats walks the trie and counts the nodes.
func (s *Set[E]) Stats() Stats {
	var st Stats
	if s == nil {
		return st
	}
	statsRec[E](s.root, 0, &st)
	return st
}

func statsRec[E any](n any, depth int, st *Stats) {
	switch n := n.(type) {
	case nil:
	case *leaf[E]:
		st.Entries++
		st.MaxDepth = max(st.MaxDepth, depth)
	case *collision[E]:
		st.Collisions++
		statsRec[E](n.first, depth+1, st)
		statsRec[E](n.second, depth+1, st)
	case *branch[E]:
		st.Branches++
		for _, kid := range n.Items {
			statsRec[E](kid, depth+1, st)
		}
	default:
		panic("logic error, wrong node type")
	}
}

// ##################################################
//  useful during development, debugging and testing
// ##################################################

// dumpString is just a wrapper for dump.
func (s *Set[E]) dumpString() string {
	w := new(strings.Builder)
	s.dump(w)

	return w.String()
}

// dump the trie structure and all the nodes to w.
func (s *Set[E]) dump(w io.Writer) {
	if s == nil {
		return
	}

	st := s.Stats()
	fmt.Fprintf(w, "### size(%d), branches(%d), collisions(%d)\n",
		s.size, st.Branches, st.Collisions)

	dumpRec[E](w, s.root, 0, value.IsZST[E]())
}

// dumpRec, rec-descent the trie.
func dumpRec[E any](w io.Writer, n any, depth int, zst bool) {
	indent := strings.Repeat(".", depth)

	switch n := n.(type) {
	case nil:
		fmt.Fprintf(w, "%s[empty]\n", indent)

	case *leaf[E]:
		dumpLeaf(w, n, depth, zst)

	case *collision[E]:
		fmt.Fprintf(w, "%s[collision] depth: %d digit: %d\n",
			indent, depth, keybits.Digit(n.first.key, depth))

		dumpLeaf(w, n.first, depth+1, zst)
		dumpRec[E](w, n.second, depth+1, zst)

	case *branch[E]:
		fmt.Fprintf(w, "%s[branch] depth: %d digits(#%d): %v\n",
			indent, depth, n.Len(), n.All())

		for _, kid := range n.Items {
			dumpRec[E](w, kid, depth+1, zst)
		}

	default:
		panic("logic error, wrong node type")
	}
}

func dumpLeaf[E any](w io.Writer, l *leaf[E], depth int, zst bool) {
	indent := strings.Repeat(".", depth)

	// zero-sized entries carry no information
	if zst {
		fmt.Fprintf(w, "%s[leaf] depth: %d key: %q\n", indent, depth, l.key)
		return
	}
	fmt.Fprintf(w, "%s[leaf] depth: %d key: %q entry: %v\n", indent, depth, l.key, l.entry)
}
