// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sortedset

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/gaissmai/sortedset/internal/keybits"
	"github.com/gaissmai/sortedset/internal/value"
)

// MarshalText implements the [encoding.TextMarshaler] interface,
// just a wrapper for [Set.Fprint].
func (s *Set[E]) MarshalText() ([]byte, error) {
	w := new(bytes.Buffer)
	if err := s.Fprint(w); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// String returns a hierarchical tree diagram of the trie
// as string, just a wrapper for [Set.Fprint].
// If Fprint returns an error, String panics.
func (s *Set[E]) String() string {
	w := new(strings.Builder)
	if err := s.Fprint(w); err != nil {
		panic(err)
	}

	return w.String()
}

// Fprint writes a hierarchical tree diagram of the trie with the default
// formatted entries to w. If w is nil, Fprint panics.
//
// Children are labelled with their digit, collisions with the shared
// digit. The order from top to bottom is the ascending key order.
//
//	▼
//	├── [12]  "a" (1)
//	└── …
//	    ├── [08]  "b" (2)
//	    └── [12]  "c" (3)
func (s *Set[E]) Fprint(w io.Writer) error {
	if w == nil {
		panic("nil writer")
	}
	if s == nil || s.root == nil {
		return nil
	}

	tree := treeprint.NewWithRoot("▼")
	fprintRec[E](tree, s.root, 0, value.IsZST[E]())

	_, err := io.WriteString(w, tree.String())
	return err
}

// fprintRec adds the node n in a slot at depth to tree.
func fprintRec[E any](tree treeprint.Tree, n any, depth int, zst bool) {
	switch n := n.(type) {
	case *leaf[E]:
		tree.AddNode(leafLabel(n, zst))

	case *collision[E]:
		fprintKid[E](tree, n.first, keybits.Digit(n.first.key, depth), depth, zst)

		sub := tree.AddBranch("…")
		fprintRec[E](sub, n.second, depth+1, zst)

	case *branch[E]:
		for i, digit := range n.All() {
			fprintKid[E](tree, n.Items[i], uint8(digit), depth, zst)
		}

	default:
		panic("logic error, wrong node type")
	}
}

// fprintKid adds a child of a node at depth, labelled with its digit.
func fprintKid[E any](tree treeprint.Tree, kid any, digit uint8, depth int, zst bool) {
	meta := fmt.Sprintf("%02d", digit)

	switch kid := kid.(type) {
	case *leaf[E]:
		tree.AddMetaNode(meta, leafLabel(kid, zst))
	case *collision[E]:
		sub := tree.AddMetaBranch(meta, "≡ collision")
		fprintRec[E](sub, kid, depth+1, zst)
	case *branch[E]:
		sub := tree.AddMetaBranch(meta, "branch")
		fprintRec[E](sub, kid, depth+1, zst)
	default:
		panic("logic error, wrong node type")
	}
}

func leafLabel[E any](l *leaf[E], zst bool) string {
	if zst {
		return fmt.Sprintf("%q", l.key)
	}
	return fmt.Sprintf("%q (%v)", l.key, l.entry)
}
