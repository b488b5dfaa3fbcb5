// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sortedset

import "github.com/pkg/errors"

var (
	// ErrReentrant is the panic value of a mutation of the set
	// from inside its own KeyFunc or OperateFunc.
	ErrReentrant = errors.New("sortedset: reentrant operation")

	// ErrKeyMismatch is wrapped in the panic value if the key of an entry
	// returned from an OperateFunc differs from the operated key.
	ErrKeyMismatch = errors.New("sortedset: entry key mismatch")

	// ErrInvariant is wrapped by all errors about a corrupt trie.
	ErrInvariant = errors.New("sortedset: invariant violated")
)
