// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

//go:build !sortedset_debug

package sortedset

// debug enables the full trie validation after each Operate,
// build with -tags sortedset_debug.
const debug = false
