// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

//go:build sortedset_debug

package sortedset

const debug = true
