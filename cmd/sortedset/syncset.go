// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"sync"
	"sync/atomic"

	"github.com/gaissmai/sortedset"
)

// SyncSet publishes immutable versions of a set to concurrent readers.
// Writers are serialized and operate on a clone, readers never lock.
type SyncSet[E any] struct {
	atomic.Pointer[sortedset.Set[E]]
	sync.Mutex
}

func NewSyncSet[E any](keyFor sortedset.KeyFunc[E]) *SyncSet[E] {
	ss := new(SyncSet[E])
	ss.Store(sortedset.New(keyFor))
	return ss
}

func (ss *SyncSet[E]) Get(key []byte) (E, bool) {
	return ss.Load().Get(key)
}

func (ss *SyncSet[E]) Operate(atKey []byte, cb sortedset.OperateFunc[E]) {
	ss.Lock() // acquire writer lock to exclude other writers
	defer ss.Unlock()

	newPtr := ss.Load().Clone() // copy the current version
	newPtr.Operate(atKey, cb)

	ss.Store(newPtr) // atomically publish new version for readers
}
