// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package keylist implements an ordered list (slice) of items
// with a map from a key (e.g., names) to indexes,
// to support fast lookup by name while preserving insertion order.
package keylist

import (
	"fmt"
	"slices"
)

// List implements an ordered list (slice) of Values,
// with a map from a key (e.g., names) to indexes,
// to support fast lookup by name. The zero value is usable
// without initialization.
type List[K comparable, V any] struct {
	// Values is the ordered slice of items.
	Values []V

	// Keys is the ordered list of keys, in the same order as [List.Values].
	Keys []K

	// indexes is the key-to-index mapping.
	indexes map[K]int
}

// New returns a new [List].
func New[K comparable, V any]() *List[K, V] {
	return &List[K, V]{}
}

func (kl *List[K, V]) initIndexes() {
	if kl.indexes == nil {
		kl.indexes = make(map[K]int)
	}
}

// Reset removes all elements from the list.
func (kl *List[K, V]) Reset() {
	kl.Values = nil
	kl.Keys = nil
	kl.indexes = make(map[K]int)
}

// Len returns the number of items in the list.
func (kl *List[K, V]) Len() int {
	return len(kl.Values)
}

// Has returns whether the given key is present in the list.
func (kl *List[K, V]) Has(key K) bool {
	_, ok := kl.indexes[key]
	return ok
}

// Add adds an item to the end of the list with the given key.
// An error is returned if the key is already on the list,
// in which case the existing item is left unchanged.
// See [List.Set] for a version that replaces instead.
func (kl *List[K, V]) Add(key K, val V) error {
	kl.initIndexes()
	if _, ok := kl.indexes[key]; ok {
		return fmt.Errorf("keylist.Add: key %v is already on the list", key)
	}
	kl.indexes[key] = len(kl.Values)
	kl.Values = append(kl.Values, val)
	kl.Keys = append(kl.Keys, key)
	return nil
}

// Set sets the given key to the given value, adding to the end of the
// list if not already present, and otherwise replacing the existing value.
// This is the same semantics as a Go map.
func (kl *List[K, V]) Set(key K, val V) {
	kl.initIndexes()
	if idx, ok := kl.indexes[key]; ok {
		kl.Values[idx] = val
		return
	}
	kl.indexes[key] = len(kl.Values)
	kl.Values = append(kl.Values, val)
	kl.Keys = append(kl.Keys, key)
}

// At returns the value corresponding to the given key,
// with a zero value returned for a missing key.
// See [List.AtTry] for a version that reports missing keys.
func (kl *List[K, V]) At(key K) V {
	if idx, ok := kl.indexes[key]; ok {
		return kl.Values[idx]
	}
	var zv V
	return zv
}

// AtTry returns the value corresponding to the given key,
// with false returned for a missing key.
func (kl *List[K, V]) AtTry(key K) (V, bool) {
	if idx, ok := kl.indexes[key]; ok {
		return kl.Values[idx], true
	}
	var zv V
	return zv, false
}

// IndexOf returns the index of the given key, or -1 if not found.
func (kl *List[K, V]) IndexOf(key K) int {
	if idx, ok := kl.indexes[key]; ok {
		return idx
	}
	return -1
}

// Delete removes the item with the given key from the list,
// returning whether it was present.
func (kl *List[K, V]) Delete(key K) bool {
	idx, ok := kl.indexes[key]
	if !ok {
		return false
	}
	kl.Keys = slices.Delete(kl.Keys, idx, idx+1)
	kl.Values = slices.Delete(kl.Values, idx, idx+1)
	delete(kl.indexes, key)
	for k, i := range kl.indexes {
		if i > idx {
			kl.indexes[k] = i - 1
		}
	}
	return true
}

// DeleteFunc removes all items for which the given function returns true,
// returning the number removed.
func (kl *List[K, V]) DeleteFunc(fun func(key K, val V) bool) int {
	n := 0
	for i := len(kl.Keys) - 1; i >= 0; i-- {
		if fun(kl.Keys[i], kl.Values[i]) {
			kl.Delete(kl.Keys[i])
			n++
		}
	}
	return n
}
