// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddSet(t *testing.T) {
	kl := New[string, int]()
	assert.NoError(t, kl.Add("a", 1))
	assert.NoError(t, kl.Add("b", 2))
	assert.Error(t, kl.Add("a", 3))
	assert.Equal(t, 1, kl.At("a"))
	kl.Set("a", 3)
	assert.Equal(t, 3, kl.At("a"))
	assert.Equal(t, []string{"a", "b"}, kl.Keys)
	assert.Equal(t, 2, kl.Len())
}

func TestDelete(t *testing.T) {
	kl := New[string, int]()
	kl.Set("a", 1)
	kl.Set("b", 2)
	kl.Set("c", 3)
	assert.True(t, kl.Delete("b"))
	assert.False(t, kl.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, kl.Keys)
	assert.Equal(t, 3, kl.At("c"))
	assert.Equal(t, 1, kl.IndexOf("c"))
	v, ok := kl.AtTry("b")
	assert.False(t, ok)
	assert.Equal(t, 0, v)
}

func TestDeleteFunc(t *testing.T) {
	kl := New[string, int]()
	kl.Set("a", 1)
	kl.Set("b", 2)
	kl.Set("c", 3)
	n := kl.DeleteFunc(func(key string, val int) bool { return val > 1 })
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a"}, kl.Keys)
}
