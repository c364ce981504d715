// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnEmitOff(t *testing.T) {
	bu := NewBus()
	var got []string
	off1 := bu.On("sel", func(data any) { got = append(got, "a:"+data.(string)) })
	bu.On("sel", func(data any) { got = append(got, "b:"+data.(string)) })
	bu.On("other", func(data any) { got = append(got, "other") })

	bu.Emit("sel", "x")
	assert.Equal(t, []string{"a:x", "b:x"}, got)

	off1()
	got = nil
	bu.Emit("sel", "y")
	assert.Equal(t, []string{"b:y"}, got)

	// emitting with no subscribers is fine
	bu.Emit("nothing", nil)
}

func TestSubscriberIsolation(t *testing.T) {
	bu := NewBus()
	var got []string
	bu.On("ev", func(data any) { panic("boom") })
	bu.On("ev", func(data any) { got = append(got, "survived") })
	bu.Emit("ev", nil)
	assert.Equal(t, []string{"survived"}, got)
}

func TestUnsubscribeDuringDelivery(t *testing.T) {
	bu := NewBus()
	var got []string
	var off func()
	off = bu.On("ev", func(data any) {
		got = append(got, "first")
		off()
	})
	bu.On("ev", func(data any) { got = append(got, "second") })
	bu.Emit("ev", nil)
	bu.Emit("ev", nil)
	assert.Equal(t, []string{"first", "second", "second"}, got)
}
