// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events implements a many-to-many publish/subscribe bus keyed
// by string event name. The bus guarantees ordered delivery to all
// current subscribers and isolates one subscriber's failure from the
// others; it does not mediate event semantics.
package events

import (
	"log/slog"
	"slices"
)

// Handler is a subscriber function receiving the event payload.
type Handler func(data any)

type subscriber struct {
	id int
	fn Handler
}

// Bus is an in-process publish/subscribe event bus. The zero value is
// ready to use. It is not safe for concurrent use; all core operations
// run on the single UI-driven goroutine.
type Bus struct {
	subs   map[string][]subscriber
	nextID int
}

// NewBus returns a new empty [Bus].
func NewBus() *Bus {
	return &Bus{}
}

// On subscribes the given handler to the given event name, returning an
// unsubscribe function. Handlers are called in subscription order.
func (bu *Bus) On(event string, fn Handler) (off func()) {
	if bu.subs == nil {
		bu.subs = map[string][]subscriber{}
	}
	bu.nextID++
	id := bu.nextID
	bu.subs[event] = append(bu.subs[event], subscriber{id: id, fn: fn})
	return func() { bu.off(event, id) }
}

func (bu *Bus) off(event string, id int) {
	subs := bu.subs[event]
	bu.subs[event] = slices.DeleteFunc(subs, func(s subscriber) bool { return s.id == id })
}

// Emit delivers the given payload to all current subscribers of the
// given event name, in subscription order. A panicking subscriber is
// caught and logged and does not prevent delivery to the rest.
func (bu *Bus) Emit(event string, data any) {
	// snapshot so handlers can subscribe/unsubscribe during delivery
	subs := slices.Clone(bu.subs[event])
	for _, s := range subs {
		call(event, s.fn, data)
	}
}

func call(event string, fn Handler, data any) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("events: subscriber panicked", "event", event, "panic", r)
		}
	}()
	fn(data)
}
