// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paths

import "slices"

// Binder is a two-way accessor for one path-addressed property: a plain
// get/set pair plus an explicit change subscription. There is no
// implicit dependency tracking; any reactive layer on top subscribes
// explicitly through [Binder.OnChange].
type Binder struct {
	get  func() any
	set  func(any) error
	subs []*changeSub
	offs []func()
}

type changeSub struct {
	fn func(any)
}

// NewBinder returns a binder over the given get and set functions.
// Writers that want every set to be undoable route set through the
// command engine; see editor.Editor.Bind.
func NewBinder(get func() any, set func(any) error) *Binder {
	return &Binder{get: get, set: set}
}

// Get reads the current value of the bound property.
func (bd *Binder) Get() any {
	return bd.get()
}

// Set writes the given value through the underlying setter and, on
// success, notifies change subscribers with the new value.
func (bd *Binder) Set(value any) error {
	if err := bd.set(value); err != nil {
		return err
	}
	bd.Notify(value)
	return nil
}

// OnChange subscribes the given function to value changes, returning an
// unsubscribe function. Subscribers are called in subscription order.
func (bd *Binder) OnChange(fn func(any)) (off func()) {
	sub := &changeSub{fn: fn}
	bd.subs = append(bd.subs, sub)
	return func() {
		bd.subs = slices.DeleteFunc(bd.subs, func(s *changeSub) bool { return s == sub })
	}
}

// Notify informs subscribers of an externally applied change, e.g.,
// one arriving through undo/redo rather than [Binder.Set].
func (bd *Binder) Notify(value any) {
	for _, sub := range slices.Clone(bd.subs) {
		sub.fn(value)
	}
}

// AddOff registers an unsubscribe function to be run by
// [Binder.Dispose], tying an external subscription (e.g., an event bus
// handler feeding [Binder.Notify]) to the binder's lifetime.
func (bd *Binder) AddOff(off func()) {
	bd.offs = append(bd.offs, off)
}

// Dispose releases the binder: all registered unsubscribe functions are
// run and all change subscribers are dropped. A bound UI element calls
// this when it unmounts; Get and Set remain usable afterward, but no
// further change notifications are delivered.
func (bd *Binder) Dispose() {
	for _, off := range bd.offs {
		off()
	}
	bd.offs = nil
	bd.subs = nil
}
