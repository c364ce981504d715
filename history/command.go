// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package history implements the command/history engine: every
// structural or property mutation of the scene is captured as a
// reversible command holding forward and inverse patches over the flat
// object collection, maintained on standard undo/redo stacks.
package history

import (
	"bytes"
	"fmt"
	"sort"

	"sceneforge.org/forge/base/errors"
	"sceneforge.org/forge/base/iox/jsonx"
	"sceneforge.org/forge/scene"
)

// ErrStale indicates a command patch referencing an object id whose
// presence no longer matches what the patch was captured against.
// Such a command fails to apply as a whole; the scene is unchanged.
var ErrStale = errors.New("history: command references stale object id")

// Change is the captured before/after state of one object within a
// command. A nil Before means the object did not exist before the
// command; a nil After means it does not exist after. Both snapshots
// are deep copies taken at capture time, so replaying them is pure
// data application independent of later state.
type Change struct {
	ID     string
	Before *scene.Object
	After  *scene.Object
}

// Command is one reversible unit of mutation: a named set of
// whole-object before/after snapshots over the flat collection.
type Command struct {
	// Name is the user-visible action description, e.g. "Move Object".
	Name string

	// Changes are the per-object state transitions, in sorted id order.
	Changes []Change
}

// IsEmpty reports whether the command changes nothing.
func (cm *Command) IsEmpty() bool {
	return len(cm.Changes) == 0
}

// Apply applies the forward patch to the given scene. It is atomic:
// every change is validated against current state first, and on any
// stale reference nothing is applied.
func (cm *Command) Apply(sc *scene.Scene) error {
	if err := cm.validate(sc, false); err != nil {
		return err
	}
	for _, ch := range cm.Changes {
		applyState(sc, ch.ID, ch.After)
	}
	return nil
}

// Revert applies the inverse patch to the given scene, restoring the
// captured before states. Like [Command.Apply], it is atomic.
func (cm *Command) Revert(sc *scene.Scene) error {
	if err := cm.validate(sc, true); err != nil {
		return err
	}
	for _, ch := range cm.Changes {
		applyState(sc, ch.ID, ch.Before)
	}
	return nil
}

// validate checks that each change's starting state (Before, or After
// when reverting) matches the presence of the object in the scene.
func (cm *Command) validate(sc *scene.Scene, invert bool) error {
	for _, ch := range cm.Changes {
		from := ch.Before
		if invert {
			from = ch.After
		}
		if (from != nil) != sc.Has(ch.ID) {
			return fmt.Errorf("%w: %q in command %q", ErrStale, ch.ID, cm.Name)
		}
	}
	return nil
}

func applyState(sc *scene.Scene, id string, state *scene.Object) {
	if state == nil {
		sc.DeleteObject(id)
		return
	}
	// clone so the stack snapshot stays pristine across replays
	sc.SetObject(state.Clone())
}

// capture returns deep-copy snapshots of the given ids in the given
// scene, with nil entries for missing ids.
func capture(sc *scene.Scene, ids []string) map[string]*scene.Object {
	snap := make(map[string]*scene.Object, len(ids))
	for _, id := range ids {
		if ob := sc.Get(id); ob != nil {
			snap[id] = ob.Clone()
		} else {
			snap[id] = nil
		}
	}
	return snap
}

// diff builds a command from before/after snapshot maps, keeping only
// the objects whose serialized state actually differs.
func diff(name string, before, after map[string]*scene.Object) *Command {
	ids := make([]string, 0, len(before))
	for id := range before {
		ids = append(ids, id)
	}
	for id := range after {
		if _, ok := before[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	cm := &Command{Name: name}
	for _, id := range ids {
		b, a := before[id], after[id]
		if sameState(b, a) {
			continue
		}
		cm.Changes = append(cm.Changes, Change{ID: id, Before: b, After: a})
	}
	return cm
}

func sameState(a, b *scene.Object) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	ab := errors.Log1(jsonx.WriteBytes(a))
	bb := errors.Log1(jsonx.WriteBytes(b))
	return bytes.Equal(ab, bb)
}
