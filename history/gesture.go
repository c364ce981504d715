// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package history

import (
	"fmt"

	"sceneforge.org/forge/scene"
)

// Gesture accumulates the intermediate states of one continuous
// interaction (e.g., live transform dragging) without creating an undo
// entry per frame. Only the state at [Engine.BeginGesture] and the
// state at [Gesture.Commit] produce a single committed command: one
// undo step per user gesture, not per frame.
//
// The UI typically defers Commit to a follow-up task after the drag
// ends; because the engine is single-writer and the UI event loop
// processes tasks in submission order, the commit is still observed
// before any subsequent user command can run.
type Gesture struct {
	en       *Engine
	name     string
	baseline map[string]*scene.Object
	done     bool
}

// BeginGesture opens a continuous interaction with the given command
// name. Discrete commands and undo/redo are rejected until the gesture
// is committed or cancelled; only one gesture may be open at a time.
func (en *Engine) BeginGesture(name string) (*Gesture, error) {
	if en.gesture != nil {
		return nil, ErrGestureActive
	}
	g := &Gesture{en: en, name: name, baseline: map[string]*scene.Object{}}
	en.gesture = g
	return g, nil
}

// Update applies a patch merge to the object with the given id
// immediately, without recording an undo entry. The object's state at
// the first touch is kept as the gesture baseline.
func (g *Gesture) Update(id string, patch map[string]any) error {
	if g.done {
		return fmt.Errorf("history: gesture %q already finished", g.name)
	}
	if _, ok := g.baseline[id]; !ok {
		g.baseline[id] = captureOne(g.en.sc, id)
	}
	return g.en.sc.Update(id, patch)
}

// Commit closes the gesture, recording a single command spanning from
// the baseline to the current state of every touched object. A gesture
// that ends where it started leaves no undo entry.
func (g *Gesture) Commit() {
	if g.done {
		return
	}
	g.done = true
	g.en.gesture = nil
	ids := make([]string, 0, len(g.baseline))
	for id := range g.baseline {
		ids = append(ids, id)
	}
	after := capture(g.en.sc, ids)
	g.en.push(diff(g.name, g.baseline, after))
}

// Cancel closes the gesture and restores every touched object to its
// baseline state, leaving no undo entry.
func (g *Gesture) Cancel() {
	if g.done {
		return
	}
	g.done = true
	g.en.gesture = nil
	for id, state := range g.baseline {
		applyState(g.en.sc, id, state)
	}
}

func captureOne(sc *scene.Scene, id string) *scene.Object {
	if ob := sc.Get(id); ob != nil {
		return ob.Clone()
	}
	return nil
}
