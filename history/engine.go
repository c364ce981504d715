// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package history

import (
	"fmt"

	"sceneforge.org/forge/base/errors"
	"sceneforge.org/forge/scene"
)

// DefaultLimit is the default maximum undo depth; the oldest commands
// are dropped beyond it.
const DefaultLimit = 100

// ErrGestureActive indicates a discrete command was attempted while a
// continuous gesture is still open; the gesture must be committed or
// cancelled first.
var ErrGestureActive = errors.New("history: a gesture is in progress")

// Engine is the command/history engine: the sole writer of the scene.
// All mutation entry points run to completion synchronously; external
// callers must never mutate the scene directly, or the undo/redo
// invariant is broken.
type Engine struct {
	sc      *scene.Scene
	undo    []*Command
	redo    []*Command
	limit   int
	gesture *Gesture
}

// NewEngine returns a new engine over the given scene with the given
// undo depth limit (<= 0 means [DefaultLimit]).
func NewEngine(sc *scene.Scene, limit int) *Engine {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Engine{sc: sc, limit: limit}
}

// Scene returns the scene this engine writes.
func (en *Engine) Scene() *scene.Scene {
	return en.sc
}

// CanUndo returns whether an undo step is available.
func (en *Engine) CanUndo() bool { return len(en.undo) > 0 }

// CanRedo returns whether a redo step is available.
func (en *Engine) CanRedo() bool { return len(en.redo) > 0 }

// UndoName returns the name of the command that [Engine.Undo] would
// revert, or "" if none.
func (en *Engine) UndoName() string {
	if n := len(en.undo); n > 0 {
		return en.undo[n-1].Name
	}
	return ""
}

// RedoName returns the name of the command that [Engine.Redo] would
// re-apply, or "" if none.
func (en *Engine) RedoName() string {
	if n := len(en.redo); n > 0 {
		return en.redo[n-1].Name
	}
	return ""
}

// Undo reverts the most recent command, moving it to the redo stack,
// and returns its name. It is a no-op when the undo stack is empty.
func (en *Engine) Undo() (string, error) {
	if en.gesture != nil {
		return "", ErrGestureActive
	}
	n := len(en.undo)
	if n == 0 {
		return "", nil
	}
	cm := en.undo[n-1]
	if err := cm.Revert(en.sc); err != nil {
		return "", err
	}
	en.undo = en.undo[:n-1]
	en.redo = append(en.redo, cm)
	return cm.Name, nil
}

// Redo re-applies the most recently undone command, moving it back to
// the undo stack, and returns its name. It is a no-op when the redo
// stack is empty.
func (en *Engine) Redo() (string, error) {
	if en.gesture != nil {
		return "", ErrGestureActive
	}
	n := len(en.redo)
	if n == 0 {
		return "", nil
	}
	cm := en.redo[n-1]
	if err := cm.Apply(en.sc); err != nil {
		return "", err
	}
	en.redo = en.redo[:n-1]
	en.undo = append(en.undo, cm)
	return cm.Name, nil
}

// push records an already-applied command: the redo stack is cleared
// and the undo depth limit enforced. Empty commands are dropped so a
// no-op mutation never leaves a stale stack entry.
func (en *Engine) push(cm *Command) {
	if cm.IsEmpty() {
		return
	}
	en.redo = nil
	en.undo = append(en.undo, cm)
	if over := len(en.undo) - en.limit; over > 0 {
		en.undo = en.undo[over:]
	}
}

// Add inserts the given object under the given parent at the given
// index as one undoable command.
func (en *Engine) Add(name string, ob *scene.Object, parentID string, index int) error {
	if en.gesture != nil {
		return ErrGestureActive
	}
	before := capture(en.sc, []string{parentID, ob.ID})
	if err := en.sc.Insert(ob, parentID, index); err != nil {
		return err
	}
	after := capture(en.sc, []string{parentID, ob.ID})
	en.push(diff(name, before, after))
	return nil
}

// Remove removes the object with the given id and all of its
// descendants as one undoable command. The same command clears the
// TargetID of any helper referencing a removed object, so undo restores
// those references too. Removing a missing id is a no-op that leaves
// no stack entry.
func (en *Engine) Remove(name, id string) error {
	if en.gesture != nil {
		return ErrGestureActive
	}
	ob := en.sc.Get(id)
	if ob == nil {
		return nil
	}
	subtree := en.sc.SubtreeIDs(id)
	affected := append([]string{ob.ParentID}, subtree...)
	affected = append(affected, en.sc.HelpersTargeting(subtree)...)
	before := capture(en.sc, affected)
	if _, err := en.sc.Remove(id); err != nil {
		return err
	}
	en.sc.ClearHelperTargets(subtree)
	after := capture(en.sc, affected)
	en.push(diff(name, before, after))
	return nil
}

// Move reparents the object with the given id under the given parent at
// the given index as one undoable command.
func (en *Engine) Move(name, id, parentID string, index int) error {
	if en.gesture != nil {
		return ErrGestureActive
	}
	ob := en.sc.Get(id)
	if ob == nil {
		return fmt.Errorf("history.Move: %q: %w", id, scene.ErrNotFound)
	}
	affected := []string{id, ob.ParentID, parentID}
	before := capture(en.sc, affected)
	if err := en.sc.Move(id, parentID, index); err != nil {
		return err
	}
	after := capture(en.sc, affected)
	en.push(diff(name, before, after))
	return nil
}

// Update applies a patch merge to the object with the given id as one
// undoable command. Updating a missing id is a no-op that leaves no
// stack entry; a patch that changes nothing also leaves no entry.
func (en *Engine) Update(name, id string, patch map[string]any) error {
	if en.gesture != nil {
		return ErrGestureActive
	}
	if !en.sc.Has(id) {
		return nil
	}
	before := capture(en.sc, []string{id})
	if err := en.sc.Update(id, patch); err != nil {
		return err
	}
	after := capture(en.sc, []string{id})
	en.push(diff(name, before, after))
	return nil
}

// ApplyTree reconciles a tree-view snapshot into the scene as one
// undoable command, re-deriving parent/children state for every
// affected object. A snapshot that cannot be applied (unknown ids,
// duplicates, cycles) is rejected with the scene unchanged.
func (en *Engine) ApplyTree(name string, snapshot []*scene.TreeNode) error {
	if en.gesture != nil {
		return ErrGestureActive
	}
	before := capture(en.sc, en.sc.IDs())
	if err := en.sc.ApplyTree(snapshot); err != nil {
		return err
	}
	after := capture(en.sc, en.sc.IDs())
	en.push(diff(name, before, after))
	return nil
}
