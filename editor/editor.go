// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package editor composes the scene data model, the command/history
// engine, and the plugin registry into the editing surface that UI
// layers call. Every intent ("add object", "set property", "reparent
// node") flows through here: plugin hooks are consulted first, the
// change is applied as one undoable command, and well-known events are
// published on the shared bus for non-plugin observers.
package editor

import (
	"fmt"

	"sceneforge.org/forge/base/errors"
	"sceneforge.org/forge/events"
	"sceneforge.org/forge/history"
	"sceneforge.org/forge/plugin"
	"sceneforge.org/forge/scene"
)

// ErrVetoed indicates an operation cancelled by a plugin hook. A veto
// is a normal control-flow outcome, distinct from failure: the
// requested operation simply did not happen.
var ErrVetoed = errors.New("editor: operation vetoed by a plugin")

// Well-known event names published on the shared bus. Payloads are
// object ids unless noted.
const (
	EventObjectAdded     = "object:added"
	EventObjectRemoved   = "object:removed"
	EventObjectMoved     = "object:moved"
	EventObjectUpdated   = "object:updated"
	EventSelectionChange = "selection:changed"
	EventSceneLoaded     = "scene:loaded" // payload: filename
	EventSceneSaved      = "scene:saved"  // payload: filename
	EventHistoryUndo     = "history:undo" // payload: command name
	EventHistoryRedo     = "history:redo" // payload: command name
)

// Editor is one editing session: a scene, its history engine, a plugin
// registry, and the shared event bus. Construct it with [NewEditor] and
// pass it by reference; independent editors are fully isolated.
type Editor struct {
	bus      *events.Bus
	sc       *scene.Scene
	hist     *history.Engine
	plugins  *plugin.Registry
	settings *Settings
	selected string
}

// NewEditor returns a new editor over an empty scene, using the given
// settings (nil means [DefaultSettings]).
func NewEditor(st *Settings) *Editor {
	if st == nil {
		st = DefaultSettings()
	}
	ed := &Editor{bus: events.NewBus(), settings: st}
	ed.sc = scene.NewScene()
	ed.hist = history.NewEngine(ed.sc, st.HistoryLimit)
	ed.plugins = plugin.NewRegistry(ed.bus)
	ed.plugins.Scene = func() *scene.Scene { return ed.sc }
	return ed
}

// Scene returns the current scene. External callers may read it freely;
// all writes must go through the editor, or the undo/redo invariant is
// broken.
func (ed *Editor) Scene() *scene.Scene { return ed.sc }

// History returns the command/history engine.
func (ed *Editor) History() *history.Engine { return ed.hist }

// Plugins returns the plugin registry.
func (ed *Editor) Plugins() *plugin.Registry { return ed.plugins }

// Bus returns the shared event bus.
func (ed *Editor) Bus() *events.Bus { return ed.bus }

// Settings returns the editor settings.
func (ed *Editor) Settings() *Settings { return ed.settings }

// Selection returns the currently selected object id, or "".
func (ed *Editor) Selection() string { return ed.selected }

// AddObject creates the given object under the given parent ("" means
// the root) at the given index (negative appends), as one undoable
// command. An empty id is assigned. Plugin ObjectCreate hooks may
// transform the object or cancel the creation, in which case
// [ErrVetoed] is returned and the scene is unchanged.
func (ed *Editor) AddObject(ob *scene.Object, parentID string, index int) (string, error) {
	if ob == nil {
		return "", errors.New("editor.AddObject: nil object")
	}
	if ob.ID == "" {
		ob.ID = scene.GenerateID()
	}
	if parentID == "" {
		parentID = ed.sc.RootID
	}
	hooked, vetoed := ed.plugins.ObjectCreate(ob)
	if vetoed {
		return "", fmt.Errorf("%w: create %q", ErrVetoed, ob.ID)
	}
	if err := ed.hist.Add("Add "+displayName(hooked), hooked, parentID, index); err != nil {
		return "", err
	}
	ed.plugins.ObjectCreated(hooked)
	ed.bus.Emit(EventObjectAdded, hooked.ID)
	return hooked.ID, nil
}

// AddObjectOfType creates a new object of the given registered plugin
// object type, falling back to a plain object for built-in type tags.
func (ed *Editor) AddObjectOfType(typ scene.Type, parentID string, index int) (string, error) {
	if ot, ok := ed.plugins.ObjectType(string(typ)); ok && ot.Create != nil {
		return ed.AddObject(ot.Create(), parentID, index)
	}
	return ed.AddObject(scene.NewObject(typ), parentID, index)
}

// RemoveObject deletes the object with the given id and all of its
// descendants as one undoable command. Removing a missing id is a
// no-op; removing the root is refused. Plugin ObjectDelete hooks may
// veto, in which case [ErrVetoed] is returned.
func (ed *Editor) RemoveObject(id string) error {
	ob := ed.sc.Get(id)
	if ob == nil {
		return nil
	}
	if id == ed.sc.RootID {
		return fmt.Errorf("editor.RemoveObject: %w", scene.ErrRoot)
	}
	if !ed.plugins.ObjectDelete(id) {
		return fmt.Errorf("%w: delete %q", ErrVetoed, id)
	}
	if err := ed.hist.Remove("Delete "+displayName(ob), id); err != nil {
		return err
	}
	if ed.selected == id || !ed.sc.Has(ed.selected) {
		ed.Select("")
	}
	ed.bus.Emit(EventObjectRemoved, id)
	return nil
}

// MoveObject reparents the object with the given id under the given
// parent at the given index as one undoable command. Cycles (moving an
// object into its own descendant subtree) are rejected with the scene
// unchanged.
func (ed *Editor) MoveObject(id, parentID string, index int) error {
	ob := ed.sc.Get(id)
	if ob == nil {
		return fmt.Errorf("editor.MoveObject: %q: %w", id, scene.ErrNotFound)
	}
	if err := ed.hist.Move("Move "+displayName(ob), id, parentID, index); err != nil {
		return err
	}
	ed.bus.Emit(EventObjectMoved, id)
	return nil
}

// UpdateObject applies a patch merge to the object with the given id as
// one undoable command. Updating a missing id is a no-op.
func (ed *Editor) UpdateObject(id string, patch map[string]any) error {
	ob := ed.sc.Get(id)
	if ob == nil {
		return nil
	}
	if err := ed.hist.Update("Edit "+displayName(ob), id, patch); err != nil {
		return err
	}
	ed.plugins.ObjectUpdate(id)
	ed.bus.Emit(EventObjectUpdated, id)
	return nil
}

// ApplyTree reconciles a drag/drop-restructured tree snapshot into the
// scene as one undoable command.
func (ed *Editor) ApplyTree(snapshot []*scene.TreeNode) error {
	if err := ed.hist.ApplyTree("Reorder Objects", snapshot); err != nil {
		return err
	}
	ed.bus.Emit(EventObjectMoved, "")
	return nil
}

// Select makes the object with the given id the current selection
// ("" clears it). Selecting a missing id clears the selection.
func (ed *Editor) Select(id string) {
	if id != "" && !ed.sc.Has(id) {
		id = ""
	}
	if id == ed.selected {
		return
	}
	ed.selected = id
	ed.plugins.Select(id)
	ed.bus.Emit(EventSelectionChange, id)
}

// Undo reverts the most recent command, notifying plugins and bus
// subscribers, and returns its name ("" when the stack was empty).
func (ed *Editor) Undo() (string, error) {
	name, err := ed.hist.Undo()
	if err != nil || name == "" {
		return name, err
	}
	if !ed.sc.Has(ed.selected) {
		ed.Select("")
	}
	ed.plugins.Undo(name)
	ed.bus.Emit(EventHistoryUndo, name)
	return name, nil
}

// Redo re-applies the most recently undone command, notifying plugins
// and bus subscribers, and returns its name ("" when the stack was
// empty).
func (ed *Editor) Redo() (string, error) {
	name, err := ed.hist.Redo()
	if err != nil || name == "" {
		return name, err
	}
	if !ed.sc.Has(ed.selected) {
		ed.Select("")
	}
	ed.plugins.Redo(name)
	ed.bus.Emit(EventHistoryRedo, name)
	return name, nil
}

// BeginGesture opens a continuous interaction (e.g., live transform
// dragging) that commits as a single undo step; see [history.Gesture].
func (ed *Editor) BeginGesture(name string) (*history.Gesture, error) {
	return ed.hist.BeginGesture(name)
}

func displayName(ob *scene.Object) string {
	if ob.Name != "" {
		return ob.Name
	}
	return string(ob.Type)
}
