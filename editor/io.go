// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"fmt"

	"sceneforge.org/forge/history"
	"sceneforge.org/forge/scene"
)

// SaveScene persists the scene to the given JSON file. The flat object
// list is first piped through the plugin SceneSave hooks, which may
// transform or drop objects (e.g., stripping transient helpers); the
// result is re-sanitized into a consistent scene before writing, so the
// persisted form always round-trips. The hooks receive deep copies:
// mutating an element in place changes only the persisted form, never
// the live scene, which stays writable solely through the command
// engine.
func (ed *Editor) SaveScene(filename string) error {
	live := ed.sc.List()
	work := make([]*scene.Object, len(live))
	for i, ob := range live {
		work[i] = ob.Clone()
	}
	list := ed.plugins.SceneSave(work)
	out, err := sceneFromList(ed.sc.RootID, list)
	if err != nil {
		return fmt.Errorf("editor.SaveScene: %w", err)
	}
	if err := out.SaveJSON(filename); err != nil {
		return err
	}
	ed.bus.Emit(EventSceneSaved, filename)
	return nil
}

// LoadScene replaces the current scene with the contents of the given
// JSON file. The undo/redo history is cleared: commands captured
// against the previous scene cannot replay against the new one. The
// selection is cleared as well.
func (ed *Editor) LoadScene(filename string) error {
	sc, err := scene.OpenJSON(filename)
	if err != nil {
		return err
	}
	ed.replaceScene(sc)
	ed.bus.Emit(EventSceneLoaded, filename)
	return nil
}

// NewScene replaces the current scene with an empty one, clearing the
// history and selection.
func (ed *Editor) NewScene() {
	ed.replaceScene(scene.NewScene())
	ed.bus.Emit(EventSceneLoaded, "")
}

func (ed *Editor) replaceScene(sc *scene.Scene) {
	ed.sc = sc
	ed.hist = history.NewEngine(sc, ed.settings.HistoryLimit)
	ed.selected = ""
}

// sceneFromList rebuilds a consistent scene from a hook-transformed
// object list: objects are deep-copied, children ids referencing
// dropped objects are pruned, and objects whose parent was dropped are
// dropped with it.
func sceneFromList(rootID string, list []*scene.Object) (*scene.Scene, error) {
	present := make(map[string]bool, len(list))
	for _, ob := range list {
		if ob != nil {
			present[ob.ID] = true
		}
	}
	if !present[rootID] {
		return nil, fmt.Errorf("save hooks dropped the root object %q", rootID)
	}
	// dropping a parent drops its whole subtree; iterate to a fixpoint
	// since the hook-transformed list carries no ordering guarantee
	for changed := true; changed; {
		changed = false
		for _, ob := range list {
			if ob == nil || !present[ob.ID] {
				continue
			}
			if ob.ParentID != "" && !present[ob.ParentID] {
				present[ob.ID] = false
				changed = true
			}
		}
	}
	out := &scene.Scene{Objects: map[string]*scene.Object{}, RootID: rootID}
	for _, ob := range list {
		if ob == nil || !present[ob.ID] {
			continue
		}
		cp := ob.Clone()
		var kids []string
		for _, cid := range cp.ChildrenIDs {
			if present[cid] {
				kids = append(kids, cid)
			}
		}
		cp.ChildrenIDs = kids
		out.Objects[cp.ID] = cp
	}
	// helpers may reference objects the hooks dropped
	for _, ob := range out.Objects {
		if ob.Helper != nil && ob.Helper.TargetID != "" {
			if _, ok := out.Objects[ob.Helper.TargetID]; !ok {
				ob.Helper.TargetID = ""
			}
		}
	}
	if err := out.CheckConsistency(); err != nil {
		return nil, err
	}
	return out, nil
}
