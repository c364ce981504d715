// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"fmt"

	"sceneforge.org/forge/paths"
	"sceneforge.org/forge/scene"
)

// BindObject returns a two-way binder for one path-addressed property
// of the object with the given id (e.g. "transform.position[1]",
// "mesh.material.color"). Reads address the live object state; every
// write goes through the command engine as an undoable patch built with
// structural sharing, so property edits from panels are one undo step
// each. For continuous drags, route writes through a gesture instead.
// Call [paths.Binder.Dispose] when done with the binder to release its
// undo/redo bus subscriptions.
func (ed *Editor) BindObject(id, path string) (*paths.Binder, error) {
	segs := paths.ParsePath(path)
	if len(segs) == 0 {
		return nil, fmt.Errorf("editor.BindObject: unusable path %q", path)
	}
	get := func() any {
		ob := ed.sc.Get(id)
		if ob == nil {
			return nil
		}
		m, err := scene.ToMap(ob)
		if err != nil {
			return nil
		}
		return paths.GetValue(m, segs, nil)
	}
	set := func(value any) error {
		ob := ed.sc.Get(id)
		if ob == nil {
			return fmt.Errorf("editor.BindObject: %q: %w", id, scene.ErrNotFound)
		}
		m, err := scene.ToMap(ob)
		if err != nil {
			return err
		}
		root := paths.BuildPatch(m, segs, value).(map[string]any)
		// send only the written top-level subtree as the patch
		patch := map[string]any{segs[0].Name: root[segs[0].Name]}
		return ed.UpdateObject(id, patch)
	}
	bd := paths.NewBinder(get, set)
	// changes arriving outside Binder.Set (undo/redo) surface through
	// the explicit change subscription; the bus handlers are released
	// by Binder.Dispose so long-lived sessions do not accumulate them
	bd.AddOff(ed.bus.On(EventHistoryUndo, func(any) { bd.Notify(get()) }))
	bd.AddOff(ed.bus.On(EventHistoryRedo, func(any) { bd.Notify(get()) }))
	return bd, nil
}

// Bind returns a binder for a property of the currently selected
// object, resolved at each access, so one bound panel field can follow
// the selection.
func (ed *Editor) Bind(path string) (*paths.Binder, error) {
	segs := paths.ParsePath(path)
	if len(segs) == 0 {
		return nil, fmt.Errorf("editor.Bind: unusable path %q", path)
	}
	get := func() any {
		ob := ed.sc.Get(ed.selected)
		if ob == nil {
			return nil
		}
		m, err := scene.ToMap(ob)
		if err != nil {
			return nil
		}
		return paths.GetValue(m, segs, nil)
	}
	set := func(value any) error {
		id := ed.selected
		ob := ed.sc.Get(id)
		if ob == nil {
			// editing with nothing selected is a no-op, not an error
			return nil
		}
		m, err := scene.ToMap(ob)
		if err != nil {
			return err
		}
		root := paths.BuildPatch(m, segs, value).(map[string]any)
		patch := map[string]any{segs[0].Name: root[segs[0].Name]}
		return ed.UpdateObject(id, patch)
	}
	return paths.NewBinder(get, set), nil
}
