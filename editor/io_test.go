// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "sceneforge.org/forge/editor"
	"sceneforge.org/forge/plugin"
	"sceneforge.org/forge/scene"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	ed := NewEditor(nil)
	aid, err := ed.AddObject(scene.NewObject(scene.TypeGroup), "", -1)
	require.NoError(t, err)
	_, err = ed.AddObject(scene.NewObject(scene.TypeMesh), aid, -1)
	require.NoError(t, err)
	saved := snapshot(t, ed.Scene())

	fn := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, ed.SaveScene(fn))
	require.NoError(t, ed.LoadScene(fn))

	assert.Equal(t, saved, snapshot(t, ed.Scene()))
	// history does not survive a load
	assert.False(t, ed.History().CanUndo())
}

func TestSaveScenePipeline(t *testing.T) {
	ed := NewEditor(nil)
	mid, err := ed.AddObject(scene.NewObject(scene.TypeMesh), "", -1)
	require.NoError(t, err)
	h := scene.NewObject(scene.TypeHelper)
	h.Helper = &scene.HelperData{Kind: "boxHelper", TargetID: mid}
	hid, err := ed.AddObject(h, "", -1)
	require.NoError(t, err)

	// a plugin strips transient helpers from the persisted form
	require.NoError(t, ed.Plugins().Register(&plugin.Plugin{
		ID: "strip-helpers", Version: "1.0.0",
		Hooks: plugin.Hooks{SceneSave: func(list []*scene.Object) []*scene.Object {
			var out []*scene.Object
			for _, ob := range list {
				if ob.Type != scene.TypeHelper {
					out = append(out, ob)
				}
			}
			return out
		}},
	}))

	fn := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, ed.SaveScene(fn))

	// the live scene is untouched by the save pipeline
	assert.True(t, ed.Scene().Has(hid))

	loaded, err := scene.OpenJSON(fn)
	require.NoError(t, err)
	assert.True(t, loaded.Has(mid))
	assert.False(t, loaded.Has(hid))
}

func TestSaveScenePipelineGetsCopies(t *testing.T) {
	ed := NewEditor(nil)
	ob := scene.NewObject(scene.TypeMesh)
	ob.Name = "box"
	ob.UserData = map[string]any{"tag": "hero"}
	id, err := ed.AddObject(ob, "", -1)
	require.NoError(t, err)

	// a hook that edits objects in place only affects the persisted
	// form; the live scene stays writable through the command engine only
	require.NoError(t, ed.Plugins().Register(&plugin.Plugin{
		ID: "watermark", Version: "1.0.0",
		Hooks: plugin.Hooks{SceneSave: func(list []*scene.Object) []*scene.Object {
			for _, o := range list {
				if o.Type == scene.TypeMesh {
					o.Name = "exported"
					o.UserData["tag"] = "stamped"
				}
			}
			return list
		}},
	}))

	fn := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, ed.SaveScene(fn))

	live := ed.Scene().Get(id)
	assert.Equal(t, "box", live.Name)
	assert.Equal(t, "hero", live.UserData["tag"])

	loaded, err := scene.OpenJSON(fn)
	require.NoError(t, err)
	assert.Equal(t, "exported", loaded.Get(id).Name)
	assert.Equal(t, "stamped", loaded.Get(id).UserData["tag"])
}

func TestNewSceneClearsAll(t *testing.T) {
	ed := NewEditor(nil)
	id, err := ed.AddObject(scene.NewObject(scene.TypeMesh), "", -1)
	require.NoError(t, err)
	ed.Select(id)

	ed.NewScene()
	assert.Equal(t, 1, ed.Scene().Len())
	assert.Empty(t, ed.Selection())
	assert.False(t, ed.History().CanUndo())
}

func TestSettingsRoundTrip(t *testing.T) {
	st := DefaultSettings()
	st.HistoryLimit = 42
	st.Autosave = false
	fn := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, st.SaveAs(fn))
	got, err := OpenSettingsFrom(fn)
	require.NoError(t, err)
	assert.Equal(t, st, got)
}
