// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "sceneforge.org/forge/editor"
	"sceneforge.org/forge/scene"
)

func TestBindObjectReadWrite(t *testing.T) {
	ed := NewEditor(nil)
	ob := scene.NewObject(scene.TypeMesh)
	ob.Transform.Position.Set(1, 2, 3)
	id, err := ed.AddObject(ob, "", -1)
	require.NoError(t, err)

	bd, err := ed.BindObject(id, "transform.position[1]")
	require.NoError(t, err)
	assert.Equal(t, 2.0, bd.Get())

	// every property edit is itself an undoable command
	require.NoError(t, bd.Set(5.0))
	assert.Equal(t, float32(5), ed.Scene().Get(id).Transform.Position.Y)
	// siblings of the written leaf are untouched
	assert.Equal(t, float32(1), ed.Scene().Get(id).Transform.Position.X)
	assert.Equal(t, float32(1), ed.Scene().Get(id).Transform.Scale.X)

	var seen []any
	bd.OnChange(func(v any) { seen = append(seen, v) })
	_, err = ed.Undo()
	require.NoError(t, err)
	assert.Equal(t, float32(2), ed.Scene().Get(id).Transform.Position.Y)
	// the undo surfaced through the explicit change subscription
	assert.Equal(t, []any{2.0}, seen)
}

func TestBindObjectNestedPath(t *testing.T) {
	ed := NewEditor(nil)
	ob := scene.NewObject(scene.TypeMesh)
	ob.Mesh = &scene.MeshData{
		Geometry: scene.GeometryData{Kind: "box"},
		Material: scene.MaterialData{Kind: "standard", Color: "#ff0000"},
	}
	id, err := ed.AddObject(ob, "", -1)
	require.NoError(t, err)

	bd, err := ed.BindObject(id, "mesh.material.color")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", bd.Get())
	require.NoError(t, bd.Set("#00ff00"))
	assert.Equal(t, "#00ff00", ed.Scene().Get(id).Mesh.Material.Color)
	// the rest of the mesh payload survives the patch
	assert.Equal(t, "box", ed.Scene().Get(id).Mesh.Geometry.Kind)
}

func TestBindSelection(t *testing.T) {
	ed := NewEditor(nil)
	a := scene.NewObject(scene.TypeMesh)
	a.Name = "a"
	aid, err := ed.AddObject(a, "", -1)
	require.NoError(t, err)
	b := scene.NewObject(scene.TypeMesh)
	b.Name = "b"
	bid, err := ed.AddObject(b, "", -1)
	require.NoError(t, err)

	bd, err := ed.Bind("name")
	require.NoError(t, err)

	// nothing selected: reads nil, writes are no-ops
	assert.Nil(t, bd.Get())
	require.NoError(t, bd.Set("ignored"))
	assert.Equal(t, "a", ed.Scene().Get(aid).Name)

	ed.Select(aid)
	assert.Equal(t, "a", bd.Get())
	require.NoError(t, bd.Set("renamed"))
	assert.Equal(t, "renamed", ed.Scene().Get(aid).Name)

	// the same binder follows the selection
	ed.Select(bid)
	assert.Equal(t, "b", bd.Get())
}

func TestBindObjectDispose(t *testing.T) {
	ed := NewEditor(nil)
	ob := scene.NewObject(scene.TypeMesh)
	ob.Name = "box"
	id, err := ed.AddObject(ob, "", -1)
	require.NoError(t, err)

	bd, err := ed.BindObject(id, "name")
	require.NoError(t, err)
	var seen []any
	bd.OnChange(func(v any) { seen = append(seen, v) })
	require.NoError(t, bd.Set("crate"))
	require.Len(t, seen, 1)

	// disposing releases the undo/redo bus subscriptions: a later undo
	// no longer notifies through the binder
	bd.Dispose()
	_, err = ed.Undo()
	require.NoError(t, err)
	assert.Equal(t, "box", ed.Scene().Get(id).Name)
	assert.Len(t, seen, 1)
}

func TestBindBadPath(t *testing.T) {
	ed := NewEditor(nil)
	_, err := ed.Bind("[0]")
	assert.Error(t, err)
	_, err = ed.BindObject("x", "")
	assert.Error(t, err)
}
