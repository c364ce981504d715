// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "sceneforge.org/forge/history"
	"sceneforge.org/forge/scene"
)

func TestGestureOneUndoStep(t *testing.T) {
	en := newEngine(t)
	sc := en.Scene()
	a := scene.NewObject(scene.TypeMesh)
	require.NoError(t, en.Add("Add", a, scene.RootID, -1))
	beforeDrag := snapshot(t, sc)

	g, err := en.BeginGesture("Move Object")
	require.NoError(t, err)
	// a continuous drag: many frames, no undo entry per frame
	for i := 1; i <= 10; i++ {
		require.NoError(t, g.Update(a.ID, map[string]any{
			"transform": map[string]any{"position": []any{float64(i), 0.0, 0.0}},
		}))
	}
	g.Commit()

	assert.Equal(t, float32(10), sc.Get(a.ID).Transform.Position.X)
	assert.Equal(t, "Move Object", en.UndoName())

	// one undo reverts the whole drag
	_, err = en.Undo()
	require.NoError(t, err)
	assert.Equal(t, beforeDrag, snapshot(t, sc))
	assert.Equal(t, "Add", en.UndoName())
}

func TestGestureBlocksOtherCommands(t *testing.T) {
	en := newEngine(t)
	a := scene.NewObject(scene.TypeMesh)
	require.NoError(t, en.Add("Add", a, scene.RootID, -1))

	g, err := en.BeginGesture("Drag")
	require.NoError(t, err)
	assert.ErrorIs(t, en.Update("Rename", a.ID, map[string]any{"name": "x"}), ErrGestureActive)
	assert.ErrorIs(t, en.Remove("Delete", a.ID), ErrGestureActive)
	_, err = en.Undo()
	assert.ErrorIs(t, err, ErrGestureActive)
	_, err = en.BeginGesture("Another")
	assert.ErrorIs(t, err, ErrGestureActive)

	g.Commit()
	require.NoError(t, en.Update("Rename", a.ID, map[string]any{"name": "x"}))
}

func TestGestureCancel(t *testing.T) {
	en := newEngine(t)
	sc := en.Scene()
	a := scene.NewObject(scene.TypeMesh)
	require.NoError(t, en.Add("Add", a, scene.RootID, -1))
	before := snapshot(t, sc)

	g, err := en.BeginGesture("Drag")
	require.NoError(t, err)
	require.NoError(t, g.Update(a.ID, map[string]any{
		"transform": map[string]any{"position": []any{5.0, 0.0, 0.0}},
	}))
	g.Cancel()

	assert.Equal(t, before, snapshot(t, sc))
	assert.Equal(t, "Add", en.UndoName())
}

func TestGestureNoChangeNoEntry(t *testing.T) {
	en := newEngine(t)
	a := scene.NewObject(scene.TypeMesh)
	require.NoError(t, en.Add("Add", a, scene.RootID, -1))

	g, err := en.BeginGesture("Drag")
	require.NoError(t, err)
	require.NoError(t, g.Update(a.ID, map[string]any{
		"transform": map[string]any{"position": []any{5.0, 0.0, 0.0}},
	}))
	require.NoError(t, g.Update(a.ID, map[string]any{
		"transform": map[string]any{"position": []any{0.0, 0.0, 0.0}},
	}))
	g.Commit()
	assert.Equal(t, "Add", en.UndoName())
}
