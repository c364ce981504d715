// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "sceneforge.org/forge/scene"
)

func TestBuildTree(t *testing.T) {
	sc, a, b, c := build(t)
	tree := sc.BuildTree()
	require.Len(t, tree, 1)
	root := tree[0]
	assert.Equal(t, RootID, root.ID)
	require.Len(t, root.Children, 2)
	assert.Equal(t, a.ID, root.Children[0].ID)
	assert.Equal(t, c.ID, root.Children[1].ID)
	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, b.ID, root.Children[0].Children[0].ID)

	// the view shares no structure with the scene
	root.Children[0].Children = nil
	assert.Equal(t, []string{b.ID}, a.ChildrenIDs)
}

func TestApplyTreeReorder(t *testing.T) {
	sc, a, b, c := build(t)
	// drag b out of a, as a sibling between a and c
	snap := []*TreeNode{{
		ID: RootID, Type: TypeScene,
		Children: []*TreeNode{
			{ID: a.ID, Type: TypeGroup},
			{ID: b.ID, Type: TypeMesh},
			{ID: c.ID, Type: TypeLight},
		},
	}}
	require.NoError(t, sc.ApplyTree(snap))
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, sc.Root().ChildrenIDs)
	assert.Equal(t, RootID, b.ParentID)
	assert.Empty(t, a.ChildrenIDs)
	require.NoError(t, sc.CheckConsistency())
}

func TestApplyTreeNest(t *testing.T) {
	sc, a, b, c := build(t)
	// drop c inside a, after b
	snap := []*TreeNode{{
		ID: RootID, Type: TypeScene,
		Children: []*TreeNode{
			{ID: a.ID, Type: TypeGroup, Children: []*TreeNode{
				{ID: b.ID, Type: TypeMesh},
				{ID: c.ID, Type: TypeLight},
			}},
		},
	}}
	require.NoError(t, sc.ApplyTree(snap))
	assert.Equal(t, []string{b.ID, c.ID}, a.ChildrenIDs)
	assert.Equal(t, a.ID, c.ParentID)
	require.NoError(t, sc.CheckConsistency())
}

func TestApplyTreeRejections(t *testing.T) {
	sc, a, b, c := build(t)
	before := sc.Clone()

	// unknown id
	err := sc.ApplyTree([]*TreeNode{{ID: RootID, Children: []*TreeNode{{ID: "nope"}}}})
	assert.ErrorIs(t, err, ErrNotFound)

	// duplicated id
	err = sc.ApplyTree([]*TreeNode{{ID: RootID, Children: []*TreeNode{
		{ID: a.ID, Children: []*TreeNode{{ID: b.ID}}},
		{ID: b.ID},
		{ID: c.ID},
	}}})
	assert.ErrorIs(t, err, ErrDuplicateID)

	// dropping an object whose parent is restructured orphans it
	err = sc.ApplyTree([]*TreeNode{{ID: RootID, Children: []*TreeNode{
		{ID: a.ID},
		{ID: c.ID},
	}}})
	assert.Error(t, err)

	// snapshot not rooted at the scene root
	err = sc.ApplyTree([]*TreeNode{{ID: a.ID}})
	assert.Error(t, err)

	// every rejection left the scene untouched
	assert.Equal(t, before.Root().ChildrenIDs, sc.Root().ChildrenIDs)
	assert.Equal(t, before.Get(a.ID).ChildrenIDs, sc.Get(a.ID).ChildrenIDs)
	require.NoError(t, sc.CheckConsistency())
}
