// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
)

// TreeNode is the nested, display-ordered view of one object, produced
// by [Scene.BuildTree] for tree-view UIs and consumed back through
// [Scene.ApplyTree] after drag/drop restructuring.
type TreeNode struct {
	ID       string      `json:"id"`
	Name     string      `json:"name,omitempty"`
	Type     Type        `json:"type"`
	Children []*TreeNode `json:"children,omitempty"`
}

// BuildTree produces the nested tree view rooted at the scene root.
// It is a pure function of current state: children appear in
// children-ids order and the result shares no structure with the scene,
// so successive rebuilds may be coalesced by callers without affecting
// eventual correctness.
func (sc *Scene) BuildTree() []*TreeNode {
	root := sc.buildNode(sc.RootID)
	if root == nil {
		return nil
	}
	return []*TreeNode{root}
}

func (sc *Scene) buildNode(id string) *TreeNode {
	ob := sc.Get(id)
	if ob == nil {
		return nil
	}
	tn := &TreeNode{ID: ob.ID, Name: ob.Name, Type: ob.Type}
	for _, cid := range ob.ChildrenIDs {
		if ctn := sc.buildNode(cid); ctn != nil {
			tn.Children = append(tn.Children, ctn)
		}
	}
	return tn
}

// SiblingsAndIndex locates the given object among its siblings,
// returning the ordered sibling id list (including the object itself)
// and the object's index within it. It returns false for a missing id
// and for the root, which has no siblings.
func (sc *Scene) SiblingsAndIndex(id string) ([]string, int, bool) {
	ob := sc.Get(id)
	if ob == nil || ob.ParentID == "" {
		return nil, 0, false
	}
	parent := sc.Get(ob.ParentID)
	if parent == nil {
		return nil, 0, false
	}
	for i, cid := range parent.ChildrenIDs {
		if cid == id {
			return parent.ChildrenIDs, i, true
		}
	}
	return nil, 0, false
}

// IsDescendantOf reports whether candidate is in the subtree rooted at
// ancestor, by walking the candidate's parent chain. An object is not
// its own descendant.
func (sc *Scene) IsDescendantOf(candidateID, ancestorID string) bool {
	ob := sc.Get(candidateID)
	// hop limit guards against a corrupted parent chain
	for i := 0; ob != nil && i <= len(sc.Objects); i++ {
		if ob.ParentID == "" {
			return false
		}
		if ob.ParentID == ancestorID {
			return true
		}
		ob = sc.Get(ob.ParentID)
	}
	return false
}

// ApplyTree reconciles a tree snapshot (as produced by [Scene.BuildTree]
// and restructured by a tree-view UI) back into canonical ParentID /
// ChildrenIDs state. This is the one path by which an external tree view
// may batch-write structural changes. The snapshot is validated in full
// before any mutation: every id must exist, no id may appear twice, the
// root of the snapshot must be the scene root, and no object may be left
// out of its current place without appearing somewhere in the snapshot
// (objects absent from the snapshot keep their position only if their
// whole subtree is untouched). On any violation the scene is unchanged
// and an error describing the conflict is returned.
func (sc *Scene) ApplyTree(snapshot []*TreeNode) error {
	if len(snapshot) != 1 || snapshot[0] == nil || snapshot[0].ID != sc.RootID {
		return fmt.Errorf("scene.ApplyTree: snapshot root must be %q", sc.RootID)
	}
	parents := map[string]string{}   // id -> new parent id
	children := map[string][]string{} // id -> new ordered children
	seen := map[string]bool{}
	var collect func(tn *TreeNode) error
	collect = func(tn *TreeNode) error {
		if !sc.Has(tn.ID) {
			return fmt.Errorf("scene.ApplyTree: %q: %w", tn.ID, ErrNotFound)
		}
		if seen[tn.ID] {
			return fmt.Errorf("scene.ApplyTree: %q appears twice: %w", tn.ID, ErrDuplicateID)
		}
		seen[tn.ID] = true
		ids := make([]string, 0, len(tn.Children))
		for _, ctn := range tn.Children {
			if ctn == nil {
				continue
			}
			if err := collect(ctn); err != nil {
				return err
			}
			parents[ctn.ID] = tn.ID
			ids = append(ids, ctn.ID)
		}
		children[tn.ID] = ids
		return nil
	}
	if err := collect(snapshot[0]); err != nil {
		return err
	}
	// every object currently under a snapshot-touched parent must be
	// placed somewhere in the snapshot, or it would be orphaned
	for id, ob := range sc.Objects {
		if id == sc.RootID || seen[id] {
			continue
		}
		if seen[ob.ParentID] {
			return fmt.Errorf("scene.ApplyTree: object %q missing from snapshot of parent %q", id, ob.ParentID)
		}
	}
	// a well-formed snapshot tree cannot express a cycle, but verify
	// against the merged result before committing anything
	if err := checkAcyclic(sc, parents); err != nil {
		return err
	}
	for id, pid := range parents {
		sc.Objects[id].ParentID = pid
	}
	for id, ids := range children {
		if len(ids) == 0 {
			sc.Objects[id].ChildrenIDs = nil
			continue
		}
		sc.Objects[id].ChildrenIDs = ids
	}
	return nil
}

// checkAcyclic verifies that overlaying the given new parent assignments
// on the current scene produces an acyclic parent graph.
func checkAcyclic(sc *Scene, parents map[string]string) error {
	parentOf := func(id string) string {
		if pid, ok := parents[id]; ok {
			return pid
		}
		if ob := sc.Get(id); ob != nil {
			return ob.ParentID
		}
		return ""
	}
	for id := range sc.Objects {
		cur := id
		for i := 0; i <= len(sc.Objects); i++ {
			pid := parentOf(cur)
			if pid == "" {
				break
			}
			if pid == id {
				return fmt.Errorf("scene.ApplyTree: %q: %w", id, ErrCycle)
			}
			cur = pid
		}
	}
	return nil
}
