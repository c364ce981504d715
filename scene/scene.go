// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"slices"
	"sort"

	"sceneforge.org/forge/base/errors"
)

// Structural violation errors. These are all rejected before any
// mutation takes place: a failed operation leaves the scene unchanged.
var (
	// ErrNotFound indicates a referenced object id does not exist.
	ErrNotFound = errors.New("scene: object not found")

	// ErrDuplicateID indicates an id is already present in the collection.
	ErrDuplicateID = errors.New("scene: duplicate object id")

	// ErrCycle indicates a reparenting that would make an object a
	// descendant of itself.
	ErrCycle = errors.New("scene: reparenting would create a cycle")

	// ErrRoot indicates an operation that is not allowed on the root.
	ErrRoot = errors.New("scene: operation not allowed on root object")
)

// Scene is the flat collection of objects, keyed by id, plus the id of
// the root object. It is the single source of truth for the object
// tree; all structural invariants (id uniqueness, bidirectional
// parent/children consistency, acyclicity) are enforced at every
// mutation entry point.
type Scene struct {
	// Objects is the flat id-to-object collection.
	Objects map[string]*Object `json:"objects"`

	// RootID is the id of the root object.
	RootID string `json:"rootId"`
}

// NewScene returns a new scene containing only a root object with the
// conventional id "Scene".
func NewScene() *Scene {
	root := &Object{ID: RootID, Name: "Scene", Type: TypeScene, Transform: NewTransform()}
	return &Scene{Objects: map[string]*Object{RootID: root}, RootID: RootID}
}

// Root returns the root object.
func (sc *Scene) Root() *Object {
	return sc.Objects[sc.RootID]
}

// Get returns the object with the given id, or nil if not present.
func (sc *Scene) Get(id string) *Object {
	return sc.Objects[id]
}

// Has returns whether an object with the given id is present.
func (sc *Scene) Has(id string) bool {
	_, ok := sc.Objects[id]
	return ok
}

// Len returns the number of objects, including the root.
func (sc *Scene) Len() int {
	return len(sc.Objects)
}

// IDs returns all object ids in sorted order, for deterministic iteration.
func (sc *Scene) IDs() []string {
	ids := make([]string, 0, len(sc.Objects))
	for id := range sc.Objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// List returns all objects in depth-first display order, starting at
// the root and following each object's ordered children ids.
func (sc *Scene) List() []*Object {
	list := make([]*Object, 0, len(sc.Objects))
	var walk func(id string)
	walk = func(id string) {
		ob := sc.Objects[id]
		if ob == nil {
			return
		}
		list = append(list, ob)
		for _, cid := range ob.ChildrenIDs {
			walk(cid)
		}
	}
	walk(sc.RootID)
	return list
}

// Clone returns a deep copy of the scene sharing no mutable state with
// the original.
func (sc *Scene) Clone() *Scene {
	cp := &Scene{Objects: make(map[string]*Object, len(sc.Objects)), RootID: sc.RootID}
	for id, ob := range sc.Objects {
		cp.Objects[id] = ob.Clone()
	}
	return cp
}

// Insert adds the given object as a child of the given parent at the
// given index (negative or out-of-range appends). The object must have
// a non-empty id not already in the collection, and must not carry any
// children ids. Both sides of the parent/child relation are updated
// atomically; on error the scene is unchanged.
func (sc *Scene) Insert(ob *Object, parentID string, index int) error {
	if ob.ID == "" {
		return fmt.Errorf("scene.Insert: object has no id: %w", ErrNotFound)
	}
	if sc.Has(ob.ID) {
		return fmt.Errorf("scene.Insert: id %q: %w", ob.ID, ErrDuplicateID)
	}
	if len(ob.ChildrenIDs) > 0 {
		return fmt.Errorf("scene.Insert: object %q carries children ids", ob.ID)
	}
	parent := sc.Get(parentID)
	if parent == nil {
		return fmt.Errorf("scene.Insert: parent %q: %w", parentID, ErrNotFound)
	}
	ob.ParentID = parentID
	parent.ChildrenIDs = insertID(parent.ChildrenIDs, ob.ID, index)
	sc.Objects[ob.ID] = ob
	return nil
}

// Remove removes the object with the given id and all of its transitive
// descendants, detaching it from its parent's children ids. It returns
// the removed ids in parents-before-children order. Removing the root
// is refused; removing a non-existent id is a no-op returning nil.
func (sc *Scene) Remove(id string) ([]string, error) {
	ob := sc.Get(id)
	if ob == nil {
		return nil, nil
	}
	if id == sc.RootID {
		return nil, fmt.Errorf("scene.Remove: %q: %w", id, ErrRoot)
	}
	removed := sc.SubtreeIDs(id)
	if parent := sc.Get(ob.ParentID); parent != nil {
		parent.ChildrenIDs = deleteID(parent.ChildrenIDs, id)
	}
	for _, rid := range removed {
		delete(sc.Objects, rid)
	}
	return removed, nil
}

// Move reparents the object with the given id under the given new
// parent at the given index (negative or out-of-range appends).
// The object is first detached and then re-inserted, so an index
// computed among the new parent's children already accounts for the
// object's own removal when moving within the same parent.
// Moving the root, moving under a missing parent, or moving an object
// into its own descendant subtree (including itself) is rejected with
// the scene unchanged.
func (sc *Scene) Move(id, newParentID string, index int) error {
	ob := sc.Get(id)
	if ob == nil {
		return fmt.Errorf("scene.Move: %q: %w", id, ErrNotFound)
	}
	if id == sc.RootID {
		return fmt.Errorf("scene.Move: %q: %w", id, ErrRoot)
	}
	newParent := sc.Get(newParentID)
	if newParent == nil {
		return fmt.Errorf("scene.Move: parent %q: %w", newParentID, ErrNotFound)
	}
	if id == newParentID || sc.IsDescendantOf(newParentID, id) {
		return fmt.Errorf("scene.Move: %q under %q: %w", id, newParentID, ErrCycle)
	}
	if oldParent := sc.Get(ob.ParentID); oldParent != nil {
		oldParent.ChildrenIDs = deleteID(oldParent.ChildrenIDs, id)
	}
	ob.ParentID = newParentID
	newParent.ChildrenIDs = insertID(newParent.ChildrenIDs, id, index)
	return nil
}

// SubtreeIDs returns the given id plus all of its transitive descendant
// ids, parents before children, in children-ids order. It returns nil
// for a missing id.
func (sc *Scene) SubtreeIDs(id string) []string {
	ob := sc.Get(id)
	if ob == nil {
		return nil
	}
	ids := []string{id}
	for _, cid := range ob.ChildrenIDs {
		ids = append(ids, sc.SubtreeIDs(cid)...)
	}
	return ids
}

// HelpersTargeting returns the ids of all helper objects whose TargetID
// is one of the given ids, in sorted order.
func (sc *Scene) HelpersTargeting(ids []string) []string {
	var hs []string
	for hid, ob := range sc.Objects {
		if ob.Helper == nil || ob.Helper.TargetID == "" {
			continue
		}
		if slices.Contains(ids, ob.Helper.TargetID) {
			hs = append(hs, hid)
		}
	}
	sort.Strings(hs)
	return hs
}

// ClearHelperTargets clears the TargetID of every helper referencing
// one of the given ids, returning the ids of the modified helpers.
func (sc *Scene) ClearHelperTargets(ids []string) []string {
	hs := sc.HelpersTargeting(ids)
	for _, hid := range hs {
		sc.Objects[hid].Helper.TargetID = ""
	}
	return hs
}

// SetObject stores the given object state under its id, replacing any
// existing state. This is a low-level patch-replay primitive used by
// the command engine; it performs no structural validation, because
// command patches capture consistent whole-object states for every
// affected id. All other callers must go through the command engine.
func (sc *Scene) SetObject(ob *Object) {
	sc.Objects[ob.ID] = ob
}

// DeleteObject deletes the raw map entry for the given id. Like
// [Scene.SetObject], this is a patch-replay primitive for the command
// engine only.
func (sc *Scene) DeleteObject(id string) {
	delete(sc.Objects, id)
}

// CheckConsistency verifies the structural invariants of the scene:
// map keys match object ids, exactly one root with no parent, every
// parent/children relation is bidirectional, the parent graph is
// acyclic, and helper target references exist. It returns the first
// violation found, or nil.
func (sc *Scene) CheckConsistency() error {
	root := sc.Root()
	if root == nil {
		return fmt.Errorf("scene: root %q missing", sc.RootID)
	}
	if root.ParentID != "" {
		return fmt.Errorf("scene: root %q has a parent", sc.RootID)
	}
	for id, ob := range sc.Objects {
		if ob.ID != id {
			return fmt.Errorf("scene: object %q stored under key %q", ob.ID, id)
		}
		if id != sc.RootID {
			parent := sc.Get(ob.ParentID)
			if parent == nil {
				return fmt.Errorf("scene: object %q has missing parent %q", id, ob.ParentID)
			}
			if !slices.Contains(parent.ChildrenIDs, id) {
				return fmt.Errorf("scene: object %q not in children of parent %q", id, ob.ParentID)
			}
		}
		seen := map[string]bool{}
		for _, cid := range ob.ChildrenIDs {
			if seen[cid] {
				return fmt.Errorf("scene: object %q lists child %q twice", id, cid)
			}
			seen[cid] = true
			child := sc.Get(cid)
			if child == nil {
				return fmt.Errorf("scene: object %q lists missing child %q", id, cid)
			}
			if child.ParentID != id {
				return fmt.Errorf("scene: child %q of %q has parent %q", cid, id, child.ParentID)
			}
		}
		if ob.Helper != nil && ob.Helper.TargetID != "" && !sc.Has(ob.Helper.TargetID) {
			return fmt.Errorf("scene: helper %q targets missing object %q", id, ob.Helper.TargetID)
		}
	}
	for id := range sc.Objects {
		if id != sc.RootID && !sc.IsDescendantOf(id, sc.RootID) {
			return fmt.Errorf("scene: object %q not reachable from root", id)
		}
	}
	return nil
}

// insertID inserts the given id into the slice at the given index,
// appending if the index is negative or past the end.
func insertID(ids []string, id string, index int) []string {
	if index < 0 || index > len(ids) {
		return append(ids, id)
	}
	return slices.Insert(ids, index, id)
}

// deleteID removes the first occurrence of the given id from the slice.
func deleteID(ids []string, id string) []string {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}
