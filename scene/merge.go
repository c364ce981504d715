// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"log/slog"

	"sceneforge.org/forge/base/iox/jsonx"
)

// structuralKeys are object fields that may not be changed through a
// patch merge; they are owned by the structural operations (Insert,
// Remove, Move) which keep both sides of the tree relation consistent.
var structuralKeys = []string{"id", "parentId", "childrenIds"}

// ToMap converts the given object to its generic JSON-compatible tree
// form (maps, arrays, and scalars only; float64 numbers).
func ToMap(ob *Object) (map[string]any, error) {
	b, err := jsonx.WriteBytes(ob)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := jsonx.ReadBytes(&m, b); err != nil {
		return nil, err
	}
	return m, nil
}

// FromMap converts the generic tree form back into a typed object.
func FromMap(m map[string]any) (*Object, error) {
	b, err := jsonx.WriteBytes(m)
	if err != nil {
		return nil, err
	}
	ob := &Object{}
	if err := jsonx.ReadBytes(ob, b); err != nil {
		return nil, err
	}
	return ob, nil
}

// MergeValue merges a patch value into a destination value over the
// generic tree form, returning the merged result. Maps are merged
// recursively key by key; a nil patch value deletes the key; all other
// values, including arrays, replace the destination wholesale.
func MergeValue(dst, patch any) any {
	pm, pok := patch.(map[string]any)
	dm, dok := dst.(map[string]any)
	if !pok || !dok {
		return patch
	}
	out := make(map[string]any, len(dm)+len(pm))
	for k, v := range dm {
		out[k] = v
	}
	for k, v := range pm {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = MergeValue(out[k], v)
	}
	return out
}

// Update applies a patch merge to the object with the given id,
// following [MergeValue] semantics over the generic tree form.
// Structural keys (id, parentId, childrenIds) in the patch are dropped
// with a logged warning rather than applied. Updating a missing id is
// an error; on any error the scene is unchanged.
func (sc *Scene) Update(id string, patch map[string]any) error {
	ob := sc.Get(id)
	if ob == nil {
		return fmt.Errorf("scene.Update: %q: %w", id, ErrNotFound)
	}
	patch = stripStructural(patch)
	if len(patch) == 0 {
		return nil
	}
	m, err := ToMap(ob)
	if err != nil {
		return fmt.Errorf("scene.Update: %q: %w", id, err)
	}
	merged := MergeValue(m, patch).(map[string]any)
	nob, err := FromMap(merged)
	if err != nil {
		return fmt.Errorf("scene.Update: %q: %w", id, err)
	}
	nob.ID = ob.ID
	nob.ParentID = ob.ParentID
	nob.ChildrenIDs = ob.ChildrenIDs
	sc.Objects[id] = nob
	return nil
}

func stripStructural(patch map[string]any) map[string]any {
	for _, key := range structuralKeys {
		if _, ok := patch[key]; !ok {
			continue
		}
		slog.Warn("scene.Update: dropping structural key from patch", "key", key)
		cp := make(map[string]any, len(patch))
		for k, v := range patch {
			cp[k] = v
		}
		for _, k := range structuralKeys {
			delete(cp, k)
		}
		return cp
	}
	return patch
}
