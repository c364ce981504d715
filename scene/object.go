// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene implements the scene object data model: a flat,
// serializable collection of objects forming a tree through parent and
// child id references. The flat collection is the single source of
// truth; any live renderer graph is a derived, disposable projection.
package scene

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/jinzhu/copier"
	"sceneforge.org/forge/base/errors"
	"sceneforge.org/forge/math32"
)

// Type is the kind of a scene object, determining which payload fields
// are meaningful and how a renderer materializes it. Plugins may
// introduce additional type tags beyond the built-in set.
type Type string

// Built-in object types.
const (
	TypeMesh       Type = "mesh"
	TypeModel      Type = "model"
	TypePointCloud Type = "pointCloud"
	TypeLight      Type = "light"
	TypeCamera     Type = "camera"
	TypeGroup      Type = "group"
	TypeEmpty      Type = "empty"
	TypeHelper     Type = "helper"
	TypeScene      Type = "scene"
)

// RootID is the conventional id of the implicit root object.
const RootID = "Scene"

// Transform is the position, rotation, and scale of an object.
// Rotation is Euler angles in radians.
type Transform struct {
	Position math32.Vector3 `json:"position"`
	Rotation math32.Vector3 `json:"rotation"`
	Scale    math32.Vector3 `json:"scale"`
}

// NewTransform returns the identity transform (unit scale).
func NewTransform() Transform {
	return Transform{Scale: math32.Vec3(1, 1, 1)}
}

// Object is one scene node: the unit of selection, mutation, and
// persistence. All fields are plain serializable data; there are no
// live object references, only ids.
type Object struct {
	// ID is the globally unique, stable identifier of this object.
	// It is assigned at creation and never reused after deletion.
	ID string `json:"id"`

	// Name is the optional display name.
	Name string `json:"name,omitempty"`

	// Type is the object kind discriminator.
	Type Type `json:"type"`

	// Transform is the local position / rotation / scale; always present.
	Transform Transform `json:"transform"`

	// Mesh is the payload for mesh-type objects.
	Mesh *MeshData `json:"mesh,omitempty"`

	// Helper is the payload for helper-type objects.
	Helper *HelperData `json:"helper,omitempty"`

	// Camera is the payload for camera-type objects.
	Camera *CameraData `json:"camera,omitempty"`

	// Environment is the payload for the scene-type root object.
	Environment *EnvironmentData `json:"environment,omitempty"`

	// Render flags. A nil pointer means the default (true).
	Visible       *bool `json:"visible,omitempty"`
	CastShadow    *bool `json:"castShadow,omitempty"`
	ReceiveShadow *bool `json:"receiveShadow,omitempty"`
	FrustumCulled *bool `json:"frustumCulled,omitempty"`
	Selectable    *bool `json:"selectable,omitempty"`

	// RenderOrder is the explicit render ordering; default 0.
	RenderOrder int `json:"renderOrder,omitempty"`

	// ParentID is the id of the parent object; empty only for the root.
	ParentID string `json:"parentId,omitempty"`

	// ChildrenIDs is the ordered list of child ids. It always exactly
	// matches the set of objects whose ParentID is this object's ID,
	// in display order.
	ChildrenIDs []string `json:"childrenIds,omitempty"`

	// UserData holds free-form type-specific or plugin-specific extra
	// fields (e.g., light parameters).
	UserData map[string]any `json:"userData,omitempty"`
}

// MeshData is the geometry and material description of a mesh object.
type MeshData struct {
	Geometry GeometryData `json:"geometry"`
	Material MaterialData `json:"material"`
}

// GeometryData describes a geometry by kind plus kind-specific parameters
// (e.g., width/height/depth for a box, radius for a sphere).
type GeometryData struct {
	Kind   string         `json:"kind"`
	Params map[string]any `json:"params,omitempty"`
}

// MaterialData describes a material by kind, base color, and
// kind-specific parameters.
type MaterialData struct {
	Kind   string         `json:"kind"`
	Color  string         `json:"color,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

// HelperData is the payload for helper objects that visualize another
// object or a construction aid (grid, axes, light gizmo).
type HelperData struct {
	// Kind is the helper kind (e.g., "grid", "axes", "lightGizmo").
	Kind string `json:"kind"`

	// TargetID optionally references the object this helper visualizes.
	// It must reference an existing object or be empty; it is cleared
	// when the target is deleted.
	TargetID string `json:"targetId,omitempty"`

	Params map[string]any `json:"params,omitempty"`
}

// CameraData is the projection description of a camera object.
type CameraData struct {
	// Projection is "perspective" or "orthographic".
	Projection string  `json:"projection"`
	FOV        float32 `json:"fov,omitempty"`
	Near       float32 `json:"near,omitempty"`
	Far        float32 `json:"far,omitempty"`
	Zoom       float32 `json:"zoom,omitempty"`
}

// EnvironmentData is the scene-level background / environment / fog
// settings carried by the root object.
type EnvironmentData struct {
	Background  string   `json:"background,omitempty"`
	Environment string   `json:"environment,omitempty"`
	Fog         *FogData `json:"fog,omitempty"`
}

// FogData describes scene fog.
type FogData struct {
	Kind    string  `json:"kind"`
	Color   string  `json:"color,omitempty"`
	Near    float32 `json:"near,omitempty"`
	Far     float32 `json:"far,omitempty"`
	Density float32 `json:"density,omitempty"`
}

// NewObject returns a new object of the given type with a generated id
// and an identity transform.
func NewObject(typ Type) *Object {
	return &Object{ID: GenerateID(), Type: typ, Transform: NewTransform()}
}

// Clone returns a deep copy of this object, including all payloads,
// children ids, and user data. The copy shares no mutable state with
// the original.
func (ob *Object) Clone() *Object {
	cp := &Object{}
	errors.Must(copier.CopyWithOption(cp, ob, copier.Option{DeepCopy: true}))
	// copier leaves nil slices nil, but an explicitly empty children
	// list must stay distinguishable from absent for patch inverses
	if ob.ChildrenIDs != nil && cp.ChildrenIDs == nil {
		cp.ChildrenIDs = []string{}
	}
	return cp
}

// IsVisible returns the Visible flag, defaulting to true.
func (ob *Object) IsVisible() bool { return ob.Visible == nil || *ob.Visible }

// IsSelectable returns the Selectable flag, defaulting to true.
func (ob *Object) IsSelectable() bool { return ob.Selectable == nil || *ob.Selectable }

// GenerateID returns a new globally unique object id: 12 bytes of
// cryptographic randomness, hex encoded. Ids are never reused.
func GenerateID() string {
	b := make([]byte, 12)
	rand.Read(b)
	return hex.EncodeToString(b)
}
