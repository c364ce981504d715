// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 provides the minimal float32 vector math needed for
// scene transforms, building on github.com/chewxy/math32 for scalar
// functions.
package math32

import (
	"encoding/json"
	"fmt"

	"github.com/chewxy/math32"
)

// Vector3 is a 3D vector/point with X, Y and Z float32 components.
// It serializes as a JSON 3-element array, matching the wire format
// of scene transform tuples.
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

// Vec3 returns a new [Vector3] with the given x, y and z components.
func Vec3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Vector3Scalar returns a new [Vector3] with all components set to the
// given scalar value.
func Vector3Scalar(s float32) Vector3 {
	return Vector3{X: s, Y: s, Z: s}
}

// Set sets this vector's X, Y and Z components.
func (v *Vector3) Set(x, y, z float32) {
	v.X = x
	v.Y = y
	v.Z = z
}

// Add returns the vector sum of this vector and the given vector.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vec3(v.X+o.X, v.Y+o.Y, v.Z+o.Z)
}

// Sub returns the vector difference of this vector and the given vector.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vec3(v.X-o.X, v.Y-o.Y, v.Z-o.Z)
}

// MulScalar returns this vector multiplied by the given scalar.
func (v Vector3) MulScalar(s float32) Vector3 {
	return Vec3(v.X*s, v.Y*s, v.Z*s)
}

// Length returns the length of this vector.
func (v Vector3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// DistanceTo returns the distance from this point to the given point.
func (v Vector3) DistanceTo(o Vector3) float32 {
	return v.Sub(o).Length()
}

// Dim returns the component at the given dimension index (0=X, 1=Y, 2=Z).
func (v Vector3) Dim(dim int) float32 {
	switch dim {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		panic("math32.Vector3.Dim: dimension out of range")
	}
}

// SetDim sets the component at the given dimension index (0=X, 1=Y, 2=Z).
func (v *Vector3) SetDim(dim int, value float32) {
	switch dim {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	case 2:
		v.Z = value
	default:
		panic("math32.Vector3.SetDim: dimension out of range")
	}
}

// MarshalJSON encodes the vector as a JSON array [x, y, z].
func (v Vector3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float32{v.X, v.Y, v.Z})
}

// UnmarshalJSON decodes the vector from a JSON array [x, y, z].
func (v *Vector3) UnmarshalJSON(b []byte) error {
	var a [3]float32
	if err := json.Unmarshal(b, &a); err != nil {
		return fmt.Errorf("math32.Vector3: %w", err)
	}
	v.X, v.Y, v.Z = a[0], a[1], a[2]
	return nil
}
