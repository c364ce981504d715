// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"io"

	"sceneforge.org/forge/base/iox/jsonx"
	"sceneforge.org/forge/base/iox/yamlx"
)

// WriteJSON writes the scene to the given writer as indented JSON.
// The flat collection round-trips losslessly: floats, enums-as-strings,
// and nested plain objects/arrays only, no live references.
func (sc *Scene) WriteJSON(w io.Writer) error {
	return jsonx.WriteIndent(sc, w)
}

// SaveJSON writes the scene to the given filename as indented JSON.
func (sc *Scene) SaveJSON(filename string) error {
	return jsonx.Save(sc, filename)
}

// ReadJSON reads a scene from the given JSON reader and verifies its
// structural invariants before returning it.
func ReadJSON(r io.Reader) (*Scene, error) {
	sc := &Scene{}
	if err := jsonx.Read(sc, r); err != nil {
		return nil, err
	}
	return checked(sc)
}

// OpenJSON reads a scene from the given JSON file and verifies its
// structural invariants before returning it.
func OpenJSON(filename string) (*Scene, error) {
	sc := &Scene{}
	if err := jsonx.Open(sc, filename); err != nil {
		return nil, err
	}
	return checked(sc)
}

// SaveYAML writes the scene to the given filename as YAML, going
// through the generic JSON-compatible tree form so the YAML field
// layout matches the canonical JSON wire format.
func (sc *Scene) SaveYAML(filename string) error {
	m, err := genericForm(sc)
	if err != nil {
		return err
	}
	return yamlx.Save(m, filename)
}

// OpenYAML reads a scene from the given YAML file and verifies its
// structural invariants before returning it.
func OpenYAML(filename string) (*Scene, error) {
	var m map[string]any
	if err := yamlx.Open(&m, filename); err != nil {
		return nil, err
	}
	b, err := jsonx.WriteBytes(m)
	if err != nil {
		return nil, err
	}
	sc := &Scene{}
	if err := jsonx.ReadBytes(sc, b); err != nil {
		return nil, err
	}
	return checked(sc)
}

func genericForm(sc *Scene) (map[string]any, error) {
	b, err := jsonx.WriteBytes(sc)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := jsonx.ReadBytes(&m, b); err != nil {
		return nil, err
	}
	return m, nil
}

func checked(sc *Scene) (*Scene, error) {
	if sc.Objects == nil {
		sc.Objects = map[string]*Object{}
	}
	if sc.RootID == "" {
		sc.RootID = RootID
	}
	if err := sc.CheckConsistency(); err != nil {
		return nil, fmt.Errorf("scene: loaded scene is inconsistent: %w", err)
	}
	return sc, nil
}
