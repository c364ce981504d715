// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package paths implements path-string-addressed reads and writes into
// generic JSON-compatible data (maps, arrays, scalars). A path is a
// dotted sequence of identifier segments, each optionally carrying a
// bracketed non-negative array index: "transform.position[0]",
// "mesh.material.color".
package paths

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one parsed path segment: a field name plus an optional
// array index (-1 when absent).
type Segment struct {
	Name  string
	Index int
}

// ParsePath parses the given path string into segments. Malformed
// segments (empty names, bad bracket syntax, negative or non-numeric
// indices) are dropped rather than reported; see [ParsePathStrict]
// for a version that fails loudly.
func ParsePath(path string) []Segment {
	var segs []Segment
	for _, part := range strings.Split(path, ".") {
		if sg, err := parseSegment(part); err == nil {
			segs = append(segs, sg)
		}
	}
	return segs
}

// ParsePathStrict parses the given path string into segments, returning
// an error on the first malformed segment.
func ParsePathStrict(path string) ([]Segment, error) {
	parts := strings.Split(path, ".")
	segs := make([]Segment, 0, len(parts))
	for _, part := range parts {
		sg, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("paths: %q: %w", path, err)
		}
		segs = append(segs, sg)
	}
	return segs, nil
}

func parseSegment(part string) (Segment, error) {
	sg := Segment{Index: -1}
	name := part
	if i := strings.IndexByte(part, '['); i >= 0 {
		if !strings.HasSuffix(part, "]") {
			return sg, fmt.Errorf("segment %q: unterminated index", part)
		}
		idx, err := strconv.Atoi(part[i+1 : len(part)-1])
		if err != nil || idx < 0 {
			return sg, fmt.Errorf("segment %q: bad index", part)
		}
		sg.Index = idx
		name = part[:i]
	}
	if name == "" || strings.ContainsAny(name, "[]") {
		return sg, fmt.Errorf("segment %q: bad name", part)
	}
	sg.Name = name
	return sg, nil
}

// String joins the segments back into a path string.
func String(segs []Segment) string {
	var sb strings.Builder
	for i, sg := range segs {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(sg.Name)
		if sg.Index >= 0 {
			sb.WriteString("[" + strconv.Itoa(sg.Index) + "]")
		}
	}
	return sb.String()
}

// GetValue walks the given segments through the given generic data,
// returning the addressed value. It returns def the instant any
// intermediate value is missing, an index is applied to a non-array,
// or an index is out of range.
func GetValue(data any, segs []Segment, def any) any {
	cur := data
	for _, sg := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return def
		}
		cur, ok = m[sg.Name]
		if !ok || cur == nil {
			return def
		}
		if sg.Index >= 0 {
			arr, ok := cur.([]any)
			if !ok || sg.Index >= len(arr) {
				return def
			}
			cur = arr[sg.Index]
		}
	}
	if cur == nil {
		return def
	}
	return cur
}

// BuildPatch returns a copy of the given generic data with the value at
// the given segments replaced, preserving structural sharing: every
// map/array on the path from root to the written leaf is shallow-copied,
// while siblings off the path are reused by reference. Consumers relying
// on reference-equality change detection therefore observe exactly the
// nodes that changed and nothing else. Missing intermediate containers
// are created; arrays are grown as needed to hold an indexed write.
func BuildPatch(data any, segs []Segment, value any) any {
	if len(segs) == 0 {
		return value
	}
	sg := segs[0]
	m, _ := data.(map[string]any)
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	if sg.Index < 0 {
		out[sg.Name] = BuildPatch(out[sg.Name], segs[1:], value)
		return out
	}
	arr, _ := out[sg.Name].([]any)
	n := len(arr)
	if sg.Index+1 > n {
		n = sg.Index + 1
	}
	na := make([]any, n)
	copy(na, arr)
	na[sg.Index] = BuildPatch(na[sg.Index], segs[1:], value)
	out[sg.Name] = na
	return out
}
