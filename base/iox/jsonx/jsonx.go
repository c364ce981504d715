// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonx provides convenience functions for reading and writing
// JSON to and from files, readers, writers, and bytes.
package jsonx

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
)

// Open reads the given object from the given filename using JSON encoding.
func Open(v any, filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Read(v, bufio.NewReader(fp))
}

// Read reads the given object from the given reader using JSON encoding.
func Read(v any, reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(v)
}

// ReadBytes reads the given object from the given bytes using JSON encoding.
func ReadBytes(v any, b []byte) error {
	return json.Unmarshal(b, v)
}

// Save writes the given object to the given filename using JSON encoding.
func Save(v any, filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	err = Write(v, bw)
	if err != nil {
		return err
	}
	return bw.Flush()
}

// Write writes the given object to the given writer using JSON encoding.
func Write(v any, writer io.Writer) error {
	e := json.NewEncoder(writer)
	return e.Encode(v)
}

// WriteIndent writes the given object to the given writer using JSON
// encoding with tab indentation, for human readability.
func WriteIndent(v any, writer io.Writer) error {
	e := json.NewEncoder(writer)
	e.SetIndent("", "\t")
	return e.Encode(v)
}

// WriteBytes writes the given object to bytes using JSON encoding.
func WriteBytes(v any) ([]byte, error) {
	return json.Marshal(v)
}

// WriteBytesIndent writes the given object to bytes using JSON encoding
// with tab indentation, for human readability.
func WriteBytesIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "\t")
}
