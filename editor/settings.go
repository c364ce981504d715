// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"sceneforge.org/forge/base/iox/tomlx"
)

// Settings are the editor-level preferences, persisted as TOML under
// the user config directory. Scene documents are persisted separately
// as JSON.
type Settings struct {
	// HistoryLimit is the maximum undo depth; the oldest commands are
	// dropped beyond it.
	HistoryLimit int `toml:"history-limit"`

	// Autosave enables periodic saving of the open scene.
	Autosave bool `toml:"autosave"`

	// AutosaveInterval is the autosave period in seconds.
	AutosaveInterval int `toml:"autosave-interval"`

	// ShowGrid toggles the viewport ground grid helper.
	ShowGrid bool `toml:"show-grid"`
}

// DefaultSettings returns the default editor settings.
func DefaultSettings() *Settings {
	return &Settings{HistoryLimit: 100, Autosave: true, AutosaveInterval: 60, ShowGrid: true}
}

// SettingsFilename returns the standard settings file location under
// the user home directory.
func SettingsFilename() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sceneforge", "settings.toml"), nil
}

// OpenSettings loads settings from the standard location, returning the
// defaults if no settings file exists yet.
func OpenSettings() (*Settings, error) {
	fn, err := SettingsFilename()
	if err != nil {
		return DefaultSettings(), err
	}
	st := DefaultSettings()
	if err := tomlx.Open(st, fn); err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return DefaultSettings(), err
	}
	return st, nil
}

// Save writes the settings to the standard location, creating the
// directory as needed.
func (st *Settings) Save() error {
	fn, err := SettingsFilename()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
		return err
	}
	return tomlx.Save(st, fn)
}

// SaveAs writes the settings to the given filename.
func (st *Settings) SaveAs(filename string) error {
	return tomlx.Save(st, filename)
}

// OpenSettingsFrom loads settings from the given filename.
func OpenSettingsFrom(filename string) (*Settings, error) {
	st := DefaultSettings()
	if err := tomlx.Open(st, filename); err != nil {
		return nil, err
	}
	return st, nil
}
