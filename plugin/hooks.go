// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plugin

import (
	"log/slog"

	"sceneforge.org/forge/scene"
)

// ObjectCreate chains the object about to be created through every
// installed plugin's ObjectCreate hook in registration order. Any
// plugin returning nil cancels the creation: the chain short-circuits,
// remaining plugins are never invoked, and vetoed is true. A vetoed
// creation is a normal control-flow outcome, not an error. A panicking
// hook is logged and its transform skipped.
func (rg *Registry) ObjectCreate(ob *scene.Object) (out *scene.Object, vetoed bool) {
	out = ob
	for _, rec := range rg.plugins.Values {
		if rec.state != Installed || rec.plugin.Hooks.ObjectCreate == nil {
			continue
		}
		res, ok := safeTransform(rec.plugin.ID, "ObjectCreate", rec.plugin.Hooks.ObjectCreate, out)
		if !ok {
			continue
		}
		if res == nil {
			return nil, true
		}
		out = res
	}
	return out, false
}

// ObjectDelete asks every installed plugin, in registration order,
// whether the given id may be deleted. The first veto (false) wins and
// stops evaluation. A panicking hook is logged and counts as no veto.
func (rg *Registry) ObjectDelete(id string) (allowed bool) {
	for _, rec := range rg.plugins.Values {
		if rec.state != Installed || rec.plugin.Hooks.ObjectDelete == nil {
			continue
		}
		if !safeBool(rec.plugin.ID, "ObjectDelete", rec.plugin.Hooks.ObjectDelete, id) {
			return false
		}
	}
	return true
}

// SceneSave pipes the object list about to be persisted through every
// installed plugin's SceneSave hook, each plugin's output feeding the
// next as input. A panicking hook, or one returning nil, is logged and
// leaves the list unchanged for the next stage.
func (rg *Registry) SceneSave(list []*scene.Object) []*scene.Object {
	for _, rec := range rg.plugins.Values {
		if rec.state != Installed || rec.plugin.Hooks.SceneSave == nil {
			continue
		}
		res, ok := safeTransform(rec.plugin.ID, "SceneSave", rec.plugin.Hooks.SceneSave, list)
		if !ok || res == nil {
			continue
		}
		list = res
	}
	return list
}

// ObjectCreated notifies every installed plugin that an object was
// created. Fire-and-forget: a panicking plugin is logged and does not
// prevent the rest from being notified. The same isolation applies to
// all notification dispatchers below.
func (rg *Registry) ObjectCreated(ob *scene.Object) {
	for _, rec := range rg.installed() {
		if fn := rec.plugin.Hooks.ObjectCreated; fn != nil {
			safeCall(rec.plugin.ID, "ObjectCreated", func() { fn(ob) })
		}
	}
}

// ObjectUpdate notifies every installed plugin that the object with the
// given id was updated.
func (rg *Registry) ObjectUpdate(id string) {
	for _, rec := range rg.installed() {
		if fn := rec.plugin.Hooks.ObjectUpdate; fn != nil {
			safeCall(rec.plugin.ID, "ObjectUpdate", func() { fn(id) })
		}
	}
}

// Select notifies every installed plugin of a selection change.
func (rg *Registry) Select(id string) {
	for _, rec := range rg.installed() {
		if fn := rec.plugin.Hooks.Select; fn != nil {
			safeCall(rec.plugin.ID, "Select", func() { fn(id) })
		}
	}
}

// BeforeRender notifies every installed plugin before a render pass.
func (rg *Registry) BeforeRender() {
	for _, rec := range rg.installed() {
		if fn := rec.plugin.Hooks.BeforeRender; fn != nil {
			safeCall(rec.plugin.ID, "BeforeRender", fn)
		}
	}
}

// AfterRender notifies every installed plugin after a render pass.
func (rg *Registry) AfterRender() {
	for _, rec := range rg.installed() {
		if fn := rec.plugin.Hooks.AfterRender; fn != nil {
			safeCall(rec.plugin.ID, "AfterRender", fn)
		}
	}
}

// Undo notifies every installed plugin that the named command was undone.
func (rg *Registry) Undo(name string) {
	for _, rec := range rg.installed() {
		if fn := rec.plugin.Hooks.Undo; fn != nil {
			safeCall(rec.plugin.ID, "Undo", func() { fn(name) })
		}
	}
}

// Redo notifies every installed plugin that the named command was redone.
func (rg *Registry) Redo(name string) {
	for _, rec := range rg.installed() {
		if fn := rec.plugin.Hooks.Redo; fn != nil {
			safeCall(rec.plugin.ID, "Redo", func() { fn(name) })
		}
	}
}

// Resize notifies every installed plugin of a viewport resize.
func (rg *Registry) Resize(width, height int) {
	for _, rec := range rg.installed() {
		if fn := rec.plugin.Hooks.Resize; fn != nil {
			safeCall(rec.plugin.ID, "Resize", func() { fn(width, height) })
		}
	}
}

func (rg *Registry) installed() []*record {
	recs := make([]*record, 0, rg.plugins.Len())
	for _, rec := range rg.plugins.Values {
		if rec.state == Installed {
			recs = append(recs, rec)
		}
	}
	return recs
}

// safeTransform calls a transforming hook, reporting ok=false if it
// panicked so the caller can skip its result.
func safeTransform[I, O any](pluginID, hook string, fn func(I) O, in I) (out O, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("plugin: hook panicked", "plugin", pluginID, "hook", hook, "panic", r)
			ok = false
		}
	}()
	return fn(in), true
}

// safeBool calls a boolean hook, treating a panic as true (no veto).
func safeBool(pluginID, hook string, fn func(string) bool, in string) (res bool) {
	res = true
	defer func() {
		if r := recover(); r != nil {
			slog.Error("plugin: hook panicked", "plugin", pluginID, "hook", hook, "panic", r)
		}
	}()
	return fn(in)
}

// safeCall calls a fire-and-forget hook, logging a panic.
func safeCall(pluginID, hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("plugin: hook panicked", "plugin", pluginID, "hook", hook, "panic", r)
		}
	}()
	fn()
}
