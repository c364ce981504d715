// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plugin

import (
	"sceneforge.org/forge/events"
	"sceneforge.org/forge/scene"
)

// Context is the capability surface handed to a plugin's Install hook:
// scene state access, the shared event bus, extension registration, and
// UI utility primitives. Extensions registered through a context are
// owned by the installing plugin: they are rolled back if install fails
// and removed on uninstall.
type Context struct {
	rg  *Registry
	rec *record
}

func (rg *Registry) newContext(rec *record) *Context {
	return &Context{rg: rg, rec: rec}
}

// Scene returns the live scene state, or nil if the application has not
// wired scene access into the registry.
func (cx *Context) Scene() *scene.Scene {
	if cx.rg.Scene == nil {
		return nil
	}
	return cx.rg.Scene()
}

// On subscribes to the shared event bus, returning an unsubscribe function.
func (cx *Context) On(event string, fn events.Handler) (off func()) {
	return cx.rg.bus.On(event, fn)
}

// Emit publishes on the shared event bus.
func (cx *Context) Emit(event string, data any) {
	cx.rg.bus.Emit(event, data)
}

// RegisterObjectType registers an object type owned by this plugin.
// A duplicate id is rejected non-destructively and reported false.
func (cx *Context) RegisterObjectType(ot ObjectType) bool {
	return addEntry(&cx.rg.objectTypes, colObjectTypes, cx.rec, ot.ID, ot)
}

// RegisterPanel registers a panel owned by this plugin.
func (cx *Context) RegisterPanel(pn Panel) bool {
	return addEntry(&cx.rg.panels, colPanels, cx.rec, pn.ID, pn)
}

// RegisterMenuItem registers a menu item owned by this plugin.
func (cx *Context) RegisterMenuItem(mi MenuItem) bool {
	return addEntry(&cx.rg.menuItems, colMenuItems, cx.rec, mi.ID, mi)
}

// RegisterShortcut registers a shortcut owned by this plugin.
func (cx *Context) RegisterShortcut(sh Shortcut) bool {
	return addEntry(&cx.rg.shortcuts, colShortcuts, cx.rec, sh.ID, sh)
}

// RegisterToolbarItem registers a toolbar item owned by this plugin.
func (cx *Context) RegisterToolbarItem(ti ToolbarItem) bool {
	return addEntry(&cx.rg.toolbarItems, colToolbarItems, cx.rec, ti.ID, ti)
}

// UnregisterExtension removes an extension this plugin registered,
// returning whether it was present and owned by this plugin.
func (cx *Context) UnregisterExtension(id string) bool {
	for col, owned := range cx.rec.owned {
		for i, oid := range owned {
			if oid != id {
				continue
			}
			cx.rec.owned[col] = append(owned[:i], owned[i+1:]...)
			switch col {
			case colObjectTypes:
				return cx.rg.objectTypes.Delete(id)
			case colPanels:
				return cx.rg.panels.Delete(id)
			case colMenuItems:
				return cx.rg.menuItems.Delete(id)
			case colShortcuts:
				return cx.rg.shortcuts.Delete(id)
			case colToolbarItems:
				return cx.rg.toolbarItems.Delete(id)
			}
		}
	}
	return false
}

// GenerateID returns a new globally unique object id.
func (cx *Context) GenerateID() string {
	return scene.GenerateID()
}

// Notify surfaces a message to the user.
func (cx *Context) Notify(message string) {
	cx.rg.Notify(message)
}

// Confirm asks the user a yes/no question and returns the answer.
func (cx *Context) Confirm(message string) bool {
	return cx.rg.Confirm(message)
}
