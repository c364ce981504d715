// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plugin implements the extension registry: plugins introduce
// new object types, panels, menu items, shortcuts, and toolbar items,
// and observe or veto scene lifecycle events, without the core
// depending on any specific plugin.
package plugin

import (
	"sceneforge.org/forge/scene"
)

// Plugin is the install contract for one extension. A plugin declares
// its identity, optional dependencies on other plugins, the extensions
// it contributes, and its lifecycle hooks. Install is called exactly
// once per successful [Registry.Register].
type Plugin struct {
	// ID is the globally unique plugin identifier.
	ID string

	// Name is the display name.
	Name string

	// Version is the semantic version of the plugin (e.g. "1.2.0").
	Version string

	// Dependencies lists plugin ids that must already be installed,
	// each optionally carrying a semantic version constraint after an
	// @ separator (e.g. "measure-tools@^1.2").
	Dependencies []string

	// Declared extensions, registered after a successful install.
	ObjectTypes  []ObjectType
	Panels       []Panel
	MenuItems    []MenuItem
	Shortcuts    []Shortcut
	ToolbarItems []ToolbarItem

	// Hooks are the lifecycle callbacks this plugin implements.
	Hooks Hooks

	// Install is called with the capability context during
	// registration. A nil Install is allowed. Any error (or panic)
	// aborts registration with no partial state.
	Install func(ctx *Context) error

	// Uninstall is optionally called during unregistration.
	Uninstall func() error
}

// ObjectType is a plugin-contributed scene object kind. Its ID becomes
// a valid [scene.Type] tag alongside the built-in set.
type ObjectType struct {
	ID   string
	Name string
	Icon string

	// Create returns a fresh object of this type, fully populated.
	Create func() *scene.Object
}

// Panel is a plugin-contributed side panel. The core only keys and
// orders panels; mounting is the UI layer's concern.
type Panel struct {
	ID    string
	Title string
	Icon  string
}

// MenuItem is a plugin-contributed menu entry.
type MenuItem struct {
	ID     string
	Label  string
	Menu   string
	Action func()
}

// Shortcut is a plugin-contributed keyboard shortcut.
type Shortcut struct {
	ID     string
	Key    string
	Action func()
}

// ToolbarItem is a plugin-contributed toolbar button.
type ToolbarItem struct {
	ID      string
	Icon    string
	Tooltip string
	Action  func()
}

// Hooks are the lifecycle callbacks through which plugins influence
// core behavior. Any nil hook is skipped. See [Registry] dispatch
// methods for the chaining, veto, and fault-isolation contracts.
type Hooks struct {
	// ObjectCreate may transform the object about to be created, or
	// return nil to cancel creation. Chained through all plugins in
	// registration order; a nil return short-circuits the chain.
	ObjectCreate func(ob *scene.Object) *scene.Object

	// ObjectDelete may veto deletion of the given id by returning
	// false. Evaluated in registration order; the first veto wins.
	ObjectDelete func(id string) bool

	// SceneSave transforms the object list about to be persisted;
	// each plugin's output feeds the next as input.
	SceneSave func(list []*scene.Object) []*scene.Object

	// Fire-and-forget notifications, called on every plugin
	// unconditionally; a panicking plugin is logged and skipped.
	ObjectCreated func(ob *scene.Object)
	ObjectUpdate  func(id string)
	Select        func(id string)
	BeforeRender  func()
	AfterRender   func()
	Undo          func(name string)
	Redo          func(name string)
	Resize        func(width, height int)
}

// State is the lifecycle state of a registered plugin.
type State int32

const (
	// Unregistered means the plugin is not known to the registry.
	Unregistered State = iota

	// Installing means Install is currently running.
	Installing

	// Installed means the plugin is fully registered.
	Installed

	// Uninstalling means Uninstall is currently running.
	Uninstalling
)

func (st State) String() string {
	switch st {
	case Installing:
		return "installing"
	case Installed:
		return "installed"
	case Uninstalling:
		return "uninstalling"
	default:
		return "unregistered"
	}
}
