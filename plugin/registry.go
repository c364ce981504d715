// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plugin

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/semver/v3"
	"sceneforge.org/forge/base/errors"
	"sceneforge.org/forge/base/keylist"
	"sceneforge.org/forge/events"
	"sceneforge.org/forge/scene"
)

// Registry errors.
var (
	// ErrDuplicate indicates a plugin id that is already registered.
	ErrDuplicate = errors.New("plugin: id already registered")

	// ErrDependency indicates a missing or unsatisfied plugin dependency.
	ErrDependency = errors.New("plugin: unsatisfied dependency")

	// ErrInUse indicates an uninstall refused because another installed
	// plugin depends on this one.
	ErrInUse = errors.New("plugin: required by another installed plugin")

	// ErrNotFound indicates an unknown plugin id.
	ErrNotFound = errors.New("plugin: not registered")
)

// record is the registry's bookkeeping for one plugin.
type record struct {
	plugin *Plugin
	state  State
	// ids of extensions this plugin registered, per collection,
	// for transactional rollback and uninstall cleanup
	owned map[collection][]string
}

type collection int

const (
	colObjectTypes collection = iota
	colPanels
	colMenuItems
	colShortcuts
	colToolbarItems
)

type entry[T any] struct {
	val   T
	owner string
}

// Registry manages plugin registration, the five identifier-keyed
// extension collections, and hook dispatch. Construct one explicitly at
// application startup with [NewRegistry] and pass it by reference to
// all consumers; there is no ambient global instance.
type Registry struct {
	plugins      keylist.List[string, *record]
	objectTypes  keylist.List[string, entry[ObjectType]]
	panels       keylist.List[string, entry[Panel]]
	menuItems    keylist.List[string, entry[MenuItem]]
	shortcuts    keylist.List[string, entry[Shortcut]]
	toolbarItems keylist.List[string, entry[ToolbarItem]]

	bus *events.Bus

	// Scene provides plugin contexts read/write access to the live
	// scene state; wired by the application.
	Scene func() *scene.Scene

	// Notify surfaces a message to the user; wired by the application,
	// defaulting to a log line.
	Notify func(message string)

	// Confirm asks the user a yes/no question; wired by the
	// application, defaulting to yes.
	Confirm func(message string) bool
}

// NewRegistry returns a new registry publishing on the given event bus
// (a nil bus gets a private one).
func NewRegistry(bus *events.Bus) *Registry {
	if bus == nil {
		bus = events.NewBus()
	}
	return &Registry{
		bus:     bus,
		Notify:  func(message string) { slog.Info("plugin notify", "message", message) },
		Confirm: func(message string) bool { return true },
	}
}

// Bus returns the shared event bus.
func (rg *Registry) Bus() *events.Bus {
	return rg.bus
}

// PluginState returns the lifecycle state of the given plugin id,
// [Unregistered] for unknown ids.
func (rg *Registry) PluginState(id string) State {
	if rec, ok := rg.plugins.AtTry(id); ok {
		return rec.state
	}
	return Unregistered
}

// Plugins returns the installed plugins in registration order.
func (rg *Registry) Plugins() []*Plugin {
	ps := make([]*Plugin, 0, rg.plugins.Len())
	for _, rec := range rg.plugins.Values {
		if rec.state == Installed {
			ps = append(ps, rec.plugin)
		}
	}
	return ps
}

// Register installs the given plugin: dependency ids are checked before
// any side effect, the Install hook is called with a capability
// context, and the declared extensions are registered. Any error or
// panic during install aborts registration transactionally: extensions
// the plugin registered through its context are rolled back and the
// plugin ends unregistered.
func (rg *Registry) Register(p *Plugin) error {
	if p == nil || p.ID == "" {
		return errors.New("plugin: missing id")
	}
	if rg.plugins.Has(p.ID) {
		return fmt.Errorf("%w: %q", ErrDuplicate, p.ID)
	}
	// fail fast, before any side effect
	for _, dep := range p.Dependencies {
		if err := rg.checkDependency(p.ID, dep); err != nil {
			return err
		}
	}
	rec := &record{plugin: p, state: Installing, owned: map[collection][]string{}}
	errors.Must(rg.plugins.Add(p.ID, rec))
	if err := rg.install(rec); err != nil {
		rg.removeOwned(rec)
		rg.plugins.Delete(p.ID)
		return fmt.Errorf("plugin: install of %q failed: %w", p.ID, err)
	}
	rec.state = Installed
	slog.Info("plugin installed", "id", p.ID, "version", p.Version)
	return nil
}

func (rg *Registry) install(rec *record) (err error) {
	p := rec.plugin
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("install panicked: %v", r)
		}
	}()
	if p.Install != nil {
		if err := p.Install(rg.newContext(rec)); err != nil {
			return err
		}
	}
	// declared extensions register after a successful install; a
	// duplicate id is logged and skipped, the existing entry wins
	for _, ot := range p.ObjectTypes {
		addEntry(&rg.objectTypes, colObjectTypes, rec, ot.ID, ot)
	}
	for _, pn := range p.Panels {
		addEntry(&rg.panels, colPanels, rec, pn.ID, pn)
	}
	for _, mi := range p.MenuItems {
		addEntry(&rg.menuItems, colMenuItems, rec, mi.ID, mi)
	}
	for _, sh := range p.Shortcuts {
		addEntry(&rg.shortcuts, colShortcuts, rec, sh.ID, sh)
	}
	for _, ti := range p.ToolbarItems {
		addEntry(&rg.toolbarItems, colToolbarItems, rec, ti.ID, ti)
	}
	return nil
}

// checkDependency parses one dependency declaration, "id" or
// "id@constraint", and verifies it against the installed plugins.
func (rg *Registry) checkDependency(pluginID, dep string) error {
	depID, constraint, hasConstraint := strings.Cut(dep, "@")
	rec, ok := rg.plugins.AtTry(depID)
	if !ok || rec.state != Installed {
		return fmt.Errorf("%w: %q requires %q", ErrDependency, pluginID, depID)
	}
	if !hasConstraint {
		return nil
	}
	con, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("%w: %q has bad constraint %q: %v", ErrDependency, pluginID, dep, err)
	}
	ver, err := semver.NewVersion(rec.plugin.Version)
	if err != nil {
		return fmt.Errorf("%w: installed %q has bad version %q: %v", ErrDependency, depID, rec.plugin.Version, err)
	}
	if !con.Check(ver) {
		return fmt.Errorf("%w: %q requires %q, installed version is %q", ErrDependency, pluginID, dep, rec.plugin.Version)
	}
	return nil
}

// Unregister uninstalls the plugin with the given id, removing all of
// its registered extensions. It is refused while another installed
// plugin lists this one as a dependency. An error or panic from the
// Uninstall hook is logged and does not prevent removal.
func (rg *Registry) Unregister(id string) error {
	rec, ok := rg.plugins.AtTry(id)
	if !ok || rec.state != Installed {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	for _, other := range rg.plugins.Values {
		if other == rec || other.state != Installed {
			continue
		}
		for _, dep := range other.plugin.Dependencies {
			depID, _, _ := strings.Cut(dep, "@")
			if depID == id {
				return fmt.Errorf("%w: %q is required by %q", ErrInUse, id, other.plugin.ID)
			}
		}
	}
	rec.state = Uninstalling
	rg.runUninstall(rec)
	rg.removeOwned(rec)
	rg.plugins.Delete(id)
	slog.Info("plugin uninstalled", "id", id)
	return nil
}

func (rg *Registry) runUninstall(rec *record) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("plugin: uninstall panicked", "id", rec.plugin.ID, "panic", r)
		}
	}()
	if rec.plugin.Uninstall != nil {
		if err := rec.plugin.Uninstall(); err != nil {
			slog.Error("plugin: uninstall failed", "id", rec.plugin.ID, "err", err)
		}
	}
}

func (rg *Registry) removeOwned(rec *record) {
	for _, id := range rec.owned[colObjectTypes] {
		rg.objectTypes.Delete(id)
	}
	for _, id := range rec.owned[colPanels] {
		rg.panels.Delete(id)
	}
	for _, id := range rec.owned[colMenuItems] {
		rg.menuItems.Delete(id)
	}
	for _, id := range rec.owned[colShortcuts] {
		rg.shortcuts.Delete(id)
	}
	for _, id := range rec.owned[colToolbarItems] {
		rg.toolbarItems.Delete(id)
	}
	rec.owned = map[collection][]string{}
}

// addEntry registers one extension under the given record, rejecting
// duplicate ids non-destructively: the existing entry wins and the
// rejection is logged, not fatal.
func addEntry[T any](kl *keylist.List[string, entry[T]], col collection, rec *record, id string, val T) bool {
	if id == "" {
		slog.Warn("plugin: dropping extension with empty id", "plugin", rec.plugin.ID)
		return false
	}
	if err := kl.Add(id, entry[T]{val: val, owner: rec.plugin.ID}); err != nil {
		slog.Warn("plugin: duplicate extension id", "plugin", rec.plugin.ID, "id", id)
		return false
	}
	rec.owned[col] = append(rec.owned[col], id)
	return true
}

// ObjectTypes returns all registered object types in registration order.
func (rg *Registry) ObjectTypes() []ObjectType { return values(&rg.objectTypes) }

// ObjectType returns the registered object type with the given id.
func (rg *Registry) ObjectType(id string) (ObjectType, bool) { return at(&rg.objectTypes, id) }

// Panels returns all registered panels in registration order.
func (rg *Registry) Panels() []Panel { return values(&rg.panels) }

// Panel returns the registered panel with the given id.
func (rg *Registry) Panel(id string) (Panel, bool) { return at(&rg.panels, id) }

// MenuItems returns all registered menu items in registration order.
func (rg *Registry) MenuItems() []MenuItem { return values(&rg.menuItems) }

// MenuItem returns the registered menu item with the given id.
func (rg *Registry) MenuItem(id string) (MenuItem, bool) { return at(&rg.menuItems, id) }

// Shortcuts returns all registered shortcuts in registration order.
func (rg *Registry) Shortcuts() []Shortcut { return values(&rg.shortcuts) }

// Shortcut returns the registered shortcut with the given id.
func (rg *Registry) Shortcut(id string) (Shortcut, bool) { return at(&rg.shortcuts, id) }

// ToolbarItems returns all registered toolbar items in registration order.
func (rg *Registry) ToolbarItems() []ToolbarItem { return values(&rg.toolbarItems) }

// ToolbarItem returns the registered toolbar item with the given id.
func (rg *Registry) ToolbarItem(id string) (ToolbarItem, bool) { return at(&rg.toolbarItems, id) }

func values[T any](kl *keylist.List[string, entry[T]]) []T {
	vs := make([]T, len(kl.Values))
	for i, e := range kl.Values {
		vs[i] = e.val
	}
	return vs
}

func at[T any](kl *keylist.List[string, entry[T]], id string) (T, bool) {
	e, ok := kl.AtTry(id)
	return e.val, ok
}
