// Copyright (c) 2026, Scene Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plugin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "sceneforge.org/forge/plugin"
	"sceneforge.org/forge/scene"
)

func TestRegisterDuplicateID(t *testing.T) {
	rg := NewRegistry(nil)
	p1 := &Plugin{ID: "tools", Version: "1.0.0",
		Panels: []Panel{{ID: "tools-panel", Title: "Tools"}}}
	require.NoError(t, rg.Register(p1))

	p2 := &Plugin{ID: "tools", Version: "2.0.0"}
	err := rg.Register(p2)
	assert.ErrorIs(t, err, ErrDuplicate)

	// the first plugin's extensions remain intact
	_, ok := rg.Panel("tools-panel")
	assert.True(t, ok)
	assert.Equal(t, Installed, rg.PluginState("tools"))
}

func TestDependencyLifecycle(t *testing.T) {
	rg := NewRegistry(nil)
	p1 := &Plugin{ID: "p1", Version: "1.0.0", Dependencies: []string{"p2"}}
	p2 := &Plugin{ID: "p2", Version: "1.0.0"}

	// registering p1 before its dependency fails fast
	err := rg.Register(p1)
	assert.ErrorIs(t, err, ErrDependency)
	assert.Equal(t, Unregistered, rg.PluginState("p1"))

	// p2 then p1 both succeed
	require.NoError(t, rg.Register(p2))
	require.NoError(t, rg.Register(p1))

	// p2 cannot be unregistered while p1 depends on it
	err = rg.Unregister("p2")
	assert.ErrorIs(t, err, ErrInUse)
	assert.Equal(t, Installed, rg.PluginState("p2"))

	// p1 then p2 both unregister cleanly
	require.NoError(t, rg.Unregister("p1"))
	require.NoError(t, rg.Unregister("p2"))
	assert.Equal(t, Unregistered, rg.PluginState("p2"))
}

func TestDependencyVersionConstraint(t *testing.T) {
	rg := NewRegistry(nil)
	require.NoError(t, rg.Register(&Plugin{ID: "base", Version: "1.2.0"}))

	err := rg.Register(&Plugin{ID: "needy", Version: "1.0.0", Dependencies: []string{"base@^2.0"}})
	assert.ErrorIs(t, err, ErrDependency)

	require.NoError(t, rg.Register(&Plugin{ID: "happy", Version: "1.0.0", Dependencies: []string{"base@^1.1"}}))
}

func TestInstallFailureRollsBack(t *testing.T) {
	rg := NewRegistry(nil)
	p := &Plugin{
		ID: "broken", Version: "0.1.0",
		Panels: []Panel{{ID: "broken-panel", Title: "Broken"}},
		Install: func(ctx *Context) error {
			ctx.RegisterMenuItem(MenuItem{ID: "broken-menu", Label: "Broken"})
			panic("install exploded")
		},
	}
	err := rg.Register(p)
	require.Error(t, err)
	assert.Equal(t, Unregistered, rg.PluginState("broken"))

	// nothing the plugin registered survives
	_, ok := rg.MenuItem("broken-menu")
	assert.False(t, ok)
	_, ok = rg.Panel("broken-panel")
	assert.False(t, ok)

	// the id is free again after the failed install
	require.NoError(t, rg.Register(&Plugin{ID: "broken", Version: "0.2.0"}))
}

func TestInstallContextExtensions(t *testing.T) {
	rg := NewRegistry(nil)
	p := &Plugin{
		ID: "ctx", Version: "1.0.0",
		Install: func(ctx *Context) error {
			ok := ctx.RegisterObjectType(ObjectType{ID: "water", Name: "Water",
				Create: func() *scene.Object { return scene.NewObject("water") }})
			assert.True(t, ok)
			ctx.RegisterShortcut(Shortcut{ID: "ctx-key", Key: "w"})
			return nil
		},
	}
	require.NoError(t, rg.Register(p))
	ot, ok := rg.ObjectType("water")
	require.True(t, ok)
	assert.Equal(t, scene.Type("water"), ot.Create().Type)

	require.NoError(t, rg.Unregister("ctx"))
	_, ok = rg.ObjectType("water")
	assert.False(t, ok)
	_, ok = rg.Shortcut("ctx-key")
	assert.False(t, ok)
}

func TestDuplicateExtensionNonDestructive(t *testing.T) {
	rg := NewRegistry(nil)
	require.NoError(t, rg.Register(&Plugin{ID: "one", Version: "1.0.0",
		ToolbarItems: []ToolbarItem{{ID: "snap", Tooltip: "first"}}}))
	require.NoError(t, rg.Register(&Plugin{ID: "two", Version: "1.0.0",
		ToolbarItems: []ToolbarItem{{ID: "snap", Tooltip: "second"}}}))

	// the existing entry wins; the duplicate is logged, not fatal
	ti, ok := rg.ToolbarItem("snap")
	require.True(t, ok)
	assert.Equal(t, "first", ti.Tooltip)
	assert.Equal(t, Installed, rg.PluginState("two"))
}

func TestObjectCreateChain(t *testing.T) {
	rg := NewRegistry(nil)
	var secondCalled bool
	require.NoError(t, rg.Register(&Plugin{ID: "tagger", Version: "1.0.0",
		Hooks: Hooks{ObjectCreate: func(ob *scene.Object) *scene.Object {
			if ob.UserData == nil {
				ob.UserData = map[string]any{}
			}
			ob.UserData["taggedBy"] = "tagger"
			return ob
		}}}))
	require.NoError(t, rg.Register(&Plugin{ID: "second", Version: "1.0.0",
		Hooks: Hooks{ObjectCreate: func(ob *scene.Object) *scene.Object {
			secondCalled = true
			return ob
		}}}))

	ob, vetoed := rg.ObjectCreate(scene.NewObject(scene.TypeMesh))
	require.False(t, vetoed)
	assert.Equal(t, "tagger", ob.UserData["taggedBy"])
	assert.True(t, secondCalled)
}

func TestObjectCreateVetoShortCircuits(t *testing.T) {
	rg := NewRegistry(nil)
	var laterCalled bool
	require.NoError(t, rg.Register(&Plugin{ID: "vetoer", Version: "1.0.0",
		Hooks: Hooks{ObjectCreate: func(ob *scene.Object) *scene.Object { return nil }}}))
	require.NoError(t, rg.Register(&Plugin{ID: "later", Version: "1.0.0",
		Hooks: Hooks{ObjectCreate: func(ob *scene.Object) *scene.Object {
			laterCalled = true
			return ob
		}}}))

	ob, vetoed := rg.ObjectCreate(scene.NewObject(scene.TypeMesh))
	assert.True(t, vetoed)
	assert.Nil(t, ob)
	// a later-registered plugin is never invoked once an earlier one vetoed
	assert.False(t, laterCalled)
}

func TestObjectDeleteFirstVetoWins(t *testing.T) {
	rg := NewRegistry(nil)
	var evaluated []string
	require.NoError(t, rg.Register(&Plugin{ID: "allow", Version: "1.0.0",
		Hooks: Hooks{ObjectDelete: func(id string) bool {
			evaluated = append(evaluated, "allow")
			return true
		}}}))
	require.NoError(t, rg.Register(&Plugin{ID: "deny", Version: "1.0.0",
		Hooks: Hooks{ObjectDelete: func(id string) bool {
			evaluated = append(evaluated, "deny")
			return id != "precious"
		}}}))
	require.NoError(t, rg.Register(&Plugin{ID: "after", Version: "1.0.0",
		Hooks: Hooks{ObjectDelete: func(id string) bool {
			evaluated = append(evaluated, "after")
			return true
		}}}))

	assert.False(t, rg.ObjectDelete("precious"))
	assert.Equal(t, []string{"allow", "deny"}, evaluated)

	evaluated = nil
	assert.True(t, rg.ObjectDelete("ordinary"))
	assert.Equal(t, []string{"allow", "deny", "after"}, evaluated)
}

func TestSceneSavePipeline(t *testing.T) {
	rg := NewRegistry(nil)
	require.NoError(t, rg.Register(&Plugin{ID: "strip", Version: "1.0.0",
		Hooks: Hooks{SceneSave: func(list []*scene.Object) []*scene.Object {
			var out []*scene.Object
			for _, ob := range list {
				if ob.Type != scene.TypeHelper {
					out = append(out, ob)
				}
			}
			return out
		}}}))
	require.NoError(t, rg.Register(&Plugin{ID: "count", Version: "1.0.0",
		Hooks: Hooks{SceneSave: func(list []*scene.Object) []*scene.Object {
			// sees the previous plugin's output as input
			assert.Len(t, list, 1)
			return list
		}}}))

	list := []*scene.Object{scene.NewObject(scene.TypeMesh), scene.NewObject(scene.TypeHelper)}
	out := rg.SceneSave(list)
	require.Len(t, out, 1)
	assert.Equal(t, scene.TypeMesh, out[0].Type)
}

func TestHookPanicIsolation(t *testing.T) {
	rg := NewRegistry(nil)
	var reached bool
	require.NoError(t, rg.Register(&Plugin{ID: "crashy", Version: "1.0.0",
		Hooks: Hooks{
			ObjectCreated: func(ob *scene.Object) { panic("boom") },
			ObjectCreate:  func(ob *scene.Object) *scene.Object { panic("boom") },
			ObjectDelete:  func(id string) bool { panic("boom") },
		}}))
	require.NoError(t, rg.Register(&Plugin{ID: "steady", Version: "1.0.0",
		Hooks: Hooks{ObjectCreated: func(ob *scene.Object) { reached = true }}}))

	// fire-and-forget: one plugin's panic does not starve the rest
	rg.ObjectCreated(scene.NewObject(scene.TypeMesh))
	assert.True(t, reached)

	// a panicking transform is skipped, not a veto
	ob, vetoed := rg.ObjectCreate(scene.NewObject(scene.TypeMesh))
	assert.False(t, vetoed)
	assert.NotNil(t, ob)
	assert.True(t, rg.ObjectDelete("x"))
}

func TestEventBusBetweenPlugins(t *testing.T) {
	rg := NewRegistry(nil)
	var got []any
	require.NoError(t, rg.Register(&Plugin{ID: "listener", Version: "1.0.0",
		Install: func(ctx *Context) error {
			ctx.On("measure:done", func(data any) { got = append(got, data) })
			return nil
		}}))
	require.NoError(t, rg.Register(&Plugin{ID: "emitter", Version: "1.0.0",
		Install: func(ctx *Context) error {
			ctx.Emit("measure:done", 42)
			return nil
		}}))
	assert.Equal(t, []any{42}, got)
}
