// Package luavm hosts user macro scripts written in Lua. Scripts
// define plain global functions; configuration binds those function
// names to layer slots, and the dispatcher invokes them through the
// macro.Macro adapter returned by VM.Macro. The VM exposes the host
// injection and query primitives to Lua under the names scripts have
// always used (inject_key, get_current_slot, ...), plus leveled log
// functions.
//
// The VM runs on the engine's event goroutine only; gopher-lua states
// are not goroutine-safe and none is needed here.
package luavm

import (
	"fmt"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/macrostorm/internal/host"
	"github.com/dshills/macrostorm/internal/input/key"
	"github.com/dshills/macrostorm/internal/macro"
)

// VM is a sandboxed Lua state with the macro API installed.
type VM struct {
	L   *lua.LState
	log zerolog.Logger

	hst host.Host

	// ctx is the context of the macro invocation currently executing,
	// nil between invocations. Injection calls outside an invocation
	// are script bugs and raise a Lua error.
	ctx *macro.Context
}

// New creates a VM bound to the given host.
func New(h host.Host, logger *zerolog.Logger) *VM {
	v := &VM{
		L:   lua.NewState(lua.Options{SkipOpenLibs: true}),
		hst: h,
	}
	if logger != nil {
		v.log = logger.With().Str("subsystem", "luavm").Logger()
	} else {
		v.log = zerolog.Nop()
	}

	v.openSafeLibs()
	v.registerAPI()

	return v
}

// Close releases the Lua state.
func (v *VM) Close() {
	v.L.Close()
}

// LoadFile runs a macro script file, defining its global functions.
func (v *VM) LoadFile(path string) error {
	if err := v.L.DoFile(path); err != nil {
		return fmt.Errorf("loading macro script %s: %w", path, err)
	}
	return nil
}

// LoadString runs macro script source, defining its global functions.
func (v *VM) LoadString(src string) error {
	if err := v.L.DoString(src); err != nil {
		return fmt.Errorf("loading macro source: %w", err)
	}
	return nil
}

// Macro resolves a global Lua function into an invocable macro.
// Resolution is by name at bind time so configuration errors surface
// during load, not on the first keypress.
func (v *VM) Macro(name string) (macro.Macro, error) {
	fn := v.L.GetGlobal(name)
	if fn.Type() == lua.LTNil {
		return nil, fmt.Errorf("macro function %q is not defined", name)
	}
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("macro %q is a %s, not a function", name, fn.Type())
	}

	return func(ctx *macro.Context) error {
		v.ctx = ctx
		defer func() { v.ctx = nil }()

		if err := v.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}); err != nil {
			return fmt.Errorf("macro %q: %w", name, err)
		}
		return nil
	}, nil
}

// openSafeLibs loads the base, table, string and math libraries and
// strips the loaders that would let a script reach the filesystem.
func (v *VM) openSafeLibs() {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		v.L.Push(v.L.NewFunction(lib.fn))
		v.L.Push(lua.LString(lib.name))
		v.L.Call(1, 0)
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		v.L.SetGlobal(name, lua.LNil)
	}
}

// invocationCtx returns the active invocation context or raises a Lua
// error for injection calls made outside a macro invocation.
func (v *VM) invocationCtx(L *lua.LState) *macro.Context {
	if v.ctx == nil {
		L.RaiseError("injection called outside a macro invocation")
		return nil
	}
	return v.ctx
}

// registerAPI installs the host primitives and log functions as Lua
// globals.
func (v *VM) registerAPI() {
	L := v.L

	L.SetGlobal("inject_key", L.NewFunction(func(L *lua.LState) int {
		ctx := v.invocationCtx(L)
		ctx.InjectKey(key.Code(L.CheckInt(1)), L.CheckBool(2))
		return 0
	}))

	L.SetGlobal("inject_key_with_delay", L.NewFunction(func(L *lua.LState) int {
		ctx := v.invocationCtx(L)
		if err := ctx.InjectKeyWithDelay(key.Code(L.CheckInt(1)), L.CheckBool(2), L.CheckInt(3)); err != nil {
			L.RaiseError("%s", err.Error())
		}
		return 0
	}))

	L.SetGlobal("inject_mouse_button", L.NewFunction(func(L *lua.LState) int {
		ctx := v.invocationCtx(L)
		ctx.InjectMouseButton(key.Button(L.CheckInt(1)), L.CheckBool(2))
		return 0
	}))

	L.SetGlobal("inject_mouse_wheel", L.NewFunction(func(L *lua.LState) int {
		ctx := v.invocationCtx(L)
		ctx.InjectMouseWheel(key.WheelDirection(L.CheckInt(1)))
		return 0
	}))

	L.SetGlobal("get_key_state", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(v.hst.KeyState(key.Index(L.CheckInt(1)))))
		return 1
	}))

	L.SetGlobal("get_current_slot", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(v.hst.ActiveSlot()))
		return 1
	}))

	L.SetGlobal("get_current_profile", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(v.hst.ActiveProfile()))
		return 1
	}))

	L.SetGlobal("get_brightness", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(v.hst.Brightness()))
		return 1
	}))

	L.SetGlobal("set_brightness", L.NewFunction(func(L *lua.LState) int {
		v.hst.SetBrightness(L.CheckInt(1))
		return 0
	}))

	L.SetGlobal("get_audio_volume", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(v.hst.AudioVolume()))
		return 1
	}))

	for name, level := range map[string]zerolog.Level{
		"trace": zerolog.TraceLevel,
		"debug": zerolog.DebugLevel,
		"info":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
	} {
		lvl := level
		L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
			v.log.WithLevel(lvl).Msg(L.CheckString(1))
			return 0
		}))
	}
}
