// Package engine is the event-driven core. It owns every piece of
// mutable state (modifier tracker, layer store, overlay machine,
// process switcher, Lua macro VM) and implements the inbound callbacks
// the host drives: key and mouse events, vendor HID events, ticks and
// process lifecycle notifications.
//
// The engine is single-threaded by contract. The host delivers events
// one at a time in arrival order; handlers run synchronously and never
// block. Dispatch handlers return true when the original event was
// consumed, false when the host should deliver it unchanged.
package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dshills/macrostorm/internal/config"
	"github.com/dshills/macrostorm/internal/host"
	"github.com/dshills/macrostorm/internal/input/key"
	"github.com/dshills/macrostorm/internal/input/modifier"
	"github.com/dshills/macrostorm/internal/layer"
	"github.com/dshills/macrostorm/internal/macro"
	"github.com/dshills/macrostorm/internal/macro/luavm"
	"github.com/dshills/macrostorm/internal/overlay"
	"github.com/dshills/macrostorm/internal/procmon"
	"github.com/dshills/macrostorm/internal/store"
)

// gameModeKey persists the game-mode flag across daemon restarts.
const gameModeKey = "engine.game-mode"

// Engine wires the subsystems together and runs the dispatch priority
// order.
type Engine struct {
	log zerolog.Logger

	hst   host.Host
	store store.Transient

	mods   *modifier.State
	layers *layer.Store
	hud    *overlay.Machine
	proc   *procmon.Switcher
	vm     *luavm.VM

	// Chord tables: key index to 1-based layer / slot number.
	layerKeys map[key.Index]int
	slotKeys  map[key.Index]int
}

// New builds an engine from configuration. Macro scripts are loaded
// separately with LoadMacroFile or LoadMacroSource, followed by
// BindLayers.
func New(cfg *config.Config, h host.Host, st store.Transient, logger *zerolog.Logger) (*Engine, error) {
	e := &Engine{
		hst:       h,
		store:     st,
		layerKeys: make(map[key.Index]int),
		slotKeys:  make(map[key.Index]int),
	}
	if logger != nil {
		e.log = logger.With().Str("subsystem", "engine").Logger()
	} else {
		e.log = zerolog.Nop()
	}

	mc, err := cfg.ModifierConfig()
	if err != nil {
		return nil, fmt.Errorf("modifier wiring: %w", err)
	}
	e.mods, err = modifier.New(mc, logger)
	if err != nil {
		return nil, fmt.Errorf("modifier wiring: %w", err)
	}

	e.layers = layer.NewStore()
	for idx, code := range cfg.Level1Table() {
		e.layers.Level1()[idx] = code
	}
	for from, to := range cfg.MouseRemapTable() {
		e.layers.MouseRemap()[from] = to
	}

	for i, idx := range config.DefaultLayerSelectKeys() {
		e.layerKeys[idx] = i + 1
	}
	for i, idx := range config.DefaultSlotKeys() {
		e.slotKeys[idx] = i + 1
	}

	e.hud = overlay.NewMachine(cfg.Overlay.MaxTTL, logger)

	e.proc = procmon.New(h, st, logger)
	e.proc.SetMappings(cfg.ProcessTargets())

	e.vm = luavm.New(h, logger)

	return e, nil
}

// Close releases the engine's Lua state.
func (e *Engine) Close() {
	e.vm.Close()
}

// Layers exposes the layer store for binding and inspection.
func (e *Engine) Layers() *layer.Store { return e.layers }

// Modifiers exposes the modifier tracker for inspection.
func (e *Engine) Modifiers() *modifier.State { return e.mods }

// Overlay exposes the overlay machine for inspection.
func (e *Engine) Overlay() *overlay.Machine { return e.hud }

// LoadMacroFile loads a Lua macro script file into the VM.
func (e *Engine) LoadMacroFile(path string) error {
	return e.vm.LoadFile(path)
}

// LoadMacroSource loads Lua macro source into the VM.
func (e *Engine) LoadMacroSource(src string) error {
	return e.vm.LoadString(src)
}

// BindLayers resolves the configuration's layer bindings against the
// loaded macro scripts. Each unresolvable binding yields one error and
// is skipped; everything else binds.
func (e *Engine) BindLayers(cfg *config.Config) []error {
	var errs []error

	for _, lc := range cfg.Layers {
		l, err := e.layers.Layer(lc.Index)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		for _, r := range lc.Remap {
			if !key.Index(r.Index).Valid() {
				errs = append(errs, fmt.Errorf("layer %d: remap index %d out of range", lc.Index, r.Index))
				continue
			}
			l.SetRemap(key.Index(r.Index), key.Code(r.Code))
		}

		for _, b := range lc.KeyMacros {
			m, err := e.vm.Macro(b.Fn)
			if err != nil {
				errs = append(errs, fmt.Errorf("layer %d key %d: %w", lc.Index, b.Index, err))
				continue
			}
			l.BindKeyMacro(key.Index(b.Index), m)
		}
		for _, b := range lc.ButtonDownMacro {
			m, err := e.vm.Macro(b.Fn)
			if err != nil {
				errs = append(errs, fmt.Errorf("layer %d button %d down: %w", lc.Index, b.Button, err))
				continue
			}
			l.BindButtonDownMacro(key.Button(b.Button), m)
		}
		for _, b := range lc.ButtonUpMacro {
			m, err := e.vm.Macro(b.Fn)
			if err != nil {
				errs = append(errs, fmt.Errorf("layer %d button %d up: %w", lc.Index, b.Button, err))
				continue
			}
			l.BindButtonUpMacro(key.Button(b.Button), m)
		}
		for _, b := range lc.WheelMacros {
			m, err := e.vm.Macro(b.Fn)
			if err != nil {
				errs = append(errs, fmt.Errorf("layer %d wheel %d: %w", lc.Index, b.Direction, err))
				continue
			}
			l.BindWheelMacro(key.WheelDirection(b.Direction), m)
		}
		for _, b := range lc.DPIMacros {
			m, err := e.vm.Macro(b.Fn)
			if err != nil {
				errs = append(errs, fmt.Errorf("layer %d dpi %d: %w", lc.Index, b.Stage, err))
				continue
			}
			l.BindDPIMacro(b.Stage, m)
		}
	}

	return errs
}

// OnStartup initializes runtime state: modifier state is seeded from
// live hardware, the persisted game-mode flag and the process save
// stack are restored from the transient store.
func (e *Engine) OnStartup() {
	e.mods.Init(e.hst)
	if on, ok := e.store.LoadBool(gameModeKey); ok {
		e.mods.SetGameMode(on)
	}
	e.proc.Load()
	e.log.Info().
		Bool("game_mode", e.mods.GameMode()).
		Int("active_layer", e.layers.ActiveIndex()).
		Msg("engine started")
}

// OnProcessExec handles a process start notification.
func (e *Engine) OnProcessExec(pid int, fileName string) error {
	return e.proc.OnExec(pid, fileName)
}

// OnProcessExit handles a process exit notification.
func (e *Engine) OnProcessExit(pid int, fileName string) error {
	return e.proc.OnExit(pid, fileName)
}

// System event codes delivered through OnSystemEvent.
const (
	SystemEventProcessExec = 0
	SystemEventProcessExit = 1
)

// OnSystemEvent routes a generic system notification. Unknown codes
// are ignored.
func (e *Engine) OnSystemEvent(code int, pid int, fileName string) error {
	switch code {
	case SystemEventProcessExec:
		return e.OnProcessExec(pid, fileName)
	case SystemEventProcessExit:
		return e.OnProcessExit(pid, fileName)
	default:
		e.log.Debug().Int("code", code).Msg("ignoring unknown system event")
		return nil
	}
}

// runMacro invokes a bound macro with a fresh injection context.
// Macro failures are logged, never retried; the triggering event stays
// consumed either way.
func (e *Engine) runMacro(trigger string, m macro.Macro) {
	if err := m(macro.NewContext(e.hst)); err != nil {
		e.log.Error().Err(err).Str("trigger", trigger).Msg("macro failed")
	}
}

// easyShiftActive reports whether Easy-Shift dispatch applies: game
// mode on and the Caps Lock key held.
func (e *Engine) easyShiftActive() bool {
	return e.mods.GameMode() && e.mods.EasyShiftHeld()
}
