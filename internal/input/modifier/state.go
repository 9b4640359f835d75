// Package modifier tracks the live pressed state of the designated
// modifier keys, including vendor HID-only keys (FN) and the
// configurable composite modifier used by slot and media chords. It
// also carries the persisted game-mode flag that gates the whole
// Easy-Shift subsystem.
package modifier

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dshills/macrostorm/internal/host"
	"github.com/dshills/macrostorm/internal/input/hid"
	"github.com/dshills/macrostorm/internal/input/key"
)

// Config wires modifiers to the two places their events arrive from:
// ordinary key indexes and vendor HID codes. The composite modifier
// must be registered on both layers or its chords silently never
// match, so New validates that invariant up front.
type Config struct {
	// Indexes maps each tracked modifier to its key index. ModFN has
	// no index; it is reported only through HID events.
	Indexes map[key.Modifier]key.Index

	// Composite selects which right-hand modifier doubles as the
	// composite modifier for slot and media chords.
	Composite key.Modifier

	// CompositeHID is the vendor HID code of the composite modifier.
	CompositeHID hid.Code
}

// State is the live modifier tracker. It is owned by the engine and
// mutated synchronously inside event callbacks; it needs no locking.
type State struct {
	log zerolog.Logger

	composite key.Modifier

	byIndex map[key.Index]key.Modifier
	byHID   map[hid.Code]key.Modifier

	pressed  map[key.Modifier]bool
	gameMode bool
}

// New creates a tracker from the given wiring.
func New(cfg Config, logger *zerolog.Logger) (*State, error) {
	if _, ok := cfg.Indexes[cfg.Composite]; !ok {
		return nil, fmt.Errorf("composite modifier %s has no key index registered", cfg.Composite)
	}
	if cfg.CompositeHID == 0 {
		return nil, fmt.Errorf("composite modifier %s has no HID code registered", cfg.Composite)
	}

	s := &State{
		composite: cfg.Composite,
		byIndex:   make(map[key.Index]key.Modifier, len(cfg.Indexes)),
		byHID:     make(map[hid.Code]key.Modifier, 2),
		pressed:   make(map[key.Modifier]bool),
	}
	if logger != nil {
		s.log = logger.With().Str("subsystem", "modifier").Logger()
	} else {
		s.log = zerolog.Nop()
	}

	for m, idx := range cfg.Indexes {
		s.byIndex[idx] = m
	}
	s.byHID[hid.CodeFN] = key.ModFN
	s.byHID[cfg.CompositeHID] = cfg.Composite

	return s, nil
}

// Init seeds the tracker from live hardware state so modifiers held
// across a daemon restart are not lost.
func (s *State) Init(r host.StateReader) {
	for idx, m := range s.byIndex {
		s.pressed[m] = r.KeyState(idx)
	}
}

// HandleKeyDown updates the tracker for a key press. It returns true
// when the index belongs to a tracked modifier.
func (s *State) HandleKeyDown(index key.Index) bool {
	m, ok := s.byIndex[index]
	if !ok {
		return false
	}
	s.pressed[m] = true
	return true
}

// HandleKeyUp updates the tracker for a key release. It returns true
// when the index belongs to a tracked modifier.
func (s *State) HandleKeyUp(index key.Index) bool {
	m, ok := s.byIndex[index]
	if !ok {
		return false
	}
	s.pressed[m] = false
	return true
}

// HandleHIDKey updates the tracker for a vendor HID key report. It
// returns true when the code belongs to a tracked modifier.
func (s *State) HandleHIDKey(code hid.Code, pressed bool) bool {
	m, ok := s.byHID[code]
	if !ok {
		return false
	}
	s.pressed[m] = pressed
	return true
}

// Pressed reports whether a modifier is currently held.
func (s *State) Pressed(m key.Modifier) bool {
	return s.pressed[m]
}

// EasyShiftHeld reports whether the Caps Lock (Easy Shift) key is
// held. Callers still gate on GameMode; Easy Shift has no meaning
// outside it.
func (s *State) EasyShiftHeld() bool {
	return s.pressed[key.ModCapsLock]
}

// FNHeld reports whether the FN key is held.
func (s *State) FNHeld() bool {
	return s.pressed[key.ModFN]
}

// CompositeHeld reports whether the configured composite modifier is
// held.
func (s *State) CompositeHeld() bool {
	return s.pressed[s.composite]
}

// Composite returns the modifier serving the composite role.
func (s *State) Composite() key.Modifier {
	return s.composite
}

// GameMode reports whether game mode is enabled.
func (s *State) GameMode() bool {
	return s.gameMode
}

// SetGameMode sets the game-mode flag, typically from persisted state
// at startup.
func (s *State) SetGameMode(on bool) {
	s.gameMode = on
}

// ToggleGameMode flips game mode if FN is held and returns the new
// value plus whether the toggle was applied. The FN gate is the
// firmware contract: the toggle key only exists as an FN chord.
func (s *State) ToggleGameMode() (bool, bool) {
	if !s.pressed[key.ModFN] {
		return s.gameMode, false
	}
	s.gameMode = !s.gameMode
	s.log.Info().Bool("game_mode", s.gameMode).Msg("game mode toggled")
	return s.gameMode, true
}
