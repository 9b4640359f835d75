// Package config loads the daemon's TOML configuration: the composite
// modifier choice, macro script path, overlay timing, the flat level-1
// remap table, the shared mouse remap table, process-to-target
// mappings, and the per-layer remap and macro bindings.
//
// Validation is per item. One malformed mapping or binding degrades
// only itself; Validate collects the individual errors and the engine
// skips the offenders while the rest of the configuration loads.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/macrostorm/internal/input/key"
	"github.com/dshills/macrostorm/internal/input/modifier"
	"github.com/dshills/macrostorm/internal/layer"
	"github.com/dshills/macrostorm/internal/overlay"
	"github.com/dshills/macrostorm/internal/procmon"
)

// Config is the root of the TOML schema.
type Config struct {
	Engine     EngineConfig       `toml:"engine"`
	Overlay    OverlayConfig      `toml:"overlay"`
	Level1     []RemapEntry       `toml:"level1"`
	MouseRemap []ButtonRemapEntry `toml:"mouse-remap"`
	Mappings   []ProcessMapping   `toml:"mapping"`
	Layers     []LayerConfig      `toml:"layer"`
}

// EngineConfig holds top-level engine settings.
type EngineConfig struct {
	// CompositeModifier names the right-hand modifier that doubles as
	// the slot/media chord modifier: right-menu, right-alt, right-shift
	// or right-ctrl.
	CompositeModifier string `toml:"composite-modifier"`

	// MacroPath is the Lua macro script defining the functions layer
	// bindings refer to by name.
	MacroPath string `toml:"macro-path"`
}

// OverlayConfig holds HUD overlay settings.
type OverlayConfig struct {
	// MaxTTL is the overlay lifetime in ticks.
	MaxTTL int `toml:"max-ttl"`
}

// RemapEntry is one key remap: press index, inject code.
type RemapEntry struct {
	Index uint8  `toml:"index"`
	Code  uint16 `toml:"code"`
}

// ButtonRemapEntry is one mouse button remap.
type ButtonRemapEntry struct {
	Button uint8 `toml:"button"`
	To     uint8 `toml:"to"`
}

// ProcessMapping maps an executable basename to exactly one of a
// profile path or a slot index.
type ProcessMapping struct {
	Exec    string `toml:"exec"`
	Profile string `toml:"profile"`
	Slot    int    `toml:"slot"`
}

// LayerConfig is one Easy-Shift layer's bindings. Fn fields name Lua
// functions from the macro script.
type LayerConfig struct {
	Index           int                  `toml:"index"`
	Remap           []RemapEntry         `toml:"remap"`
	KeyMacros       []KeyMacroBinding    `toml:"key-macro"`
	ButtonDownMacro []ButtonMacroBinding `toml:"button-macro-down"`
	ButtonUpMacro   []ButtonMacroBinding `toml:"button-macro-up"`
	WheelMacros     []WheelMacroBinding  `toml:"wheel-macro"`
	DPIMacros       []DPIMacroBinding    `toml:"dpi-macro"`
}

// KeyMacroBinding binds a Lua function to a key-down event.
type KeyMacroBinding struct {
	Index uint8  `toml:"index"`
	Fn    string `toml:"fn"`
}

// ButtonMacroBinding binds a Lua function to a mouse button event.
type ButtonMacroBinding struct {
	Button uint8  `toml:"button"`
	Fn     string `toml:"fn"`
}

// WheelMacroBinding binds a Lua function to a wheel direction
// (1 = up, -1 = down).
type WheelMacroBinding struct {
	Direction int    `toml:"direction"`
	Fn        string `toml:"fn"`
}

// DPIMacroBinding binds a Lua function to a mouse DPI stage.
type DPIMacroBinding struct {
	Stage int    `toml:"stage"`
	Fn    string `toml:"fn"`
}

// ItemError is a validation failure scoped to one configuration item.
// The rest of the configuration stays usable.
type ItemError struct {
	Section string // e.g. "mapping", "layer", "level1"
	Item    string // identifies the offending entry
	Reason  string
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Section, e.Item, e.Reason)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			CompositeModifier: "right-menu",
			MacroPath:         "macros.lua",
		},
		Overlay: OverlayConfig{MaxTTL: overlay.DefaultMaxTTL},
	}
}

// Load reads and parses a TOML configuration file, applying defaults
// for absent sections. Parse errors are fatal; call Validate for the
// per-item pass.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses TOML configuration bytes over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Engine.CompositeModifier == "" {
		cfg.Engine.CompositeModifier = "right-menu"
	}
	if cfg.Overlay.MaxTTL <= 0 {
		cfg.Overlay.MaxTTL = overlay.DefaultMaxTTL
	}
	return cfg, nil
}

// Validate checks every item and returns one error per invalid item.
// An empty slice means the configuration is fully valid.
func (c *Config) Validate() []error {
	var errs []error

	if _, err := key.ParseCompositeModifier(c.Engine.CompositeModifier); err != nil {
		errs = append(errs, &ItemError{
			Section: "engine",
			Item:    "composite-modifier",
			Reason:  err.Error(),
		})
	}

	for i, r := range c.Level1 {
		if !key.Index(r.Index).Valid() {
			errs = append(errs, &ItemError{
				Section: "level1",
				Item:    fmt.Sprintf("#%d", i),
				Reason:  fmt.Sprintf("key index %d out of range", r.Index),
			})
		}
	}

	for _, m := range c.Mappings {
		if err := m.check(); err != nil {
			errs = append(errs, err)
		}
	}

	for i, l := range c.Layers {
		if l.Index < 1 || l.Index > layer.NumLayers {
			errs = append(errs, &ItemError{
				Section: "layer",
				Item:    fmt.Sprintf("#%d", i),
				Reason:  fmt.Sprintf("layer index %d out of range 1..%d", l.Index, layer.NumLayers),
			})
			continue
		}
		for j, r := range l.Remap {
			if !key.Index(r.Index).Valid() {
				errs = append(errs, &ItemError{
					Section: "layer",
					Item:    fmt.Sprintf("%d remap #%d", l.Index, j),
					Reason:  fmt.Sprintf("key index %d out of range", r.Index),
				})
			}
		}
		for j, b := range l.KeyMacros {
			if b.Fn == "" {
				errs = append(errs, &ItemError{
					Section: "layer",
					Item:    fmt.Sprintf("%d key-macro #%d", l.Index, j),
					Reason:  "fn is required",
				})
			}
		}
		for j, w := range l.WheelMacros {
			if w.Direction != int(key.WheelUp) && w.Direction != int(key.WheelDown) {
				errs = append(errs, &ItemError{
					Section: "layer",
					Item:    fmt.Sprintf("%d wheel-macro #%d", l.Index, j),
					Reason:  fmt.Sprintf("direction %d must be 1 or -1", w.Direction),
				})
			}
		}
	}

	return errs
}

// check validates a single process mapping.
func (m ProcessMapping) check() error {
	if m.Exec == "" {
		return &ItemError{Section: "mapping", Item: "(unnamed)", Reason: "exec is required"}
	}
	hasProfile := m.Profile != ""
	hasSlot := m.Slot != 0
	switch {
	case hasProfile && hasSlot:
		return &ItemError{Section: "mapping", Item: m.Exec, Reason: "profile and slot are mutually exclusive"}
	case !hasProfile && !hasSlot:
		return &ItemError{Section: "mapping", Item: m.Exec, Reason: "one of profile or slot is required"}
	case hasSlot && (m.Slot < 1 || m.Slot > NumSlots):
		return &ItemError{Section: "mapping", Item: m.Exec, Reason: fmt.Sprintf("slot %d out of range 1..%d", m.Slot, NumSlots)}
	}
	return nil
}

// Target converts a valid mapping to its switch target.
func (m ProcessMapping) Target() procmon.Target {
	if m.Profile != "" {
		return procmon.ProfileTarget(m.Profile)
	}
	return procmon.SlotTarget(m.Slot)
}

// ProcessTargets returns the exec-to-target table for all valid
// mappings, skipping invalid ones.
func (c *Config) ProcessTargets() map[string]procmon.Target {
	out := make(map[string]procmon.Target, len(c.Mappings))
	for _, m := range c.Mappings {
		if m.check() != nil {
			continue
		}
		out[m.Exec] = m.Target()
	}
	return out
}

// ModifierConfig resolves the modifier wiring: the default key indexes
// plus the configured composite modifier registered at both the
// key-index and HID layers.
func (c *Config) ModifierConfig() (modifier.Config, error) {
	composite, err := key.ParseCompositeModifier(c.Engine.CompositeModifier)
	if err != nil {
		return modifier.Config{}, err
	}
	return modifier.Config{
		Indexes:      DefaultModifierIndexes(),
		Composite:    composite,
		CompositeHID: CompositeHID(composite),
	}, nil
}

// Level1Table builds the flat level-1 remap table from valid entries.
func (c *Config) Level1Table() layer.RemapTable {
	t := make(layer.RemapTable, len(c.Level1))
	for _, r := range c.Level1 {
		if !key.Index(r.Index).Valid() {
			continue
		}
		t[key.Index(r.Index)] = key.Code(r.Code)
	}
	return t
}

// MouseRemapTable builds the shared mouse button remap table.
func (c *Config) MouseRemapTable() layer.ButtonRemapTable {
	t := make(layer.ButtonRemapTable, len(c.MouseRemap))
	for _, r := range c.MouseRemap {
		t[key.Button(r.Button)] = key.Button(r.To)
	}
	return t
}
