// Package layer holds the remap and macro binding tables: one flat
// level-1 remap table, one shared mouse button remap table, and six
// Easy-Shift layers that each own a remap table plus macro tables for
// key-down, mouse-button-down, mouse-button-up, mouse-wheel and
// mouse-DPI events. Tables are built once from configuration and are
// immutable afterwards; only the active layer selection changes at
// runtime.
package layer

import (
	"github.com/dshills/macrostorm/internal/input/key"
	"github.com/dshills/macrostorm/internal/macro"
)

// NumLayers is the number of Easy-Shift layers.
const NumLayers = 6

// RemapTable maps a key index to the code injected in its place.
type RemapTable map[key.Index]key.Code

// Lookup returns the mapped code for index.
func (t RemapTable) Lookup(index key.Index) (key.Code, bool) {
	c, ok := t[index]
	return c, ok
}

// ButtonRemapTable maps a mouse button to the button injected in its
// place.
type ButtonRemapTable map[key.Button]key.Button

// Lookup returns the mapped button.
func (t ButtonRemapTable) Lookup(b key.Button) (key.Button, bool) {
	m, ok := t[b]
	return m, ok
}

// Layer is one Easy-Shift layer. A nil macro table entry means no
// binding; lookups on unbound indexes are silent misses.
type Layer struct {
	index int

	remap RemapTable

	keyMacros    map[key.Index]macro.Macro
	buttonDown   map[key.Button]macro.Macro
	buttonUp     map[key.Button]macro.Macro
	wheelMacros  map[key.WheelDirection]macro.Macro
	dpiMacros    map[int]macro.Macro
}

// NewLayer creates an empty layer with the given 1-based index.
func NewLayer(index int) *Layer {
	return &Layer{
		index:       index,
		remap:       make(RemapTable),
		keyMacros:   make(map[key.Index]macro.Macro),
		buttonDown:  make(map[key.Button]macro.Macro),
		buttonUp:    make(map[key.Button]macro.Macro),
		wheelMacros: make(map[key.WheelDirection]macro.Macro),
		dpiMacros:   make(map[int]macro.Macro),
	}
}

// Index returns the 1-based layer index.
func (l *Layer) Index() int { return l.index }

// SetRemap binds a key remap in this layer.
func (l *Layer) SetRemap(index key.Index, code key.Code) {
	l.remap[index] = code
}

// Remap returns the layer's remapped code for index.
func (l *Layer) Remap(index key.Index) (key.Code, bool) {
	return l.remap.Lookup(index)
}

// BindKeyMacro binds a macro to a key-down event.
func (l *Layer) BindKeyMacro(index key.Index, m macro.Macro) {
	l.keyMacros[index] = m
}

// KeyMacro returns the macro bound to a key-down event.
func (l *Layer) KeyMacro(index key.Index) (macro.Macro, bool) {
	m, ok := l.keyMacros[index]
	return m, ok
}

// BindButtonDownMacro binds a macro to a mouse-button-down event.
func (l *Layer) BindButtonDownMacro(b key.Button, m macro.Macro) {
	l.buttonDown[b] = m
}

// ButtonDownMacro returns the macro bound to a mouse-button-down event.
func (l *Layer) ButtonDownMacro(b key.Button) (macro.Macro, bool) {
	m, ok := l.buttonDown[b]
	return m, ok
}

// BindButtonUpMacro binds a macro to a mouse-button-up event.
func (l *Layer) BindButtonUpMacro(b key.Button, m macro.Macro) {
	l.buttonUp[b] = m
}

// ButtonUpMacro returns the macro bound to a mouse-button-up event.
func (l *Layer) ButtonUpMacro(b key.Button) (macro.Macro, bool) {
	m, ok := l.buttonUp[b]
	return m, ok
}

// BindWheelMacro binds a macro to a wheel direction.
func (l *Layer) BindWheelMacro(d key.WheelDirection, m macro.Macro) {
	l.wheelMacros[d] = m
}

// WheelMacro returns the macro bound to a wheel direction.
func (l *Layer) WheelMacro(d key.WheelDirection) (macro.Macro, bool) {
	m, ok := l.wheelMacros[d]
	return m, ok
}

// BindDPIMacro binds a macro to a DPI stage.
func (l *Layer) BindDPIMacro(stage int, m macro.Macro) {
	l.dpiMacros[stage] = m
}

// DPIMacro returns the macro bound to a DPI stage.
func (l *Layer) DPIMacro(stage int) (macro.Macro, bool) {
	m, ok := l.dpiMacros[stage]
	return m, ok
}
