package config

import (
	"github.com/dshills/macrostorm/internal/input/hid"
	"github.com/dshills/macrostorm/internal/input/key"
)

// NumSlots is the number of quick-switch slots reachable through the
// composite-modifier chord.
const NumSlots = 4

// Key indexes follow the keyboard's column-major numbering, six keys
// per column starting at the top left.
const (
	indexCapsLock   key.Index = 4
	indexLeftShift  key.Index = 5
	indexLeftCtrl   key.Index = 6
	indexLeftAlt    key.Index = 17
	indexRightAlt   key.Index = 71
	indexRightShift key.Index = 83
	indexRightMenu  key.Index = 84
	indexRightCtrl  key.Index = 90
)

// DefaultModifierIndexes returns the key index for every tracked
// modifier except FN, which only reports through vendor HID events.
func DefaultModifierIndexes() map[key.Modifier]key.Index {
	return map[key.Modifier]key.Index{
		key.ModCapsLock:   indexCapsLock,
		key.ModLeftShift:  indexLeftShift,
		key.ModRightShift: indexRightShift,
		key.ModLeftCtrl:   indexLeftCtrl,
		key.ModRightCtrl:  indexRightCtrl,
		key.ModLeftAlt:    indexLeftAlt,
		key.ModRightAlt:   indexRightAlt,
		key.ModRightMenu:  indexRightMenu,
	}
}

// DefaultLayerSelectKeys returns the six key indexes that pick the
// active Easy-Shift layer, in layer order 1..6.
func DefaultLayerSelectKeys() [6]key.Index {
	return [6]key.Index{97, 98, 99, 100, 101, 102}
}

// DefaultSlotKeys returns the F1..F4 key indexes that pick quick-switch
// slots 1..4 while the composite modifier is held.
func DefaultSlotKeys() [NumSlots]key.Index {
	return [NumSlots]key.Index{12, 18, 24, 30}
}

// CompositeHID returns the vendor HID code that reports the given
// composite modifier choice.
func CompositeHID(m key.Modifier) hid.Code {
	switch m {
	case key.ModRightMenu:
		return hid.CodeRightMenu
	case key.ModRightCtrl:
		return hid.CodeRightCtrl
	case key.ModRightShift:
		return hid.CodeRightShift
	case key.ModRightAlt:
		return hid.CodeRightAlt
	default:
		return 0
	}
}
