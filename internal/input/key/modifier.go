package key

import "fmt"

// Modifier identifies a tracked modifier key. CapsLock doubles as the
// Easy Shift key while game mode is enabled.
type Modifier uint8

const (
	// ModCapsLock is the Caps Lock key (Easy Shift in game mode).
	ModCapsLock Modifier = iota

	// ModLeftShift is the left Shift key.
	ModLeftShift

	// ModRightShift is the right Shift key.
	ModRightShift

	// ModLeftCtrl is the left Control key.
	ModLeftCtrl

	// ModRightCtrl is the right Control key.
	ModRightCtrl

	// ModLeftAlt is the left Alt key.
	ModLeftAlt

	// ModRightAlt is the right Alt key (AltGr on ISO layouts).
	ModRightAlt

	// ModRightMenu is the right Menu (application) key.
	ModRightMenu

	// ModFN is the vendor FN key. It has no scancode and is reported
	// only through HID events.
	ModFN

	numModifiers
)

// String returns the modifier name as used in configuration files.
func (m Modifier) String() string {
	switch m {
	case ModCapsLock:
		return "caps-lock"
	case ModLeftShift:
		return "left-shift"
	case ModRightShift:
		return "right-shift"
	case ModLeftCtrl:
		return "left-ctrl"
	case ModRightCtrl:
		return "right-ctrl"
	case ModLeftAlt:
		return "left-alt"
	case ModRightAlt:
		return "right-alt"
	case ModRightMenu:
		return "right-menu"
	case ModFN:
		return "fn"
	default:
		return "unknown"
	}
}

// Modifiers returns all tracked modifiers in declaration order.
func Modifiers() []Modifier {
	mods := make([]Modifier, 0, numModifiers)
	for m := Modifier(0); m < numModifiers; m++ {
		mods = append(mods, m)
	}
	return mods
}

// compositeModifierNames maps configuration names to the modifiers that
// may serve as the composite modifier for slot and media chords.
var compositeModifierNames = map[string]Modifier{
	"right-menu":  ModRightMenu,
	"right-alt":   ModRightAlt,
	"right-shift": ModRightShift,
	"right-ctrl":  ModRightCtrl,
}

// ParseCompositeModifier resolves a configuration name to a modifier
// eligible for the composite role. Only right-hand modifiers qualify.
func ParseCompositeModifier(name string) (Modifier, error) {
	m, ok := compositeModifierNames[name]
	if !ok {
		return 0, fmt.Errorf("invalid composite modifier %q (want right-menu, right-alt, right-shift or right-ctrl)", name)
	}
	return m, nil
}
