// Package host declares the boundary between the engine and its
// embedding daemon. The daemon owns the hardware: device drivers, the
// synthetic input layer, the layer compositor, slot/profile management,
// and audio capture. The engine only ever talks to these through the
// interfaces below, which keeps every engine package testable against
// the Recorder implementation.
package host

import "github.com/dshills/macrostorm/internal/input/key"

// Injector delivers synthetic input events to the OS.
//
// Delayed injections carry a millisecond offset relative to the first
// injection of the current macro invocation; the host owns the actual
// scheduling. The engine is fire-and-forget here.
type Injector interface {
	// InjectKey emits a synthetic key event.
	InjectKey(code key.Code, pressed bool)

	// InjectKeyWithDelay emits a synthetic key event offsetMS
	// milliseconds after the first injection of the invocation.
	InjectKeyWithDelay(code key.Code, pressed bool, offsetMS int)

	// InjectMouseButton emits a synthetic mouse button event.
	InjectMouseButton(button key.Button, pressed bool)

	// InjectMouseWheel emits a synthetic wheel step.
	InjectMouseWheel(direction key.WheelDirection)
}

// StateReader exposes live hardware key state, used to seed the
// modifier tracker at startup.
type StateReader interface {
	// KeyState reports whether the key at index is currently pressed.
	KeyState(index key.Index) bool
}

// Controller switches the active profile or slot.
type Controller interface {
	// ActiveSlot returns the active slot (1-based).
	ActiveSlot() int

	// ActiveProfile returns the path of the active profile.
	ActiveProfile() string

	// SwitchToSlot activates the given slot (1-based).
	SwitchToSlot(slot int) error

	// SwitchToProfile activates the profile at the given path.
	SwitchToProfile(path string) error
}

// Levels exposes brightness and audio volume.
type Levels interface {
	// Brightness returns the LED brightness percentage (0..100).
	Brightness() int

	// SetBrightness sets the LED brightness percentage. Values are
	// clamped by the host.
	SetBrightness(v int)

	// AudioVolume returns the system audio volume percentage (0..100).
	AudioVolume() int
}

// Compositor accepts a color layer for blending. The map holds one
// ARGB value per key index; a zero alpha leaves the key untouched by
// this layer.
type Compositor interface {
	// SubmitColorMap hands the engine's overlay layer to the blender.
	SubmitColorMap(m []uint32)
}

// Host is the complete set of primitives the daemon provides.
type Host interface {
	Injector
	StateReader
	Controller
	Levels
	Compositor
}
