// Package hid defines the vendor HID event vocabulary for keys and
// controls that never produce a normal scancode: the FN key, the
// game-mode toggle, the volume and brightness dials, and mouse DPI
// stage changes. The host decodes raw vendor reports and delivers them
// as (type, argument) pairs.
package hid

// EventType classifies a keyboard HID event.
type EventType uint8

const (
	// EventKeyDown reports a vendor key press; the argument is a Code.
	EventKeyDown EventType = iota + 1

	// EventKeyUp reports a vendor key release; the argument is a Code.
	EventKeyUp

	// EventVolumeDial reports a volume dial rotation; the argument is
	// +1 or -1.
	EventVolumeDial

	// EventBrightnessDial reports a brightness dial rotation; the
	// argument is the signed brightness step in percent.
	EventBrightnessDial

	// EventMuteButton reports the dedicated mute button press.
	EventMuteButton
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	case EventVolumeDial:
		return "volume-dial"
	case EventBrightnessDial:
		return "brightness-dial"
	case EventMuteButton:
		return "mute-button"
	default:
		return "unknown"
	}
}

// Code identifies a vendor key in EventKeyDown/EventKeyUp arguments.
// Right-hand modifier codes follow the USB HID usage table so the
// composite modifier can be registered consistently with its key index.
type Code uint16

const (
	// CodeFN is the vendor FN key.
	CodeFN Code = 0x77

	// CodeGameMode is the game-mode toggle (FN+Scroll Lock chord as
	// decoded by the device firmware).
	CodeGameMode Code = 0x78

	// CodeRightMenu is the right Menu (application) key.
	CodeRightMenu Code = 0x65

	// CodeRightCtrl is the right Control key.
	CodeRightCtrl Code = 0xe4

	// CodeRightShift is the right Shift key.
	CodeRightShift Code = 0xe5

	// CodeRightAlt is the right Alt key.
	CodeRightAlt Code = 0xe6
)

// MouseEventType classifies a mouse HID event.
type MouseEventType uint8

const (
	// MouseEventDPIChange reports a DPI stage change; the argument is
	// the new stage (1-based).
	MouseEventDPIChange MouseEventType = iota + 1

	// MouseEventBatteryLevel reports the battery percentage.
	MouseEventBatteryLevel
)

// String returns the mouse event type name.
func (t MouseEventType) String() string {
	switch t {
	case MouseEventDPIChange:
		return "dpi-change"
	case MouseEventBatteryLevel:
		return "battery-level"
	default:
		return "unknown"
	}
}
