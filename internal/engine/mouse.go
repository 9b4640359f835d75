package engine

import (
	"github.com/dshills/macrostorm/internal/input/hid"
	"github.com/dshills/macrostorm/internal/input/key"
)

// OnMouseButtonDown dispatches a mouse button press: Easy-Shift macro
// first, then the shared button remap table, then pass-through.
func (e *Engine) OnMouseButtonDown(b key.Button) bool {
	if e.easyShiftActive() {
		if m, ok := e.layers.Active().ButtonDownMacro(b); ok {
			e.runMacro("button-down", m)
			return true
		}
	}

	if mapped, ok := e.layers.MouseRemap().Lookup(b); ok {
		e.hst.InjectMouseButton(mapped, true)
		return true
	}

	return false
}

// OnMouseButtonUp dispatches a mouse button release.
func (e *Engine) OnMouseButtonUp(b key.Button) bool {
	if e.easyShiftActive() {
		if m, ok := e.layers.Active().ButtonUpMacro(b); ok {
			e.runMacro("button-up", m)
			return true
		}
	}

	if mapped, ok := e.layers.MouseRemap().Lookup(b); ok {
		e.hst.InjectMouseButton(mapped, false)
		return true
	}

	return false
}

// OnMouseWheel dispatches a wheel step. Wheel events support macros
// only; unmatched steps pass through.
func (e *Engine) OnMouseWheel(d key.WheelDirection) bool {
	if e.easyShiftActive() {
		if m, ok := e.layers.Active().WheelMacro(d); ok {
			e.runMacro("wheel", m)
			return true
		}
	}
	return false
}

// OnMouseHIDEvent dispatches a vendor mouse HID event. DPI stage
// changes can trigger macros; battery level reports are informational.
func (e *Engine) OnMouseHIDEvent(t hid.MouseEventType, arg int) bool {
	switch t {
	case hid.MouseEventDPIChange:
		if e.easyShiftActive() {
			if m, ok := e.layers.Active().DPIMacro(arg); ok {
				e.runMacro("dpi", m)
				return true
			}
		}
		return false

	case hid.MouseEventBatteryLevel:
		e.log.Debug().Int("percent", arg).Msg("mouse battery level")
		return false

	default:
		return false
	}
}
