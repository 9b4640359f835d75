package engine

import (
	"github.com/dshills/macrostorm/internal/input/hid"
	"github.com/dshills/macrostorm/internal/overlay"
)

// OnHIDEvent dispatches a vendor keyboard HID event. Key events carry
// the HID code in arg; the volume dial reports its rotation direction
// (the host tracks the resulting volume) and the brightness dial a
// signed percent step.
func (e *Engine) OnHIDEvent(t hid.EventType, arg int) bool {
	switch t {
	case hid.EventKeyDown, hid.EventKeyUp:
		return e.onHIDKey(hid.Code(arg), t == hid.EventKeyDown)

	case hid.EventVolumeDial:
		e.log.Debug().Int("step", arg).Msg("volume dial")
		e.hud.Trigger(overlay.KindVolume)
		return true

	case hid.EventBrightnessDial:
		e.hst.SetBrightness(e.hst.Brightness() + arg)
		e.log.Debug().Int("brightness", e.hst.Brightness()).Msg("brightness dial")
		e.hud.Trigger(overlay.KindBrightness)
		return true

	case hid.EventMuteButton:
		e.hud.Trigger(overlay.KindVolume)
		return true

	default:
		return false
	}
}

// onHIDKey handles the vendor key codes: the game-mode toggle and the
// HID-reported modifiers (FN, composite).
func (e *Engine) onHIDKey(code hid.Code, pressed bool) bool {
	if code == hid.CodeGameMode {
		if pressed {
			if on, applied := e.mods.ToggleGameMode(); applied {
				e.store.StoreBool(gameModeKey, on)
			}
		}
		return true
	}
	return e.mods.HandleHIDKey(code, pressed)
}

// OnTick advances time-based state. While an overlay is live its color
// layer is re-rendered from the current value and submitted; on expiry
// the cleared layer is submitted once and the machine goes idle.
func (e *Engine) OnTick(delta int) {
	_ = delta // decay is per tick, not per elapsed unit

	var value int
	switch e.hud.Kind() {
	case overlay.KindVolume:
		value = e.hst.AudioVolume()
	case overlay.KindBrightness:
		value = e.hst.Brightness()
	default:
		// Idle; Tick below returns immediately.
	}

	if layer, dirty := e.hud.Tick(value); dirty {
		e.hst.SubmitColorMap(layer)
	}
}
