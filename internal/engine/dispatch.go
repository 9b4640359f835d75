package engine

import (
	"github.com/dshills/macrostorm/internal/input/key"
)

// OnKeyDown dispatches a hardware key press. The priority order is
// strict: layer chord, slot chord, macro, remap, pass-through. The
// first match consumes the event; consumption is all-or-nothing.
func (e *Engine) OnKeyDown(index key.Index) bool {
	e.mods.HandleKeyDown(index)

	// Layer chord: Easy Shift plus a layer-select key.
	if e.easyShiftActive() {
		if n, ok := e.layerKeys[index]; ok {
			e.layers.SetActive(n)
			e.log.Debug().Int("layer", n).Msg("layer selected")
			return true
		}
	}

	// Slot chord: composite modifier plus F1..F4.
	if e.mods.CompositeHeld() {
		if slot, ok := e.slotKeys[index]; ok {
			if err := e.hst.SwitchToSlot(slot); err != nil {
				e.log.Error().Err(err).Int("slot", slot).Msg("slot switch failed")
			}
			return true
		}
	}

	// Macro: the active layer's key binding.
	if e.easyShiftActive() {
		if m, ok := e.layers.Active().KeyMacro(index); ok {
			e.runMacro("key", m)
			return true
		}
	}

	// Remap: active layer's table under Easy Shift, level 1 otherwise.
	if code, ok := e.lookupKeyRemap(index); ok {
		e.hst.InjectKey(code, true)
		return true
	}

	return false
}

// OnKeyUp dispatches a hardware key release. Releases mirror the remap
// lookup so an injected press is always paired with an injected
// release, but never invoke macros.
func (e *Engine) OnKeyUp(index key.Index) bool {
	e.mods.HandleKeyUp(index)

	if code, ok := e.lookupKeyRemap(index); ok {
		e.hst.InjectKey(code, false)
		return true
	}

	return false
}

// lookupKeyRemap picks the remap table the current modifier state
// selects.
func (e *Engine) lookupKeyRemap(index key.Index) (key.Code, bool) {
	if e.easyShiftActive() {
		return e.layers.Active().Remap(index)
	}
	return e.layers.Level1().Lookup(index)
}
