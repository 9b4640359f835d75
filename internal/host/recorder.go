package host

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/macrostorm/internal/input/key"
)

// KeyInjection is one recorded synthetic key event.
type KeyInjection struct {
	Code     key.Code
	Pressed  bool
	OffsetMS int
	Delayed  bool
}

// ButtonInjection is one recorded synthetic mouse button event.
type ButtonInjection struct {
	Button  key.Button
	Pressed bool
}

// Recorder is a Host implementation that records every call instead of
// touching hardware. The reference daemon uses it as a dry-run backend
// and the engine tests use it to assert on injections and switches.
//
// Recorder is safe for concurrent use.
type Recorder struct {
	mu  sync.Mutex
	log *zerolog.Logger

	// Recorded outputs.
	Keys      []KeyInjection
	Buttons   []ButtonInjection
	Wheels    []key.WheelDirection
	ColorMaps [][]uint32

	// Primed and mutated state.
	keyState   map[key.Index]bool
	slot       int
	profile    string
	brightness int
	volume     int

	// Switch history, most recent last.
	SlotSwitches    []int
	ProfileSwitches []string
}

// NewRecorder creates a Recorder with sane defaults: slot 1, an empty
// profile, full brightness, and half volume. A nil logger disables
// call logging.
func NewRecorder(logger *zerolog.Logger) *Recorder {
	return &Recorder{
		log:        logger,
		keyState:   make(map[key.Index]bool),
		slot:       1,
		brightness: 100,
		volume:     50,
	}
}

// InjectKey records a synthetic key event.
func (r *Recorder) InjectKey(code key.Code, pressed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Keys = append(r.Keys, KeyInjection{Code: code, Pressed: pressed})
	if r.log != nil {
		r.log.Debug().Uint16("code", uint16(code)).Bool("pressed", pressed).Msg("inject key")
	}
}

// InjectKeyWithDelay records a delayed synthetic key event.
func (r *Recorder) InjectKeyWithDelay(code key.Code, pressed bool, offsetMS int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Keys = append(r.Keys, KeyInjection{Code: code, Pressed: pressed, OffsetMS: offsetMS, Delayed: true})
	if r.log != nil {
		r.log.Debug().Uint16("code", uint16(code)).Bool("pressed", pressed).Int("offset_ms", offsetMS).Msg("inject key delayed")
	}
}

// InjectMouseButton records a synthetic mouse button event.
func (r *Recorder) InjectMouseButton(button key.Button, pressed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Buttons = append(r.Buttons, ButtonInjection{Button: button, Pressed: pressed})
	if r.log != nil {
		r.log.Debug().Uint8("button", uint8(button)).Bool("pressed", pressed).Msg("inject mouse button")
	}
}

// InjectMouseWheel records a synthetic wheel step.
func (r *Recorder) InjectMouseWheel(direction key.WheelDirection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Wheels = append(r.Wheels, direction)
	if r.log != nil {
		r.log.Debug().Str("direction", direction.String()).Msg("inject mouse wheel")
	}
}

// KeyState reports the primed hardware state for index.
func (r *Recorder) KeyState(index key.Index) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keyState[index]
}

// SetKeyState primes the hardware state for index.
func (r *Recorder) SetKeyState(index key.Index, pressed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keyState[index] = pressed
}

// ActiveSlot returns the current slot.
func (r *Recorder) ActiveSlot() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slot
}

// ActiveProfile returns the current profile path.
func (r *Recorder) ActiveProfile() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profile
}

// SwitchToSlot records and applies a slot switch.
func (r *Recorder) SwitchToSlot(slot int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slot = slot
	r.SlotSwitches = append(r.SlotSwitches, slot)
	if r.log != nil {
		r.log.Info().Int("slot", slot).Msg("switch slot")
	}
	return nil
}

// SwitchToProfile records and applies a profile switch.
func (r *Recorder) SwitchToProfile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile = path
	r.ProfileSwitches = append(r.ProfileSwitches, path)
	if r.log != nil {
		r.log.Info().Str("profile", path).Msg("switch profile")
	}
	return nil
}

// SetActiveProfile primes the current profile without recording a switch.
func (r *Recorder) SetActiveProfile(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile = path
}

// SetActiveSlot primes the current slot without recording a switch.
func (r *Recorder) SetActiveSlot(slot int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slot = slot
}

// Brightness returns the current brightness percentage.
func (r *Recorder) Brightness() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.brightness
}

// SetBrightness clamps and stores the brightness percentage.
func (r *Recorder) SetBrightness(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	r.brightness = v
}

// AudioVolume returns the primed volume percentage.
func (r *Recorder) AudioVolume() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.volume
}

// SetAudioVolume primes the volume percentage.
func (r *Recorder) SetAudioVolume(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.volume = v
}

// SubmitColorMap records a submitted color layer.
func (r *Recorder) SubmitColorMap(m []uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]uint32, len(m))
	copy(cp, m)
	r.ColorMaps = append(r.ColorMaps, cp)
}

// Reset clears every recorded call while keeping primed state.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Keys = nil
	r.Buttons = nil
	r.Wheels = nil
	r.ColorMaps = nil
	r.SlotSwitches = nil
	r.ProfileSwitches = nil
}
