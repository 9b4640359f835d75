// Package overlay implements the transient HUD shown when the user
// turns the volume or brightness dial: a column bar proportional to the
// live value, fading out over a fixed number of ticks. The machine only
// emits an alpha'd color layer; the host's compositor blends it above
// background effect layers under its own override-priority rules.
package overlay

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Kind is the overlay variant.
type Kind int

const (
	// KindNone means no overlay is active.
	KindNone Kind = iota

	// KindVolume shows the audio volume bar.
	KindVolume

	// KindBrightness shows the LED brightness bar.
	KindBrightness
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindVolume:
		return "volume"
	case KindBrightness:
		return "brightness"
	default:
		return "unknown"
	}
}

// DefaultMaxTTL is the overlay lifetime in ticks when the
// configuration does not override it.
const DefaultMaxTTL = 24

// Machine is the overlay state machine. At most one overlay is active;
// triggering a new kind replaces the old one and resets the TTL.
// Owned by the engine, mutated synchronously, no locking.
type Machine struct {
	log zerolog.Logger

	kind   Kind
	ttl    int
	maxTTL int
}

// NewMachine creates an idle machine. A maxTTL below 1 falls back to
// DefaultMaxTTL.
func NewMachine(maxTTL int, logger *zerolog.Logger) *Machine {
	if maxTTL < 1 {
		maxTTL = DefaultMaxTTL
	}
	m := &Machine{kind: KindNone, maxTTL: maxTTL}
	if logger != nil {
		m.log = logger.With().Str("subsystem", "overlay").Logger()
	} else {
		m.log = zerolog.Nop()
	}
	return m
}

// Trigger activates (or re-arms) the overlay of the given kind with a
// full TTL. Triggering KindNone is a programming defect.
func (m *Machine) Trigger(kind Kind) {
	if kind == KindNone {
		panic("overlay: Trigger(KindNone)")
	}
	m.kind = kind
	m.ttl = m.maxTTL
	m.log.Debug().Str("kind", kind.String()).Int("ttl", m.ttl).Msg("overlay triggered")
}

// Kind returns the active overlay kind.
func (m *Machine) Kind() Kind { return m.kind }

// TTL returns the remaining overlay lifetime in ticks.
func (m *Machine) TTL() int { return m.ttl }

// MaxTTL returns the configured overlay lifetime.
func (m *Machine) MaxTTL() int { return m.maxTTL }

// Tick advances the machine by one frame. value is the live percentage
// (0..100) for the active kind. It returns the layer to submit and
// true while the overlay needs compositing; once the TTL runs out it
// returns a cleared layer exactly once and transitions to KindNone.
// While idle it returns (nil, false).
func (m *Machine) Tick(value int) ([]uint32, bool) {
	switch m.kind {
	case KindNone:
		return nil, false

	case KindVolume, KindBrightness:
		m.ttl -= decayStep(m.ttl, m.maxTTL)
		if m.ttl <= 0 {
			m.ttl = 0
			m.log.Debug().Str("kind", m.kind.String()).Msg("overlay expired")
			m.kind = KindNone
			return clearedLayer(), true
		}
		return renderLayer(m.kind, value, m.ttl, m.maxTTL), true

	default:
		panic(fmt.Sprintf("overlay: invalid kind %d", m.kind))
	}
}

// decayStep returns how much TTL to drop this tick. Decay starts at
// one tick per tick and accelerates quadratically as the TTL
// approaches zero, so the overlay lingers while fresh and snaps away
// at the end; the floor of one guarantees it never stalls and expires
// within maxTTL ticks.
func decayStep(ttl, maxTTL int) int {
	progress := 1.0 - float64(ttl)/float64(maxTTL)
	step := 1 + int(progress*progress*float64(maxTTL)/4.0)
	return step
}
