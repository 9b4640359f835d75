// Package procmon switches profiles or slots when mapped executables
// start, and restores the prior state when they exit. Mappings key on
// the executable basename; the prior state is kept in a pid-keyed save
// stack persisted through the transient store so a daemon restart does
// not orphan running games.
package procmon

import "fmt"

// TargetKind tags the Target union.
type TargetKind int

const (
	// TargetProfile is a profile file target.
	TargetProfile TargetKind = iota

	// TargetSlot is a quick-switch slot target.
	TargetSlot
)

// String returns the kind's type tag as stored in the transient store.
func (k TargetKind) String() string {
	switch k {
	case TargetProfile:
		return "profile"
	case TargetSlot:
		return "slot"
	default:
		return "unknown"
	}
}

// Target is the tagged union a process maps to: either a profile path
// or a slot index, never both. The zero value is an empty profile
// target; configuration validation rejects it before it reaches the
// switcher.
type Target struct {
	kind    TargetKind
	profile string
	slot    int
}

// ProfileTarget creates a profile target.
func ProfileTarget(path string) Target {
	return Target{kind: TargetProfile, profile: path}
}

// SlotTarget creates a slot target (1-based).
func SlotTarget(slot int) Target {
	return Target{kind: TargetSlot, slot: slot}
}

// Kind returns the union tag.
func (t Target) Kind() TargetKind { return t.kind }

// Profile returns the profile path when the target is a profile.
func (t Target) Profile() (string, bool) {
	return t.profile, t.kind == TargetProfile
}

// Slot returns the slot index when the target is a slot.
func (t Target) Slot() (int, bool) {
	return t.slot, t.kind == TargetSlot
}

// String renders the target for logs.
func (t Target) String() string {
	switch t.kind {
	case TargetProfile:
		return fmt.Sprintf("profile(%s)", t.profile)
	case TargetSlot:
		return fmt.Sprintf("slot(%d)", t.slot)
	default:
		return "target(unknown)"
	}
}
