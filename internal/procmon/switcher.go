package procmon

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/macrostorm/internal/host"
	"github.com/dshills/macrostorm/internal/store"
)

// savedKey is the transient-store key holding the serialized save
// stack. The whole stack lives in one JSON list under a single key;
// there is no separate length key to fall out of sync.
const savedKey = "procmon.saved"

// entry is one pushed save-stack record. The id exists purely for log
// correlation across exec/exit pairs.
type entry struct {
	id   string
	pid  int
	prev Target
}

// Switcher reacts to process lifecycle events. It is owned by the
// engine and mutated synchronously inside event callbacks.
type Switcher struct {
	log zerolog.Logger

	ctrl  host.Controller
	store store.Transient

	mappings map[string]Target
	saved    []entry
}

// New creates a switcher with no mappings.
func New(ctrl host.Controller, st store.Transient, logger *zerolog.Logger) *Switcher {
	s := &Switcher{
		ctrl:     ctrl,
		store:    st,
		mappings: make(map[string]Target),
	}
	if logger != nil {
		s.log = logger.With().Str("subsystem", "procmon").Logger()
	} else {
		s.log = zerolog.Nop()
	}
	return s
}

// SetMappings replaces the executable-to-target table. Keys are
// executable basenames; full paths are reduced at lookup time.
func (s *Switcher) SetMappings(m map[string]Target) {
	s.mappings = make(map[string]Target, len(m))
	for exe, t := range m {
		s.mappings[exe] = t
	}
}

// Mapping returns the target for an executable basename.
func (s *Switcher) Mapping(exe string) (Target, bool) {
	t, ok := s.mappings[exe]
	return t, ok
}

// SavedCount returns the current save-stack depth.
func (s *Switcher) SavedCount() int { return len(s.saved) }

// OnExec handles a process start. Unmapped executables are a silent
// no-op. For a mapped executable the current profile or slot (matching
// the target's kind) is pushed onto the save stack, the stack is
// persisted, and the mapped target activated.
func (s *Switcher) OnExec(pid int, fileName string) error {
	target, ok := s.mappings[filepath.Base(fileName)]
	if !ok {
		return nil
	}

	prev := s.capturePrevious(target)
	e := entry{id: uuid.NewString(), pid: pid, prev: prev}
	s.saved = append(s.saved, e)
	s.persist()

	s.log.Info().
		Str("entry", e.id).
		Int("pid", pid).
		Str("exe", fileName).
		Str("target", target.String()).
		Str("previous", prev.String()).
		Msg("process mapped, switching")

	return s.apply(target)
}

// OnExit handles a process exit. The first save-stack entry matching
// the pid wins (FIFO first-match: if the same pid execed twice without
// an exit, the older entry is restored). The matched entry is removed
// after a successful restore; no match is a silent no-op.
func (s *Switcher) OnExit(pid int, fileName string) error {
	for i, e := range s.saved {
		if e.pid != pid {
			continue
		}

		if err := s.apply(e.prev); err != nil {
			return fmt.Errorf("restoring %s for pid %d: %w", e.prev, pid, err)
		}

		s.saved = append(s.saved[:i], s.saved[i+1:]...)
		s.persist()

		s.log.Info().
			Str("entry", e.id).
			Int("pid", pid).
			Str("exe", fileName).
			Str("restored", e.prev.String()).
			Msg("process exited, state restored")
		return nil
	}
	return nil
}

// capturePrevious snapshots the live state that the exiting process
// should restore. The snapshot mirrors the mapped target's kind: a
// slot target saves the active slot, a profile target the active
// profile.
func (s *Switcher) capturePrevious(target Target) Target {
	switch target.Kind() {
	case TargetSlot:
		return SlotTarget(s.ctrl.ActiveSlot())
	case TargetProfile:
		return ProfileTarget(s.ctrl.ActiveProfile())
	default:
		panic(fmt.Sprintf("procmon: invalid target kind %d", target.Kind()))
	}
}

// apply activates a target.
func (s *Switcher) apply(t Target) error {
	switch t.Kind() {
	case TargetProfile:
		p, _ := t.Profile()
		return s.ctrl.SwitchToProfile(p)
	case TargetSlot:
		sl, _ := t.Slot()
		return s.ctrl.SwitchToSlot(sl)
	default:
		panic(fmt.Sprintf("procmon: invalid target kind %d", t.Kind()))
	}
}

// persist serializes the save stack into the transient store. Each
// record carries an explicit type tag; slot values are stored as JSON
// integers, profile values as strings.
func (s *Switcher) persist() {
	doc := "[]"
	for _, e := range s.saved {
		rec := map[string]any{
			"id":   e.id,
			"pid":  e.pid,
			"kind": e.prev.Kind().String(),
		}
		switch e.prev.Kind() {
		case TargetSlot:
			slot, _ := e.prev.Slot()
			rec["slot"] = slot
		case TargetProfile:
			profile, _ := e.prev.Profile()
			rec["profile"] = profile
		}
		doc, _ = sjson.Set(doc, "-1", rec)
	}
	s.store.StoreString(savedKey, doc)
}

// Load restores the save stack from the transient store. Records with
// an unknown type tag are skipped with a warning; one malformed record
// never discards the rest of the stack.
func (s *Switcher) Load() {
	doc, ok := s.store.LoadString(savedKey)
	if !ok {
		return
	}

	s.saved = s.saved[:0]
	for _, rec := range gjson.Parse(doc).Array() {
		e := entry{
			id:  rec.Get("id").String(),
			pid: int(rec.Get("pid").Int()),
		}
		switch rec.Get("kind").String() {
		case "slot":
			e.prev = SlotTarget(int(rec.Get("slot").Int()))
		case "profile":
			e.prev = ProfileTarget(rec.Get("profile").String())
		default:
			s.log.Warn().
				Str("kind", rec.Get("kind").String()).
				Int("pid", e.pid).
				Msg("skipping saved entry with unknown kind")
			continue
		}
		s.saved = append(s.saved, e)
	}
}
