package procmon

import (
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/macrostorm/internal/host"
	"github.com/dshills/macrostorm/internal/store"
)

func newSwitcher(t *testing.T) (*Switcher, *host.Recorder, *store.Mem) {
	t.Helper()
	rec := host.NewRecorder(nil)
	mem := store.NewMem()
	return New(rec, mem, nil), rec, mem
}

func TestTargetUnion(t *testing.T) {
	p := ProfileTarget("gaming.profile")
	if p.Kind() != TargetProfile {
		t.Errorf("Kind() = %v, want profile", p.Kind())
	}
	if path, ok := p.Profile(); !ok || path != "gaming.profile" {
		t.Errorf("Profile() = %q, %v", path, ok)
	}
	if _, ok := p.Slot(); ok {
		t.Error("profile target should not expose a slot")
	}

	s := SlotTarget(3)
	if s.Kind() != TargetSlot {
		t.Errorf("Kind() = %v, want slot", s.Kind())
	}
	if slot, ok := s.Slot(); !ok || slot != 3 {
		t.Errorf("Slot() = %d, %v", slot, ok)
	}
	if _, ok := s.Profile(); ok {
		t.Error("slot target should not expose a profile")
	}
}

func TestUnmappedExecIsNoOp(t *testing.T) {
	s, rec, _ := newSwitcher(t)

	if err := s.OnExec(100, "unmapped.exe"); err != nil {
		t.Fatalf("OnExec: %v", err)
	}
	if len(rec.ProfileSwitches) != 0 || len(rec.SlotSwitches) != 0 {
		t.Error("unmapped exec must not switch anything")
	}
	if s.SavedCount() != 0 {
		t.Error("unmapped exec must not push saved state")
	}
}

func TestProfileExecExitRoundTrip(t *testing.T) {
	s, rec, _ := newSwitcher(t)
	rec.SetActiveProfile("default.profile")
	s.SetMappings(map[string]Target{
		"game.exe": ProfileTarget("gaming.profile"),
	})

	if err := s.OnExec(100, "game.exe"); err != nil {
		t.Fatalf("OnExec: %v", err)
	}
	if rec.ActiveProfile() != "gaming.profile" {
		t.Errorf("active profile = %q, want gaming.profile", rec.ActiveProfile())
	}
	if s.SavedCount() != 1 {
		t.Fatalf("saved count = %d, want 1", s.SavedCount())
	}

	if err := s.OnExit(100, "game.exe"); err != nil {
		t.Fatalf("OnExit: %v", err)
	}
	if rec.ActiveProfile() != "default.profile" {
		t.Errorf("restored profile = %q, want default.profile", rec.ActiveProfile())
	}
	if s.SavedCount() != 0 {
		t.Errorf("saved count after restore = %d, want 0", s.SavedCount())
	}
}

func TestExecMatchesOnBasename(t *testing.T) {
	s, rec, _ := newSwitcher(t)
	s.SetMappings(map[string]Target{
		"game.exe": SlotTarget(2),
	})

	if err := s.OnExec(100, "/opt/games/bin/game.exe"); err != nil {
		t.Fatalf("OnExec: %v", err)
	}
	if rec.ActiveSlot() != 2 {
		t.Errorf("active slot = %d, want 2", rec.ActiveSlot())
	}
}

func TestIndependentRestoreRegardlessOfExitOrder(t *testing.T) {
	s, rec, _ := newSwitcher(t)
	rec.SetActiveSlot(1)
	s.SetMappings(map[string]Target{
		"game.exe": SlotTarget(2),
		"tool.exe": SlotTarget(3),
	})

	// pid 100 execs: slot 1 -> 2, saves slot 1.
	if err := s.OnExec(100, "game.exe"); err != nil {
		t.Fatal(err)
	}
	// pid 200 execs: slot 2 -> 3, saves slot 2.
	if err := s.OnExec(200, "tool.exe"); err != nil {
		t.Fatal(err)
	}
	if rec.ActiveSlot() != 3 {
		t.Fatalf("active slot = %d, want 3", rec.ActiveSlot())
	}

	// pid 200 exits first: restores the slot active immediately
	// before its exec, independent of pid 100's status.
	if err := s.OnExit(200, "tool.exe"); err != nil {
		t.Fatal(err)
	}
	if rec.ActiveSlot() != 2 {
		t.Errorf("after pid 200 exit: slot = %d, want 2", rec.ActiveSlot())
	}

	if err := s.OnExit(100, "game.exe"); err != nil {
		t.Fatal(err)
	}
	if rec.ActiveSlot() != 1 {
		t.Errorf("after pid 100 exit: slot = %d, want 1", rec.ActiveSlot())
	}
}

func TestExitWithoutSavedStateIsNoOp(t *testing.T) {
	s, rec, _ := newSwitcher(t)

	if err := s.OnExit(999, "whatever.exe"); err != nil {
		t.Fatalf("OnExit: %v", err)
	}
	if len(rec.ProfileSwitches) != 0 || len(rec.SlotSwitches) != 0 {
		t.Error("exit without saved state must not switch anything")
	}
}

func TestDuplicatePidFirstMatchWins(t *testing.T) {
	s, rec, _ := newSwitcher(t)
	rec.SetActiveSlot(1)
	s.SetMappings(map[string]Target{
		"game.exe": SlotTarget(2),
	})

	// Same pid execs twice without an intervening exit: two entries
	// share the pid. The first-pushed entry (slot 1) is matched first.
	if err := s.OnExec(100, "game.exe"); err != nil {
		t.Fatal(err)
	}
	if err := s.OnExec(100, "game.exe"); err != nil {
		t.Fatal(err)
	}
	if s.SavedCount() != 2 {
		t.Fatalf("saved count = %d, want 2", s.SavedCount())
	}

	if err := s.OnExit(100, "game.exe"); err != nil {
		t.Fatal(err)
	}
	if rec.ActiveSlot() != 1 {
		t.Errorf("first-match restore: slot = %d, want 1", rec.ActiveSlot())
	}
	if s.SavedCount() != 1 {
		t.Errorf("saved count after first restore = %d, want 1", s.SavedCount())
	}
}

func TestPersistedTypesRoundTrip(t *testing.T) {
	s, rec, mem := newSwitcher(t)
	rec.SetActiveSlot(4)
	rec.SetActiveProfile("default.profile")
	s.SetMappings(map[string]Target{
		"game.exe": SlotTarget(2),
		"tool.exe": ProfileTarget("tool.profile"),
	})

	if err := s.OnExec(100, "game.exe"); err != nil {
		t.Fatal(err)
	}
	if err := s.OnExec(200, "tool.exe"); err != nil {
		t.Fatal(err)
	}

	doc, ok := mem.LoadString("procmon.saved")
	if !ok {
		t.Fatal("save stack not persisted")
	}

	recs := gjson.Parse(doc).Array()
	if len(recs) != 2 {
		t.Fatalf("persisted %d records, want 2", len(recs))
	}

	// Slot entry round-trips as a JSON integer.
	if recs[0].Get("kind").String() != "slot" {
		t.Errorf("record 0 kind = %q, want slot", recs[0].Get("kind").String())
	}
	if v := recs[0].Get("slot"); v.Type != gjson.Number || v.Int() != 4 {
		t.Errorf("record 0 slot = %v, want number 4", v)
	}

	// Profile entry round-trips as a string.
	if recs[1].Get("kind").String() != "profile" {
		t.Errorf("record 1 kind = %q, want profile", recs[1].Get("kind").String())
	}
	if v := recs[1].Get("profile"); v.Type != gjson.String || v.String() != "default.profile" {
		t.Errorf("record 1 profile = %v, want string default.profile", v)
	}
}

func TestLoadRestoresStack(t *testing.T) {
	s, rec, mem := newSwitcher(t)
	rec.SetActiveSlot(1)
	s.SetMappings(map[string]Target{"game.exe": SlotTarget(2)})

	if err := s.OnExec(100, "game.exe"); err != nil {
		t.Fatal(err)
	}

	// A fresh switcher over the same store sees the persisted stack.
	s2 := New(rec, mem, nil)
	s2.Load()
	if s2.SavedCount() != 1 {
		t.Fatalf("loaded saved count = %d, want 1", s2.SavedCount())
	}

	if err := s2.OnExit(100, "game.exe"); err != nil {
		t.Fatal(err)
	}
	if rec.ActiveSlot() != 1 {
		t.Errorf("restored slot = %d, want 1", rec.ActiveSlot())
	}
}

func TestLoadSkipsMalformedRecords(t *testing.T) {
	rec := host.NewRecorder(nil)
	mem := store.NewMem()
	mem.StoreString("procmon.saved",
		`[{"id":"x","pid":1,"kind":"bogus"},{"id":"y","pid":2,"kind":"slot","slot":3}]`)

	s := New(rec, mem, nil)
	s.Load()

	if s.SavedCount() != 1 {
		t.Errorf("loaded saved count = %d, want 1 (malformed skipped)", s.SavedCount())
	}
	if err := s.OnExit(2, "a.exe"); err != nil {
		t.Fatal(err)
	}
	if rec.ActiveSlot() != 3 {
		t.Errorf("restored slot = %d, want 3", rec.ActiveSlot())
	}
}
