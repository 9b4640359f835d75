package modifier

import (
	"testing"

	"github.com/dshills/macrostorm/internal/host"
	"github.com/dshills/macrostorm/internal/input/hid"
	"github.com/dshills/macrostorm/internal/input/key"
)

func testConfig() Config {
	return Config{
		Indexes: map[key.Modifier]key.Index{
			key.ModCapsLock:   4,
			key.ModLeftShift:  5,
			key.ModRightMenu:  90,
			key.ModRightShift: 91,
		},
		Composite:    key.ModRightMenu,
		CompositeHID: hid.CodeRightMenu,
	}
}

func newState(t *testing.T) *State {
	t.Helper()
	s, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewRejectsInconsistentCompositeWiring(t *testing.T) {
	// Composite modifier with no key index.
	cfg := testConfig()
	cfg.Composite = key.ModRightCtrl
	if _, err := New(cfg, nil); err == nil {
		t.Error("missing composite key index should fail")
	}

	// Composite modifier with no HID code.
	cfg = testConfig()
	cfg.CompositeHID = 0
	if _, err := New(cfg, nil); err == nil {
		t.Error("missing composite HID code should fail")
	}
}

func TestKeyDownUpTracking(t *testing.T) {
	s := newState(t)

	if !s.HandleKeyDown(4) {
		t.Error("caps lock index should be tracked")
	}
	if !s.EasyShiftHeld() {
		t.Error("EasyShiftHeld after caps down")
	}

	if !s.HandleKeyUp(4) {
		t.Error("caps lock release should be tracked")
	}
	if s.EasyShiftHeld() {
		t.Error("EasyShiftHeld after caps up")
	}

	if s.HandleKeyDown(50) {
		t.Error("untracked index should report false")
	}
}

func TestCompositeTrackedOnBothLayers(t *testing.T) {
	s := newState(t)

	// Key-index path.
	s.HandleKeyDown(90)
	if !s.CompositeHeld() {
		t.Error("composite should be held via key index")
	}
	s.HandleKeyUp(90)

	// HID path.
	if !s.HandleHIDKey(hid.CodeRightMenu, true) {
		t.Error("composite HID code should be tracked")
	}
	if !s.CompositeHeld() {
		t.Error("composite should be held via HID")
	}
	s.HandleHIDKey(hid.CodeRightMenu, false)
	if s.CompositeHeld() {
		t.Error("composite should be released via HID")
	}
}

func TestFNOnlyViaHID(t *testing.T) {
	s := newState(t)

	if !s.HandleHIDKey(hid.CodeFN, true) {
		t.Error("FN HID code should be tracked")
	}
	if !s.FNHeld() {
		t.Error("FNHeld after HID down")
	}
	s.HandleHIDKey(hid.CodeFN, false)
	if s.FNHeld() {
		t.Error("FNHeld after HID up")
	}

	if s.HandleHIDKey(0x42, true) {
		t.Error("unknown HID code should report false")
	}
}

func TestGameModeToggleRequiresFN(t *testing.T) {
	s := newState(t)

	if _, applied := s.ToggleGameMode(); applied {
		t.Error("toggle without FN should not apply")
	}
	if s.GameMode() {
		t.Error("game mode should stay off")
	}

	s.HandleHIDKey(hid.CodeFN, true)
	on, applied := s.ToggleGameMode()
	if !applied || !on {
		t.Errorf("toggle with FN = (%v, %v), want (true, true)", on, applied)
	}

	on, applied = s.ToggleGameMode()
	if !applied || on {
		t.Errorf("second toggle = (%v, %v), want (false, true)", on, applied)
	}
}

func TestInitFromLiveState(t *testing.T) {
	s := newState(t)

	rec := host.NewRecorder(nil)
	rec.SetKeyState(5, true)  // left shift held across restart
	rec.SetKeyState(91, true) // right shift held

	s.Init(rec)

	if !s.Pressed(key.ModLeftShift) {
		t.Error("left shift should be seeded as pressed")
	}
	if !s.Pressed(key.ModRightShift) {
		t.Error("right shift should be seeded as pressed")
	}
	if s.Pressed(key.ModCapsLock) {
		t.Error("caps lock should be seeded as released")
	}
}
