package key

import "testing"

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModCapsLock, "caps-lock"},
		{ModLeftShift, "left-shift"},
		{ModRightShift, "right-shift"},
		{ModLeftCtrl, "left-ctrl"},
		{ModRightCtrl, "right-ctrl"},
		{ModLeftAlt, "left-alt"},
		{ModRightAlt, "right-alt"},
		{ModRightMenu, "right-menu"},
		{ModFN, "fn"},
		{Modifier(200), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestParseCompositeModifier(t *testing.T) {
	tests := []struct {
		name    string
		want    Modifier
		wantErr bool
	}{
		{"right-menu", ModRightMenu, false},
		{"right-alt", ModRightAlt, false},
		{"right-shift", ModRightShift, false},
		{"right-ctrl", ModRightCtrl, false},
		{"caps-lock", 0, true},
		{"left-ctrl", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCompositeModifier(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCompositeModifier(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseCompositeModifier(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestModifiersComplete(t *testing.T) {
	mods := Modifiers()
	if len(mods) != int(numModifiers) {
		t.Fatalf("Modifiers() returned %d entries, want %d", len(mods), numModifiers)
	}
	seen := make(map[Modifier]bool)
	for _, m := range mods {
		if seen[m] {
			t.Errorf("duplicate modifier %v", m)
		}
		seen[m] = true
	}
}

func TestIndexValid(t *testing.T) {
	if !Index(0).Valid() {
		t.Error("Index(0) should be valid")
	}
	if !Index(NumKeys - 1).Valid() {
		t.Error("last index should be valid")
	}
	if Index(NumKeys).Valid() {
		t.Error("Index(NumKeys) should be invalid")
	}
}

func TestWheelDirectionString(t *testing.T) {
	if got := WheelUp.String(); got != "up" {
		t.Errorf("WheelUp.String() = %q, want %q", got, "up")
	}
	if got := WheelDown.String(); got != "down" {
		t.Errorf("WheelDown.String() = %q, want %q", got, "down")
	}
	if got := WheelDirection(0).String(); got != "none" {
		t.Errorf("WheelDirection(0).String() = %q, want %q", got, "none")
	}
}
