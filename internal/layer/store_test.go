package layer

import (
	"testing"

	"github.com/dshills/macrostorm/internal/input/key"
	"github.com/dshills/macrostorm/internal/macro"
)

func TestStoreDefaults(t *testing.T) {
	s := NewStore()

	if s.ActiveIndex() != 1 {
		t.Errorf("ActiveIndex() = %d, want 1", s.ActiveIndex())
	}
	if s.Active().Index() != 1 {
		t.Errorf("Active().Index() = %d, want 1", s.Active().Index())
	}
}

func TestStoreLayerRange(t *testing.T) {
	s := NewStore()

	for i := 1; i <= NumLayers; i++ {
		l, err := s.Layer(i)
		if err != nil {
			t.Fatalf("Layer(%d): %v", i, err)
		}
		if l.Index() != i {
			t.Errorf("Layer(%d).Index() = %d", i, l.Index())
		}
	}

	for _, bad := range []int{0, -1, NumLayers + 1} {
		if _, err := s.Layer(bad); err == nil {
			t.Errorf("Layer(%d) should fail", bad)
		}
	}
}

func TestSetActiveIdempotent(t *testing.T) {
	s := NewStore()

	s.SetActive(3)
	if s.ActiveIndex() != 3 {
		t.Fatalf("ActiveIndex() = %d, want 3", s.ActiveIndex())
	}

	// Selecting the same layer again keeps it set.
	s.SetActive(3)
	if s.ActiveIndex() != 3 {
		t.Errorf("ActiveIndex() after repeat = %d, want 3", s.ActiveIndex())
	}
}

func TestSetActiveOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("SetActive(0) should panic")
		}
	}()
	NewStore().SetActive(0)
}

func TestInactiveLayersRetainBindings(t *testing.T) {
	s := NewStore()

	var invoked int
	m := macro.Macro(func(*macro.Context) error { invoked++; return nil })

	l2, _ := s.Layer(2)
	l2.BindKeyMacro(10, m)
	l2.SetRemap(11, 30)

	s.SetActive(5)
	s.SetActive(1)

	l2again, _ := s.Layer(2)
	if _, ok := l2again.KeyMacro(10); !ok {
		t.Error("layer 2 should retain its macro binding")
	}
	if c, ok := l2again.Remap(11); !ok || c != 30 {
		t.Errorf("layer 2 remap = %d, %v; want 30, true", c, ok)
	}
}

func TestRemapTableLookup(t *testing.T) {
	tbl := RemapTable{5: 100}

	if c, ok := tbl.Lookup(5); !ok || c != 100 {
		t.Errorf("Lookup(5) = %d, %v; want 100, true", c, ok)
	}
	if _, ok := tbl.Lookup(6); ok {
		t.Error("Lookup(6) should miss")
	}
}

func TestLayerMacroTablesAreIndependent(t *testing.T) {
	l := NewLayer(1)
	noop := macro.Macro(func(*macro.Context) error { return nil })

	l.BindKeyMacro(7, noop)
	l.BindButtonDownMacro(2, noop)
	l.BindWheelMacro(key.WheelUp, noop)
	l.BindDPIMacro(3, noop)

	if _, ok := l.ButtonUpMacro(2); ok {
		t.Error("button-up table should not see button-down binding")
	}
	if _, ok := l.WheelMacro(key.WheelDown); ok {
		t.Error("wheel-down should not see wheel-up binding")
	}
	if _, ok := l.DPIMacro(1); ok {
		t.Error("dpi stage 1 should not see stage 3 binding")
	}
	if _, ok := l.KeyMacro(7); !ok {
		t.Error("key macro binding lost")
	}
}
