package store

import "testing"

func TestMemRoundTrip(t *testing.T) {
	m := NewMem()

	m.StoreInt("a.b", 42)
	if v, ok := m.LoadInt("a.b"); !ok || v != 42 {
		t.Errorf("LoadInt(a.b) = %d, %v; want 42, true", v, ok)
	}

	m.StoreString("a.c", "hello")
	if v, ok := m.LoadString("a.c"); !ok || v != "hello" {
		t.Errorf("LoadString(a.c) = %q, %v; want hello, true", v, ok)
	}

	m.StoreBool("a.d", true)
	if v, ok := m.LoadBool("a.d"); !ok || !v {
		t.Errorf("LoadBool(a.d) = %v, %v; want true, true", v, ok)
	}
}

func TestMemMissingKeys(t *testing.T) {
	m := NewMem()

	if _, ok := m.LoadInt("absent"); ok {
		t.Error("LoadInt on absent key should report false")
	}
	if _, ok := m.LoadString("absent"); ok {
		t.Error("LoadString on absent key should report false")
	}
	if _, ok := m.LoadBool("absent"); ok {
		t.Error("LoadBool on absent key should report false")
	}
}

func TestMemTypesAreIndependent(t *testing.T) {
	m := NewMem()

	m.StoreInt("key", 1)
	if _, ok := m.LoadString("key"); ok {
		t.Error("string namespace should not see int value")
	}
	if _, ok := m.LoadBool("key"); ok {
		t.Error("bool namespace should not see int value")
	}
}

func TestMemOverwrite(t *testing.T) {
	m := NewMem()

	m.StoreInt("k", 1)
	m.StoreInt("k", 2)
	if v, _ := m.LoadInt("k"); v != 2 {
		t.Errorf("LoadInt(k) = %d, want 2", v)
	}
}
