// Package store declares the transient persistence boundary. The host
// provides an ephemeral key-value store scoped to the daemon runtime;
// keys are dotted paths ("engine.game-mode", "procmon.saved") and
// values are primitive ints, strings and bools. Individual reads and
// writes are atomic; no multi-key transactions exist or are needed.
package store

// Transient is the host-provided ephemeral key-value store.
//
// Load methods report a second result of false when the key is absent,
// which callers treat as a silent default, never an error.
type Transient interface {
	// StoreInt writes an integer value.
	StoreInt(key string, v int)

	// LoadInt reads an integer value.
	LoadInt(key string) (int, bool)

	// StoreString writes a string value.
	StoreString(key string, v string)

	// LoadString reads a string value.
	LoadString(key string) (string, bool)

	// StoreBool writes a boolean value.
	StoreBool(key string, v bool)

	// LoadBool reads a boolean value.
	LoadBool(key string) (bool, bool)
}
