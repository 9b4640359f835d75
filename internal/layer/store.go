package layer

import "fmt"

// Store owns the level-1 remap table, the shared mouse remap table and
// the six Easy-Shift layers. Exactly one layer is active at a time;
// inactive layers keep their bindings.
type Store struct {
	level1     RemapTable
	mouseRemap ButtonRemapTable
	layers     [NumLayers]*Layer
	active     int // 1-based
}

// NewStore creates a store with six empty layers and layer 1 active.
func NewStore() *Store {
	s := &Store{
		level1:     make(RemapTable),
		mouseRemap: make(ButtonRemapTable),
		active:     1,
	}
	for i := 0; i < NumLayers; i++ {
		s.layers[i] = NewLayer(i + 1)
	}
	return s
}

// Level1 returns the flat level-1 remap table.
func (s *Store) Level1() RemapTable { return s.level1 }

// MouseRemap returns the shared mouse button remap table.
func (s *Store) MouseRemap() ButtonRemapTable { return s.mouseRemap }

// Layer returns the layer with the given 1-based index.
func (s *Store) Layer(index int) (*Layer, error) {
	if index < 1 || index > NumLayers {
		return nil, fmt.Errorf("layer index %d out of range 1..%d", index, NumLayers)
	}
	return s.layers[index-1], nil
}

// Active returns the active layer.
func (s *Store) Active() *Layer {
	return s.layers[s.active-1]
}

// ActiveIndex returns the active layer's 1-based index.
func (s *Store) ActiveIndex() int { return s.active }

// SetActive selects the active layer. Selecting the already-active
// layer is a no-op. An out-of-range index is a programming defect:
// chord detection only ever produces 1..NumLayers.
func (s *Store) SetActive(index int) {
	if index < 1 || index > NumLayers {
		panic(fmt.Sprintf("layer: SetActive(%d) out of range 1..%d", index, NumLayers))
	}
	s.active = index
}
