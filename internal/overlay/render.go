package overlay

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/macrostorm/internal/input/key"
)

// renderLayer builds the ARGB color map for an active overlay: the
// leftmost columns are lit in proportion to value (0..100), every key
// in a lit column shares the column color, and the whole layer's alpha
// scales with the remaining TTL so the fade-out happens in the
// compositor blend.
func renderLayer(kind Kind, value, ttl, maxTTL int) []uint32 {
	m := make([]uint32, key.NumKeys)

	lit := litColumns(value)
	if lit == 0 {
		return m
	}

	alpha := uint32(float64(ttl) / float64(maxTTL) * 255.0)
	if alpha > 255 {
		alpha = 255
	}

	for col := 0; col < lit; col++ {
		c := columnColor(kind, col)
		argb := alpha<<24 | packRGB(c)
		for row := 0; row < key.Rows; row++ {
			m[row*key.Cols+col] = argb
		}
	}

	return m
}

// litColumns converts a percentage to a highlighted column count,
// rounding to nearest so 50% lights exactly half the board.
func litColumns(value int) int {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	return (value*key.Cols + 50) / 100
}

// columnColor picks the column color. Volume sweeps green through
// amber to red like a level meter; brightness is a warm white ramp
// growing brighter to the right.
func columnColor(kind Kind, col int) colorful.Color {
	frac := float64(col) / float64(key.Cols-1)
	switch kind {
	case KindVolume:
		return colorful.Hsv(120.0*(1.0-frac), 1.0, 1.0)
	case KindBrightness:
		return colorful.Hsv(45.0, 0.25, 0.35+0.65*frac)
	default:
		panic("overlay: columnColor on inactive overlay")
	}
}

// clearedLayer is the all-transparent map submitted once when the
// overlay expires.
func clearedLayer() []uint32 {
	return make([]uint32, key.NumKeys)
}

func packRGB(c colorful.Color) uint32 {
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}
