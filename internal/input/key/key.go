package key

// NumKeys is the number of addressable key positions on the managed
// keyboard, laid out as Rows x Cols.
const (
	NumKeys = 144
	Rows    = 6
	Cols    = 24
)

// Index identifies a physical key position on the device (0..NumKeys-1).
// Indexes are device topology, not scancodes; the host maps them to and
// from hardware reports.
type Index uint8

// Valid reports whether the index addresses a key on the device.
func (i Index) Valid() bool {
	return int(i) < NumKeys
}

// Code is an injectable key code as understood by the host's synthetic
// input layer (an EV_KEY code on Linux).
type Code uint16

// Button identifies a mouse button (1-based, matching the device report).
type Button uint8

// WheelDirection is a mouse wheel rotation step.
type WheelDirection int8

const (
	// WheelUp is one detent away from the user.
	WheelUp WheelDirection = 1

	// WheelDown is one detent toward the user.
	WheelDown WheelDirection = -1
)

// String returns the direction name.
func (d WheelDirection) String() string {
	switch {
	case d > 0:
		return "up"
	case d < 0:
		return "down"
	default:
		return "none"
	}
}
