package macro

import "github.com/dshills/macrostorm/internal/input/key"

// Step is one synthetic key event of a static sequence. OffsetMS of 0
// with Immediate set emits the event immediately; otherwise it is a
// delayed injection relative to the sequence start.
type Step struct {
	Code      key.Code
	Pressed   bool
	OffsetMS  int
	Immediate bool
}

// FromSteps builds a Macro that replays a fixed key sequence. The
// delayed steps are validated once, at build time, against the
// strictly-increasing offset contract so a misconfigured sequence fails
// the configuration load instead of every invocation.
func FromSteps(steps []Step) (Macro, error) {
	last := -1
	first := true
	for _, s := range steps {
		if s.Immediate {
			continue
		}
		if !first && s.OffsetMS <= last {
			return nil, ErrOffsetNotIncreasing
		}
		first = false
		last = s.OffsetMS
	}

	seq := make([]Step, len(steps))
	copy(seq, steps)

	return func(ctx *Context) error {
		for _, s := range seq {
			if s.Immediate {
				ctx.InjectKey(s.Code, s.Pressed)
				continue
			}
			if err := ctx.InjectKeyWithDelay(s.Code, s.Pressed, s.OffsetMS); err != nil {
				return err
			}
		}
		return nil
	}, nil
}
