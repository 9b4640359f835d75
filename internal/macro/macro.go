// Package macro defines invocable macros and the injection context they
// run against. A macro fires when the dispatcher consumes a hardware
// event; it may emit an arbitrary synthetic key/button/wheel sequence
// through its Context. Delayed injections are scheduled by the host;
// the context only validates and forwards the intended
// code/pressed/offset triples.
package macro

import (
	"errors"
	"fmt"

	"github.com/dshills/macrostorm/internal/host"
	"github.com/dshills/macrostorm/internal/input/key"
)

// Macro is a bound macro function. Errors are reported, never retried;
// a failing macro does not un-consume the triggering event.
type Macro func(ctx *Context) error

// ErrOffsetNotIncreasing is returned when a delayed injection does not
// land strictly after the previous delayed injection of the same
// invocation.
var ErrOffsetNotIncreasing = errors.New("delayed injection offset must be strictly increasing")

// Context is the per-invocation injection surface handed to a macro.
// Offsets of delayed calls are relative to the first injection of this
// invocation, not to real elapsed time, so each delayed call must use a
// strictly larger offset than the one before it to land later.
//
// A Context is valid for a single synchronous invocation and must not
// be retained.
type Context struct {
	inj        host.Injector
	lastOffset int
	delayed    bool
}

// NewContext creates a fresh invocation context.
func NewContext(inj host.Injector) *Context {
	return &Context{inj: inj, lastOffset: -1}
}

// InjectKey emits an immediate synthetic key event.
func (c *Context) InjectKey(code key.Code, pressed bool) {
	c.inj.InjectKey(code, pressed)
}

// InjectKeyWithDelay emits a synthetic key event offsetMS milliseconds
// after the first injection of this invocation. Offsets must be
// strictly increasing across the invocation.
func (c *Context) InjectKeyWithDelay(code key.Code, pressed bool, offsetMS int) error {
	if offsetMS < 0 {
		return fmt.Errorf("delayed injection offset %d is negative", offsetMS)
	}
	if c.delayed && offsetMS <= c.lastOffset {
		return fmt.Errorf("offset %d after offset %d: %w", offsetMS, c.lastOffset, ErrOffsetNotIncreasing)
	}
	c.delayed = true
	c.lastOffset = offsetMS
	c.inj.InjectKeyWithDelay(code, pressed, offsetMS)
	return nil
}

// InjectMouseButton emits an immediate synthetic mouse button event.
func (c *Context) InjectMouseButton(button key.Button, pressed bool) {
	c.inj.InjectMouseButton(button, pressed)
}

// InjectMouseWheel emits an immediate synthetic wheel step.
func (c *Context) InjectMouseWheel(direction key.WheelDirection) {
	c.inj.InjectMouseWheel(direction)
}

// TapKey emits a press immediately followed by a release.
func (c *Context) TapKey(code key.Code) {
	c.inj.InjectKey(code, true)
	c.inj.InjectKey(code, false)
}
