package class

import "fmt"

// ConstructorName is the member table entry bound to the owning *Class.
const ConstructorName = "constructor"

// Func is a method body. c carries the receiver and the implementation this method
// shadows; args are the call arguments.
type Func func(c *Call, args ...any) (any, error)

// Call is the dispatch frame of one method invocation.
// A new frame is created for every invocation of a table method, so Super always refers
// to the immediate parent of the running implementation.
type Call struct {
	// Self is the receiving instance.
	Self *Instance
	// Name is the member being invoked.
	Name string

	super Func
}

// Super invokes the implementation shadowed by the running method with the same receiver.
func (c *Call) Super(args ...any) (any, error) {
	if c.super == nil {
		return nil, fmt.Errorf("%s: %w", c.Name, ErrNoSuper)
	}

	return c.super(c, args...)
}

// HasSuper reports whether the running method shadows another implementation.
func (c *Call) HasSuper() bool {
	return c.super != nil
}

// AbstractMethod marks a required member that subclasses must implement.
var AbstractMethod Func = func(c *Call, _ ...any) (any, error) {
	return nil, &AbstractCallError{Method: c.Name}
}

// bindSuper returns an adapter that runs fn in its own frame whose super is parent.
// The caller's frame is never modified, so the binding is restored on every exit path
// and nested or recursive calls each see their own parent.
func bindSuper(name string, parent, fn Func) Func {
	return func(c *Call, args ...any) (any, error) {
		frame := &Call{Name: name, super: parent}
		if c != nil {
			frame.Self = c.Self
		}

		return fn(frame, args...)
	}
}

// asFunc recognizes member values that are methods.
func asFunc(v any) (Func, bool) {
	switch fn := v.(type) {
	case Func:
		return fn, fn != nil
	case func(*Call, ...any) (any, error):
		return fn, fn != nil
	default:
		return nil, false
	}
}
