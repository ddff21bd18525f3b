package class

import (
	"fmt"
	"maps"
	"sync"
)

// Instance is an object built by a class. Field lookups fall through to the class table.
// Instances are safe for concurrent use; method bodies are responsible for their own state.
type Instance struct {
	class *Class

	mu     sync.RWMutex
	fields map[string]any
}

func newInstance(c *Class) *Instance {
	return &Instance{class: c, fields: make(map[string]any)}
}

// Class returns the class that built the instance.
func (i *Instance) Class() *Class {
	return i.class
}

// Get looks name up in the instance fields and then in the class table.
func (i *Instance) Get(name string) (any, bool) {
	i.mu.RLock()
	v, ok := i.fields[name]
	i.mu.RUnlock()

	if ok {
		return v, true
	}

	return i.class.table.Get(name)
}

// Set assigns an instance field, shadowing any class member of the same name.
func (i *Instance) Set(name string, value any) {
	i.mu.Lock()
	i.fields[name] = value
	i.mu.Unlock()
}

// Fields returns a copy of the instance's own fields.
func (i *Instance) Fields() map[string]any {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return maps.Clone(i.fields)
}

// Call invokes the method name with args.
func (i *Instance) Call(name string, args ...any) (any, error) {
	v, ok := i.Get(name)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", i.class, name, ErrUnknownMember)
	}

	fn, ok := asFunc(v)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", i.class, name, ErrNotCallable)
	}

	return fn(&Call{Self: i, Name: name}, args...)
}

// New constructs an instance of the nested class member name.
func (i *Instance) New(name string, args ...any) (*Instance, error) {
	v, ok := i.Get(name)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", i.class, name, ErrUnknownMember)
	}

	nested, ok := v.(*Class)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w: member is %T, not a class", i.class, name, ErrNotCallable, v)
	}

	return nested.New(args...)
}

// Is reports whether the instance's class composes l.
func (i *Instance) Is(l Layer) bool {
	return i.class.Composes(l)
}

// with returns a copy of the instance rebuilt on class c.
func (i *Instance) with(c *Class) *Instance {
	out := newInstance(c)
	out.fields = i.Fields()

	return out
}
