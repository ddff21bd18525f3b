package manifest

import (
	"maps"
	"slices"
	"sync"

	"class-composer/class"
	"class-composer/options"
)

// Registry binds the names used in a manifest to Go code.
// Registration is not safe for concurrent use; lookups are.
type Registry struct {
	methods    map[string]class.Func
	decorators map[string]*class.Decorator
	transforms map[string]class.Transform

	// lenient registries resolve unknown names to stand-ins, see NewLenientRegistry.
	lenient bool
	mu      sync.Mutex
	standIn map[string]*class.Decorator
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		methods:    make(map[string]class.Func),
		decorators: make(map[string]*class.Decorator),
		transforms: make(map[string]class.Transform),
	}
}

// NewLenientRegistry creates a registry that resolves unknown methods to
// class.AbstractMethod, unknown decorators to decorators keeping every member unchanged
// and unknown transforms to the identity. It lets a manifest be built and inspected
// without its Go implementation.
func NewLenientRegistry() *Registry {
	r := NewRegistry()
	r.lenient = true
	r.standIn = make(map[string]*class.Decorator)

	return r
}

// Lenient reports whether unknown names resolve to stand-ins.
func (r *Registry) Lenient() bool {
	return r.lenient
}

// RegisterMethod adds a method body.
func (r *Registry) RegisterMethod(name string, fn class.Func) {
	r.methods[name] = fn
}

// RegisterDecorator adds a decorator.
func (r *Registry) RegisterDecorator(name string, d *class.Decorator) {
	r.decorators[name] = d
}

// RegisterTransform adds a whole-table transform.
func (r *Registry) RegisterTransform(name string, t class.Transform) {
	r.transforms[name] = t
}

// Method returns a registered method.
func (r *Registry) Method(name string) (class.Func, bool) {
	if fn, ok := r.methods[name]; ok {
		return fn, true
	}

	if r.lenient {
		return class.AbstractMethod, true
	}

	return nil, false
}

// Decorator returns a registered decorator.
func (r *Registry) Decorator(name string) (*class.Decorator, bool) {
	if d, ok := r.decorators[name]; ok {
		return d, true
	}

	if !r.lenient {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.standIn[name]
	if !ok {
		d = class.DefineDecorator(keepMember, class.Settings{Name: name})
		r.standIn[name] = d
	}

	return d, true
}

// Transform returns a registered transform.
func (r *Registry) Transform(name string) (class.Transform, bool) {
	if t, ok := r.transforms[name]; ok {
		return t, true
	}

	if r.lenient {
		return identity, true
	}

	return nil, false
}

// HasMethod returns true if a method is registered under name, stand-ins excluded.
func (r *Registry) HasMethod(name string) bool {
	_, ok := r.methods[name]
	return ok
}

// HasDecorator returns true if a decorator is registered under name, stand-ins excluded.
func (r *Registry) HasDecorator(name string) bool {
	_, ok := r.decorators[name]
	return ok
}

// HasTransform returns true if a transform is registered under name, stand-ins excluded.
func (r *Registry) HasTransform(name string) bool {
	_, ok := r.transforms[name]
	return ok
}

// MethodNames returns all registered method names, sorted.
func (r *Registry) MethodNames() []string {
	return slices.Sorted(maps.Keys(r.methods))
}

// DecoratorNames returns all registered decorator names, sorted.
func (r *Registry) DecoratorNames() []string {
	return slices.Sorted(maps.Keys(r.decorators))
}

// TransformNames returns all registered transform names, sorted.
func (r *Registry) TransformNames() []string {
	return slices.Sorted(maps.Keys(r.transforms))
}

func keepMember(class.Func, class.MemberInfo, options.Bag) (class.Func, error) {
	return nil, nil
}

func identity(*class.Table) (*class.Table, error) {
	return nil, nil
}
