package class

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"class-composer/options"
	"class-composer/utils"
)

// MemberInfo identifies the member handed to a decorator transform.
type MemberInfo struct {
	// Name is the member name; empty when a lone function is decorated.
	Name string
	// Parent is the table owning the member; nil when a lone function is decorated.
	Parent *Table
}

// MemberTransform rewrites a method. Returning a nil Func keeps the original method.
type MemberTransform func(fn Func, info MemberInfo, opts options.Bag) (Func, error)

// Settings configure a decorator.
type Settings struct {
	// Name is used in errors and lineage reports.
	Name string
	// Filter selects the members rewritten when the decorator is applied to a whole
	// table, class or trait. Nil selects every member.
	Filter utils.Predicate[string]
	// Options are passed to the transform.
	Options options.Bag
}

// Decorator is a reusable member transform plus immutable settings.
// Where and Opt derive new decorators; the receiver never changes.
type Decorator struct {
	id        uuid.UUID
	transform MemberTransform
	settings  Settings
}

// DefineDecorator creates a decorator. Multiple settings are combined: names are
// overridden, filters are ANDed and options merged in order.
// DefineDecorator panics when transform is nil.
func DefineDecorator(transform MemberTransform, settings ...Settings) *Decorator {
	if transform == nil {
		panic("class: decorator transform cannot be nil")
	}

	d := &Decorator{id: uuid.New(), transform: transform}
	d.settings.Options = options.Bag{}

	for _, s := range settings {
		if s.Name != "" {
			d.settings.Name = s.Name
		}

		if s.Filter != nil {
			d.settings.Filter = utils.And(d.settings.Filter, s.Filter)
		}

		d.settings.Options = options.Merge(d.settings.Options, s.Options)
	}

	return d
}

func (d *Decorator) Kind() Kind { return KindDecorator }

// ID returns the unique identity of the decorator.
func (d *Decorator) ID() uuid.UUID { return d.id }

// Name returns the configured name, possibly empty.
func (d *Decorator) Name() string { return d.settings.Name }

// String returns the name, or a short id for anonymous decorators.
func (d *Decorator) String() string {
	if d.settings.Name != "" {
		return d.settings.Name
	}

	return "decorator#" + d.id.String()[:8]
}

// Options returns a copy of the decorator options.
func (d *Decorator) Options() options.Bag {
	return d.settings.Options.Clone()
}

// Matches reports whether a whole-table application rewrites member name.
func (d *Decorator) Matches(name string) bool {
	if name == ConstructorName {
		return false
	}

	return d.settings.Filter == nil || d.settings.Filter(name)
}

// Where derives a decorator whose filter is the receiver's filter AND pred.
func (d *Decorator) Where(pred utils.Predicate[string]) *Decorator {
	next := d.derive()
	if pred != nil {
		next.settings.Filter = utils.And(d.settings.Filter, pred)
	}

	return next
}

// Opt derives a decorator whose options are the receiver's options overlaid with opts.
func (d *Decorator) Opt(opts options.Bag) *Decorator {
	next := d.derive()
	next.settings.Options = options.Merge(d.settings.Options, opts)

	return next
}

// Named derives a decorator with a different name.
func (d *Decorator) Named(name string) *Decorator {
	next := d.derive()
	next.settings.Name = name

	return next
}

func (d *Decorator) derive() *Decorator {
	return &Decorator{
		id:        uuid.New(),
		transform: d.transform,
		settings: Settings{
			Name:    d.settings.Name,
			Filter:  d.settings.Filter,
			Options: d.settings.Options.Clone(),
		},
	}
}

// ApplyFunc decorates a single method. The filter is not consulted.
func (d *Decorator) ApplyFunc(fn Func, info MemberInfo) (Func, error) {
	out, _, err := d.decorate(fn, info)
	return out, err
}

// ApplyClass defines a new class extending c whose selected methods are rewritten.
func (d *Decorator) ApplyClass(c *Class) (*Class, error) {
	return c.Decorate(d)
}

// ApplyTrait defines a new trait extending t whose selected members are rewritten.
// Only members contributed by t are rewritten when the result is applied.
// It is the same as t.Decorate(d).
func (d *Decorator) ApplyTrait(t *Trait) (*Trait, error) {
	return t.Decorate(d)
}

// scopedTo returns d restricted to names. The result keeps the identity of d.
func (d *Decorator) scopedTo(names []string) *Decorator {
	return &Decorator{
		id:        d.id,
		transform: d.transform,
		settings: Settings{
			Name:    d.settings.Name,
			Filter:  utils.And(d.settings.Filter, utils.OneOf(names...)),
			Options: d.settings.Options,
		},
	}
}

// Apply decorates target, which is a Func, *Table, *Class or *Trait, and returns a value
// of the same kind.
func (d *Decorator) Apply(target any) (any, error) {
	if fn, ok := asFunc(target); ok {
		return d.ApplyFunc(fn, MemberInfo{})
	}

	switch v := target.(type) {
	case *Table:
		return d.applyTable(v)
	case *Class:
		return d.ApplyClass(v)
	case *Trait:
		return d.ApplyTrait(v)
	default:
		return nil, configErrorf("decorator "+d.String(), "cannot be applied to %T", target)
	}
}

// decorate runs the transform and reports whether it replaced fn.
func (d *Decorator) decorate(fn Func, info MemberInfo) (Func, bool, error) {
	out, err := d.transform(fn, info, d.settings.Options.Clone())
	if err != nil {
		if info.Name != "" {
			return nil, false, fmt.Errorf("decorator %s on %s: %w", d, info.Name, err)
		}

		return nil, false, fmt.Errorf("decorator %s: %w", d, err)
	}

	if out == nil {
		return fn, false, nil
	}

	return out, true, nil
}

func (d *Decorator) applyTable(t *Table) (*Table, error) {
	changed := Members{}

	for _, name := range t.All() {
		if !d.Matches(name) {
			continue
		}

		fn, ok := t.Method(name)
		if !ok {
			continue
		}

		out, replaced, err := d.decorate(fn, MemberInfo{Name: name, Parent: t})
		if err != nil {
			return nil, err
		}

		if replaced {
			changed[name] = out
		}
	}

	if len(changed) == 0 {
		return t, nil
	}

	table, err := Merge(t, changed, true)
	if err != nil {
		return nil, err
	}

	table.layer = d.id
	table.seal()

	return table, nil
}

func (d *Decorator) layerID() uuid.UUID { return d.id }

func (d *Decorator) layerName() string { return d.String() }

// decorateMembers re-applies member-level layers to the named members of table.
func decorateMembers(subject string, table *Table, decorators map[string][]Layer) error {
	for _, name := range slices.Sorted(maps.Keys(decorators)) {
		value, ok := table.Get(name)
		if !ok {
			return configErrorf(subject, "member decorator targets unknown member %q", name)
		}

		for _, l := range decorators[name] {
			next, err := decorateMember(subject, name, table, value, l)
			if err != nil {
				return err
			}

			value = next
		}

		table.put(name, value)
	}

	return nil
}

func decorateMember(subject, name string, table *Table, value any, l Layer) (any, error) {
	if isNilLayer(l) {
		return nil, configErrorf(subject, "member decorator for %q is nil", name)
	}

	if fn, ok := asFunc(value); ok {
		d, isDecorator := l.(*Decorator)
		if !isDecorator {
			return nil, configErrorf(subject, "member %q is a method and cannot take %s %s",
				name, l.Kind(), l.layerName())
		}

		out, replaced, err := d.decorate(fn, MemberInfo{Name: name, Parent: table})
		if err != nil {
			return nil, err
		}

		if !replaced {
			return fn, nil
		}

		return bindSuper(name, fn, out), nil
	}

	nested, ok := value.(*Class)
	if !ok {
		return nil, configErrorf(subject, "member %q holds %T and cannot be decorated", name, value)
	}

	switch v := l.(type) {
	case *Class:
		return nil, configErrorf(subject, "class %s cannot decorate member %q", v, name)
	case *Decorator:
		return v.ApplyClass(nested)
	default:
		return nested.Decorate(l)
	}
}
