package manifest

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"class-composer/class"
	"class-composer/options"
	"class-composer/proxy"
	"class-composer/utils"
)

// Set holds the layers defined by a manifest.
type Set struct {
	layers map[string]class.Layer
	order  []string
	names  map[uuid.UUID]string
}

// Layer returns the class, trait or decorator defined under name.
func (s *Set) Layer(name string) (class.Layer, bool) {
	l, ok := s.layers[name]
	return l, ok
}

// Class returns the class defined under name. Proxy classes are included.
func (s *Set) Class(name string) (*class.Class, bool) {
	c, ok := s.layers[name].(*class.Class)
	return c, ok
}

// Trait returns the trait defined under name. Proxy traits are included.
func (s *Set) Trait(name string) (*class.Trait, bool) {
	t, ok := s.layers[name].(*class.Trait)
	return t, ok
}

// Decorator returns the derived decorator defined under name.
func (s *Set) Decorator(name string) (*class.Decorator, bool) {
	d, ok := s.layers[name].(*class.Decorator)
	return d, ok
}

// Names returns the entry names in the order they were defined.
func (s *Set) Names() []string {
	return slices.Clone(s.order)
}

// LayerName returns the manifest or registry name of the layer identified by id.
// Nested classes are named "Outer.Member". It returns "" for unknown identities.
func (s *Set) LayerName(id uuid.UUID) string {
	return s.names[id]
}

// Build validates f and defines its entries in dependency order.
func Build(f *File, reg *Registry) (*Set, error) {
	if err := Validate(f, reg).Error(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	ix := newIndex(f)

	order, err := ix.order()
	if err != nil {
		return nil, err
	}

	b := &builder{
		ix:  ix,
		reg: reg,
		set: &Set{
			layers: make(map[string]class.Layer, len(order)),
			names:  make(map[uuid.UUID]string),
		},
	}

	for _, i := range order {
		e := ix.entries[i]

		l, err := b.build(e)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.subject(), err)
		}

		b.set.layers[e.name] = l
		b.set.order = append(b.set.order, e.name)
		b.name(l, e.name)
	}

	return b.set, nil
}

type builder struct {
	ix  *index
	reg *Registry
	set *Set
}

func (b *builder) build(e entry) (class.Layer, error) {
	f := b.ix.file

	switch e.kind {
	case entryDecorator:
		return b.decorator(&f.Decorators[e.pos])
	case entryTrait:
		return b.trait(&f.Traits[e.pos])
	case entryClass:
		def := &f.Classes[e.pos]

		c, err := b.class(def, def.Name)
		if err != nil {
			return nil, err
		}

		b.nameNested(c, def, def.Name)

		return c, nil
	case entryProxy:
		return b.proxy(&f.Proxies[e.pos])
	default:
		return nil, fmt.Errorf("unsupported entry kind %s", e.kind)
	}
}

func (b *builder) decorator(def *DecoratorDef) (*class.Decorator, error) {
	base, err := b.decoratorRef(def.Use)
	if err != nil {
		return nil, err
	}

	d := base.Named(def.Name)

	if len(def.Where) > 0 {
		d = d.Where(utils.OneOf(def.Where...))
	}

	if len(def.Options) > 0 {
		d = d.Opt(options.Bag(def.Options))
	}

	return d, nil
}

func (b *builder) trait(def *TraitDef) (*class.Trait, error) {
	spec, err := b.spec(def.Name, def.Base, def.Members, def.Decorators, def.MemberDecorators)
	if err != nil {
		return nil, err
	}

	return class.DefineTrait(spec)
}

func (b *builder) class(def *ClassDef, name string) (*class.Class, error) {
	spec, err := b.classSpec(def, name)
	if err != nil {
		return nil, err
	}

	return class.DefineClass(spec)
}

func (b *builder) classSpec(def *ClassDef, name string) (class.Spec, error) {
	spec, err := b.spec(name, def.Base, def.Members, def.Decorators, def.MemberDecorators)
	if err != nil {
		return class.Spec{}, err
	}

	if def.Constructor != "" {
		ctor, err := b.method(def.Constructor)
		if err != nil {
			return class.Spec{}, err
		}

		spec.Constructor = ctor
	}

	return spec, nil
}

func (b *builder) spec(
	name string,
	base StringOrArray,
	members map[string]MemberDef,
	decorators StringOrArray,
	memberDecorators map[string]StringOrArray,
) (class.Spec, error) {
	spec := class.Spec{Name: name, Members: class.Members{}}

	var err error

	if spec.Base, err = b.layers(base); err != nil {
		return class.Spec{}, err
	}

	if spec.Decorators, err = b.layers(decorators); err != nil {
		return class.Spec{}, err
	}

	if len(memberDecorators) > 0 {
		spec.MemberDecorators = make(map[string][]class.Layer, len(memberDecorators))

		for _, member := range slices.Sorted(maps.Keys(memberDecorators)) {
			if spec.MemberDecorators[member], err = b.layers(memberDecorators[member]); err != nil {
				return class.Spec{}, err
			}
		}
	}

	for _, member := range slices.Sorted(maps.Keys(members)) {
		value, err := b.member(member, members[member])
		if err != nil {
			return class.Spec{}, fmt.Errorf("member %s: %w", member, err)
		}

		spec.Members[member] = value
	}

	return spec, nil
}

func (b *builder) member(name string, m MemberDef) (any, error) {
	switch m.Kind {
	case MemberMethod:
		return b.method(m.Method)
	case MemberAbstract:
		return class.AbstractMethod, nil
	case MemberClass:
		nested := m.Class.Name
		if nested == "" {
			nested = name
		}

		return b.classSpec(m.Class, nested)
	default:
		return m.Value, nil
	}
}

func (b *builder) proxy(def *ProxyDef) (class.Layer, error) {
	cfg := proxy.DefaultConfig()
	cfg.Name = def.Name

	if def.Field != "" {
		cfg.Field = def.Field
	}

	names := slices.Clone(def.Methods)

	if def.Of != "" {
		target, ok := b.set.Class(def.Of)
		if !ok {
			return nil, fmt.Errorf("proxy target %q is not defined", def.Of)
		}

		names = proxy.MethodsOf(target, cfg)
	}

	if def.Trait {
		return proxy.DefineTrait(names, cfg)
	}

	return proxy.Define(names, cfg)
}

func (b *builder) layers(names StringOrArray) ([]class.Layer, error) {
	if len(names) == 0 {
		return nil, nil
	}

	out := make([]class.Layer, 0, len(names))

	for _, name := range names {
		l, err := b.layer(name)
		if err != nil {
			return nil, err
		}

		out = append(out, l)
	}

	return out, nil
}

// layer resolves a base or decorator list entry: manifest entries first, then registered
// decorators, then registered transforms, then lenient stand-ins.
func (b *builder) layer(name string) (class.Layer, error) {
	if l, ok := b.set.layers[name]; ok {
		return l, nil
	}

	switch {
	case b.reg.HasDecorator(name):
		return b.decoratorRef(name)
	case b.reg.HasTransform(name):
		t, _ := b.reg.Transform(name)
		return t, nil
	case b.reg.Lenient():
		return b.decoratorRef(name)
	default:
		return nil, fmt.Errorf("unknown layer %q", name)
	}
}

func (b *builder) decoratorRef(name string) (*class.Decorator, error) {
	if d, ok := b.set.Decorator(name); ok {
		return d, nil
	}

	d, ok := b.reg.Decorator(name)
	if !ok {
		return nil, fmt.Errorf("unknown decorator %q", name)
	}

	b.name(d, name)

	return d, nil
}

func (b *builder) method(name string) (class.Func, error) {
	fn, ok := b.reg.Method(name)
	if !ok {
		return nil, fmt.Errorf("method %q is not registered", name)
	}

	return fn, nil
}

// name records the display name of l.
func (b *builder) name(l class.Layer, name string) {
	switch v := l.(type) {
	case *class.Class:
		b.set.names[v.ID()] = name
	case *class.Trait:
		b.set.names[v.ID()] = name
	case *class.Decorator:
		b.set.names[v.ID()] = name
	}
}

// nameNested records the nested classes a class definition declares.
func (b *builder) nameNested(c *class.Class, def *ClassDef, prefix string) {
	for _, member := range slices.Sorted(maps.Keys(def.Members)) {
		m := def.Members[member]
		if m.Kind != MemberClass || m.Class == nil {
			continue
		}

		nested, ok := c.Member(member)
		if !ok {
			continue
		}

		name := prefix + "." + member
		b.name(nested, name)
		b.nameNested(nested, m.Class, name)
	}
}
