package class

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
)

// Trait is a reusable, constructor-less set of members. A trait is applied onto a table,
// class, trait or instance, and composes with other traits through its own base list.
// Decorators in the base list or in Decorators only rewrite members the trait contributes;
// the members of the table it is applied to are left alone.
type Trait struct {
	id               uuid.UUID
	name             string
	base             []Layer
	members          Members
	decorators       []Layer
	memberDecorators map[string][]Layer
}

// DefineTrait builds a trait from spec. Traits cannot declare a constructor and their
// base list cannot hold a class.
func DefineTrait(spec Spec) (*Trait, error) {
	subject := spec.subject("trait")

	if spec.Constructor != nil {
		return nil, configErrorf(subject, "a trait cannot declare a constructor")
	}

	if _, ok := spec.Members[ConstructorName]; ok {
		return nil, configErrorf(subject, "a trait cannot declare a constructor")
	}

	for i, l := range spec.Base {
		if isNilLayer(l) {
			return nil, configErrorf(subject, "base entry %d is not a trait or transform", i)
		}

		if l.Kind() == KindClass {
			return nil, configErrorf(subject, "a trait cannot extend class %s", l.layerName())
		}
	}

	return &Trait{
		id:               uuid.New(),
		name:             spec.Name,
		base:             slices.Clone(spec.Base),
		members:          spec.Members.Clone(),
		decorators:       slices.Clone(spec.Decorators),
		memberDecorators: maps.Clone(spec.MemberDecorators),
	}, nil
}

func (t *Trait) Kind() Kind { return KindTrait }

// ID returns the unique identity of the trait.
func (t *Trait) ID() uuid.UUID { return t.id }

// Name returns the declared name, possibly empty.
func (t *Trait) Name() string { return t.name }

// String returns the name, or a short id for anonymous traits.
func (t *Trait) String() string {
	if t.name != "" {
		return t.name
	}

	return "trait#" + t.id.String()[:8]
}

// Members returns a copy of the trait's own members.
func (t *Trait) Members() Members {
	return t.members.Clone()
}

// Base returns a copy of the trait's ancestor list.
func (t *Trait) Base() []Layer {
	return slices.Clone(t.base)
}

// ApplyTable applies the ancestors of t onto target in order, then merges the trait's
// members onto the result. The constructor of target is kept.
func (t *Trait) ApplyTable(target *Table) (*Table, error) {
	return t.applyTable(target)
}

func (t *Trait) applyTable(target *Table) (*Table, error) {
	subject := "trait " + t.String()

	if target == nil {
		target = NewTable(nil)
	}

	acc := target

	for _, l := range t.base {
		next, err := scopeLayer(l, acc, target).applyTable(acc)
		if err != nil {
			return nil, err
		}

		acc = next
	}

	table, err := Merge(acc, t.members, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", subject, err)
	}

	table.layer = t.id

	for _, l := range t.decorators {
		table, err = foldLayers(subject, table, []Layer{scopeLayer(l, table, target)})
		if err != nil {
			return nil, err
		}
	}

	table = table.writable()
	table.layer = t.id

	if err := decorateMembers(subject, table, t.memberDecorators); err != nil {
		return nil, err
	}

	table.seal()

	return table, nil
}

// Apply applies the trait to target:
//   - *Table: returns the extended *Table
//   - *Class: returns a new *Class, see Class.Decorate
//   - *Trait: returns a new *Trait, see Trait.Decorate
//   - *Instance: returns a new *Instance of the extended class holding a copy of the
//     fields; an instance already built from t is rejected
func (t *Trait) Apply(target any) (any, error) {
	switch v := target.(type) {
	case *Table:
		return t.applyTable(v)
	case *Class:
		return v.Decorate(t)
	case *Trait:
		return v.Decorate(t)
	case *Instance:
		if v.Is(t) {
			return nil, configErrorf("trait "+t.String(), "already applied to this instance of %s", v.class)
		}

		extended, err := v.class.Decorate(t)
		if err != nil {
			return nil, err
		}

		return v.with(extended), nil
	default:
		return nil, configErrorf("trait "+t.String(), "cannot be applied to %T", target)
	}
}

// Decorate defines a new trait with t as the first ancestor followed by layers.
// Decorators among layers only rewrite members contributed by the layers before them.
func (t *Trait) Decorate(layers ...Layer) (*Trait, error) {
	return DefineTrait(Spec{
		Name: t.name,
		Base: append([]Layer{t}, layers...),
	})
}

// scopeLayer restricts a decorator applied inside a trait to the members the trait has
// contributed on top of target so far. Other layers are returned as is.
func scopeLayer(l Layer, acc, target *Table) Layer {
	d, ok := l.(*Decorator)
	if !ok || d == nil {
		return l
	}

	return d.scopedTo(contributedNames(acc, target))
}

// contributedNames lists the own names of the tables between t and target.
func contributedNames(t, target *Table) []string {
	var names []string
	for cur := t; cur != nil && cur != target; cur = cur.parent {
		names = append(names, cur.names...)
	}

	return names
}

func (t *Trait) layerID() uuid.UUID { return t.id }

func (t *Trait) layerName() string { return t.String() }
