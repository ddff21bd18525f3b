package class

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Class is a constructible unit: a constructor bound one to one to a member table whose
// "constructor" entry is the *Class itself.
type Class struct {
	id    uuid.UUID
	name  string
	table *Table
	init  Func
}

// DefineClass builds a class from spec.
//
// Without a constructor the class forwards construction arguments to the constructor
// inherited through the base list, or does nothing when there is none.
func DefineClass(spec Spec) (*Class, error) {
	subject := spec.subject("class")

	members, ctor, err := spec.splitConstructor(subject)
	if err != nil {
		return nil, err
	}

	resolved, err := resolveChain(subject, spec.Base)
	if err != nil {
		return nil, err
	}

	if ctor == nil {
		if constructorOf(resolved) != nil {
			ctor = forwardConstructor
		} else {
			ctor = noopConstructor
		}
	}

	members[ConstructorName] = ctor

	table, err := Merge(resolved, members, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", subject, err)
	}

	id := uuid.New()
	table.layer = id

	table, err = foldLayers(subject, table, spec.Decorators)
	if err != nil {
		return nil, err
	}

	table = table.writable()

	if err := decorateMembers(subject, table, spec.MemberDecorators); err != nil {
		return nil, err
	}

	return bind(id, spec.Name, table), nil
}

// bind closes the constructor/table cycle: the table's constructor implementation moves
// into the class and the entry is replaced by the class itself.
func bind(id uuid.UUID, name string, table *Table) *Class {
	c := &Class{id: id, name: name, table: table}

	c.init = constructorOf(table)
	if c.init == nil {
		c.init = noopConstructor
	}

	table.put(ConstructorName, c)
	table.layer = id
	table.seal()

	return c
}

func forwardConstructor(c *Call, args ...any) (any, error) {
	return c.Super(args...)
}

func noopConstructor(*Call, ...any) (any, error) {
	return nil, nil
}

func (c *Class) Kind() Kind { return KindClass }

// ID returns the unique identity of the class.
func (c *Class) ID() uuid.UUID { return c.id }

// Name returns the declared name, possibly empty.
func (c *Class) Name() string { return c.name }

// Table returns the class member table.
func (c *Class) Table() *Table { return c.table }

// String returns the name, or a short id for anonymous classes.
func (c *Class) String() string {
	if c.name != "" {
		return c.name
	}

	return "class#" + c.id.String()[:8]
}

// New creates an instance whose lookups fall through to the class table and runs the
// constructor against it.
func (c *Class) New(args ...any) (*Instance, error) {
	inst := newInstance(c)

	if _, err := c.init(&Call{Self: inst, Name: ConstructorName}, args...); err != nil {
		return nil, fmt.Errorf("construct %s: %w", c, err)
	}

	return inst, nil
}

// Decorate defines a new class with c as the base followed by layers, leaving c intact.
func (c *Class) Decorate(layers ...Layer) (*Class, error) {
	return DefineClass(Spec{
		Name: c.name,
		Base: append([]Layer{c}, layers...),
	})
}

// Composes reports whether l took part in building c. A class composes itself.
func (c *Class) Composes(l Layer) bool {
	if isNilLayer(l) {
		return false
	}

	return c.table.Composes(l.layerID())
}

// Member returns a nested class member.
func (c *Class) Member(name string) (*Class, bool) {
	v, ok := c.table.Get(name)
	if !ok {
		return nil, false
	}

	nested, ok := v.(*Class)

	return nested, ok
}

// Methods returns the names of every method visible through the class table.
func (c *Class) Methods() []string {
	return slices.DeleteFunc(c.table.All(), func(name string) bool {
		_, ok := c.table.Method(name)
		return !ok
	})
}

func (c *Class) applyTable(*Table) (*Table, error) {
	return nil, configErrorf(c.String(), "a class can only seed a base list")
}

func (c *Class) layerID() uuid.UUID { return c.id }

func (c *Class) layerName() string { return c.String() }
