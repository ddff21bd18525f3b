package class

import (
	"slices"

	"github.com/google/uuid"
)

// Table is a member table: own entries plus fallback to a parent table.
// Lookups that miss fall through to the parent; writes only ever touch the own entries.
type Table struct {
	parent *Table
	names  []string
	store  map[string]any
	// layer identifies the class, trait or decorator that produced the table.
	layer  uuid.UUID
	sealed bool
}

// NewTable creates an empty table falling through to parent. parent may be nil.
func NewTable(parent *Table) *Table {
	return &Table{
		parent: parent,
		store:  make(map[string]any),
	}
}

// Parent returns the fallback table, or nil for a root table.
func (t *Table) Parent() *Table {
	return t.parent
}

// Get looks name up in t and then along the parent chain.
func (t *Table) Get(name string) (any, bool) {
	for cur := t; cur != nil; cur = cur.parent {
		if v, ok := cur.store[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Own looks name up in t only.
func (t *Table) Own(name string) (any, bool) {
	v, ok := t.store[name]
	return v, ok
}

// Has reports whether name resolves in t or its parents.
func (t *Table) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Method returns name when it resolves to a method.
func (t *Table) Method(name string) (Func, bool) {
	v, ok := t.Get(name)
	if !ok {
		return nil, false
	}

	return asFunc(v)
}

// Constructor returns the class bound to t, or nil while t is not bound to any.
func (t *Table) Constructor() *Class {
	v, _ := t.Get(ConstructorName)
	c, _ := v.(*Class)

	return c
}

// Set assigns an own entry. Methods are bound with no shadowed implementation.
// Use Merge to add methods that override existing ones.
// Set panics on a sealed table.
func (t *Table) Set(name string, value any) {
	if fn, ok := asFunc(value); ok {
		value = bindSuper(name, nil, fn)
	}

	t.put(name, value)
}

// put stores value as is.
func (t *Table) put(name string, value any) {
	if t.sealed {
		panic("class: assignment to sealed member table: " + name)
	}

	if _, ok := t.store[name]; !ok {
		t.names = append(t.names, name)
	}

	t.store[name] = value
}

// Names returns the own entry names in insertion order.
func (t *Table) Names() []string {
	return slices.Clone(t.names)
}

// All returns every name visible through t, root table first, each name once.
func (t *Table) All() []string {
	var chain []*Table
	for cur := t; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}

	seen := make(map[string]struct{})

	var out []string

	for i := len(chain) - 1; i >= 0; i-- {
		for _, name := range chain[i].names {
			if _, ok := seen[name]; ok {
				continue
			}

			seen[name] = struct{}{}
			out = append(out, name)
		}
	}

	return out
}

// Origin returns the identity of the layer whose table holds the visible entry for name.
// It returns uuid.Nil when name is unknown or was added by an anonymous table.
func (t *Table) Origin(name string) uuid.UUID {
	for cur := t; cur != nil; cur = cur.parent {
		if _, ok := cur.store[name]; ok {
			return cur.layer
		}
	}

	return uuid.Nil
}

// Composes reports whether the layer identified by id produced t or one of its parents.
func (t *Table) Composes(id uuid.UUID) bool {
	if id == uuid.Nil {
		return false
	}

	for cur := t; cur != nil; cur = cur.parent {
		if cur.layer == id {
			return true
		}
	}

	return false
}

// Sealed reports whether t rejects further writes.
func (t *Table) Sealed() bool {
	return t.sealed
}

func (t *Table) seal() {
	t.sealed = true
}

// writable returns t, or a fresh table deriving from t when t is sealed.
func (t *Table) writable() *Table {
	if t.sealed {
		return NewTable(t)
	}

	return t
}
