package class

import (
	"maps"
	"slices"
)

// Members maps member names to values: data, methods (Func), nested classes (*Class) or
// nested specifications (Members or Spec) that extend the base member of the same name.
// Members are merged in sorted name order, so Table.Names and Table.All list the names
// of one merge sorted rather than in declaration order.
type Members map[string]any

// Names returns the member names in the order they are applied, sorted.
func (m Members) Names() []string {
	return slices.Sorted(maps.Keys(m))
}

// Clone returns a shallow copy of m.
func (m Members) Clone() Members {
	out := make(Members, len(m))
	maps.Copy(out, m)

	return out
}

// Spec is the declarative description of a class or trait.
type Spec struct {
	// Name is used in diagnostics and by nested classes; it may be empty.
	Name string
	// Base is the ordered super list. A *Class may only appear first.
	Base []Layer
	// Constructor initializes new instances. Traits must leave it nil.
	Constructor Func
	// Members are the spec's own members.
	Members Members
	// Decorators are class-level layers applied to the merged table in order.
	Decorators []Layer
	// MemberDecorators maps member names to layers re-applied to that member
	// after the class-level decorators ran.
	MemberDecorators map[string][]Layer
}

// subject names s in errors.
func (s *Spec) subject(kind string) string {
	if s.Name == "" {
		return "anonymous " + kind
	}

	return kind + " " + s.Name
}

// splitConstructor returns a copy of the members without "constructor" and the
// constructor declared either way.
func (s *Spec) splitConstructor(subject string) (Members, Func, error) {
	members := s.Members.Clone()
	ctor := s.Constructor

	if v, ok := members[ConstructorName]; ok {
		fn, isFunc := asFunc(v)
		if !isFunc {
			return nil, nil, configErrorf(subject, "constructor member must be a method, got %T", v)
		}

		if ctor != nil {
			return nil, nil, configErrorf(subject, "constructor declared both as field and member")
		}

		ctor = fn
		delete(members, ConstructorName)
	}

	return members, ctor, nil
}
