package class

// Merge derives a table from base and applies members onto it.
//
//   - data values and methods without a base method are assigned directly
//   - methods overriding a base method are bound to it, see Call.Super
//   - Members and Spec values define a nested class, extending the base member when
//     it is a *Class; extending a base member that is not a class is an error
//   - "constructor" is skipped when skipConstructor is set, otherwise it is bound to the
//     base constructor like any overriding method
//
// base may be nil.
func Merge(base *Table, members Members, skipConstructor bool) (*Table, error) {
	result := NewTable(base)

	for _, name := range members.Names() {
		value := members[name]

		if name == ConstructorName {
			if skipConstructor {
				continue
			}

			fn, ok := asFunc(value)
			if !ok {
				return nil, configErrorf(name, "constructor must be a method, got %T", value)
			}

			result.put(name, bindSuper(name, constructorOf(base), fn))

			continue
		}

		var (
			baseValue any
			hasBase   bool
		)

		if base != nil {
			baseValue, hasBase = base.Get(name)
		}

		member, err := mergeMember(name, baseValue, hasBase, value)
		if err != nil {
			return nil, err
		}

		result.put(name, member)
	}

	return result, nil
}

func mergeMember(name string, baseValue any, hasBase bool, value any) (any, error) {
	if fn, ok := asFunc(value); ok {
		parent, _ := asFunc(baseValue)
		return bindSuper(name, parent, fn), nil
	}

	switch v := value.(type) {
	case Members:
		return extendNested(name, baseValue, hasBase, Spec{Members: v})
	case Spec:
		return extendNested(name, baseValue, hasBase, v)
	case *Spec:
		if v == nil {
			return value, nil
		}

		return extendNested(name, baseValue, hasBase, *v)
	default:
		return value, nil
	}
}

// extendNested defines the nested class described by spec, deriving it from the base
// member when there is one.
func extendNested(name string, baseValue any, hasBase bool, spec Spec) (*Class, error) {
	if spec.Name == "" {
		spec.Name = name
	}

	if hasBase {
		baseClass, ok := baseValue.(*Class)
		if !ok {
			return nil, configErrorf(name, "cannot extend base member of type %T as a class", baseValue)
		}

		spec.Base = append([]Layer{baseClass}, spec.Base...)
	}

	return DefineClass(spec)
}

// constructorOf returns the constructor implementation visible through t.
func constructorOf(t *Table) Func {
	if t == nil {
		return nil
	}

	v, ok := t.Get(ConstructorName)
	if !ok {
		return nil
	}

	if c, isClass := v.(*Class); isClass {
		return c.init
	}

	fn, _ := asFunc(v)

	return fn
}
