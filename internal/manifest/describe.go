package manifest

import (
	"class-composer/class"
)

// MemberRow describes one visible member of a member table.
type MemberRow struct {
	Name string
	// Kind is "constructor", "method", "class" or "data".
	Kind string
	// Layer names the class, trait or decorator that defined the visible entry;
	// "-" when the entry comes from an anonymous layer.
	Layer string
}

// Description is the member table of one class or trait.
type Description struct {
	Name    string
	Kind    class.Kind
	Members []MemberRow
}

// Describe returns the member tables of every class and trait in definition order.
// Traits are described as applied to an empty table.
func (s *Set) Describe() ([]Description, error) {
	var out []Description

	for _, name := range s.order {
		var table *class.Table

		switch l := s.layers[name].(type) {
		case *class.Class:
			table = l.Table()
		case *class.Trait:
			applied, err := l.ApplyTable(class.NewTable(nil))
			if err != nil {
				return nil, err
			}

			table = applied
		default:
			continue
		}

		out = append(out, Description{
			Name:    name,
			Kind:    s.layers[name].Kind(),
			Members: s.rows(table),
		})
	}

	return out, nil
}

func (s *Set) rows(table *class.Table) []MemberRow {
	names := table.All()
	rows := make([]MemberRow, 0, len(names))

	for _, name := range names {
		layer := s.LayerName(table.Origin(name))
		if layer == "" {
			layer = "-"
		}

		rows = append(rows, MemberRow{Name: name, Kind: memberKind(table, name), Layer: layer})
	}

	return rows
}

func memberKind(table *class.Table, name string) string {
	if name == class.ConstructorName {
		return "constructor"
	}

	if _, ok := table.Method(name); ok {
		return "method"
	}

	if v, _ := table.Get(name); v != nil {
		if _, ok := v.(*class.Class); ok {
			return "class"
		}
	}

	return "data"
}
