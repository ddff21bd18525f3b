package class

import "github.com/google/uuid"

// Layer is an entry of a base list or a decorator list: a *Class, *Trait, *Decorator or
// Transform. The set of implementations is closed.
type Layer interface {
	// Kind tells which variant the layer is.
	Kind() Kind

	// applyTable layers the receiver over t and returns the resulting table.
	applyTable(t *Table) (*Table, error)
	// layerID identifies the layer in table lineage; uuid.Nil for anonymous layers.
	layerID() uuid.UUID
	// layerName names the layer in errors.
	layerName() string
}

// Transform is a plain whole-table transform. Returning a nil table keeps the input.
type Transform func(t *Table) (*Table, error)

func (Transform) Kind() Kind { return KindTransform }

func (f Transform) applyTable(t *Table) (*Table, error) {
	next, err := f(t)
	if err != nil {
		return nil, err
	}

	if next == nil {
		return t, nil
	}

	return next, nil
}

func (Transform) layerID() uuid.UUID { return uuid.Nil }

func (Transform) layerName() string { return "transform" }

// isNilLayer catches typed nils stored in a Layer.
func isNilLayer(l Layer) bool {
	switch v := l.(type) {
	case nil:
		return true
	case *Class:
		return v == nil
	case *Trait:
		return v == nil
	case *Decorator:
		return v == nil
	case Transform:
		return v == nil
	default:
		return false
	}
}

// resolveChain folds a base list left to right into one table. It returns nil for an
// empty list. A leading *Class seeds the accumulator; every other entry is applied to it.
func resolveChain(subject string, base []Layer) (*Table, error) {
	classes := 0

	for i, l := range base {
		if isNilLayer(l) {
			return nil, configErrorf(subject, "base entry %d is not a class, trait or transform", i)
		}

		if l.Kind() == KindClass {
			classes++
		}
	}

	if classes > 1 {
		return nil, configErrorf(subject, "base list holds %d classes, at most one is allowed", classes)
	}

	var acc *Table

	for i, l := range base {
		if c, ok := l.(*Class); ok {
			if i != 0 {
				return nil, configErrorf(subject, "class %s must be the first base entry, found at %d", c, i)
			}

			acc = c.table

			continue
		}

		if acc == nil {
			acc = NewTable(nil)
		}

		next, err := l.applyTable(acc)
		if err != nil {
			return nil, err
		}

		acc = next
	}

	return acc, nil
}

// foldLayers applies non-class layers over t in order.
func foldLayers(subject string, t *Table, layers []Layer) (*Table, error) {
	for i, l := range layers {
		if isNilLayer(l) {
			return nil, configErrorf(subject, "decorator %d is not a trait, decorator or transform", i)
		}

		if l.Kind() == KindClass {
			return nil, configErrorf(subject, "class %s cannot be used as a decorator", l.layerName())
		}

		next, err := l.applyTable(t)
		if err != nil {
			return nil, err
		}

		t = next
	}

	return t, nil
}
