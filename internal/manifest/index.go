package manifest

import (
	"maps"
	"slices"
)

// entryKind tells top-level manifest entries apart.
type entryKind int

const (
	entryDecorator entryKind = iota
	entryTrait
	entryClass
	entryProxy
)

func (k entryKind) String() string {
	switch k {
	case entryDecorator:
		return "decorator"
	case entryTrait:
		return "trait"
	case entryClass:
		return "class"
	case entryProxy:
		return "proxy"
	default:
		return "entry"
	}
}

// entry is a top-level manifest entry; pos indexes the slice of its kind.
type entry struct {
	kind entryKind
	name string
	pos  int
}

func (e entry) subject() string {
	return e.kind.String() + " " + e.name
}

// refKind is what a name in a base or decorator list resolves to.
type refKind int

const (
	refUnknown refKind = iota
	refClass
	refTrait
	refDecorator
	refTransform
)

func (k refKind) String() string {
	switch k {
	case refClass:
		return "class"
	case refTrait:
		return "trait"
	case refDecorator:
		return "decorator"
	case refTransform:
		return "transform"
	default:
		return "unknown"
	}
}

// index gives name based access to the entries of a manifest.
type index struct {
	file    *File
	entries []entry
	// byName holds the first entry declared under each name.
	byName map[string]int
}

func newIndex(f *File) *index {
	ix := &index{file: f, byName: make(map[string]int)}

	add := func(kind entryKind, name string, pos int) {
		if _, dup := ix.byName[name]; !dup && name != "" {
			ix.byName[name] = len(ix.entries)
		}

		ix.entries = append(ix.entries, entry{kind: kind, name: name, pos: pos})
	}

	for i := range f.Decorators {
		add(entryDecorator, f.Decorators[i].Name, i)
	}

	for i := range f.Traits {
		add(entryTrait, f.Traits[i].Name, i)
	}

	for i := range f.Classes {
		add(entryClass, f.Classes[i].Name, i)
	}

	for i := range f.Proxies {
		add(entryProxy, f.Proxies[i].Name, i)
	}

	return ix
}

func (ix *index) lookup(name string) (entry, bool) {
	i, ok := ix.byName[name]
	if !ok {
		return entry{}, false
	}

	return ix.entries[i], true
}

// names returns the declared entry names in declaration order.
func (ix *index) names() []string {
	out := make([]string, 0, len(ix.entries))
	for _, e := range ix.entries {
		out = append(out, e.name)
	}

	return out
}

// classify tells what name resolves to. Manifest entries take precedence over registry
// entries; a lenient registry resolves anything else to a stand-in decorator.
func (ix *index) classify(name string, reg *Registry) refKind {
	if e, ok := ix.lookup(name); ok {
		switch e.kind {
		case entryDecorator:
			return refDecorator
		case entryTrait:
			return refTrait
		case entryClass:
			return refClass
		case entryProxy:
			if ix.file.Proxies[e.pos].Trait {
				return refTrait
			}

			return refClass
		}
	}

	switch {
	case reg.HasDecorator(name):
		return refDecorator
	case reg.HasTransform(name):
		return refTransform
	case reg.Lenient():
		return refDecorator
	default:
		return refUnknown
	}
}

// layerNames returns every name usable in a base or decorator list.
func (ix *index) layerNames(reg *Registry) []string {
	names := slices.Concat(ix.names(), reg.DecoratorNames(), reg.TransformNames())
	slices.Sort(names)

	return slices.Compact(names)
}

// deps returns the manifest entries e refers to, as entry indices.
func (ix *index) deps(e entry) []int {
	var refs []string

	switch e.kind {
	case entryDecorator:
		refs = append(refs, ix.file.Decorators[e.pos].Use)
	case entryTrait:
		t := &ix.file.Traits[e.pos]
		refs = layerRefs(refs, t.Base, t.Members, t.Decorators, t.MemberDecorators)
	case entryClass:
		refs = classRefs(refs, &ix.file.Classes[e.pos])
	case entryProxy:
		refs = append(refs, ix.file.Proxies[e.pos].Of)
	}

	seen := make(map[int]struct{})

	var out []int

	for _, name := range refs {
		i, ok := ix.byName[name]
		if !ok {
			continue
		}

		if _, dup := seen[i]; dup {
			continue
		}

		seen[i] = struct{}{}
		out = append(out, i)
	}

	slices.Sort(out)

	return out
}

func classRefs(refs []string, c *ClassDef) []string {
	return layerRefs(refs, c.Base, c.Members, c.Decorators, c.MemberDecorators)
}

func layerRefs(
	refs []string,
	base StringOrArray,
	members map[string]MemberDef,
	decorators StringOrArray,
	memberDecorators map[string]StringOrArray,
) []string {
	refs = append(refs, base...)
	refs = append(refs, decorators...)

	for _, name := range slices.Sorted(maps.Keys(memberDecorators)) {
		refs = append(refs, memberDecorators[name]...)
	}

	for _, name := range slices.Sorted(maps.Keys(members)) {
		if m := members[name]; m.Kind == MemberClass && m.Class != nil {
			refs = classRefs(refs, m.Class)
		}
	}

	return refs
}
