package manifest

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"class-composer/class"
	"class-composer/internal/common"
	"class-composer/internal/diagnostic"
)

// Validate checks a manifest against the names bound in reg.
// This is a structural validation step only; nothing is defined.
func Validate(f *File, reg *Registry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("manifest_is_nil", "manifest is nil", "", "")
		return res
	}

	if reg == nil {
		res.AddError("registry_is_nil", "registry is nil", "", "")
		return res
	}

	if f.Version != "" && f.Version != CurrentVersion {
		res.AddError("unsupported_version",
			fmt.Sprintf("unsupported manifest version %q, expected %q", f.Version, CurrentVersion), "", "")
	}

	ix := newIndex(f)
	v := &validator{ix: ix, reg: reg, res: res}

	v.validateNames()

	for i := range f.Decorators {
		v.validateDecorator(&f.Decorators[i])
	}

	for i := range f.Traits {
		v.validateTrait(&f.Traits[i])
	}

	for i := range f.Classes {
		c := &f.Classes[i]
		v.validateClass("class "+c.Name, c)
	}

	for i := range f.Proxies {
		v.validateProxy(&f.Proxies[i])
	}

	if _, err := ix.order(); err != nil {
		var cycle *cycleError
		if errors.As(err, &cycle) {
			res.AddError("dependency_cycle", err.Error(), "", "")
		} else {
			res.AddError("dependency_order", err.Error(), "", "")
		}
	}

	return res
}

type validator struct {
	ix  *index
	reg *Registry
	res *diagnostic.Diagnostics
}

func (v *validator) validateNames() {
	for _, e := range v.ix.entries {
		if e.name == "" {
			v.res.AddError("missing_name", fmt.Sprintf("%s #%d has no name", e.kind, e.pos+1), "", "")
		}
	}

	for _, name := range common.Duplicates(v.ix.names()) {
		if name == "" {
			continue
		}

		v.res.AddError("duplicate_name", fmt.Sprintf("name %q is declared more than once", name), "", name)
	}
}

func (v *validator) validateDecorator(d *DecoratorDef) {
	subject := "decorator " + d.Name

	if d.Use == "" {
		v.res.AddError("missing_use", "derived decorator does not name the decorator it uses", subject, "")
		return
	}

	switch {
	case v.external(d.Use):
		v.res.AddInfo("external_decorator", fmt.Sprintf("decorator %q is provided by a stand-in", d.Use), subject, "use")
	case v.ix.classify(d.Use, v.reg) == refDecorator:
	default:
		v.res.AddError("unknown_decorator", fmt.Sprintf("unknown decorator %q", d.Use), subject, "use")
		v.res.Suggest(common.Closest(d.Use, v.decoratorNames())...)
	}
}

func (v *validator) validateTrait(t *TraitDef) {
	subject := "trait " + t.Name

	if _, ok := t.Members[class.ConstructorName]; ok {
		v.res.AddError("trait_constructor", "a trait cannot declare a constructor", subject, class.ConstructorName)
	}

	for i, name := range t.Base {
		member := fmt.Sprintf("base[%d]", i)

		switch v.layerKind(subject, member, name) {
		case refUnknown:
			v.unknownLayer(subject, member, name)
		case refClass:
			v.res.AddError("trait_extends_class", fmt.Sprintf("a trait cannot extend class %q", name), subject, member)
		}
	}

	v.validateMembers(subject, t.Members)
	v.validateDecorators(subject, t.Decorators)
	v.validateMemberDecorators(subject, t.Members, t.MemberDecorators)
}

func (v *validator) validateClass(subject string, c *ClassDef) {
	classes := 0

	for i, name := range c.Base {
		member := fmt.Sprintf("base[%d]", i)

		switch v.layerKind(subject, member, name) {
		case refUnknown:
			v.unknownLayer(subject, member, name)
		case refClass:
			classes++
			if i != 0 {
				v.res.AddError("class_not_first", fmt.Sprintf("class %q must be the first base entry", name), subject, member)
			}
		}
	}

	if classes > 1 {
		v.res.AddError("multiple_classes",
			fmt.Sprintf("base list holds %d classes, at most one is allowed", classes), subject, "base")
	}

	if c.Constructor != "" {
		v.checkMethod(subject, class.ConstructorName, c.Constructor)
	}

	if m, ok := c.Members[class.ConstructorName]; ok {
		switch {
		case m.Kind != MemberMethod:
			v.res.AddError("invalid_constructor",
				fmt.Sprintf("constructor member must be a method, got %s", m.Kind), subject, class.ConstructorName)
		case c.Constructor != "":
			v.res.AddError("duplicate_constructor",
				"constructor declared both as field and member", subject, class.ConstructorName)
		}
	}

	v.validateMembers(subject, c.Members)
	v.validateDecorators(subject, c.Decorators)
	v.validateMemberDecorators(subject, c.Members, c.MemberDecorators)
}

func (v *validator) validateMembers(subject string, members map[string]MemberDef) {
	for _, name := range slices.Sorted(maps.Keys(members)) {
		m := members[name]

		switch m.Kind {
		case MemberMethod:
			v.checkMethod(subject, name, m.Method)
		case MemberClass:
			if m.Class == nil {
				v.res.AddError("invalid_member", "nested class has no definition", subject, name)
				continue
			}

			v.validateClass(subject+"."+name, m.Class)
		}
	}
}

func (v *validator) validateDecorators(subject string, decorators StringOrArray) {
	for i, name := range decorators {
		member := fmt.Sprintf("decorators[%d]", i)

		switch v.layerKind(subject, member, name) {
		case refUnknown:
			v.unknownLayer(subject, member, name)
		case refClass:
			v.res.AddError("class_as_decorator", fmt.Sprintf("class %q cannot be used as a decorator", name), subject, member)
		}
	}
}

func (v *validator) validateMemberDecorators(
	subject string,
	members map[string]MemberDef,
	decorators map[string]StringOrArray,
) {
	for _, name := range slices.Sorted(maps.Keys(decorators)) {
		m, declared := members[name]
		if !declared && name != class.ConstructorName {
			v.res.AddWarning("inherited_member_decorator",
				fmt.Sprintf("member %q is not declared here and must be inherited", name), subject, name)
		}

		for _, ref := range decorators[name] {
			kind := v.layerKind(subject, name, ref)

			switch {
			case kind == refUnknown:
				v.unknownLayer(subject, name, ref)
			case kind == refClass:
				v.res.AddError("class_as_decorator", fmt.Sprintf("class %q cannot decorate a member", ref), subject, name)
			case declared && m.Kind == MemberData:
				v.res.AddError("invalid_member_decorator", "data members cannot be decorated", subject, name)
			case declared && m.Kind != MemberClass && kind != refDecorator:
				v.res.AddError("invalid_member_decorator",
					fmt.Sprintf("method members only take decorators, %q is a %s", ref, kind), subject, name)
			}
		}
	}
}

func (v *validator) validateProxy(p *ProxyDef) {
	subject := "proxy " + p.Name

	switch {
	case p.Of == "" && len(p.Methods) == 0:
		v.res.AddError("invalid_proxy_source", "proxy needs either of or methods", subject, "")
	case p.Of != "" && len(p.Methods) > 0:
		v.res.AddError("invalid_proxy_source", "proxy takes either of or methods, not both", subject, "")
	case p.Of != "":
		if e, ok := v.ix.lookup(p.Of); !ok || e.kind != entryClass {
			v.res.AddError("unknown_reference", fmt.Sprintf("proxy target %q is not a class of this manifest", p.Of), subject, "of")
			v.res.Suggest(common.Closest(p.Of, v.ix.names())...)
		}
	}

	if slices.Contains(p.Methods, class.ConstructorName) {
		v.res.AddWarning("proxy_constructor", "the constructor is never forwarded", subject, class.ConstructorName)
	}
}

func (v *validator) checkMethod(subject, member, name string) {
	if name == "" {
		v.res.AddError("unknown_method", "method reference is empty", subject, member)
		return
	}

	if !v.reg.HasMethod(name) && v.reg.Lenient() {
		v.res.AddInfo("external_method", fmt.Sprintf("method %q is provided by a stand-in", name), subject, member)
		return
	}

	if _, ok := v.reg.Method(name); !ok {
		v.res.AddError("unknown_method", fmt.Sprintf("method %q is not registered", name), subject, member)
		v.res.Suggest(common.Closest(name, v.reg.MethodNames())...)
	}
}

// layerKind classifies a list entry, noting entries a lenient registry stands in for.
func (v *validator) layerKind(subject, member, name string) refKind {
	kind := v.ix.classify(name, v.reg)
	if v.external(name) {
		v.res.AddInfo("external_layer", fmt.Sprintf("layer %q is provided by a stand-in", name), subject, member)
	}

	return kind
}

// external reports whether name only resolves through a lenient registry's stand-ins.
func (v *validator) external(name string) bool {
	if !v.reg.Lenient() {
		return false
	}

	if _, ok := v.ix.lookup(name); ok {
		return false
	}

	return !v.reg.HasDecorator(name) && !v.reg.HasTransform(name)
}

func (v *validator) unknownLayer(subject, member, name string) {
	v.res.AddError("unknown_reference", fmt.Sprintf("unknown layer %q", name), subject, member)
	v.res.Suggest(common.Closest(name, v.ix.layerNames(v.reg))...)
}

func (v *validator) decoratorNames() []string {
	var names []string

	for _, d := range v.ix.file.Decorators {
		if d.Name != "" {
			names = append(names, d.Name)
		}
	}

	names = append(names, v.reg.DecoratorNames()...)
	slices.Sort(names)

	return slices.Compact(names)
}
