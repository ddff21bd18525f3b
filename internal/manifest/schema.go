package manifest

import (
	"class-composer/internal/common"
)

// File represents the root of a YAML composition manifest.
type File struct {
	// Version of the manifest schema.
	Version string `yaml:"version,omitempty"`

	// Decorators are named, pre-configured derivations of registered decorators.
	Decorators []DecoratorDef `yaml:"decorators,omitempty"`

	// Traits are reusable constructor-less member sets.
	Traits []TraitDef `yaml:"traits,omitempty"`

	// Classes are constructible units.
	Classes []ClassDef `yaml:"classes,omitempty"`

	// Proxies are generated classes or traits forwarding to a delegate.
	Proxies []ProxyDef `yaml:"proxies,omitempty"`
}

// DecoratorDef derives a decorator from a registered one.
type DecoratorDef struct {
	// Name of the derived decorator.
	Name string `yaml:"name"`

	// Use names the registered or derived decorator this one is based on.
	Use string `yaml:"use"`

	// Where restricts whole-table application to the listed members.
	Where StringOrArray `yaml:"where,omitempty"`

	// Options are merged over the options of the base decorator.
	Options map[string]any `yaml:"options,omitempty"`
}

// TraitDef describes a trait.
type TraitDef struct {
	Name string `yaml:"name"`

	// Base lists ancestor traits and transforms, applied in order.
	Base StringOrArray `yaml:"base,omitempty"`

	Members map[string]MemberDef `yaml:"members,omitempty"`

	// Decorators are applied to the trait's merged members in order.
	Decorators StringOrArray `yaml:"decorators,omitempty"`

	// MemberDecorators maps member names to decorators re-applied to that member.
	MemberDecorators map[string]StringOrArray `yaml:"member_decorators,omitempty"`
}

// ClassDef describes a class. Nested class members use the same shape; their name
// defaults to the member name.
type ClassDef struct {
	Name string `yaml:"name,omitempty"`

	// Base lists at most one class, first, followed by traits, decorators and transforms.
	Base StringOrArray `yaml:"base,omitempty"`

	// Constructor names a registered method.
	Constructor string `yaml:"constructor,omitempty"`

	Members map[string]MemberDef `yaml:"members,omitempty"`

	Decorators StringOrArray `yaml:"decorators,omitempty"`

	MemberDecorators map[string]StringOrArray `yaml:"member_decorators,omitempty"`
}

// ProxyDef describes a generated proxy.
type ProxyDef struct {
	Name string `yaml:"name"`

	// Of names the class whose public methods are forwarded.
	Of string `yaml:"of,omitempty"`

	// Methods lists the forwarded method names when Of is empty.
	Methods StringOrArray `yaml:"methods,omitempty"`

	// Field is the receiver field holding the delegate. Defaults to "_real".
	Field string `yaml:"field,omitempty"`

	// Trait generates a proxy trait instead of a proxy class.
	Trait bool `yaml:"trait,omitempty"`
}

// MemberKind tells member definitions apart.
type MemberKind int

const (
	// MemberData is a plain value.
	MemberData MemberKind = iota
	// MemberMethod refers to a registered method.
	MemberMethod
	// MemberAbstract is a required method for subclasses to implement.
	MemberAbstract
	// MemberClass is a nested class extending the base member of the same name.
	MemberClass
)

// String returns a human-readable member kind.
func (k MemberKind) String() string {
	switch k {
	case MemberData:
		return "data"
	case MemberMethod:
		return "method"
	case MemberAbstract:
		return "abstract"
	case MemberClass:
		return "class"
	default:
		return common.UnknownStr
	}
}

// MemberDef is one entry of a members map.
// YAML formats supported:
//   - Any plain value: data
//   - {method: name}: a registered method
//   - {abstract: true}: an abstract method
//   - {class: {...}}: a nested class
//   - {value: x}: the data value x, needed when x is itself a mapping with the single
//     key method, abstract, class or value
type MemberDef struct {
	Kind MemberKind
	// Method is the registered method name for MemberMethod.
	Method string
	// Value is the data value for MemberData.
	Value any
	// Class is the nested class for MemberClass.
	Class *ClassDef
}

// StringOrArray is a string list that may be written as a single string in YAML.
type StringOrArray []string
