// Package proxy generates classes and traits whose methods forward to a delegate
// instance stored in a field of the receiver.
package proxy

import (
	"errors"
	"fmt"

	"class-composer/class"
	"class-composer/utils"
)

// ErrNoDelegate is returned by a forwarding method when the delegate field is unset or
// does not hold an instance.
var ErrNoDelegate = errors.New("proxy has no delegate")

// Config controls proxy generation.
type Config struct {
	// Field is the receiver field holding the delegate.
	Field string
	// InternalPrefix marks method names skipped when methods are discovered from a class.
	InternalPrefix string
	// Name names the generated class or trait.
	Name string
}

// DefaultConfig returns the default proxy configuration.
func DefaultConfig() Config {
	return Config{
		Field:          "_real",
		InternalPrefix: "_",
	}
}

func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	if cfg.Field == "" {
		cfg.Field = def.Field
	}

	if cfg.InternalPrefix == "" {
		cfg.InternalPrefix = def.InternalPrefix
	}

	return cfg
}

// MethodsOf returns the public method names of c: every method visible through its
// table except the constructor and names starting with the internal prefix.
func MethodsOf(c *class.Class, cfg Config) []string {
	cfg = cfg.withDefaults()
	public := utils.Not(utils.HasPrefix(cfg.InternalPrefix))

	var names []string

	for _, name := range c.Methods() {
		if name != class.ConstructorName && public(name) {
			names = append(names, name)
		}
	}

	return names
}

// Define generates a class forwarding names to the delegate. Its constructor stores the
// first argument as the delegate.
func Define(names []string, cfg Config) (*class.Class, error) {
	cfg = cfg.withDefaults()

	field := cfg.Field

	return class.DefineClass(class.Spec{
		Name: cfg.Name,
		Constructor: func(c *class.Call, args ...any) (any, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("proxy constructor: %w: missing delegate argument", ErrNoDelegate)
			}

			c.Self.Set(field, args[0])

			return nil, nil
		},
		Members: forwarders(names, field),
	})
}

// DefineTrait generates a trait forwarding names to the delegate. The receiver is
// expected to store the delegate itself.
func DefineTrait(names []string, cfg Config) (*class.Trait, error) {
	cfg = cfg.withDefaults()

	return class.DefineTrait(class.Spec{
		Name:    cfg.Name,
		Members: forwarders(names, cfg.Field),
	})
}

// ForClass generates a proxy class for the public methods of c.
func ForClass(c *class.Class, cfg Config) (*class.Class, error) {
	if cfg.Name == "" {
		cfg.Name = c.Name() + "Proxy"
	}

	return Define(MethodsOf(c, cfg), cfg)
}

// TraitForClass generates a proxy trait for the public methods of c.
func TraitForClass(c *class.Class, cfg Config) (*class.Trait, error) {
	if cfg.Name == "" {
		cfg.Name = c.Name() + "Proxy"
	}

	return DefineTrait(MethodsOf(c, cfg), cfg)
}

func forwarders(names []string, field string) class.Members {
	members := class.Members{}

	for _, name := range names {
		if name == class.ConstructorName {
			continue
		}

		members[name] = forward(name, field)
	}

	return members
}

func forward(name, field string) class.Func {
	return func(c *class.Call, args ...any) (any, error) {
		if c == nil || c.Self == nil {
			return nil, fmt.Errorf("%s: %w: no receiver", name, ErrNoDelegate)
		}

		v, _ := c.Self.Get(field)

		delegate, ok := v.(*class.Instance)
		if !ok || delegate == nil {
			return nil, fmt.Errorf("%s: %w in field %q", name, ErrNoDelegate, field)
		}

		return delegate.Call(name, args...)
	}
}
