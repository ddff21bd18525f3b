package manifest

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"class-composer/internal/common"
)

// --- StringOrArray YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	v, _ := common.First(s)
	return v
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// --- MemberDef YAML methods ---

// memberKeys are the single-key mappings that are not read as data.
var memberKeys = []string{"method", "abstract", "class", "value"}

// UnmarshalYAML implements custom YAML unmarshaling for MemberDef.
// A mapping with the single key "method", "abstract" or "class" is a member reference,
// {value: x} is the data value x; anything else is data.
func (m *MemberDef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode && len(node.Content) == 2 {
		key, value := node.Content[0], node.Content[1]

		switch key.Value {
		case "method":
			var name string
			if err := value.Decode(&name); err != nil {
				return fmt.Errorf("line %d: method reference: %w", value.Line, err)
			}

			*m = MemberDef{Kind: MemberMethod, Method: name}

			return nil

		case "abstract":
			var abstract bool
			if err := value.Decode(&abstract); err != nil {
				return fmt.Errorf("line %d: abstract flag: %w", value.Line, err)
			}

			if !abstract {
				return fmt.Errorf("line %d: abstract must be true", value.Line)
			}

			*m = MemberDef{Kind: MemberAbstract}

			return nil

		case "class":
			var def ClassDef
			if err := value.Decode(&def); err != nil {
				return fmt.Errorf("line %d: nested class: %w", value.Line, err)
			}

			*m = MemberDef{Kind: MemberClass, Class: &def}

			return nil

		case "value":
			var v any
			if err := value.Decode(&v); err != nil {
				return fmt.Errorf("line %d: data value: %w", value.Line, err)
			}

			*m = MemberDef{Kind: MemberData, Value: v}

			return nil
		}
	}

	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}

	*m = MemberDef{Kind: MemberData, Value: v}

	return nil
}

// MarshalYAML implements custom YAML marshaling for MemberDef.
func (m MemberDef) MarshalYAML() (any, error) {
	switch m.Kind {
	case MemberMethod:
		return map[string]string{"method": m.Method}, nil
	case MemberAbstract:
		return map[string]bool{"abstract": true}, nil
	case MemberClass:
		return map[string]*ClassDef{"class": m.Class}, nil
	default:
		if v, ok := m.Value.(map[string]any); ok && len(v) == 1 {
			for key := range v {
				if slices.Contains(memberKeys, key) {
					return map[string]any{"value": m.Value}, nil
				}
			}
		}

		return m.Value, nil
	}
}
