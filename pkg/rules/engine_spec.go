package rules

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/devicedetector/pkg/version"
)

// EngineKind tags which parts of an EngineSpec are present.
type EngineKind uint8

const (
	// EngineNone means the engine is undetermined by the rule.
	EngineNone EngineKind = iota
	// EngineDefault carries a static engine name only.
	EngineDefault
	// EngineVersioned carries version-gated overrides only.
	EngineVersioned
	// EngineDefaultVersioned carries both.
	EngineDefaultVersioned
)

func (k EngineKind) String() string {
	switch k {
	case EngineDefault:
		return "default"
	case EngineVersioned:
		return "versioned"
	case EngineDefaultVersioned:
		return "default+versioned"
	default:
		return "none"
	}
}

// Override switches the engine once the client version reaches Threshold.
type Override struct {
	Threshold string
	Engine    string
}

// EngineSpec is the engine block of a rule.
type EngineSpec struct {
	Default   string
	Overrides []Override
}

// Kind reports which parts of the spec are set.
func (s EngineSpec) Kind() EngineKind {
	switch {
	case s.Default != "" && len(s.Overrides) > 0:
		return EngineDefaultVersioned
	case s.Default != "":
		return EngineDefault
	case len(s.Overrides) > 0:
		return EngineVersioned
	default:
		return EngineNone
	}
}

// Names returns every engine name the spec can produce, default first.
func (s EngineSpec) Names() []string {
	names := make([]string, 0, len(s.Overrides)+1)
	if s.Default != "" {
		names = append(names, s.Default)
	}
	for _, o := range s.Overrides {
		names = append(names, o.Engine)
	}
	return names
}

// Validate checks that every override has a parseable threshold and a name.
func (s EngineSpec) Validate() error {
	for i, o := range s.Overrides {
		if o.Engine == "" {
			return fmt.Errorf("%w: override %d has no engine name", ErrInvalidEngineSpec, i)
		}
		if _, err := version.Parse(o.Threshold); err != nil {
			return fmt.Errorf("%w: override %d threshold %q: %w", ErrInvalidEngineSpec, i, o.Threshold, err)
		}
	}
	return nil
}

// UnmarshalYAML decodes the engine block through the node tree so that the
// version overrides keep their file order.
func (s *EngineSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: expected a mapping", ErrInvalidEngineSpec, node.Line)
	}

	var spec EngineSpec
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "default":
			if value.Kind != yaml.ScalarNode {
				return fmt.Errorf("%w: line %d: default must be a string", ErrInvalidEngineSpec, value.Line)
			}
			spec.Default = strings.TrimSpace(value.Value)
		case "versions":
			if value.Kind != yaml.MappingNode {
				return fmt.Errorf("%w: line %d: versions must be a mapping", ErrInvalidEngineSpec, value.Line)
			}
			for j := 0; j+1 < len(value.Content); j += 2 {
				threshold, engine := value.Content[j], value.Content[j+1]
				if threshold.Kind != yaml.ScalarNode || engine.Kind != yaml.ScalarNode {
					return fmt.Errorf("%w: line %d: version override must map a version to a name", ErrInvalidEngineSpec, threshold.Line)
				}
				spec.Overrides = append(spec.Overrides, Override{
					Threshold: strings.TrimSpace(threshold.Value),
					Engine:    strings.TrimSpace(engine.Value),
				})
			}
		default:
			return fmt.Errorf("%w: line %d: unknown key %q", ErrInvalidEngineSpec, key.Line, key.Value)
		}
	}

	*s = spec
	return nil
}
