package diagnostic

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML finding file from the given path.
func LoadFile(path string) (*Findings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read finding file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into Findings and validates them.
func Parse(data []byte) (*Findings, error) {
	var fs Findings

	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("failed to parse finding YAML: %w", err)
	}

	if err := fs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid findings: %w", err)
	}

	return &fs, nil
}

// Marshal serializes Findings to YAML.
func Marshal(fs *Findings) ([]byte, error) {
	return yaml.Marshal(fs)
}

// UnmarshalYAML accepts either a single path or a list of paths.
func (f *Fields) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*f = Fields{str}
		} else {
			*f = Fields{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		if err := node.Decode(&arr); err != nil {
			return err
		}

		*f = arr

		return nil

	default:
		return fmt.Errorf("expected path or list of paths, got %v", node.Kind)
	}
}

// MarshalYAML writes a single path as a scalar.
func (f Fields) MarshalYAML() (any, error) {
	if len(f) == 1 {
		return f[0], nil
	}

	return []string(f), nil
}
