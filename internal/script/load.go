package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Script is a named sequence of steps run against a document that starts
// with Lines.
type Script struct {
	Name  string   `yaml:"name,omitempty"`
	Lines []string `yaml:"lines,omitempty"`
	Steps []Step   `yaml:"steps"`
}

var stepFields = map[string]bool{
	"append": true,
	"delete": true,
	"set":    true,
	"undo":   true,
	"redo":   true,
	"reset":  true,
	"show":   true,
	"scope":  true,
}

// UnmarshalYAML accepts either a mapping or a single line of REPL syntax.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		step, err := ParseLine(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*s = step
		return nil
	}

	if node.Kind == yaml.MappingNode {
		for i := 0; i < len(node.Content); i += 2 {
			key := node.Content[i]
			if !stepFields[key.Value] {
				return fmt.Errorf("line %d: %w: %q", key.Line, ErrUnknownCommand, key.Value)
			}
		}
	}

	type plain Step
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Step(p)
	return nil
}

// Validate checks every step.
func (s *Script) Validate() error {
	var errs []error
	for i, step := range s.Steps {
		if err := step.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

// Load decodes and validates a script. Unknown keys are rejected.
func Load(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decoding script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads a script from path.
func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}
