package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Suite defines one conformance suite: a named program and the
// verdict the front end must reach on it.
type Suite struct {
	// Name uniquely identifies this suite.
	Name string `yaml:"name"`

	// Description explains what this suite exercises.
	Description string `yaml:"description"`

	// Program is the inline program source in surface syntax.
	Program string `yaml:"program"`

	// Expect is the required verdict.
	Expect Expectation `yaml:"expect"`
}

// Expectation specifies what the front end must report for a program.
type Expectation struct {
	// OK requires the program to parse and verify cleanly. When true,
	// Diagnostics must be empty.
	OK bool `yaml:"ok"`

	// Diagnostics is the exact rendered diagnostic list, in emission
	// order. Each entry is the "file:line:col: message" form, or the
	// bare message when the diagnostic has no location.
	Diagnostics []string `yaml:"diagnostics,omitempty"`

	// RoundTrip additionally requires print-then-reparse to yield a
	// structurally equal program. Only meaningful with OK.
	RoundTrip bool `yaml:"round_trip,omitempty"`

	// ProgramID optionally pins the content-addressed program hash.
	ProgramID string `yaml:"program_id,omitempty"`
}

// LoadSuite reads and parses one suite file. Unknown YAML fields are
// rejected so a typo fails loudly instead of silently weakening the
// expectation.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	var suite Suite
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&suite); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSuite(&suite); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}
	return &suite, nil
}

// LoadDir loads every .yaml/.yml suite under dir, sorted by path for
// a stable run order.
func LoadDir(dir string) ([]*Suite, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk suite directory: %w", err)
	}
	sort.Strings(paths)

	suites := make([]*Suite, 0, len(paths))
	for _, path := range paths {
		s, err := LoadSuite(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		suites = append(suites, s)
	}
	return suites, nil
}

func validateSuite(s *Suite) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Program == "" {
		return fmt.Errorf("program is required")
	}
	if s.Expect.OK && len(s.Expect.Diagnostics) > 0 {
		return fmt.Errorf("expect.ok conflicts with expect.diagnostics")
	}
	if !s.Expect.OK && len(s.Expect.Diagnostics) == 0 {
		return fmt.Errorf("expect requires ok or a non-empty diagnostics list")
	}
	if s.Expect.RoundTrip && !s.Expect.OK {
		return fmt.Errorf("expect.round_trip requires expect.ok")
	}
	if s.Expect.ProgramID != "" && !s.Expect.OK {
		return fmt.Errorf("expect.program_id requires expect.ok")
	}
	return nil
}
