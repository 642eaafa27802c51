package seed

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osse101/SpinWheel_Go/internal/validation"
)

// DefaultSchemaPath is the JSON schema seed files are checked against
const DefaultSchemaPath = "configs/schemas/wheel_seed.schema.json"

// Loader reads wheel seed files, optionally checking each against a JSON schema
type Loader struct {
	validator  validation.SchemaValidator
	schemaPath string
}

// NewLoader creates a loader. A nil validator skips schema checks.
func NewLoader(validator validation.SchemaValidator, schemaPath string) *Loader {
	if schemaPath == "" {
		schemaPath = DefaultSchemaPath
	}
	return &Loader{validator: validator, schemaPath: schemaPath}
}

// LoadDir reads every .yaml/.yml file in dir, in file name order
func (l *Loader) LoadDir(dir string) ([]Wheel, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var wheels []Wheel
	for _, name := range names {
		loaded, err := l.LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to load seed %s: %w", name, err)
		}
		wheels = append(wheels, loaded...)
	}
	return wheels, nil
}

// LoadFile reads one seed file
func (l *Loader) LoadFile(path string) ([]Wheel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if l.validator != nil {
		if err := l.validator.ValidateYAML(data, l.schemaPath); err != nil {
			return nil, err
		}
	}
	return Parse(data)
}

// Parse decodes a seed document. A document holds either a single wheel or
// a "wheels" list.
func Parse(data []byte) ([]Wheel, error) {
	var doc struct {
		Wheel  `yaml:",inline"`
		Wheels []Wheel `yaml:"wheels"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	wheels := doc.Wheels
	if doc.Name != "" {
		wheels = append([]Wheel{doc.Wheel}, wheels...)
	}

	for i, w := range wheels {
		if strings.TrimSpace(w.Name) == "" {
			return nil, fmt.Errorf("wheel %d: name is required", i+1)
		}
	}
	return wheels, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
