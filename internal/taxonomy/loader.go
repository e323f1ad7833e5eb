package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File represents the root of a taxonomy registry YAML file.
type File struct {
	// Version of the registry schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Unknown overrides the unknown sentinel per dimension name.
	Unknown map[string]string `yaml:"unknown,omitempty"`

	// Dimensions maps a dimension name to raw value -> canonical identifier.
	Dimensions map[string]map[string]string `yaml:"dimensions"`

	// AdvertisementScoped lists raw screen/component pairs that always need
	// advertisement context.
	AdvertisementScoped []ScopedPair `yaml:"advertisement_scoped,omitempty"`
}

// LoadFile loads and parses a taxonomy registry file from the given path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file %s: %w", path, err)
	}

	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("taxonomy file %s: %w", path, err)
	}

	return reg, nil
}

// Parse parses YAML data into a Registry.
func Parse(data []byte) (*Registry, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy YAML: %w", err)
	}

	applyDefaults(&f)

	spec, err := f.Spec()
	if err != nil {
		return nil, err
	}

	return New(spec)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}
}

// Spec converts the file into a registry Spec.
func (f *File) Spec() (Spec, error) {
	spec := Spec{
		Entries:             make(map[Dimension]map[string]string, len(f.Dimensions)),
		Unknown:             make(map[Dimension]string, len(f.Unknown)),
		AdvertisementScoped: f.AdvertisementScoped,
	}

	for name, entries := range f.Dimensions {
		dim, err := ParseDimension(name)
		if err != nil {
			return Spec{}, err
		}

		spec.Entries[dim] = entries
	}

	for name, sentinel := range f.Unknown {
		dim, err := ParseDimension(name)
		if err != nil {
			return Spec{}, err
		}

		spec.Unknown[dim] = sentinel
	}

	return spec, nil
}
