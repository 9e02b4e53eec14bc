package kernel

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of a kernel set manifest inside its directory.
const ManifestFile = "kernels.yaml"

// Manifest represents the kernels.yaml structure.
type Manifest struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Kernels     []string `yaml:"kernels"`
	Defaults    Defaults `yaml:"defaults"`

	// Internal fields
	dir string // Directory containing manifest
}

// Defaults are the observation parameters a kernel set is meant for.
type Defaults struct {
	Frame                string `json:"frame" yaml:"frame"`
	Observer             string `json:"observer" yaml:"observer"`
	Target               string `json:"target" yaml:"target"`
	AberrationCorrection string `json:"abcorr" yaml:"abcorr"`
}

// ParseManifest reads and parses kernels.yaml from a directory.
func ParseManifest(dir string) (*Manifest, error) {
	manifestPath := filepath.Join(dir, ManifestFile)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, &ManifestNotFoundError{
			Path: manifestPath,
			Err:  err,
		}
	}

	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ManifestParseError{
			Path: manifestPath,
			Err:  err,
		}
	}

	m.dir = dir

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks manifest fields and that every listed file exists.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return &ManifestValidationError{
			Path:    m.Path(),
			Field:   "name",
			Message: "name is required",
		}
	}

	if len(m.Kernels) == 0 {
		return &ManifestValidationError{
			Path:    m.Path(),
			Field:   "kernels",
			Message: "at least one kernel is required",
		}
	}

	seen := make(map[string]bool, len(m.Kernels))
	for _, k := range m.Kernels {
		if k == "" {
			return &ManifestValidationError{
				Path:    m.Path(),
				Field:   "kernels",
				Message: "kernel path is empty",
			}
		}
		if seen[k] {
			return &ManifestValidationError{
				Path:    m.Path(),
				Field:   "kernels",
				Message: "kernel listed twice: " + k,
			}
		}
		seen[k] = true
	}

	var missing []string
	for i, path := range m.KernelPaths() {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			missing = append(missing, m.Kernels[i])
		}
	}
	if len(missing) > 0 {
		return &FilesNotFoundError{
			ManifestPath: m.Path(),
			Files:        missing,
		}
	}

	return nil
}

// Path returns the manifest file path.
func (m *Manifest) Path() string {
	return filepath.Join(m.dir, ManifestFile)
}

// KernelPaths returns the kernel files in load order. Relative entries are
// resolved against the manifest directory.
func (m *Manifest) KernelPaths() []string {
	paths := make([]string, len(m.Kernels))
	for i, k := range m.Kernels {
		if filepath.IsAbs(k) {
			paths[i] = k
		} else {
			paths[i] = filepath.Join(m.dir, k)
		}
	}
	return paths
}

// Dir returns the directory containing the manifest.
func (m *Manifest) Dir() string {
	return m.dir
}
