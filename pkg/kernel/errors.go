package kernel

import (
	"fmt"
	"strings"
)

// ManifestNotFoundError occurs when kernels.yaml is not found in a directory.
type ManifestNotFoundError struct {
	Path string
	Err  error
}

func (e *ManifestNotFoundError) Error() string {
	return fmt.Sprintf("manifest not found at '%s': %v", e.Path, e.Err)
}

func (e *ManifestNotFoundError) Unwrap() error {
	return e.Err
}

// ManifestParseError occurs when kernels.yaml cannot be parsed as valid YAML.
type ManifestParseError struct {
	Path string
	Err  error
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("failed to parse manifest at '%s': %v", e.Path, e.Err)
}

func (e *ManifestParseError) Unwrap() error {
	return e.Err
}

// ManifestValidationError occurs when kernels.yaml fails validation.
type ManifestValidationError struct {
	Path    string
	Field   string
	Message string
}

func (e *ManifestValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("manifest validation failed at '%s': %s (field: %s)",
			e.Path, e.Message, e.Field)
	}
	return fmt.Sprintf("manifest validation failed at '%s': %s", e.Path, e.Message)
}

// FilesNotFoundError occurs when kernel files listed in a manifest don't exist.
type FilesNotFoundError struct {
	ManifestPath string
	Files        []string
}

func (e *FilesNotFoundError) Error() string {
	return fmt.Sprintf("kernel files not found (referenced in manifest '%s'): %s",
		e.ManifestPath, strings.Join(e.Files, ", "))
}

// SetLoadError occurs when a kernel set cannot be loaded completely.
type SetLoadError struct {
	SetName string
	Err     error
}

func (e *SetLoadError) Error() string {
	return fmt.Sprintf("failed to load kernel set '%s': %v", e.SetName, e.Err)
}

func (e *SetLoadError) Unwrap() error {
	return e.Err
}

// SetNotFoundError occurs when a kernel set is not known to the manager.
type SetNotFoundError struct {
	SetName string
}

func (e *SetNotFoundError) Error() string {
	return fmt.Sprintf("kernel set '%s' not found", e.SetName)
}

// SetAlreadyRegisteredError occurs when two manifests declare the same name.
type SetAlreadyRegisteredError struct {
	SetName string
}

func (e *SetAlreadyRegisteredError) Error() string {
	return fmt.Sprintf("kernel set '%s' is already registered", e.SetName)
}

// NoSetsFoundError occurs when no manifests are found in the configured paths.
type NoSetsFoundError struct {
	Paths []string
}

func (e *NoSetsFoundError) Error() string {
	return fmt.Sprintf("no kernel sets found in paths: %v", e.Paths)
}
