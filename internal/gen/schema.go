// Package gen generates the Raw and Checked bindings from a declarative
// schema of native entry points.
//
// Every declared type must map onto a known marshaling shape. Anything else
// is a GenerationError; the generator never emits a binding it cannot
// marshal.
package gen

import (
	"fmt"
	"go/token"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Schema is the top level of a signatures file.
type Schema struct {
	Package   string        `yaml:"package"`
	Functions []Declaration `yaml:"functions"`
}

// Declaration describes one native entry point. The native name is Name
// followed by "_c"; the Go method name is Name with its first letter
// capitalised.
type Declaration struct {
	Name string `yaml:"name"`
	Doc  string `yaml:"doc"`

	Params  []Param  `yaml:"params"`
	Results []Result `yaml:"results"`

	// NativeResult makes the single result the native return value instead
	// of an output pointer.
	NativeResult bool `yaml:"native_result"`

	// Checked defaults to true. The error protocol entry points set it to
	// false.
	Checked *bool `yaml:"checked"`
}

// Param is an input argument.
type Param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Result is an output argument.
type Result struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// Capacity names the size parameter bounding a text or variable-length
	// buffer. A text buffer may give a fixed byte count instead.
	Capacity string `yaml:"capacity"`

	// Length names the earlier i32 result holding the number of valid
	// elements of a variable-length buffer.
	Length string `yaml:"length"`
}

// NativeName is the C symbol of the entry point.
func (d *Declaration) NativeName() string {
	return d.Name + "_c"
}

// GoName is the method name of the entry point.
func (d *Declaration) GoName() string {
	return exported(d.Name)
}

// IsChecked reports whether a Checked method is generated.
func (d *Declaration) IsChecked() bool {
	return d.Checked == nil || *d.Checked
}

// ParseSchema decodes a schema. Unknown fields are rejected.
func ParseSchema(r io.Reader) (*Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Schema
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if s.Package == "" {
		return nil, &GenerationError{Reason: "package is required"}
	}
	if !token.IsIdentifier(s.Package) {
		return nil, &GenerationError{Field: "package", Reason: fmt.Sprintf("%q is not a valid package name", s.Package)}
	}
	return &s, nil
}

// LoadSchema reads a schema file.
func LoadSchema(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema: %w", err)
	}
	defer f.Close()
	return ParseSchema(f)
}

func exported(name string) string {
	if name == "" {
		return ""
	}
	b := []byte(name)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
