// Package kernel tracks which CSPICE kernel files are loaded.
//
// A Kernel is a handle on one file: creating it loads the file and Unload
// gives it back, and neither may be repeated. Kernel sets are described by
// kernels.yaml manifests and loaded as a unit by a Manager.
package kernel

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrAlreadyLoaded is returned when loading a kernel that is loaded.
	ErrAlreadyLoaded = errors.New("kernel already loaded")
	// ErrNotLoaded is returned when unloading a kernel that is not loaded.
	ErrNotLoaded = errors.New("kernel not loaded")
)

// Loader loads and unloads kernel files. *spice.Checked implements it.
type Loader interface {
	Furnsh(ctx context.Context, file string) error
	Unload(ctx context.Context, file string) error
}

// Type is the kind of a kernel file, derived from its extension.
type Type string

const (
	SPK     Type = "SPK"
	CK      Type = "CK"
	PCK     Type = "PCK"
	FK      Type = "FK"
	IK      Type = "IK"
	LSK     Type = "LSK"
	SCLK    Type = "SCLK"
	DSK     Type = "DSK"
	Meta    Type = "META"
	Unknown Type = "UNKNOWN"
)

// NAIF file naming conventions.
var extensions = map[string]Type{
	".bsp": SPK,
	".bc":  CK,
	".bpc": PCK,
	".tpc": PCK,
	".tf":  FK,
	".ti":  IK,
	".tls": LSK,
	".tsc": SCLK,
	".bds": DSK,
	".tm":  Meta,
}

// TypeOf classifies a kernel file by extension.
func TypeOf(path string) Type {
	if t, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	return Unknown
}

// Kernel is a handle on a kernel file.
type Kernel struct {
	mu     sync.Mutex
	path   string
	loader Loader
	loaded bool
}

// New loads the kernel at path. A failed load returns no handle.
func New(ctx context.Context, loader Loader, path string) (*Kernel, error) {
	k := &Kernel{path: path, loader: loader}
	if err := k.Load(ctx); err != nil {
		return nil, err
	}
	return k, nil
}

// Load loads the file again after Unload.
func (k *Kernel) Load(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.loaded {
		return fmt.Errorf("%s: %w", k.path, ErrAlreadyLoaded)
	}
	if err := k.loader.Furnsh(ctx, k.path); err != nil {
		return err
	}
	k.loaded = true
	return nil
}

// Unload unloads the file.
func (k *Kernel) Unload(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.loaded {
		return fmt.Errorf("%s: %w", k.path, ErrNotLoaded)
	}
	if err := k.loader.Unload(ctx, k.path); err != nil {
		return err
	}
	k.loaded = false
	return nil
}

// Path returns the file path as given to New.
func (k *Kernel) Path() string {
	return k.path
}

// Type returns the kind of the file.
func (k *Kernel) Type() Type {
	return TypeOf(k.path)
}

// IsLoaded reports whether the file is loaded.
func (k *Kernel) IsLoaded() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.loaded
}

func (k *Kernel) String() string {
	state := "unloaded"
	if k.IsLoaded() {
		state = "loaded"
	}
	return fmt.Sprintf("%s (%s, %s)", k.path, k.Type(), state)
}
