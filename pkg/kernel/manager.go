package kernel

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Manager discovers kernel sets and loads them through a Loader.
type Manager struct {
	paths    []string
	loader   Loader
	scanner  *Scanner
	registry *Registry
	logger   *zap.Logger

	mu     sync.RWMutex
	sets   map[string]*Manifest
	active map[string][]*Kernel // set name -> kernels it loaded
}

// NewManager creates a manager searching paths for kernel sets.
func NewManager(paths []string, loader Loader, logger *zap.Logger) *Manager {
	return &Manager{
		paths:    paths,
		loader:   loader,
		scanner:  NewScanner(logger),
		registry: NewRegistry(logger),
		logger:   logger.With(zap.String("component", "kernel-manager")),
		sets:     make(map[string]*Manifest),
		active:   make(map[string][]*Kernel),
	}
}

// Discover scans the configured paths and registers every valid set.
// Finding no set at all is not an error.
func (m *Manager) Discover(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Discovering kernel sets", zap.Strings("paths", m.paths))

	manifests, err := m.scanner.Scan(m.paths)
	if err != nil {
		var none *NoSetsFoundError
		if errors.As(err, &none) {
			m.logger.Warn("No kernel sets found in configured paths",
				zap.Strings("paths", m.paths),
			)
			return nil
		}
		return err
	}

	var errs error
	for _, manifest := range manifests {
		if _, exists := m.sets[manifest.Name]; exists {
			errs = multierr.Append(errs, &SetAlreadyRegisteredError{SetName: manifest.Name})
			continue
		}
		m.sets[manifest.Name] = manifest
	}

	m.logger.Info("Kernel sets discovered", zap.Int("count", len(m.sets)))
	return errs
}

// Sets returns the discovered sets sorted by name.
func (m *Manager) Sets() []*Manifest {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Manifest, 0, len(m.sets))
	for _, s := range m.sets {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Set retrieves a discovered set by name.
func (m *Manager) Set(name string) (*Manifest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sets[name]
	if !ok {
		return nil, &SetNotFoundError{SetName: name}
	}
	return s, nil
}

// LoadSet loads every kernel of a set in manifest order. If one fails, the
// members loaded so far are unloaded again.
func (m *Manager) LoadSet(ctx context.Context, name string) ([]*Kernel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sets[name]
	if !ok {
		return nil, &SetNotFoundError{SetName: name}
	}
	if _, loaded := m.active[name]; loaded {
		return nil, &SetLoadError{SetName: name, Err: ErrAlreadyLoaded}
	}

	kernels, err := m.load(ctx, s.KernelPaths())
	if err != nil {
		return nil, &SetLoadError{SetName: name, Err: err}
	}
	m.active[name] = kernels

	m.logger.Info("Kernel set loaded",
		zap.String("name", name),
		zap.Int("kernels", len(kernels)),
	)
	return kernels, nil
}

// Load loads individual files with the same all-or-nothing behaviour as
// LoadSet. The kernels are owned by the caller but tracked in the registry.
func (m *Manager) Load(ctx context.Context, paths ...string) ([]*Kernel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx, paths)
}

func (m *Manager) load(ctx context.Context, paths []string) ([]*Kernel, error) {
	var kernels []*Kernel
	for _, path := range paths {
		if _, exists := m.registry.Get(path); exists {
			return nil, multierr.Append(&loadError{path: path, err: ErrAlreadyLoaded}, m.rollback(ctx, kernels))
		}
		k, err := New(ctx, m.loader, path)
		if err != nil {
			return nil, multierr.Append(&loadError{path: path, err: err}, m.rollback(ctx, kernels))
		}
		// Cannot collide: the path was checked above under m.mu.
		_ = m.registry.Register(k)
		kernels = append(kernels, k)
	}
	return kernels, nil
}

func (m *Manager) rollback(ctx context.Context, kernels []*Kernel) error {
	var errs error
	for i := len(kernels) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, m.unload(ctx, kernels[i]))
	}
	return errs
}

func (m *Manager) unload(ctx context.Context, k *Kernel) error {
	if err := k.Unload(ctx); err != nil {
		return err
	}
	m.registry.Unregister(k.Path())
	return nil
}

// UnloadSet unloads the kernels loaded by LoadSet.
func (m *Manager) UnloadSet(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kernels, ok := m.active[name]
	if !ok {
		return &SetLoadError{SetName: name, Err: ErrNotLoaded}
	}
	delete(m.active, name)
	return m.rollback(ctx, kernels)
}

// UnloadAll unloads every kernel in the registry, including those from Load.
func (m *Manager) UnloadAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Unloading all kernels", zap.Int("count", m.registry.Count()))

	m.active = make(map[string][]*Kernel)
	return m.rollback(ctx, m.registry.List())
}

// Registry returns the kernel registry (for testing/inspection).
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Loaded reports whether a set is loaded.
func (m *Manager) Loaded(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.active[name]
	return ok
}

type loadError struct {
	path string
	err  error
}

func (e *loadError) Error() string {
	return "load " + e.path + ": " + e.err.Error()
}

func (e *loadError) Unwrap() error {
	return e.err
}
