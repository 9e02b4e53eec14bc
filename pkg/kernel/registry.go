package kernel

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry indexes loaded kernels by path and by type.
type Registry struct {
	sync.RWMutex
	kernels map[string]*Kernel // path -> kernel
	byType  map[Type][]*Kernel // type -> kernels, in load order
	logger  *zap.Logger
}

// NewRegistry creates a new kernel registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		kernels: make(map[string]*Kernel),
		byType:  make(map[Type][]*Kernel),
		logger:  logger.With(zap.String("component", "kernel-registry")),
	}
}

// Register adds a kernel to the registry.
func (r *Registry) Register(k *Kernel) error {
	r.Lock()
	defer r.Unlock()

	path := k.Path()
	if _, exists := r.kernels[path]; exists {
		return fmt.Errorf("%s: %w", path, ErrAlreadyLoaded)
	}

	r.kernels[path] = k
	t := k.Type()
	r.byType[t] = append(r.byType[t], k)

	r.logger.Debug("Kernel registered",
		zap.String("path", path),
		zap.String("type", string(t)),
	)

	return nil
}

// Get retrieves a kernel by path.
func (r *Registry) Get(path string) (*Kernel, bool) {
	r.RLock()
	defer r.RUnlock()

	k, ok := r.kernels[path]
	return k, ok
}

// ByType returns the kernels of a type in registration order.
func (r *Registry) ByType(t Type) []*Kernel {
	r.RLock()
	defer r.RUnlock()

	kernels := r.byType[t]
	result := make([]*Kernel, len(kernels))
	copy(result, kernels)
	return result
}

// List returns all registered kernels sorted by path.
func (r *Registry) List() []*Kernel {
	r.RLock()
	defer r.RUnlock()

	result := make([]*Kernel, 0, len(r.kernels))
	for _, k := range r.kernels {
		result = append(result, k)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path() < result[j].Path() })
	return result
}

// Unregister removes a kernel from the registry.
func (r *Registry) Unregister(path string) {
	r.Lock()
	defer r.Unlock()

	k, ok := r.kernels[path]
	if !ok {
		return
	}

	t := k.Type()
	kernels := r.byType[t]
	for i, other := range kernels {
		if other == k {
			r.byType[t] = append(kernels[:i:i], kernels[i+1:]...)
			break
		}
	}
	if len(r.byType[t]) == 0 {
		delete(r.byType, t)
	}

	delete(r.kernels, path)

	r.logger.Debug("Kernel unregistered", zap.String("path", path))
}

// Count returns the number of registered kernels.
func (r *Registry) Count() int {
	r.RLock()
	defer r.RUnlock()

	return len(r.kernels)
}
