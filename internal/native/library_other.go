//go:build !(darwin || linux)

package native

import (
	"context"
	"errors"
	"runtime"

	"github.com/woxQAQ/gospice/internal/ffi"
	"go.uber.org/zap"
)

// ErrUnsupported is returned by Open on platforms without dlopen support.
var ErrUnsupported = errors.New("native backend is not supported on " + runtime.GOOS)

// Library is unavailable on this platform.
type Library struct{}

var _ ffi.Backend = (*Library)(nil)

// Open always fails with ErrUnsupported.
func Open(path string, logger *zap.Logger) (*Library, error) {
	return nil, ErrUnsupported
}

func (l *Library) Call(ctx context.Context, name string, sig ffi.Signature, args []ffi.Value) (ffi.Value, error) {
	return ffi.Value{}, ErrUnsupported
}

func (l *Library) Alloc(ctx context.Context, size uint32) (uint64, error) { return 0, ErrUnsupported }

func (l *Library) Free(ctx context.Context, addr uint64) error { return ErrUnsupported }

func (l *Library) Read(addr uint64, n uint32) ([]byte, bool) { return nil, false }

func (l *Library) Write(addr uint64, data []byte) bool { return false }

func (l *Library) Close(ctx context.Context) error { return nil }
