package spice

import (
	"context"

	"github.com/woxQAQ/gospice/internal/ffi"
	"go.uber.org/zap"
)

// Raw calls entry points directly. Outputs are whatever the native side
// wrote; the native error flag is never consulted. Errors come only from
// marshaling, the backend, or the gate.
type Raw struct {
	tok *Token
}

// frame starts a call frame after checking that the token is still usable.
func (raw *Raw) frame(ctx context.Context) (*ffi.Frame, error) {
	lib := raw.tok.lib
	if raw.tok.Released() {
		return nil, ErrReleased
	}
	if lib.Poisoned() {
		return nil, ErrPoisoned
	}
	if lib.isClosed() {
		return nil, ErrClosed
	}
	f := ffi.NewFrame(ctx, lib.backend)
	f.OnTrap = raw.tok.poison
	return f, nil
}

func (raw *Raw) release(f *ffi.Frame) {
	if err := f.Release(); err != nil {
		raw.tok.lib.logger.Warn("Failed to free call buffers", zap.Error(err))
	}
}
