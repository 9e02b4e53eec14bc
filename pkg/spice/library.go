package spice

import (
	"context"
	"fmt"
	"sync"

	"github.com/woxQAQ/gospice/internal/ffi"
	"go.uber.org/zap"
)

// Backend is a loaded copy of the native library.
type Backend = ffi.Backend

// Library owns one backend and the gate that serializes access to it.
// Libraries over the same shared backend state share the gate.
type Library struct {
	backend Backend
	lock    *Lock
	unref   func()
	logger  *zap.Logger

	closeOnce sync.Once
	closed    chan struct{}
}

// New wraps an already loaded backend.
func New(backend Backend, logger *zap.Logger) *Library {
	lock, unref := lockFor(backend)
	return &Library{
		backend: backend,
		lock:    lock,
		unref:   unref,
		logger:  logger.With(zap.String("component", "spice")),
		closed:  make(chan struct{}),
	}
}

func (l *Library) isClosed() bool {
	select {
	case <-l.closed:
		return true
	default:
		return false
	}
}

// TryAcquire returns a token if the gate is free. It fails with ErrLocked
// while another token is held and with ErrPoisoned after a failed call.
func (l *Library) TryAcquire() (*Token, error) {
	if l.isClosed() {
		return nil, ErrClosed
	}
	if err := l.lock.tryAcquire(); err != nil {
		return nil, err
	}
	return newToken(l), nil
}

// Acquire waits for the gate. It fails with ErrPoisoned after a failed call
// or with ctx's error if ctx ends first.
func (l *Library) Acquire(ctx context.Context) (*Token, error) {
	if l.isClosed() {
		return nil, ErrClosed
	}
	if err := l.lock.acquire(ctx); err != nil {
		return nil, err
	}
	return newToken(l), nil
}

// With runs fn while holding a token and releases it on every exit path.
// A panic in fn poisons the library before it propagates.
func (l *Library) With(ctx context.Context, fn func(*Token) error) error {
	tok, err := l.Acquire(ctx)
	if err != nil {
		return err
	}
	return l.run(tok, fn)
}

// TryWith is With without waiting for the gate.
func (l *Library) TryWith(fn func(*Token) error) error {
	tok, err := l.TryAcquire()
	if err != nil {
		return err
	}
	return l.run(tok, fn)
}

func (l *Library) run(tok *Token, fn func(*Token) error) error {
	defer tok.Release()
	defer func() {
		if r := recover(); r != nil {
			l.poison(fmt.Errorf("panic while holding the library: %v", r))
			panic(r)
		}
	}()
	return fn(tok)
}

func (l *Library) poison(cause error) {
	if !l.lock.Poisoned() {
		l.logger.Error("Library poisoned", zap.Error(cause))
	}
	l.lock.poison()
}

// Poisoned reports whether the library refuses further calls.
func (l *Library) Poisoned() bool {
	return l.lock.Poisoned()
}

// Backend returns the underlying backend.
func (l *Library) Backend() Backend {
	return l.backend
}

// Close waits for the current holder, then unloads the backend.
// Safe to call multiple times.
func (l *Library) Close(ctx context.Context) error {
	var err error
	l.closeOnce.Do(func() {
		l.logger.Info("Closing library")
		// A poisoned gate is never handed out again, so skip waiting for it.
		if !l.lock.Poisoned() {
			select {
			case l.lock.sem <- struct{}{}:
				defer l.lock.release()
			case <-ctx.Done():
				err = ctx.Err()
				return
			}
		}
		close(l.closed)
		err = l.backend.Close(ctx)
		l.unref()
	})
	return err
}
