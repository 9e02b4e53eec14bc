package spice

import (
	"context"
	"sync"
	"sync/atomic"
)

// Lock is the gate in front of the native library. At most one Token is
// live at a time.
type Lock struct {
	sem      chan struct{}
	poisoned atomic.Bool
}

func newLock() *Lock {
	return &Lock{sem: make(chan struct{}, 1)}
}

// SharedBackend is implemented by backends that share native state with
// other backends in the process, such as two handles on one shared object.
// Libraries over backends with the same non-empty GateKey share one Lock.
type SharedBackend interface {
	GateKey() string
}

type sharedLock struct {
	lock *Lock
	refs int
}

var (
	sharedMu    sync.Mutex
	sharedLocks = make(map[string]*sharedLock)
)

// lockFor returns the gate for backend and a func that drops the reference
// taken on it.
func lockFor(backend Backend) (*Lock, func()) {
	sb, ok := backend.(SharedBackend)
	if !ok || sb.GateKey() == "" {
		return newLock(), func() {}
	}
	key := sb.GateKey()

	sharedMu.Lock()
	defer sharedMu.Unlock()
	s, ok := sharedLocks[key]
	if !ok {
		s = &sharedLock{lock: newLock()}
		sharedLocks[key] = s
	}
	s.refs++
	return s.lock, func() {
		sharedMu.Lock()
		defer sharedMu.Unlock()
		if s.refs--; s.refs == 0 {
			delete(sharedLocks, key)
		}
	}
}

// tryAcquire takes the gate without waiting.
func (l *Lock) tryAcquire() error {
	if l.poisoned.Load() {
		return ErrPoisoned
	}
	select {
	case l.sem <- struct{}{}:
	default:
		return ErrLocked
	}
	// The previous holder may have poisoned the gate on its way out.
	if l.poisoned.Load() {
		<-l.sem
		return ErrPoisoned
	}
	return nil
}

// acquire waits for the gate until ctx is done.
func (l *Lock) acquire(ctx context.Context) error {
	if l.poisoned.Load() {
		return ErrPoisoned
	}
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	if l.poisoned.Load() {
		<-l.sem
		return ErrPoisoned
	}
	return nil
}

func (l *Lock) release() {
	<-l.sem
}

func (l *Lock) poison() {
	l.poisoned.Store(true)
}

// Poisoned reports whether the gate refuses further calls.
func (l *Lock) Poisoned() bool {
	return l.poisoned.Load()
}

// Token is the permission to call into the library. Raw and Checked are only
// usable until Release.
type Token struct {
	lib      *Library
	released atomic.Bool

	Raw     *Raw
	Checked *Checked
}

func newToken(lib *Library) *Token {
	t := &Token{lib: lib}
	t.Raw = &Raw{tok: t}
	t.Checked = &Checked{raw: t.Raw, logger: lib.logger}
	return t
}

// Release gives the gate back. Calling it more than once has no effect.
func (t *Token) Release() {
	if t.released.CompareAndSwap(false, true) {
		t.lib.lock.release()
	}
}

// Released reports whether Release has been called.
func (t *Token) Released() bool {
	return t.released.Load()
}

// poison marks the library unusable; the token stays held until released.
func (t *Token) poison(cause error) {
	t.lib.poison(cause)
}
