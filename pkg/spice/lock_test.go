package spice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/woxQAQ/gospice/internal/ffi"
	"github.com/woxQAQ/gospice/internal/spicetest"
	"go.uber.org/zap/zaptest"
)

// sharedFake reports a gate key the way a shared object opened twice does.
type sharedFake struct {
	*spicetest.Fake
	key string
}

func (s sharedFake) GateKey() string { return s.key }

// trappingAllocator fails every allocation with a guest trap.
type trappingAllocator struct {
	*spicetest.Fake
}

func (trappingAllocator) Alloc(ctx context.Context, size uint32) (uint64, error) {
	return 0, &ffi.TrapError{Function: "malloc", Err: errors.New("unreachable")}
}

func TestTryAcquireLocked(t *testing.T) {
	lib, _ := newTestLibrary(t)

	tok, err := lib.TryAcquire()
	if err != nil {
		t.Fatalf("TryAcquire() error = %v", err)
	}
	if _, err := lib.TryAcquire(); !errors.Is(err, ErrLocked) {
		t.Fatalf("second TryAcquire() error = %v, want %v", err, ErrLocked)
	}

	tok.Release()
	tok.Release()

	again, err := lib.TryAcquire()
	if err != nil {
		t.Fatalf("TryAcquire() after release error = %v", err)
	}
	again.Release()
}

func TestAcquireWaitsForRelease(t *testing.T) {
	lib, _ := newTestLibrary(t)
	tok := acquire(t, lib)

	acquired := make(chan *Token)
	go func() {
		next, err := lib.Acquire(context.Background())
		if err != nil {
			t.Errorf("Acquire() error = %v", err)
			close(acquired)
			return
		}
		acquired <- next
	}()

	select {
	case <-acquired:
		t.Fatal("Acquire() returned while the gate was held")
	case <-time.After(20 * time.Millisecond):
	}

	tok.Release()
	select {
	case next := <-acquired:
		if next != nil {
			next.Release()
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Acquire() did not return after release")
	}
}

func TestAcquireContextDone(t *testing.T) {
	lib, _ := newTestLibrary(t)
	acquire(t, lib)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := lib.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() error = %v, want %v", err, context.DeadlineExceeded)
	}
}

func TestReleasedTokenRefusesCalls(t *testing.T) {
	lib, _ := newTestLibrary(t)
	tok, err := lib.TryAcquire()
	if err != nil {
		t.Fatalf("TryAcquire() error = %v", err)
	}
	tok.Release()

	if _, err := tok.Raw.Pi(context.Background()); !errors.Is(err, ErrReleased) {
		t.Errorf("Raw.Pi() error = %v, want %v", err, ErrReleased)
	}
	if err := tok.Checked.Furnsh(context.Background(), "x.bsp"); !errors.Is(err, ErrReleased) {
		t.Errorf("Checked.Furnsh() error = %v, want %v", err, ErrReleased)
	}
}

func TestWithReleasesOnError(t *testing.T) {
	lib, _ := newTestLibrary(t)
	boom := errors.New("boom")

	err := lib.With(context.Background(), func(tok *Token) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("With() error = %v, want %v", err, boom)
	}

	tok, err := lib.TryAcquire()
	if err != nil {
		t.Fatalf("TryAcquire() after With error = %v", err)
	}
	tok.Release()
}

func TestTryWithPanicPoisons(t *testing.T) {
	lib, _ := newTestLibrary(t)

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("TryWith() did not propagate the panic")
			}
		}()
		_ = lib.TryWith(func(tok *Token) error {
			panic("interrupted")
		})
	}()

	if !lib.Poisoned() {
		t.Fatal("Poisoned() = false after a panic, want true")
	}
	if _, err := lib.TryAcquire(); !errors.Is(err, ErrPoisoned) {
		t.Errorf("TryAcquire() error = %v, want %v", err, ErrPoisoned)
	}
	if _, err := lib.Acquire(context.Background()); !errors.Is(err, ErrPoisoned) {
		t.Errorf("Acquire() error = %v, want %v", err, ErrPoisoned)
	}
}

func TestTrapPoisons(t *testing.T) {
	lib, fake := newTestLibrary(t)
	tok := acquire(t, lib)

	// Without RETURN mode a native error aborts, which the backend reports
	// as a trap.
	err := tok.Raw.Furnsh(context.Background(), "missing.bsp")
	var trap *ffi.TrapError
	if !errors.As(err, &trap) {
		t.Fatalf("Raw.Furnsh() error = %v, want *ffi.TrapError", err)
	}
	if trap.Function != "furnsh_c" {
		t.Errorf("Function = %q, want %q", trap.Function, "furnsh_c")
	}
	if !lib.Poisoned() {
		t.Fatal("Poisoned() = false after a trap, want true")
	}
	if _, err := tok.Raw.Pi(context.Background()); !errors.Is(err, ErrPoisoned) {
		t.Errorf("Raw.Pi() on poisoned library error = %v, want %v", err, ErrPoisoned)
	}
	if got := fake.LiveAllocations(); got != 0 {
		t.Errorf("LiveAllocations() = %d after trap, want 0", got)
	}

	tok.Release()
	if _, err := lib.TryAcquire(); !errors.Is(err, ErrPoisoned) {
		t.Errorf("TryAcquire() error = %v, want %v", err, ErrPoisoned)
	}
}

func TestCloseWaitsForHolder(t *testing.T) {
	lib, _ := newTestLibrary(t)
	tok := acquire(t, lib)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := lib.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Close() error = %v, want %v", err, context.DeadlineExceeded)
	}
	tok.Release()
}

func TestClosedLibrary(t *testing.T) {
	lib, _ := newTestLibrary(t)
	if err := lib.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := lib.TryAcquire(); !errors.Is(err, ErrClosed) {
		t.Errorf("TryAcquire() error = %v, want %v", err, ErrClosed)
	}
	if err := lib.Close(context.Background()); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestSharedBackendSharesGate(t *testing.T) {
	fake := spicetest.NewHera()
	ctx := context.Background()
	first := New(sharedFake{fake, "native:0x1"}, zaptest.NewLogger(t))
	second := New(sharedFake{fake, "native:0x1"}, zaptest.NewLogger(t))

	tok, err := first.TryAcquire()
	if err != nil {
		t.Fatalf("first TryAcquire() error = %v", err)
	}
	if _, err := second.TryAcquire(); !errors.Is(err, ErrLocked) {
		t.Fatalf("second library TryAcquire() error = %v, want %v", err, ErrLocked)
	}
	tok.Release()

	tok, err = second.TryAcquire()
	if err != nil {
		t.Fatalf("second library TryAcquire() after release error = %v", err)
	}
	second.poison(errors.New("interrupted"))
	tok.Release()
	if !first.Poisoned() {
		t.Error("first Poisoned() = false after the second library was poisoned, want true")
	}

	if err := first.Close(ctx); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := second.Close(ctx); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	// Once every library is closed the next one starts with a fresh gate.
	third := New(sharedFake{spicetest.NewHera(), "native:0x1"}, zaptest.NewLogger(t))
	defer third.Close(ctx)
	if third.Poisoned() {
		t.Error("Poisoned() = true for a new library after all holders closed, want false")
	}
}

func TestUnsharedBackendsHaveOwnGates(t *testing.T) {
	a, _ := newTestLibrary(t)
	b, _ := newTestLibrary(t)
	acquire(t, a)
	acquire(t, b)
}

func TestAllocatorTrapPoisons(t *testing.T) {
	lib := New(trappingAllocator{spicetest.NewHera()}, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = lib.Close(context.Background()) })
	tok := acquire(t, lib)

	_, err := tok.Raw.Str2et(context.Background(), "2024-10-07T14:52:12")
	if !ffi.IsTrap(err) {
		t.Fatalf("Raw.Str2et() error = %v, want a trap", err)
	}
	if !lib.Poisoned() {
		t.Fatal("Poisoned() = false after a trap in the allocator, want true")
	}
	if _, err := tok.Raw.Pi(context.Background()); !errors.Is(err, ErrPoisoned) {
		t.Errorf("Raw.Pi() error = %v, want %v", err, ErrPoisoned)
	}
}
