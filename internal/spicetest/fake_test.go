package spicetest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/woxQAQ/gospice/internal/ffi"
)

func furnsh(t *testing.T, f *Fake, path string) error {
	t.Helper()
	frame := ffi.NewFrame(context.Background(), f)
	defer frame.Release()
	frame.Call("furnsh_c", ffi.KindVoid, frame.CString(path))
	return frame.Err()
}

func setReturnMode(t *testing.T, f *Fake) {
	t.Helper()
	frame := ffi.NewFrame(context.Background(), f)
	defer frame.Release()
	frame.Call("erract_c", ffi.KindVoid, frame.CString("SET"), ffi.Int(0), frame.CString("RETURN"))
	if err := frame.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestHeapAccounting(t *testing.T) {
	ctx := context.Background()
	f := New()

	a, err := f.Alloc(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.Alloc(ctx, 8)
	if err != nil {
		t.Fatal(err)
	}
	if a%8 != 0 || b%8 != 0 || b <= a {
		t.Errorf("Alloc() = %d, %d, want increasing 8-byte aligned addresses", a, b)
	}
	if got := f.LiveAllocations(); got != 2 {
		t.Errorf("LiveAllocations() = %d, want 2", got)
	}

	if !f.Write(b, []byte{1, 2, 3}) {
		t.Fatal("Write() inside the heap failed")
	}
	got, ok := f.Read(b, 3)
	if !ok {
		t.Fatal("Read() inside the heap failed")
	}
	if diff := cmp.Diff([]byte{1, 2, 3}, got); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
	if _, ok := f.Read(0, 1); ok {
		t.Error("Read() of the null page succeeded")
	}

	if err := f.Free(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := f.Free(ctx, a); err == nil {
		t.Error("second Free() succeeded")
	}
	if got := f.LiveAllocations(); got != 1 {
		t.Errorf("LiveAllocations() = %d, want 1", got)
	}
}

func TestClosedFake(t *testing.T) {
	ctx := context.Background()
	f := New()
	if err := f.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Alloc(ctx, 8); !errors.Is(err, ErrClosed) {
		t.Errorf("Alloc() after Close() = %v, want ErrClosed", err)
	}
	if _, err := f.Call(ctx, "failed_c", ffi.Signature{Result: ffi.KindI32}, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Call() after Close() = %v, want ErrClosed", err)
	}
}

func TestCallChecksSignature(t *testing.T) {
	f := New()
	_, err := f.Call(context.Background(), "failed_c", ffi.Signature{Result: ffi.KindF64}, nil)
	var mismatch *ffi.SignatureMismatchError
	if !errors.As(err, &mismatch) {
		t.Errorf("Call() with a wrong result kind = %v, want SignatureMismatchError", err)
	}

	_, err = f.Call(context.Background(), "nosuch_c", ffi.Signature{}, nil)
	var notFound *ffi.FunctionNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Call() of an unknown routine = %v, want FunctionNotFoundError", err)
	}
}

func TestAbortModeTraps(t *testing.T) {
	f := New()
	err := furnsh(t, f, "missing.bsp")
	if !ffi.IsTrap(err) {
		t.Fatalf("furnsh of a missing file in ABORT mode = %v, want a trap", err)
	}
}

func TestReturnModeSkipsCalls(t *testing.T) {
	f := New()
	setReturnMode(t, f)

	if err := furnsh(t, f, ""); err != nil {
		t.Fatal(err)
	}
	if !f.Failed() {
		t.Fatal("Failed() = false after an empty file name")
	}

	// A pending error makes ordinary routines return on entry.
	f.InstallHera()
	f.ResetCalls()
	if err := furnsh(t, f, HeraLSK); err != nil {
		t.Fatal(err)
	}
	if got := f.Loaded(); len(got) != 0 {
		t.Errorf("Loaded() = %v, want nothing while an error is pending", got)
	}
	if diff := cmp.Diff([]string{"furnsh_c"}, f.Calls()); diff != "" {
		t.Errorf("Calls() mismatch (-want +got):\n%s", diff)
	}
}

func TestMetaKernel(t *testing.T) {
	f := NewHera()
	setReturnMode(t, f)

	if err := furnsh(t, f, HeraMetaKernel); err != nil {
		t.Fatal(err)
	}
	if f.Failed() {
		t.Fatal("furnsh of the meta-kernel failed")
	}
	loaded := f.Loaded()
	if len(loaded) < 2 || loaded[0] != HeraMetaKernel {
		t.Fatalf("Loaded() = %v, want the meta-kernel followed by its members", loaded)
	}

	frame := ffi.NewFrame(context.Background(), f)
	defer frame.Release()
	frame.Call("unload_c", ffi.KindVoid, frame.CString(HeraMetaKernel))
	if err := frame.Err(); err != nil {
		t.Fatal(err)
	}
	if got := f.Loaded(); len(got) != 0 {
		t.Errorf("Loaded() after unloading the meta-kernel = %v, want none", got)
	}
}

func TestFilesOnDisk(t *testing.T) {
	f := New()
	setReturnMode(t, f)

	path := filepath.Join(t.TempDir(), "naif0012.tls")
	if err := os.WriteFile(path, []byte("KPL/LSK\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := furnsh(t, f, path); err != nil {
		t.Fatal(err)
	}
	if f.Failed() {
		t.Fatal("furnsh of a file on disk failed")
	}
	if diff := cmp.Diff([]string{path}, f.Loaded()); diff != "" {
		t.Errorf("Loaded() mismatch (-want +got):\n%s", diff)
	}
}

func TestSignal(t *testing.T) {
	f := New()
	f.Signal("SPICE(NOSUCHFILE)", "The file 'x' does not exist.")
	if !f.Failed() {
		t.Error("Failed() = false after Signal()")
	}
	if got := f.Action(); got != "ABORT" {
		t.Errorf("Action() = %q, want ABORT", got)
	}
}
