package spice

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/woxQAQ/gospice/internal/ffi"
	"github.com/woxQAQ/gospice/internal/spicetest"
	"go.uber.org/zap/zaptest"
)

func TestHeraScenario(t *testing.T) {
	lib, fake := newTestLibrary(t)
	ctx := context.Background()

	err := lib.With(ctx, func(tok *Token) error {
		chk := tok.Checked
		loadHera(t, tok)

		et, err := chk.Str2et(ctx, "2027-MAR-23 16:00:00")
		if err != nil {
			t.Fatalf("Str2et() error = %v", err)
		}
		if math.Abs(et-spicetest.ReferenceEpoch) > 1e-6 {
			t.Errorf("Str2et() = %.7f, want %.7f", et, spicetest.ReferenceEpoch)
		}

		date, err := chk.FormatEpoch(ctx, et, TimeFormat)
		if err != nil {
			t.Fatalf("FormatEpoch() error = %v", err)
		}
		if date != "2027-MAR-23 16:00:00" {
			t.Errorf("FormatEpoch() = %q, want %q", date, "2027-MAR-23 16:00:00")
		}

		pos, lt, err := chk.Spkpos(ctx, "DIMORPHOS", et, "J2000", "NONE", "HERA")
		if err != nil {
			t.Fatalf("Spkpos() error = %v", err)
		}
		if diff := cmp.Diff(spicetest.ReferencePosition, pos, approx); diff != "" {
			t.Errorf("Spkpos() position mismatch (-want +got):\n%s", diff)
		}
		wantLT := math.Sqrt(pos[0]*pos[0]+pos[1]*pos[1]+pos[2]*pos[2]) / 299792.458
		if diff := cmp.Diff(wantLT, lt, approx); diff != "" {
			t.Errorf("Spkpos() light time mismatch (-want +got):\n%s", diff)
		}

		return chk.Unload(ctx, spicetest.HeraMetaKernel)
	})
	if err != nil {
		t.Fatalf("With() error = %v", err)
	}
	if got := fake.Loaded(); len(got) != 0 {
		t.Errorf("Loaded() = %v after unload, want none", got)
	}
	if got := fake.LiveAllocations(); got != 0 {
		t.Errorf("LiveAllocations() = %d, want 0", got)
	}
}

func TestFurnshEmptyPath(t *testing.T) {
	lib, fake := newTestLibrary(t)
	tok := acquire(t, lib)

	err := tok.Checked.Furnsh(context.Background(), "")
	var spiceErr *Error
	if !errors.As(err, &spiceErr) {
		t.Fatalf("Furnsh(\"\") error = %v, want *Error", err)
	}
	if spiceErr.Kind != EmptyString {
		t.Errorf("Kind = %v, want %v", spiceErr.Kind, EmptyString)
	}
	if spiceErr.Function != "furnsh_c" {
		t.Errorf("Function = %q, want %q", spiceErr.Function, "furnsh_c")
	}
	if fake.Failed() {
		t.Error("native error flag still set after a checked call")
	}
}

func TestFurnshMissingFile(t *testing.T) {
	lib, fake := newTestLibrary(t)
	tok := acquire(t, lib)

	err := tok.Checked.Furnsh(context.Background(), "kernels/does_not_exist.bsp")
	if kind, ok := KindOf(err); !ok || kind != NoSuchFile {
		t.Fatalf("KindOf(Furnsh()) = %v, %v, want %v, true (err = %v)", kind, ok, NoSuchFile, err)
	}
	var spiceErr *Error
	errors.As(err, &spiceErr)
	if spiceErr.Short != "SPICE(NOSUCHFILE)" {
		t.Errorf("Short = %q, want %q", spiceErr.Short, "SPICE(NOSUCHFILE)")
	}
	if !strings.Contains(spiceErr.Long, "kernels/does_not_exist.bsp") {
		t.Errorf("Long = %q, want it to name the file", spiceErr.Long)
	}
	if fake.Failed() {
		t.Error("native error flag still set after a checked call")
	}

	// The library stays usable after a checked failure.
	if lib.Poisoned() {
		t.Fatal("Poisoned() = true after a checked error")
	}
	if err := tok.Checked.Furnsh(context.Background(), spicetest.HeraLSK); err != nil {
		t.Errorf("Furnsh() after failure error = %v", err)
	}
}

func TestCheckedProtocolOrder(t *testing.T) {
	lib, fake := newTestLibrary(t)
	tok := acquire(t, lib)
	ctx := context.Background()

	fake.ResetCalls()
	if _, err := tok.Checked.Str2et(ctx, "2027-MAR-23 16:00:00"); err == nil {
		t.Fatal("Str2et() without a leapseconds kernel succeeded")
	}
	want := []string{"erract_c", "str2et_c", "failed_c", "getmsg_c", "getmsg_c", "reset_c"}
	if diff := cmp.Diff(want, fake.Calls()); diff != "" {
		t.Errorf("failed call sequence mismatch (-want +got):\n%s", diff)
	}
	if fake.Action() != "RETURN" {
		t.Errorf("Action() = %q, want RETURN", fake.Action())
	}

	loadHera(t, tok)
	fake.ResetCalls()
	if _, err := tok.Checked.Str2et(ctx, "2027-MAR-23 16:00:00"); err != nil {
		t.Fatalf("Str2et() error = %v", err)
	}
	want = []string{"erract_c", "str2et_c", "failed_c"}
	if diff := cmp.Diff(want, fake.Calls()); diff != "" {
		t.Errorf("successful call sequence mismatch (-want +got):\n%s", diff)
	}
}

// noMessages serves every entry point except getmsg_c.
type noMessages struct {
	*spicetest.Fake
}

func (b noMessages) Call(ctx context.Context, name string, sig ffi.Signature, args []ffi.Value) (ffi.Value, error) {
	if name == "getmsg_c" {
		return ffi.Value{Kind: sig.Result}, &ffi.FunctionNotFoundError{Backend: "fake", Function: name}
	}
	return b.Fake.Call(ctx, name, sig, args)
}

func TestCheckedClearsFlagWhenMessagesFail(t *testing.T) {
	fake := spicetest.NewHera()
	lib := New(noMessages{fake}, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = lib.Close(context.Background()) })
	tok := acquire(t, lib)
	ctx := context.Background()

	err := tok.Checked.Furnsh(ctx, "missing.bsp")
	var notFound *ffi.FunctionNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Furnsh() error = %v, want *ffi.FunctionNotFoundError", err)
	}
	if fake.Failed() {
		t.Error("error flag still set after the message lookup failed")
	}

	loadHera(t, tok)
	if _, err := tok.Checked.Str2et(ctx, "2027-MAR-23 16:00:00"); err != nil {
		t.Errorf("Str2et() after a failed message lookup error = %v", err)
	}
}

func TestCheckedReturnsZeroOutputs(t *testing.T) {
	lib, fake := newTestLibrary(t)
	tok := acquire(t, lib)
	ctx := context.Background()
	loadHera(t, tok)

	pos, lt, err := tok.Checked.Spkpos(ctx, "DIMORPHOS", spicetest.ReferenceEpoch, "NO_SUCH_FRAME", "NONE", "HERA")
	if kind, _ := KindOf(err); kind != UnknownFrame {
		t.Fatalf("Spkpos() error = %v, want kind %v", err, UnknownFrame)
	}
	if pos != [3]float64{} || lt != 0 {
		t.Errorf("Spkpos() = %v, %v on error, want zero values", pos, lt)
	}

	_, _, err = tok.Checked.Spkpos(ctx, "NOT_A_BODY", spicetest.ReferenceEpoch, "J2000", "NONE", "HERA")
	if kind, _ := KindOf(err); kind != IDCodeNotFound {
		t.Errorf("Spkpos() error = %v, want kind %v", err, IDCodeNotFound)
	}

	_, _, err = tok.Checked.Spkpos(ctx, "DIMORPHOS", spicetest.ReferenceEpoch+1e9, "J2000", "NONE", "HERA")
	if kind, _ := KindOf(err); kind != InsufficientData {
		t.Errorf("Spkpos() error = %v, want kind %v", err, InsufficientData)
	}
	if fake.Failed() {
		t.Error("native error flag still set after checked calls")
	}
	if got := fake.LiveAllocations(); got != 0 {
		t.Errorf("LiveAllocations() = %d, want 0", got)
	}
}

func TestCheckedNoLoadedFiles(t *testing.T) {
	lib, _ := newTestLibrary(t)
	tok := acquire(t, lib)

	_, _, err := tok.Checked.Spkpos(context.Background(), "DIMORPHOS", spicetest.ReferenceEpoch, "J2000", "NONE", "HERA")
	if kind, _ := KindOf(err); kind != NoLoadedFiles {
		t.Errorf("Spkpos() error = %v, want kind %v", err, NoLoadedFiles)
	}
}

func TestCheckedNoLeapSeconds(t *testing.T) {
	lib, _ := newTestLibrary(t)
	tok := acquire(t, lib)

	_, err := tok.Checked.Str2et(context.Background(), "2027-MAR-23 16:00:00")
	if kind, _ := KindOf(err); kind != NoLeapSeconds {
		t.Errorf("Str2et() error = %v, want kind %v", err, NoLeapSeconds)
	}
}

func TestCheckedUnclassified(t *testing.T) {
	lib, _ := newTestLibrary(t)
	tok := acquire(t, lib)
	ctx := context.Background()
	loadHera(t, tok)

	_, err := tok.Checked.Str2et(ctx, "not a date")
	var spiceErr *Error
	if !errors.As(err, &spiceErr) {
		t.Fatalf("Str2et() error = %v, want *Error", err)
	}
	if spiceErr.Kind != Unclassified {
		t.Errorf("Kind = %v, want %v", spiceErr.Kind, Unclassified)
	}
	if spiceErr.Short != "SPICE(UNPARSEDTIME)" {
		t.Errorf("Short = %q, want %q", spiceErr.Short, "SPICE(UNPARSEDTIME)")
	}
	if spiceErr.Long == "" {
		t.Error("Long is empty, want the native explanation")
	}
}

func TestCheckedMatchesRaw(t *testing.T) {
	lib, _ := newTestLibrary(t)
	tok := acquire(t, lib)
	ctx := context.Background()
	loadHera(t, tok)

	rawRot, err := tok.Raw.Pxform(ctx, "J2000", "ECLIPJ2000", spicetest.ReferenceEpoch)
	if err != nil {
		t.Fatalf("Raw.Pxform() error = %v", err)
	}
	chkRot, err := tok.Checked.Pxform(ctx, "J2000", "ECLIPJ2000", spicetest.ReferenceEpoch)
	if err != nil {
		t.Fatalf("Checked.Pxform() error = %v", err)
	}
	if diff := cmp.Diff(rawRot, chkRot); diff != "" {
		t.Errorf("Pxform() mismatch (-raw +checked):\n%s", diff)
	}
	if rawRot[1][2] == 0 || rawRot[0][0] != 1 {
		t.Errorf("Pxform() = %v, want the ecliptic rotation", rawRot)
	}
}
