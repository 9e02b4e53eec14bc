package spice

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/woxQAQ/gospice/internal/spicetest"
	"go.uber.org/zap/zaptest"
)

var approx = cmpopts.EquateApprox(1e-12, 1e-9)

func newTestLibrary(t *testing.T) (*Library, *spicetest.Fake) {
	t.Helper()
	fake := spicetest.NewHera()
	lib := New(fake, zaptest.NewLogger(t))
	t.Cleanup(func() {
		_ = lib.Close(context.Background())
	})
	return lib, fake
}

func acquire(t *testing.T, lib *Library) *Token {
	t.Helper()
	tok, err := lib.TryAcquire()
	if err != nil {
		t.Fatalf("TryAcquire() error = %v", err)
	}
	t.Cleanup(tok.Release)
	return tok
}

// loadHera loads the HERA meta-kernel through the checked layer.
func loadHera(t *testing.T, tok *Token) {
	t.Helper()
	if err := tok.Checked.Furnsh(context.Background(), spicetest.HeraMetaKernel); err != nil {
		t.Fatalf("Furnsh(%q) error = %v", spicetest.HeraMetaKernel, err)
	}
}
