package system

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/woxQAQ/gospice/internal/spicetest"
	"github.com/woxQAQ/gospice/pkg/kernel"
	"github.com/woxQAQ/gospice/pkg/spice"
	"go.uber.org/zap/zaptest"
)

var approx = cmpopts.EquateApprox(1e-12, 1e-9)

// clock is an Ephemeris whose dates are plain numbers of seconds and whose
// target sits at (et, 0, 0).
type clock struct{}

func (clock) Str2et(ctx context.Context, str string) (float64, error) {
	return strconv.ParseFloat(str, 64)
}

func (clock) Spkpos(ctx context.Context, targ string, et float64, ref, abcorr, obs string) ([3]float64, float64, error) {
	return [3]float64{et, 0, 0}, et / 10, nil
}

func (clock) FormatEpoch(ctx context.Context, et float64, picture string) (string, error) {
	return strconv.FormatFloat(et, 'f', 1, 64), nil
}

func window(t *testing.T, start string, duration float64) *System {
	t.Helper()
	s, err := NewBuilder().
		Kernel("naif0012.tls").
		Frame("J2000").
		Observer("HERA").
		Target("DIMORPHOS").
		StartDate(start).
		Duration(duration).
		AberrationCorrection("NONE").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return s
}

func TestBuildMissingParameters(t *testing.T) {
	full := func() *Builder {
		return NewBuilder().Kernel("k.bsp").Frame("J2000").Observer("HERA").
			Target("DIMORPHOS").StartDate("2027-MAR-23").Duration(60).AberrationCorrection("NONE")
	}
	tests := []struct {
		name    string
		builder *Builder
		want    string
	}{
		{"kernel", NewBuilder(), "kernel"},
		{"frame", NewBuilder().Kernel("k.bsp"), "frame"},
		{"observer", NewBuilder().Kernel("k.bsp").Frame("J2000"), "observer"},
		{"target", NewBuilder().Kernel("k.bsp").Frame("J2000").Observer("HERA"), "target"},
		{"start date", NewBuilder().Kernel("k.bsp").Frame("J2000").Observer("HERA").Target("DIMORPHOS"), "start_date"},
		{"duration", NewBuilder().Kernel("k.bsp").Frame("J2000").Observer("HERA").Target("DIMORPHOS").StartDate("x"), "duration"},
		{"abcorr", NewBuilder().Kernel("k.bsp").Frame("J2000").Observer("HERA").Target("DIMORPHOS").StartDate("x").Duration(1), "aberration_correction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			var missing *MissingParameterError
			if !errors.As(err, &missing) {
				t.Fatalf("Build() = %v, want MissingParameterError", err)
			}
			if missing.Name != tt.want {
				t.Errorf("Name = %q, want %q", missing.Name, tt.want)
			}
		})
	}

	if _, err := full().Duration(-1).Build(); err == nil {
		t.Error("Build() accepted a negative duration")
	}
	s, err := full().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if s.TimeFormat() != spice.TimeFormat {
		t.Errorf("TimeFormat() = %q, want %q", s.TimeFormat(), spice.TimeFormat)
	}
	if got := (&MissingParameterError{Name: "frame"}).Error(); got != "the parameter `frame` is missing" {
		t.Errorf("Error() = %q", got)
	}
}

func TestFromManifest(t *testing.T) {
	m, err := kernel.ParseManifest(filepath.Join("..", "kernel", "testdata", "sets", "hera"))
	if err != nil {
		t.Fatal(err)
	}

	s, err := FromManifest(m).StartDate("2027-MAR-23 16:00:00").Duration(3600).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if diff := cmp.Diff(m.KernelPaths(), s.Kernels()); diff != "" {
		t.Errorf("Kernels() mismatch (-want +got):\n%s", diff)
	}
	got := []string{s.Frame(), s.Observer(), s.Target(), s.AberrationCorrection()}
	want := []string{"J2000", "HERA", "DIMORPHOS", "NONE"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestTimes(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		duration float64
		step     float64
		want     []float64
	}{
		{"even", 10, 5, []float64{100, 105, 110}},
		{"short last interval", 10, 4, []float64{100, 104, 108, 110}},
		{"step longer than window", 10, 60, []float64{100, 110}},
		{"empty window", 0, 5, []float64{100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := window(t, "100", tt.duration)
			got, err := s.Times(ctx, clock{}, tt.step)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Times() mismatch (-want +got):\n%s", diff)
			}
			n, err := s.NumberPoints(ctx, clock{}, tt.step)
			if err != nil || n != len(tt.want) {
				t.Errorf("NumberPoints() = %d, %v, want %d", n, err, len(tt.want))
			}
		})
	}

	for _, step := range []float64{0, -1} {
		if _, err := window(t, "100", 10).Times(ctx, clock{}, step); !errors.Is(err, ErrInvalidStep) {
			t.Errorf("Times(step=%v) = %v, want ErrInvalidStep", step, err)
		}
	}
}

func TestSampling(t *testing.T) {
	ctx := context.Background()
	s := window(t, "100", 10)

	formatted, err := s.TimesFormatted(ctx, clock{}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"100.0", "105.0", "110.0"}, formatted); diff != "" {
		t.Errorf("TimesFormatted() mismatch (-want +got):\n%s", diff)
	}

	positions, err := s.Positions(ctx, clock{}, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := [][3]float64{{100, 0, 0}, {105, 0, 0}, {110, 0, 0}}
	if diff := cmp.Diff(want, positions); diff != "" {
		t.Errorf("Positions() mismatch (-want +got):\n%s", diff)
	}

	samples, err := s.Samples(ctx, clock{}, 10)
	if err != nil {
		t.Fatal(err)
	}
	wantSamples := []Sample{
		{ET: 100, Time: "100.0", Position: [3]float64{100, 0, 0}, LightTime: 10},
		{ET: 110, Time: "110.0", Position: [3]float64{110, 0, 0}, LightTime: 11},
	}
	if diff := cmp.Diff(wantSamples, samples); diff != "" {
		t.Errorf("Samples() mismatch (-want +got):\n%s", diff)
	}

	if _, err := window(t, "not a number", 10).PositionStart(ctx, clock{}); err == nil {
		t.Error("PositionStart() with an unparsable date succeeded")
	}
}

func TestHeraWindow(t *testing.T) {
	ctx := context.Background()
	fake := spicetest.NewHera()
	lib := spice.New(fake, zaptest.NewLogger(t))
	t.Cleanup(func() { lib.Close(ctx) })

	tok, err := lib.TryAcquire()
	if err != nil {
		t.Fatal(err)
	}
	defer tok.Release()

	const hour = 3600.0
	s, err := NewBuilder().
		Kernel(spicetest.HeraMetaKernel).
		Frame("J2000").
		Observer("HERA").
		Target("DIMORPHOS").
		StartDate("2027-MAR-23 16:00:00").
		Duration(2 * hour).
		AberrationCorrection("NONE").
		Build()
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Load(ctx, tok.Checked); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := s.Load(ctx, tok.Checked); !errors.Is(err, kernel.ErrAlreadyLoaded) {
		t.Errorf("second Load() = %v, want ErrAlreadyLoaded", err)
	}

	start, err := s.TimeStart(ctx, tok.Checked)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(spicetest.ReferenceEpoch, start, approx); diff != "" {
		t.Errorf("TimeStart() mismatch (-want +got):\n%s", diff)
	}
	end, err := s.TimeEnd(ctx, tok.Checked)
	if err != nil {
		t.Fatal(err)
	}
	if end-start != 2*hour {
		t.Errorf("TimeEnd()-TimeStart() = %v, want %v", end-start, 2*hour)
	}

	pos, err := s.PositionStart(ctx, tok.Checked)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(spicetest.ReferencePosition, pos, approx); diff != "" {
		t.Errorf("PositionStart() mismatch (-want +got):\n%s", diff)
	}
	if _, err := s.PositionEnd(ctx, tok.Checked); err != nil {
		t.Errorf("PositionEnd() error = %v", err)
	}

	formatted, err := s.TimesFormatted(ctx, tok.Checked, hour)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2027-MAR-23 16:00:00", "2027-MAR-23 17:00:00", "2027-MAR-23 18:00:00"}
	if diff := cmp.Diff(want, formatted); diff != "" {
		t.Errorf("TimesFormatted() mismatch (-want +got):\n%s", diff)
	}

	if err := s.Unload(ctx); err != nil {
		t.Fatalf("Unload() error = %v", err)
	}
	if got := fake.Loaded(); len(got) != 0 {
		t.Errorf("Loaded() after Unload() = %v, want none", got)
	}

	// Without kernels the checked layer reports the missing leapseconds.
	_, err = s.TimeStart(ctx, tok.Checked)
	if kind, ok := spice.KindOf(err); !ok || kind != spice.NoLeapSeconds {
		t.Errorf("TimeStart() without kernels = %v, want kind %s", err, spice.NoLeapSeconds)
	}
}
