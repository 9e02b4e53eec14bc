package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/woxQAQ/gospice/internal/config"
	"github.com/woxQAQ/gospice/internal/spicetest"
	"github.com/woxQAQ/gospice/pkg/kernel"
	"github.com/woxQAQ/gospice/pkg/spice"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"
)

var approx = cmpopts.EquateApprox(0, 1e-6)

// newTestApp returns an app whose library is a fake with the HERA set
// installed and its meta-kernel configured.
func newTestApp(t *testing.T, format string) (*app, *spicetest.Fake, *bytes.Buffer) {
	t.Helper()
	fake := spicetest.NewHera()
	out := &bytes.Buffer{}
	a := &app{
		cfg: &config.Config{
			Backend:    config.BackendWasm,
			LogLevel:   "debug",
			Kernels:    []string{spicetest.HeraMetaKernel},
			TimeFormat: spice.TimeFormat,
		},
		logger: zaptest.NewLogger(t),
		out:    out,
		open: func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*spice.Library, error) {
			return spice.New(fake, logger), nil
		},
		format: format,
	}
	return a, fake, out
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 2 {
		t.Errorf("run() without a command = %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), "Usage: spice") {
		t.Errorf("usage not printed, stderr = %q", stderr.String())
	}

	stdout.Reset()
	if code := run([]string{"--version"}, &stdout, &stderr); code != 0 {
		t.Errorf("run(--version) = %d, want 0", code)
	}
	if !strings.HasPrefix(stdout.String(), "spice dev") {
		t.Errorf("version output = %q", stdout.String())
	}

	if code := run([]string{"--no-such-flag"}, &stdout, &stderr); code != 2 {
		t.Errorf("run() with an unknown flag = %d, want 2", code)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--backend", "cgo", "kernels"}, &stdout, &stderr); code != 1 {
		t.Errorf("run() with an unknown backend = %d, want 1", code)
	}
}

func TestET(t *testing.T) {
	a, fake, out := newTestApp(t, formatJSON)

	if err := a.run(context.Background(), []string{"et", "2027-MAR-23 16:00:00"}); err != nil {
		t.Fatalf("et: %v", err)
	}
	var et float64
	if err := json.Unmarshal(out.Bytes(), &et); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if diff := cmp.Diff(spicetest.ReferenceEpoch, et, approx); diff != "" {
		t.Errorf("et mismatch (-want +got):\n%s", diff)
	}
	if got := fake.Loaded(); len(got) != 0 {
		t.Errorf("Loaded() after the command = %v, want none", got)
	}
}

func TestTimout(t *testing.T) {
	a, _, out := newTestApp(t, formatText)

	et := spicetest.ReferenceEpoch + 3600
	if err := a.run(context.Background(), []string{"timout", "859093269.1856234"}); err != nil {
		t.Fatalf("timout %v: %v", et, err)
	}
	if got := out.String(); got != "2027-MAR-23 17:00:00\n" {
		t.Errorf("timout = %q, want 2027-MAR-23 17:00:00", got)
	}
}

func TestPosition(t *testing.T) {
	a, _, out := newTestApp(t, formatJSON)

	if err := a.run(context.Background(), []string{"position", "DIMORPHOS", "HERA", "2027-MAR-23 16:00:00"}); err != nil {
		t.Fatalf("position: %v", err)
	}
	var got Position
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if got.Frame != "J2000" || got.AberrationCorrection != "NONE" {
		t.Errorf("frame, abcorr = %s, %s, want J2000, NONE", got.Frame, got.AberrationCorrection)
	}
	if got.Time != "2027-MAR-23 16:00:00" {
		t.Errorf("Time = %q", got.Time)
	}
	if diff := cmp.Diff(spicetest.ReferencePosition, got.Position, approx); diff != "" {
		t.Errorf("Position mismatch (-want +got):\n%s", diff)
	}
	if got.LightTime <= 0 {
		t.Errorf("LightTime = %v, want > 0", got.LightTime)
	}
}

func TestPositionUnknownBody(t *testing.T) {
	a, fake, _ := newTestApp(t, formatText)

	err := a.run(context.Background(), []string{"position", "NOSUCHBODY", "HERA", "2027-MAR-23 16:00:00"})
	var spiceErr *spice.Error
	if !errors.As(err, &spiceErr) {
		t.Fatalf("position of an unknown body = %v, want *spice.Error", err)
	}
	if fake.Failed() {
		t.Error("error flag still set after the checked call")
	}
	if got := fake.Loaded(); len(got) != 0 {
		t.Errorf("Loaded() after a failed command = %v, want none", got)
	}
}

func TestExport(t *testing.T) {
	a, fake, out := newTestApp(t, formatYAML)

	args := []string{"export", "DIMORPHOS", "HERA", "2027-MAR-23 16:00:00", "3600", "1800"}
	if err := a.run(context.Background(), args); err != nil {
		t.Fatalf("export: %v", err)
	}
	var got Export
	if err := yaml.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}

	if got.Target != "DIMORPHOS" || got.Observer != "HERA" || got.Step != 1800 {
		t.Errorf("context = %+v", got)
	}
	if diff := cmp.Diff([]string{spicetest.HeraMetaKernel}, got.Kernels); diff != "" {
		t.Errorf("Kernels mismatch (-want +got):\n%s", diff)
	}
	times := make([]string, len(got.Samples))
	for i, s := range got.Samples {
		times[i] = s.Time
	}
	want := []string{"2027-MAR-23 16:00:00", "2027-MAR-23 16:30:00", "2027-MAR-23 17:00:00"}
	if diff := cmp.Diff(want, times); diff != "" {
		t.Errorf("sample times mismatch (-want +got):\n%s", diff)
	}
	if got := fake.Loaded(); len(got) != 0 {
		t.Errorf("Loaded() after export = %v, want none", got)
	}
}

func TestExportWithoutKernels(t *testing.T) {
	a, _, _ := newTestApp(t, formatText)
	a.cfg.Kernels = nil

	err := a.run(context.Background(), []string{"export", "DIMORPHOS", "HERA", "2027-MAR-23", "60", "10"})
	var usageErr *usageError
	if !errors.As(err, &usageErr) {
		t.Errorf("export without kernels = %v, want a usage error", err)
	}
}

func TestKernels(t *testing.T) {
	a, _, out := newTestApp(t, formatText)
	a.cfg.KernelPaths = []string{"../../pkg/kernel/testdata/sets"}

	if err := a.run(context.Background(), []string{"kernels"}); err != nil {
		t.Fatalf("kernels: %v", err)
	}
	if !strings.HasPrefix(out.String(), "hera\t3 kernels\t") {
		t.Errorf("kernels = %q, want the hera set", out.String())
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []string
	}{
		{"unknown command", formatText, []string{"orbit"}},
		{"unknown format", "xml", []string{"kernels"}},
		{"missing date", formatText, []string{"et"}},
		{"bad epoch", formatText, []string{"timout", "noon"}},
		{"bad step", formatText, []string{"export", "DIMORPHOS", "HERA", "2027-MAR-23", "60", "often"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestApp(t, tt.format)
			var usageErr *usageError
			if err := a.run(context.Background(), tt.args); !errors.As(err, &usageErr) {
				t.Errorf("run(%v) = %v, want a usage error", tt.args, err)
			}
		})
	}
}

func TestObservationDefaults(t *testing.T) {
	a, _, _ := newTestApp(t, formatText)
	set := &kernel.Manifest{Defaults: kernel.Defaults{Frame: "ECLIPJ2000", AberrationCorrection: "LT+S"}}

	if frame, abcorr := a.observation(nil); frame != "J2000" || abcorr != "NONE" {
		t.Errorf("observation(nil) = %s, %s, want J2000, NONE", frame, abcorr)
	}
	if frame, abcorr := a.observation(set); frame != "ECLIPJ2000" || abcorr != "LT+S" {
		t.Errorf("observation(set) = %s, %s, want the set defaults", frame, abcorr)
	}
	a.frame = "J2000"
	if frame, abcorr := a.observation(set); frame != "J2000" || abcorr != "LT+S" {
		t.Errorf("observation(set) with --frame = %s, %s, want J2000, LT+S", frame, abcorr)
	}
}
