package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/woxQAQ/gospice/internal/config"
	"github.com/woxQAQ/gospice/pkg/kernel"
	"github.com/woxQAQ/gospice/pkg/spice"
	"github.com/woxQAQ/gospice/pkg/system"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

const (
	defaultFrame  = "J2000"
	defaultAbcorr = "NONE"
)

type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
	open   func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*spice.Library, error)

	format string
	set    string
	frame  string
	abcorr string
}

// Position is the output of the position command.
type Position struct {
	Target               string     `json:"target" yaml:"target"`
	Observer             string     `json:"observer" yaml:"observer"`
	Frame                string     `json:"frame" yaml:"frame"`
	AberrationCorrection string     `json:"abcorr" yaml:"abcorr"`
	Time                 string     `json:"time" yaml:"time"`
	ET                   float64    `json:"et" yaml:"et"`
	Position             [3]float64 `json:"position" yaml:"position,flow"`
	LightTime            float64    `json:"light_time" yaml:"light_time"`
}

// Export is the output of the export command.
type Export struct {
	Target               string          `json:"target" yaml:"target"`
	Observer             string          `json:"observer" yaml:"observer"`
	Frame                string          `json:"frame" yaml:"frame"`
	AberrationCorrection string          `json:"abcorr" yaml:"abcorr"`
	Start                string          `json:"start" yaml:"start"`
	Duration             float64         `json:"duration" yaml:"duration"`
	Step                 float64         `json:"step" yaml:"step"`
	Kernels              []string        `json:"kernels" yaml:"kernels"`
	Samples              []system.Sample `json:"samples" yaml:"samples"`
}

// KernelSet is one entry of the kernels command.
type KernelSet struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Dir         string          `json:"dir" yaml:"dir"`
	Kernels     []string        `json:"kernels" yaml:"kernels"`
	Defaults    kernel.Defaults `json:"defaults" yaml:"defaults"`
}

func (a *app) run(ctx context.Context, args []string) error {
	switch a.format {
	case formatText, formatJSON, formatYAML:
	default:
		return usagef("unknown format %q", a.format)
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "kernels":
		if len(args) != 0 {
			return usagef("kernels takes no arguments")
		}
		return a.kernels(ctx)
	case "et":
		if len(args) != 1 {
			return usagef("et takes <date>")
		}
		return a.withKernels(ctx, func(chk *spice.Checked, _ *kernel.Manifest) error {
			return a.et(ctx, chk, args[0])
		})
	case "timout":
		if len(args) != 1 {
			return usagef("timout takes <et>")
		}
		et, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return usagef("invalid ephemeris time %q", args[0])
		}
		return a.withKernels(ctx, func(chk *spice.Checked, _ *kernel.Manifest) error {
			return a.timout(ctx, chk, et)
		})
	case "position":
		if len(args) != 3 {
			return usagef("position takes <target> <observer> <date>")
		}
		return a.withKernels(ctx, func(chk *spice.Checked, set *kernel.Manifest) error {
			return a.position(ctx, chk, set, args[0], args[1], args[2])
		})
	case "export":
		if len(args) != 5 {
			return usagef("export takes <target> <observer> <date> <duration> <step>")
		}
		duration, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return usagef("invalid duration %q", args[3])
		}
		step, err := strconv.ParseFloat(args[4], 64)
		if err != nil {
			return usagef("invalid step %q", args[4])
		}
		return a.export(ctx, args[0], args[1], args[2], duration, step)
	default:
		return usagef("unknown command %q", cmd)
	}
}

// discover finds the configured kernel sets and returns the one named by
// --set, or nil.
func (a *app) discover(ctx context.Context, loader kernel.Loader) (*kernel.Manager, *kernel.Manifest, error) {
	manager := kernel.NewManager(a.cfg.KernelPaths, loader, a.logger)
	if err := manager.Discover(ctx); err != nil {
		return nil, nil, err
	}
	if a.set == "" {
		return manager, nil, nil
	}
	set, err := manager.Set(a.set)
	if err != nil {
		return nil, nil, err
	}
	return manager, set, nil
}

// openChecked loads the library and holds its gate until the returned
// release function runs.
func (a *app) openChecked(ctx context.Context) (*spice.Checked, func() error, error) {
	lib, err := a.open(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, nil, err
	}
	tok, err := lib.Acquire(ctx)
	if err != nil {
		return nil, nil, multierr.Append(err, lib.Close(context.WithoutCancel(ctx)))
	}
	release := func() error {
		tok.Release()
		return lib.Close(context.WithoutCancel(ctx))
	}
	return tok.Checked, release, nil
}

// withKernels runs fn with the configured kernels and kernel set loaded.
func (a *app) withKernels(ctx context.Context, fn func(chk *spice.Checked, set *kernel.Manifest) error) (err error) {
	chk, release, err := a.openChecked(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, release())
	}()

	manager, set, err := a.discover(ctx, chk)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, manager.UnloadAll(context.WithoutCancel(ctx)))
	}()

	if set != nil {
		if _, err := manager.LoadSet(ctx, set.Name); err != nil {
			return err
		}
	}
	if _, err := manager.Load(ctx, a.cfg.Kernels...); err != nil {
		return err
	}
	return fn(chk, set)
}

func (a *app) et(ctx context.Context, chk *spice.Checked, date string) error {
	et, err := chk.Str2et(ctx, date)
	if err != nil {
		return err
	}
	return a.emit(et, strconv.FormatFloat(et, 'f', -1, 64))
}

func (a *app) timout(ctx context.Context, chk *spice.Checked, et float64) error {
	s, err := chk.FormatEpoch(ctx, et, a.cfg.TimeFormat)
	if err != nil {
		return err
	}
	return a.emit(s, s)
}

// observation resolves frame and aberration correction from flags, then the
// kernel set defaults.
func (a *app) observation(set *kernel.Manifest) (frame, abcorr string) {
	frame, abcorr = a.frame, a.abcorr
	if set != nil {
		if frame == "" {
			frame = set.Defaults.Frame
		}
		if abcorr == "" {
			abcorr = set.Defaults.AberrationCorrection
		}
	}
	if frame == "" {
		frame = defaultFrame
	}
	if abcorr == "" {
		abcorr = defaultAbcorr
	}
	return frame, abcorr
}

func (a *app) position(ctx context.Context, chk *spice.Checked, set *kernel.Manifest, target, observer, date string) error {
	frame, abcorr := a.observation(set)
	et, err := chk.Str2et(ctx, date)
	if err != nil {
		return err
	}
	pos, lt, err := chk.Spkpos(ctx, target, et, frame, abcorr, observer)
	if err != nil {
		return err
	}
	formatted, err := chk.FormatEpoch(ctx, et, a.cfg.TimeFormat)
	if err != nil {
		return err
	}

	out := Position{
		Target:               target,
		Observer:             observer,
		Frame:                frame,
		AberrationCorrection: abcorr,
		Time:                 formatted,
		ET:                   et,
		Position:             pos,
		LightTime:            lt,
	}
	return a.emit(out, formatSample(formatted, pos, lt))
}

func (a *app) export(ctx context.Context, target, observer, date string, duration, step float64) (err error) {
	_, set, err := a.discover(ctx, nil)
	if err != nil {
		return err
	}
	frame, abcorr := a.observation(set)

	b := system.NewBuilder()
	if set != nil {
		b = system.FromManifest(set)
	}
	for _, k := range a.cfg.Kernels {
		b.Kernel(k)
	}
	sys, err := b.Frame(frame).
		AberrationCorrection(abcorr).
		Target(target).
		Observer(observer).
		StartDate(date).
		Duration(duration).
		TimeFormat(a.cfg.TimeFormat).
		Build()
	if err != nil {
		return usagef("%v", err)
	}

	chk, release, err := a.openChecked(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, release())
	}()

	if err := sys.Load(ctx, chk); err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, sys.Unload(context.WithoutCancel(ctx)))
	}()

	samples, err := sys.Samples(ctx, chk, step)
	if err != nil {
		return err
	}

	out := Export{
		Target:               sys.Target(),
		Observer:             sys.Observer(),
		Frame:                sys.Frame(),
		AberrationCorrection: sys.AberrationCorrection(),
		Start:                sys.StartDate(),
		Duration:             sys.Duration(),
		Step:                 step,
		Kernels:              sys.Kernels(),
		Samples:              samples,
	}
	lines := make([]string, len(samples))
	for i, s := range samples {
		lines[i] = formatSample(s.Time, s.Position, s.LightTime)
	}
	return a.emit(out, strings.Join(lines, "\n"))
}

func (a *app) kernels(ctx context.Context) error {
	manager, _, err := a.discover(ctx, nil)
	if err != nil {
		return err
	}

	sets := manager.Sets()
	out := make([]KernelSet, len(sets))
	lines := make([]string, len(sets))
	for i, s := range sets {
		out[i] = KernelSet{
			Name:        s.Name,
			Description: s.Description,
			Dir:         s.Dir(),
			Kernels:     s.Kernels,
			Defaults:    s.Defaults,
		}
		lines[i] = fmt.Sprintf("%s\t%d kernels\t%s", s.Name, len(s.Kernels), s.Description)
	}
	return a.emit(out, strings.Join(lines, "\n"))
}

func formatSample(time string, pos [3]float64, lt float64) string {
	return fmt.Sprintf("%s %.6f %.6f %.6f %.9f", time, pos[0], pos[1], pos[2], lt)
}

// emit writes v in the selected format; text is used for the text format.
func (a *app) emit(v any, text string) error {
	switch a.format {
	case formatJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		if text == "" {
			return nil
		}
		_, err := fmt.Fprintln(a.out, text)
		return err
	}
}
