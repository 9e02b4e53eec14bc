// Package system describes an observation window: a target seen from an
// observer in a reference frame, over a span of time, with the kernels that
// make the geometry available.
package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/woxQAQ/gospice/pkg/kernel"
	"go.uber.org/multierr"
)

// Ephemeris is the part of the toolkit a System queries. *spice.Checked
// implements it.
type Ephemeris interface {
	Str2et(ctx context.Context, str string) (float64, error)
	Spkpos(ctx context.Context, targ string, et float64, ref, abcorr, obs string) ([3]float64, float64, error)
	FormatEpoch(ctx context.Context, et float64, picture string) (string, error)
}

// ErrInvalidStep is returned for a sampling step that is not positive.
var ErrInvalidStep = errors.New("system: time step must be positive")

// System is an immutable observation window built by Builder.
type System struct {
	kernels    []string
	frame      string
	observer   string
	target     string
	startDate  string
	duration   float64
	abcorr     string
	timeFormat string

	loaded []*kernel.Kernel
}

// Sample is the target position at one epoch.
type Sample struct {
	ET        float64    `json:"et" yaml:"et"`
	Time      string     `json:"time" yaml:"time"`
	Position  [3]float64 `json:"position" yaml:"position,flow"`
	LightTime float64    `json:"light_time" yaml:"light_time"`
}

func (s *System) Kernels() []string { return append([]string(nil), s.kernels...) }
func (s *System) Frame() string { return s.frame }
func (s *System) Observer() string { return s.observer }
func (s *System) Target() string { return s.target }
func (s *System) StartDate() string { return s.startDate }
func (s *System) Duration() float64 { return s.duration }
func (s *System) AberrationCorrection() string { return s.abcorr }
func (s *System) TimeFormat() string { return s.timeFormat }

// Load loads the system's kernels in order. On failure the kernels loaded
// so far are unloaded again.
func (s *System) Load(ctx context.Context, loader kernel.Loader) error {
	if len(s.loaded) > 0 {
		return kernel.ErrAlreadyLoaded
	}
	for _, path := range s.kernels {
		k, err := kernel.New(ctx, loader, path)
		if err != nil {
			return multierr.Append(err, s.Unload(ctx))
		}
		s.loaded = append(s.loaded, k)
	}
	return nil
}

// Unload unloads the kernels loaded by Load, last first.
func (s *System) Unload(ctx context.Context) error {
	if len(s.loaded) == 0 {
		return nil
	}
	var err error
	for i := len(s.loaded) - 1; i >= 0; i-- {
		err = multierr.Append(err, s.loaded[i].Unload(ctx))
	}
	s.loaded = nil
	return err
}

// TimeStart is the start date in ephemeris time.
func (s *System) TimeStart(ctx context.Context, eph Ephemeris) (float64, error) {
	return eph.Str2et(ctx, s.startDate)
}

// TimeEnd is TimeStart plus the duration.
func (s *System) TimeEnd(ctx context.Context, eph Ephemeris) (float64, error) {
	start, err := s.TimeStart(ctx, eph)
	if err != nil {
		return 0, err
	}
	return start + s.duration, nil
}

func (s *System) position(ctx context.Context, eph Ephemeris, et float64) ([3]float64, error) {
	pos, _, err := eph.Spkpos(ctx, s.target, et, s.frame, s.abcorr, s.observer)
	return pos, err
}

// PositionStart is the target position at TimeStart.
func (s *System) PositionStart(ctx context.Context, eph Ephemeris) ([3]float64, error) {
	et, err := s.TimeStart(ctx, eph)
	if err != nil {
		return [3]float64{}, err
	}
	return s.position(ctx, eph, et)
}

// PositionEnd is the target position at TimeEnd.
func (s *System) PositionEnd(ctx context.Context, eph Ephemeris) ([3]float64, error) {
	et, err := s.TimeEnd(ctx, eph)
	if err != nil {
		return [3]float64{}, err
	}
	return s.position(ctx, eph, et)
}

// Times samples the window every step seconds. The end of the window is
// always the last sample, so the final interval may be shorter than step.
func (s *System) Times(ctx context.Context, eph Ephemeris, step float64) ([]float64, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStep, step)
	}
	start, err := s.TimeStart(ctx, eph)
	if err != nil {
		return nil, err
	}
	return linspace(start, start+s.duration, step), nil
}

func linspace(start, end, step float64) []float64 {
	var times []float64
	for k := 0; ; k++ {
		t := start + float64(k)*step
		if t >= end {
			break
		}
		times = append(times, t)
	}
	return append(times, end)
}

// NumberPoints is the number of samples Times returns for step.
func (s *System) NumberPoints(ctx context.Context, eph Ephemeris, step float64) (int, error) {
	times, err := s.Times(ctx, eph, step)
	return len(times), err
}

// TimesFormatted renders Times with the system's time format.
func (s *System) TimesFormatted(ctx context.Context, eph Ephemeris, step float64) ([]string, error) {
	times, err := s.Times(ctx, eph, step)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(times))
	for i, et := range times {
		if out[i], err = eph.FormatEpoch(ctx, et, s.timeFormat); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Positions returns the target position at each of Times.
func (s *System) Positions(ctx context.Context, eph Ephemeris, step float64) ([][3]float64, error) {
	times, err := s.Times(ctx, eph, step)
	if err != nil {
		return nil, err
	}
	out := make([][3]float64, len(times))
	for i, et := range times {
		if out[i], err = s.position(ctx, eph, et); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Samples returns time, position and light time at each of Times.
func (s *System) Samples(ctx context.Context, eph Ephemeris, step float64) ([]Sample, error) {
	times, err := s.Times(ctx, eph, step)
	if err != nil {
		return nil, err
	}
	out := make([]Sample, len(times))
	for i, et := range times {
		pos, lt, err := eph.Spkpos(ctx, s.target, et, s.frame, s.abcorr, s.observer)
		if err != nil {
			return nil, err
		}
		formatted, err := eph.FormatEpoch(ctx, et, s.timeFormat)
		if err != nil {
			return nil, err
		}
		out[i] = Sample{ET: et, Time: formatted, Position: pos, LightTime: lt}
	}
	return out, nil
}
