package system

import (
	"fmt"

	"github.com/woxQAQ/gospice/pkg/kernel"
	"github.com/woxQAQ/gospice/pkg/spice"
)

// MissingParameterError names the first parameter Build found unset.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("the parameter `%s` is missing", e.Name)
}

// Builder collects the parameters of a System.
type Builder struct {
	kernels    []string
	frame      *string
	observer   *string
	target     *string
	startDate  *string
	duration   *float64
	abcorr     *string
	timeFormat string
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// FromManifest starts a builder with a kernel set's files and its defaults.
func FromManifest(m *kernel.Manifest) *Builder {
	b := NewBuilder()
	for _, path := range m.KernelPaths() {
		b.Kernel(path)
	}
	d := m.Defaults
	if d.Frame != "" {
		b.Frame(d.Frame)
	}
	if d.Observer != "" {
		b.Observer(d.Observer)
	}
	if d.Target != "" {
		b.Target(d.Target)
	}
	if d.AberrationCorrection != "" {
		b.AberrationCorrection(d.AberrationCorrection)
	}
	return b
}

// Kernel adds a kernel file; files load in the order added.
func (b *Builder) Kernel(path string) *Builder {
	b.kernels = append(b.kernels, path)
	return b
}

func (b *Builder) Frame(name string) *Builder {
	b.frame = &name
	return b
}

func (b *Builder) Observer(name string) *Builder {
	b.observer = &name
	return b
}

func (b *Builder) Target(name string) *Builder {
	b.target = &name
	return b
}

// StartDate sets the start of the window in any format str2et accepts.
func (b *Builder) StartDate(date string) *Builder {
	b.startDate = &date
	return b
}

// Duration sets the length of the window in seconds.
func (b *Builder) Duration(seconds float64) *Builder {
	b.duration = &seconds
	return b
}

func (b *Builder) AberrationCorrection(name string) *Builder {
	b.abcorr = &name
	return b
}

// TimeFormat sets the picture used by TimesFormatted. It defaults to
// spice.TimeFormat.
func (b *Builder) TimeFormat(picture string) *Builder {
	b.timeFormat = picture
	return b
}

// Build checks that every parameter is set and returns the System.
func (b *Builder) Build() (*System, error) {
	switch {
	case len(b.kernels) == 0:
		return nil, &MissingParameterError{Name: "kernel"}
	case b.frame == nil:
		return nil, &MissingParameterError{Name: "frame"}
	case b.observer == nil:
		return nil, &MissingParameterError{Name: "observer"}
	case b.target == nil:
		return nil, &MissingParameterError{Name: "target"}
	case b.startDate == nil:
		return nil, &MissingParameterError{Name: "start_date"}
	case b.duration == nil:
		return nil, &MissingParameterError{Name: "duration"}
	case b.abcorr == nil:
		return nil, &MissingParameterError{Name: "aberration_correction"}
	}
	if *b.duration < 0 {
		return nil, fmt.Errorf("system: negative duration %v", *b.duration)
	}
	format := b.timeFormat
	if format == "" {
		format = spice.TimeFormat
	}
	return &System{
		kernels:    append([]string(nil), b.kernels...),
		frame:      *b.frame,
		observer:   *b.observer,
		target:     *b.target,
		startDate:  *b.startDate,
		duration:   *b.duration,
		abcorr:     *b.abcorr,
		timeFormat: format,
	}, nil
}
