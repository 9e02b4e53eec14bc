package spice

import (
	"context"
	"fmt"
)

// Wrappers over entry points whose native signature needs buffer sizes the
// caller has no reason to pick.

// FormatEpoch formats et with a timout picture. The output buffer is sized
// after the picture.
func (chk *Checked) FormatEpoch(ctx context.Context, et float64, picture string) (string, error) {
	return chk.Timout(ctx, et, picture, len(picture)+1)
}

// UTC formats et as a UTC string in format C, D, J, ISOC or ISOD.
func (chk *Checked) UTC(ctx context.Context, et float64, format string, prec int32) (string, error) {
	return chk.Et2utc(ctx, et, format, prec, UTCLen)
}

// BodyName translates a NAIF ID code to a body name.
func (chk *Checked) BodyName(ctx context.Context, code int32) (name string, found bool, err error) {
	return chk.Bodc2n(ctx, code, BodyNameLen)
}

// BodyValues returns every value of a body constant such as RADII.
func (chk *Checked) BodyValues(ctx context.Context, body, item string) ([]float64, error) {
	_, values, err := chk.Bodvrd(ctx, body, item, MaxBodyValues)
	return values, err
}

// SpacecraftClock formats et as a spacecraft clock string.
func (chk *Checked) SpacecraftClock(ctx context.Context, sc int32, et float64) (string, error) {
	return chk.Sce2s(ctx, sc, et, SCLKLen)
}

// Plates fetches every plate of a type 2 DSK segment.
func (chk *Checked) Plates(ctx context.Context, handle int32, dladsc DLADSC) ([][3]int32, error) {
	_, np, err := chk.Dskz02(ctx, handle, dladsc)
	if err != nil {
		return nil, err
	}
	if np == 0 {
		return nil, nil
	}
	_, plates, err := chk.Dskp02(ctx, handle, dladsc, 1, int(np))
	return plates, err
}

// KernelInfo describes a loaded kernel.
type KernelInfo struct {
	File   string
	Type   string
	Source string
	Handle int32
}

// KernelData describes the loaded kernel at index which (0-based) among the
// kernels of the given kinds ("ALL", "SPK", "TEXT", ...). found is false past
// the last one.
func (chk *Checked) KernelData(ctx context.Context, which int32, kind string) (info KernelInfo, found bool, err error) {
	file, typ, src, handle, found, err := chk.Kdata(ctx, which, kind, FileNameLen, FileTypeLen, FileNameLen)
	if err != nil || !found {
		return KernelInfo{}, false, err
	}
	return KernelInfo{File: file, Type: typ, Source: src, Handle: handle}, true, nil
}

// LoadedKernels lists the loaded kernels of the given kinds in load order.
func (chk *Checked) LoadedKernels(ctx context.Context, kind string) ([]KernelInfo, error) {
	n, err := chk.Ktotal(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]KernelInfo, 0, n)
	for i := int32(0); i < n; i++ {
		info, found, err := chk.KernelData(ctx, i, kind)
		if err != nil {
			return nil, err
		}
		if !found {
			break
		}
		out = append(out, info)
	}
	return out, nil
}

// Occultation is the result code of occult_c.
type Occultation int32

// The suffix names the target being occulted: negative codes mean the
// second target is in front of the first.
const (
	TotalOccultation1   Occultation = -3
	AnnularOccultation1 Occultation = -2
	PartialOccultation1 Occultation = -1
	NoOccultation       Occultation = 0
	PartialOccultation2 Occultation = 1
	AnnularOccultation2 Occultation = 2
	TotalOccultation2   Occultation = 3
)

func (o Occultation) String() string {
	switch o {
	case NoOccultation:
		return "none"
	case PartialOccultation1, PartialOccultation2:
		return fmt.Sprintf("partial (%d)", int32(o))
	case AnnularOccultation1, AnnularOccultation2:
		return fmt.Sprintf("annular (%d)", int32(o))
	case TotalOccultation1, TotalOccultation2:
		return fmt.Sprintf("total (%d)", int32(o))
	}
	return fmt.Sprintf("Occultation(%d)", int32(o))
}

// Occults classifies the occultation between target1 and target2 as seen
// from observer, both bodies modelled as ellipsoids in their IAU body-fixed frames.
func (chk *Checked) Occults(ctx context.Context, target1, target2, abcorr, observer string, et float64) (Occultation, error) {
	code, err := chk.Occult(ctx,
		target1, "ELLIPSOID", "IAU_"+target1,
		target2, "ELLIPSOID", "IAU_"+target2,
		abcorr, observer, et,
	)
	return Occultation(code), err
}
