package spicetest

import (
	"math"
	"strings"

	"github.com/woxQAQ/gospice/internal/ffi"
)

// ToolkitVersion is reported by tkvrsn_c("TOOLKIT").
const ToolkitVersion = "CSPICE_N0067"

func sig(result ffi.Kind, params ...ffi.Kind) ffi.Signature {
	return ffi.Signature{Params: params, Result: result}
}

func (f *Fake) register() map[string]impl {
	const (
		i = ffi.KindI32
		d = ffi.KindF64
		p = ffi.KindPtr
		v = ffi.KindVoid
	)

	fn := func(s ffi.Signature, h func(*call) ffi.Value) impl {
		return impl{sig: s, fn: h}
	}
	// Routines outside the error subsystem's RETURN-mode check.
	always := func(s ffi.Signature, h func(*call) ffi.Value) impl {
		return impl{sig: s, fn: h, always: true}
	}
	constant := func(x float64) impl {
		return always(sig(d), func(*call) ffi.Value { return ffi.Float(x) })
	}

	versions := map[string]uint64{}
	tkvrsn := func(c *call) ffi.Value {
		item := normalize(c.str(0))
		text := ""
		if item == "TOOLKIT" {
			text = ToolkitVersion
		}
		addr, ok := versions[text]
		if !ok {
			addr = f.static(text)
			versions[text] = addr
		}
		return ffi.Pointer(addr)
	}

	return map[string]impl{
		// kernels
		"furnsh_c": fn(sig(v, p), f.furnsh),
		"unload_c": fn(sig(v, p), f.unload),
		"kclear_c": fn(sig(v), f.kclear),
		"ktotal_c": fn(sig(v, p, p), f.ktotal),
		"kdata_c":  fn(sig(v, i, p, i, i, i, p, p, p, p, p), f.kdata),

		// error subsystem
		"erract_c": always(sig(v, p, i, p), f.erract),
		"failed_c": always(sig(i), f.failedFn),
		"getmsg_c": always(sig(v, p, i, p), f.getmsg),
		"reset_c":  always(sig(v), f.reset),

		// time
		"str2et_c": fn(sig(v, p, p), f.str2et),
		"et2utc_c": fn(sig(v, d, p, i, i, p), f.et2utc),
		"timout_c": fn(sig(v, d, p, i, p), f.timout),
		"unitim_c": fn(sig(d, d, p, p), f.unitim),
		"scs2e_c":  fn(sig(v, i, p, p), f.scs2e),
		"sce2s_c":  fn(sig(v, i, d, i, p), f.sce2s),

		// ephemeris and frames
		"spkpos_c": fn(sig(v, p, d, p, p, p, p, p), f.spkpos),
		"spkezr_c": fn(sig(v, p, d, p, p, p, p, p), f.spkezr),
		"pxform_c": fn(sig(v, p, p, d, p), f.pxform),
		"pxfrm2_c": fn(sig(v, p, p, d, d, p), f.pxfrm2),
		"sxform_c": fn(sig(v, p, p, d, p), f.sxform),
		"occult_c": fn(sig(v, p, p, p, p, p, p, p, p, d, p), f.occult),
		"subpnt_c": fn(sig(v, p, p, d, p, p, p, p, p, p), f.subpnt),

		// bodies and the kernel pool
		"bodn2c_c": fn(sig(v, p, p, p), f.bodn2c),
		"bodc2n_c": fn(sig(v, i, i, p, p), f.bodc2n),
		"bodfnd_c": fn(sig(i, i, p), f.bodfnd),
		"bodvrd_c": fn(sig(v, p, p, i, p, p), f.bodvrd),
		"bodvcd_c": fn(sig(v, i, p, i, p, p), f.bodvcd),
		"gdpool_c": fn(sig(v, p, i, i, p, p, p), f.gdpool),
		"gipool_c": fn(sig(v, p, i, i, p, p, p), f.gipool),

		// coordinates and vectors
		"cyllat_c": always(sig(v, d, d, d, p, p, p), f.cyllat),
		"cylrec_c": always(sig(v, d, d, d, p), f.cylrec),
		"cylsph_c": always(sig(v, d, d, d, p, p, p), f.cylsph),
		"latrec_c": always(sig(v, d, d, d, p), f.latrecFn),
		"reclat_c": always(sig(v, p, p, p, p), f.reclatFn),
		"radrec_c": always(sig(v, d, d, d, p), f.radrec),
		"recrad_c": always(sig(v, p, p, p, p), f.recrad),
		"georec_c": fn(sig(v, d, d, d, d, d, p), f.georecFn),
		"recgeo_c": fn(sig(v, p, d, d, p, p, p), f.recgeoFn),
		"mxv_c":    always(sig(v, p, p, p), f.mxvFn),
		"vdot_c":   always(sig(d, p, p), f.vdot),
		"vcrss_c":  always(sig(v, p, p, p), f.vcrss),
		"vsep_c":   always(sig(d, p, p), f.vsepFn),

		// DAS and DSK
		"dasopr_c": fn(sig(v, p, p), f.dasopr),
		"dascls_c": fn(sig(v, i), f.dascls),
		"dlabfs_c": fn(sig(v, i, p, p), f.dlabfs),
		"dskgd_c":  fn(sig(v, i, p, p), f.dskgd),
		"dskz02_c": fn(sig(v, i, p, p, p), f.dskz02),
		"dskp02_c": fn(sig(v, i, p, i, i, p, p), f.dskp02),

		// constants
		"pi_c":     constant(math.Pi),
		"spd_c":    constant(secondsPerDay),
		"rpd_c":    constant(math.Pi / 180),
		"j2000_c":  constant(jdJ2000),
		"tkvrsn_c": always(sig(p, p), tkvrsn),
	}
}

// HasFunction reports whether name is implemented.
func (f *Fake) HasFunction(name string) bool {
	_, ok := f.funcs[strings.TrimSpace(name)]
	return ok
}
