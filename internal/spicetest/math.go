package spicetest

import (
	"math"

	"github.com/woxQAQ/gospice/internal/ffi"
)

func norm(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}

func mxv(m [3][3]float64, v [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return out
}

// mxmt returns a * transpose(b).
func mxmt(a, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = a[i][0]*b[j][0] + a[i][1]*b[j][1] + a[i][2]*b[j][2]
		}
	}
	return out
}

func flat3(m [3][3]float64) []float64 {
	return []float64{m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2], m[2][0], m[2][1], m[2][2]}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// vsep uses the half-chord form, which keeps precision near 0 and pi.
func vsep(a, b [3]float64) float64 {
	na, nb := norm(a[:]), norm(b[:])
	if na == 0 || nb == 0 {
		return 0
	}
	var ua, ub [3]float64
	for i := range a {
		ua[i] = a[i] / na
		ub[i] = b[i] / nb
	}
	if dot(ua, ub) > 0 {
		d := [3]float64{ua[0] - ub[0], ua[1] - ub[1], ua[2] - ub[2]}
		return 2 * math.Asin(norm(d[:])/2)
	}
	if dot(ua, ub) < 0 {
		s := [3]float64{ua[0] + ub[0], ua[1] + ub[1], ua[2] + ub[2]}
		return math.Pi - 2*math.Asin(norm(s[:])/2)
	}
	return math.Pi / 2
}

func latrec(radius, lon, lat float64) [3]float64 {
	return [3]float64{
		radius * math.Cos(lat) * math.Cos(lon),
		radius * math.Cos(lat) * math.Sin(lon),
		radius * math.Sin(lat),
	}
}

func reclat(v [3]float64) (radius, lon, lat float64) {
	radius = norm(v[:])
	if v[0] != 0 || v[1] != 0 {
		lon = math.Atan2(v[1], v[0])
	}
	if radius != 0 {
		lat = math.Atan2(v[2], math.Hypot(v[0], v[1]))
	}
	return radius, lon, lat
}

func (f *Fake) cyllat(c *call) ffi.Value {
	r, clon, z := c.f64(0), c.f64(1), c.f64(2)
	radius := math.Hypot(r, z)
	lat := 0.0
	if radius != 0 {
		lat = math.Atan2(z, r)
	}
	c.setF64(3, radius)
	c.setF64(4, clon)
	c.setF64(5, lat)
	return ffi.Value{}
}

func (f *Fake) cylrec(c *call) ffi.Value {
	r, clon, z := c.f64(0), c.f64(1), c.f64(2)
	c.setF64s(3, []float64{r * math.Cos(clon), r * math.Sin(clon), z})
	return ffi.Value{}
}

func (f *Fake) cylsph(c *call) ffi.Value {
	r, clon, z := c.f64(0), c.f64(1), c.f64(2)
	radius := math.Hypot(r, z)
	colat := 0.0
	if radius != 0 {
		colat = math.Atan2(r, z)
	}
	c.setF64(3, radius)
	c.setF64(4, colat)
	c.setF64(5, clon)
	return ffi.Value{}
}

func (f *Fake) latrecFn(c *call) ffi.Value {
	v := latrec(c.f64(0), c.f64(1), c.f64(2))
	c.setF64s(3, v[:])
	return ffi.Value{}
}

func (f *Fake) reclatFn(c *call) ffi.Value {
	radius, lon, lat := reclat(c.vec3(0))
	c.setF64(1, radius)
	c.setF64(2, lon)
	c.setF64(3, lat)
	return ffi.Value{}
}

func (f *Fake) radrec(c *call) ffi.Value {
	v := latrec(c.f64(0), c.f64(1), c.f64(2))
	c.setF64s(3, v[:])
	return ffi.Value{}
}

func (f *Fake) recrad(c *call) ffi.Value {
	rng, ra, dec := reclat(c.vec3(0))
	if ra < 0 {
		ra += 2 * math.Pi
	}
	c.setF64(1, rng)
	c.setF64(2, ra)
	c.setF64(3, dec)
	return ffi.Value{}
}

func (c *call) spheroid(re, f float64) bool {
	if re <= 0 {
		c.signal("SPICE(VALUEOUTOFRANGE)", "The equatorial radius must be positive.")
		return false
	}
	if f >= 1 {
		c.signal("SPICE(VALUEOUTOFRANGE)", "The flattening coefficient must be less than one.")
		return false
	}
	return true
}

func georec(lon, lat, alt, re, f float64) [3]float64 {
	e2 := f * (2 - f)
	sinLat := math.Sin(lat)
	n := re / math.Sqrt(1-e2*sinLat*sinLat)
	return [3]float64{
		(n + alt) * math.Cos(lat) * math.Cos(lon),
		(n + alt) * math.Cos(lat) * math.Sin(lon),
		(n*(1-e2) + alt) * sinLat,
	}
}

func recgeo(v [3]float64, re, f float64) (lon, lat, alt float64) {
	e2 := f * (2 - f)
	p := math.Hypot(v[0], v[1])
	if v[0] != 0 || v[1] != 0 {
		lon = math.Atan2(v[1], v[0])
	}
	lat = math.Atan2(v[2], p*(1-e2))
	for i := 0; i < 20; i++ {
		sinLat := math.Sin(lat)
		n := re / math.Sqrt(1-e2*sinLat*sinLat)
		if math.Abs(math.Cos(lat)) > 1e-9 {
			alt = p/math.Cos(lat) - n
		} else {
			alt = math.Abs(v[2]) - n*(1-e2)
		}
		lat = math.Atan2(v[2], p*(1-e2*n/(n+alt)))
	}
	return lon, lat, alt
}

func (f *Fake) georecFn(c *call) ffi.Value {
	lon, lat, alt, re, fl := c.f64(0), c.f64(1), c.f64(2), c.f64(3), c.f64(4)
	if !c.spheroid(re, fl) {
		return ffi.Value{}
	}
	v := georec(lon, lat, alt, re, fl)
	c.setF64s(5, v[:])
	return ffi.Value{}
}

func (f *Fake) recgeoFn(c *call) ffi.Value {
	v := c.vec3(0)
	re, fl := c.f64(1), c.f64(2)
	if !c.spheroid(re, fl) {
		return ffi.Value{}
	}
	lon, lat, alt := recgeo(v, re, fl)
	c.setF64(3, lon)
	c.setF64(4, lat)
	c.setF64(5, alt)
	return ffi.Value{}
}

func (f *Fake) mxvFn(c *call) ffi.Value {
	m := c.vec(0, 9)
	v := c.vec3(1)
	out := mxv([3][3]float64{{m[0], m[1], m[2]}, {m[3], m[4], m[5]}, {m[6], m[7], m[8]}}, v)
	c.setF64s(2, out[:])
	return ffi.Value{}
}

func (f *Fake) vdot(c *call) ffi.Value {
	return ffi.Float(dot(c.vec3(0), c.vec3(1)))
}

func (f *Fake) vcrss(c *call) ffi.Value {
	v := cross(c.vec3(0), c.vec3(1))
	c.setF64s(2, v[:])
	return ffi.Value{}
}

func (f *Fake) vsepFn(c *call) ffi.Value {
	return ffi.Float(vsep(c.vec3(0), c.vec3(1)))
}
