package spicetest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/woxQAQ/gospice/internal/ffi"
)

// ReferenceEpoch is 2027-MAR-23 16:00:00 UTC in TDB seconds past J2000.
// The ephemeris is anchored there.
const ReferenceEpoch = 859089669.1856234

// ReferencePosition is DIMORPHOS relative to HERA in J2000 at ReferenceEpoch, km.
var ReferencePosition = [3]float64{18.62640405424448, 21.054373008357004, -7.136291402940499}

const (
	speedOfLight = 299792.458
	coverage     = 400 * secondsPerDay
)

var bodyNames = []struct {
	name string
	code int32
}{
	{"SOLAR SYSTEM BARYCENTER", 0},
	{"SSB", 0},
	{"SUN", 10},
	{"MOON", 301},
	{"EARTH", 399},
	{"MARS", 499},
	{"HERA", -91},
	{"DIDYMOS_BARYCENTER", 20065803},
	{"DIDYMOS", 920065803},
	{"DIMORPHOS", -658031},
}

func bodyCode(name string) (int32, bool) {
	n := normalize(name)
	for _, b := range bodyNames {
		if b.name == n {
			return b.code, true
		}
	}
	return 0, false
}

func bodyName(code int32) (string, bool) {
	for _, b := range bodyNames {
		if b.code == code {
			return b.name, true
		}
	}
	return "", false
}

// resolveBody accepts a body name or an integer ID string.
func resolveBody(s string) (int32, bool) {
	if code, ok := bodyCode(s); ok {
		return code, true
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

type trajectory struct {
	pos [3]float64
	vel [3]float64
}

var didymosVelocity = [3]float64{1.0e-3, -2.0e-3, 5.0e-4}

// Constant-velocity trajectories relative to HERA, J2000, km and km/s.
var ephemeris = map[int32]trajectory{
	-91:       {},
	-658031:   {pos: ReferencePosition, vel: didymosVelocity},
	920065803: {pos: [3]float64{19.80640405424448, 21.354373008357004, -7.236291402940499}, vel: didymosVelocity},
	20065803:  {pos: [3]float64{19.79640405424448, 21.351373008357004, -7.235291402940499}, vel: didymosVelocity},
}

func (t trajectory) at(et float64) [6]float64 {
	dt := et - ReferenceEpoch
	return [6]float64{
		t.pos[0] + t.vel[0]*dt, t.pos[1] + t.vel[1]*dt, t.pos[2] + t.vel[2]*dt,
		t.vel[0], t.vel[1], t.vel[2],
	}
}

var identity = [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// eclipJ2000 rotates J2000 vectors into the ecliptic frame of J2000.
var eclipJ2000 = [3][3]float64{
	{1, 0, 0},
	{0, 0.9174820620691818, 0.3977771559319137},
	{0, -0.3977771559319137, 0.9174820620691818},
}

// frameMatrix returns the rotation from J2000 into the named frame.
// Body-fixed IAU_<body> frames are only known once the body has radii in the
// pool and are aligned with J2000.
func (f *Fake) frameMatrix(name string) ([3][3]float64, bool) {
	n := normalize(name)
	switch n {
	case "J2000":
		return identity, true
	case "ECLIPJ2000":
		return eclipJ2000, true
	}
	if body, ok := strings.CutPrefix(n, "IAU_"); ok {
		if code, ok := bodyCode(body); ok {
			if _, ok := f.pool[fmt.Sprintf("BODY%d_RADII", code)]; ok {
				return identity, true
			}
		}
	}
	return identity, false
}

func (c *call) rotation(from, to string) ([3][3]float64, bool) {
	rf, ok := c.f.frameMatrix(from)
	if !ok {
		c.unknownFrame(from)
		return identity, false
	}
	rt, ok := c.f.frameMatrix(to)
	if !ok {
		c.unknownFrame(to)
		return identity, false
	}
	return mxmt(rt, rf), true
}

func (c *call) unknownFrame(name string) {
	c.signal("SPICE(UNKNOWNFRAME)",
		"The requested frame '"+name+"' is not recognized by the frame subsystem.")
}

var aberrations = map[string]bool{
	"NONE": true, "LT": true, "LT+S": true, "CN": true, "CN+S": true,
	"XLT":  true, "XLT+S": true, "XCN": true, "XCN+S": true,
}

func (c *call) abcorr(s string) (string, bool) {
	n := strings.ReplaceAll(normalize(s), " ", "")
	if !aberrations[n] {
		c.signal("SPICE(INVALIDOPTION)", "'"+s+"' is not a recognized aberration correction.")
		return "", false
	}
	return n, true
}

// state computes target relative to observer in J2000.
func (c *call) state(target, observer string, et float64, corr string) ([6]float64, float64, bool) {
	tcode, ok := resolveBody(target)
	if !ok {
		c.signal("SPICE(IDCODENOTFOUND)",
			"The target, '"+target+"', is not a recognized name for an ephemeris object.")
		return [6]float64{}, 0, false
	}
	ocode, ok := resolveBody(observer)
	if !ok {
		c.signal("SPICE(IDCODENOTFOUND)",
			"The observer, '"+observer+"', is not a recognized name for an ephemeris object.")
		return [6]float64{}, 0, false
	}
	if !c.f.hasSPK() {
		c.signal("SPICE(NOLOADEDFILES)",
			"At least one SPK file needs to be loaded by SPKLEF before beginning a search.")
		return [6]float64{}, 0, false
	}
	tt, tok := ephemeris[tcode]
	ot, ook := ephemeris[ocode]
	if !tok || !ook || math.Abs(et-ReferenceEpoch) > coverage {
		c.signal("SPICE(SPKINSUFFDATA)",
			fmt.Sprintf("Insufficient ephemeris data has been loaded to compute the state of %d relative to %d at the ephemeris epoch %.6f.", tcode, ocode, et))
		return [6]float64{}, 0, false
	}

	rel := func(t float64) [6]float64 {
		a, b := tt.at(t), ot.at(et)
		var s [6]float64
		for i := range s {
			s[i] = a[i] - b[i]
		}
		return s
	}
	s := rel(et)
	lt := norm(s[:3]) / speedOfLight
	switch {
	case strings.HasPrefix(corr, "LT"), strings.HasPrefix(corr, "CN"):
		s = rel(et - lt)
		lt = norm(s[:3]) / speedOfLight
	case strings.HasPrefix(corr, "X"):
		s = rel(et + lt)
		lt = norm(s[:3]) / speedOfLight
	}
	return s, lt, true
}

func (f *Fake) spkpos(c *call) ffi.Value {
	targ, ok := c.text(0, "targ")
	if !ok {
		return ffi.Value{}
	}
	et := c.f64(1)
	ref, ok1 := c.text(2, "ref")
	abcorr, ok2 := c.text(3, "abcorr")
	obs, ok3 := c.text(4, "obs")
	if !ok1 || !ok2 || !ok3 {
		return ffi.Value{}
	}
	corr, ok := c.abcorr(abcorr)
	if !ok {
		return ffi.Value{}
	}
	rot, ok := c.rotation("J2000", ref)
	if !ok {
		return ffi.Value{}
	}
	s, lt, ok := c.state(targ, obs, et, corr)
	if !ok {
		return ffi.Value{}
	}
	p := mxv(rot, [3]float64{s[0], s[1], s[2]})
	c.setF64s(5, p[:])
	c.setF64(6, lt)
	return ffi.Value{}
}

func (f *Fake) spkezr(c *call) ffi.Value {
	targ, ok := c.text(0, "targ")
	if !ok {
		return ffi.Value{}
	}
	et := c.f64(1)
	ref, ok1 := c.text(2, "ref")
	abcorr, ok2 := c.text(3, "abcorr")
	obs, ok3 := c.text(4, "obs")
	if !ok1 || !ok2 || !ok3 {
		return ffi.Value{}
	}
	corr, ok := c.abcorr(abcorr)
	if !ok {
		return ffi.Value{}
	}
	rot, ok := c.rotation("J2000", ref)
	if !ok {
		return ffi.Value{}
	}
	s, lt, ok := c.state(targ, obs, et, corr)
	if !ok {
		return ffi.Value{}
	}
	p := mxv(rot, [3]float64{s[0], s[1], s[2]})
	v := mxv(rot, [3]float64{s[3], s[4], s[5]})
	c.setF64s(5, []float64{p[0], p[1], p[2], v[0], v[1], v[2]})
	c.setF64(6, lt)
	return ffi.Value{}
}

func (f *Fake) pxform(c *call) ffi.Value {
	from, ok1 := c.text(0, "from")
	to, ok2 := c.text(1, "to")
	if !ok1 || !ok2 {
		return ffi.Value{}
	}
	rot, ok := c.rotation(from, to)
	if !ok {
		return ffi.Value{}
	}
	c.setF64s(3, flat3(rot))
	return ffi.Value{}
}

func (f *Fake) pxfrm2(c *call) ffi.Value {
	from, ok1 := c.text(0, "from")
	to, ok2 := c.text(1, "to")
	if !ok1 || !ok2 {
		return ffi.Value{}
	}
	rot, ok := c.rotation(from, to)
	if !ok {
		return ffi.Value{}
	}
	c.setF64s(4, flat3(rot))
	return ffi.Value{}
}

func (f *Fake) sxform(c *call) ffi.Value {
	from, ok1 := c.text(0, "from")
	to, ok2 := c.text(1, "to")
	if !ok1 || !ok2 {
		return ffi.Value{}
	}
	rot, ok := c.rotation(from, to)
	if !ok {
		return ffi.Value{}
	}
	// All modelled frames are inertial, so the derivative block is zero.
	out := make([]float64, 36)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i*6+j] = rot[i][j]
			out[(i+3)*6+j+3] = rot[i][j]
		}
	}
	c.setF64s(3, out)
	return ffi.Value{}
}

func (f *Fake) bodn2c(c *call) ffi.Value {
	name, ok := c.text(0, "name")
	if !ok {
		return ffi.Value{}
	}
	code, found := bodyCode(name)
	if found {
		c.setI32(1, code)
	}
	c.setBool(2, found)
	return ffi.Value{}
}

func (f *Fake) bodc2n(c *call) ffi.Value {
	code := c.i32(0)
	lenout, ok := c.outLen(1, "name")
	if !ok {
		return ffi.Value{}
	}
	name, found := bodyName(code)
	if found {
		c.setStr(2, name, lenout)
	}
	c.setBool(3, found)
	return ffi.Value{}
}

func bodyVar(code int32, item string) string {
	return fmt.Sprintf("BODY%d_%s", code, strings.ToUpper(strings.TrimSpace(item)))
}

func (f *Fake) bodfnd(c *call) ffi.Value {
	body := c.i32(0)
	item, ok := c.text(1, "item")
	if !ok {
		return ffi.Bool(false)
	}
	v, found := f.pool[bodyVar(body, item)]
	return ffi.Bool(found && v.nums != nil)
}

func (c *call) bodyValues(code int32, item string, maxn int32, dimArg, valArg int) {
	name := bodyVar(code, item)
	v, found := c.f.pool[name]
	if !found || v.nums == nil {
		c.signal("SPICE(KERNELVARNOTFOUND)",
			"The variable "+name+" could not be found in the kernel pool.")
		return
	}
	if int32(len(v.nums)) > maxn {
		c.signal("SPICE(ARRAYTOOSMALL)",
			fmt.Sprintf("The maximum number of values for %s is %d, but %d values were found.", name, maxn, len(v.nums)))
		return
	}
	c.setI32(dimArg, int32(len(v.nums)))
	c.setF64s(valArg, v.nums)
}

func (f *Fake) bodvrd(c *call) ffi.Value {
	bodynm, ok1 := c.text(0, "bodynm")
	item, ok2 := c.text(1, "item")
	if !ok1 || !ok2 {
		return ffi.Value{}
	}
	code, ok := resolveBody(bodynm)
	if !ok {
		c.signal("SPICE(NOTRANSLATION)",
			"The body name '"+bodynm+"' could not be translated to a NAIF ID code.")
		return ffi.Value{}
	}
	c.bodyValues(code, item, c.i32(2), 3, 4)
	return ffi.Value{}
}

func (f *Fake) bodvcd(c *call) ffi.Value {
	item, ok := c.text(1, "item")
	if !ok {
		return ffi.Value{}
	}
	c.bodyValues(c.i32(0), item, c.i32(2), 3, 4)
	return ffi.Value{}
}

func (c *call) poolWindow(name string, start, room int32) (poolValue, int32, bool) {
	if room <= 0 {
		c.signal("SPICE(BADARRAYSIZE)", fmt.Sprintf("The room available for %s is %d.", name, room))
		return poolValue{}, 0, false
	}
	v, found := c.f.pool[strings.TrimSpace(name)]
	if !found || v.nums == nil {
		return poolValue{}, 0, false
	}
	start = max(start, 0)
	if int(start) >= len(v.nums) {
		return poolValue{}, 0, false
	}
	return poolValue{nums: v.nums[start:min(len(v.nums), int(start+room))]}, room, true
}

func (f *Fake) gdpool(c *call) ffi.Value {
	name, ok := c.text(0, "name")
	if !ok {
		return ffi.Value{}
	}
	v, _, found := c.poolWindow(name, c.i32(1), c.i32(2))
	if !c.ok() {
		return ffi.Value{}
	}
	c.setI32(3, int32(len(v.nums)))
	if found {
		c.setF64s(4, v.nums)
	}
	c.setBool(5, found)
	return ffi.Value{}
}

func (f *Fake) gipool(c *call) ffi.Value {
	name, ok := c.text(0, "name")
	if !ok {
		return ffi.Value{}
	}
	v, _, found := c.poolWindow(name, c.i32(1), c.i32(2))
	if !c.ok() {
		return ffi.Value{}
	}
	ints := make([]int32, len(v.nums))
	for i, x := range v.nums {
		ints[i] = int32(math.Round(x))
	}
	c.setI32(3, int32(len(ints)))
	if found {
		c.setI32s(4, ints)
	}
	c.setBool(5, found)
	return ffi.Value{}
}

// radius returns the largest radius of a body, or zero for a point.
func (c *call) radius(body int32, shape string) (float64, bool) {
	switch normalize(shape) {
	case "POINT":
		return 0, true
	case "ELLIPSOID":
	default:
		c.signal("SPICE(INVALIDSHAPE)", "The target shape '"+shape+"' is not supported.")
		return 0, false
	}
	name := bodyVar(body, "RADII")
	v, ok := c.f.pool[name]
	if !ok || len(v.nums) != 3 {
		c.signal("SPICE(KERNELVARNOTFOUND)",
			"The variable "+name+" could not be found in the kernel pool.")
		return 0, false
	}
	return math.Max(v.nums[0], math.Max(v.nums[1], v.nums[2])), true
}

// Occultation magnitudes returned by occult. The sign tells which target is
// in front.
const (
	occultNone    = 0
	occultPartial = 1
	occultAnnular = 2
	occultTotal   = 3
)

func (f *Fake) occult(c *call) ffi.Value {
	targ1, _ := c.text(0, "targ1")
	shape1, _ := c.text(1, "shape1")
	targ2, _ := c.text(3, "targ2")
	shape2, _ := c.text(4, "shape2")
	abcorr, _ := c.text(6, "abcorr")
	obsrvr, _ := c.text(7, "obsrvr")
	et := c.f64(8)
	if !c.ok() {
		return ffi.Value{}
	}
	if normalize(shape1) == "POINT" && normalize(shape2) == "POINT" {
		c.signal("SPICE(INVALIDSHAPECOMBO)", "Both targets cannot be modelled as points.")
		return ffi.Value{}
	}
	corr, ok := c.abcorr(abcorr)
	if !ok {
		return ffi.Value{}
	}
	code1, ok1 := resolveBody(targ1)
	code2, ok2 := resolveBody(targ2)
	if !ok1 || !ok2 {
		c.signal("SPICE(IDCODENOTFOUND)", "An occultation target is not a recognized body.")
		return ffi.Value{}
	}
	r1, ok1 := c.radius(code1, shape1)
	if !ok1 {
		return ffi.Value{}
	}
	r2, ok2 := c.radius(code2, shape2)
	if !ok2 {
		return ffi.Value{}
	}
	s1, _, ok1 := c.state(targ1, obsrvr, et, corr)
	if !ok1 {
		return ffi.Value{}
	}
	s2, _, ok2 := c.state(targ2, obsrvr, et, corr)
	if !ok2 {
		return ffi.Value{}
	}
	p1 := [3]float64{s1[0], s1[1], s1[2]}
	p2 := [3]float64{s2[0], s2[1], s2[2]}
	c.setI32(9, occultation(p1, r1, p2, r2))
	return ffi.Value{}
}

func angularRadius(p [3]float64, r float64) float64 {
	d := norm(p[:])
	if r >= d {
		return math.Pi / 2
	}
	return math.Asin(r / d)
}

// occultation classifies the overlap of two spheres seen from the origin.
// Positive codes mean the first target is in front.
func occultation(p1 [3]float64, r1 float64, p2 [3]float64, r2 float64) int32 {
	a1, a2 := angularRadius(p1, r1), angularRadius(p2, r2)
	sep := vsep(p1, p2)
	if sep >= a1+a2 {
		return occultNone
	}
	sign := int32(-1)
	front, back := a1, a2
	if norm(p1[:]) < norm(p2[:]) {
		sign = 1
	} else {
		front, back = a2, a1
	}
	switch {
	case sep <= front-back:
		return sign * occultTotal
	case sep <= back-front:
		return sign * occultAnnular
	default:
		return sign * occultPartial
	}
}

func (f *Fake) subpnt(c *call) ffi.Value {
	method, _ := c.text(0, "method")
	target, _ := c.text(1, "target")
	et := c.f64(2)
	fixref, _ := c.text(3, "fixref")
	abcorr, _ := c.text(4, "abcorr")
	obsrvr, _ := c.text(5, "obsrvr")
	if !c.ok() {
		return ffi.Value{}
	}
	m := normalize(method)
	if !strings.HasPrefix(m, "NEAR POINT") && !strings.HasPrefix(m, "INTERCEPT") {
		c.signal("SPICE(INVALIDMETHOD)", "The computation method '"+method+"' is not supported.")
		return ffi.Value{}
	}
	corr, ok := c.abcorr(abcorr)
	if !ok {
		return ffi.Value{}
	}
	code, ok := resolveBody(target)
	if !ok {
		c.signal("SPICE(IDCODENOTFOUND)",
			"The target, '"+target+"', is not a recognized name for an ephemeris object.")
		return ffi.Value{}
	}
	r, ok := c.radius(code, "ELLIPSOID")
	if !ok {
		return ffi.Value{}
	}
	rot, ok := c.rotation("J2000", fixref)
	if !ok {
		return ffi.Value{}
	}
	s, lt, ok := c.state(target, obsrvr, et, corr)
	if !ok {
		return ffi.Value{}
	}
	pos := mxv(rot, [3]float64{s[0], s[1], s[2]})
	d := norm(pos[:])
	var spoint, srfvec [3]float64
	for i := range pos {
		spoint[i] = -pos[i] / d * r
		srfvec[i] = pos[i] + spoint[i]
	}
	trgepc := et
	if corr != "NONE" {
		trgepc = et - lt
	}
	c.setF64s(6, spoint[:])
	c.setF64(7, trgepc)
	c.setF64s(8, srfvec[:])
	return ffi.Value{}
}
