package spicetest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/woxQAQ/gospice/internal/ffi"
)

// TAI-UTC from 1972 onwards.
var leapSeconds = []struct {
	from time.Time
	dat  float64
}{
	{day(1972, 1, 1), 10}, {day(1972, 7, 1), 11}, {day(1973, 1, 1), 12},
	{day(1974, 1, 1), 13}, {day(1975, 1, 1), 14}, {day(1976, 1, 1), 15},
	{day(1977, 1, 1), 16}, {day(1978, 1, 1), 17}, {day(1979, 1, 1), 18},
	{day(1980, 1, 1), 19}, {day(1981, 7, 1), 20}, {day(1982, 7, 1), 21},
	{day(1983, 7, 1), 22}, {day(1985, 7, 1), 23}, {day(1988, 1, 1), 24},
	{day(1990, 1, 1), 25}, {day(1991, 1, 1), 26}, {day(1992, 7, 1), 27},
	{day(1993, 7, 1), 28}, {day(1994, 7, 1), 29}, {day(1996, 1, 1), 30},
	{day(1997, 7, 1), 31}, {day(1999, 1, 1), 32}, {day(2006, 1, 1), 33},
	{day(2009, 1, 1), 34}, {day(2012, 7, 1), 35}, {day(2015, 7, 1), 36},
	{day(2017, 1, 1), 37},
}

// LSK constants for the TDB-TT periodic term.
const (
	deltaTA = 32.184
	lskK    = 1.657e-3
	lskEB   = 1.671e-2
	lskM0   = 6.239996
	lskM1   = 1.99096871e-7

	secondsPerDay = 86400.0
	jdJ2000       = 2451545.0
)

var j2000UTC = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func deltaAT(t time.Time) float64 {
	dat := leapSeconds[0].dat
	for _, ls := range leapSeconds {
		if t.Before(ls.from) {
			break
		}
		dat = ls.dat
	}
	return dat
}

func periodic(tt float64) float64 {
	m := lskM0 + lskM1*tt
	e := m + lskEB*math.Sin(m)
	return lskK * math.Sin(e)
}

// utcToET converts a UTC calendar time to TDB seconds past J2000.
func utcToET(t time.Time) float64 {
	secs := float64(t.Unix()-j2000UTC.Unix()) + float64(t.Nanosecond())/1e9
	tt := secs + deltaAT(t) + deltaTA
	return tt + periodic(tt)
}

func etToTT(et float64) float64 {
	tt := et
	for i := 0; i < 3; i++ {
		tt = et - periodic(tt)
	}
	return tt
}

// etToUTCSeconds returns UTC seconds past J2000 noon, leap seconds excluded.
func etToUTCSeconds(et float64) float64 {
	tt := etToTT(et)
	utc := tt - deltaTA - leapSeconds[len(leapSeconds)-1].dat
	for i := 0; i < 2; i++ {
		utc = tt - deltaTA - deltaAT(secondsToTime(math.Floor(utc)))
	}
	return utc
}

func secondsToTime(s float64) time.Time {
	return j2000UTC.Add(time.Duration(s) * time.Second)
}

// calendar splits seconds past J2000 noon into a whole-second time and a
// fraction rendered with prec digits.
func calendar(secs float64, prec int, round bool) (time.Time, string) {
	scale := math.Pow(10, float64(prec))
	var scaled float64
	if round {
		scaled = math.Round(secs * scale)
	} else {
		scaled = math.Floor(secs*scale + 1e-7)
	}
	whole := math.Floor(scaled / scale)
	frac := int64(scaled - whole*scale)
	t := secondsToTime(whole)
	if prec == 0 {
		return t, ""
	}
	return t, fmt.Sprintf("%0*d", prec, frac)
}

var timeLayouts = []string{
	"2006-Jan-02 15:04:05",
	"2006-Jan-02 15:04",
	"2006-Jan-02",
	"2006 Jan 02 15:04:05",
	"2006 Jan 02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 02, 2006 15:04:05",
}

func parseUTC(s string) (time.Time, bool) {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimSuffix(strings.TrimSuffix(s, " UTC"), "Z")
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (c *call) requireLSK() bool {
	if c.f.hasLSK() {
		return true
	}
	c.signal("SPICE(NOLEAPSECONDS)",
		"The variable that points to the leapseconds (DELTET/DELTA_AT) could not be located in the kernel pool. "+
			"It is likely that the leapseconds kernel has not been loaded via the routine FURNSH.")
	return false
}

func (f *Fake) str2et(c *call) ffi.Value {
	s, ok := c.text(0, "str")
	if !ok || !c.requireLSK() {
		return ffi.Value{}
	}
	up := strings.ToUpper(strings.TrimSpace(s))
	if tdb, found := strings.CutSuffix(up, " TDB"); found {
		t, ok := parseUTC(tdb)
		if !ok {
			c.signal("SPICE(UNPARSEDTIME)", "The input string '"+s+"' could not be parsed.")
			return ffi.Value{}
		}
		c.setF64(1, float64(t.Unix()-j2000UTC.Unix())+float64(t.Nanosecond())/1e9)
		return ffi.Value{}
	}
	t, ok := parseUTC(up)
	if !ok {
		c.signal("SPICE(UNPARSEDTIME)", "The input string '"+s+"' could not be parsed.")
		return ffi.Value{}
	}
	c.setF64(1, utcToET(t))
	return ffi.Value{}
}

func (f *Fake) et2utc(c *call) ffi.Value {
	et := c.f64(0)
	format, ok := c.text(1, "format")
	if !ok {
		return ffi.Value{}
	}
	prec := int(c.i32(2))
	lenout, ok := c.outLen(3, "utcstr")
	if !ok || !c.requireLSK() {
		return ffi.Value{}
	}
	prec = max(0, min(prec, 14))

	utc := etToUTCSeconds(et)
	var out string
	switch strings.ToUpper(strings.TrimSpace(format)) {
	case "C":
		out = clockString(utc, prec, "2006 Jan 02 ")
	case "D":
		out = clockString(utc, prec, "2006-002 // ")
	case "ISOC":
		out = clockString(utc, prec, "2006-01-02T")
	case "ISOD":
		out = clockString(utc, prec, "2006-002T")
	case "J":
		out = "JD " + strconv.FormatFloat(jdJ2000+utc/secondsPerDay, 'f', prec, 64)
	default:
		c.signal("SPICE(INVALIDTIMEFORMAT)", "The input format '"+format+"' is not recognized.")
		return ffi.Value{}
	}
	c.setStr(4, out, lenout)
	return ffi.Value{}
}

func clockString(utc float64, prec int, datePart string) string {
	t, frac := calendar(utc, prec, true)
	s := strings.ToUpper(t.Format(datePart)) + t.Format("15:04:05")
	if frac != "" {
		s += "." + frac
	}
	return s
}

var months = [...]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// formatPicture renders a subset of the timout picture language: YYYY MON
// Mon MM DD DOY HR MN SC, fractional seconds as SC.###, and the ::RND,
// ::TRNC, ::UTC and ::TDB markers.
func formatPicture(et float64, pictur string) string {
	round := false
	tdb := false
	for _, m := range []string{"::RND", "::TRNC", "::UTC", "::TDB"} {
		if strings.Contains(pictur, m) {
			pictur = strings.ReplaceAll(pictur, m, "")
			switch m {
			case "::RND":
				round = true
			case "::TDB":
				tdb = true
			}
		}
	}

	prec := 0
	if i := strings.Index(pictur, "SC."); i >= 0 {
		for j := i + 3; j < len(pictur) && pictur[j] == '#'; j++ {
			prec++
		}
	}

	secs := et
	if !tdb {
		secs = etToUTCSeconds(et)
	}
	t, frac := calendar(secs, prec, round)

	var b strings.Builder
	for i := 0; i < len(pictur); {
		rest := pictur[i:]
		switch {
		case strings.HasPrefix(rest, "YYYY"):
			fmt.Fprintf(&b, "%04d", t.Year())
			i += 4
		case strings.HasPrefix(rest, "MON"):
			b.WriteString(months[t.Month()-1])
			i += 3
		case strings.HasPrefix(rest, "Mon"):
			b.WriteString(t.Format("Jan"))
			i += 3
		case strings.HasPrefix(rest, "DOY"):
			fmt.Fprintf(&b, "%03d", t.YearDay())
			i += 3
		case strings.HasPrefix(rest, "HR"):
			fmt.Fprintf(&b, "%02d", t.Hour())
			i += 2
		case strings.HasPrefix(rest, "MN"):
			fmt.Fprintf(&b, "%02d", t.Minute())
			i += 2
		case strings.HasPrefix(rest, "MM"):
			fmt.Fprintf(&b, "%02d", int(t.Month()))
			i += 2
		case strings.HasPrefix(rest, "DD"):
			fmt.Fprintf(&b, "%02d", t.Day())
			i += 2
		case strings.HasPrefix(rest, "SC"):
			fmt.Fprintf(&b, "%02d", t.Second())
			i += 2
			if prec > 0 {
				b.WriteString("." + frac)
				i += 1 + prec
			}
		default:
			b.WriteByte(pictur[i])
			i++
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func (f *Fake) timout(c *call) ffi.Value {
	et := c.f64(0)
	pictur, ok := c.text(1, "pictur")
	if !ok {
		return ffi.Value{}
	}
	lenout, ok := c.outLen(2, "output")
	if !ok || !c.requireLSK() {
		return ffi.Value{}
	}
	c.setStr(3, formatPicture(et, pictur), lenout)
	return ffi.Value{}
}

// toTDB converts an epoch in a uniform time system to TDB seconds.
func toTDB(epoch float64, system string) (float64, bool) {
	switch system {
	case "TDB", "ET":
		return epoch, true
	case "TT", "TDT":
		return epoch + periodic(epoch), true
	case "TAI":
		tt := epoch + deltaTA
		return tt + periodic(tt), true
	case "JDTDB", "JED":
		return (epoch - jdJ2000) * secondsPerDay, true
	case "JDTDT":
		tt := (epoch - jdJ2000) * secondsPerDay
		return tt + periodic(tt), true
	}
	return 0, false
}

func fromTDB(tdb float64, system string) (float64, bool) {
	switch system {
	case "TDB", "ET":
		return tdb, true
	case "TT", "TDT":
		return etToTT(tdb), true
	case "TAI":
		return etToTT(tdb) - deltaTA, true
	case "JDTDB", "JED":
		return jdJ2000 + tdb/secondsPerDay, true
	case "JDTDT":
		return jdJ2000 + etToTT(tdb)/secondsPerDay, true
	}
	return 0, false
}

func (f *Fake) unitim(c *call) ffi.Value {
	epoch := c.f64(0)
	insys, ok1 := c.text(1, "insys")
	outsys, ok2 := c.text(2, "outsys")
	if !ok1 || !ok2 || !c.requireLSK() {
		return ffi.Float(0)
	}
	tdb, ok := toTDB(epoch, normalize(insys))
	if !ok {
		c.signal("SPICE(BADTIMETYPE)", "The input time system '"+insys+"' is not supported.")
		return ffi.Float(0)
	}
	out, ok := fromTDB(tdb, normalize(outsys))
	if !ok {
		c.signal("SPICE(BADTIMETYPE)", "The output time system '"+outsys+"' is not supported.")
		return ffi.Float(0)
	}
	return ffi.Float(out)
}

// Spacecraft clock strings are "1/<seconds past J2000 TDB>" for HERA only.
const sclkSpacecraft = -91

func (c *call) requireSCLK(sc int32) bool {
	if sc == sclkSpacecraft && c.f.hasSCLK() {
		return true
	}
	c.signal("SPICE(KERNELVARNOTFOUND)",
		fmt.Sprintf("SCLK_DATA_TYPE_%d was not found in the kernel pool.", -sc))
	return false
}

func (f *Fake) scs2e(c *call) ffi.Value {
	sc := c.i32(0)
	clk, ok := c.text(1, "sclkch")
	if !ok || !c.requireSCLK(sc) {
		return ffi.Value{}
	}
	_, ticks, found := strings.Cut(strings.TrimSpace(clk), "/")
	if !found {
		ticks = strings.TrimSpace(clk)
	}
	secs, err := strconv.ParseFloat(ticks, 64)
	if err != nil {
		c.signal("SPICE(INVALIDSCLKSTRING)", "'"+clk+"' is not a valid clock string.")
		return ffi.Value{}
	}
	c.setF64(2, secs)
	return ffi.Value{}
}

func (f *Fake) sce2s(c *call) ffi.Value {
	sc := c.i32(0)
	et := c.f64(1)
	lenout, ok := c.outLen(2, "sclkch")
	if !ok || !c.requireSCLK(sc) {
		return ffi.Value{}
	}
	c.setStr(3, "1/"+strconv.FormatFloat(et, 'f', 3, 64), lenout)
	return ffi.Value{}
}
