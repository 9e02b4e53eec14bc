package spicetest

import (
	"strings"

	"github.com/woxQAQ/gospice/internal/ffi"
)

var errorActions = map[string]bool{
	"ABORT":   true,
	"REPORT":  true,
	"RETURN":  true,
	"IGNORE":  true,
	"DEFAULT": true,
}

// explanations backs getmsg("EXPLAIN").
var explanations = map[string]string{
	"SPICE(EMPTYSTRING)":       "An input string has length zero.",
	"SPICE(NOSUCHFILE)":        "A file was not found.",
	"SPICE(UNKNOWNFRAME)":      "A reference frame is not recognized.",
	"SPICE(IDCODENOTFOUND)":    "An ID code could not be found.",
	"SPICE(NOLOADEDFILES)":     "No files of the required type have been loaded.",
	"SPICE(SPKINSUFFDATA)":     "Insufficient ephemeris data has been loaded.",
	"SPICE(NOLEAPSECONDS)":     "No leapseconds kernel has been loaded.",
	"SPICE(UNPARSEDTIME)":      "A time string could not be parsed.",
	"SPICE(STRINGTOOSHORT)":    "An output string is too short.",
	"SPICE(KERNELVARNOTFOUND)": "A required kernel pool variable was not found.",
}

func (f *Fake) erract(c *call) ffi.Value {
	op, ok := c.text(0, "op")
	if !ok {
		return ffi.Value{}
	}
	switch strings.ToUpper(strings.TrimSpace(op)) {
	case "SET":
		action, ok := c.text(2, "action")
		if !ok {
			return ffi.Value{}
		}
		action = strings.ToUpper(strings.TrimSpace(action))
		if !errorActions[action] {
			c.signal("SPICE(INVALIDACTION)", "ERRACT: Invalid value of ACTION. Value was: '"+action+"'.")
			return ffi.Value{}
		}
		f.action = action
	case "GET":
		lenout, ok := c.outLen(1, "action")
		if !ok {
			return ffi.Value{}
		}
		c.setStr(2, f.action, lenout)
	default:
		c.signal("SPICE(INVALIDOPERATION)", "ERRACT: Invalid value of OP. Value was: '"+op+"'.")
	}
	return ffi.Value{}
}

func (f *Fake) failedFn(c *call) ffi.Value {
	return ffi.Bool(f.failed)
}

func (f *Fake) getmsg(c *call) ffi.Value {
	option, ok := c.text(0, "option")
	if !ok {
		return ffi.Value{}
	}
	lenout, ok := c.outLen(1, "msg")
	if !ok {
		return ffi.Value{}
	}
	var msg string
	switch strings.ToUpper(strings.TrimSpace(option)) {
	case "SHORT":
		msg = f.short
	case "LONG":
		msg = f.long
	case "EXPLAIN":
		msg = explanations[f.short]
	default:
		c.signal("SPICE(INVALIDMSGTYPE)", "GETMSG: Invalid message type '"+option+"'.")
		return ffi.Value{}
	}
	c.setStr(2, msg, lenout)
	return ffi.Value{}
}

func (f *Fake) reset(c *call) ffi.Value {
	f.failed = false
	f.short = ""
	f.long = ""
	return ffi.Value{}
}
