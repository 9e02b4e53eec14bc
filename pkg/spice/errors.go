package spice

import (
	"errors"
	"fmt"
	"strings"
)

// Gate errors.
var (
	// ErrLocked is returned by TryAcquire while another token is held.
	// Callers may retry.
	ErrLocked = errors.New("spice: library is locked by another caller")

	// ErrPoisoned is returned once a holder failed in the middle of a native
	// call. The native state is unknown and no further calls are allowed.
	ErrPoisoned = errors.New("spice: library is poisoned by an earlier failure")

	// ErrReleased is returned when a released token is used.
	ErrReleased = errors.New("spice: token already released")

	// ErrClosed is returned after the library has been closed.
	ErrClosed = errors.New("spice: library closed")
)

// Kind classifies a native error.
type Kind int

const (
	// Unclassified covers every short code not listed below.
	Unclassified Kind = iota
	// EmptyString: a text input had length zero.
	EmptyString
	// NoSuchFile: a file to load does not exist.
	NoSuchFile
	// UnknownFrame: a reference frame name is not recognized.
	UnknownFrame
	// IDCodeNotFound: a body name has no ID code.
	IDCodeNotFound
	// NoLoadedFiles: no kernel of the required type is loaded.
	NoLoadedFiles
	// InsufficientData: loaded kernels do not cover the request.
	InsufficientData
	// NoLeapSeconds: a time conversion needs a leapseconds kernel.
	NoLeapSeconds
)

var kindNames = map[Kind]string{
	Unclassified:     "unclassified",
	EmptyString:      "empty string",
	NoSuchFile:       "no such file",
	UnknownFrame:     "unknown frame",
	IDCodeNotFound:   "ID code not found",
	NoLoadedFiles:    "no loaded files",
	InsufficientData: "insufficient data",
	NoLeapSeconds:    "no leapseconds",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// shortCodes is the classification table. Matching is exact.
var shortCodes = map[string]Kind{
	"SPICE(EMPTYSTRING)":    EmptyString,
	"SPICE(NOSUCHFILE)":     NoSuchFile,
	"SPICE(UNKNOWNFRAME)":   UnknownFrame,
	"SPICE(IDCODENOTFOUND)": IDCodeNotFound,
	"SPICE(NOLOADEDFILES)":  NoLoadedFiles,
	"SPICE(SPKINSUFFDATA)":  InsufficientData,
	"SPICE(NOLEAPSECONDS)":  NoLeapSeconds,
}

// Classify maps a short error code to its Kind. Surrounding blanks are
// ignored; anything else must match exactly.
func Classify(short string) Kind {
	if k, ok := shortCodes[strings.TrimSpace(short)]; ok {
		return k
	}
	return Unclassified
}

// Error is a native failure reported by the checked layer.
type Error struct {
	Kind  Kind
	Short string
	Long  string
	// Function is the entry point that raised the error.
	Function string
}

func newError(function, short, long string) *Error {
	return &Error{
		Kind:     Classify(short),
		Short:    strings.TrimSpace(short),
		Long:     long,
		Function: function,
	}
}

func (e *Error) Error() string {
	if e.Long == "" {
		return fmt.Sprintf("%s: %s", e.Function, e.Short)
	}
	return fmt.Sprintf("%s: %s: %s", e.Function, e.Short, strings.TrimSpace(e.Long))
}

// Is matches another *Error of the same Kind, so errors.Is(err,
// &Error{Kind: NoSuchFile}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of a native error in err's chain, or false.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return Unclassified, false
}
