package spice

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		short string
		want  Kind
	}{
		{"SPICE(EMPTYSTRING)", EmptyString},
		{"SPICE(NOSUCHFILE)", NoSuchFile},
		{"SPICE(UNKNOWNFRAME)", UnknownFrame},
		{"SPICE(IDCODENOTFOUND)", IDCodeNotFound},
		{"SPICE(NOLOADEDFILES)", NoLoadedFiles},
		{"SPICE(SPKINSUFFDATA)", InsufficientData},
		{"SPICE(NOLEAPSECONDS)", NoLeapSeconds},
		{"  SPICE(NOSUCHFILE)  ", NoSuchFile},
		{"SPICE(NOSUCHFILE", Unclassified},
		{"spice(nosuchfile)", Unclassified},
		{"SPICE(NOSUCHFILEX)", Unclassified},
		{"SPICE(BADSUBSCRIPT)", Unclassified},
		{"", Unclassified},
	}
	for _, tt := range tests {
		if got := Classify(tt.short); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.short, got, tt.want)
		}
	}
}

func TestErrorKeepsLongMessage(t *testing.T) {
	long := "The kernel pool has  two   blanks  and a trailing one. "
	err := newError("gdpool_c", "SPICE(ODDCODE)", long)
	if err.Kind != Unclassified {
		t.Errorf("Kind = %v, want %v", err.Kind, Unclassified)
	}
	if err.Long != long {
		t.Errorf("Long = %q, want %q", err.Long, long)
	}
	if err.Short != "SPICE(ODDCODE)" {
		t.Errorf("Short = %q, want %q", err.Short, "SPICE(ODDCODE)")
	}
}

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("loading: %w", newError("furnsh_c", "SPICE(NOSUCHFILE)", "missing"))
	if !errors.Is(err, &Error{Kind: NoSuchFile}) {
		t.Error("errors.Is(err, NoSuchFile) = false, want true")
	}
	if errors.Is(err, &Error{Kind: EmptyString}) {
		t.Error("errors.Is(err, EmptyString) = true, want false")
	}
	kind, ok := KindOf(err)
	if !ok || kind != NoSuchFile {
		t.Errorf("KindOf() = %v, %v, want %v, true", kind, ok, NoSuchFile)
	}
	if _, ok := KindOf(ErrLocked); ok {
		t.Error("KindOf(ErrLocked) reported a native error")
	}
}

func TestErrorString(t *testing.T) {
	err := newError("furnsh_c", "SPICE(NOSUCHFILE)", "The file 'x' does not exist.")
	want := "furnsh_c: SPICE(NOSUCHFILE): The file 'x' does not exist."
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := newError("f_c", "SPICE(X)", "").Error(); got != "f_c: SPICE(X)" {
		t.Errorf("Error() = %q, want %q", got, "f_c: SPICE(X)")
	}
}

func TestKindString(t *testing.T) {
	if got := NoSuchFile.String(); got != "no such file" {
		t.Errorf("String() = %q, want %q", got, "no such file")
	}
	if got := Kind(42).String(); got != "Kind(42)" {
		t.Errorf("String() = %q, want %q", got, "Kind(42)")
	}
}
