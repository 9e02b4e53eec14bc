package gen

import (
	"errors"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testSchema = `
package: spice
functions:
  - name: spkpos
    doc: returns a position.
    params:
      - {name: targ, type: string}
      - {name: et, type: f64}
    results:
      - {name: ptarg, type: "[3]f64"}
      - {name: lt, type: f64}
  - name: pxform
    params:
      - {name: from, type: string}
    results:
      - {name: rotate, type: "[3][3]f64"}
  - name: bodvrd
    params:
      - {name: item, type: string}
      - {name: maxn, type: size}
    results:
      - {name: dim, type: i32}
      - {name: values, type: "[]f64", capacity: maxn, length: dim}
  - name: failed
    checked: false
    native_result: true
    results:
      - {name: failed, type: bool}
  - name: furnsh
    params:
      - {name: file, type: string}
  - name: timdef
    params:
      - {name: item, type: string}
    results:
      - {name: value, type: string, capacity: 64}
`

func mustParse(t *testing.T, src string) *Schema {
	t.Helper()
	s, err := ParseSchema(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseSchema() error = %v", err)
	}
	return s
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		typ  string
		want Shape
	}{
		{"f64", Shape{Class: Scalar, Elem: F64}},
		{"bool", Shape{Class: Scalar, Elem: Bool}},
		{"size", Shape{Class: Size}},
		{"string", Shape{Class: Text}},
		{"[3]f64", Shape{Class: Array, Elem: F64, N: 3}},
		{"[6][6]f64", Shape{Class: Matrix, Elem: F64, N: 6, M: 6}},
		{"[]i32", Shape{Class: Slice, Elem: I32}},
		{"[][3]i32", Shape{Class: RowSlice, Elem: I32, N: 3}},
		{"DLADSC", Shape{Class: Descriptor, Name: "DLADSC"}},
	}
	for _, tt := range tests {
		got, err := ParseShape(tt.typ)
		if err != nil {
			t.Errorf("ParseShape(%q) error = %v", tt.typ, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseShape(%q) mismatch (-want +got):\n%s", tt.typ, diff)
		}
	}

	for _, typ := range []string{"f32", "[0]f64", "[3]bool", "*f64", "[3][]f64", "map"} {
		if _, err := ParseShape(typ); err == nil {
			t.Errorf("ParseShape(%q) succeeded, want error", typ)
		}
	}
}

func TestShapeGoType(t *testing.T) {
	tests := map[string]string{
		"f64":       "float64",
		"i32":       "int32",
		"size":      "int",
		"[3][3]f64": "[3][3]float64",
		"[][3]i32":  "[][3]int32",
		"DSKDSC":    "DSKDSC",
	}
	for typ, want := range tests {
		s, err := ParseShape(typ)
		if err != nil {
			t.Fatalf("ParseShape(%q) error = %v", typ, err)
		}
		if got := s.GoType(); got != want {
			t.Errorf("GoType(%q) = %q, want %q", typ, got, want)
		}
	}
}

func TestBuildRejectsUnsupportedDeclarations(t *testing.T) {
	tests := []struct {
		name   string
		decl   string
		field  string
		reason string
	}{
		{
			name:   "unsupported type",
			decl:   "  - name: f\n    params:\n      - {name: x, type: f32}\n",
			field:  "param x",
			reason: "unsupported",
		},
		{
			name:   "text output without capacity",
			decl:   "  - name: f\n    results:\n      - {name: s, type: string}\n",
			field:  "result s",
			reason: "capacity",
		},
		{
			name:   "text output with zero capacity",
			decl:   "  - name: f\n    results:\n      - {name: s, type: string, capacity: 0}\n",
			field:  "result s",
			reason: "positive integer",
		},
		{
			name:   "slice without length",
			decl:   "  - name: f\n    params:\n      - {name: n, type: size}\n    results:\n      - {name: v, type: \"[]f64\", capacity: n}\n",
			field:  "result v",
			reason: "length",
		},
		{
			name:   "reserved name",
			decl:   "  - name: f\n    params:\n      - {name: frame, type: string}\n",
			field:  "param frame",
			reason: "reserved",
		},
		{
			name:   "keyword",
			decl:   "  - name: f\n    params:\n      - {name: range, type: f64}\n",
			field:  "param range",
			reason: "not a valid identifier",
		},
		{
			name:   "size output",
			decl:   "  - name: f\n    results:\n      - {name: n, type: size}\n",
			field:  "result n",
			reason: "not supported as an output",
		},
		{
			name:   "row slice input",
			decl:   "  - name: f\n    params:\n      - {name: p, type: \"[][3]i32\"}\n",
			field:  "param p",
			reason: "not supported as an input",
		},
		{
			name:   "native result with two results",
			decl:   "  - name: f\n    native_result: true\n    results:\n      - {name: a, type: f64}\n      - {name: b, type: f64}\n",
			field:  "results",
			reason: "exactly one result",
		},
		{
			name:   "buffer local collision",
			decl:   "  - name: f\n    params:\n      - {name: outX, type: f64}\n    results:\n      - {name: x, type: f64}\n",
			field:  "result x",
			reason: "collides",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustParse(t, "package: spice\nfunctions:\n"+tt.decl)
			_, err := Generate(s)
			var genErr *GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("Generate() error = %v, want *GenerationError", err)
			}
			if genErr.Decl != "f" {
				t.Errorf("Decl = %q, want %q", genErr.Decl, "f")
			}
			if genErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", genErr.Field, tt.field)
			}
			if !strings.Contains(genErr.Reason, tt.reason) {
				t.Errorf("Reason = %q, want it to mention %q", genErr.Reason, tt.reason)
			}
		})
	}
}

func TestBuildRejectsDuplicates(t *testing.T) {
	s := mustParse(t, "package: spice\nfunctions:\n  - name: f\n  - name: f\n")
	_, err := Build(s)
	var genErr *GenerationError
	if !errors.As(err, &genErr) || !strings.Contains(genErr.Reason, "twice") {
		t.Errorf("Build() error = %v, want duplicate declaration error", err)
	}
}

func TestParseSchemaRejectsUnknownFields(t *testing.T) {
	_, err := ParseSchema(strings.NewReader("package: spice\nfunctions:\n  - name: f\n    retuns: []\n"))
	if err == nil {
		t.Error("ParseSchema() succeeded, want error for unknown field")
	}
}

func TestGenerate(t *testing.T) {
	files, err := Generate(mustParse(t, testSchema))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	raw := string(files[RawFile])
	checked := string(files[CheckedFile])
	for name, src := range files {
		if _, err := parser.ParseFile(token.NewFileSet(), name, src, parser.ParseComments); err != nil {
			t.Fatalf("%s does not parse: %v\n%s", name, err, src)
		}
		if !strings.HasPrefix(string(src), "// Code generated by spicegen. DO NOT EDIT.") {
			t.Errorf("%s is missing the generated header", name)
		}
	}

	wantRaw := []string{
		"func (raw *Raw) Spkpos(ctx context.Context, targ string, et float64) (ptarg [3]float64, lt float64, err error) {",
		`frame.Call("spkpos_c", ffi.KindVoid, frame.CString(targ), ffi.Float(et), outPtarg, outLt)`,
		"outPtarg := frame.Out(24)",
		"frame.F64sInto(ptarg[:], outPtarg)",
		"return [3]float64{}, 0, err",
		"frame.F64sInto(rotate[k][:], outRotate.Offset(k*24))",
		"outValues := frame.Out(8 * maxn)",
		"values = frame.F64s(outValues, ffi.Clamp(int(dim), maxn))",
		`ret := frame.Call("failed_c", ffi.KindI32)`,
		"failed = ret.Bool()",
		"// Spkpos calls spkpos_c, which returns a position.",
		"// Pxform calls pxform_c.",
		"func (raw *Raw) Timdef(ctx context.Context, item string) (value string, err error) {",
		"outValue := frame.Out(64)",
		"value = frame.String(outValue, 64)",
	}
	for _, want := range wantRaw {
		if !strings.Contains(raw, want) {
			t.Errorf("raw bindings missing %q\n%s", want, raw)
		}
	}

	wantChecked := []string{
		"func (chk *Checked) Spkpos(ctx context.Context, targ string, et float64) (ptarg [3]float64, lt float64, err error) {",
		`err = chk.run(ctx, "spkpos_c", func(raw *Raw) (err error) {`,
		"ptarg, lt, err = raw.Spkpos(ctx, targ, et)",
		`return chk.run(ctx, "furnsh_c", func(raw *Raw) error {`,
		"// Spkpos returns a position.",
	}
	for _, want := range wantChecked {
		if !strings.Contains(checked, want) {
			t.Errorf("checked bindings missing %q\n%s", want, checked)
		}
	}
	if strings.Contains(checked, "Failed(") {
		t.Error("checked bindings include an unchecked entry point")
	}
}

func TestGenerateSignaturesFile(t *testing.T) {
	s, err := LoadSchema("../../pkg/spice/signatures.yaml")
	if err != nil {
		t.Fatalf("LoadSchema() error = %v", err)
	}
	plans, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	files, err := Generate(s)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	raw := string(files[RawFile])
	for _, p := range plans {
		if !strings.Contains(raw, "func (raw *Raw) "+p.Decl.GoName()+"(") {
			t.Errorf("raw bindings missing %s", p.Decl.GoName())
		}
	}
}
