package gen

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"
)

// FFIPath is the import path of the marshaling package used by the
// generated Raw methods.
const FFIPath = "github.com/woxQAQ/gospice/internal/ffi"

// Output file names.
const (
	RawFile     = "zz_generated_raw.go"
	CheckedFile = "zz_generated_checked.go"
)

const header = "Code generated by spicegen. DO NOT EDIT."

// Generate validates s and renders both binding files, keyed by file name.
func Generate(s *Schema) (map[string][]byte, error) {
	plans, err := Build(s)
	if err != nil {
		return nil, err
	}

	raw := jen.NewFile(s.Package)
	raw.HeaderComment(header)
	raw.ImportName(FFIPath, "ffi")
	checked := jen.NewFile(s.Package)
	checked.HeaderComment(header)

	for _, p := range plans {
		renderRaw(raw, p)
		if p.Decl.IsChecked() {
			renderChecked(checked, p)
		}
	}

	out := make(map[string][]byte, 2)
	for name, f := range map[string]*jen.File{RawFile: raw, CheckedFile: checked} {
		var buf bytes.Buffer
		if err := f.Render(&buf); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", name, err)
		}
		out[name] = buf.Bytes()
	}
	return out, nil
}

func signature(p *Plan) (params, results []jen.Code) {
	params = append(params, jen.Id("ctx").Qual("context", "Context"))
	for _, prm := range p.Params {
		params = append(params, jen.Id(prm.Name).Id(prm.Shape.GoType()))
	}
	if len(p.Results) == 0 {
		return params, []jen.Code{jen.Error()}
	}
	for _, r := range p.Results {
		results = append(results, jen.Id(r.Name).Id(r.Shape.GoType()))
	}
	results = append(results, jen.Err().Error())
	return params, results
}

func zero(s Shape) jen.Code {
	switch s.Class {
	case Array, Matrix, Descriptor:
		return jen.Id(s.GoType()).Values()
	case Slice, RowSlice:
		return jen.Nil()
	case Text:
		return jen.Lit("")
	case Scalar:
		if s.Elem == Bool {
			return jen.False()
		}
	}
	return jen.Lit(0)
}

// zeros is the return list of a failed call.
func zeros(p *Plan) []jen.Code {
	out := make([]jen.Code, 0, len(p.Results)+1)
	for _, r := range p.Results {
		out = append(out, zero(r.Shape))
	}
	return append(out, jen.Err())
}

func resultNames(p *Plan) []jen.Code {
	out := make([]jen.Code, 0, len(p.Results))
	for _, r := range p.Results {
		out = append(out, jen.Id(r.Name))
	}
	return out
}

func frameCall(method string, args ...jen.Code) *jen.Statement {
	return jen.Id("frame").Dot(method).Call(args...)
}

func ffiCall(fn string, args ...jen.Code) *jen.Statement {
	return jen.Qual(FFIPath, fn).Call(args...)
}

func inF64sOrI32s(e Elem) string {
	if e == F64 {
		return "InF64s"
	}
	return "InI32s"
}

func intoMethod(e Elem) string {
	if e == F64 {
		return "F64sInto"
	}
	return "I32sInto"
}

// marshal converts an input to its native value.
func marshal(prm PlannedParam) jen.Code {
	x := prm.Name
	s := prm.Shape
	switch s.Class {
	case Scalar:
		switch s.Elem {
		case F64:
			return ffiCall("Float", jen.Id(x))
		case I32:
			return ffiCall("Int", jen.Id(x))
		default:
			return ffiCall("Bool", jen.Id(x))
		}
	case Size:
		return frameCall("Size", jen.Id(x))
	case Text:
		return frameCall("CString", jen.Id(x))
	case Array:
		return frameCall(inF64sOrI32s(s.Elem), jen.Id(x).Index(jen.Empty(), jen.Empty()))
	case Matrix:
		rows := make([]jen.Code, s.N)
		for i := range rows {
			rows[i] = jen.Id(x).Index(jen.Lit(i)).Index(jen.Empty(), jen.Empty())
		}
		return frameCall(inF64sOrI32s(s.Elem), ffiCall("Rows", rows...))
	case Slice:
		return frameCall(inF64sOrI32s(s.Elem), jen.Id(x))
	case Descriptor:
		return frameCall("In", jen.Id(x).Dot("encode").Call())
	}
	panic("unreachable shape for input " + x)
}

// alloc reserves the output buffer of r.
func alloc(r PlannedResult) jen.Code {
	s := r.Shape
	switch s.Class {
	case Scalar, Array, Matrix:
		return frameCall("Out", jen.Lit(s.FixedSize()))
	case Text:
		return frameCall("Out", capacity(r))
	case Slice:
		return frameCall("Out", jen.Lit(s.ElemSize()).Op("*").Add(capacity(r)))
	case RowSlice:
		return frameCall("Out", jen.Lit(s.ElemSize()*s.N).Op("*").Add(capacity(r)))
	case Descriptor:
		return frameCall("Scratch", jen.Id(descriptors[s.Name].size))
	}
	panic("unreachable shape for output " + r.Name)
}

// decode copies r out of its buffer.
func decode(r PlannedResult) []jen.Code {
	x := r.Name
	o := jen.Id(r.Local)
	s := r.Shape
	switch s.Class {
	case Scalar:
		method := map[Elem]string{F64: "F64", I32: "I32", Bool: "Bool"}[s.Elem]
		return []jen.Code{jen.Id(x).Op("=").Add(frameCall(method, o))}
	case Text:
		return []jen.Code{jen.Id(x).Op("=").Add(frameCall("String", o, capacity(r)))}
	case Array:
		return []jen.Code{frameCall(intoMethod(s.Elem), jen.Id(x).Index(jen.Empty(), jen.Empty()), o)}
	case Matrix:
		return []jen.Code{rowLoop(x, s, o, s.ElemSize()*s.M)}
	case Slice:
		method := "F64s"
		if s.Elem == I32 {
			method = "I32s"
		}
		return []jen.Code{jen.Id(x).Op("=").Add(frameCall(method, o, clamp(r)))}
	case RowSlice:
		return []jen.Code{
			jen.Id(x).Op("=").Make(jen.Id(s.GoType()), clamp(r)),
			rowLoop(x, s, o, s.ElemSize()*s.N),
		}
	case Descriptor:
		d := descriptors[s.Name]
		return []jen.Code{jen.Id(x).Op("=").Id(d.decode).Call(frameCall("Bytes", o, jen.Id(d.size)))}
	}
	panic("unreachable shape for output " + x)
}

func clamp(r PlannedResult) jen.Code {
	return ffiCall("Clamp", jen.Int().Call(jen.Id(r.Length)), capacity(r))
}

// capacity is the bound of a buffer output: a size parameter or a literal.
func capacity(r PlannedResult) jen.Code {
	if n, ok := literalCapacity(r.Capacity); ok {
		return jen.Lit(n)
	}
	return jen.Id(r.Capacity)
}

func rowLoop(x string, s Shape, o jen.Code, stride int) jen.Code {
	return jen.For(jen.Id("k").Op(":=").Range().Id(x)).Block(
		frameCall(intoMethod(s.Elem),
			jen.Id(x).Index(jen.Id("k")).Index(jen.Empty(), jen.Empty()),
			jen.Add(o).Dot("Offset").Call(jen.Id("k").Op("*").Lit(stride)),
		),
	)
}

func nativeKind(s Shape) string {
	switch {
	case s.Class == Text:
		return "KindPtr"
	case s.Elem == F64:
		return "KindF64"
	default:
		return "KindI32"
	}
}

func renderRaw(f *jen.File, p *Plan) {
	d := p.Decl
	params, results := signature(p)

	body := []jen.Code{
		jen.List(jen.Id("frame"), jen.Err()).Op(":=").Id("raw").Dot("frame").Call(jen.Id("ctx")),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(zeros(p)...)),
		jen.Defer().Id("raw").Dot("release").Call(jen.Id("frame")),
		jen.Line(),
	}
	if len(p.Results) == 0 {
		body[1] = jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err()))
	}

	args := []jen.Code{jen.Lit(d.NativeName())}
	if d.NativeResult {
		r := p.Results[0]
		args = append(args, jen.Qual(FFIPath, nativeKind(r.Shape)))
		for _, prm := range p.Params {
			args = append(args, marshal(prm))
		}
		var conv jen.Code
		switch {
		case r.Shape.Class == Text:
			conv = frameCall("CStringAt", jen.Id("ret"))
		case r.Shape.Elem == F64:
			conv = jen.Id("ret").Dot("Float64").Call()
		case r.Shape.Elem == I32:
			conv = jen.Id("ret").Dot("Int32").Call()
		default:
			conv = jen.Id("ret").Dot("Bool").Call()
		}
		body = append(body,
			jen.Id("ret").Op(":=").Add(frameCall("Call", args...)),
			jen.Id(r.Name).Op("=").Add(conv),
		)
	} else {
		args = append(args, jen.Qual(FFIPath, "KindVoid"))
		for _, prm := range p.Params {
			args = append(args, marshal(prm))
		}
		for _, r := range p.Results {
			body = append(body, jen.Id(r.Local).Op(":=").Add(alloc(r)))
			args = append(args, jen.Id(r.Local))
		}
		body = append(body, frameCall("Call", args...))
		for _, r := range p.Results {
			body = append(body, decode(r)...)
		}
	}

	if len(p.Results) == 0 {
		body = append(body, jen.Return(frameCall("Err")))
	} else {
		body = append(body,
			jen.If(jen.Err().Op("=").Add(frameCall("Err")), jen.Err().Op("!=").Nil()).Block(jen.Return(zeros(p)...)),
			jen.Return(append(resultNames(p), jen.Nil())...),
		)
	}

	doc := fmt.Sprintf("%s calls %s.", d.GoName(), d.NativeName())
	if d.Doc != "" {
		doc = fmt.Sprintf("%s calls %s, which %s", d.GoName(), d.NativeName(), d.Doc)
	}
	f.Comment(doc)
	f.Func().Params(jen.Id("raw").Op("*").Id("Raw")).Id(d.GoName()).Params(params...).Params(results...).Block(body...)
	f.Line()
}

func renderChecked(f *jen.File, p *Plan) {
	d := p.Decl
	params, results := signature(p)

	callArgs := []jen.Code{jen.Id("ctx")}
	for _, prm := range p.Params {
		callArgs = append(callArgs, jen.Id(prm.Name))
	}
	call := jen.Id("raw").Dot(d.GoName()).Call(callArgs...)
	rawParam := jen.Id("raw").Op("*").Id("Raw")

	var body []jen.Code
	if len(p.Results) == 0 {
		body = []jen.Code{
			jen.Return(jen.Id("chk").Dot("run").Call(
				jen.Id("ctx"),
				jen.Lit(d.NativeName()),
				jen.Func().Params(rawParam).Error().Block(jen.Return(call)),
			)),
		}
	} else {
		body = []jen.Code{
			jen.Err().Op("=").Id("chk").Dot("run").Call(
				jen.Id("ctx"),
				jen.Lit(d.NativeName()),
				jen.Func().Params(rawParam).Params(jen.Err().Error()).Block(
					jen.List(append(resultNames(p), jen.Err())...).Op("=").Add(call),
					jen.Return(jen.Err()),
				),
			),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(zeros(p)...)),
			jen.Return(append(resultNames(p), jen.Nil())...),
		}
	}

	doc := fmt.Sprintf("%s calls %s under the error protocol.", d.GoName(), d.NativeName())
	if d.Doc != "" {
		doc = fmt.Sprintf("%s %s", d.GoName(), d.Doc)
	}
	f.Comment(doc)
	f.Func().Params(jen.Id("chk").Op("*").Id("Checked")).Id(d.GoName()).Params(params...).Params(results...).Block(body...)
	f.Line()
}
