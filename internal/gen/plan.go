package gen

import (
	"fmt"
	"go/token"
	"go/types"
	"math"
	"strconv"
)

// reserved are the local names used by the generated method bodies.
var reserved = map[string]bool{
	"ctx":     true,
	"frame":   true,
	"err":     true,
	"ret":     true,
	"raw":     true,
	"chk":     true,
	"k":       true,
	"ffi":     true,
	"context": true,
}

// Plan is a validated declaration ready for rendering.
type Plan struct {
	Decl    *Declaration
	Params  []PlannedParam
	Results []PlannedResult
}

// PlannedParam is a validated input.
type PlannedParam struct {
	Name  string
	Shape Shape
}

// PlannedResult is a validated output.
type PlannedResult struct {
	Name     string
	Shape    Shape
	Capacity string
	Length   string
	// Local holds the address of the output buffer in the generated body.
	Local string
}

// Build validates every declaration of the schema.
func Build(s *Schema) ([]*Plan, error) {
	seen := make(map[string]bool, len(s.Functions))
	plans := make([]*Plan, 0, len(s.Functions))
	for i := range s.Functions {
		d := &s.Functions[i]
		p, err := plan(d)
		if err != nil {
			return nil, err
		}
		if seen[d.GoName()] {
			return nil, &GenerationError{Decl: d.Name, Reason: "declared twice"}
		}
		seen[d.GoName()] = true
		plans = append(plans, p)
	}
	return plans, nil
}

func plan(d *Declaration) (*Plan, error) {
	fail := func(field, format string, args ...any) error {
		return &GenerationError{Decl: d.Name, Field: field, Reason: fmt.Sprintf(format, args...)}
	}
	if !token.IsIdentifier(d.Name) || token.IsKeyword(d.Name) {
		return nil, fail("name", "%q is not a valid identifier", d.Name)
	}

	p := &Plan{Decl: d}
	names := make(map[string]bool)
	sizes := make(map[string]bool)
	checkName := func(field, name string) error {
		switch {
		case !token.IsIdentifier(name) || token.IsKeyword(name):
			return fail(field, "%q is not a valid identifier", name)
		case reserved[name] || types.Universe.Lookup(name) != nil:
			return fail(field, "%q is reserved", name)
		case names[name]:
			return fail(field, "%q is used twice", name)
		}
		names[name] = true
		return nil
	}

	for _, prm := range d.Params {
		field := "param " + prm.Name
		if err := checkName(field, prm.Name); err != nil {
			return nil, err
		}
		shape, err := ParseShape(prm.Type)
		if err != nil {
			return nil, fail(field, "%v", err)
		}
		if shape.Class == RowSlice {
			return nil, fail(field, "type %q is not supported as an input", prm.Type)
		}
		if shape.Class == Size {
			sizes[prm.Name] = true
		}
		p.Params = append(p.Params, PlannedParam{Name: prm.Name, Shape: shape})
	}

	if d.NativeResult && len(d.Results) != 1 {
		return nil, fail("results", "native_result needs exactly one result, got %d", len(d.Results))
	}
	lengths := make(map[string]bool)
	for _, res := range d.Results {
		field := "result " + res.Name
		if err := checkName(field, res.Name); err != nil {
			return nil, err
		}
		shape, err := ParseShape(res.Type)
		if err != nil {
			return nil, fail(field, "%v", err)
		}
		r := PlannedResult{
			Name:     res.Name,
			Shape:    shape,
			Capacity: res.Capacity,
			Length:   res.Length,
			Local:    "out" + exported(res.Name),
		}

		if d.NativeResult {
			if shape.Class != Scalar && shape.Class != Text {
				return nil, fail(field, "type %q cannot be a native return value", res.Type)
			}
			if res.Capacity != "" || res.Length != "" {
				return nil, fail(field, "a native return value takes no capacity or length")
			}
			r.Local = ""
			p.Results = append(p.Results, r)
			continue
		}

		switch shape.Class {
		case Size:
			return nil, fail(field, "type %q is not supported as an output", res.Type)
		case Text:
			if _, lit := literalCapacity(res.Capacity); !lit && !sizes[res.Capacity] {
				return nil, fail(field, "capacity must name a size parameter or be a positive integer, got %q", res.Capacity)
			}
			if res.Length != "" {
				return nil, fail(field, "text takes no length")
			}
		case Slice, RowSlice:
			if !sizes[res.Capacity] {
				return nil, fail(field, "capacity must name a size parameter, got %q", res.Capacity)
			}
			if !lengths[res.Length] {
				return nil, fail(field, "length must name an earlier i32 result, got %q", res.Length)
			}
		default:
			if res.Capacity != "" || res.Length != "" {
				return nil, fail(field, "type %q takes no capacity or length", res.Type)
			}
		}
		if shape.Class == Scalar && shape.Elem == I32 {
			lengths[res.Name] = true
		}
		p.Results = append(p.Results, r)
	}

	// Buffer locals share the scope of the parameters and results.
	for _, r := range p.Results {
		if r.Local != "" && names[r.Local] {
			return nil, fail("result "+r.Name, "local %q collides with a declared name", r.Local)
		}
	}
	return p, nil
}

// literalCapacity parses a fixed buffer size written as an integer.
func literalCapacity(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > math.MaxInt32 {
		return 0, false
	}
	return n, true
}
