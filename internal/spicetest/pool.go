package spicetest

import (
	"fmt"
	"strconv"
	"strings"
)

// poolValue is one kernel pool variable. Exactly one of the slices is set.
type poolValue struct {
	nums []float64
	strs []string
}

type assignment struct {
	name   string
	append bool
	value  poolValue
}

// parseTextKernel reads the \begindata sections of a text kernel. Anything
// outside them is commentary.
func parseTextKernel(content string) ([]assignment, error) {
	var b strings.Builder
	in := false
	for _, line := range strings.Split(content, "\n") {
		switch strings.TrimSpace(line) {
		case `\begindata`:
			in = true
			continue
		case `\begintext`:
			in = false
			continue
		}
		if in {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	toks, err := tokenize(b.String())
	if err != nil {
		return nil, err
	}

	var out []assignment
	for i := 0; i < len(toks); {
		name := toks[i]
		if name.kind != tokWord || i+1 >= len(toks) {
			return nil, fmt.Errorf("expected variable name near %q", name.text)
		}
		op := toks[i+1]
		if op.kind != tokAssign {
			return nil, fmt.Errorf("expected '=' after %s", name.text)
		}
		i += 2
		var vals []token
		if i < len(toks) && toks[i].kind == tokOpen {
			i++
			for i < len(toks) && toks[i].kind != tokClose {
				vals = append(vals, toks[i])
				i++
			}
			if i >= len(toks) {
				return nil, fmt.Errorf("unterminated value list for %s", name.text)
			}
			i++
		} else if i < len(toks) {
			vals = append(vals, toks[i])
			i++
		}
		v, err := poolValueOf(name.text, vals)
		if err != nil {
			return nil, err
		}
		out = append(out, assignment{name: name.text, append: op.text == "+=", value: v})
	}
	return out, nil
}

func poolValueOf(name string, vals []token) (poolValue, error) {
	var v poolValue
	for _, t := range vals {
		switch t.kind {
		case tokString:
			if v.nums != nil {
				return v, fmt.Errorf("variable %s mixes numbers and strings", name)
			}
			v.strs = append(v.strs, t.text)
		case tokWord:
			if strings.HasPrefix(t.text, "@") {
				// Calendar dates are not modelled.
				continue
			}
			x, err := strconv.ParseFloat(strings.NewReplacer("D", "E", "d", "e").Replace(t.text), 64)
			if err != nil {
				return v, fmt.Errorf("variable %s: bad number %q", name, t.text)
			}
			if v.strs != nil {
				return v, fmt.Errorf("variable %s mixes numbers and strings", name)
			}
			v.nums = append(v.nums, x)
		default:
			return v, fmt.Errorf("variable %s: unexpected %q", name, t.text)
		}
	}
	return v, nil
}

type tokKind int

const (
	tokWord tokKind = iota
	tokString
	tokAssign
	tokOpen
	tokClose
)

type token struct {
	kind tokKind
	text string
}

func tokenize(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == ',':
			i++
		case ch == '(':
			toks = append(toks, token{kind: tokOpen, text: "("})
			i++
		case ch == ')':
			toks = append(toks, token{kind: tokClose, text: ")"})
			i++
		case ch == '=':
			toks = append(toks, token{kind: tokAssign, text: "="})
			i++
		case ch == '+' && i+1 < len(s) && s[i+1] == '=':
			toks = append(toks, token{kind: tokAssign, text: "+="})
			i += 2
		case ch == '\'':
			var b strings.Builder
			i++
			for {
				if i >= len(s) {
					return nil, fmt.Errorf("unterminated string")
				}
				if s[i] == '\'' {
					// '' is an escaped quote.
					if i+1 < len(s) && s[i+1] == '\'' {
						b.WriteByte('\'')
						i += 2
						continue
					}
					i++
					break
				}
				b.WriteByte(s[i])
				i++
			}
			toks = append(toks, token{kind: tokString, text: b.String()})
		default:
			j := i
			for j < len(s) && !strings.ContainsRune(" \t\n\r,()='", rune(s[j])) {
				if s[j] == '+' && j+1 < len(s) && s[j+1] == '=' {
					break
				}
				j++
			}
			toks = append(toks, token{kind: tokWord, text: s[i:j]})
			i = j
		}
	}
	return toks, nil
}
