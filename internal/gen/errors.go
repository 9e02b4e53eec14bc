package gen

import "fmt"

// GenerationError reports a declaration the generator refuses to bind.
type GenerationError struct {
	Decl   string
	Field  string
	Reason string
}

func (e *GenerationError) Error() string {
	switch {
	case e.Decl != "" && e.Field != "":
		return fmt.Sprintf("%s: %s: %s", e.Decl, e.Field, e.Reason)
	case e.Decl != "":
		return fmt.Sprintf("%s: %s", e.Decl, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	default:
		return e.Reason
	}
}
