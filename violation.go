package tradeai

import (
	"errors"
	"fmt"
	"strings"
)

// Violation codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMissingRequired  = "missing_required"
	CodeTypeMismatch     = "type_mismatch"
	CodeOutOfRange       = "out_of_range"
	CodeNotInEnum        = "not_in_enum"
	CodeEmptyString      = "empty_string"
	CodeMaxDepthExceeded = "max_depth_exceeded"
)

// Violation represents a single validation entry.
type Violation struct {
	Path    Path   // Field location within the record (for example: sources/2/uri).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected kinds, etc.
	// Received is an optional snapshot of the offending raw value. Kept small;
	// containers are summarized rather than copied wholesale.
	Received any
	// Params carries structured parameters (e.g., {"min":0, "max":100, "got":120})
	// for i18n and observability.
	Params map[string]any
}

// ViolationList is a collection of validation errors that implements error.
type ViolationList []Violation

// Error summarizes the first few violations.
func (vl ViolationList) Error() string {
	if len(vl) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(vl)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		v := vl[i]
		// e.g. type_mismatch at /entry
		fmt.Fprintf(b, "%s at %s", v.Code, v.Path.JSONPointer())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendViolations appends violations to the destination, initializing the
// slice when needed.
func AppendViolations(dst ViolationList, more ...Violation) ViolationList {
	if dst == nil {
		dst = ViolationList{}
	}
	dst = append(dst, more...)
	return dst
}

// AsViolations extracts a ViolationList from an error using errors.As
// internally.
func AsViolations(err error) (ViolationList, bool) {
	if err == nil {
		return nil, false
	}
	var vl ViolationList
	if errors.As(err, &vl) {
		return vl, true
	}
	return nil, false
}
