package tradeai

import (
	"fmt"
)

// Kind enumerates the value shapes a field can normalize to.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindEnum
	KindArray
	KindObject
)

// String returns the lowercase kind name used in messages and schema docs.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field is a declarative descriptor for one key of a record.
//
// Required fields must be present and coercible; optional fields fall back to
// Default when absent or when their own shape cannot be coerced. Constraints
// (Min/Max, NonEmpty, Enum membership) always produce violations when the
// value is present, regardless of Required.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Default backs optional fields so normalized records stay total. It is
	// normalized once at schema construction.
	Default any
	// Min/Max bound KindNumber values inclusively. Nil means unbounded.
	Min *float64
	Max *float64
	// NonEmpty rejects strings that are empty after trimming.
	NonEmpty bool
	// Enum lists the accepted literals for KindEnum. Matching trims the input
	// and then compares case-sensitively.
	Enum []string
	// Elem describes every element of a KindArray field. Its Name is ignored.
	Elem *Field
	// Fields describe the keys of a KindObject field, validated in order.
	Fields []Field
}

// Options tunes validation limits.
type Options struct {
	// MaxDepth bounds container nesting. Zero means DefaultMaxDepth.
	MaxDepth int
	// MaxBytes bounds JSON input size for the streaming front-end. Zero means
	// unlimited.
	MaxBytes int64
}

// DefaultMaxDepth is the nesting limit applied when Options.MaxDepth is zero.
const DefaultMaxDepth = 32

// Schema is a compiled, immutable set of field descriptors. A Schema is safe
// for concurrent use once built.
type Schema struct {
	fields   []Field
	maxDepth int
	maxBytes int64
}

// New compiles a schema from field descriptors. It rejects malformed
// descriptors up front so Validate never has to: duplicate names, optional
// fields without a default, enums without literals, arrays without an element
// descriptor, objects without fields, and inverted numeric bounds. Defaults
// are normalized here, which keeps Validate idempotent over its own output.
func New(fields []Field, opt ...Options) (*Schema, error) {
	o := Options{}
	if len(opt) > 0 {
		o = opt[0]
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	s := &Schema{maxDepth: o.MaxDepth, maxBytes: o.MaxBytes}
	compiled, err := compileFields(fields, nil)
	if err != nil {
		return nil, err
	}
	s.fields = compiled
	return s, nil
}

// MustNew is New that panics on descriptor errors. Intended for package-level
// schema variables.
func MustNew(fields []Field, opt ...Options) *Schema {
	s, err := New(fields, opt...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns a copy of the top-level descriptors.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// MaxDepth reports the effective nesting limit.
func (s *Schema) MaxDepth() int { return s.maxDepth }

// MaxBytes reports the input size limit (0 = unlimited).
func (s *Schema) MaxBytes() int64 { return s.maxBytes }

func compileFields(fields []Field, at Path) ([]Field, error) {
	seen := map[string]struct{}{}
	out := make([]Field, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("tradeai: field %d at %s: empty name", i, at.JSONPointer())
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("tradeai: duplicate field %q at %s", f.Name, at.JSONPointer())
		}
		seen[f.Name] = struct{}{}
		cf, err := compileField(f, at.Child(f.Name))
		if err != nil {
			return nil, err
		}
		out[i] = cf
	}
	return out, nil
}

func compileField(f Field, at Path) (Field, error) {
	switch f.Kind {
	case KindString, KindNumber, KindBoolean:
	case KindEnum:
		if len(f.Enum) == 0 {
			return f, fmt.Errorf("tradeai: enum field %s has no literals", at.JSONPointer())
		}
	case KindArray:
		if f.Elem == nil {
			return f, fmt.Errorf("tradeai: array field %s has no element descriptor", at.JSONPointer())
		}
		elem := *f.Elem
		elem.Name = ""
		ce, err := compileElem(elem, at)
		if err != nil {
			return f, err
		}
		f.Elem = &ce
	case KindObject:
		if len(f.Fields) == 0 {
			return f, fmt.Errorf("tradeai: object field %s has no fields", at.JSONPointer())
		}
		cfs, err := compileFields(f.Fields, at)
		if err != nil {
			return f, err
		}
		f.Fields = cfs
	default:
		return f, fmt.Errorf("tradeai: field %s has unknown kind %d", at.JSONPointer(), int(f.Kind))
	}
	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		return f, fmt.Errorf("tradeai: field %s has min %v greater than max %v", at.JSONPointer(), *f.Min, *f.Max)
	}
	if (f.Min != nil || f.Max != nil) && f.Kind != KindNumber {
		return f, fmt.Errorf("tradeai: field %s declares numeric bounds on kind %s", at.JSONPointer(), f.Kind)
	}
	if f.NonEmpty && f.Kind != KindString {
		return f, fmt.Errorf("tradeai: field %s declares non-empty on kind %s", at.JSONPointer(), f.Kind)
	}
	if f.Required {
		if f.Default != nil {
			return f, fmt.Errorf("tradeai: required field %s declares a default", at.JSONPointer())
		}
		return f, nil
	}
	if f.Default == nil {
		return f, fmt.Errorf("tradeai: optional field %s has no default", at.JSONPointer())
	}
	norm, vl := coerceValue(f, f.Default, at, 1, DefaultMaxDepth, nil)
	if len(vl) > 0 {
		return f, fmt.Errorf("tradeai: default for field %s does not satisfy the descriptor: %v", at.JSONPointer(), error(vl))
	}
	f.Default = norm
	return f, nil
}

// compileElem validates an array element descriptor. Elements have no
// required/default semantics of their own unless they are objects, whose
// member fields keep them.
func compileElem(f Field, at Path) (Field, error) {
	probe := at.At(0)
	switch f.Kind {
	case KindString, KindNumber, KindBoolean:
	case KindEnum:
		if len(f.Enum) == 0 {
			return f, fmt.Errorf("tradeai: enum element at %s has no literals", probe.JSONPointer())
		}
	case KindArray:
		if f.Elem == nil {
			return f, fmt.Errorf("tradeai: array element at %s has no element descriptor", probe.JSONPointer())
		}
		elem := *f.Elem
		elem.Name = ""
		ce, err := compileElem(elem, probe)
		if err != nil {
			return f, err
		}
		f.Elem = &ce
	case KindObject:
		if len(f.Fields) == 0 {
			return f, fmt.Errorf("tradeai: object element at %s has no fields", probe.JSONPointer())
		}
		cfs, err := compileFields(f.Fields, probe)
		if err != nil {
			return f, err
		}
		f.Fields = cfs
	default:
		return f, fmt.Errorf("tradeai: element at %s has unknown kind %d", probe.JSONPointer(), int(f.Kind))
	}
	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		return f, fmt.Errorf("tradeai: element at %s has min %v greater than max %v", probe.JSONPointer(), *f.Min, *f.Max)
	}
	return f, nil
}

// Float is shorthand for taking the address of a bound.
func Float(v float64) *float64 { return &v }
