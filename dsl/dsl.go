// Package dsl provides a fluent builder over field descriptors so schemas
// read close to the documents they validate.
//
//	s := dsl.MustBuild(
//		dsl.Enum("signal", "LONG", "SHORT", "NO TRADE").Required(),
//		dsl.Number("confidence").Range(0, 100).Required(),
//		dsl.String("reason").NonEmpty().Default("n/a"),
//	)
package dsl

import (
	tradeai "github.com/Rupeshcybo/Trade-With-Ai"
)

// FieldBuilder accumulates one field descriptor. All chainers return the
// receiver.
type FieldBuilder struct {
	f tradeai.Field
}

// String declares a string field.
func String(name string) *FieldBuilder {
	return &FieldBuilder{f: tradeai.Field{Name: name, Kind: tradeai.KindString}}
}

// Number declares a numeric field.
func Number(name string) *FieldBuilder {
	return &FieldBuilder{f: tradeai.Field{Name: name, Kind: tradeai.KindNumber}}
}

// Bool declares a boolean field.
func Bool(name string) *FieldBuilder {
	return &FieldBuilder{f: tradeai.Field{Name: name, Kind: tradeai.KindBoolean}}
}

// Enum declares a field accepting one of the given literals.
func Enum(name string, literals ...string) *FieldBuilder {
	return &FieldBuilder{f: tradeai.Field{Name: name, Kind: tradeai.KindEnum, Enum: literals}}
}

// Array declares an array field whose every element matches elem. The element
// builder's name is ignored; Elem() makes the intent explicit.
func Array(name string, elem *FieldBuilder) *FieldBuilder {
	e := elem.f
	e.Name = ""
	return &FieldBuilder{f: tradeai.Field{Name: name, Kind: tradeai.KindArray, Elem: &e}}
}

// Object declares a nested object field.
func Object(name string, fields ...*FieldBuilder) *FieldBuilder {
	return &FieldBuilder{f: tradeai.Field{Name: name, Kind: tradeai.KindObject, Fields: descriptors(fields)}}
}

// Elem starts an unnamed element descriptor for Array.
func Elem(kind tradeai.Kind) *FieldBuilder {
	return &FieldBuilder{f: tradeai.Field{Kind: kind}}
}

// Required marks the field as mandatory.
func (b *FieldBuilder) Required() *FieldBuilder {
	b.f.Required = true
	return b
}

// Default sets the fallback value for an optional field.
func (b *FieldBuilder) Default(v any) *FieldBuilder {
	b.f.Default = v
	return b
}

// Range bounds a numeric field inclusively on both sides.
func (b *FieldBuilder) Range(min, max float64) *FieldBuilder {
	b.f.Min = &min
	b.f.Max = &max
	return b
}

// Min bounds a numeric field from below.
func (b *FieldBuilder) Min(v float64) *FieldBuilder {
	b.f.Min = &v
	return b
}

// Max bounds a numeric field from above.
func (b *FieldBuilder) Max(v float64) *FieldBuilder {
	b.f.Max = &v
	return b
}

// NonEmpty rejects strings that trim to nothing.
func (b *FieldBuilder) NonEmpty() *FieldBuilder {
	b.f.NonEmpty = true
	return b
}

// Literals sets the accepted values on an enum element built via Elem.
func (b *FieldBuilder) Literals(literals ...string) *FieldBuilder {
	b.f.Enum = literals
	return b
}

// Fields sets the members of an object element built via Elem.
func (b *FieldBuilder) Fields(fields ...*FieldBuilder) *FieldBuilder {
	b.f.Fields = descriptors(fields)
	return b
}

// Of sets the element descriptor of an array element built via Elem.
func (b *FieldBuilder) Of(elem *FieldBuilder) *FieldBuilder {
	e := elem.f
	e.Name = ""
	b.f.Elem = &e
	return b
}

// Descriptor returns the accumulated field.
func (b *FieldBuilder) Descriptor() tradeai.Field { return b.f }

// Build compiles the fields into a schema.
func Build(fields ...*FieldBuilder) (*tradeai.Schema, error) {
	return tradeai.New(descriptors(fields))
}

// BuildWith compiles the fields with explicit options.
func BuildWith(opt tradeai.Options, fields ...*FieldBuilder) (*tradeai.Schema, error) {
	return tradeai.New(descriptors(fields), opt)
}

// MustBuild is Build that panics on descriptor errors. Intended for
// package-level schema variables.
func MustBuild(fields ...*FieldBuilder) *tradeai.Schema {
	s, err := Build(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func descriptors(fields []*FieldBuilder) []tradeai.Field {
	out := make([]tradeai.Field, len(fields))
	for i, b := range fields {
		out[i] = b.f
	}
	return out
}
