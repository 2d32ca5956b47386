// Package jsonschema projects compiled schemas into a minimal JSON Schema
// representation, useful for prompting models with the exact shape a response
// must take.
package jsonschema

import (
	tradeai "github.com/Rupeshcybo/Trade-With-Ai"
)

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Core
	Type    string   `json:"type,omitempty"`
	Enum    []string `json:"enum,omitempty"`
	Default any      `json:"default,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// String
	MinLength *int `json:"minLength,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`
}

// FromSchema converts a compiled validation schema into its JSON Schema
// projection. Unknown input keys are tolerated by the validator, so
// additionalProperties stays true.
func FromSchema(s *tradeai.Schema) *Schema {
	return objectSchema(s.Fields())
}

func objectSchema(fields []tradeai.Field) *Schema {
	out := &Schema{
		Type:       "object",
		Properties: make(map[string]*Schema, len(fields)),
	}
	for _, f := range fields {
		out.Properties[f.Name] = fieldSchema(f)
		if f.Required {
			out.Required = append(out.Required, f.Name)
		}
	}
	return out
}

func fieldSchema(f tradeai.Field) *Schema {
	var js *Schema
	switch f.Kind {
	case tradeai.KindString:
		js = &Schema{Type: "string"}
		if f.NonEmpty {
			one := 1
			js.MinLength = &one
		}
	case tradeai.KindNumber:
		js = &Schema{Type: "number", Minimum: f.Min, Maximum: f.Max}
	case tradeai.KindBoolean:
		js = &Schema{Type: "boolean"}
	case tradeai.KindEnum:
		js = &Schema{Type: "string", Enum: append([]string{}, f.Enum...)}
	case tradeai.KindArray:
		js = &Schema{Type: "array", Items: fieldSchema(*f.Elem)}
	case tradeai.KindObject:
		js = objectSchema(f.Fields)
	default:
		js = &Schema{}
	}
	if !f.Required {
		js.Default = f.Default
	}
	return js
}
