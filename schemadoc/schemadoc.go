// Package schemadoc loads schema definitions from YAML or JSON documents so
// validation shapes can live next to prompts instead of in code.
package schemadoc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	tradeai "github.com/Rupeshcybo/Trade-With-Ai"
)

// Document is the on-disk form of a schema.
type Document struct {
	Name     string     `yaml:"name" json:"name"`
	MaxDepth int        `yaml:"maxDepth,omitempty" json:"maxDepth,omitempty"`
	Fields   []FieldDoc `yaml:"fields" json:"fields"`
}

// FieldDoc is the on-disk form of one field descriptor.
type FieldDoc struct {
	Name     string     `yaml:"name,omitempty" json:"name,omitempty"`
	Kind     string     `yaml:"kind" json:"kind"`
	Required bool       `yaml:"required,omitempty" json:"required,omitempty"`
	Default  any        `yaml:"default,omitempty" json:"default,omitempty"`
	Min      *float64   `yaml:"min,omitempty" json:"min,omitempty"`
	Max      *float64   `yaml:"max,omitempty" json:"max,omitempty"`
	NonEmpty bool       `yaml:"nonEmpty,omitempty" json:"nonEmpty,omitempty"`
	Enum     []string   `yaml:"enum,omitempty" json:"enum,omitempty"`
	Elem     *FieldDoc  `yaml:"elem,omitempty" json:"elem,omitempty"`
	Fields   []FieldDoc `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Parse decodes a YAML (or JSON, which YAML subsumes) document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemadoc: parse: %w", err)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("schemadoc: document %q declares no fields", doc.Name)
	}
	return &doc, nil
}

// Load reads and decodes a document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemadoc: read %s: %w", path, err)
	}
	return Parse(data)
}

// Compile turns the document into a ready-to-use schema.
func (d *Document) Compile() (*tradeai.Schema, error) {
	fields := make([]tradeai.Field, len(d.Fields))
	for i, fd := range d.Fields {
		f, err := fd.descriptor()
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	return tradeai.New(fields, tradeai.Options{MaxDepth: d.MaxDepth})
}

func (fd FieldDoc) descriptor() (tradeai.Field, error) {
	f := tradeai.Field{
		Name:     fd.Name,
		Required: fd.Required,
		Default:  normalizeYAML(fd.Default),
		Min:      fd.Min,
		Max:      fd.Max,
		NonEmpty: fd.NonEmpty,
		Enum:     fd.Enum,
	}
	switch fd.Kind {
	case "string":
		f.Kind = tradeai.KindString
	case "number":
		f.Kind = tradeai.KindNumber
	case "boolean", "bool":
		f.Kind = tradeai.KindBoolean
	case "enum":
		f.Kind = tradeai.KindEnum
	case "array":
		f.Kind = tradeai.KindArray
		if fd.Elem == nil {
			return f, fmt.Errorf("schemadoc: array field %q has no elem", fd.Name)
		}
		elem, err := fd.Elem.descriptor()
		if err != nil {
			return f, err
		}
		f.Elem = &elem
	case "object":
		f.Kind = tradeai.KindObject
		for _, nd := range fd.Fields {
			nf, err := nd.descriptor()
			if err != nil {
				return f, err
			}
			f.Fields = append(f.Fields, nf)
		}
	default:
		return f, fmt.Errorf("schemadoc: field %q has unknown kind %q", fd.Name, fd.Kind)
	}
	return f, nil
}

// normalizeYAML rewrites the value shapes yaml.v3 produces into the ones the
// validator walks: map[string]any mappings and []any sequences.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, el := range t {
			out[k] = normalizeYAML(el)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, el := range t {
			out[fmt.Sprint(k)] = normalizeYAML(el)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = normalizeYAML(el)
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return v
	}
}
