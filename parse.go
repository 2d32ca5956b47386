package tradeai

import (
	"context"
	"errors"
	"fmt"

	eng "github.com/Rupeshcybo/Trade-With-Ai/internal/engine"
)

// ParseFrom streams JSON from src, enforcing the schema's depth and size
// limits during decoding, then validates the decoded value. Malformed JSON is
// reported as a plain wrapped error: it is the fetcher's failure, not the
// record's. Depth breaches surface as a ViolationList so callers handle them
// like any other validation outcome.
func ParseFrom(ctx context.Context, s *Schema, src Source) (map[string]any, error) {
	raw, err := decodeEnforced(s, src)
	if err != nil {
		return nil, err
	}
	return s.Validate(ctx, raw)
}

// ParseFromWithMeta is ParseFrom plus presence collection.
func ParseFromWithMeta(ctx context.Context, s *Schema, src Source) (Decoded, error) {
	raw, err := decodeEnforced(s, src)
	if err != nil {
		return Decoded{}, err
	}
	return s.ValidateWithMeta(ctx, raw)
}

// ValidateJSON is shorthand for ParseFrom over a byte slice.
func ValidateJSON(ctx context.Context, s *Schema, data []byte) (map[string]any, error) {
	return ParseFrom(ctx, s, JSONBytes(data))
}

func decodeEnforced(s *Schema, src Source) (any, error) {
	var inner eng.TokenSource
	if ea, ok := src.(*engineSourceAdapter); ok {
		inner = ea.inner
	} else {
		inner = &engineTokenSource{inner: src}
	}
	enforced := eng.WrapWithEnforcement(inner, eng.EnforceOptions{
		MaxDepth: s.maxDepth,
		MaxBytes: s.maxBytes,
	})
	raw, err := eng.DecodeAnyFromSource(enforced)
	if err != nil {
		var le *eng.LimitError
		if errors.As(err, &le) && le.Code == eng.LimitDepth {
			return nil, ViolationList{{
				Path:    ParsePointer(le.Path),
				Code:    CodeMaxDepthExceeded,
				Message: fmt.Sprintf("nesting exceeds the limit of %d", s.maxDepth),
				Params:  map[string]any{"max": s.maxDepth},
			}}
		}
		return nil, fmt.Errorf("tradeai: decode JSON: %w", err)
	}
	return raw, nil
}
