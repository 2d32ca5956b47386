package tradeai

import "context"

// Presence is the bit flag collected by the WithMeta APIs.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                             // Field value was null.
	PresenceDefaultApplied                      // Default value was applied.
)

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// mark records flags for a path. Safe on a nil map so the plain Validate path
// skips collection without branching.
func (pm PresenceMap) mark(p Path, flags Presence) {
	if pm == nil {
		return
	}
	pm[p.JSONPointer()] |= flags
}

// Seen reports whether the pointer appeared in the input.
func (pm PresenceMap) Seen(ptr string) bool { return pm[ptr]&PresenceSeen != 0 }

// WasNull reports whether the pointer carried an explicit null.
func (pm PresenceMap) WasNull(ptr string) bool { return pm[ptr]&PresenceWasNull != 0 }

// DefaultApplied reports whether the normalized value came from the schema
// default rather than the input.
func (pm PresenceMap) DefaultApplied(ptr string) bool {
	return pm[ptr]&PresenceDefaultApplied != 0
}

// Decoded carries a normalized record along with presence metadata.
type Decoded struct {
	Value    map[string]any
	Presence PresenceMap
}

// ValidateWithMeta is Validate plus presence collection. The metadata keeps
// "the model wrote this" distinguishable from "the schema filled this in"
// after normalization has made both look identical.
func (s *Schema) ValidateWithMeta(ctx context.Context, raw any) (Decoded, error) {
	if err := ctx.Err(); err != nil {
		return Decoded{}, err
	}
	pm := PresenceMap{"/": PresenceSeen}
	rec, ok := raw.(map[string]any)
	if !ok {
		pm["/"] = 0
		if raw == nil {
			pm["/"] = PresenceWasNull
		}
	}
	out, vl := walkFields(s.fields, rec, nil, pm, 1, s.maxDepth)
	if len(vl) > 0 {
		return Decoded{Presence: pm}, vl
	}
	return Decoded{Value: out, Presence: pm}, nil
}
