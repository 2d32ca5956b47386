package tradeai

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Validate coerces raw against the schema and returns a fully normalized
// record, or a ViolationList describing everything wrong with the input.
// The two outcomes are exclusive: a record with any violation is never
// returned.
//
// Raw input that is not a mapping (including nil) is treated as an empty
// record, so required fields report missing_required and optional fields take
// their defaults. Violations come back in schema declaration order, array
// elements in index order. Validate is pure and safe for concurrent use.
func (s *Schema) Validate(ctx context.Context, raw any) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, _ := raw.(map[string]any)
	out, vl := walkFields(s.fields, rec, nil, nil, 1, s.maxDepth)
	if len(vl) > 0 {
		return nil, vl
	}
	return out, nil
}

// walkFields validates one mapping level. pm is optional presence collection;
// nil skips it.
func walkFields(fields []Field, rec map[string]any, at Path, pm PresenceMap, depth, maxDepth int) (map[string]any, ViolationList) {
	out := make(map[string]any, len(fields))
	var vl ViolationList
	for _, f := range fields {
		fp := at.Child(f.Name)
		raw, present := rec[f.Name]
		if present && raw == nil {
			// JSON null carries no usable value; treat it like absence but
			// remember that the key was written.
			present = false
			pm.mark(fp, PresenceSeen|PresenceWasNull)
		}
		if !present {
			if f.Required {
				vl = AppendViolations(vl, Violation{
					Path:    fp,
					Code:    CodeMissingRequired,
					Message: fmt.Sprintf("required field %q is missing", f.Name),
				})
				continue
			}
			out[f.Name] = cloneValue(f.Default)
			pm.mark(fp, PresenceDefaultApplied)
			continue
		}
		pm.mark(fp, PresenceSeen)
		v, fvl := coerceValue(f, raw, fp, depth, maxDepth, pm)
		if len(fvl) == 0 {
			out[f.Name] = v
			continue
		}
		// Optional fields absorb a failure of their own shape by falling back
		// to the default. Constraint breaches and violations from inside
		// containers always surface.
		if !f.Required && ownShapeFailure(fvl, fp) {
			out[f.Name] = cloneValue(f.Default)
			pm.mark(fp, PresenceDefaultApplied)
			continue
		}
		vl = append(vl, fvl...)
	}
	return out, vl
}

func ownShapeFailure(vl ViolationList, fp Path) bool {
	if len(vl) != 1 {
		return false
	}
	v := vl[0]
	if !v.Path.Equal(fp) {
		return false
	}
	return v.Code == CodeTypeMismatch || v.Code == CodeNotInEnum
}

// coerceValue normalizes one present value against its descriptor. depth is
// the nesting level of the container holding the value.
func coerceValue(f Field, raw any, at Path, depth, maxDepth int, pm PresenceMap) (any, ViolationList) {
	switch f.Kind {
	case KindString:
		return coerceString(f, raw, at)
	case KindNumber:
		return coerceNumber(f, raw, at)
	case KindBoolean:
		return coerceBool(raw, at)
	case KindEnum:
		return coerceEnum(f, raw, at)
	case KindArray:
		return coerceArray(f, raw, at, depth, maxDepth, pm)
	case KindObject:
		return coerceObject(f, raw, at, depth, maxDepth, pm)
	default:
		// compileField rejects unknown kinds; unreachable for built schemas.
		return nil, ViolationList{{Path: at, Code: CodeTypeMismatch, Message: "unknown kind", Received: raw}}
	}
}

func coerceString(f Field, raw any, at Path) (any, ViolationList) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case float64:
		s = formatNumber(v)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case bool:
		s = strconv.FormatBool(v)
	default:
		return nil, mismatch(at, "string", raw)
	}
	if f.NonEmpty && strings.TrimSpace(s) == "" {
		return nil, ViolationList{{
			Path:     at,
			Code:     CodeEmptyString,
			Message:  "string must not be empty",
			Received: raw,
		}}
	}
	return s, nil
}

func coerceNumber(f Field, raw any, at Path) (any, ViolationList) {
	var n float64
	switch v := raw.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, mismatch(at, "number", raw)
		}
		n = p
	default:
		return nil, mismatch(at, "number", raw)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, mismatch(at, "finite number", raw)
	}
	if (f.Min != nil && n < *f.Min) || (f.Max != nil && n > *f.Max) {
		return nil, ViolationList{{
			Path:     at,
			Code:     CodeOutOfRange,
			Message:  rangeMessage(f, n),
			Received: raw,
			Params:   rangeParams(f, n),
		}}
	}
	return n, nil
}

func coerceBool(raw any, at Path) (any, ViolationList) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return nil, mismatch(at, "boolean", raw)
}

func coerceEnum(f Field, raw any, at Path) (any, ViolationList) {
	s, ok := raw.(string)
	if !ok {
		return nil, mismatch(at, "string", raw)
	}
	s = strings.TrimSpace(s)
	for _, lit := range f.Enum {
		if s == lit {
			return lit, nil
		}
	}
	return nil, ViolationList{{
		Path:     at,
		Code:     CodeNotInEnum,
		Message:  fmt.Sprintf("value %q is not one of %s", s, strings.Join(f.Enum, ", ")),
		Received: raw,
		Params:   map[string]any{"allowed": append([]string{}, f.Enum...), "got": s},
	}}
}

func coerceArray(f Field, raw any, at Path, depth, maxDepth int, pm PresenceMap) (any, ViolationList) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, mismatch(at, "array", raw)
	}
	if depth+1 > maxDepth {
		return nil, depthExceeded(at, maxDepth)
	}
	out := make([]any, 0, len(arr))
	var vl ViolationList
	for i, el := range arr {
		ep := at.At(i)
		pm.mark(ep, PresenceSeen)
		ev, evl := coerceValue(*f.Elem, el, ep, depth+1, maxDepth, pm)
		if len(evl) > 0 {
			vl = append(vl, evl...)
			continue
		}
		out = append(out, ev)
	}
	if len(vl) > 0 {
		return nil, vl
	}
	return out, nil
}

func coerceObject(f Field, raw any, at Path, depth, maxDepth int, pm PresenceMap) (any, ViolationList) {
	rec, ok := raw.(map[string]any)
	if !ok {
		return nil, mismatch(at, "object", raw)
	}
	if depth+1 > maxDepth {
		return nil, depthExceeded(at, maxDepth)
	}
	out, vl := walkFields(f.Fields, rec, at, pm, depth+1, maxDepth)
	if len(vl) > 0 {
		return nil, vl
	}
	return out, nil
}

func mismatch(at Path, want string, raw any) ViolationList {
	return ViolationList{{
		Path:     at,
		Code:     CodeTypeMismatch,
		Message:  fmt.Sprintf("expected %s, got %s", want, typeName(raw)),
		Received: raw,
	}}
}

func depthExceeded(at Path, maxDepth int) ViolationList {
	return ViolationList{{
		Path:    at,
		Code:    CodeMaxDepthExceeded,
		Message: fmt.Sprintf("nesting exceeds the limit of %d", maxDepth),
		Params:  map[string]any{"max": maxDepth},
	}}
}

func rangeMessage(f Field, n float64) string {
	switch {
	case f.Min != nil && f.Max != nil:
		return fmt.Sprintf("value %s is outside [%s, %s]", formatNumber(n), formatNumber(*f.Min), formatNumber(*f.Max))
	case f.Min != nil:
		return fmt.Sprintf("value %s is below the minimum %s", formatNumber(n), formatNumber(*f.Min))
	default:
		return fmt.Sprintf("value %s is above the maximum %s", formatNumber(n), formatNumber(*f.Max))
	}
}

func rangeParams(f Field, n float64) map[string]any {
	p := map[string]any{"got": n}
	if f.Min != nil {
		p["min"] = *f.Min
	}
	if f.Max != nil {
		p["max"] = *f.Max
	}
	return p
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// cloneValue deep-copies defaults so callers mutating a returned record never
// reach back into the compiled schema.
func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = cloneValue(el)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, el := range t {
			out[k] = cloneValue(el)
		}
		return out
	default:
		return v
	}
}
