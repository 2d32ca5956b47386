package tradeai_test

import (
	"context"
	"reflect"
	"testing"

	tradeai "github.com/Rupeshcybo/Trade-With-Ai"
)

func signalFields() []tradeai.Field {
	return []tradeai.Field{
		{Name: "signal", Kind: tradeai.KindEnum, Required: true, Enum: []string{"LONG", "SHORT", "NO TRADE"}},
		{Name: "entry", Kind: tradeai.KindString, Required: true},
		{Name: "sl", Kind: tradeai.KindString, Required: true},
		{Name: "targets", Kind: tradeai.KindString, Required: true},
		{Name: "confidence", Kind: tradeai.KindNumber, Required: true, Min: tradeai.Float(0), Max: tradeai.Float(100)},
		{Name: "reason", Kind: tradeai.KindString, Required: true, NonEmpty: true},
		{Name: "marketRegime", Kind: tradeai.KindEnum, Required: true, Enum: []string{"TRENDING", "RANGING", "VOLATILE"}},
		{Name: "newsSentiment", Kind: tradeai.KindEnum, Required: true, Enum: []string{"POSITIVE", "NEGATIVE", "NEUTRAL"}},
		{Name: "suggestedStrategy", Kind: tradeai.KindString, Default: "Wait for confirmation"},
		{Name: "sources", Kind: tradeai.KindArray, Default: []any{}, Elem: &tradeai.Field{
			Kind: tradeai.KindObject,
			Fields: []tradeai.Field{
				{Name: "title", Kind: tradeai.KindString, Required: true},
				{Name: "uri", Kind: tradeai.KindString, Required: true},
			},
		}},
	}
}

func goodRaw() map[string]any {
	return map[string]any{
		"signal":        "LONG",
		"entry":         "48500-48550",
		"sl":            "48350",
		"targets":       "48750",
		"confidence":    float64(78),
		"reason":        "breakout",
		"marketRegime":  "TRENDING",
		"newsSentiment": "NEUTRAL",
	}
}

func TestValidate_DefaultsApplied(t *testing.T) {
	s := tradeai.MustNew(signalFields())
	ctx := context.Background()

	rec, err := s.Validate(ctx, goodRaw())
	if err != nil {
		t.Fatalf("validate ok expected, got err=%v", err)
	}
	if rec["suggestedStrategy"] != "Wait for confirmation" {
		t.Fatalf("expected default strategy, got %v", rec["suggestedStrategy"])
	}
	arr, ok := rec["sources"].([]any)
	if !ok || len(arr) != 0 {
		t.Fatalf("expected empty sources default, got %v", rec["sources"])
	}
	if rec["confidence"] != float64(78) {
		t.Fatalf("expected confidence 78, got %v", rec["confidence"])
	}
}

func TestValidate_OutOfRange(t *testing.T) {
	s := tradeai.MustNew(signalFields())
	raw := goodRaw()
	raw["confidence"] = float64(140)

	_, err := s.Validate(context.Background(), raw)
	vl, ok := tradeai.AsViolations(err)
	if !ok {
		t.Fatalf("expected ViolationList, got %v", err)
	}
	if len(vl) != 1 || vl[0].Code != tradeai.CodeOutOfRange {
		t.Fatalf("expected single out_of_range, got %v", vl)
	}
	if got := vl[0].Path.JSONPointer(); got != "/confidence" {
		t.Fatalf("expected path /confidence, got %s", got)
	}
}

func TestValidate_NotInEnum(t *testing.T) {
	s := tradeai.MustNew(signalFields())
	raw := goodRaw()
	raw["signal"] = "BUY"

	_, err := s.Validate(context.Background(), raw)
	vl, ok := tradeai.AsViolations(err)
	if !ok {
		t.Fatalf("expected ViolationList, got %v", err)
	}
	if len(vl) != 1 || vl[0].Code != tradeai.CodeNotInEnum {
		t.Fatalf("expected single not_in_enum, got %v", vl)
	}
	if got := vl[0].Path.JSONPointer(); got != "/signal" {
		t.Fatalf("expected path /signal, got %s", got)
	}
}

func TestValidate_NullInput(t *testing.T) {
	s := tradeai.MustNew(signalFields())

	_, err := s.Validate(context.Background(), nil)
	vl, ok := tradeai.AsViolations(err)
	if !ok {
		t.Fatalf("expected ViolationList, got %v", err)
	}
	wantOrder := []string{"/signal", "/entry", "/sl", "/targets", "/confidence", "/reason", "/marketRegime", "/newsSentiment"}
	if len(vl) != len(wantOrder) {
		t.Fatalf("expected %d missing_required, got %d: %v", len(wantOrder), len(vl), vl)
	}
	for i, want := range wantOrder {
		if vl[i].Code != tradeai.CodeMissingRequired {
			t.Fatalf("violation %d: expected missing_required, got %s", i, vl[i].Code)
		}
		if got := vl[i].Path.JSONPointer(); got != want {
			t.Fatalf("violation %d: expected path %s, got %s", i, want, got)
		}
	}
}

func TestValidate_NestedArrayMissingField(t *testing.T) {
	s := tradeai.MustNew(signalFields())
	raw := goodRaw()
	raw["sources"] = []any{map[string]any{"title": "X"}}

	_, err := s.Validate(context.Background(), raw)
	vl, ok := tradeai.AsViolations(err)
	if !ok {
		t.Fatalf("expected ViolationList, got %v", err)
	}
	if len(vl) != 1 || vl[0].Code != tradeai.CodeMissingRequired {
		t.Fatalf("expected single missing_required, got %v", vl)
	}
	if got := vl[0].Path.JSONPointer(); got != "/sources/0/uri" {
		t.Fatalf("expected path /sources/0/uri, got %s", got)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	s := tradeai.MustNew(signalFields())
	ctx := context.Background()

	first, err := s.Validate(ctx, goodRaw())
	if err != nil {
		t.Fatalf("first validate: %v", err)
	}
	second, err := s.Validate(ctx, first)
	if err != nil {
		t.Fatalf("revalidating normalized output: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected stable round trip, got %v then %v", first, second)
	}
}

func TestValidate_Deterministic(t *testing.T) {
	s := tradeai.MustNew(signalFields())
	ctx := context.Background()
	raw := map[string]any{"signal": "BUY", "confidence": "not a number"}

	_, err1 := s.Validate(ctx, raw)
	_, err2 := s.Validate(ctx, raw)
	vl1, _ := tradeai.AsViolations(err1)
	vl2, _ := tradeai.AsViolations(err2)
	if len(vl1) == 0 || !reflect.DeepEqual(vl1, vl2) {
		t.Fatalf("expected identical violation lists, got %v and %v", vl1, vl2)
	}
}

func TestValidate_EnumStrictness(t *testing.T) {
	s := tradeai.MustNew(signalFields())
	ctx := context.Background()

	// surrounding whitespace is trimmed before matching
	raw := goodRaw()
	raw["signal"] = "  LONG  "
	rec, err := s.Validate(ctx, raw)
	if err != nil {
		t.Fatalf("trimmed enum expected to pass: %v", err)
	}
	if rec["signal"] != "LONG" {
		t.Fatalf("expected canonical literal, got %v", rec["signal"])
	}

	// case never normalizes
	raw = goodRaw()
	raw["signal"] = "long"
	_, err = s.Validate(ctx, raw)
	if vl, ok := tradeai.AsViolations(err); !ok || vl[0].Code != tradeai.CodeNotInEnum {
		t.Fatalf("expected not_in_enum for lowercase, got %v", err)
	}

	// internal whitespace must match exactly
	raw = goodRaw()
	raw["signal"] = "NO  TRADE"
	_, err = s.Validate(ctx, raw)
	if vl, ok := tradeai.AsViolations(err); !ok || vl[0].Code != tradeai.CodeNotInEnum {
		t.Fatalf("expected not_in_enum for internal whitespace, got %v", err)
	}
}

func TestValidate_Coercions(t *testing.T) {
	s := tradeai.MustNew([]tradeai.Field{
		{Name: "n", Kind: tradeai.KindNumber, Required: true},
		{Name: "s", Kind: tradeai.KindString, Required: true},
		{Name: "b", Kind: tradeai.KindBoolean, Required: true},
	})
	ctx := context.Background()

	rec, err := s.Validate(ctx, map[string]any{"n": " 42.5 ", "s": float64(7), "b": "TRUE"})
	if err != nil {
		t.Fatalf("coercions expected to pass: %v", err)
	}
	if rec["n"] != 42.5 {
		t.Fatalf("expected 42.5, got %v", rec["n"])
	}
	if rec["s"] != "7" {
		t.Fatalf("expected \"7\", got %v", rec["s"])
	}
	if rec["b"] != true {
		t.Fatalf("expected true, got %v", rec["b"])
	}

	_, err = s.Validate(ctx, map[string]any{"n": "abc", "s": "x", "b": true})
	if vl, ok := tradeai.AsViolations(err); !ok || vl[0].Code != tradeai.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch for non-numeric string, got %v", err)
	}
}

func TestValidate_EmptyString(t *testing.T) {
	s := tradeai.MustNew(signalFields())
	raw := goodRaw()
	raw["reason"] = "   "

	_, err := s.Validate(context.Background(), raw)
	vl, ok := tradeai.AsViolations(err)
	if !ok || len(vl) != 1 || vl[0].Code != tradeai.CodeEmptyString {
		t.Fatalf("expected single empty_string, got %v", err)
	}
}

func TestValidate_OptionalOwnShapeFallsBack(t *testing.T) {
	s := tradeai.MustNew(signalFields())
	raw := goodRaw()
	// a composite cannot stringify; the optional field takes its default
	raw["suggestedStrategy"] = map[string]any{"nested": true}

	rec, err := s.Validate(context.Background(), raw)
	if err != nil {
		t.Fatalf("optional shape failure should fall back, got %v", err)
	}
	if rec["suggestedStrategy"] != "Wait for confirmation" {
		t.Fatalf("expected default, got %v", rec["suggestedStrategy"])
	}

	// violations inside an optional container still surface
	raw = goodRaw()
	raw["sources"] = []any{map[string]any{"title": "X"}}
	if _, err := s.Validate(context.Background(), raw); err == nil {
		t.Fatalf("expected nested violation to surface through optional parent")
	}
}

func TestValidate_DepthGuard(t *testing.T) {
	s := tradeai.MustNew([]tradeai.Field{
		{Name: "a", Kind: tradeai.KindArray, Required: true, Elem: &tradeai.Field{
			Kind: tradeai.KindArray,
			Elem: &tradeai.Field{Kind: tradeai.KindString},
		}},
	}, tradeai.Options{MaxDepth: 2})

	_, err := s.Validate(context.Background(), map[string]any{"a": []any{[]any{"x"}}})
	vl, ok := tradeai.AsViolations(err)
	if !ok || len(vl) != 1 || vl[0].Code != tradeai.CodeMaxDepthExceeded {
		t.Fatalf("expected max_depth_exceeded, got %v", err)
	}
	if got := vl[0].Path.JSONPointer(); got != "/a/0" {
		t.Fatalf("expected path /a/0, got %s", got)
	}
}

func TestValidate_UnknownKeysIgnored(t *testing.T) {
	s := tradeai.MustNew(signalFields())
	raw := goodRaw()
	raw["extraneous"] = "ignored"

	rec, err := s.Validate(context.Background(), raw)
	if err != nil {
		t.Fatalf("unknown keys should be tolerated: %v", err)
	}
	if _, ok := rec["extraneous"]; ok {
		t.Fatalf("unknown key must not leak into normalized output")
	}
}

func TestValidate_NullFieldTreatedAsAbsent(t *testing.T) {
	s := tradeai.MustNew(signalFields())
	raw := goodRaw()
	raw["suggestedStrategy"] = nil
	raw["entry"] = nil

	_, err := s.Validate(context.Background(), raw)
	vl, ok := tradeai.AsViolations(err)
	if !ok || len(vl) != 1 {
		t.Fatalf("expected single violation, got %v", err)
	}
	if vl[0].Code != tradeai.CodeMissingRequired || vl[0].Path.JSONPointer() != "/entry" {
		t.Fatalf("expected missing_required at /entry, got %v", vl[0])
	}
}
