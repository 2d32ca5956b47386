package jsonschema_test

import (
	"testing"

	tradeai "github.com/Rupeshcybo/Trade-With-Ai"
	"github.com/Rupeshcybo/Trade-With-Ai/jsonschema"
	"github.com/Rupeshcybo/Trade-With-Ai/signal"
)

func TestFromSchema_TradeSignal(t *testing.T) {
	js := jsonschema.FromSchema(signal.Schema)
	if js.Type != "object" {
		t.Fatalf("expected object root, got %q", js.Type)
	}

	sig := js.Properties["signal"]
	if sig == nil || sig.Type != "string" || len(sig.Enum) != 3 {
		t.Fatalf("unexpected signal projection: %+v", sig)
	}

	conf := js.Properties["confidence"]
	if conf == nil || conf.Minimum == nil || *conf.Minimum != 0 || conf.Maximum == nil || *conf.Maximum != 100 {
		t.Fatalf("unexpected confidence projection: %+v", conf)
	}

	reason := js.Properties["reason"]
	if reason == nil || reason.MinLength == nil || *reason.MinLength != 1 {
		t.Fatalf("expected minLength on non-empty string: %+v", reason)
	}

	strat := js.Properties["suggestedStrategy"]
	if strat == nil || strat.Default != "Wait for confirmation" {
		t.Fatalf("expected default carried: %+v", strat)
	}

	src := js.Properties["sources"]
	if src == nil || src.Type != "array" || src.Items == nil || src.Items.Type != "object" {
		t.Fatalf("unexpected sources projection: %+v", src)
	}
	if len(src.Items.Required) != 2 {
		t.Fatalf("expected title and uri required, got %v", src.Items.Required)
	}

	want := []string{"signal", "entry", "sl", "targets", "confidence", "reason", "marketRegime", "newsSentiment"}
	if len(js.Required) != len(want) {
		t.Fatalf("expected %d required, got %v", len(want), js.Required)
	}
	for i, name := range want {
		if js.Required[i] != name {
			t.Fatalf("required[%d]: expected %s, got %s", i, name, js.Required[i])
		}
	}
}

func TestFromSchema_BooleanAndNested(t *testing.T) {
	s := tradeai.MustNew([]tradeai.Field{
		{Name: "flag", Kind: tradeai.KindBoolean, Default: false},
		{Name: "meta", Kind: tradeai.KindObject, Required: true, Fields: []tradeai.Field{
			{Name: "note", Kind: tradeai.KindString, Required: true},
		}},
	})
	js := jsonschema.FromSchema(s)
	if js.Properties["flag"].Type != "boolean" {
		t.Fatalf("expected boolean, got %+v", js.Properties["flag"])
	}
	meta := js.Properties["meta"]
	if meta.Type != "object" || meta.Properties["note"].Type != "string" {
		t.Fatalf("unexpected nested projection: %+v", meta)
	}
}
