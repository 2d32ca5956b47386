package signal_test

import (
	"context"
	"reflect"
	"testing"

	tradeai "github.com/Rupeshcybo/Trade-With-Ai"
	"github.com/Rupeshcybo/Trade-With-Ai/signal"
)

func TestParse_FullSignal(t *testing.T) {
	sig, err := signal.Parse(context.Background(), map[string]any{
		"signal":        "LONG",
		"entry":         "48500-48550",
		"sl":            "48350",
		"targets":       "48750, 49000",
		"confidence":    float64(78),
		"reason":        "breakout with rising volume",
		"marketRegime":  "TRENDING",
		"newsSentiment": "NEUTRAL",
		"sources": []any{
			map[string]any{"title": "Fed minutes", "uri": "https://example.com/fed"},
		},
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sig.Signal != signal.SignalLong || sig.Confidence != 78 {
		t.Fatalf("unexpected signal: %+v", sig)
	}
	if sig.SuggestedStrategy != signal.DefaultStrategy {
		t.Fatalf("expected default strategy, got %q", sig.SuggestedStrategy)
	}
	if len(sig.Sources) != 1 || sig.Sources[0].URI != "https://example.com/fed" {
		t.Fatalf("unexpected sources: %+v", sig.Sources)
	}
}

func TestParse_RejectsUnknownDirection(t *testing.T) {
	_, err := signal.Parse(context.Background(), map[string]any{"signal": "BUY"})
	vl, ok := tradeai.AsViolations(err)
	if !ok {
		t.Fatalf("expected violations, got %v", err)
	}
	if vl[0].Code != tradeai.CodeNotInEnum || vl[0].Path.JSONPointer() != "/signal" {
		t.Fatalf("expected not_in_enum at /signal first, got %v", vl[0])
	}
}

func TestParseText_FencedModelOutput(t *testing.T) {
	text := "Here is my analysis of the chart.\n\n```json\n" + `{
		"signal": "SHORT",
		"entry": "19850",
		"sl": "19920",
		"targets": "19700",
		"confidence": 64,
		"reason": "double top at resistance",
		"marketRegime": "RANGING",
		"newsSentiment": "NEGATIVE"
	}` + "\n```\n\nTrade carefully."
	sig, err := signal.ParseText(context.Background(), text)
	if err != nil {
		t.Fatalf("parse text: %v", err)
	}
	if sig.Signal != signal.SignalShort || sig.Entry != "19850" {
		t.Fatalf("unexpected signal: %+v", sig)
	}
}

func TestParseText_NoJSON(t *testing.T) {
	if _, err := signal.ParseText(context.Background(), "no trade today, market closed"); err == nil {
		t.Fatalf("expected error for prose without JSON")
	}
}

func TestExtractJSON_BareBraces(t *testing.T) {
	payload, ok := signal.ExtractJSON(`leading text {"a": 1} trailing`)
	if !ok || payload != `{"a": 1}` {
		t.Fatalf("expected bare object extraction, got %q ok=%v", payload, ok)
	}
	if _, ok := signal.ExtractJSON("nothing here"); ok {
		t.Fatalf("expected extraction failure")
	}
}

func TestTechnicalLevels(t *testing.T) {
	text := "Support sits at 48350 and again at 48350; resistance near 49120.5. RSI is 62."
	got := signal.TechnicalLevels(text)
	want := []string{"48350", "49120.5"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if signal.TechnicalLevels("no levels in sight") != nil {
		t.Fatalf("expected nil for text without levels")
	}
}
