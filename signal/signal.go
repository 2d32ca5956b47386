// Package signal defines the trade-signal record produced by the AI analysis
// flow and validates model responses against it.
package signal

import (
	"context"
	"fmt"

	tradeai "github.com/Rupeshcybo/Trade-With-Ai"
	"github.com/Rupeshcybo/Trade-With-Ai/dsl"
)

// Direction literals accepted for the signal field.
const (
	SignalLong    = "LONG"
	SignalShort   = "SHORT"
	SignalNoTrade = "NO TRADE"
)

// Market regime literals.
const (
	RegimeTrending = "TRENDING"
	RegimeRanging  = "RANGING"
	RegimeVolatile = "VOLATILE"
)

// News sentiment literals.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// DefaultStrategy backs suggestedStrategy when the model omits it.
const DefaultStrategy = "Wait for confirmation"

// Source is one grounding citation attached to a signal.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// TradeSignal is the normalized analysis record rendered to the user. A
// TradeSignal obtained through Parse is total: every field holds a concrete,
// constraint-satisfying value.
type TradeSignal struct {
	Signal            string   `json:"signal"`
	Entry             string   `json:"entry"`
	SL                string   `json:"sl"`
	Targets           string   `json:"targets"`
	Confidence        float64  `json:"confidence"`
	Reason            string   `json:"reason"`
	MarketRegime      string   `json:"marketRegime"`
	NewsSentiment     string   `json:"newsSentiment"`
	SuggestedStrategy string   `json:"suggestedStrategy"`
	Sources           []Source `json:"sources"`
}

// Schema is the compiled descriptor for TradeSignal responses.
var Schema = dsl.MustBuild(
	dsl.Enum("signal", SignalLong, SignalShort, SignalNoTrade).Required(),
	dsl.String("entry").Required(),
	dsl.String("sl").Required(),
	dsl.String("targets").Required(),
	dsl.Number("confidence").Range(0, 100).Required(),
	dsl.String("reason").NonEmpty().Required(),
	dsl.Enum("marketRegime", RegimeTrending, RegimeRanging, RegimeVolatile).Required(),
	dsl.Enum("newsSentiment", SentimentPositive, SentimentNegative, SentimentNeutral).Required(),
	dsl.String("suggestedStrategy").Default(DefaultStrategy),
	dsl.Array("sources", dsl.Elem(tradeai.KindObject).Fields(
		dsl.String("title").Required(),
		dsl.String("uri").Required(),
	)).Default([]any{}),
)

// Parse validates an already-decoded model response and maps it onto a
// TradeSignal. Failed validation comes back as a tradeai.ViolationList.
func Parse(ctx context.Context, raw any) (TradeSignal, error) {
	return tradeai.Decode[TradeSignal](ctx, Schema, raw)
}

// ParseJSON decodes and validates a raw JSON document.
func ParseJSON(ctx context.Context, data []byte) (TradeSignal, error) {
	return tradeai.DecodeFrom[TradeSignal](ctx, Schema, tradeai.JSONBytes(data))
}

// ParseText extracts the JSON payload from free-form model output (models
// often wrap it in markdown fences or surrounding prose) and validates it.
func ParseText(ctx context.Context, text string) (TradeSignal, error) {
	payload, ok := ExtractJSON(text)
	if !ok {
		return TradeSignal{}, fmt.Errorf("signal: no JSON object found in model output")
	}
	return ParseJSON(ctx, []byte(payload))
}
