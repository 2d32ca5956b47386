package tradeai

// Package tradeai validates and normalizes loosely-typed AI model responses
// against declarative schemas. It provides:
//
// - A compiled Schema walked by a single generic coercion algorithm
//   (string/number/boolean/enum/array/object kinds, defaults, constraints)
// - A stable violation model (key/index Path, code, received value, message)
// - All-or-nothing results: a record with any violation is never returned
//   as normalized output
// - Presence metadata so deliberate defaulting stays distinguishable from
//   data the model actually produced
// - A streaming JSON front-end with depth/size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put token decoding under internal/.
// - Place the builder DSL under dsl/, the trade-signal domain schema under
//   signal/, and the CLI under cmd/tradeai.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := buildSchema()
//	rec, err := s.Validate(ctx, decoded)
//	rec, err = tradeai.ParseFrom(ctx, s, tradeai.JSONBytes(data))
//	sig, err := tradeai.Decode[TradeSignal](ctx, s, decoded)
