package tradeai

import (
	"io"
	"sync"

	eng "github.com/Rupeshcybo/Trade-With-Ai/internal/engine"
	srcgojson "github.com/Rupeshcybo/Trade-With-Ai/source/gojson"
	srcjson "github.com/Rupeshcybo/Trade-With-Ai/source/json"
)

// TokenKind enumerates JSON token kinds.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise).
type Token struct {
	Kind   TokenKind
	String string // Stored for key/string tokens.
	Number float64
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic input sources.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The
// default implementation is backed by goccy/go-json and may be swapped with
// SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = goJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the go-json-backed default driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = goJSONDriver{}
	jsonDriverMu.Unlock()
}

// UseStdJSONDriver switches to the encoding/json-backed driver.
func UseStdJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = stdJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// goJSONDriver wraps the goccy/go-json implementation.
type goJSONDriver struct{}

func (goJSONDriver) NewReader(r io.Reader) Source { return sourceFromEngine(srcgojson.NewReader(r)) }
func (goJSONDriver) NewBytes(b []byte) Source     { return sourceFromEngine(srcgojson.NewBytes(b)) }
func (goJSONDriver) Name() string                 { return "go-json" }

// stdJSONDriver wraps the encoding/json implementation.
type stdJSONDriver struct{}

func (stdJSONDriver) NewReader(r io.Reader) Source { return sourceFromEngine(srcjson.NewReader(r)) }
func (stdJSONDriver) NewBytes(b []byte) Source     { return sourceFromEngine(srcjson.NewBytes(b)) }
func (stdJSONDriver) Name() string                 { return "encoding/json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

func sourceFromEngine(inner eng.TokenSource) Source {
	return &engineSourceAdapter{inner: inner}
}

type engineSourceAdapter struct {
	inner eng.TokenSource
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

func fromEngineKind(k eng.Kind) TokenKind {
	switch k {
	case eng.KindBeginObject:
		return TokenBeginObject
	case eng.KindEndObject:
		return TokenEndObject
	case eng.KindBeginArray:
		return TokenBeginArray
	case eng.KindEndArray:
		return TokenEndArray
	case eng.KindKey:
		return TokenKey
	case eng.KindString:
		return TokenString
	case eng.KindNumber:
		return TokenNumber
	case eng.KindBool:
		return TokenBool
	default:
		return TokenNull
	}
}

// engineTokenSource adapts a public Source back into an engine.TokenSource so
// enforcement can wrap drivers supplied by callers.
type engineTokenSource struct {
	inner Source
}

func (s *engineTokenSource) NextToken() (eng.Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: toEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *engineTokenSource) Location() int64 { return s.inner.Location() }

func toEngineKind(k TokenKind) eng.Kind {
	switch k {
	case TokenBeginObject:
		return eng.KindBeginObject
	case TokenEndObject:
		return eng.KindEndObject
	case TokenBeginArray:
		return eng.KindBeginArray
	case TokenEndArray:
		return eng.KindEndArray
	case TokenKey:
		return eng.KindKey
	case TokenString:
		return eng.KindString
	case TokenNumber:
		return eng.KindNumber
	case TokenBool:
		return eng.KindBool
	default:
		return eng.KindNull
	}
}
