package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for TokenSource to apply max depth checks and max bytes
// truncation in a streaming fashion, before any value is materialized.

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	// MaxDepth bounds container nesting. Zero disables the check.
	MaxDepth int
	// MaxBytes bounds consumed input bytes. Zero disables the check.
	MaxBytes int64
}

// LimitError reports an enforcement breach with the JSON Pointer where it
// happened.
type LimitError struct {
	Code    string // "max_depth_exceeded" or "truncated"
	Path    string
	Message string
}

func (e *LimitError) Error() string { return e.Message + " at " + e.Path }

// Limit codes.
const (
	LimitDepth = "max_depth_exceeded"
	LimitBytes = "truncated"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// WrapWithEnforcement returns a TokenSource that enforces maximum nesting
// depth and maximum consumed bytes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
	depth int
	// lastRawPath is the path computed for the most recent token, used as the
	// base path for a container being opened.
	lastRawPath string
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	path := e.currentPathForToken(tok)
	if path == "" {
		path = "/"
	}

	switch tok.Kind {
	case KindBeginObject:
		e.stack = append(e.stack, frame{kind: kindObject, expectingKey: true, path: e.lastRawPath})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return Token{}, &LimitError{Code: LimitDepth, Path: path, Message: "max depth exceeded"}
		}
	case KindEndObject:
		e.popFrame()
	case KindBeginArray:
		e.stack = append(e.stack, frame{kind: kindArray, path: e.lastRawPath})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return Token{}, &LimitError{Code: LimitDepth, Path: path, Message: "max depth exceeded"}
		}
	case KindEndArray:
		e.popFrame()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, &LimitError{Code: LimitBytes, Path: path, Message: "max bytes exceeded"}
		}
	}

	return tok, nil
}

func (e *enforcingTokenSource) popFrame() {
	if n := len(e.stack); n > 0 {
		e.stack = e.stack[:n-1]
	}
	if e.depth > 0 {
		e.depth--
	}
	e.valueDone()
}

// valueDone marks a completed value inside an object so the next token is
// expected to be a key again.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingTokenSource) currentPathForToken(tok Token) string {
	if len(e.stack) == 0 {
		e.lastRawPath = ""
		if tok.Kind == KindKey {
			e.lastRawPath = joinJSONPointer("", tok.String)
		}
		return e.lastRawPath
	}

	top := &e.stack[len(e.stack)-1]
	var path string
	switch tok.Kind {
	case KindKey:
		path = joinJSONPointer(top.path, tok.String)
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		switch top.kind {
		case kindArray:
			path = joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
		case kindObject:
			if top.pendingKey != "" || !top.expectingKey {
				path = joinJSONPointer(top.path, top.pendingKey)
			} else {
				path = top.path
			}
		}
	default:
		path = top.path
	}

	e.lastRawPath = path
	return path
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
