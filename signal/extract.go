package signal

import "strings"

// ExtractJSON pulls the JSON object out of free-form model text. Fenced
// blocks win over bare braces so prose containing stray braces does not
// confuse the scan.
func ExtractJSON(text string) (string, bool) {
	if body, ok := fencedBlock(text); ok {
		text = body
	}
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(text, '}')
	if end < start {
		return "", false
	}
	return text[start : end+1], true
}

func fencedBlock(text string) (string, bool) {
	const fence = "```"
	i := strings.Index(text, fence)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(fence):]
	// Skip the info string ("json", "JSON", ...) up to the first newline.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	}
	j := strings.Index(rest, fence)
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}
