package signal

import "regexp"

// levelPattern matches 4-5 digit prices, optionally with decimals, as they
// appear in narrative text for index instruments.
var levelPattern = regexp.MustCompile(`\b\d{4,5}(?:\.\d+)?\b`)

// TechnicalLevels scans narrative text for price-like numbers. It is a
// display heuristic over natural language, nothing more; it never feeds back
// into validation. Duplicates are dropped, first occurrence order kept.
func TechnicalLevels(text string) []string {
	matches := levelPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
