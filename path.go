package tradeai

import (
	"strconv"
	"strings"
)

// Segment is one step of a field path: either a map key or an array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key builds a key segment.
func Key(name string) Segment { return Segment{key: name} }

// Index builds an array index segment.
func Index(i int) Segment { return Segment{index: i, isIndex: true} }

// IsIndex reports whether the segment addresses an array element.
func (s Segment) IsIndex() bool { return s.isIndex }

// KeyName returns the map key for a key segment ("" for index segments).
func (s Segment) KeyName() string { return s.key }

// ArrayIndex returns the element index for an index segment (0 otherwise).
func (s Segment) ArrayIndex() int { return s.index }

// String renders the segment without escaping.
func (s Segment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// Path locates a value inside a record. The zero value addresses the root.
// Paths are immutable: Child and At return extended copies.
type Path []Segment

// Child extends the path with a map key.
func (p Path) Child(name string) Path {
	return append(append(Path{}, p...), Key(name))
}

// At extends the path with an array index.
func (p Path) At(i int) Path {
	return append(append(Path{}, p...), Index(i))
}

// JSONPointer renders the path as an RFC 6901 JSON Pointer.
func (p Path) JSONPointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, seg := range p {
		b.WriteByte('/')
		if seg.isIndex {
			b.WriteString(strconv.Itoa(seg.index))
			continue
		}
		// escape '~' -> '~0', '/' -> '~1' per RFC6901
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(seg.key, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

// String is JSONPointer.
func (p Path) String() string { return p.JSONPointer() }

// Equal reports segment-wise equality.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// ParsePointer converts an RFC 6901 pointer back into a Path. Numeric tokens
// become index segments; everything else becomes a key.
func ParsePointer(ptr string) Path {
	if ptr == "" || ptr == "/" {
		return nil
	}
	ptr = strings.TrimPrefix(ptr, "/")
	var p Path
	for _, tok := range strings.Split(ptr, "/") {
		if i, err := strconv.Atoi(tok); err == nil && i >= 0 {
			p = append(p, Index(i))
			continue
		}
		tok = strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
		p = append(p, Key(tok))
	}
	return p
}
