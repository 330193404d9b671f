// Package validation normalizes decoded JSON request bodies against declarative
// field rules. Parsing never stops at the first problem: every failing rule is
// recorded as an Issue addressed by the path of the offending value, so callers
// can report all field errors at once.
package validation

import (
	"strconv"
	"strings"
)

// Path locates a value inside a decoded JSON document. Elements are object
// keys (string) or array indices (int).
type Path []any

// Key returns a copy of p extended with an object key.
func (p Path) Key(k string) Path { return p.with(k) }

// Index returns a copy of p extended with an array index.
func (p Path) Index(i int) Path { return p.with(i) }

func (p Path) with(seg any) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// String renders the path in dotted/indexed form, e.g. "shipping.phone" or
// "items[2].quantity". The root path renders as "".
func (p Path) String() string {
	var b strings.Builder
	for _, seg := range p {
		switch s := seg.(type) {
		case int:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s))
			b.WriteByte(']')
		case string:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s)
		}
	}
	return b.String()
}

// First renders only the leading segment, or "" for the root path.
func (p Path) First() string {
	if len(p) == 0 {
		return ""
	}
	return p[:1].String()
}

// Issue is one failed rule.
type Issue struct {
	Path    Path
	Message string
}

// Issues is the ordered failure list of a parse. An empty list means the
// parsed value is valid.
type Issues []Issue

// Messages returns the issue messages in order.
func (is Issues) Messages() []string {
	out := make([]string, 0, len(is))
	for _, i := range is {
		out = append(out, i.Message)
	}
	return out
}

// Join concatenates all messages with sep.
func (is Issues) Join(sep string) string {
	return strings.Join(is.Messages(), sep)
}
