// Package pandoc models the subset of the Pandoc JSON AST that rich
// text conversion produces and consumes: the inline element catalogue,
// the attribute triple, and a minimal block layer sufficient to embed
// inline content into a document handed to the pandoc executable.
//
// The wire format is pandoc's tagged-pair encoding: every node
// serializes as {"t": <tag>, "c": <content>}; container nodes carry an
// array of children, attribute-bearing nodes carry the
// [identifier, classes, key-value pairs] triple ahead of their payload.
package pandoc

import "strings"

// KeyVal is one key-value attribute pair.
type KeyVal struct {
	Key string
	Val string
}

// Attr is the pandoc attribute triple. The zero value serializes as
// ["", [], []].
type Attr struct {
	Identifier string
	Classes    []string
	KeyVals    []KeyVal
}

// HasClass reports whether s is among the attribute's classes.
func (a Attr) HasClass(s string) bool {
	for _, c := range a.Classes {
		if c == s {
			return true
		}
	}
	return false
}

// Get returns the value for key and whether it was present.
func (a Attr) Get(key string) (string, bool) {
	for _, kv := range a.KeyVals {
		if kv.Key == key {
			return kv.Val, true
		}
	}
	return "", false
}

// IsZero reports whether the triple is entirely empty.
func (a Attr) IsZero() bool {
	return a.Identifier == "" && len(a.Classes) == 0 && len(a.KeyVals) == 0
}

// Target is a link destination.
type Target struct {
	URL   string
	Title string
}

// MathType distinguishes inline from display math.
type MathType string

const (
	InlineMath  MathType = "InlineMath"
	DisplayMath MathType = "DisplayMath"
)

// Inline is one node of the inline element tree. The set of variants is
// closed; consumers switch exhaustively on the concrete type.
type Inline interface {
	inline()
}

// Inlines is a sequence of sibling inline nodes.
type Inlines []Inline

// Str is a literal text fragment containing no whitespace.
type Str struct {
	Text string
}

// Space is a single inter-word space.
type Space struct{}

// SoftBreak is a soft line break, rendered as a space or newline at the
// target format's discretion.
type SoftBreak struct{}

// LineBreak is a hard line break.
type LineBreak struct{}

// Emph is emphasized (italic) content.
type Emph struct {
	Inlines Inlines
}

// Strong is strongly emphasized (bold) content.
type Strong struct {
	Inlines Inlines
}

// Strikeout is struck-through content.
type Strikeout struct {
	Inlines Inlines
}

// Code is an inline code leaf. It never has children; the literal text
// is the whole payload.
type Code struct {
	Attr Attr
	Text string
}

// RawInline is a verbatim fragment in the named target format. Used for
// constructs the AST has no native node for, such as underline.
type RawInline struct {
	Format string
	Text   string
}

// Link wraps its children as the text of a hyperlink.
type Link struct {
	Attr    Attr
	Inlines Inlines
	Target  Target
}

// Span is a generic attributed container. Carries portable metadata
// (color classes, block provenance) that has no dedicated node type.
type Span struct {
	Attr    Attr
	Inlines Inlines
}

// Math is an inline or display math leaf.
type Math struct {
	Type MathType
	Text string
}

func (Str) inline()       {}
func (Space) inline()     {}
func (SoftBreak) inline() {}
func (LineBreak) inline() {}
func (Emph) inline()      {}
func (Strong) inline()    {}
func (Strikeout) inline() {}
func (Code) inline()      {}
func (RawInline) inline() {}
func (Link) inline()      {}
func (Span) inline()      {}
func (Math) inline()      {}

// PlainText extracts the literal text content of an inline sequence,
// descending through containers. RawInline markers contribute nothing:
// they are formatting, not content.
func PlainText(inlines Inlines) string {
	var b strings.Builder
	writePlainText(&b, inlines)
	return b.String()
}

func writePlainText(b *strings.Builder, inlines Inlines) {
	for _, in := range inlines {
		switch n := in.(type) {
		case Str:
			b.WriteString(n.Text)
		case Space:
			b.WriteByte(' ')
		case SoftBreak, LineBreak:
			b.WriteByte('\n')
		case Emph:
			writePlainText(b, n.Inlines)
		case Strong:
			writePlainText(b, n.Inlines)
		case Strikeout:
			writePlainText(b, n.Inlines)
		case Code:
			b.WriteString(n.Text)
		case Link:
			writePlainText(b, n.Inlines)
		case Span:
			writePlainText(b, n.Inlines)
		case Math:
			b.WriteString(n.Text)
		case RawInline:
			// skip
		}
	}
}
