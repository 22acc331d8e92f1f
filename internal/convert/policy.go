package convert

import (
	"fmt"
	"strings"

	"github.com/gerunddev/richbridge/internal/pandoc"
	"github.com/gerunddev/richbridge/internal/richtext"
)

// Wrapper nesting is a fixed total order, outermost first:
//
//	Link > Strong > Emph > Strikeout > Underline > Span > Code
//
// The order is a design decision, not derived from input; applying it
// consistently is what lets adjacent runs sharing an outer formatting
// prefix merge under one wrapper.
type wrapperKind int

const (
	kindLink wrapperKind = iota
	kindStrong
	kindEmph
	kindStrikeout
	kindUnderline
	kindSpan
)

// rawUnderlineOpen and rawUnderlineClose bracket underlined content.
// The destination AST has no native underline node, so it is encoded as
// a matched pair of raw HTML markers around the run's subtree.
const (
	rawFormat         = "html"
	rawUnderlineOpen  = "<u>"
	rawUnderlineClose = "</u>"
	provenanceAttrKey = "block-id"
	colorClassPrefix  = "color-"
)

// pathElem is one wrapper in a run's format path. Two elements merge
// only when their keys match, so links with different targets or spans
// with different attributes never collapse into one wrapper.
type pathElem struct {
	kind   wrapperKind
	key    string
	target pandoc.Target
	attr   pandoc.Attr
}

// formatPath lists the wrappers a run's annotation set implies, in
// nesting order. Code never appears here; it is handled as a leaf.
func formatPath(r richtext.Run, cfg Config, seq int) []pathElem {
	var path []pathElem
	a := r.Annotations
	if r.Link != "" {
		path = append(path, linkElem(r.Link))
	}
	if a.Bold {
		path = append(path, pathElem{kind: kindStrong, key: "strong"})
	}
	if a.Italic {
		path = append(path, pathElem{kind: kindEmph, key: "emph"})
	}
	if a.Strikethrough {
		path = append(path, pathElem{kind: kindStrikeout, key: "strikeout"})
	}
	if a.Underline {
		// The key embeds the run position: underline brackets never merge
		// across runs, each underlined run keeps its own open/close pair.
		path = append(path, pathElem{kind: kindUnderline, key: fmt.Sprintf("underline#%d", seq)})
	}
	if cfg.PreserveAttributes {
		if attr, ok := spanAttr(r); ok {
			path = append(path, pathElem{kind: kindSpan, key: spanKey(attr), attr: attr})
		}
	}
	return path
}

func linkElem(url string) pathElem {
	return pathElem{
		kind:   kindLink,
		key:    "link|" + url,
		target: pandoc.Target{URL: url},
	}
}

// spanAttr derives the portable attribute set for a run: a class for
// any non-default color and a key-value pair for block provenance.
func spanAttr(r richtext.Run) (pandoc.Attr, bool) {
	var attr pandoc.Attr
	if c := r.Annotations.Color; c != "" && c != richtext.ColorDefault {
		attr.Classes = []string{colorClass(c)}
	}
	if r.BlockID != "" {
		attr.KeyVals = []pandoc.KeyVal{{Key: provenanceAttrKey, Val: r.BlockID}}
	}
	return attr, !attr.IsZero()
}

// colorClass maps a color identifier to a class name: "red" becomes
// "color-red", "red_background" becomes "color-red-background".
func colorClass(c richtext.Color) string {
	return colorClassPrefix + strings.ReplaceAll(string(c), "_", "-")
}

// parseColorClass is the inverse of colorClass. The second result is
// false when the class is not a color class.
func parseColorClass(class string) (richtext.Color, bool) {
	name, ok := strings.CutPrefix(class, colorClassPrefix)
	if !ok {
		return richtext.ColorDefault, false
	}
	c := richtext.ParseColor(strings.ReplaceAll(name, "-", "_"))
	if c == richtext.ColorDefault {
		return richtext.ColorDefault, false
	}
	return c, true
}

func spanKey(attr pandoc.Attr) string {
	var b strings.Builder
	b.WriteString("span|")
	for _, c := range attr.Classes {
		b.WriteString(c)
		b.WriteByte(';')
	}
	b.WriteByte('|')
	for _, kv := range attr.KeyVals {
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(kv.Val)
		b.WriteByte(';')
	}
	return b.String()
}

// wrap emits the inline node(s) for one wrapper around children.
// Underline expands to bracket siblings rather than a container node.
func (e pathElem) wrap(children pandoc.Inlines) pandoc.Inlines {
	switch e.kind {
	case kindLink:
		return pandoc.Inlines{pandoc.Link{Inlines: children, Target: e.target}}
	case kindStrong:
		return pandoc.Inlines{pandoc.Strong{Inlines: children}}
	case kindEmph:
		return pandoc.Inlines{pandoc.Emph{Inlines: children}}
	case kindStrikeout:
		return pandoc.Inlines{pandoc.Strikeout{Inlines: children}}
	case kindUnderline:
		out := make(pandoc.Inlines, 0, len(children)+2)
		out = append(out, pandoc.RawInline{Format: rawFormat, Text: rawUnderlineOpen})
		out = append(out, children...)
		return append(out, pandoc.RawInline{Format: rawFormat, Text: rawUnderlineClose})
	case kindSpan:
		return pandoc.Inlines{pandoc.Span{Attr: e.attr, Inlines: children}}
	}
	return children
}
