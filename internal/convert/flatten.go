package convert

import (
	"strings"

	"github.com/gerunddev/richbridge/internal/pandoc"
	"github.com/gerunddev/richbridge/internal/richtext"
)

// Flatten is the inverse of Build: it walks an inline tree and emits a
// flat run sequence, one run per maximal span of uniform formatting.
// It understands Build's own encodings (raw <u> bracket pairs, color
// classes, block-id provenance pairs) so no annotation or text content
// is lost on a round trip.
func Flatten(inlines pandoc.Inlines) []richtext.Run {
	f := &flattener{ann: richtext.DefaultAnnotations()}
	f.walk(inlines)
	f.commit()
	if f.runs == nil {
		return []richtext.Run{}
	}
	return f.runs
}

// flattener accumulates text under the current annotation state and
// commits a run at every formatting boundary.
type flattener struct {
	runs    []richtext.Run
	buf     strings.Builder
	ann     richtext.Annotations
	link    string
	blockID string
}

func (f *flattener) commit() {
	if f.buf.Len() == 0 {
		return
	}
	f.runs = append(f.runs, richtext.Run{
		Type:        richtext.RunText,
		Content:     f.buf.String(),
		Link:        f.link,
		Annotations: f.ann,
		BlockID:     f.blockID,
	})
	f.buf.Reset()
}

// scoped commits pending text, runs fn under a modified state, then
// commits again and restores the previous state.
func (f *flattener) scoped(modify func(), fn func()) {
	f.commit()
	savedAnn, savedLink, savedBlockID := f.ann, f.link, f.blockID
	modify()
	fn()
	f.commit()
	f.ann, f.link, f.blockID = savedAnn, savedLink, savedBlockID
}

func (f *flattener) walk(inlines pandoc.Inlines) {
	for _, in := range inlines {
		switch n := in.(type) {
		case pandoc.Str:
			f.buf.WriteString(n.Text)
		case pandoc.Space:
			f.buf.WriteByte(' ')
		case pandoc.SoftBreak:
			f.buf.WriteByte(' ')
		case pandoc.LineBreak:
			f.buf.WriteByte('\n')
		case pandoc.Emph:
			f.scoped(func() { f.ann.Italic = true }, func() { f.walk(n.Inlines) })
		case pandoc.Strong:
			f.scoped(func() { f.ann.Bold = true }, func() { f.walk(n.Inlines) })
		case pandoc.Strikeout:
			f.scoped(func() { f.ann.Strikethrough = true }, func() { f.walk(n.Inlines) })
		case pandoc.Code:
			f.commit()
			ann := f.ann
			ann.Code = true
			f.runs = append(f.runs, richtext.Run{
				Type:        richtext.RunText,
				Content:     n.Text,
				Link:        f.link,
				Annotations: ann,
				BlockID:     f.blockID,
			})
		case pandoc.Math:
			f.commit()
			f.runs = append(f.runs, richtext.Run{
				Type:        richtext.RunEquation,
				Expression:  n.Text,
				Annotations: f.ann,
				BlockID:     f.blockID,
			})
		case pandoc.Link:
			f.scoped(func() { f.link = n.Target.URL }, func() { f.walk(n.Inlines) })
		case pandoc.Span:
			f.scoped(func() { f.applySpanAttr(n.Attr) }, func() { f.walk(n.Inlines) })
		case pandoc.RawInline:
			f.applyRaw(n)
		}
	}
}

// applySpanAttr folds a span's portable attributes back into the
// annotation state: color classes, the legacy "underline" class, and
// block provenance.
func (f *flattener) applySpanAttr(attr pandoc.Attr) {
	for _, class := range attr.Classes {
		if c, ok := parseColorClass(class); ok {
			f.ann.Color = c
		} else if class == "underline" {
			f.ann.Underline = true
		}
	}
	if id, ok := attr.Get(provenanceAttrKey); ok {
		f.blockID = id
	}
}

// applyRaw toggles underline state at Build's raw bracket markers. Any
// other raw markup carries no text content and is dropped.
func (f *flattener) applyRaw(raw pandoc.RawInline) {
	if raw.Format != rawFormat {
		return
	}
	switch raw.Text {
	case rawUnderlineOpen:
		f.commit()
		f.ann.Underline = true
	case rawUnderlineClose:
		f.commit()
		f.ann.Underline = false
	}
}
