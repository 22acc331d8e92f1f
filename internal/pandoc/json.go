package pandoc

import (
	"encoding/json"
	"fmt"
)

// tagged is pandoc's {"t","c"} wire pair. Leaf tags without content
// (Space, SoftBreak, LineBreak) omit "c" entirely.
type tagged struct {
	T string          `json:"t"`
	C json.RawMessage `json:"c,omitempty"`
}

// defaultAPIVersion is emitted when a document was built locally rather
// than parsed from pandoc output.
var defaultAPIVersion = json.RawMessage(`[1,23,1]`)

// Document is a pandoc document: the API version triple, metadata, and
// the block list. Blocks this package does not model are preserved
// verbatim and re-emitted unchanged on marshal.
type Document struct {
	APIVersion json.RawMessage
	Meta       map[string]json.RawMessage
	Blocks     []Block
}

// NewDocument builds a document around the given blocks.
func NewDocument(blocks ...Block) *Document {
	return &Document{Blocks: blocks}
}

// Block is one block-level node. Only inline-bearing paragraph blocks
// are modeled; everything else round-trips as Opaque.
type Block interface {
	block()
}

// Para is a paragraph of inline content.
type Para struct {
	Inlines Inlines
}

// Plain is paragraph-like inline content without paragraph semantics.
type Plain struct {
	Inlines Inlines
}

// Opaque is an unmodeled block kept as raw JSON so that parsing and
// re-rendering a document never drops content.
type Opaque struct {
	T string
	C json.RawMessage
}

func (Para) block()   {}
func (Plain) block()  {}
func (Opaque) block() {}

// CollectInlines returns the inline sequences of all modeled blocks in
// document order.
func (d *Document) CollectInlines() []Inlines {
	var out []Inlines
	for _, b := range d.Blocks {
		switch blk := b.(type) {
		case Para:
			out = append(out, blk.Inlines)
		case Plain:
			out = append(out, blk.Inlines)
		}
	}
	return out
}

// MarshalJSON emits the pandoc document wire format.
func (d *Document) MarshalJSON() ([]byte, error) {
	version := d.APIVersion
	if version == nil {
		version = defaultAPIVersion
	}
	meta := d.Meta
	if meta == nil {
		meta = map[string]json.RawMessage{}
	}
	blocks := make([]json.RawMessage, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		raw, err := marshalBlock(b)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, raw)
	}
	return json.Marshal(struct {
		APIVersion json.RawMessage            `json:"pandoc-api-version"`
		Meta       map[string]json.RawMessage `json:"meta"`
		Blocks     []json.RawMessage          `json:"blocks"`
	}{version, meta, blocks})
}

// UnmarshalJSON parses pandoc JSON output. Paragraph blocks whose
// inline content uses tags outside the modeled set are kept opaque
// rather than rejected.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		APIVersion json.RawMessage            `json:"pandoc-api-version"`
		Meta       map[string]json.RawMessage `json:"meta"`
		Blocks     []json.RawMessage          `json:"blocks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("pandoc: invalid document: %w", err)
	}
	d.APIVersion = raw.APIVersion
	d.Meta = raw.Meta
	d.Blocks = d.Blocks[:0]
	for _, rb := range raw.Blocks {
		b, err := unmarshalBlock(rb)
		if err != nil {
			return err
		}
		d.Blocks = append(d.Blocks, b)
	}
	return nil
}

func marshalBlock(b Block) (json.RawMessage, error) {
	switch blk := b.(type) {
	case Para:
		c, err := marshalInlines(blk.Inlines)
		if err != nil {
			return nil, err
		}
		return json.Marshal(tagged{T: "Para", C: c})
	case Plain:
		c, err := marshalInlines(blk.Inlines)
		if err != nil {
			return nil, err
		}
		return json.Marshal(tagged{T: "Plain", C: c})
	case Opaque:
		return json.Marshal(tagged{T: blk.T, C: blk.C})
	}
	return nil, fmt.Errorf("pandoc: unknown block type %T", b)
}

func unmarshalBlock(data json.RawMessage) (Block, error) {
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("pandoc: invalid block: %w", err)
	}
	switch t.T {
	case "Para":
		if inlines, err := unmarshalInlines(t.C); err == nil {
			return Para{Inlines: inlines}, nil
		}
	case "Plain":
		if inlines, err := unmarshalInlines(t.C); err == nil {
			return Plain{Inlines: inlines}, nil
		}
	}
	return Opaque{T: t.T, C: t.C}, nil
}

// MarshalJSON emits the inline list in wire form.
func (ii Inlines) MarshalJSON() ([]byte, error) {
	return marshalInlines(ii)
}

// UnmarshalJSON parses an inline list in wire form.
func (ii *Inlines) UnmarshalJSON(data []byte) error {
	parsed, err := unmarshalInlines(data)
	if err != nil {
		return err
	}
	*ii = parsed
	return nil
}

func marshalInlines(ii Inlines) (json.RawMessage, error) {
	parts := make([]json.RawMessage, 0, len(ii))
	for _, in := range ii {
		raw, err := marshalInline(in)
		if err != nil {
			return nil, err
		}
		parts = append(parts, raw)
	}
	return json.Marshal(parts)
}

func marshalInline(in Inline) (json.RawMessage, error) {
	switch n := in.(type) {
	case Str:
		return tagContent("Str", n.Text)
	case Space:
		return json.Marshal(tagged{T: "Space"})
	case SoftBreak:
		return json.Marshal(tagged{T: "SoftBreak"})
	case LineBreak:
		return json.Marshal(tagged{T: "LineBreak"})
	case Emph:
		return tagContent("Emph", n.Inlines)
	case Strong:
		return tagContent("Strong", n.Inlines)
	case Strikeout:
		return tagContent("Strikeout", n.Inlines)
	case Code:
		return tagContent("Code", []any{attrWire(n.Attr), n.Text})
	case RawInline:
		return tagContent("RawInline", []any{n.Format, n.Text})
	case Link:
		return tagContent("Link", []any{attrWire(n.Attr), n.Inlines, []string{n.Target.URL, n.Target.Title}})
	case Span:
		return tagContent("Span", []any{attrWire(n.Attr), n.Inlines})
	case Math:
		return tagContent("Math", []any{tagged{T: string(n.Type)}, n.Text})
	}
	return nil, fmt.Errorf("pandoc: unknown inline type %T", in)
}

func tagContent(tag string, content any) (json.RawMessage, error) {
	c, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tagged{T: tag, C: c})
}

// attrWire is the [identifier, classes, [[key, val]...]] triple with
// empty slices in place of nils.
func attrWire(a Attr) []any {
	classes := a.Classes
	if classes == nil {
		classes = []string{}
	}
	kvs := make([][]string, 0, len(a.KeyVals))
	for _, kv := range a.KeyVals {
		kvs = append(kvs, []string{kv.Key, kv.Val})
	}
	return []any{a.Identifier, classes, kvs}
}

func unmarshalInlines(data json.RawMessage) (Inlines, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("pandoc: invalid inline list: %w", err)
	}
	out := make(Inlines, 0, len(raws))
	for _, r := range raws {
		in, err := unmarshalInline(r)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

func unmarshalInline(data json.RawMessage) (Inline, error) {
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("pandoc: invalid inline: %w", err)
	}
	switch t.T {
	case "Str":
		var s string
		if err := json.Unmarshal(t.C, &s); err != nil {
			return nil, fmt.Errorf("pandoc: Str: %w", err)
		}
		return Str{Text: s}, nil
	case "Space":
		return Space{}, nil
	case "SoftBreak":
		return SoftBreak{}, nil
	case "LineBreak":
		return LineBreak{}, nil
	case "Emph":
		inlines, err := unmarshalInlines(t.C)
		if err != nil {
			return nil, err
		}
		return Emph{Inlines: inlines}, nil
	case "Strong":
		inlines, err := unmarshalInlines(t.C)
		if err != nil {
			return nil, err
		}
		return Strong{Inlines: inlines}, nil
	case "Strikeout":
		inlines, err := unmarshalInlines(t.C)
		if err != nil {
			return nil, err
		}
		return Strikeout{Inlines: inlines}, nil
	// Pandoc's native Underline and the script/caps wrappers have no
	// counterpart in this catalogue; they fold into attributed Spans the
	// same way pandoc itself degrades them for formats without support.
	case "Underline", "Superscript", "Subscript", "SmallCaps":
		inlines, err := unmarshalInlines(t.C)
		if err != nil {
			return nil, err
		}
		class := map[string]string{
			"Underline":   "underline",
			"Superscript": "superscript",
			"Subscript":   "subscript",
			"SmallCaps":   "smallcaps",
		}[t.T]
		return Span{Attr: Attr{Classes: []string{class}}, Inlines: inlines}, nil
	case "Code":
		var c struct {
			Attr attrParts
			Text string
		}
		if err := unmarshalPair(t.C, &c.Attr, &c.Text); err != nil {
			return nil, fmt.Errorf("pandoc: Code: %w", err)
		}
		return Code{Attr: c.Attr.attr(), Text: c.Text}, nil
	case "RawInline":
		var format, text string
		if err := unmarshalPair(t.C, &format, &text); err != nil {
			return nil, fmt.Errorf("pandoc: RawInline: %w", err)
		}
		return RawInline{Format: format, Text: text}, nil
	case "Link":
		var parts attrParts
		var inlines Inlines
		var target []string
		if err := unmarshalTriple(t.C, &parts, &inlines, &target); err != nil {
			return nil, fmt.Errorf("pandoc: Link: %w", err)
		}
		link := Link{Attr: parts.attr(), Inlines: inlines}
		if len(target) > 0 {
			link.Target.URL = target[0]
		}
		if len(target) > 1 {
			link.Target.Title = target[1]
		}
		return link, nil
	case "Span":
		var parts attrParts
		var inlines Inlines
		if err := unmarshalPair(t.C, &parts, &inlines); err != nil {
			return nil, fmt.Errorf("pandoc: Span: %w", err)
		}
		return Span{Attr: parts.attr(), Inlines: inlines}, nil
	case "Math":
		var mt tagged
		var text string
		if err := unmarshalPair(t.C, &mt, &text); err != nil {
			return nil, fmt.Errorf("pandoc: Math: %w", err)
		}
		return Math{Type: MathType(mt.T), Text: text}, nil
	}
	return nil, fmt.Errorf("pandoc: unsupported inline tag %q", t.T)
}

// attrParts decodes the wire attribute triple.
type attrParts struct {
	Identifier string
	Classes    []string
	KeyVals    [][]string
}

func (p *attrParts) UnmarshalJSON(data []byte) error {
	return unmarshalTriple(data, &p.Identifier, &p.Classes, &p.KeyVals)
}

func (p attrParts) attr() Attr {
	a := Attr{Identifier: p.Identifier}
	if len(p.Classes) > 0 {
		a.Classes = p.Classes
	}
	for _, kv := range p.KeyVals {
		pair := KeyVal{}
		if len(kv) > 0 {
			pair.Key = kv[0]
		}
		if len(kv) > 1 {
			pair.Val = kv[1]
		}
		a.KeyVals = append(a.KeyVals, pair)
	}
	return a
}

func unmarshalPair(data json.RawMessage, a, b any) error {
	return unmarshalFixed(data, a, b)
}

func unmarshalTriple(data json.RawMessage, a, b, c any) error {
	return unmarshalFixed(data, a, b, c)
}

func unmarshalFixed(data json.RawMessage, dests ...any) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	if len(raws) < len(dests) {
		return fmt.Errorf("expected %d elements, got %d", len(dests), len(raws))
	}
	for i, dest := range dests {
		if err := json.Unmarshal(raws[i], dest); err != nil {
			return err
		}
	}
	return nil
}
