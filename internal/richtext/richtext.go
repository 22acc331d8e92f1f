// Package richtext defines the flat run model for annotated text as
// emitted by block-based content APIs. A Run is one span of text with a
// single, flat set of formatting annotations; nesting is an output
// concern of the tree builder, never implied by the run itself.
package richtext

// Color is a semantic text color identifier. The zero value is not
// valid; use ColorDefault.
type Color string

const (
	ColorDefault Color = "default"
	ColorGray    Color = "gray"
	ColorBrown   Color = "brown"
	ColorOrange  Color = "orange"
	ColorYellow  Color = "yellow"
	ColorGreen   Color = "green"
	ColorBlue    Color = "blue"
	ColorPurple  Color = "purple"
	ColorPink    Color = "pink"
	ColorRed     Color = "red"

	ColorGrayBackground   Color = "gray_background"
	ColorBrownBackground  Color = "brown_background"
	ColorOrangeBackground Color = "orange_background"
	ColorYellowBackground Color = "yellow_background"
	ColorGreenBackground  Color = "green_background"
	ColorBlueBackground   Color = "blue_background"
	ColorPurpleBackground Color = "purple_background"
	ColorPinkBackground   Color = "pink_background"
	ColorRedBackground    Color = "red_background"
)

var knownColors = map[Color]bool{
	ColorDefault: true,
	ColorGray:    true, ColorBrown: true, ColorOrange: true,
	ColorYellow: true, ColorGreen: true, ColorBlue: true,
	ColorPurple: true, ColorPink: true, ColorRed: true,
	ColorGrayBackground: true, ColorBrownBackground: true,
	ColorOrangeBackground: true, ColorYellowBackground: true,
	ColorGreenBackground: true, ColorBlueBackground: true,
	ColorPurpleBackground: true, ColorPinkBackground: true,
	ColorRedBackground: true,
}

// ParseColor maps a color identifier string to a Color. Unknown
// identifiers fold to ColorDefault.
func ParseColor(s string) Color {
	c := Color(s)
	if knownColors[c] {
		return c
	}
	return ColorDefault
}

// IsBackground reports whether the color is a background variant.
func (c Color) IsBackground() bool {
	switch c {
	case ColorGrayBackground, ColorBrownBackground, ColorOrangeBackground,
		ColorYellowBackground, ColorGreenBackground, ColorBlueBackground,
		ColorPurpleBackground, ColorPinkBackground, ColorRedBackground:
		return true
	}
	return false
}

// Annotations is the flat formatting set attached to a run. All flags
// are independent; mutual exclusion (code vs. the rest) is resolved by
// the tree builder, not here.
type Annotations struct {
	Bold          bool
	Italic        bool
	Strikethrough bool
	Underline     bool
	Code          bool
	Color         Color
}

// DefaultAnnotations returns the unformatted annotation set.
func DefaultAnnotations() Annotations {
	return Annotations{Color: ColorDefault}
}

// IsPlain reports whether the set carries no formatting at all.
func (a Annotations) IsPlain() bool {
	return !a.Bold && !a.Italic && !a.Strikethrough && !a.Underline &&
		!a.Code && (a.Color == ColorDefault || a.Color == "")
}

// RunType discriminates the kinds of rich text a content API emits.
type RunType string

const (
	// RunText is ordinary text content, possibly linked.
	RunText RunType = "text"
	// RunEquation is an inline math expression.
	RunEquation RunType = "equation"
	// RunMention is a reference to another object; only its plain-text
	// rendering survives conversion.
	RunMention RunType = "mention"
)

// Run is one immutable unit of formatted text. Equality is structural.
type Run struct {
	Type        RunType
	Content     string
	Link        string
	Expression  string
	Annotations Annotations
	// BlockID records which source block the run came from. Carried into
	// the output as a portable attribute when attribute preservation is
	// enabled.
	BlockID string
}

// NewText creates a plain text run.
func NewText(content string) Run {
	return Run{
		Type:        RunText,
		Content:     content,
		Annotations: DefaultAnnotations(),
	}
}

// NewStyledText creates a text run with the given annotations.
func NewStyledText(content string, a Annotations) Run {
	if a.Color == "" {
		a.Color = ColorDefault
	}
	return Run{Type: RunText, Content: content, Annotations: a}
}

// NewLinkedText creates a text run pointing at url.
func NewLinkedText(content, url string) Run {
	r := NewText(content)
	r.Link = url
	return r
}

// NewCode creates an inline-code run.
func NewCode(content string) Run {
	r := NewText(content)
	r.Annotations.Code = true
	return r
}

// NewEquation creates an inline math run.
func NewEquation(expression string) Run {
	return Run{
		Type:        RunEquation,
		Expression:  expression,
		Annotations: DefaultAnnotations(),
	}
}

// PlainText returns the run's literal text content regardless of kind.
func (r Run) PlainText() string {
	if r.Type == RunEquation {
		return r.Expression
	}
	return r.Content
}
