package pipeline

import (
	"path/filepath"
	"strings"
)

// Format identifies a textual document format by its pandoc reader and
// writer name.
type Format string

const (
	Markdown   Format = "markdown"
	CommonMark Format = "commonmark"
	GFM        Format = "gfm"
	PlainText  Format = "plain"
	HTML       Format = "html"
	LaTeX      Format = "latex"
	RST        Format = "rst"
	Org        Format = "org"
	DocX       Format = "docx"
	// JSON is the pandoc AST interchange format the pipeline uses
	// internally for parse and render.
	JSON Format = "json"
)

var knownFormats = map[Format]bool{
	Markdown: true, CommonMark: true, GFM: true, PlainText: true,
	HTML: true, LaTeX: true, RST: true, Org: true, DocX: true, JSON: true,
}

// Supported reports whether the format tag has a known pandoc mapping.
func (f Format) Supported() bool {
	return knownFormats[f]
}

// extensionFormats maps file extensions to formats for inference.
var extensionFormats = map[string]Format{
	".md":       Markdown,
	".markdown": Markdown,
	".txt":      PlainText,
	".html":     HTML,
	".htm":      HTML,
	".tex":      LaTeX,
	".rst":      RST,
	".org":      Org,
	".docx":     DocX,
	".json":     JSON,
}

// FormatFromExtension infers a document format from a file path's
// extension. Inference never falls back to a default; an unrecognized
// extension is an UnknownFormatError.
func FormatFromExtension(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensionFormats[ext]; ok {
		return f, nil
	}
	return "", &UnknownFormatError{Path: path}
}
