// Package pipeline orchestrates round-trip conversion between
// structured rich text and textual document formats. Raw text-to-text
// conversion delegates entirely to the pandoc executable; the
// annotation tree builder is involved only when already-structured runs
// must become an inline tree (or back) on the way through.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gerunddev/richbridge/internal/convert"
	"github.com/gerunddev/richbridge/internal/logger"
	"github.com/gerunddev/richbridge/internal/pandoc"
	"github.com/gerunddev/richbridge/internal/richtext"
)

// DefaultPandocPath is the executable looked up on PATH when no
// explicit path is configured.
const DefaultPandocPath = "pandoc"

// runner abstracts one blocking pandoc invocation so tests can swap in
// a fake without a pandoc binary installed.
type runner interface {
	run(ctx context.Context, path string, args []string, stdin string) (stdout, stderr string, err error)
}

// execRunner shells out to the pandoc executable.
type execRunner struct{}

func (execRunner) run(ctx context.Context, path string, args []string, stdin string) (string, string, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Processor converts documents by delegating to pandoc. Construct with
// New and the With* chain; a Processor is immutable once in use and
// safe for concurrent callers.
type Processor struct {
	pandocPath     string
	defaultOptions []string
	cfg            convert.Config
	log            *logger.Logger
	runner         runner
}

// New creates a Processor with the default pandoc path and attribute
// preservation disabled.
func New() *Processor {
	return &Processor{
		pandocPath: DefaultPandocPath,
		log:        logger.Discard(),
		runner:     execRunner{},
	}
}

// WithPandocPath sets the pandoc executable path.
func (p *Processor) WithPandocPath(path string) *Processor {
	if path != "" {
		p.pandocPath = path
	}
	return p
}

// WithDefaultOptions appends options passed to every pandoc call.
func (p *Processor) WithDefaultOptions(opts ...string) *Processor {
	p.defaultOptions = append(p.defaultOptions, opts...)
	return p
}

// WithConfig sets the conversion configuration used on the structured
// rich-text paths.
func (p *Processor) WithConfig(cfg convert.Config) *Processor {
	p.cfg = cfg
	return p
}

// WithLogger sets the logger. The default discards everything.
func (p *Processor) WithLogger(l *logger.Logger) *Processor {
	if l != nil {
		p.log = l
	}
	return p
}

// invoke runs one pandoc call and wraps failures as ConversionError.
func (p *Processor) invoke(ctx context.Context, op string, format Format, args []string, stdin string) (string, error) {
	full := append(append([]string{}, p.defaultOptions...), args...)
	stdout, stderr, err := p.runner.run(ctx, p.pandocPath, full, stdin)
	if err != nil {
		return "", &ConversionError{
			Op:     op,
			Format: format,
			Stderr: strings.TrimSpace(stderr),
			Err:    err,
		}
	}
	return stdout, nil
}

func checkFormat(f Format) error {
	if !f.Supported() {
		return &UnsupportedFormatError{Format: f}
	}
	return nil
}

// Parse converts text in the given format to a pandoc document.
func (p *Processor) Parse(ctx context.Context, text string, format Format) (*pandoc.Document, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}
	out, err := p.invoke(ctx, "parse", format, []string{"-f", string(format), "-t", string(JSON)}, text)
	if err != nil {
		return nil, err
	}
	var doc pandoc.Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		return nil, &ConversionError{Op: "parse", Format: format, Err: err}
	}
	return &doc, nil
}

// Render converts a pandoc document to text in the given format.
func (p *Processor) Render(ctx context.Context, doc *pandoc.Document, format Format) (string, error) {
	if err := checkFormat(format); err != nil {
		return "", err
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", &ConversionError{Op: "render", Format: format, Err: err}
	}
	return p.invoke(ctx, "render", format, []string{"-f", string(JSON), "-t", string(format)}, string(payload))
}

// Convert transcodes text between two formats in a single pandoc pass;
// no intermediate tree is built or inspected.
func (p *Processor) Convert(ctx context.Context, text string, from, to Format) (string, error) {
	if err := checkFormat(from); err != nil {
		return "", err
	}
	if err := checkFormat(to); err != nil {
		return "", err
	}
	start := time.Now()
	p.log.ConversionStarted(string(from), string(to))
	out, err := p.invoke(ctx, "convert", to, []string{"-f", string(from), "-t", string(to)}, text)
	if err != nil {
		p.log.ConversionFailed(string(from), string(to), err)
		return "", err
	}
	p.log.ConversionCompleted(string(from), string(to), time.Since(start))
	return out, nil
}

// RenderRuns builds the inline tree for runs, embeds it in a one
// paragraph document, and renders it to the given format.
func (p *Processor) RenderRuns(ctx context.Context, runs []richtext.Run, format Format) (string, error) {
	inlines := convert.Build(runs, p.cfg)
	doc := pandoc.NewDocument(pandoc.Para{Inlines: inlines})
	return p.Render(ctx, doc, format)
}

// ParseRuns parses text and flattens every paragraph's inline content
// into a single run sequence, with a blank-line run between paragraphs.
func (p *Processor) ParseRuns(ctx context.Context, text string, format Format) ([]richtext.Run, error) {
	doc, err := p.Parse(ctx, text, format)
	if err != nil {
		return nil, err
	}
	var runs []richtext.Run
	for i, inlines := range doc.CollectInlines() {
		if i > 0 {
			runs = append(runs, richtext.NewText("\n\n"))
		}
		runs = append(runs, convert.Flatten(inlines)...)
	}
	if runs == nil {
		runs = []richtext.Run{}
	}
	return runs, nil
}

// ConvertFile converts between files, inferring both formats from the
// file extensions.
func (p *Processor) ConvertFile(ctx context.Context, inputPath, outputPath string) error {
	from, err := FormatFromExtension(inputPath)
	if err != nil {
		return err
	}
	to, err := FormatFromExtension(outputPath)
	if err != nil {
		return err
	}
	p.log.FormatInferred(inputPath, string(from))
	p.log.FormatInferred(outputPath, string(to))
	return p.ConvertFileWithFormat(ctx, inputPath, outputPath, from, to)
}

// ConvertFileWithFormat converts between files with explicit formats.
// The output is written to a temporary file in the destination
// directory and renamed into place, so a failed conversion never leaves
// a partially written output file behind.
func (p *Processor) ConvertFileWithFormat(ctx context.Context, inputPath, outputPath string, from, to Format) error {
	input, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}
	output, err := p.Convert(ctx, string(input), from, to)
	if err != nil {
		return err
	}
	return writeFileAtomic(outputPath, []byte(output))
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()[:8]))
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Available checks that pandoc can be executed and returns its version
// line.
func (p *Processor) Available(ctx context.Context) (string, error) {
	out, err := p.invoke(ctx, "version", "", []string{"--version"}, "")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(out, "\n")
	if line == "" {
		return "", &ConversionError{Op: "version", Err: fmt.Errorf("empty version output")}
	}
	p.log.PandocDetected(line)
	return line, nil
}

// ListFormats returns the output formats the installed pandoc supports.
func (p *Processor) ListFormats(ctx context.Context) ([]string, error) {
	out, err := p.invoke(ctx, "list-formats", "", []string{"--list-output-formats"}, "")
	if err != nil {
		return nil, err
	}
	var formats []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			formats = append(formats, line)
		}
	}
	return formats, nil
}
