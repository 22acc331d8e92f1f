package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gerunddev/richbridge/internal/convert"
	"github.com/gerunddev/richbridge/internal/richtext"
)

// fakeRunner records the invocation and returns canned output.
type fakeRunner struct {
	gotPath  string
	gotArgs  []string
	gotStdin string

	stdout string
	stderr string
	err    error
}

func (f *fakeRunner) run(_ context.Context, path string, args []string, stdin string) (string, string, error) {
	f.gotPath = path
	f.gotArgs = args
	f.gotStdin = stdin
	return f.stdout, f.stderr, f.err
}

func newTestProcessor(fake *fakeRunner) *Processor {
	p := New()
	p.runner = fake
	return p
}

func TestConvertInvokesPandoc(t *testing.T) {
	fake := &fakeRunner{stdout: "<p>hi</p>\n"}
	p := newTestProcessor(fake).WithDefaultOptions("--wrap=none")

	out, err := p.Convert(context.Background(), "hi", Markdown, HTML)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if out != "<p>hi</p>\n" {
		t.Errorf("output = %q", out)
	}
	if fake.gotPath != "pandoc" {
		t.Errorf("executable = %q, want pandoc", fake.gotPath)
	}
	wantArgs := []string{"--wrap=none", "-f", "markdown", "-t", "html"}
	if strings.Join(fake.gotArgs, " ") != strings.Join(wantArgs, " ") {
		t.Errorf("args = %v, want %v", fake.gotArgs, wantArgs)
	}
	if fake.gotStdin != "hi" {
		t.Errorf("stdin = %q, want hi", fake.gotStdin)
	}
}

func TestConvertRejectsUnsupportedFormats(t *testing.T) {
	p := newTestProcessor(&fakeRunner{})

	_, err := p.Convert(context.Background(), "x", Format("wordperfect"), HTML)
	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
	if unsupported.Format != "wordperfect" {
		t.Errorf("error format = %q", unsupported.Format)
	}

	_, err = p.Convert(context.Background(), "x", Markdown, Format("wordperfect"))
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError for target, got %v", err)
	}
}

func TestConvertWrapsPandocFailure(t *testing.T) {
	fake := &fakeRunner{
		stderr: "pandoc: unexpected end of input\n",
		err:    fmt.Errorf("exit status 64"),
	}
	p := newTestProcessor(fake)

	_, err := p.Convert(context.Background(), "x", Markdown, HTML)
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if convErr.Stderr != "pandoc: unexpected end of input" {
		t.Errorf("stderr = %q", convErr.Stderr)
	}
	if !strings.Contains(convErr.Error(), "unexpected end of input") {
		t.Errorf("message %q should carry pandoc stderr", convErr.Error())
	}
}

func TestParseDecodesDocument(t *testing.T) {
	fake := &fakeRunner{
		stdout: `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[` +
			`{"t":"Para","c":[{"t":"Str","c":"hello"},{"t":"Space"},{"t":"Str","c":"world"}]}]}`,
	}
	p := newTestProcessor(fake)

	doc, err := p.Parse(context.Background(), "hello world", Markdown)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	groups := doc.CollectInlines()
	if len(groups) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(groups))
	}
	if got := strings.Join(fake.gotArgs, " "); got != "-f markdown -t json" {
		t.Errorf("args = %q", got)
	}
}

func TestParseWrapsGarbageOutput(t *testing.T) {
	fake := &fakeRunner{stdout: "not json"}
	p := newTestProcessor(fake)

	_, err := p.Parse(context.Background(), "x", Markdown)
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if convErr.Op != "parse" {
		t.Errorf("op = %q, want parse", convErr.Op)
	}
}

func TestRenderRunsEmbedsTree(t *testing.T) {
	fake := &fakeRunner{stdout: "**world**\n"}
	p := newTestProcessor(fake).WithConfig(convert.Config{PreserveAttributes: true})

	runs := []richtext.Run{
		richtext.NewStyledText("world", richtext.Annotations{Bold: true}),
	}
	out, err := p.RenderRuns(context.Background(), runs, Markdown)
	if err != nil {
		t.Fatalf("RenderRuns failed: %v", err)
	}
	if out != "**world**\n" {
		t.Errorf("output = %q", out)
	}
	if got := strings.Join(fake.gotArgs, " "); got != "-f json -t markdown" {
		t.Errorf("args = %q", got)
	}
	if !strings.Contains(fake.gotStdin, `"t":"Strong"`) {
		t.Errorf("stdin should carry the built tree, got %s", fake.gotStdin)
	}
}

func TestParseRunsFlattensParagraphs(t *testing.T) {
	fake := &fakeRunner{
		stdout: `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[` +
			`{"t":"Para","c":[{"t":"Strong","c":[{"t":"Str","c":"bold"}]}]},` +
			`{"t":"Para","c":[{"t":"Str","c":"plain"}]}]}`,
	}
	p := newTestProcessor(fake)

	runs, err := p.ParseRuns(context.Background(), "ignored", Markdown)
	if err != nil {
		t.Fatalf("ParseRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d: %#v", len(runs), runs)
	}
	if !runs[0].Annotations.Bold || runs[0].Content != "bold" {
		t.Errorf("run 0 = %#v, want bold run", runs[0])
	}
	if runs[1].Content != "\n\n" {
		t.Errorf("run 1 = %#v, want paragraph separator", runs[1])
	}
	if runs[2].Content != "plain" {
		t.Errorf("run 2 = %#v, want plain run", runs[2])
	}
}

func TestConvertFileInfersFormats(t *testing.T) {
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "in.md")
	outPath := filepath.Join(tmpDir, "out.html")
	if err := os.WriteFile(inPath, []byte("# title"), 0644); err != nil {
		t.Fatal(err)
	}

	fake := &fakeRunner{stdout: "<h1>title</h1>\n"}
	p := newTestProcessor(fake)

	if err := p.ConvertFile(context.Background(), inPath, outPath); err != nil {
		t.Fatalf("ConvertFile failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data) != "<h1>title</h1>\n" {
		t.Errorf("output = %q", data)
	}
	if got := strings.Join(fake.gotArgs, " "); got != "-f markdown -t html" {
		t.Errorf("args = %q", got)
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(tmpDir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestConvertFileUnknownExtension(t *testing.T) {
	p := newTestProcessor(&fakeRunner{})

	err := p.ConvertFile(context.Background(), "input.xyz", "out.html")
	var unknown *UnknownFormatError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownFormatError, got %v", err)
	}
}

func TestConvertFileFailureLeavesNoOutput(t *testing.T) {
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "in.md")
	outPath := filepath.Join(tmpDir, "out.html")
	if err := os.WriteFile(inPath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	fake := &fakeRunner{err: fmt.Errorf("exit status 1"), stderr: "boom"}
	p := newTestProcessor(fake)

	err := p.ConvertFile(context.Background(), inPath, outPath)
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("failed conversion should not create the output file")
	}
}

func TestAvailableReturnsVersionLine(t *testing.T) {
	fake := &fakeRunner{stdout: "pandoc 3.1.9\nCompiled with pandoc-types 1.23.1\n"}
	p := newTestProcessor(fake).WithPandocPath("/opt/pandoc")

	version, err := p.Available(context.Background())
	if err != nil {
		t.Fatalf("Available failed: %v", err)
	}
	if version != "pandoc 3.1.9" {
		t.Errorf("version = %q", version)
	}
	if fake.gotPath != "/opt/pandoc" {
		t.Errorf("executable = %q", fake.gotPath)
	}
}

func TestAvailableMissingBinary(t *testing.T) {
	fake := &fakeRunner{err: fmt.Errorf("exec: pandoc: not found")}
	p := newTestProcessor(fake)

	_, err := p.Available(context.Background())
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
}

func TestListFormats(t *testing.T) {
	fake := &fakeRunner{stdout: "html\nlatex\nmarkdown\n"}
	p := newTestProcessor(fake)

	formats, err := p.ListFormats(context.Background())
	if err != nil {
		t.Fatalf("ListFormats failed: %v", err)
	}
	if len(formats) != 3 || formats[0] != "html" || formats[2] != "markdown" {
		t.Errorf("formats = %v", formats)
	}
}
