package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/gerunddev/richbridge/internal/pipeline"
)

// Preview converts a document to markdown and renders it in the
// terminal
func Preview(args []string) {
	inputs := positional(args)
	if len(inputs) == 0 {
		fail("No input file specified")
	}
	inputPath := inputs[0]

	from := pipeline.Format(flagValue(args, "--from"))
	if from == "" {
		inferred, err := pipeline.FormatFromExtension(inputPath)
		if err != nil {
			fail("Cannot infer input format; pass --from")
		}
		from = inferred
	}

	p, _ := newProcessor(args)
	text := readInput(inputPath)

	// Markdown input needs no pandoc round trip.
	md := text
	if from != pipeline.Markdown && from != pipeline.GFM && from != pipeline.CommonMark {
		converted, err := p.Convert(context.Background(), text, from, pipeline.GFM)
		if err != nil {
			fail("Conversion failed: " + err.Error())
		}
		md = converted
	}

	rendered, err := glamour.Render(md, "dark")
	if err != nil {
		fail("Render failed: " + err.Error())
	}
	fmt.Print(rendered)
}
