package commands

import (
	"context"
	"fmt"

	"github.com/gerunddev/richbridge/internal/pipeline"
	"github.com/gerunddev/richbridge/internal/styles"
)

// Convert converts a document between text formats
func Convert(args []string) {
	inputs := positional(args)
	if len(inputs) == 0 {
		fail("No input file specified (use '-' for stdin)")
	}
	inputPath := inputs[0]
	outputPath := flagValue(args, "--out")

	p, _ := newProcessor(args)
	ctx := context.Background()

	// File-to-file path: formats from flags or extensions, atomic write.
	if outputPath != "" && inputPath != "-" {
		from, to, err := resolveFormats(args, inputPath, outputPath)
		if err != nil {
			fail(err.Error())
		}
		if err := p.ConvertFileWithFormat(ctx, inputPath, outputPath, from, to); err != nil {
			fail("Conversion failed: " + err.Error())
		}
		fmt.Println(styles.SuccessStyle.Render("✓ Converted " + inputPath + " → " + outputPath))
		return
	}

	// Text path: read input, print converted text to stdout.
	from := pipeline.Format(flagValue(args, "--from"))
	if from == "" {
		inferred, err := pipeline.FormatFromExtension(inputPath)
		if err != nil {
			fail("Cannot infer input format; pass --from")
		}
		from = inferred
	}
	to := pipeline.Format(flagValue(args, "--to"))
	if to == "" {
		fail("No target format specified; pass --to")
	}

	out, err := p.Convert(ctx, readInput(inputPath), from, to)
	if err != nil {
		fail("Conversion failed: " + err.Error())
	}
	fmt.Print(out)
}

// resolveFormats picks explicit --from/--to flags over extension
// inference for the file-to-file path
func resolveFormats(args []string, inputPath, outputPath string) (pipeline.Format, pipeline.Format, error) {
	from := pipeline.Format(flagValue(args, "--from"))
	if from == "" {
		inferred, err := pipeline.FormatFromExtension(inputPath)
		if err != nil {
			return "", "", err
		}
		from = inferred
	}
	to := pipeline.Format(flagValue(args, "--to"))
	if to == "" {
		inferred, err := pipeline.FormatFromExtension(outputPath)
		if err != nil {
			return "", "", err
		}
		to = inferred
	}
	return from, to, nil
}
