package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/richbridge/internal/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "convert", "c":
		commands.Convert(os.Args[2:])
	case "preview", "p":
		commands.Preview(os.Args[2:])
	case "check":
		commands.Check(os.Args[2:])
	case "formats":
		commands.Formats(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("richbridge v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := `richbridge - Convert rich text between document formats via pandoc

Usage:
  richbridge <command> [options]

Commands:
  convert, c  Convert a document between text formats
  preview, p  Render a document as markdown in the terminal
  check       Verify the pandoc installation
  formats     List supported output formats
  version     Show version information
  help        Show this help message

Options:
  --from <format>   Source format (inferred from extension if omitted)
  --to <format>     Target format
  --out <path>      Write output to a file instead of stdout
  --pandoc <path>   Pandoc executable to use
  --preserve        Keep color and provenance attributes
  --no-preserve     Drop color and provenance attributes
  --verbose         Log conversion steps to stderr

Examples:
  richbridge convert notes.md --out notes.html
  richbridge convert - --from markdown --to latex < notes.md
  richbridge preview paper.tex
  richbridge check
`
	fmt.Print(usage)
}
