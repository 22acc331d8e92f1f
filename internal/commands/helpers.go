package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/gerunddev/richbridge/internal/config"
	"github.com/gerunddev/richbridge/internal/convert"
	"github.com/gerunddev/richbridge/internal/logger"
	"github.com/gerunddev/richbridge/internal/pipeline"
	"github.com/gerunddev/richbridge/internal/styles"
)

// flagValue scans args for "--name value" and returns the value
func flagValue(args []string, name string) string {
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// hasFlag scans args for a bare "--name" flag
func hasFlag(args []string, name string) bool {
	for _, arg := range args {
		if arg == name {
			return true
		}
	}
	return false
}

// positional returns the non-flag arguments, skipping flag values
func positional(args []string) []string {
	var out []string
	skip := false
	for _, arg := range args {
		if skip {
			skip = false
			continue
		}
		if len(arg) > 2 && arg[:2] == "--" {
			switch arg {
			case "--verbose", "--preserve", "--no-preserve":
				// bare flags take no value
			default:
				skip = true
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}

// fail prints a styled error and exits
func fail(msg string) {
	fmt.Println(styles.ErrorStyle.Render("✗ " + msg))
	os.Exit(1)
}

// newProcessor assembles a Processor from the loaded config and
// command-line overrides
func newProcessor(args []string) (*pipeline.Processor, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		fail("Failed to load config: " + err.Error())
	}

	if path := flagValue(args, "--pandoc"); path != "" {
		cfg.PandocPath = path
	}
	preserve := cfg.PreserveAttributes
	if hasFlag(args, "--preserve") {
		preserve = true
	}
	if hasFlag(args, "--no-preserve") {
		preserve = false
	}

	l := logger.Discard()
	if hasFlag(args, "--verbose") {
		l = logger.NewWithLevel(os.Stderr, log.DebugLevel)
	} else if cfg.LogFile != "" {
		fileLogger, _, err := logger.NewFileLogger(cfg.LogFile)
		if err == nil {
			l = fileLogger
		}
	}
	l.ConfigLoaded(cfg.PandocPath, preserve)

	p := pipeline.New().
		WithPandocPath(cfg.PandocPath).
		WithDefaultOptions(cfg.DefaultOptions...).
		WithConfig(convert.Config{PreserveAttributes: preserve}).
		WithLogger(l)
	return p, cfg
}

// readInput reads a file, or stdin when path is "-"
func readInput(path string) string {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fail("Failed to read stdin: " + err.Error())
		}
		return string(data)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fail("Failed to read " + path + ": " + err.Error())
	}
	return string(data)
}
