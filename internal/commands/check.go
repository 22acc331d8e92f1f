package commands

import (
	"context"
	"fmt"

	"github.com/gerunddev/richbridge/internal/styles"
)

// Check verifies that pandoc is installed and usable
func Check(args []string) {
	p, cfg := newProcessor(args)

	version, err := p.Available(context.Background())
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ pandoc not available: " + err.Error()))
		fmt.Println(styles.DimStyle.Render("  Install pandoc or set pandoc_path in " +
			"~/.config/richbridge/config.yaml"))
		return
	}

	fmt.Println(styles.SuccessStyle.Render("✓ " + version))
	fmt.Println(styles.DimStyle.Render("  executable: " + cfg.PandocPath))

	formats, err := p.ListFormats(context.Background())
	if err == nil {
		fmt.Println(styles.DimStyle.Render(fmt.Sprintf("  output formats: %d", len(formats))))
	}
}

// Formats lists the output formats the installed pandoc supports
func Formats(args []string) {
	p, _ := newProcessor(args)

	formats, err := p.ListFormats(context.Background())
	if err != nil {
		fail("Failed to list formats: " + err.Error())
	}

	fmt.Println(styles.TitleStyle.Render("Supported output formats"))
	for _, f := range formats {
		fmt.Println("  " + f)
	}
}
