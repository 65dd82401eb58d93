package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Strip    int
	Input    string
	Reverse  bool
	Forward  bool
	DryRun   bool
	Markdown bool
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	// Define flags
	pflag.IntVarP(&cfg.Strip, "strip", "p", -1, "Strip this many leading path components from header filenames (negative strips all).")
	pflag.StringVarP(&cfg.Input, "input", "i", "-", "Read the patch from this file. '-' means stdin, or the clipboard when stdin is a terminal.")
	pflag.BoolVar(&cfg.DryRun, "dry-run", false, "Check whether the patch would apply without touching any file.")
	pflag.BoolVarP(&cfg.Markdown, "markdown", "m", false, "Extract the patch from fenced diff code blocks in markdown input.")

	// Mutually exclusive application modes
	pflag.BoolVarP(&cfg.Reverse, "reverse", "R", false, "Apply the patch in reverse, undoing a previous application.")
	pflag.BoolVarP(&cfg.Forward, "forward", "N", false, "Skip hunks that appear to be already applied instead of failing them.")

	pflag.Usage = func() {
		fmt.Println("Usage: upatch [flags]")
		fmt.Println("\nApply a unified diff to the files it names.")
		fmt.Println("\nExample: upatch -p1 -i changes.patch")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	// Validate mutually exclusive flags
	if cfg.Reverse && cfg.Forward {
		return nil, fmt.Errorf("error: --reverse and --forward are mutually exclusive")
	}

	return cfg, nil
}
