package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/mfriedel/upatch/internal/ui"
)

// Provider retrieves the raw patch text for a run.
type Provider struct {
	input string
}

// New creates a Provider. input is a file path, or "-" for stdin with a
// clipboard fallback when stdin is a terminal.
func New(input string) *Provider {
	return &Provider{input: input}
}

// GetContent retrieves the patch text from the configured input.
func (p *Provider) GetContent() (string, error) {
	if p.input != "" && p.input != "-" {
		content, err := os.ReadFile(p.input)
		if err != nil {
			return "", fmt.Errorf("failed to read patch %s: %w", p.input, err)
		}
		return string(content), nil
	}

	stat, _ := os.Stdin.Stat()
	isPiped := (stat.Mode() & os.ModeCharDevice) == 0

	if isPiped {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(content), nil
	}

	ui.Header("--- Reading patch from clipboard ---")
	content, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		ui.Warning("Clipboard is empty. Nothing to apply.")
		return "", nil
	}
	return content, nil
}
