package upatch

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/mfriedel/upatch/cli"
	"github.com/mfriedel/upatch/internal/markdown"
	"github.com/mfriedel/upatch/internal/patcher"
	"github.com/mfriedel/upatch/internal/source"
	"github.com/mfriedel/upatch/internal/ui"
	"github.com/mfriedel/upatch/model"
)

// App wires the patch source, optional markdown extraction, and the hunk
// application engine together.
type App struct {
	cfg            *cli.Config
	sourceProvider *source.Provider
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance.
func New(cfg *cli.Config) *App {
	return &App{
		cfg:            cfg,
		sourceProvider: source.New(cfg.Input),
	}
}

// Execute reads the patch text and applies it, returning the per-file
// summary. Any returned error is fatal for the run; rejected hunks are
// reported through the summary instead.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	content, err := a.sourceProvider.GetContent()
	if err != nil {
		return model.Summary{}, err
	}
	if content == "" {
		ui.Warning("Patch source is empty. Nothing to apply.")
		return model.Summary{}, nil
	}

	if a.cfg.Markdown {
		content, err = markdown.ExtractPatch([]byte(content))
		if err != nil {
			return model.Summary{}, err
		}
	}

	engine := patcher.New(patcher.Options{
		Strip:   a.cfg.Strip,
		Reverse: a.cfg.Reverse,
		Forward: a.cfg.Forward,
		DryRun:  a.cfg.DryRun,
	})
	summary, err = engine.Apply(strings.NewReader(content))
	if err != nil {
		return summary, err
	}

	ui.PrintRunSummary(summary)
	return summary, nil
}
