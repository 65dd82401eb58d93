package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/mfriedel/upatch/model"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
)

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(os.Stderr, "  "+format+"\n", a...)
}

// File prints the informational per-file line on stdout.
func File(format string, a ...interface{}) {
	fmt.Printf(format+"\n", a...)
}

// PrintRunSummary reports the per-file outcome of a whole patch run.
func PrintRunSummary(s model.Summary) {
	Header("\n--- Patch Summary ---")

	if len(s.Files) == 0 {
		Info("No file sections found in the patch.")
		return
	}

	var clean, failed []model.FileResult
	for _, f := range s.Files {
		if f.FailedHunks > 0 {
			failed = append(failed, f)
		} else {
			clean = append(clean, f)
		}
	}

	if len(clean) > 0 {
		Success("Patched %d file(s) cleanly:", len(clean))
		for _, f := range clean {
			fmt.Fprintf(os.Stderr, "  - %s (%d hunk(s))\n", f.Path, f.Hunks)
		}
	}
	if len(failed) > 0 {
		Error("%d file(s) had rejected hunks:", len(failed))
		for _, f := range failed {
			fmt.Fprintf(os.Stderr, "  - %s (%d out of %d hunk(s) failed)\n", f.Path, f.FailedHunks, f.Hunks)
		}
	}
}
