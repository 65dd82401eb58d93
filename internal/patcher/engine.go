package patcher

import (
	"errors"
	"fmt"
	"io"

	"github.com/mfriedel/upatch/internal/fs"
	"github.com/mfriedel/upatch/internal/ui"
	"github.com/mfriedel/upatch/model"
)

// Options configure a whole patch run.
type Options struct {
	// Strip is the number of leading path components removed from header
	// filenames. Negative values strip them all.
	Strip int
	// Reverse applies the patch as an undo: ranges and line polarity swap.
	Reverse bool
	// Forward treats non-matching deletion/context lines as already applied
	// and skips them instead of failing the hunk.
	Forward bool
	// DryRun reads and reconciles without touching the filesystem.
	DryRun bool
}

// Engine applies a unified-diff patch stream to the files it names.
type Engine struct {
	opts Options
	add  byte // the marker that means "addition" for this run
}

// New builds an Engine. The addition marker is fixed for the whole run so
// reverse application shares the forward code path.
func New(opts Options) *Engine {
	add := byte('+')
	if opts.Reverse {
		add = '-'
	}
	return &Engine{opts: opts, add: add}
}

// FatalError marks conditions that invalidate the whole run, as opposed to
// per-hunk failures which only degrade a single file.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return e.Err.Error() }

func (e *FatalError) Unwrap() error { return e.Err }

func fatalf(format string, args ...interface{}) error {
	return &FatalError{Err: fmt.Errorf(format, args...)}
}

// session tracks streams, cursors and counters while one target file is
// patched.
type session struct {
	src          *LineReader // nil for new files
	srcLine      int         // 1-based, next unread source line
	dstLine      int         // lines written so far
	hunks        int
	failed       int
	copyTrailing bool
	lastDstBegin int
}

// Apply consumes the patch stream file-section by file-section and patches
// each named target. Per-hunk mismatches are recorded in the summary; any
// returned error is fatal for the run.
func (e *Engine) Apply(patch io.Reader) (model.Summary, error) {
	pr := NewLineReader(patch)
	var summary model.Summary

	line, err := pr.Next()
	for err == nil {
		// Scan for the "--- " half of a file-pair header. Anything else
		// ("diff ...", "Only in ...", commit text) is preamble.
		matched := false
		for {
			_, matched = extractFilename(line, e.opts.Strip, "--- ")
			line, err = pr.Next()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					return summary, fatalf("error reading patch: %w", err)
				}
				return summary, nil
			}
			if matched {
				break
			}
		}

		name, ok := extractFilename(line, e.opts.Strip, "+++ ")
		if !ok {
			return summary, fatalf("invalid patch: expected +++ header after ---")
		}

		var result model.FileResult
		result, line, err = e.applyFile(name, pr)
		var ferr *FatalError
		if errors.As(err, &ferr) {
			return summary, ferr
		}
		summary.Files = append(summary.Files, result)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return summary, fatalf("error reading patch: %w", err)
	}
	return summary, nil
}

// applyFile runs the hunk loop for a single file section. It returns the
// first patch line that is not part of this section so the caller can resume
// header scanning, or a *FatalError in the error position when the run must
// stop.
func (e *Engine) applyFile(name string, pr *LineReader) (model.FileResult, string, error) {
	result := model.FileResult{Path: name}

	target, err := fs.OpenTarget(name, e.opts.DryRun)
	if err != nil {
		return result, "", &FatalError{Err: err}
	}
	defer target.Close()

	ui.File("patching file %s", name)

	s := &session{srcLine: 1}
	if target.Src != nil {
		s.src = NewLineReader(target.Src)
	}

	line, err := pr.Next()
	for err == nil {
		srcRange, dstRange, ok := parseHunkHeader(line)
		if !ok {
			break // no more hunks for this file
		}
		if e.opts.Reverse {
			srcRange, dstRange = dstRange, srcRange
		}
		s.hunks++
		s.lastDstBegin = dstRange.begin

		// Copy unmodified lines up to the start of the hunk. A begin line of
		// zero marks a wholly new or wholly deleted file section.
		if srcRange.begin != 0 && dstRange.begin != 0 {
			gap := srcRange.begin - s.srcLine
			left, cerr := copyLines(s.src, target.Dst, gap)
			if cerr != nil {
				return result, "", &FatalError{Err: cerr}
			}
			if left != 0 {
				return result, "", fatalf("%s: file is shorter than the patch expects", name)
			}
			s.srcLine += gap
			s.dstLine += gap
			s.copyTrailing = true
		}

		hunkStart := s.srcLine
		srcLast := s.srcLine + srcRange.count
		dstLast := s.dstLine + dstRange.count
		hunkFailed := false

		for {
			line, err = pr.Next()
			if err != nil {
				break
			}
			if chomp(line) == "" {
				// Whitespace-damaged patches carry bare empty lines where a
				// single-space context line belongs.
				line = " \n"
			}
			marker := line[0]
			if marker != '+' && marker != '-' && marker != ' ' {
				break // end of hunk body
			}
			if hunkFailed {
				// Drain the rest of the failed hunk so the next header scan
				// starts in the right place.
				continue
			}
			payload := line[1:]

			if marker != e.add {
				// Deletion or context line: consume from source and verify.
				if s.srcLine == srcLast {
					break
				}
				lineMatches := false
				if s.src != nil {
					srcLine, serr := s.src.Next()
					if serr == nil {
						s.srcLine++
						lineMatches = chomp(srcLine) == chomp(payload)
					}
				}
				if !lineMatches {
					if e.opts.Forward {
						continue // already applied
					}
					ui.Error("hunk #%d FAILED at %d", s.hunks, hunkStart)
					s.failed++
					hunkFailed = true
					continue
				}
				if marker != ' ' {
					continue // deletion: nothing reaches the destination
				}
			}

			if s.dstLine == dstLast {
				break
			}
			if _, werr := io.WriteString(target.Dst, payload); werr != nil {
				return result, "", fatalf("error writing %s: %w", name, werr)
			}
			s.dstLine++
		}
	}

	if s.copyTrailing {
		if _, cerr := copyLines(s.src, target.Dst, allLines); cerr != nil {
			return result, "", &FatalError{Err: cerr}
		}
	}
	if cerr := target.Close(); cerr != nil {
		return result, "", &FatalError{Err: cerr}
	}

	result.Hunks = s.hunks
	result.FailedHunks = s.failed
	if s.failed > 0 {
		ui.Error("%d out of %d hunks FAILED", s.failed, s.hunks)
		return result, line, err // backup stays for inspection
	}

	if rmErr := target.DiscardBackup(); rmErr != nil {
		return result, "", &FatalError{Err: rmErr}
	}
	if !e.opts.DryRun && (s.dstLine == 0 || s.lastDstBegin == 0) {
		// The patch reduced the file to nothing; treat it as a deletion.
		if rmErr := target.Remove(); rmErr != nil {
			return result, "", &FatalError{Err: rmErr}
		}
	}
	return result, line, err
}
