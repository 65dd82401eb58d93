package model

// FileResult records the outcome of patching one target file.
type FileResult struct {
	Path        string
	Hunks       int
	FailedHunks int
}

// Summary aggregates per-file results for a whole run.
type Summary struct {
	Files []FileResult
}

// FailedFiles counts files that had at least one rejected hunk.
func (s Summary) FailedFiles() int {
	n := 0
	for _, f := range s.Files {
		if f.FailedHunks > 0 {
			n++
		}
	}
	return n
}
