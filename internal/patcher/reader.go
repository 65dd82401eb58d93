package patcher

import (
	"bufio"
	"io"
	"strings"
)

// LineReader yields one line at a time, line terminator included. The final
// line is returned even when it lacks a trailing newline.
type LineReader struct {
	r *bufio.Reader
}

// NewLineReader wraps r in a forward-only line stream.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Next returns the next line, or io.EOF once the stream is exhausted.
func (lr *LineReader) Next() (string, error) {
	line, err := lr.r.ReadString('\n')
	if len(line) > 0 {
		return line, nil
	}
	if err == nil {
		err = io.EOF
	}
	return "", err
}

// chomp strips a single trailing line terminator for comparison purposes.
func chomp(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
