package patcher

import (
	"fmt"
	"io"
	"math"
)

// allLines requests every remaining line from copyLines.
const allLines = math.MaxInt

// copyLines copies up to want lines verbatim from src to dst, terminators
// included, and returns how many of the requested lines were left uncopied.
// Running out of source lines is not an error; a failed write is.
func copyLines(src *LineReader, dst io.Writer, want int) (int, error) {
	for src != nil && want > 0 {
		line, err := src.Next()
		if err != nil {
			break
		}
		if _, err := io.WriteString(dst, line); err != nil {
			return want, fmt.Errorf("error writing to new file: %w", err)
		}
		want--
	}
	return want, nil
}
