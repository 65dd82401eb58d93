package patcher

import "strings"

// extractFilename pulls the target filename out of a file-pair header line.
// marker is the 4-byte prefix ("--- " or "+++ ") identifying the header
// kind. strip leading path components are removed from the name; a negative
// strip removes them all, and a strip deeper than the path keeps whatever
// remains. The second return is false when the line is not such a header.
func extractFilename(line string, strip int, marker string) (string, bool) {
	if len(line) < 4 || line[:4] != marker {
		return "", false
	}

	name := line[4:]
	if cut := strings.IndexAny(name, "\t\r\n"); cut >= 0 {
		name = name[:cut]
	}

	// Skip over strip leading directories. A negative strip never counts
	// down to zero, so it consumes every separator.
	for level := strip; level != 0; level-- {
		slash := strings.IndexByte(name, '/')
		if slash < 0 {
			break
		}
		name = name[slash+1:]
	}
	return name, true
}
