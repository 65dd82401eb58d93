package patcher

import (
	"strconv"
	"strings"
)

// hunkRange is one side of a hunk header: a 1-based begin line and a count.
type hunkRange struct {
	begin int
	count int
}

// parseHunkHeader recognizes the two unified hunk header shapes,
// "@@ -s,c +d,c @@" and "@@ -s +d,c @@". An omitted count means 1. Any line
// not matching either shape is rejected, which is how the engine detects the
// end of a file's hunk list.
func parseHunkHeader(line string) (src, dst hunkRange, ok bool) {
	rest, found := strings.CutPrefix(line, "@@ -")
	if !found {
		return src, dst, false
	}
	src, rest, found = scanRange(rest)
	if !found {
		return src, dst, false
	}
	rest, found = strings.CutPrefix(rest, " +")
	if !found {
		return src, dst, false
	}
	dst, rest, found = scanRange(rest)
	if !found {
		return src, dst, false
	}
	if !strings.HasPrefix(rest, " @@") {
		return src, dst, false
	}
	return src, dst, true
}

func scanRange(s string) (hunkRange, string, bool) {
	r := hunkRange{count: 1}

	n, rest, ok := scanInt(s)
	if !ok {
		return r, s, false
	}
	r.begin = n

	if after, found := strings.CutPrefix(rest, ","); found {
		n, after, ok = scanInt(after)
		if !ok {
			return r, s, false
		}
		r.count = n
		rest = after
	}
	return r, rest, true
}

func scanInt(s string) (int, string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, false
	}
	return n, s[i:], true
}
