package patcher

import "testing"

func TestExtractFilenameMatchesMarker(t *testing.T) {
	name, ok := extractFilename("+++ b/dir/file.txt\t2024-01-01", 0, "+++ ")
	if !ok {
		t.Fatal("expected a match")
	}
	if name != "b/dir/file.txt" {
		t.Fatalf("unexpected name: %q", name)
	}
}

func TestExtractFilenameRejectsOtherLines(t *testing.T) {
	for _, line := range []string{
		"diff --git a/f b/f",
		"--- a/f",
		"++",
		"",
	} {
		if _, ok := extractFilename(line, 0, "+++ "); ok {
			t.Fatalf("line %q should not match", line)
		}
	}
}

func TestExtractFilenameStripLevels(t *testing.T) {
	const line = "+++ b/dir/sub/file.txt\n"

	cases := []struct {
		strip int
		want  string
	}{
		{0, "b/dir/sub/file.txt"},
		{1, "dir/sub/file.txt"},
		{2, "sub/file.txt"},
		{-1, "file.txt"},
		{10, "file.txt"}, // deeper than the path: keep what remains
	}
	for _, tc := range cases {
		name, ok := extractFilename(line, tc.strip, "+++ ")
		if !ok {
			t.Fatalf("strip %d: expected a match", tc.strip)
		}
		if name != tc.want {
			t.Fatalf("strip %d: got %q, want %q", tc.strip, name, tc.want)
		}
	}
}

func TestExtractFilenameTruncatesAtCarriageReturn(t *testing.T) {
	name, ok := extractFilename("--- a/f.txt\r\n", 1, "--- ")
	if !ok || name != "f.txt" {
		t.Fatalf("got %q, %v", name, ok)
	}
}
