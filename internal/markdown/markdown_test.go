package markdown

import (
	"strings"
	"testing"
)

func TestExtractPatchCollectsDiffBlocks(t *testing.T) {
	source := strings.Join([]string{
		"Here is the first change:",
		"",
		"```diff",
		"--- a/f.txt",
		"+++ b/f.txt",
		"@@ -1,1 +1,1 @@",
		"-old",
		"+new",
		"```",
		"",
		"Some unrelated code:",
		"",
		"```go",
		"package main",
		"```",
		"",
		"And a second change:",
		"",
		"```patch",
		"--- a/g.txt",
		"+++ b/g.txt",
		"@@ -1,1 +1,1 @@",
		"-x",
		"+y",
		"```",
	}, "\n")

	patch, err := ExtractPatch([]byte(source))
	if err != nil {
		t.Fatalf("ExtractPatch returned error: %v", err)
	}

	if !strings.Contains(patch, "+++ b/f.txt") || !strings.Contains(patch, "+++ b/g.txt") {
		t.Fatalf("expected both diff blocks, got %q", patch)
	}
	if strings.Contains(patch, "package main") {
		t.Fatalf("non-diff block leaked into the patch: %q", patch)
	}
}

func TestExtractPatchPreservesBodyMarkers(t *testing.T) {
	source := "```diff\n@@ -1,2 +1,2 @@\n keep\n-old\n+new\n```\n"

	patch, err := ExtractPatch([]byte(source))
	if err != nil {
		t.Fatalf("ExtractPatch returned error: %v", err)
	}
	if patch != "@@ -1,2 +1,2 @@\n keep\n-old\n+new\n" {
		t.Fatalf("unexpected patch text: %q", patch)
	}
}

func TestExtractPatchNoBlocks(t *testing.T) {
	if _, err := ExtractPatch([]byte("just prose, no fences")); err == nil {
		t.Fatal("expected an error when no diff blocks are present")
	}
}
