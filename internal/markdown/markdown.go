package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractPatch walks the markdown AST and concatenates the contents of
// fenced code blocks tagged "diff" or "patch". Patches pasted out of chat or
// review tools usually arrive wrapped this way.
func ExtractPatch(source []byte) (string, error) {
	var blocks []string

	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var lang string
		if fenced.Info != nil {
			lang = string(fenced.Info.Text(source))
		}
		if lang != "diff" && lang != "patch" {
			return ast.WalkSkipChildren, nil
		}

		var content bytes.Buffer
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			content.Write(line.Value(source))
		}
		blocks = append(blocks, content.String())
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return "", err
	}
	if len(blocks) == 0 {
		return "", fmt.Errorf("no diff code blocks found in markdown input")
	}
	return strings.Join(blocks, ""), nil
}
