package source

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/docforge/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files. Section bodies keep their
// markup; backends decide how to render it.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(src)), nil
}

// SplitMarkdown parses a Markdown document with goldmark and splits it into
// one section per heading, in document order. Heading level is ignored; every
// heading starts a new section. Text before the first heading (or a document
// with no headings at all) becomes a section titled after the filename.
func SplitMarkdown(r io.Reader, filename string) ([]doctree.Section, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var out []doctree.Section
	current := doctree.Section{Title: stem(filename)}
	var body bytes.Buffer

	flush := func() {
		current.Body = strings.TrimSpace(body.String())
		if current.Title != "" || current.Body != "" {
			out = append(out, current)
		}
		body.Reset()
	}

	started := false
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if heading, ok := n.(*ast.Heading); ok {
			if started || body.Len() > 0 {
				flush()
			}
			started = true
			current = doctree.Section{Title: blockText(heading, src)}
			continue
		}
		t := blockText(n, src)
		if t != "" {
			if body.Len() > 0 {
				body.WriteString("\n\n")
			}
			body.WriteString(t)
		}
	}
	if started || body.Len() > 0 {
		flush()
	}

	return out, nil
}

// blockText gets the text content of a goldmark AST node. Leaf blocks keep
// their raw source lines; container blocks collect their children.
func blockText(n ast.Node, src []byte) string {
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines.Len() > 0 {
			var buf bytes.Buffer
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
			return strings.TrimSpace(buf.String())
		}
		var buf bytes.Buffer
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			t := blockText(c, src)
			if t == "" {
				continue
			}
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(t)
		}
		return strings.TrimSpace(buf.String())
	}

	if t, ok := n.(*ast.Text); ok {
		return string(t.Value(src))
	}
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		buf.WriteString(blockText(c, src))
	}
	return strings.TrimSpace(buf.String())
}
