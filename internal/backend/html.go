package backend

import (
	"bufio"
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dgallion1/docforge/internal/doctree"
)

// HTML renders a document as a standalone HTML page. Section bodies are
// treated as Markdown and converted with goldmark; page breaks become
// horizontal rules.
type HTML struct {
	md goldmark.Markdown
}

func NewHTML() *HTML {
	return &HTML{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (h *HTML) Render(ctx context.Context, doc *doctree.Document, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	title := doc.Title
	if title == "" {
		title = "Document"
	}
	fmt.Fprintf(bw, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", html.EscapeString(title))

	if headerBar := h.slotBar(doc, doctree.HeaderLeft, doctree.HeaderCenter, doctree.HeaderRight); headerBar != "" {
		fmt.Fprintf(bw, "<header>%s</header>\n", headerBar)
	}

	if !doc.HideTitle {
		fmt.Fprintf(bw, "<h1>%s</h1>\n", html.EscapeString(doc.Title))
		if doc.Author != "" {
			fmt.Fprintf(bw, "<p class=\"author\">%s</p>\n", html.EscapeString(doc.Author))
		}
		if !doc.Date.IsZero() {
			fmt.Fprintf(bw, "<p class=\"date\">%s</p>\n", doc.Date.Format("2006-01-02"))
		}
	}

	if doc.TOC && len(doc.Sections) > 0 {
		fmt.Fprintln(bw, "<nav class=\"toc\">\n<ul>")
		for _, sec := range doc.Sections {
			fmt.Fprintf(bw, "<li><a href=\"#%s\">%s</a></li>\n", slugify(sec.Title), html.EscapeString(sec.Title))
		}
		fmt.Fprintln(bw, "</ul>\n</nav>")
	}

	for _, sec := range doc.Sections {
		fmt.Fprintf(bw, "<section id=\"%s\">\n<h2>%s</h2>\n", slugify(sec.Title), html.EscapeString(sec.Title))
		if body := renderBody(sec.Body); body != "" {
			var buf strings.Builder
			if err := h.md.Convert([]byte(body), &buf); err != nil {
				return fmt.Errorf("convert section %q: %w", sec.Title, err)
			}
			bw.WriteString(buf.String())
		}
		fmt.Fprintln(bw, "</section>")
	}

	if footerBar := h.slotBar(doc, doctree.FooterLeft, doctree.FooterCenter, doctree.FooterRight); footerBar != "" {
		fmt.Fprintf(bw, "<footer>%s</footer>\n", footerBar)
	}

	fmt.Fprintln(bw, "</body>\n</html>")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

// slotBar joins the active values of the given slots with a separator.
func (h *HTML) slotBar(doc *doctree.Document, slots ...doctree.Slot) string {
	var parts []string
	for _, slot := range slots {
		if val, ok := doc.Headers[slot]; ok {
			parts = append(parts, html.EscapeString(substituteCount(val)))
		}
	}
	return strings.Join(parts, " &middot; ")
}

// slugify derives an anchor id from a section title.
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
