package backend

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docforge/internal/doctree"
)

// Markup renders a document as plain text markup: percent-prefixed metadata
// lines, a [toc] directive, and one "# Title" heading per section. It is the
// wire format piped to external typesetters and the fallback output when no
// typesetter is configured.
type Markup struct {
	// KeepPageTokens leaves the page-count placeholders in slot values so a
	// paginating typesetter downstream can fill them. Standalone markup
	// output substitutes them instead.
	KeepPageTokens bool
}

func (m Markup) Render(ctx context.Context, doc *doctree.Document, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	if !doc.HideTitle {
		if doc.Title != "" {
			fmt.Fprintf(bw, "%% title: %s\n", doc.Title)
		}
		if doc.Author != "" {
			fmt.Fprintf(bw, "%% author: %s\n", doc.Author)
		}
		if !doc.Date.IsZero() {
			fmt.Fprintf(bw, "%% date: %s\n", doc.Date.Format("2006-01-02"))
		}
	}
	if len(doc.Packages) > 0 {
		fmt.Fprintf(bw, "%% packages: %s\n", strings.Join(doc.Packages, ", "))
	}
	if doc.TwoColumn {
		fmt.Fprintln(bw, "% layout: twocolumn")
	}
	if doc.Bibliography != "" {
		fmt.Fprintf(bw, "%% bibliography: %s\n", doc.Bibliography)
	}
	for _, slot := range doctree.Slots {
		if val, ok := doc.Headers[slot]; ok {
			if !m.KeepPageTokens {
				val = substituteCount(val)
			}
			fmt.Fprintf(bw, "%% %s: %s\n", slot, val)
		}
	}
	if doc.TOC {
		fmt.Fprintln(bw, "[toc]")
	}

	for _, sec := range doc.Sections {
		fmt.Fprintf(bw, "\n# %s\n", sec.Title)
		if body := renderBody(sec.Body); body != "" {
			fmt.Fprintf(bw, "\n%s\n", body)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write markup: %w", err)
	}
	return nil
}

// renderBody translates inline markers to their markup forms.
func renderBody(body string) string {
	body = strings.ReplaceAll(body, doctree.PageBreak, "\n\n---\n\n")
	return strings.TrimSpace(body)
}

// substituteCount fills the page-count token. The markup stream has no page
// geometry, so a document is a single logical page.
func substituteCount(val string) string {
	val = strings.ReplaceAll(val, "{page}", "1")
	return strings.ReplaceAll(val, "{pages}", "1")
}
