package source

import (
	"strings"
	"testing"
)

func TestSplitMarkdown_OneSectionPerHeading(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

## Section B

Section B content.
`
	secs, err := SplitMarkdown(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(secs) != 3 {
		t.Fatalf("expected 3 sections, got %d: %v", len(secs), secs)
	}

	if secs[0].Title != "Title" {
		t.Errorf("expected first title %q, got %q", "Title", secs[0].Title)
	}
	if !strings.Contains(secs[0].Body, "Intro text.") {
		t.Errorf("expected first body to contain %q, got %q", "Intro text.", secs[0].Body)
	}
	if secs[1].Title != "Section A" || !strings.Contains(secs[1].Body, "Section A content.") {
		t.Errorf("unexpected section %+v", secs[1])
	}
	if secs[2].Title != "Section B" || !strings.Contains(secs[2].Body, "Section B content.") {
		t.Errorf("unexpected section %+v", secs[2])
	}
}

func TestSplitMarkdown_NoHeadingsUsesFilename(t *testing.T) {
	input := "Just some plain text.\n\nAnother paragraph."
	secs, err := SplitMarkdown(strings.NewReader(input), "notes.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(secs) != 1 {
		t.Fatalf("expected 1 section, got %d", len(secs))
	}
	if secs[0].Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", secs[0].Title)
	}
	if !strings.Contains(secs[0].Body, "Just some plain text.") {
		t.Errorf("unexpected body %q", secs[0].Body)
	}
}

func TestSplitMarkdown_PreambleBeforeFirstHeading(t *testing.T) {
	input := "Leading remark.\n\n# First\n\nBody.\n"
	secs, err := SplitMarkdown(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(secs) != 2 {
		t.Fatalf("expected 2 sections, got %d: %v", len(secs), secs)
	}
	if secs[0].Title != "doc" || !strings.Contains(secs[0].Body, "Leading remark.") {
		t.Errorf("unexpected preamble section %+v", secs[0])
	}
	if secs[1].Title != "First" {
		t.Errorf("expected title %q, got %q", "First", secs[1].Title)
	}
}

func TestSplitMarkdown_Empty(t *testing.T) {
	secs, err := SplitMarkdown(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(secs) != 0 {
		t.Errorf("expected 0 sections, got %d", len(secs))
	}
}

func TestMarkdownExtractor_KeepsMarkup(t *testing.T) {
	input := "Some **bold** text.\n"
	e := &MarkdownExtractor{}
	got, err := e.Extract(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Some **bold** text." {
		t.Errorf("expected markup preserved, got %q", got)
	}
}
