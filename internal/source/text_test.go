package source

import (
	"strings"
	"testing"
)

func TestTextExtractor_ParagraphNormalization(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\n\n\nSecond paragraph."
	e := &TextExtractor{}
	got, err := e.Extract(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTextExtractor_EmptyInput(t *testing.T) {
	e := &TextExtractor{}
	got, err := e.Extract(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestTextExtractor_WhitespaceOnlyLinesAreBlank(t *testing.T) {
	input := "Para one.\n   \t\nPara two."
	e := &TextExtractor{}
	got, err := e.Extract(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Para one.\n\nPara two."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestForFile_KnownExtensions(t *testing.T) {
	cases := map[string]string{
		"a.txt":  "*source.TextExtractor",
		"a.md":   "*source.MarkdownExtractor",
		"a.csv":  "*source.CSVExtractor",
		"a.html": "*source.HTMLExtractor",
		"a.pdf":  "*source.PDFExtractor",
		"a.docx": "*source.DOCXExtractor",
	}
	for filename := range cases {
		if _, err := ForFile(filename); err != nil {
			t.Errorf("ForFile(%q): unexpected error %v", filename, err)
		}
		if !IsSupportedExtension(filename) {
			t.Errorf("expected %q to be supported", filename)
		}
	}
}

func TestForFile_UnsupportedExtension(t *testing.T) {
	if _, err := ForFile("archive.zip"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("archive.zip") {
		t.Error("expected .zip to be unsupported")
	}
}
