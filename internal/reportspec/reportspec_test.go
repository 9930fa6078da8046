package reportspec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_FullSpec(t *testing.T) {
	data := []byte(`
title: Ops Report
author: Platform Team
toc: true
headers:
  lhead: Acme
count_slot: rfoot
packages: [graphicx]
glossary:
  source: defs.txt
  category: sec
outline: outline.txt
sections:
  - title: Summary
    text: All green.
`)
	s, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Title != "Ops Report" || !s.TOC {
		t.Errorf("unexpected metadata: %+v", s)
	}
	if s.Headers["lhead"] != "Acme" || s.CountSlot != "rfoot" {
		t.Errorf("unexpected headers: %+v", s)
	}
	if len(s.Sections) != 1 || s.Sections[0].Text != "All green." {
		t.Errorf("unexpected sections: %+v", s.Sections)
	}
}

func TestParse_RejectsBadSlot(t *testing.T) {
	_, err := Parse([]byte("headers:\n  topcenter: x\n"))
	if err == nil || !strings.Contains(err.Error(), "header slot") {
		t.Fatalf("expected slot error, got %v", err)
	}
}

func TestValidate_SectionRules(t *testing.T) {
	cases := []struct {
		name string
		sec  SectionSpec
		want string
	}{
		{"both text and file", SectionSpec{Title: "A", Text: "x", File: "a.txt"}, "both"},
		{"no content", SectionSpec{Title: "A"}, "no content"},
		{"split without file", SectionSpec{Split: true, Text: "x"}, "without a file"},
		{"missing title", SectionSpec{Text: "x"}, "no title"},
		{"unsupported file", SectionSpec{Title: "A", File: "a.zip"}, "unsupported"},
	}
	for _, tc := range cases {
		s := &Spec{Sections: []SectionSpec{tc.sec}}
		err := s.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestValidate_GlossaryNeedsCategory(t *testing.T) {
	s := &Spec{Glossary: GlossarySpec{Source: "defs.txt"}}
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for glossary without category")
	}
}

func TestLoad_AnchorsRelativeRoot(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "report.yaml")
	if err := os.WriteFile(specPath, []byte("title: T\nroot: data\n"), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	s, err := Load(specPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Root != filepath.Join(dir, "data") {
		t.Errorf("expected anchored root, got %q", s.Root)
	}
}

func TestBuild_OutlineAndSections(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"outline.txt": "Intro\nResults\n",
		"defs.txt":    "lemma L1\nx>0\nEND\n",
		"report.yaml": `
title: Run Report
glossary:
  source: defs.txt
  category: sec
outline: outline.txt
sections:
  - title: Results
    text: "See [sec:l1]."
`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	s, err := Load(filepath.Join(dir, "report.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	r, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	titles := r.OutlineTitles()
	if len(titles) != 2 || titles[0] != "Intro" || titles[1] != "Results" {
		t.Fatalf("expected outline [Intro Results], got %v", titles)
	}
	body, _ := r.SectionBody("Results")
	if body != "See Lemma 1: x>0." {
		t.Errorf("expected resolved body, got %q", body)
	}
}

func TestBuild_SectionFromFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("Body text."), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	s := &Spec{
		Root:     dir,
		Sections: []SectionSpec{{Title: "Notes", File: "notes.txt"}},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	r, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	body, ok := r.SectionBody("Notes")
	if !ok || body != "Body text." {
		t.Errorf("expected file content, got %q (ok=%v)", body, ok)
	}
}
