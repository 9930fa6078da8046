// Package reportspec loads declarative report definitions from YAML and
// turns them into configured reports.
package reportspec

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docforge/internal/doctree"
	"github.com/dgallion1/docforge/internal/report"
	"github.com/dgallion1/docforge/internal/source"
)

// Spec is the YAML shape of a report definition.
type Spec struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`

	TOC       bool `yaml:"toc"`
	HideTitle bool `yaml:"hide_title"`
	TwoColumn bool `yaml:"two_column"`

	Headers   map[string]string `yaml:"headers"`
	CountSlot string            `yaml:"count_slot"`
	Packages  []string          `yaml:"packages"`

	// Root is resolved relative to the spec file when loaded from disk.
	Root string `yaml:"root"`

	Glossary     GlossarySpec  `yaml:"glossary"`
	Outline      string        `yaml:"outline"`
	Bibliography string        `yaml:"bibliography"`
	Sections     []SectionSpec `yaml:"sections"`
}

// GlossarySpec configures glossary extraction.
type GlossarySpec struct {
	Source   string   `yaml:"source"`
	Kinds    []string `yaml:"kinds"`
	Category string   `yaml:"category"`
}

// SectionSpec declares one content step. Exactly one of Text or File must be
// set; Split only applies to Markdown files and replaces the single target
// section with one section per heading.
type SectionSpec struct {
	Title     string `yaml:"title"`
	Text      string `yaml:"text"`
	File      string `yaml:"file"`
	Split     bool   `yaml:"split"`
	PageBreak bool   `yaml:"page_break"`
}

// Parse decodes a spec from YAML and validates it.
func Parse(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse report spec: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a spec file. A relative Root is anchored at the spec file's
// directory so specs are portable.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report spec: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !filepath.IsAbs(s.Root) {
		s.Root = filepath.Join(filepath.Dir(path), s.Root)
	}
	return s, nil
}

// Validate checks the spec for structural problems before any file access.
func (s *Spec) Validate() error {
	for slot := range s.Headers {
		if !doctree.ValidSlot(doctree.Slot(slot)) {
			return fmt.Errorf("report spec: unknown header slot %q", slot)
		}
	}
	if s.CountSlot != "" && !doctree.ValidSlot(doctree.Slot(s.CountSlot)) {
		return fmt.Errorf("report spec: unknown count slot %q", s.CountSlot)
	}
	if s.Glossary.Source != "" && s.Glossary.Category == "" {
		return fmt.Errorf("report spec: glossary source requires a category")
	}
	for i, sec := range s.Sections {
		switch {
		case sec.Text != "" && sec.File != "":
			return fmt.Errorf("report spec: section %d sets both text and file", i)
		case sec.Text == "" && sec.File == "" && !sec.PageBreak:
			return fmt.Errorf("report spec: section %d has no content", i)
		case sec.Split && sec.File == "":
			return fmt.Errorf("report spec: section %d splits without a file", i)
		case sec.Title == "" && !sec.Split:
			return fmt.Errorf("report spec: section %d has no title", i)
		}
		if sec.File != "" && !source.IsSupportedExtension(sec.File) {
			return fmt.Errorf("report spec: section %d: unsupported file %q", i, sec.File)
		}
	}
	return nil
}

// Options maps the spec onto report options.
func (s *Spec) Options() report.Options {
	headers := make(map[doctree.Slot]string, len(s.Headers))
	for slot, val := range s.Headers {
		headers[doctree.Slot(slot)] = val
	}
	return report.Options{
		Title:            s.Title,
		Author:           s.Author,
		TOC:              s.TOC,
		HideTitle:        s.HideTitle,
		TwoColumn:        s.TwoColumn,
		Headers:          headers,
		CountSlot:        doctree.Slot(s.CountSlot),
		Packages:         s.Packages,
		Root:             s.Root,
		GlossarySource:   s.Glossary.Source,
		GlossaryKinds:    s.Glossary.Kinds,
		GlossaryCategory: s.Glossary.Category,
		OutlineSource:    s.Outline,
		BibSource:        s.Bibliography,
	}
}

// Build constructs the report and applies every content step in spec order.
// The outline loads first so declared sections can target outline titles.
func (s *Spec) Build() (*report.Report, error) {
	r, err := report.New(s.Options())
	if err != nil {
		return nil, err
	}
	if s.Outline != "" {
		if err := r.LoadOutline(); err != nil {
			return nil, err
		}
	}
	for i, sec := range s.Sections {
		if err := applySection(r, sec); err != nil {
			return nil, fmt.Errorf("report spec: section %d: %w", i, err)
		}
	}
	return r, nil
}

func applySection(r *report.Report, sec SectionSpec) error {
	switch {
	case sec.Split:
		if err := r.LoadSectionsFromMarkdown(sec.File); err != nil {
			return err
		}
	case sec.File != "":
		if err := r.LoadSectionFromFile(sec.Title, sec.File); err != nil {
			return err
		}
	case sec.Text != "":
		if err := addOrCreate(r, sec.Title, sec.Text); err != nil {
			return err
		}
	}
	if sec.PageBreak {
		if sec.Title == "" {
			return fmt.Errorf("page break requires a title")
		}
		return addOrCreate(r, sec.Title, doctree.PageBreak)
	}
	return nil
}

func addOrCreate(r *report.Report, title, content string) error {
	if _, ok := r.SectionBody(title); ok {
		return r.AddToSection(title, content)
	}
	return r.NewSection(title, content)
}
