package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/docforge/internal/backend"
	"github.com/dgallion1/docforge/internal/doctree"
	"github.com/dgallion1/docforge/internal/glossary"
	"github.com/dgallion1/docforge/internal/refs"
	"github.com/dgallion1/docforge/internal/sections"
	"github.com/dgallion1/docforge/internal/source"
)

// Backend package names the engine requests on the caller's behalf.
const (
	pkgHeaders  = "fancyhdr"
	pkgLastPage = "lastpage"
	pkgBib      = "biblatex"
)

// Report assembles a structured document from sections, an outline, and a
// glossary, then hands the result to a rendering backend. One Report serves
// one generation run.
type Report struct {
	opts     Options
	sections *sections.Registry
	resolver refs.Resolver

	gloss       glossary.Glossary
	glossLoaded bool

	outlineLoaded bool
	assembled     bool
}

// New validates opts and returns a Report ready for section registration.
func New(opts Options) (*Report, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = refs.NewInline()
	}
	return &Report{
		opts:     opts,
		sections: sections.NewRegistry(),
		resolver: resolver,
	}, nil
}

// NewSection registers a section with the given initial body. Reference
// tokens in the body are resolved before the section is stored, so the
// registry only ever holds resolved text.
func (r *Report) NewSection(title, body string) error {
	resolved, err := r.Resolve(body)
	if err != nil {
		return err
	}
	return r.sections.Create(title, resolved)
}

// AddToSection resolves reference tokens in content and appends the result
// to an existing section.
func (r *Report) AddToSection(title, content string) error {
	resolved, err := r.Resolve(content)
	if err != nil {
		return err
	}
	return r.sections.Append(title, resolved)
}

// SectionsFromMap registers every entry of m, titles in sorted order.
func (r *Report) SectionsFromMap(m map[string]string) error {
	resolved := make(map[string]string, len(m))
	for title, body := range m {
		body, err := r.Resolve(body)
		if err != nil {
			return err
		}
		resolved[title] = body
	}
	return r.sections.CreateMany(resolved)
}

// LoadSectionFromFile extracts content from a file (any supported format),
// resolves references, and creates the section or appends to it if it
// already exists.
func (r *Report) LoadSectionFromFile(title, file string) error {
	path := filepath.Join(r.opts.Root, file)
	extractor, err := source.ForFile(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open section source: %w", err)
	}
	defer f.Close()

	content, err := extractor.Extract(f, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("extract %s: %w", path, err)
	}
	resolved, err := r.Resolve(content)
	if err != nil {
		return err
	}
	if r.sections.Has(title) {
		return r.sections.Append(title, resolved)
	}
	return r.sections.Create(title, resolved)
}

// LoadSectionsFromMarkdown splits a Markdown file into one section per
// heading and registers them in document order.
func (r *Report) LoadSectionsFromMarkdown(file string) error {
	path := filepath.Join(r.opts.Root, file)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open markdown source: %w", err)
	}
	defer f.Close()

	secs, err := source.SplitMarkdown(f, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("split %s: %w", path, err)
	}
	for _, sec := range secs {
		resolved, err := r.Resolve(sec.Body)
		if err != nil {
			return err
		}
		if r.sections.Has(sec.Title) {
			err = r.sections.Append(sec.Title, resolved)
		} else {
			err = r.sections.Create(sec.Title, resolved)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// MoveSection relocates the section at currentPos to newPos in the outline.
func (r *Report) MoveSection(currentPos, newPos int) error {
	return r.sections.Outline().MoveTo(currentPos, newPos)
}

// ReorderOutline replaces the outline order with outline[perm[i]].
func (r *Report) ReorderOutline(perm []int) error {
	return r.sections.Outline().ReorderBy(perm)
}

// OutlineTitles returns the current section order.
func (r *Report) OutlineTitles() []string {
	return r.sections.Outline().Titles()
}

// SectionBody returns the accumulated body for title.
func (r *Report) SectionBody(title string) (string, bool) {
	return r.sections.Body(title)
}

// LoadGlossary builds the glossary from the configured source. It is also
// invoked lazily by the first resolution when a source is configured.
func (r *Report) LoadGlossary() error {
	if r.opts.GlossarySource == "" {
		return &ConfigError{Option: "glossary source"}
	}
	if r.opts.GlossaryCategory == "" {
		return &ConfigError{Option: "glossary category"}
	}
	g, err := glossary.Load(filepath.Join(r.opts.Root, r.opts.GlossarySource), r.opts.GlossaryKinds, r.opts.GlossaryCategory)
	if err != nil {
		return err
	}
	r.gloss = g
	r.glossLoaded = true
	return nil
}

// Glossary returns the built glossary. It must be treated as read-only.
func (r *Report) Glossary() glossary.Glossary {
	return r.gloss
}

// Resolve replaces reference tokens in text against the glossary. Without a
// configured glossary source, tokens resolve against an empty glossary and
// therefore fail as unknown references.
func (r *Report) Resolve(text string) (string, error) {
	if !r.glossLoaded && r.opts.GlossarySource != "" {
		if err := r.LoadGlossary(); err != nil {
			return "", err
		}
	}
	return r.resolver.Resolve(text, r.gloss)
}

// LoadOutline creates empty sections from the outline source, one title per
// non-empty line, in file order. It runs at most once per Report; Assemble
// calls it if the caller has not.
func (r *Report) LoadOutline() error {
	if r.opts.OutlineSource == "" {
		return &ConfigError{Option: "outline source"}
	}
	if r.outlineLoaded {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(r.opts.Root, r.opts.OutlineSource))
	if err != nil {
		return fmt.Errorf("read outline: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		title := strings.TrimSpace(line)
		if title == "" {
			continue
		}
		if err := r.sections.Create(title, ""); err != nil {
			return err
		}
	}
	r.outlineLoaded = true
	return nil
}

// Assemble linearizes the report into a document tree:
//
//  1. activate header/footer slots, requesting the backend's heading
//     package and, for a designated count slot, its last-page package
//  2. fix the backend package list (first-seen order, de-duplicated)
//  3. carry the table-of-contents flag
//  4. record title/author/date metadata unless the title block is hidden
//  5. create sections from the outline source if one was configured
//  6. emit sections in outline order
//
// Assemble runs once per Report; a second call fails with a StateError.
func (r *Report) Assemble() (*doctree.Document, error) {
	if r.assembled {
		return nil, &StateError{Op: "assemble", Stage: "assembled"}
	}

	doc := &doctree.Document{
		Title:     r.opts.Title,
		Author:    r.opts.Author,
		HideTitle: r.opts.HideTitle,
		TOC:       r.opts.TOC,
		TwoColumn: r.opts.TwoColumn,
	}

	heads := make(map[doctree.Slot]string)
	for slot, val := range r.opts.Headers {
		if val != "" {
			heads[slot] = val
		}
	}

	pkgs := append([]string(nil), r.opts.Packages...)
	if len(heads) > 0 {
		pkgs = append(pkgs, pkgHeaders)
		if r.opts.CountSlot != "" {
			pkgs = append(pkgs, pkgLastPage)
			heads[r.opts.CountSlot] = doctree.PageCountToken
		}
	}
	if r.opts.BibSource != "" {
		pkgs = append(pkgs, pkgBib)
		doc.Bibliography = filepath.Join(r.opts.Root, r.opts.BibSource)
	}
	doc.Packages = dedupe(pkgs)

	if len(heads) > 0 {
		doc.Headers = heads
	}

	if !r.opts.HideTitle {
		doc.Date = time.Now()
	}

	if r.opts.OutlineSource != "" && !r.outlineLoaded {
		if err := r.LoadOutline(); err != nil {
			return nil, err
		}
	}

	for _, title := range r.sections.Outline().Titles() {
		body, _ := r.sections.Body(title)
		doc.Sections = append(doc.Sections, doctree.Section{Title: title, Body: body})
	}

	r.assembled = true
	return doc, nil
}

// Generate assembles the document and renders it with the given backend,
// writing the output to w.
func (r *Report) Generate(ctx context.Context, b backend.Backend, w io.Writer) error {
	doc, err := r.Assemble()
	if err != nil {
		return err
	}
	return b.Render(ctx, doc, w)
}

// dedupe keeps the first occurrence of each package, preserving order.
func dedupe(pkgs []string) []string {
	seen := make(map[string]bool, len(pkgs))
	var out []string
	for _, p := range pkgs {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
