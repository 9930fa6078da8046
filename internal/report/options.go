package report

import (
	"fmt"

	"github.com/dgallion1/docforge/internal/doctree"
	"github.com/dgallion1/docforge/internal/refs"
)

// Options configures one report run. Every field is plain configuration
// consumed at assembly time; zero values mean "not set".
type Options struct {
	Title  string
	Author string

	TOC       bool // Emit a table of contents
	HideTitle bool // Suppress the generated title block
	TwoColumn bool

	// Headers holds the initial contents of the six header/footer slots.
	Headers map[doctree.Slot]string
	// CountSlot designates the slot that receives the page-count token.
	CountSlot doctree.Slot

	// Packages the caller requires from the backend, in order. The engine
	// may add its own; the assembled list is de-duplicated first-seen.
	Packages []string

	// Root is prepended to every source path below.
	Root string

	GlossarySource   string
	GlossaryKinds    []string // Defaults to glossary.DefaultKinds
	GlossaryCategory string   // Namespace prefix for glossary keys

	OutlineSource string
	BibSource     string

	// Resolver overrides the default inline token resolver.
	Resolver refs.Resolver
}

func (o *Options) validate() error {
	for slot := range o.Headers {
		if !doctree.ValidSlot(slot) {
			return fmt.Errorf("report: unknown header slot %q", slot)
		}
	}
	if o.CountSlot != "" && !doctree.ValidSlot(o.CountSlot) {
		return fmt.Errorf("report: unknown count slot %q", o.CountSlot)
	}
	return nil
}
