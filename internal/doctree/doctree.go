package doctree

import "time"

// Slot names a header or footer position on the page.
type Slot string

const (
	HeaderLeft   Slot = "lhead"
	HeaderCenter Slot = "chead"
	HeaderRight  Slot = "rhead"
	FooterLeft   Slot = "lfoot"
	FooterCenter Slot = "cfoot"
	FooterRight  Slot = "rfoot"
)

// Slots lists every header/footer position in canonical order.
var Slots = []Slot{
	HeaderLeft, HeaderCenter, HeaderRight,
	FooterLeft, FooterCenter, FooterRight,
}

// ValidSlot reports whether s names one of the six slot positions.
func ValidSlot(s Slot) bool {
	for _, known := range Slots {
		if s == known {
			return true
		}
	}
	return false
}

// PageBreak is an inline marker that backends translate into a page break.
const PageBreak = "\f"

// PageCountToken is injected into the designated count slot. Backends with a
// last-page capability substitute the placeholders at render time.
const PageCountToken = "Page {page} of {pages}"

// Section is one titled block of resolved body text.
type Section struct {
	Title string // Section heading (unique within a document)
	Body  string // Accumulated, already-resolved content (may be empty)
}

// Document is the assembled tree handed to a rendering backend: ordered
// sections plus the presentation metadata fixed at assembly time.
type Document struct {
	Title     string
	Author    string
	Date      time.Time // Assembly time; zero when the title block is hidden
	HideTitle bool

	TOC       bool // Emit a table of contents
	TwoColumn bool

	Headers  map[Slot]string // Active header/footer slots only
	Packages []string        // Backend packages, first-seen order, no duplicates

	Bibliography string // Bibliography source path, empty if none

	Sections []Section // Final document order
}

// HasHeaders reports whether any header or footer slot is active.
func (d *Document) HasHeaders() bool {
	return len(d.Headers) > 0
}
