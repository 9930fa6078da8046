package sections

import "sort"

// Registry owns section bodies and the outline that orders them. Sections
// are created once, grow only by appending, and are never removed.
type Registry struct {
	bodies map[string]string
	order  Outline
}

func NewRegistry() *Registry {
	return &Registry{bodies: make(map[string]string)}
}

// Create registers a new section and appends its title to the outline tail.
func (r *Registry) Create(title, body string) error {
	if _, exists := r.bodies[title]; exists {
		return &DuplicateError{Title: title}
	}
	r.bodies[title] = body
	r.order.push(title)
	return nil
}

// Append concatenates content onto an existing section's body. An empty
// existing body is set rather than prefixed.
func (r *Registry) Append(title, content string) error {
	body, exists := r.bodies[title]
	if !exists {
		return &UnknownError{Title: title}
	}
	if body == "" {
		r.bodies[title] = content
	} else {
		r.bodies[title] = body + content
	}
	return nil
}

// CreateMany registers every entry of m. Titles are taken in sorted order so
// the resulting outline is deterministic. The first duplicate title aborts
// with a DuplicateError; earlier creations stand.
func (r *Registry) CreateMany(m map[string]string) error {
	titles := make([]string, 0, len(m))
	for title := range m {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	for _, title := range titles {
		if err := r.Create(title, m[title]); err != nil {
			return err
		}
	}
	return nil
}

// Body returns the accumulated body for title.
func (r *Registry) Body(title string) (string, bool) {
	body, ok := r.bodies[title]
	return body, ok
}

// Has reports whether a section with the given title exists.
func (r *Registry) Has(title string) bool {
	_, ok := r.bodies[title]
	return ok
}

func (r *Registry) Len() int {
	return len(r.bodies)
}

// Outline exposes the order for reordering. The outline can only be
// permuted through it, so the registered-title set is preserved.
func (r *Registry) Outline() *Outline {
	return &r.order
}
