package sections

// Outline is the ordered sequence of section titles that fixes the final
// document order. It always holds exactly the titles registered with the
// owning Registry, each once; reordering operations preserve that set or
// leave the outline untouched on failure.
type Outline struct {
	titles []string
}

// Titles returns a copy of the current order.
func (o *Outline) Titles() []string {
	out := make([]string, len(o.titles))
	copy(out, o.titles)
	return out
}

func (o *Outline) Len() int {
	return len(o.titles)
}

// push appends a title at the tail. Only the Registry may grow the outline.
func (o *Outline) push(title string) {
	o.titles = append(o.titles, title)
}

// MoveTo removes the title at cur and reinserts it so that it occupies
// position new in the resulting sequence. A new position at or past the end
// moves the title to the tail; a negative new position moves it to the head.
func (o *Outline) MoveTo(cur, new int) error {
	if cur < 0 || cur >= len(o.titles) {
		return &IndexError{Index: cur, Len: len(o.titles)}
	}
	title := o.titles[cur]
	rest := append(o.titles[:cur:cur], o.titles[cur+1:]...)
	if new >= len(rest) {
		o.titles = append(rest, title)
		return nil
	}
	if new < 0 {
		new = 0
	}
	out := make([]string, 0, len(rest)+1)
	out = append(out, rest[:new]...)
	out = append(out, title)
	out = append(out, rest[new:]...)
	o.titles = out
	return nil
}

// ReorderBy replaces the outline with titles[perm[i]] for each i. perm must
// be a bijection on the outline's index range; otherwise the outline is left
// unchanged and a PermutationError is returned.
func (o *Outline) ReorderBy(perm []int) error {
	n := len(o.titles)
	if len(perm) != n {
		return &PermutationError{Perm: perm, Len: n}
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return &PermutationError{Perm: perm, Len: n}
		}
		seen[p] = true
	}
	out := make([]string, n)
	for i, p := range perm {
		out[i] = o.titles[p]
	}
	o.titles = out
	return nil
}
