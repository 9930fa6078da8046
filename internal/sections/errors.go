package sections

import "fmt"

// DuplicateError reports an attempt to create a section whose title is taken.
type DuplicateError struct {
	Title string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("section %q already exists", e.Title)
}

// UnknownError reports an operation against a title that was never created.
type UnknownError struct {
	Title string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("no section titled %q", e.Title)
}

// IndexError reports an out-of-range outline position.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("outline index %d out of range [0,%d)", e.Index, e.Len)
}

// PermutationError reports a reorder request that is not a bijection on the
// outline's index range.
type PermutationError struct {
	Perm []int
	Len  int
}

func (e *PermutationError) Error() string {
	return fmt.Sprintf("ordering %v is not a permutation of [0,%d)", e.Perm, e.Len)
}
