package backend

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dgallion1/docforge/internal/doctree"
)

// Backend turns an assembled document into rendered output on w. The
// document is read-only; backends must not mutate it.
type Backend interface {
	Render(ctx context.Context, doc *doctree.Document, w io.Writer) error
}

// TransientError indicates a render failure that can be retried, such as an
// external tool that could not be started.
type TransientError struct {
	Message string
	Err     error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transient render error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("transient render error: %s", e.Message)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err wraps a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
