package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/dgallion1/docforge/internal/doctree"
)

// Command pipes the markup rendition of a document to an external typesetter
// and copies the typeset output to w. The command reads markup on stdin and
// writes its result on stdout.
type Command struct {
	Path string
	Args []string
}

func (c *Command) Render(ctx context.Context, doc *doctree.Document, w io.Writer) error {
	if c.Path == "" {
		return errors.New("backend: typeset command not configured")
	}

	// The typesetter paginates, so it gets the page-count token verbatim.
	var markup bytes.Buffer
	if err := (Markup{KeepPageTokens: true}).Render(ctx, doc, &markup); err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdin = &markup
	cmd.Stdout = w
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("typeset command exited %d: %s", exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
	}
	// Startup failures (missing binary, fork errors) are environmental and
	// worth retrying.
	return &TransientError{Message: "start typeset command", Err: err}
}
