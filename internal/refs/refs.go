package refs

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/docforge/internal/glossary"
)

// Renderer formats a single glossary entry for inline substitution.
type Renderer interface {
	Render(label string, entry glossary.Entry) (string, error)
}

// Resolver replaces every reference token in text with a rendering of the
// glossary entry it names. Text without tokens is returned unchanged, and
// resolver output is never rescanned for further tokens.
type Resolver interface {
	Resolve(text string, g glossary.Glossary) (string, error)
}

// UnknownReferenceError reports a token with no glossary match.
type UnknownReferenceError struct {
	Token string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown reference %s", e.Token)
}

var tokenPattern = regexp.MustCompile(`\[([A-Za-z][A-Za-z0-9_-]*):([^\[\]\n]+)\]`)

// Inline is the default resolver. It recognizes bracketed tokens of the form
// [category:label], matched case-insensitively against glossary keys, and
// numbers entries with a per-kind counter scoped to the resolver instance.
// Use one Inline per document so counters span all sections.
type Inline struct {
	counts  map[string]int // next ordinal per kind
	numbers map[string]int // assigned ordinal per label
}

func NewInline() *Inline {
	return &Inline{
		counts:  make(map[string]int),
		numbers: make(map[string]int),
	}
}

func (r *Inline) Resolve(text string, g glossary.Glossary) (string, error) {
	matches := tokenPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		token := text[m[0]:m[1]]
		category := strings.ToLower(text[m[2]:m[3]])
		label := strings.ToLower(strings.TrimSpace(text[m[4]:m[5]]))
		key := category + ":" + label

		entry, ok := g[key]
		if !ok {
			return "", &UnknownReferenceError{Token: token}
		}
		rendered, err := r.Render(key, entry)
		if err != nil {
			return "", err
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(rendered)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

// Render formats one entry as "<Kind> <n>: <body>". The ordinal is assigned
// the first time a label is rendered and reused on later references.
func (r *Inline) Render(label string, entry glossary.Entry) (string, error) {
	n, ok := r.numbers[label]
	if !ok {
		r.counts[entry.Kind]++
		n = r.counts[entry.Kind]
		r.numbers[label] = n
	}
	return fmt.Sprintf("%s %d: %s", titleKind(entry.Kind), n, entry.Body), nil
}

func titleKind(kind string) string {
	if kind == "" {
		return ""
	}
	runes := []rune(kind)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
