package glossary

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Entry is one extracted glossary item.
type Entry struct {
	Kind string // One of the kinds the source was scanned with
	Body string
}

// Glossary maps namespaced labels ("category:label", lower-cased) to entries.
// It is built once per generation pass and must not be mutated afterwards.
type Glossary map[string]Entry

// DefaultKinds are the entry kinds recognized when the caller supplies none.
var DefaultKinds = []string{"definition", "theorem", "corollary", "proposition", "lemma"}

// Build scans source for blocks of the form
//
//	<kind> <label>
//	<body>END
//
// where <kind> is one of kinds and <body> may span multiple lines; the first
// END after a label closes that entry. Keys are lower-cased
// "category:label". A source with no matches yields an empty glossary.
// When two blocks produce the same key, the last match wins.
func Build(source string, kinds []string, category string) Glossary {
	g := make(Glossary)
	if len(kinds) == 0 {
		kinds = DefaultKinds
	}

	quoted := make([]string, len(kinds))
	for i, k := range kinds {
		quoted[i] = regexp.QuoteMeta(k)
	}
	pattern := regexp.MustCompile(`(?s)(` + strings.Join(quoted, "|") + `)\s(.+?)\n(.+?)END`)

	prefix := strings.ToLower(category)
	for _, m := range pattern.FindAllStringSubmatch(source, -1) {
		kind, label, body := m[1], m[2], m[3]
		key := prefix + ":" + strings.ToLower(strings.TrimSpace(label))
		g[key] = Entry{Kind: kind, Body: strings.TrimSpace(body)}
	}
	return g
}

// Load reads path and builds a glossary from its contents.
func Load(path string, kinds []string, category string) (Glossary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}
	return Build(string(data), kinds, category), nil
}
