package glossary

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuild_SingleEntry(t *testing.T) {
	g := Build("lemma foo\nbar baz\nEND", []string{"lemma"}, "Sec")

	if len(g) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(g))
	}
	e, ok := g["sec:foo"]
	if !ok {
		t.Fatalf("expected key %q, have %v", "sec:foo", g)
	}
	if e.Kind != "lemma" {
		t.Errorf("expected kind %q, got %q", "lemma", e.Kind)
	}
	if e.Body != "bar baz" {
		t.Errorf("expected body %q, got %q", "bar baz", e.Body)
	}
}

func TestBuild_MultilineBodyStopsAtFirstEnd(t *testing.T) {
	source := "theorem pythagoras\nIn a right triangle,\na^2 + b^2 = c^2.\nEND\ntheorem euclid\nThere are infinitely many primes.\nEND"
	g := Build(source, []string{"theorem"}, "Math")

	if len(g) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(g))
	}
	if got := g["math:pythagoras"].Body; got != "In a right triangle,\na^2 + b^2 = c^2." {
		t.Errorf("unexpected body %q", got)
	}
	if got := g["math:euclid"].Body; got != "There are infinitely many primes." {
		t.Errorf("unexpected body %q", got)
	}
}

func TestBuild_LabelIsLowerCased(t *testing.T) {
	g := Build("lemma L1\nx>0\nEND", []string{"lemma"}, "Sec")
	if _, ok := g["sec:l1"]; !ok {
		t.Fatalf("expected key %q, have %v", "sec:l1", g)
	}
}

func TestBuild_UnrecognizedKindIgnored(t *testing.T) {
	source := "axiom choice\nEvery set can be well-ordered.\nEND"
	g := Build(source, []string{"lemma", "theorem"}, "Sec")
	if len(g) != 0 {
		t.Errorf("expected 0 entries for unrecognized kind, got %d", len(g))
	}
}

func TestBuild_EmptySourceIsValidEmptyGlossary(t *testing.T) {
	g := Build("", []string{"lemma"}, "Sec")
	if len(g) != 0 {
		t.Errorf("expected empty glossary, got %d entries", len(g))
	}
}

func TestBuild_DuplicateKeyLastMatchWins(t *testing.T) {
	source := "lemma dup\nfirst body\nEND\nlemma dup\nsecond body\nEND"
	g := Build(source, []string{"lemma"}, "Sec")

	if len(g) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(g))
	}
	if got := g["sec:dup"].Body; got != "second body" {
		t.Errorf("expected last match to win, got body %q", got)
	}
}

func TestBuild_DefaultKinds(t *testing.T) {
	source := "definition ring\nA set with two operations.\nEND\ncorollary small\nFollows at once.\nEND"
	g := Build(source, nil, "Alg")

	if len(g) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(g))
	}
	if g["alg:ring"].Kind != "definition" {
		t.Errorf("expected kind %q, got %q", "definition", g["alg:ring"].Kind)
	}
	if g["alg:small"].Kind != "corollary" {
		t.Errorf("expected kind %q, got %q", "corollary", g["alg:small"].Kind)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gloss.txt")
	if err := os.WriteFile(path, []byte("lemma foo\nbar\nEND"), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := Load(path, []string{"lemma"}, "Sec")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g["sec:foo"].Body != "bar" {
		t.Errorf("expected body %q, got %q", "bar", g["sec:foo"].Body)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"), nil, "Sec")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
