package source

import (
	"strings"
	"testing"
)

func TestHTMLExtractor_ContentParagraphs(t *testing.T) {
	input := `<html><head><title>Ignored</title><style>p{}</style></head>
<body>
<nav>menu</nav>
<h1>Heading</h1>
<p>First paragraph.</p>
<p>Second <b>paragraph</b>.</p>
<script>alert(1)</script>
</body></html>`

	e := &HTMLExtractor{}
	got, err := e.Extract(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Heading\n\nFirst paragraph.\n\nSecond paragraph."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestHTMLExtractor_ListItems(t *testing.T) {
	input := `<body><ul><li>one</li><li>two</li></ul></body>`
	e := &HTMLExtractor{}
	got, err := e.Extract(strings.NewReader(input), "list.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "one") || !strings.Contains(got, "two") {
		t.Errorf("expected list items extracted, got %q", got)
	}
}
