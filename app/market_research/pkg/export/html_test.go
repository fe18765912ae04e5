package export

import (
	"bytes"
	"strings"
	"testing"
)

func TestMarkdownToHTML(t *testing.T) {
	src := "## Market Size\n\n| Segment | Value |\n|---|---|\n| TAM | $10B |\n\n~~old~~ see https://example.com\n\n<script>alert(1)</script>\n"
	got, err := MarkdownToHTML(src)
	if err != nil {
		t.Fatalf("MarkdownToHTML() error = %v", err)
	}
	html := string(got)
	for _, want := range []string{`<h2 id="market-size">Market Size</h2>`, "<table>", "<td>TAM</td>", "<del>old</del>", `<a href="https://example.com">`} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Error("raw HTML was not filtered")
	}
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, "Solar <Panels> Market Analysis", "# Solar Panels Market Analysis\n\nBody."); err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Solar &lt;Panels&gt; Market Analysis</title>") {
		t.Error("title not escaped")
	}
	if !strings.Contains(out, "<p>Body.</p>") {
		t.Error("body not rendered")
	}
}
