package content

import (
	"strings"
	"testing"
)

func TestExtractTranscript_PrefersArticle(t *testing.T) {
	page := `<html><body>
<section><p>Section text</p></section>
<article><h2>Q3 Earnings Call</h2><p>Operator: Good afternoon.</p><script>var x = 1;</script><p>CEO: Thank you.</p></article>
<article><p>Second article</p></article>
</body></html>`

	got, err := ExtractTranscript(page)
	if err != nil {
		t.Fatalf("ExtractTranscript returned error: %v", err)
	}

	want := "Q3 Earnings Call\nOperator: Good afternoon.\nCEO: Thank you."
	if got != want {
		t.Errorf("ExtractTranscript = %q, want %q", got, want)
	}
}

func TestExtractTranscript_FallsBackToSection(t *testing.T) {
	page := `<html><body><div><p>outside</p></div><section><p>Line one</p><p>Line <b>two</b></p></section></body></html>`

	got, err := ExtractTranscript(page)
	if err != nil {
		t.Fatalf("ExtractTranscript returned error: %v", err)
	}

	want := "Line one\nLine \ntwo"
	if got != want {
		t.Errorf("ExtractTranscript = %q, want %q", got, want)
	}
}

func TestExtractTranscript_FallsBackToParagraphs(t *testing.T) {
	page := `<html><body><div><p>First <i>paragraph</i></p></div><p>Second</p></body></html>`

	got, err := ExtractTranscript(page)
	if err != nil {
		t.Fatalf("ExtractTranscript returned error: %v", err)
	}

	want := "First paragraph\nSecond"
	if got != want {
		t.Errorf("ExtractTranscript = %q, want %q", got, want)
	}
}

func TestExtractTranscript_ParagraphsSkipScripts(t *testing.T) {
	page := `<html><body><p>Hello<script>var x=1;</script></p><p>World<style>p{}</style></p></body></html>`

	got, err := ExtractTranscript(page)
	if err != nil {
		t.Fatalf("ExtractTranscript returned error: %v", err)
	}

	want := "Hello\nWorld"
	if got != want {
		t.Errorf("ExtractTranscript = %q, want %q", got, want)
	}

	inArticle, err := ExtractTranscript(`<html><body><article><p>Hello<script>var x=1;</script></p></article></body></html>`)
	if err != nil {
		t.Fatalf("ExtractTranscript returned error: %v", err)
	}
	if inArticle != "Hello" {
		t.Errorf("Article text = %q, want %q", inArticle, "Hello")
	}
}

func TestExtractTranscript_NoText(t *testing.T) {
	got, err := ExtractTranscript(`<html><body><div>nothing useful</div></body></html>`)
	if err != nil {
		t.Fatalf("ExtractTranscript returned error: %v", err)
	}
	if got != "" {
		t.Errorf("Expected empty transcript, got %q", got)
	}
}

func TestExtractTitle_Fallbacks(t *testing.T) {
	withTitle := `<html><head><title>CRWD Q2 2026 Earnings Call Transcript</title></head><body><p>x</p></body></html>`
	title, err := ExtractTitle(withTitle)
	if err != nil {
		t.Fatalf("ExtractTitle returned error: %v", err)
	}
	if !strings.Contains(title, "CRWD Q2 2026") {
		t.Errorf("Unexpected title %q", title)
	}

	if _, err := ExtractTitle(`<html><body><div></div></body></html>`); err == nil {
		t.Error("Expected error when no title is present, got nil")
	}
}

func TestDefaultExtractor(t *testing.T) {
	var e Extractor = NewDefaultExtractor()

	text, err := e.ExtractTranscript(`<article>hello</article>`)
	if err != nil || text != "hello" {
		t.Errorf("ExtractTranscript = (%q, %v)", text, err)
	}
}
