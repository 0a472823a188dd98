package content

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// Extractor pulls the title and transcript text out of a transcript page
type Extractor interface {
	ExtractTitle(htmlContent string) (string, error)
	ExtractTranscript(htmlContent string) (string, error)
}

// DefaultExtractor implements Extractor with the package-level functions
type DefaultExtractor struct{}

// NewDefaultExtractor creates a new default extractor
func NewDefaultExtractor() *DefaultExtractor {
	return &DefaultExtractor{}
}

// ExtractTitle extracts the page title using the default extraction logic
func (e *DefaultExtractor) ExtractTitle(htmlContent string) (string, error) {
	return ExtractTitle(htmlContent)
}

// ExtractTranscript extracts the transcript text using the default extraction logic
func (e *DefaultExtractor) ExtractTranscript(htmlContent string) (string, error) {
	return ExtractTranscript(htmlContent)
}

// transcriptContainers are tried in order; the first one present in the page wins.
var transcriptContainers = []string{"article", "section"}

// ExtractTranscript extracts transcript text from a page.
//
// The first <article> (or, failing that, the first <section>) is used as the
// container and its text nodes are joined with newlines. Pages with neither
// fall back to the text of every <p>, one paragraph per line. The result may
// be empty; deciding whether it is long enough is up to the caller.
func ExtractTranscript(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, selector := range transcriptContainers {
		if container := doc.Find(selector).First(); container.Length() > 0 {
			return JoinedText(container, "\n"), nil
		}
	}

	// Fallback: get all paragraph text
	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		paragraphs = append(paragraphs, JoinedText(s, ""))
	})
	return strings.Join(paragraphs, "\n"), nil
}

// JoinedText returns every text node under the selection joined by sep.
// Script, style and template contents are not page text and are skipped.
func JoinedText(sel *goquery.Selection, sep string) string {
	var parts []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			parts = append(parts, n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "template", "noscript":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}

	return strings.Join(parts, sep)
}

// ExtractTitle extracts the page title from HTML content with fallback mechanisms
func ExtractTitle(htmlContent string) (string, error) {
	// Try readability first
	article, err := readability.FromReader(strings.NewReader(htmlContent), nil)
	if err == nil {
		title := strings.TrimSpace(article.Title)
		if title != "" {
			return title, nil
		}
	}

	// Fallback: Try parsing HTML directly with goquery
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title, nil
	}

	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title, nil
	}

	if title, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title), nil
	}

	return "", fmt.Errorf("title not found in HTML")
}
