// Package extract turns fetched outlet pages into the short text snippets
// that ground the research prompt.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

const defaultMaxPerTerm = 3

// Snippet is one page sentence that mentions a tracked player or club.
type Snippet struct {
	Text string // The sentence, whitespace-trimmed
	Term string // The player or club term that matched
}

// SnippetExtractor scans an outlet page for sentences mentioning the
// players or clubs in a sweep batch.
type SnippetExtractor struct {
	maxPerTerm int
}

// NewSnippetExtractor caps how many sentences each term may contribute;
// maxPerTerm <= 0 uses the default. The cap keeps prompt context bounded
// on pages that mention one club in every paragraph.
func NewSnippetExtractor(maxPerTerm int) *SnippetExtractor {
	if maxPerTerm <= 0 {
		maxPerTerm = defaultMaxPerTerm
	}
	return &SnippetExtractor{maxPerTerm: maxPerTerm}
}

// Extract parses the page and returns each sentence that mentions one of
// the terms, case-insensitively, first match per sentence. Duplicate
// sentences are dropped.
func (e *SnippetExtractor) Extract(htmlContent string, terms []string) ([]Snippet, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	text := extractVisibleText(doc)
	sentences := splitSentences(text)

	perTerm := make(map[string]int, len(terms))
	seen := make(map[string]bool)
	var snippets []Snippet

	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, term := range terms {
			t := strings.ToLower(strings.TrimSpace(term))
			if t == "" || !strings.Contains(lower, t) {
				continue
			}
			if perTerm[t] >= e.maxPerTerm {
				continue // capped term; another term may still claim the sentence
			}
			key := strings.ToLower(strings.TrimSpace(sentence))
			if seen[key] {
				break
			}
			seen[key] = true
			perTerm[t]++
			snippets = append(snippets, Snippet{Text: strings.TrimSpace(sentence), Term: term})
			break // one match per sentence
		}
	}
	return snippets, nil
}

// extractVisibleText walks the DOM collecting text nodes, skipping
// non-visible containers.
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

// splitSentences breaks page text on sentence terminators, keeping only
// spans long enough to carry a claim and short enough to quote.
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				sentence := strings.TrimSpace(current.String())
				if len(sentence) >= 30 && len(sentence) <= 500 {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}

	if current.Len() > 0 {
		sentence := strings.TrimSpace(current.String())
		if len(sentence) >= 30 && len(sentence) <= 500 {
			sentences = append(sentences, sentence)
		}
	}
	return sentences
}
