package extract

import (
	"fmt"
	"strings"
	"testing"
)

const outletPage = `
<html>
<head><title>Mercato live</title><style>body { color: red }</style></head>
<body>
<script>trackPageView();</script>
<h1>Transfer round-up</h1>
<p>Souleymane Faye impressed again on Saturday and two French clubs sent scouts to watch him play.</p>
<p>Metz are believed to be preparing a formal offer for the Génération Foot winger before the window closes.</p>
<p>Unrelated: the league confirmed the fixture list for the second half of the season yesterday evening.</p>
<p>Short one.</p>
</body>
</html>`

func TestSnippetExtractor_MatchesTerms(t *testing.T) {
	e := NewSnippetExtractor(3)

	snippets, err := e.Extract(outletPage, []string{"Souleymane Faye", "Metz"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(snippets) != 2 {
		t.Fatalf("Expected 2 snippets, got %d: %+v", len(snippets), snippets)
	}
	if snippets[0].Term != "Souleymane Faye" || !strings.Contains(snippets[0].Text, "impressed again") {
		t.Errorf("Expected the player sentence first, got %+v", snippets[0])
	}
	if snippets[1].Term != "Metz" || !strings.Contains(snippets[1].Text, "formal offer") {
		t.Errorf("Expected the club sentence second, got %+v", snippets[1])
	}
}

func TestSnippetExtractor_SkipsScriptAndStyle(t *testing.T) {
	e := NewSnippetExtractor(3)
	snippets, err := e.Extract(outletPage, []string{"trackPageView", "color"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(snippets) != 0 {
		t.Errorf("Expected script/style content invisible, got %+v", snippets)
	}
}

func TestSnippetExtractor_CaseInsensitive(t *testing.T) {
	e := NewSnippetExtractor(3)
	snippets, err := e.Extract(outletPage, []string{"METZ"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(snippets) != 1 {
		t.Errorf("Expected a case-insensitive match, got %+v", snippets)
	}
}

func TestSnippetExtractor_CapsPerTerm(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&b, "<p>Metz remain interested in the young forward, insiders repeated on day %d of the window.</p>", i)
	}
	b.WriteString("</body></html>")

	e := NewSnippetExtractor(2)
	snippets, err := e.Extract(b.String(), []string{"Metz"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(snippets) != 2 {
		t.Errorf("Expected the per-term cap to hold, got %d snippets", len(snippets))
	}
}

func TestSnippetExtractor_DeduplicatesSentences(t *testing.T) {
	page := `<html><body>
<p>Metz are preparing a formal offer for the winger, according to the paper.</p>
<p>Metz are preparing a formal offer for the winger, according to the paper.</p>
</body></html>`

	e := NewSnippetExtractor(5)
	snippets, err := e.Extract(page, []string{"Metz"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(snippets) != 1 {
		t.Errorf("Expected repeated sentences collapsed, got %d", len(snippets))
	}
}

func TestSnippetExtractor_NoTermsNoSnippets(t *testing.T) {
	e := NewSnippetExtractor(3)
	snippets, err := e.Extract(outletPage, nil)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(snippets) != 0 {
		t.Errorf("Expected no snippets without terms, got %+v", snippets)
	}
}

func TestSplitSentences_LengthBounds(t *testing.T) {
	text := "Too short. " +
		"This sentence is comfortably long enough to be kept by the splitter heuristics. " +
		strings.Repeat("x", 600) + ". " +
		"Another sentence that comfortably clears the minimum length bar for keeping."

	sentences := splitSentences(text)
	if len(sentences) != 2 {
		t.Fatalf("Expected 2 sentences within bounds, got %d: %v", len(sentences), sentences)
	}
	for _, s := range sentences {
		if len(s) < 30 || len(s) > 500 {
			t.Errorf("Sentence outside bounds: %d chars", len(s))
		}
	}
}
