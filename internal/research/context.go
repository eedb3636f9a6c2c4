package research

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/cache"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/extract"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/util"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/worker"
)

// SourceSnippets groups the sentences pulled from one outlet page.
type SourceSnippets struct {
	URL      string
	Snippets []extract.Snippet
}

// ContextFetcher pulls configured outlet pages and extracts sentences
// mentioning batch players or their clubs, to ground the producer prompt.
// Fetches are polite: robots.txt is honored (including crawl delay), each
// host is rate limited, and pages are cached across sweeps.
type ContextFetcher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	pages      cache.Cache // nil disables caching
	extractor  *extract.SnippetExtractor
	userAgent  string
	maxBytes   int64
	verbose    bool
}

// NewContextFetcher wires a fetcher from the research configuration. A nil
// page cache is valid and simply refetches on every sweep.
func NewContextFetcher(cfg model.ResearchConfig, pages cache.Cache, verbose bool) *ContextFetcher {
	return &ContextFetcher{
		httpClient: &http.Client{
			Timeout: cfg.FetchTimeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    util.NewRobotsChecker(cfg.UserAgent, cfg.FetchTimeout),
		limiter:   worker.NewLimiter(cfg.RequestsPerSec, cfg.Burst),
		pages:     pages,
		extractor: extract.NewSnippetExtractor(3),
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		verbose:   verbose,
	}
}

// Gather fetches every configured source and extracts snippets mentioning
// any batch player or club. A failing source is skipped with a note: context
// is best-effort enrichment, never a reason to abort a sweep.
func (f *ContextFetcher) Gather(ctx context.Context, sources []string, players []model.Player) []SourceSnippets {
	terms := contextTerms(players)
	if len(terms) == 0 || len(sources) == 0 {
		return nil
	}

	var gathered []SourceSnippets
	for _, src := range sources {
		snippets, err := f.gatherOne(ctx, src, terms)
		if err != nil {
			if f.verbose {
				fmt.Fprintf(os.Stderr, "⚠ Context source skipped (%s): %v\n", src, err)
			}
			continue
		}
		if len(snippets) > 0 {
			gathered = append(gathered, SourceSnippets{URL: src, Snippets: snippets})
		}
	}
	return gathered
}

func (f *ContextFetcher) gatherOne(ctx context.Context, src string, terms []string) ([]extract.Snippet, error) {
	page, err := f.page(ctx, src)
	if err != nil {
		return nil, err
	}
	return f.extractor.Extract(page, terms)
}

// page returns the HTML for src, from cache when possible.
func (f *ContextFetcher) page(ctx context.Context, src string) (string, error) {
	key := cache.PageKey(src)
	if f.pages != nil {
		if data, found := f.pages.Get(key); found {
			return string(data), nil
		}
	}

	allowed, crawlDelay, err := f.robots.CanFetch(ctx, src)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", fmt.Errorf("robots.txt disallows fetching")
	}

	if err := f.limiter.WaitWithDelay(ctx, src, crawlDelay); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,fr;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if f.pages != nil {
		_ = f.pages.Set(key, body, 0)
	}
	return string(body), nil
}

// contextTerms collects the search terms for a batch: canonical names, alt
// spellings and current clubs, deduplicated case-insensitively.
func contextTerms(players []model.Player) []string {
	seen := make(map[string]bool)
	var terms []string
	add := func(term string) {
		if term == "" {
			return
		}
		lower := strings.ToLower(term)
		if !seen[lower] {
			seen[lower] = true
			terms = append(terms, term)
		}
	}

	for _, player := range players {
		add(player.Name)
		for _, alt := range player.AltSpellings {
			add(alt)
		}
		add(player.Club)
	}
	return terms
}
