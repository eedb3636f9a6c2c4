package research

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/llm"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
)

// researchSleepFunc is the sleep function used between retries (injectable for tests)
var researchSleepFunc = time.Sleep

// Runner produces one candidate delta per player batch through the
// configured provider. Only rate-limit failures are retried, on a fixed
// linear schedule (base, 2x base, 3x base). Any other failure, or running
// out of retries, is fatal: the merge step never sees a batch that failed
// to produce.
type Runner struct {
	provider llm.Provider
	fetcher  *ContextFetcher // nil disables outlet context
	config   model.ResearchConfig
	verbose  bool
}

// NewRunner creates a batch research runner
func NewRunner(provider llm.Provider, fetcher *ContextFetcher, config model.ResearchConfig, verbose bool) *Runner {
	return &Runner{
		provider: provider,
		fetcher:  fetcher,
		config:   config,
		verbose:  verbose,
	}
}

// ResearchBatch runs one player batch end to end: context gathering, prompt,
// completion with retry, JSON recovery, decode.
func (r *Runner) ResearchBatch(ctx context.Context, players []model.Player) (*model.Delta, error) {
	var snippets []SourceSnippets
	if r.fetcher != nil {
		snippets = r.fetcher.Gather(ctx, r.config.ContextSources, players)
	}

	prompt := BuildPrompt(players, snippets)

	resp, err := r.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if r.verbose {
		fmt.Fprintf(os.Stderr, "✓ Batch researched (%d players, %d tokens)\n", len(players), resp.TokensUsed)
	}

	return ParseDelta(resp.Text)
}

// complete retries rate-limited completions on the linear backoff schedule
func (r *Runner) complete(ctx context.Context, prompt string) (*llm.CompletionResponse, error) {
	maxRetries := r.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := r.config.RetryBackoff
	if backoff <= 0 {
		backoff = 60 * time.Second
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * backoff
			if r.verbose {
				fmt.Fprintf(os.Stderr, "⚠ Rate limited, waiting %s before retry %d/%d\n", wait, attempt, maxRetries)
			}
			researchSleepFunc(wait)
		}

		resp, err := r.provider.Complete(ctx, llm.CompletionRequest{
			System: systemPrompt,
			Prompt: prompt,
		})
		if err == nil {
			return resp, nil
		}
		if !model.IsRetryable(err) {
			return nil, model.Fatal(err)
		}
		lastErr = err
	}

	return nil, model.Fatal(fmt.Errorf("rate-limit retries exhausted after %d attempts: %w", maxRetries+1, lastErr))
}
