package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/cache"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/llm"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/pipeline"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/research"
	"github.com/spf13/cobra"
)

var (
	sweepTiers   []string
	sweepDryRun  bool
	batchSize    int
	sweepTimeout time.Duration
	noCache      bool
	llmProvider  string
	llmModel     string
	httpProxy    string
	httpsProxy   string
)

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a research sweep and merge what survives validation",
	Long: `Sweep runs the full research cycle:
- Select the sweep tiers due this run and batch their players
- Ask the configured LLM provider for transfer developments per batch
- Validate every claimed record against the roster and alias registry
- Merge accepted records into the stores, snapshotting them first
- Write the needs-review and sweep report artifacts

A sweep aborts before touching any store when a batch cannot be researched
or parsed. Individual bad records never abort the run; they are rejected
and logged for review.

Example:
  aytt sweep
  aytt sweep --tiers A --dry-run
  aytt sweep --batch-size 4 --llm-provider ollama --llm-model llama3.1`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	// Sweep flags
	sweepCmd.Flags().StringSliceVar(&sweepTiers, "tiers", nil, "sweep tiers to include (overrides the schedule)")
	sweepCmd.Flags().BoolVar(&sweepDryRun, "dry-run", false, "report what would change without writing anything")
	sweepCmd.Flags().IntVar(&batchSize, "batch-size", 0, "players per research batch (0 = configured default)")
	sweepCmd.Flags().DurationVar(&sweepTimeout, "timeout", 30*time.Minute, "overall sweep timeout (rate-limit retries can wait minutes)")
	sweepCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache (force fresh context fetches)")

	// LLM flags
	sweepCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	sweepCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")

	// Proxy flags
	sweepCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	sweepCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if httpProxy != "" {
		cfg.Research.HTTPProxy = httpProxy
	}
	if httpsProxy != "" {
		cfg.Research.HTTPSProxy = httpsProxy
	}

	// Get API key from environment
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		baseURL := os.Getenv("OLLAMA_BASE_URL")
		if baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	llmCfg := llm.ConfigFromModel(cfg.LLM)
	llmCfg.HTTPProxy = cfg.Research.HTTPProxy
	llmCfg.HTTPSProxy = cfg.Research.HTTPSProxy
	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Provider: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintf(os.Stderr, "Data dir: %s\n", cfg.Data.Dir)
		fmt.Fprintf(os.Stderr, "Timeout:  %v\n", sweepTimeout)
		fmt.Fprintln(os.Stderr)
	}

	var fetcher *research.ContextFetcher
	if len(cfg.Research.ContextSources) > 0 {
		var pages cache.Cache
		if cfg.Cache.Enabled {
			pages = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			// Still dedupes repeat fetches within a single run
			pages = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 5*time.Minute)
		}
		fetcher = research.NewContextFetcher(cfg.Research, pages, verbose)
	}

	runner := research.NewRunner(provider, fetcher, cfg.Research, verbose)
	p := pipeline.NewPipeline(cfg, runner, verbose)

	result, err := p.Run(ctx, pipeline.SweepOptions{
		Tiers:     sweepTiers,
		DryRun:    sweepDryRun,
		BatchSize: batchSize,
	})
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	printSweepSummary(result)
	return nil
}

func printSweepSummary(result *pipeline.SweepResult) {
	report := result.Report

	tiers := strings.Join(report.Tiers, ", ")
	if tiers == "" {
		tiers = "none due"
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	if report.DryRun {
		fmt.Fprintf(os.Stderr, "  Sweep Complete (dry run, nothing written)\n")
	} else {
		fmt.Fprintf(os.Stderr, "  Sweep Complete\n")
	}
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Run:        %s\n", report.RunID)
	fmt.Fprintf(os.Stderr, "  Tiers:      %s\n", tiers)
	fmt.Fprintf(os.Stderr, "  Players:    %d in %d batches\n", report.PlayersSwept, report.Batches)
	fmt.Fprintf(os.Stderr, "  Accepted:   %d (%d with tier warnings)\n", report.Accepted, report.Warned)
	fmt.Fprintf(os.Stderr, "  Rejected:   %d\n", report.Rejected)
	fmt.Fprintf(os.Stderr, "  Merged:     %d rumours, %d intel updates, %d escalations, %d tier changes\n",
		report.Merge.RumoursAdded, report.Merge.IntelUpdated, report.Merge.Escalations, report.Merge.TierChanges)
	if report.Merge.DuplicatesSkipped > 0 {
		fmt.Fprintf(os.Stderr, "  Duplicates: %d skipped\n", report.Merge.DuplicatesSkipped)
	}
	if report.RegistryNote != "" {
		fmt.Fprintf(os.Stderr, "  ⚠ %s\n", report.RegistryNote)
	}
	if len(report.NeedsReview) > 0 {
		fmt.Fprintf(os.Stderr, "  ⚠ %d item(s) queued for review\n", len(report.NeedsReview))
	}
	if result.ReportPath != "" {
		fmt.Fprintf(os.Stderr, "  Report:     %s\n", result.ReportPath)
	}
	fmt.Fprintf(os.Stderr, "\n")
}
