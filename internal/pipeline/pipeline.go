// Package pipeline wires one sweep end to end: plan the tier batches,
// research them sequentially, validate the combined delta, merge the
// survivors into the stores and write the run artifacts.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/merge"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/normalize"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/registry"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/research"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/store"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/validate"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/worker"
)

// Researcher produces a candidate delta for one player batch. Satisfied by
// research.Runner; tests substitute a scripted fake.
type Researcher interface {
	ResearchBatch(ctx context.Context, players []model.Player) (*model.Delta, error)
}

// Pipeline orchestrates the complete sweep process
type Pipeline struct {
	config     *model.Config
	researcher Researcher
	verbose    bool
}

// NewPipeline creates a sweep pipeline around a research producer
func NewPipeline(cfg *model.Config, researcher Researcher, verbose bool) *Pipeline {
	return &Pipeline{
		config:     cfg,
		researcher: researcher,
		verbose:    verbose,
	}
}

// SweepOptions tune one run
type SweepOptions struct {
	Tiers     []string // Explicit sweep tiers; empty lets the schedule decide
	DryRun    bool     // Validate and merge in memory, write nothing
	BatchSize int      // Override the configured batch size when > 0
}

// SweepResult is the outcome of one sweep run
type SweepResult struct {
	Report     *model.SweepReport
	ReportPath string   // Empty on dry runs
	Skipped    []string // Duplicate log lines from the merge
}

// environment is the per-run working set: registry, normalizer and the two
// durable stores, loaded fresh at the start of every operation.
type environment struct {
	registry     *registry.Registry
	registryNote string
	norm         *normalize.Normalizer
	rosterStore  *store.RosterStore
	intelStore   *store.IntelStore
	roster       *model.Roster
	intel        model.IntelTable
}

func (p *Pipeline) loadEnvironment() (*environment, error) {
	reg, regErr := registry.Load(p.config.RegistryPath())
	env := &environment{registry: reg, norm: normalize.New(reg)}
	if regErr != nil {
		// Degrade, don't crash: alias-free validation still runs
		env.registryNote = regErr.Error()
		if p.verbose {
			fmt.Fprintf(os.Stderr, "⚠ %s\n", env.registryNote)
		}
	}

	env.rosterStore = store.NewRosterStore(p.config.RosterPath(), p.config.BackupPath())
	env.intelStore = store.NewIntelStore(p.config.IntelPath(), p.config.BackupPath())

	roster, err := env.rosterStore.Load()
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	env.roster = roster

	intel, err := env.intelStore.Load()
	if err != nil {
		return nil, fmt.Errorf("load intel: %w", err)
	}
	env.intel = intel

	return env, nil
}

// Run executes one full sweep
func (p *Pipeline) Run(ctx context.Context, opts SweepOptions) (*SweepResult, error) {
	startedAt := time.Now().UTC()
	runID := uuid.NewString()

	// 1. Load registry and stores
	env, err := p.loadEnvironment()
	if err != nil {
		return nil, err
	}

	// 2. Plan the tier batches
	researchCfg := p.config.Research
	if opts.BatchSize > 0 {
		researchCfg.BatchSize = opts.BatchSize
	}
	plan, err := worker.PlanBatches(env.roster, researchCfg, opts.Tiers)
	if err != nil {
		return nil, err
	}
	if p.verbose {
		fmt.Fprintf(os.Stderr, "✓ Planned %d batches covering %d players (tiers %s)\n",
			len(plan.Batches), plan.PlayerCount(), strings.Join(plan.Tiers, ","))
	}

	// 3. Research sequentially. Every batch must produce and parse before
	// any merge begins; the first failure aborts the run untouched.
	delta := &model.Delta{}
	for i, batch := range plan.Batches {
		batchDelta, err := p.researcher.ResearchBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("research batch %d/%d: %w", i+1, len(plan.Batches), err)
		}
		delta.Append(batchDelta)
	}

	// 4. Validate the combined delta
	validator := validate.NewDeltaValidator(env.norm, env.registry)
	outcome := validator.ValidateDelta(delta, env.roster)
	if p.verbose {
		for _, line := range outcome.Dropped {
			fmt.Fprintf(os.Stderr, "⚠ %s\n", line)
		}
	}

	// 5. Merge the survivors. Metadata is touched even when nothing
	// changed: the sweep counter drives B/C tier scheduling.
	engine := merge.NewEngine(validate.NewDuplicateDetector(env.norm), env.rosterStore, env.intelStore)
	mergeRes, err := engine.Apply(env.roster, env.intel, outcome, merge.Options{
		DryRun:        opts.DryRun,
		TouchMetadata: true,
		Now:           startedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if p.verbose {
		for _, line := range mergeRes.Skipped {
			fmt.Fprintf(os.Stderr, "⚠ %s\n", line)
		}
	}

	// 6. Build the report and write the artifacts
	report := &model.SweepReport{
		RunID:      runID,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		DryRun:     opts.DryRun,

		Tiers:        plan.Tiers,
		Batches:      len(plan.Batches),
		PlayersSwept: plan.PlayerCount(),
		RegistryNote: env.registryNote,

		Accepted:       len(outcome.Accepted),
		Rejected:       len(outcome.Rejected),
		Warned:         outcome.WarnedItems(),
		DroppedRecords: len(outcome.Dropped),

		Merge:        mergeRes.Summary,
		NeedsReview:  outcome.NeedsReview,
		TierWarnings: outcome.TierWarnings,
	}

	result := &SweepResult{Report: report, Skipped: mergeRes.Skipped}
	if opts.DryRun {
		return result, nil
	}

	if len(outcome.NeedsReview) > 0 {
		reviewStore := store.NewReviewStore(p.config.ReviewPath())
		if err := reviewStore.Append(runID, store.Stamp(startedAt), outcome.NeedsReview); err != nil {
			return nil, fmt.Errorf("write review queue: %w", err)
		}
	}

	reportPath, err := store.WriteReport(p.config.ReportPath(), report)
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	result.ReportPath = reportPath
	if p.verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote report: %s\n", reportPath)
	}

	return result, nil
}

// LoadDelta reads a candidate delta from a file produced out-of-band,
// applying the same JSON recovery used on live producer output.
func LoadDelta(path string) (*model.Delta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read delta: %w", err)
	}
	return research.ParseDelta(string(data))
}

// ValidateOnly checks an out-of-band delta file against the live roster
// without mutating anything. Offline counterpart to the sweep's validation
// step.
func (p *Pipeline) ValidateOnly(deltaPath string) (*validate.Outcome, error) {
	env, err := p.loadEnvironment()
	if err != nil {
		return nil, err
	}

	delta, err := LoadDelta(deltaPath)
	if err != nil {
		return nil, err
	}

	validator := validate.NewDeltaValidator(env.norm, env.registry)
	return validator.ValidateDelta(delta, env.roster), nil
}

// MergeOnly validates and merges an out-of-band delta file. Sweep metadata
// is left alone: only real sweeps advance the counter that drives tier
// scheduling.
func (p *Pipeline) MergeOnly(deltaPath string, dryRun bool) (*validate.Outcome, *merge.Result, error) {
	env, err := p.loadEnvironment()
	if err != nil {
		return nil, nil, err
	}

	delta, err := LoadDelta(deltaPath)
	if err != nil {
		return nil, nil, err
	}

	validator := validate.NewDeltaValidator(env.norm, env.registry)
	outcome := validator.ValidateDelta(delta, env.roster)

	engine := merge.NewEngine(validate.NewDuplicateDetector(env.norm), env.rosterStore, env.intelStore)
	mergeRes, err := engine.Apply(env.roster, env.intel, outcome, merge.Options{
		DryRun: dryRun,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("merge: %w", err)
	}

	return outcome, mergeRes, nil
}

// LoadRoster exposes the roster store for read-only commands
func (p *Pipeline) LoadRoster() (*model.Roster, error) {
	rosterStore := store.NewRosterStore(p.config.RosterPath(), p.config.BackupPath())
	return rosterStore.Load()
}
