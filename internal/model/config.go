package model

import (
	"path/filepath"
	"time"
)

// Config is the full runtime configuration. Populated from defaults, then
// the config file and environment via viper, then CLI flags.
type Config struct {
	Data     DataConfig     `yaml:"data" json:"data"`
	Research ResearchConfig `yaml:"research" json:"research"`
	LLM      LLMConfig      `yaml:"llm" json:"llm"`
	Cache    CacheConfig    `yaml:"cache" json:"cache"`
	Output   OutputConfig   `yaml:"output" json:"output"`
}

// DataConfig locates the durable stores and run artifacts.
type DataConfig struct {
	Dir          string `yaml:"dir" json:"dir"`                     // Base data directory
	RosterFile   string `yaml:"roster_file" json:"roster_file"`     // Player store, relative to Dir
	IntelFile    string `yaml:"intel_file" json:"intel_file"`       // Intel store, relative to Dir
	RegistryFile string `yaml:"registry_file" json:"registry_file"` // Club alias registry, relative to Dir
	ReviewFile   string `yaml:"review_file" json:"review_file"`     // Needs-review artifact, relative to Dir
	BackupDir    string `yaml:"backup_dir" json:"backup_dir"`       // Pre-write snapshots, relative to Dir
	ReportDir    string `yaml:"report_dir" json:"report_dir"`       // Sweep reports, relative to Dir
}

// ResearchConfig governs how sweeps are planned and how the upstream
// producer is called.
type ResearchConfig struct {
	BatchSize      int            `yaml:"batch_size" json:"batch_size"`         // Players per research batch
	TierIntervals  map[string]int `yaml:"tier_intervals" json:"tier_intervals"` // Sweep tier -> include every Nth sweep
	ContextSources []string       `yaml:"context_sources" json:"context_sources"`
	MaxRetries     int            `yaml:"max_retries" json:"max_retries"`   // Retry attempts on rate limiting
	RetryBackoff   time.Duration  `yaml:"retry_backoff" json:"retry_backoff"` // Base backoff, grows linearly per attempt
	FetchTimeout   time.Duration  `yaml:"fetch_timeout" json:"fetch_timeout"`
	MaxBodyBytes   int64          `yaml:"max_body_bytes" json:"max_body_bytes"`
	UserAgent      string         `yaml:"user_agent" json:"user_agent"`
	RequestsPerSec float64        `yaml:"requests_per_sec" json:"requests_per_sec"` // Per-host fetch rate
	Burst          int            `yaml:"burst" json:"burst"`
	HTTPProxy      string         `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy     string         `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
}

// LLMConfig selects and parameterizes the completion provider.
type LLMConfig struct {
	Provider    string  `yaml:"provider" json:"provider"` // openai, anthropic or ollama
	Model       string  `yaml:"model" json:"model"`
	APIKey      string  `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	BaseURL     string  `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout     int     `yaml:"timeout" json:"timeout"` // Seconds
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`
	Temperature float32 `yaml:"temperature" json:"temperature"`
}

// CacheConfig controls the layered fetch cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
	NoColor bool `yaml:"no_color" json:"no_color"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:          "data",
			RosterFile:   "roster.json",
			IntelFile:    "intel.json",
			RegistryFile: "club_aliases.json",
			ReviewFile:   "needs_review.json",
			BackupDir:    "backups",
			ReportDir:    "reports",
		},
		Research: ResearchConfig{
			BatchSize: 8,
			TierIntervals: map[string]int{
				SweepTierA: 1,
				SweepTierB: 2,
				SweepTierC: 4,
			},
			MaxRetries:     3,
			RetryBackoff:   60 * time.Second,
			FetchTimeout:   30 * time.Second,
			MaxBodyBytes:   10 * 1024 * 1024,
			UserAgent:      "aytt/1.0 (+https://github.com/michaelmakaab/africa-youth-transfer-tracker)",
			RequestsPerSec: 0.5,
			Burst:          1,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Timeout:     120,
			MaxTokens:   2000,
			Temperature: 0.2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".aytt-cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{},
	}
}

// RosterPath and friends resolve store locations against the data dir.
func (c *Config) RosterPath() string   { return joinData(c.Data.Dir, c.Data.RosterFile) }
func (c *Config) IntelPath() string    { return joinData(c.Data.Dir, c.Data.IntelFile) }
func (c *Config) RegistryPath() string { return joinData(c.Data.Dir, c.Data.RegistryFile) }
func (c *Config) ReviewPath() string   { return joinData(c.Data.Dir, c.Data.ReviewFile) }
func (c *Config) BackupPath() string   { return joinData(c.Data.Dir, c.Data.BackupDir) }
func (c *Config) ReportPath() string   { return joinData(c.Data.Dir, c.Data.ReportDir) }

func joinData(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
