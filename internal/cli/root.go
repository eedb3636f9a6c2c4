package cli

import (
	"fmt"
	"os"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile string
	dataDir string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aytt",
	Short: "Africa Youth Transfer Tracker - rumour sweeps over a tracked roster",
	Long: `aytt maintains a roster of young African footballers and the transfer
rumours recorded about them.

A sweep asks a language-model producer what changed for a batch of tracked
players, validates every claim in the reply against the roster and the club
alias registry, and merges only what survives into the durable stores. The
producer is treated as an untrusted source: malformed output, unknown
players, stale duplicates and invented records are rejected or set aside
for human review, never written.

Stores are plain JSON files on disk, snapshotted before every write.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for aytt.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("aytt v0.4.2")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.aytt/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory holding the roster and intel stores")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.aytt")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match AYTT_*
	viper.SetEnvPrefix("AYTT")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: built-in defaults, then
// the config file if one was found, then environment and global flag
// overrides.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// Environment overrides: AYTT_DATA_DIR, AYTT_LLM_PROVIDER, AYTT_LLM_MODEL
	if v := viper.GetString("data_dir"); v != "" {
		cfg.Data.Dir = v
	}
	if v := viper.GetString("llm_provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm_model"); v != "" {
		cfg.LLM.Model = v
	}

	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	cfg.Output.Verbose = verbose

	return cfg, nil
}
