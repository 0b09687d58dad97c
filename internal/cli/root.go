package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/claimforge/internal/logging"
	"github.com/ppiankov/claimforge/internal/model"
)

const version = "claimforge v0.1.0"

var (
	cfgFile string
	verbose bool

	// logger is built in PersistentPreRunE from the effective config
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claimforge",
	Short: "ClaimForge - patent claim drafting from invention descriptions",
	Long: `ClaimForge turns a free-form invention description into the first
(independent) claim of a patent claim set.

It locates the invention title, the known (prior-art) features, the
distinctive features and the technical effect, removes feature phrases that
repeat earlier ones, and assembles a claim with the standard connectives:

  <title>, включающий <known>, отличающийся тем, что <distinctive>, обеспечивает <effect>.

Russian and English descriptions are supported. Claims are drafts built from
heuristics and must be reviewed before filing.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of ClaimForge.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	// Assigned here rather than in the rootCmd literal: loadConfig reads
	// rootCmd's flags, which would otherwise form an initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger = l
		return nil
	}

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.claimforge/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")

	// Generation options shared by generate and batch
	flags.StringP("style", "s", "", "claim style: compact (deduplicated) or verbose")
	flags.IntP("variants", "n", 0, "number of claim variants to generate")
	flags.StringP("language", "l", "", "description language: ru or en")
	flags.Bool("no-cache", false, "disable report cache")

	bindFlag("output.verbose", "verbose")
	bindFlag("log.level", "log-level")
	bindFlag("log.format", "log-format")
	bindFlag("generation.style", "style")
	bindFlag("generation.variants", "variants")
	bindFlag("generation.language", "language")

	rootCmd.AddCommand(versionCmd)
}

// bindFlag binds a persistent flag to a config key. Flags override the key
// only when set explicitly.
func bindFlag(key, flag string) {
	_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".claimforge"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Environment variables CLAIMFORGE_GENERATION_STYLE etc.
	viper.SetEnvPrefix("CLAIMFORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults(model.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key with viper so that environment
// variables are picked up on Unmarshal
func setDefaults(cfg *model.Config) {
	viper.SetDefault("generation.style", string(cfg.Generation.Style))
	viper.SetDefault("generation.variants", cfg.Generation.Variants)
	viper.SetDefault("generation.language", string(cfg.Generation.Language))

	viper.SetDefault("http.timeout", cfg.HTTP.Timeout)
	viper.SetDefault("http.user_agent", cfg.HTTP.UserAgent)
	viper.SetDefault("http.max_body_bytes", cfg.HTTP.MaxBodyBytes)
	viper.SetDefault("http.insecure_tls", cfg.HTTP.InsecureTLS)
	viper.SetDefault("http.respect_robots", cfg.HTTP.RespectRobots)
	viper.SetDefault("http.http_proxy", cfg.HTTP.HTTPProxy)
	viper.SetDefault("http.https_proxy", cfg.HTTP.HTTPSProxy)
	viper.SetDefault("http.no_proxy", cfg.HTTP.NoProxy)

	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)

	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	viper.SetDefault("rate_limiting.requests_per_second", cfg.RateLimiting.RequestsPerSecond)
	viper.SetDefault("rate_limiting.burst_size", cfg.RateLimiting.BurstSize)

	viper.SetDefault("output.verbose", cfg.Output.Verbose)
	viper.SetDefault("output.include_footer", cfg.Output.IncludeFooter)

	viper.SetDefault("log.level", cfg.Log.Level)
	viper.SetDefault("log.format", cfg.Log.Format)
}

// loadConfig returns the effective configuration: flags, then CLAIMFORGE_*
// environment variables, then the config file, then defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if verbose && cfg.Log.Level == "warn" {
		cfg.Log.Level = "info"
	}
	if noCache, _ := rootCmd.PersistentFlags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Generation = cfg.Generation.Normalize()
	return cfg, nil
}
