// Package cmd wires up the polarmerge command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/polarmerge/polarmerge/internal/cmd/globals"
	"github.com/polarmerge/polarmerge/internal/cmd/output"
	"github.com/polarmerge/polarmerge/pkg/logging"
)

var (
	configFile  string
	globalFlags *globals.Flags

	// Version information, stamped by main at build time.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
	// BuiltBy identifies the build system.
	BuiltBy = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "polarmerge",
	Short: "Merge per-polarity metabolomics tables",
	Long: `Polarmerge merges the per-polarity intensity and identification tables a
mass-spectrometry workflow exports into compound-centric result tables.

For each ion mode it filters identifications by MS1 score, deduplicates
compounds and descriptions, renames sample columns through the sample map,
and joins identifications onto the intensity blocks. When both modes are
present it reconciles them into a single best-hit table per compound.`,
	PersistentPreRunE: setupCommand,
}

// Execute runs the CLI. The context is cancelled on SIGINT/SIGTERM so a run
// interrupted mid-pipeline stops between stages instead of being killed.
func Execute(version, commit, date, builtBy string) {
	Version, Commit, Date, BuiltBy = version, commit, date, builtBy

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.polarmerge.yaml)")
	globalFlags = globals.AddFlags(rootCmd)

	mustBind("verbose")
	mustBind("quiet")
}

// mustBind exposes a persistent flag through viper so config files and
// environment variables can set it.
func mustBind(name string) {
	if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
		panic(fmt.Sprintf("failed to bind %s flag: %v", name, err))
	}
}

// initConfig loads .env files, the config file, and environment variables,
// then configures logging. Runs once before any command.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".polarmerge")
	}

	// godotenv never overrides variables already set, so loading .env.local
	// first gives it precedence over .env.
	loadEnvFile(".env.local")
	loadEnvFile(".env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil && globalFlags != nil && globalFlags.Verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	logging.Configure(loggingConfig())
}

// setupCommand resolves the output format before any command runs.
func setupCommand(_ *cobra.Command, _ []string) error {
	if globalFlags.Output == "" {
		globalFlags.Output = string(output.DetectFormat(""))
	}
	return nil
}

// loggingConfig assembles the logger configuration from flags and LOG_*
// environment variables. LOG_LEVEL wins over --verbose and --quiet.
func loggingConfig() *logging.Config {
	level := zerolog.InfoLevel
	if (globalFlags != nil && globalFlags.Verbose) || viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	if (globalFlags != nil && globalFlags.Quiet) || viper.GetBool("quiet") {
		level = zerolog.WarnLevel
	}
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		if parsed, err := zerolog.ParseLevel(s); err == nil {
			level = parsed
		}
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level.String()
	cfg.AddCaller = level <= zerolog.DebugLevel
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	if out := os.Getenv("LOG_OUTPUT"); out != "" {
		cfg.Output = out
	}
	if globalFlags != nil {
		cfg.NoColor = cfg.NoColor || globalFlags.NoColor
	}

	return cfg
}

// loadEnvFile loads one .env file into the environment when it exists.
func loadEnvFile(filename string) {
	if err := godotenv.Load(filename); err == nil {
		if globalFlags != nil && globalFlags.Verbose {
			fmt.Fprintf(os.Stderr, "Loaded %s\n", filename)
		}
	}
}
