package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ziyan/shuati/internal/bank"
	"github.com/ziyan/shuati/internal/config"
	"github.com/ziyan/shuati/internal/logging"
	"github.com/ziyan/shuati/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "shuati",
	Short: "Terminal drill app for exam question banks",
	Long: "Shuati is a terminal app for drilling exam question banks:\n" +
		"answer questions, re-read the ones you got wrong, and carry your\n" +
		"progress between devices with export and import.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Data directory for progress slots (overrides SHUATI_DATA_DIR)")
	rootCmd.PersistentFlags().String("banks", "", "Bank directory or URL containing index.json (overrides SHUATI_BANKS)")
	rootCmd.PersistentFlags().String("store", "", "Progress store backend, file or sqlite (overrides SHUATI_STORE)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides SHUATI_LOG_LEVEL)")

	rootCmd.AddCommand(banksCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads .env (when present), the environment, and flag
// overrides, in that order of increasing priority.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("data"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := cmd.Flags().GetString("banks"); v != "" {
		cfg.Banks = v
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		if v != "file" && v != "sqlite" {
			return nil, fmt.Errorf("unknown store backend %q (want file or sqlite)", v)
		}
		cfg.Backend = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

func dataDir(cfg *config.Config) (string, error) {
	dir := cfg.DataDir
	if dir == "" {
		var err error
		dir, err = store.DefaultDataDir()
		if err != nil {
			return "", fmt.Errorf("resolve data directory: %w", err)
		}
	}
	if err := store.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dir, nil
}

// openStore builds the progress store for the configured backend.
func openStore(cfg *config.Config, log zerolog.Logger) (*store.Store, error) {
	dir, err := dataDir(cfg)
	if err != nil {
		return nil, err
	}

	var kv store.KV
	switch cfg.Backend {
	case "sqlite":
		kv, err = store.OpenSQLite(filepath.Join(dir, "shuati.db"))
	default:
		kv, err = store.OpenFile(filepath.Join(dir, "slots"))
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	return store.New(kv, log), nil
}

// cliLogger logs to stderr for one-shot commands.
func cliLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(os.Stderr, cfg.LogLevel)
}

// tuiLogger logs to a file so log lines don't fight the TUI for the
// terminal.
func tuiLogger(cfg *config.Config) (zerolog.Logger, *os.File, error) {
	dir, err := dataDir(cfg)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "shuati.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(f, cfg.LogLevel), f, nil
}

func newLoader(cfg *config.Config) *bank.Loader {
	return bank.NewLoader(cfg.Banks)
}
