package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satprep/satprep/internal/config"
	"github.com/satprep/satprep/internal/questions"
	"github.com/satprep/satprep/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "satprep",
	Short: "SAT practice in the terminal",
	Long:  "satprep walks through SAT math and english questions with flags, a calculator and themes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SATPREP_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Question bank file, .json or .xlsx (overrides SATPREP_BANK env var)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(flagsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resetCmd)
}

// loadConfig reads .env and the environment, then applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		cfg.BankPath = p
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, or the default XDG
// path when none is set.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func openBank(cfg config.Config) (*questions.Bank, error) {
	bank, err := questions.Open(cfg.BankPath)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	return bank, nil
}
