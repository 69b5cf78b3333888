package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vytor/regexplorer/internal/config"
	"github.com/vytor/regexplorer/internal/db"
	"github.com/vytor/regexplorer/internal/logger"
	"github.com/vytor/regexplorer/internal/matcher"
	"github.com/vytor/regexplorer/internal/repository"
	"github.com/vytor/regexplorer/internal/repository/memory"
	"github.com/vytor/regexplorer/internal/repository/sqlite"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "regexplorer",
		Short: "Regex Explorer puzzle server",
		Long: `Regex Explorer serves tiered regular-expression puzzles, grades submitted
patterns and tracks per-session progress.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger.SetDefault(logger.New(
				logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
				logger.WithColors(true),
			))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (DEBUG, INFO, WARN, ERROR)")
	flags.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "puzzle catalog YAML (default: embedded)")
	flags.StringVar(&cfg.RegexEngine, "engine", cfg.RegexEngine, "regex engine (ecmascript, re2)")
	flags.DurationVar(&cfg.MatchTimeout, "match-timeout", cfg.MatchTimeout, "per-pattern match timeout")

	rootCmd.AddCommand(newServeCmd(&cfg))
	rootCmd.AddCommand(newCatalogCmd(&cfg))
	return rootCmd
}

func newEvaluator(cfg *config.Config) (*matcher.Evaluator, error) {
	engine, err := matcher.NewEngine(cfg.RegexEngine, cfg.MatchTimeout)
	if err != nil {
		return nil, err
	}
	return matcher.New(
		matcher.WithEngine(engine),
		matcher.WithHighlighter(matcher.Highlighter{Open: cfg.HighlightOpen, Close: cfg.HighlightClose}),
	), nil
}

func openStore(cfg *config.Config) (repository.Store, error) {
	if cfg.Store != config.StoreSQLite {
		return memory.New(), nil
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(database.DB), nil
}
