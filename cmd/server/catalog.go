package main

import (
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vytor/regexplorer/internal/catalog"
	"github.com/vytor/regexplorer/internal/config"
	"github.com/vytor/regexplorer/internal/models"
)

func newCatalogCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the puzzle catalog",
	}
	cmd.AddCommand(newCatalogListCmd(cfg))
	cmd.AddCommand(newCatalogValidateCmd(cfg))
	return cmd
}

func loadCatalog(cfg *config.Config) ([]models.NewPuzzle, error) {
	data, err := catalog.Read(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	return catalog.Parse(data)
}

func newCatalogListCmd(cfg *config.Config) *cobra.Command {
	var tier string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog puzzles",
		RunE: func(cmd *cobra.Command, args []string) error {
			puzzles, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIER\tORDER\tSOLUTION\tINSTRUCTIONS")
			for _, p := range puzzles {
				if tier != "" && string(p.Difficulty) != tier {
					continue
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", p.Difficulty, p.Order, p.Solution, p.Instructions)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&tier, "difficulty", "", "only list one tier (easy, medium, hard)")
	return cmd
}

func newCatalogValidateCmd(cfg *config.Config) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that every solution compiles and grades itself as correct",
		RunE: func(cmd *cobra.Command, args []string) error {
			puzzles, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			evaluator, err := newEvaluator(cfg)
			if err != nil {
				return err
			}

			problems := catalog.Validate(cmd.Context(), evaluator, puzzles, workers)
			out := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintln(out, p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d of %d puzzles failed validation on the %s engine",
					len(problems), len(puzzles), evaluator.Engine().Name())
			}
			fmt.Fprintf(out, "%d puzzles ok on the %s engine\n", len(puzzles), evaluator.Engine().Name())
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "concurrent checks")
	return cmd
}
