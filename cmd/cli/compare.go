package main

import (
	"errors"

	"coop-budget/internal/analysis"
	"coop-budget/internal/config"
	"coop-budget/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCompareCmd(opts *options) *cobra.Command {
	var dataPath, outPath string

	cmd := &cobra.Command{
		Use:     "compare",
		Short:   "Budget-to-actual variance per product, market and quarter",
		Example: "  coop compare --data examples/datasets/atlas.yaml --out results/budget.csv",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := opts.logger()
			defer func() { _ = log.Sync() }()

			d, err := config.Load(dataPath)
			if err != nil {
				return err
			}
			if len(d.Budget) == 0 && len(d.Actual) == 0 {
				return errors.New("dataset has no budget or actual section")
			}

			rows := analysis.CompareBudgetToActual(d.BudgetFigures(), d.ActualFigures())
			for _, r := range rows {
				if err := r.Err(); err != nil {
					log.Debug("segment not comparable", zap.Error(err))
				}
			}

			w := cmd.OutOrStdout()
			printComparison(w, opts.formatter(d), rows)

			if outPath != "" {
				if err := report.WriteComparisonCSV(outPath, rows); err != nil {
					return err
				}
				writeln(w, "  Wrote", len(rows), "rows to", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "Dataset YAML file with budget and actual sections")
	cmd.Flags().StringVar(&outPath, "out", "", "Optional comparison CSV output path")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
