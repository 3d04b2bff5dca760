package main

import (
	"errors"

	"coop-budget/internal/analysis"
	"coop-budget/internal/config"
	"coop-budget/internal/data"
	"coop-budget/internal/model"
	"coop-budget/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newVarianceCmd(opts *options) *cobra.Command {
	var dataPath, jsonPath, outPath string

	cmd := &cobra.Command{
		Use:   "variance",
		Short: "Price/quantity variance per product and for the portfolio",
		Example: "  coop variance --data examples/datasets/atlas.yaml --out results/ledger.csv\n" +
			"  coop variance --json export.json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := opts.logger()
			defer func() { _ = log.Sync() }()

			var (
				records []model.ProductVarianceRecord
				d       *config.Dataset
				err     error
			)
			switch {
			case dataPath != "":
				d, err = config.Load(dataPath)
				if err != nil {
					return err
				}
				records = d.Products
			case jsonPath != "":
				records, err = data.LoadRecordsJSON(jsonPath)
				if err != nil {
					return err
				}
			default:
				return errors.New("one of --data or --json is required")
			}
			log.Debug("loaded sales lines", zap.Int("count", len(records)))

			p := analysis.AggregateVariances(records)
			w := cmd.OutOrStdout()
			printPortfolio(w, opts.formatter(d), p)

			if outPath != "" {
				if err := report.WriteLedgerCSV(outPath, report.BuildLedger(p)); err != nil {
					return err
				}
				writeln(w, "  Wrote", len(p.PerProduct), "rows to", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "Dataset YAML file")
	cmd.Flags().StringVar(&jsonPath, "json", "", "JSON array of sales lines")
	cmd.Flags().StringVar(&outPath, "out", "", "Optional ledger CSV output path")
	cmd.MarkFlagsMutuallyExclusive("data", "json")
	return cmd
}
