package main

import (
	"errors"

	"coop-budget/internal/analysis"
	"coop-budget/internal/config"
	"coop-budget/internal/model"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newOptimizeCmd(opts *options) *cobra.Command {
	var (
		dataPath string
		in       model.PriceOptimizationInput
		curve    []float64
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Profit-maximizing price under constant-elasticity demand",
		Example: "  coop optimize --data examples/datasets/atlas.yaml\n" +
			"  coop optimize --price 100 --quantity 1000 --cost 60 --fixed 10000 --elasticity -2 --curve 80,100,120,140",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := opts.logger()
			defer func() { _ = log.Sync() }()

			var d *config.Dataset
			merged := in
			if dataPath != "" {
				var err error
				d, err = config.Load(dataPath)
				if err != nil {
					return err
				}
				if d.Optimization == nil {
					return errors.New("dataset has no optimization section")
				}
				// Flags given on the command line override the dataset.
				merged = *d.Optimization
				flags := cmd.Flags()
				if flags.Changed("price") {
					merged.CurrentPrice = in.CurrentPrice
				}
				if flags.Changed("quantity") {
					merged.CurrentQuantity = in.CurrentQuantity
				}
				if flags.Changed("cost") {
					merged.VariableCostPerUnit = in.VariableCostPerUnit
				}
				if flags.Changed("fixed") {
					merged.FixedCosts = in.FixedCosts
				}
				if flags.Changed("elasticity") {
					merged.Elasticity = in.Elasticity
				}
			}

			res, err := analysis.OptimizePrice(merged)
			if err != nil {
				log.Info("optimization rejected", zap.Error(err))
				return err
			}

			var points []analysis.CurvePoint
			if len(curve) > 0 {
				points, err = analysis.ProfitCurve(merged, curve)
				if err != nil {
					return err
				}
			}
			printOptimization(cmd.OutOrStdout(), opts.formatter(d), merged, res, points)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&dataPath, "data", "", "Dataset YAML file with an optimization section")
	f.Float64Var(&in.CurrentPrice, "price", 0, "Current (anchor) price")
	f.Float64Var(&in.CurrentQuantity, "quantity", 0, "Quantity sold at the current price")
	f.Float64Var(&in.VariableCostPerUnit, "cost", 0, "Variable cost per unit")
	f.Float64Var(&in.FixedCosts, "fixed", 0, "Fixed costs")
	f.Float64Var(&in.Elasticity, "elasticity", 0, "Price elasticity of demand (must be < -1)")
	f.Float64SliceVar(&curve, "curve", nil, "Prices at which to sample the profit curve")
	return cmd
}
