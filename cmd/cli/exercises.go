package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"coop-budget/internal/cli"
	"coop-budget/internal/config"
	"coop-budget/internal/exercise"
	"coop-budget/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExercisesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exercises",
		Aliases: []string{"ex"},
		Short:   "Manage saved exercises",
	}
	cmd.AddCommand(
		newExercisesImportCmd(opts),
		newExercisesListCmd(opts),
		newExercisesRunCmd(opts),
		newExercisesDeleteCmd(opts),
	)
	return cmd
}

func newExercisesImportCmd(opts *options) *cobra.Command {
	var dataPath string

	cmd := &cobra.Command{
		Use:   "import [exercise.json...]",
		Short: "Save exercises from JSON files or from a dataset",
		Long: "Each JSON file holds one exercise: {\"name\", \"kind\", \"payload\"}.\n" +
			"With --data, every section of the dataset is saved as its own exercise.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataPath == "" && len(args) == 0 {
				return errors.New("give exercise files or --data")
			}
			log := opts.logger()
			defer func() { _ = log.Sync() }()

			var pending []exercise.Exercise
			for _, path := range args {
				raw, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				ex, err := exercise.Decode(raw)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				pending = append(pending, ex)
			}
			if dataPath != "" {
				d, err := config.Load(dataPath)
				if err != nil {
					return err
				}
				pending = append(pending, datasetExercises(d)...)
			}

			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			w := cmd.OutOrStdout()
			for _, ex := range pending {
				saved, err := s.Save(cmd.Context(), ex)
				if err != nil {
					return err
				}
				log.Info("exercise saved", zap.String("id", saved.ID), zap.String("kind", string(saved.Kind)))
				writeln(w, saved.ID, string(saved.Kind), saved.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "Dataset YAML file to import")
	return cmd
}

// datasetExercises splits a dataset into one exercise per section it has.
func datasetExercises(d *config.Dataset) []exercise.Exercise {
	var out []exercise.Exercise
	if len(d.Products) > 0 {
		out = append(out, exercise.Exercise{
			Name:     d.Name + " / variance",
			Kind:     exercise.KindVariance,
			Variance: &exercise.VarianceInput{Records: d.Products},
		})
	}
	if d.Optimization != nil {
		opt := *d.Optimization
		out = append(out, exercise.Exercise{
			Name:         d.Name + " / pricing",
			Kind:         exercise.KindOptimization,
			Optimization: &opt,
		})
	}
	if len(d.Budget) > 0 || len(d.Actual) > 0 {
		out = append(out, exercise.Exercise{
			Name: d.Name + " / budget",
			Kind: exercise.KindBudget,
			Budget: &exercise.BudgetInput{
				Budgeted: d.BudgetFigures(),
				Actual:   d.ActualFigures(),
			},
		})
	}
	return out
}

func newExercisesListCmd(opts *options) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved exercises",
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := exercise.Kind(kind)
			if k != "" && !k.Valid() {
				return fmt.Errorf("unknown kind %q", kind)
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			list, err := s.List(cmd.Context(), k)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(list) == 0 {
				writeln(w, "\n  No saved exercises.")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, ex := range list {
				rows = append(rows, []string{ex.ID, string(ex.Kind), ex.Name, ex.CreatedAt.Local().Format("2006-01-02 15:04")})
			}
			writeln(w)
			fmt.Fprint(w, cli.RenderTable(cli.Table{
				Title:   "Saved Exercises (" + strconv.Itoa(len(list)) + ")",
				Headers: []string{"ID", "Kind", "Name", "Created"},
				Rows:    rows,
			}))
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Only list one kind (variance, optimization, budget)")
	return cmd
}

func newExercisesRunCmd(opts *options) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "run <id>",
		Short: "Run a saved exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := opts.logger()
			defer func() { _ = log.Sync() }()

			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			ex, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := exercise.Run(ex)
			if err != nil {
				return err
			}
			log.Debug("exercise run", zap.String("exercise", ex.ID), zap.String("analysis", out.ID))

			w := cmd.OutOrStdout()
			f := opts.formatter(nil)
			switch {
			case out.Portfolio != nil:
				printPortfolio(w, f, *out.Portfolio)
				if outPath != "" {
					return report.WriteLedgerCSV(outPath, report.BuildLedger(*out.Portfolio))
				}
			case out.Optimization != nil:
				printOptimization(w, f, *ex.Optimization, *out.Optimization, nil)
			default:
				printComparison(w, f, out.Comparison)
				if outPath != "" {
					return report.WriteComparisonCSV(outPath, out.Comparison)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "Optional CSV output path (variance and budget exercises)")
	return cmd
}

func newExercisesDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			writeln(cmd.OutOrStdout(), "Deleted", args[0])
			return nil
		},
	}
}
