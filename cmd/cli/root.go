package main

import (
	"fmt"
	"io"

	"coop-budget/internal/cli"
	"coop-budget/internal/config"
	"coop-budget/internal/logger"
	"coop-budget/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options are the persistent flags shared by every command.
type options struct {
	logLevel  string
	storePath string
	locale    string
	currency  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "coop",
		Short: "Cooperative budget analysis",
		Long: "Variance analysis, price optimization and budget-to-actual comparison\n" +
			"for cooperative sales figures.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.storePath, "store", "data/coop.db", "SQLite file holding saved exercises")
	root.PersistentFlags().StringVar(&opts.locale, "lang", "fr", "Locale for amounts (BCP 47, e.g. fr, en)")
	root.PersistentFlags().StringVar(&opts.currency, "currency", "", "Currency code shown next to amounts (default: dataset currency)")

	root.AddCommand(
		newVarianceCmd(opts),
		newOptimizeCmd(opts),
		newCompareCmd(opts),
		newExercisesCmd(opts),
	)
	return root
}

func (o *options) logger() *zap.Logger {
	return logger.New(&logger.Config{Level: o.logLevel, Format: "console", Output: "stderr"})
}

// formatter picks the --currency flag, then the dataset currency.
func (o *options) formatter(d *config.Dataset) *cli.Formatter {
	currency := o.currency
	if currency == "" && d != nil {
		currency = d.Currency
	}
	return cli.NewFormatter(cli.ParseLocale(o.locale), currency)
}

func (o *options) openStore() (*store.Store, error) {
	s, err := store.Open(o.storePath)
	if err != nil {
		return nil, fmt.Errorf("opening exercise store %s: %w", o.storePath, err)
	}
	return s, nil
}

func writeln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
