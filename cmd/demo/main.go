package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coop-budget/internal/analysis"
	"coop-budget/internal/data"

	"github.com/brianvoe/gofakeit/v7"
	"gopkg.in/yaml.v3"
)

// Demo:
// - Generate a synthetic cooperative dataset (reproducible with --seed)
// - Run variance, pricing and budget analyses on it to show how the pieces fit together
// - Optionally write the dataset as YAML for the API and CLI to load
func main() {
	seed := flag.Uint64("seed", 1, "Faker seed (0 = random)")
	products := flag.Int("products", 4, "Number of products")
	markets := flag.String("markets", "maroc,export", "Comma-separated markets")
	missing := flag.Float64("missing", 0.1, "Share of actual quarters left blank")
	out := flag.String("out", "", "Optional path to write the dataset YAML (e.g. examples/datasets/demo.yaml)")
	flag.Parse()

	d := data.SyntheticDataset(gofakeit.New(*seed), data.SyntheticOptions{
		Products:    *products,
		Markets:     strings.Split(*markets, ","),
		MissingRate: *missing,
	})
	if err := d.Validate(); err != nil {
		panic(err)
	}

	fmt.Printf("Dataset: %s (%s), %d products\n\n", d.Name, d.Currency, len(d.Products))

	p := analysis.AggregateVariances(d.Products)
	for _, r := range analysis.RankByImpact(p) {
		fmt.Printf("%2d. %-28s price=%12.2f qty=%12.2f total=%12.2f %s\n",
			r.Rank, r.Name, r.PriceVariance, r.QuantityVariance, r.TotalVariance, r.Direction())
	}
	fmt.Printf("Portfolio total=%.2f favorable=%v\n\n", p.TotalVariance, p.Favorable())

	res, err := analysis.OptimizePrice(*d.Optimization)
	if err != nil {
		fmt.Printf("Pricing: %v\n\n", err)
	} else {
		fmt.Printf("Pricing %s: current=%.2f optimal=%.2f qty=%.0f profit=%.2f\n\n",
			d.Products[0].Name, d.Optimization.CurrentPrice, res.OptimalPrice, res.OptimalQuantity, res.MaxProfit)
	}

	rows := analysis.CompareBudgetToActual(d.BudgetFigures(), d.ActualFigures())
	s := analysis.SummarizeBySegment(rows)
	fmt.Printf("Budget: budgeted=%.2f actual=%.2f variance=%.2f missing=%d\n",
		s.TotalBudgeted, s.TotalActual, s.TotalVariance, s.Missing)
	for _, r := range rows {
		if err := r.Err(); err != nil {
			fmt.Printf("  %v\n", err)
		}
	}

	if *out != "" {
		raw, err := yaml.Marshal(&d)
		if err != nil {
			panic(err)
		}
		if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
			panic(err)
		}
		if err := os.WriteFile(*out, raw, 0o644); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote dataset to %s\n", *out)
	}
}
