package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"coop-budget/internal/analysis"
	"coop-budget/internal/cli"
	"coop-budget/internal/model"
)

func printPortfolio(w io.Writer, f *cli.Formatter, p analysis.Portfolio) {
	writeln(w)
	writeln(w, cli.RenderTitle("SALES VARIANCE"))
	writeln(w)

	if len(p.PerProduct) == 0 {
		writeln(w, "  No sales lines.")
		return
	}

	rows := make([][]string, 0, len(p.PerProduct)+2)
	for _, pv := range p.PerProduct {
		rows = append(rows, []string{
			pv.Name,
			f.Signed(pv.PriceVariance),
			f.Signed(pv.QuantityVariance),
			f.Signed(pv.TotalVariance),
			cli.RenderDirection(pv.Direction()),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"TOTAL",
		f.Signed(p.TotalPriceVariance),
		f.Signed(p.TotalQuantityVariance),
		f.Signed(p.TotalVariance),
		cli.RenderDirection(model.DirectionFromVariance(p.TotalVariance)),
	})
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   "By Product",
		Headers: []string{"Product", "Price", "Quantity", "Total", "Direction"},
		Rows:    rows,
	}))
	writeln(w)

	ranked := analysis.RankByImpact(p)
	rankRows := make([][]string, 0, len(ranked))
	for _, r := range ranked {
		rankRows = append(rankRows, []string{strconv.Itoa(r.Rank), r.Name, f.Signed(r.TotalVariance)})
	}
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   "Largest Gaps",
		Headers: []string{"#", "Product", "Total"},
		Rows:    rankRows,
	}))
	writeln(w)
}

func printOptimization(w io.Writer, f *cli.Formatter, in model.PriceOptimizationInput, res model.OptimizationResult, curve []analysis.CurvePoint) {
	writeln(w)
	writeln(w, cli.RenderTitle("PRICE OPTIMIZATION"))
	writeln(w)
	writeln(w, cli.RenderKV("Current price", f.Amount(in.CurrentPrice)))
	writeln(w, cli.RenderKV("Current profit", f.Amount(in.Profit(in.CurrentPrice))))
	writeln(w, cli.RenderKV("Optimal price", f.Amount(res.OptimalPrice)))
	writeln(w, cli.RenderKV("Optimal quantity", f.Quantity(res.OptimalQuantity)))
	writeln(w, cli.RenderKV("Max profit", f.Amount(res.MaxProfit)))
	writeln(w)

	if len(curve) == 0 {
		return
	}
	rows := make([][]string, 0, len(curve))
	for _, p := range curve {
		rows = append(rows, []string{f.Amount(p.Price), f.Quantity(p.Quantity), f.Amount(p.Profit)})
	}
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   "Profit Curve",
		Headers: []string{"Price", "Quantity", "Profit"},
		Rows:    rows,
	}))
	writeln(w)
}

func printComparison(w io.Writer, f *cli.Formatter, rows []analysis.SegmentVariance) {
	writeln(w)
	writeln(w, cli.RenderTitle("BUDGET VS ACTUAL"))
	writeln(w)

	if len(rows) == 0 {
		writeln(w, "  No figures.")
		return
	}

	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		budget, actual, variance := "", "", ""
		switch r.Status {
		case analysis.StatusComparable:
			budget, actual, variance = f.Amount(r.Budgeted), f.Amount(r.Actual), f.Signed(r.Variance)
		case analysis.StatusMissingActual:
			budget = f.Amount(r.Budgeted)
		case analysis.StatusMissingBudget:
			actual = f.Amount(r.Actual)
		}
		tableRows = append(tableRows, []string{
			r.Key.Product, r.Key.Market, string(r.Key.Quarter), budget, actual, variance, string(r.Status),
		})
	}
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   "By Segment",
		Headers: []string{"Product", "Market", "Quarter", "Budget", "Actual", "Variance", "Status"},
		Rows:    tableRows,
	}))
	writeln(w)

	s := analysis.SummarizeBySegment(rows)
	products := make([]string, 0, len(s.ByProduct))
	for p := range s.ByProduct {
		products = append(products, p)
	}
	sort.Strings(products)

	summary := make([][]string, 0, len(products)+len(s.ByQuarter)+2)
	for _, p := range products {
		summary = append(summary, []string{p, f.Signed(s.ByProduct[p])})
	}
	if len(products) > 0 {
		summary = append(summary, []string{"---"})
	}
	for _, q := range model.Quarters {
		if v, ok := s.ByQuarter[q]; ok {
			summary = append(summary, []string{string(q), f.Signed(v)})
		}
	}
	summary = append(summary, []string{"---"})
	summary = append(summary, []string{"TOTAL", f.Signed(s.TotalVariance)})
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   "Comparable Totals",
		Headers: []string{"Segment", "Variance"},
		Rows:    summary,
	}))

	if s.Missing > 0 {
		writeln(w)
		writeln(w, cli.RenderWarning(fmt.Sprintf("%d segment(s) have no counterpart and are excluded from totals", s.Missing)))
	}
	writeln(w)
}
