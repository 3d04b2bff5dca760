package analysis

import (
	"errors"
	"fmt"

	"coop-budget/internal/model"
)

// ErrMissingComparable marks a segment present on one side of a budget/actual
// comparison only.
var ErrMissingComparable = errors.New("missing comparable")

// ComparisonStatus tells whether a segment had both a budget and an actual.
// Keep these values stable; they are intended for CSV and JSON output.
type ComparisonStatus string

const (
	StatusComparable    ComparisonStatus = "COMPARABLE"
	StatusMissingActual ComparisonStatus = "MISSING_ACTUAL"
	StatusMissingBudget ComparisonStatus = "MISSING_BUDGET"
)

// SegmentVariance is one row of a budget-to-actual comparison.
// Variance is only meaningful when Status is StatusComparable.
type SegmentVariance struct {
	Key      model.SegmentKey
	Budgeted float64
	Actual   float64
	Variance float64
	Status   ComparisonStatus
}

func (s SegmentVariance) Comparable() bool {
	return s.Status == StatusComparable
}

// Err returns nil for comparable rows and an error wrapping
// ErrMissingComparable otherwise.
func (s SegmentVariance) Err() error {
	switch s.Status {
	case StatusMissingActual:
		return fmt.Errorf("%w: no actual for budgeted segment %s", ErrMissingComparable, s.Key)
	case StatusMissingBudget:
		return fmt.Errorf("%w: no budget for actual segment %s", ErrMissingComparable, s.Key)
	default:
		return nil
	}
}

// CompareBudgetToActual matches figures by (product, market, quarter) and
// returns actual - budgeted per key. Segments found on one side only are kept
// with a missing status; the batch never fails as a whole.
//
// Ordering: budget keys in first-seen order, then actual-only keys in
// first-seen order. Repeated keys on the same side are summed.
func CompareBudgetToActual(budgeted, actual []model.SalesFigure) []SegmentVariance {
	budgetKeys, budgetSums := sumByKey(budgeted)
	actualKeys, actualSums := sumByKey(actual)

	out := make([]SegmentVariance, 0, len(budgetKeys)+len(actualKeys))
	for _, k := range budgetKeys {
		b := budgetSums[k]
		a, ok := actualSums[k]
		if !ok {
			out = append(out, SegmentVariance{Key: k, Budgeted: b, Status: StatusMissingActual})
			continue
		}
		out = append(out, SegmentVariance{
			Key:      k,
			Budgeted: b,
			Actual:   a,
			Variance: a - b,
			Status:   StatusComparable,
		})
	}
	for _, k := range actualKeys {
		if _, ok := budgetSums[k]; ok {
			continue
		}
		out = append(out, SegmentVariance{Key: k, Actual: actualSums[k], Status: StatusMissingBudget})
	}
	return out
}

func sumByKey(figs []model.SalesFigure) ([]model.SegmentKey, map[model.SegmentKey]float64) {
	keys := make([]model.SegmentKey, 0, len(figs))
	sums := make(map[model.SegmentKey]float64, len(figs))
	for _, f := range figs {
		k := f.Key()
		if _, seen := sums[k]; !seen {
			keys = append(keys, k)
		}
		sums[k] += f.Amount
	}
	return keys, sums
}

// SegmentSummary rolls comparable variances up by product and by quarter.
type SegmentSummary struct {
	TotalBudgeted float64
	TotalActual   float64
	TotalVariance float64
	ByProduct     map[string]float64
	ByQuarter     map[model.Quarter]float64
	Missing       int
}

// SummarizeBySegment totals the comparable rows. Rows with a missing side are
// only counted.
func SummarizeBySegment(rows []SegmentVariance) SegmentSummary {
	s := SegmentSummary{
		ByProduct: map[string]float64{},
		ByQuarter: map[model.Quarter]float64{},
	}
	for _, r := range rows {
		if !r.Comparable() {
			s.Missing++
			continue
		}
		s.TotalBudgeted += r.Budgeted
		s.TotalActual += r.Actual
		s.TotalVariance += r.Variance
		s.ByProduct[r.Key.Product] += r.Variance
		s.ByQuarter[r.Key.Quarter] += r.Variance
	}
	return s
}
