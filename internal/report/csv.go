package report

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"coop-budget/internal/analysis"
)

// WriteLedgerCSV writes the ledger to path, creating parent directories.
func WriteLedgerCSV(path string, ledger Ledger) error {
	return writeFile(path, func(w io.Writer) error { return EncodeLedgerCSV(w, ledger) })
}

func EncodeLedgerCSV(out io.Writer, ledger Ledger) error {
	w := csv.NewWriter(out)

	header := []string{
		"index",
		"product",
		"planned_quantity",
		"planned_price",
		"actual_quantity",
		"actual_price",
		"planned_revenue",
		"actual_revenue",
		"planned_margin",
		"actual_margin",
		"price_variance",
		"quantity_variance",
		"total_variance",
		"cum_variance",
		"direction",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger.Rows {
		row := []string{
			strconv.Itoa(r.Index),
			r.Name,
			fmtQty(r.PlannedQuantity),
			FormatMoney(r.PlannedPrice),
			fmtQty(r.ActualQuantity),
			FormatMoney(r.ActualPrice),
			FormatMoney(r.PlannedRevenue),
			FormatMoney(r.ActualRevenue),
			FormatMoney(r.PlannedMargin),
			FormatMoney(r.ActualMargin),
			FormatMoney(r.PriceVariance),
			FormatMoney(r.QuantityVariance),
			FormatMoney(r.TotalVariance),
			FormatMoney(r.CumVariance),
			string(r.Direction),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteComparisonCSV writes budget-to-actual rows to path. Rows without a
// counterpart leave the missing side and the variance empty.
func WriteComparisonCSV(path string, rows []analysis.SegmentVariance) error {
	return writeFile(path, func(w io.Writer) error { return EncodeComparisonCSV(w, rows) })
}

func EncodeComparisonCSV(out io.Writer, rows []analysis.SegmentVariance) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"product", "market", "quarter", "budgeted", "actual", "variance", "status"}); err != nil {
		return err
	}
	for _, r := range rows {
		budgeted, actual, variance := FormatMoney(r.Budgeted), FormatMoney(r.Actual), FormatMoney(r.Variance)
		switch r.Status {
		case analysis.StatusMissingActual:
			actual, variance = "", ""
		case analysis.StatusMissingBudget:
			budgeted, variance = "", ""
		}
		row := []string{
			r.Key.Product,
			r.Key.Market,
			string(r.Key.Quarter),
			budgeted,
			actual,
			variance,
			string(r.Status),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeFile(path string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fmtQty(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
