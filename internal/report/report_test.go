package report

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"coop-budget/internal/analysis"
	"coop-budget/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePortfolio() analysis.Portfolio {
	return analysis.AggregateVariances([]model.ProductVarianceRecord{
		{Name: "ATLAS P1", PlannedQuantity: 15000, PlannedPrice: 180, ActualQuantity: 12000, ActualPrice: 195, StandardUnitCost: 120},
		{Name: "ATLAS P2", PlannedQuantity: 8000, PlannedPrice: 250, ActualQuantity: 9000, ActualPrice: 240, StandardUnitCost: 170},
	})
}

func TestBuildLedger(t *testing.T) {
	l := BuildLedger(samplePortfolio())

	require.Len(t, l.Rows, 2)
	assert.Equal(t, -360000.0, l.Rows[0].CumVariance)
	assert.Equal(t, -200000.0, l.Rows[1].CumVariance)
	assert.Equal(t, l.TotalVariance, l.Rows[1].CumVariance)
	assert.Equal(t, model.DirectionUnfavorable, l.Rows[0].Direction)
	assert.Equal(t, model.DirectionFavorable, l.Rows[1].Direction)
	assert.Equal(t, 900000.0, l.Rows[0].ActualMargin)
}

func TestEncodeLedgerCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeLedgerCSV(&buf, BuildLedger(samplePortfolio())))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "product", records[0][1])
	assert.Equal(t, "ATLAS P1", records[1][1])
	assert.Equal(t, "180000.00", records[1][10])
	assert.Equal(t, "-540000.00", records[1][11])
	assert.Equal(t, "UNFAVORABLE", records[1][14])
}

func TestWriteComparisonCSV(t *testing.T) {
	rows := analysis.CompareBudgetToActual(
		[]model.SalesFigure{{Product: "P1", Market: "maroc", Quarter: model.Q1, Amount: 1050}, {Product: "P1", Market: "maroc", Quarter: model.Q2, Amount: 1100}},
		[]model.SalesFigure{{Product: "P1", Market: "maroc", Quarter: model.Q2, Amount: 1180.456}},
	)
	path := filepath.Join(t.TempDir(), "out", "compare.csv")
	require.NoError(t, WriteComparisonCSV(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []string{"P1", "maroc", "Q1", "1050.00", "", "", "MISSING_ACTUAL"}, records[1])
	assert.Equal(t, []string{"P1", "maroc", "Q2", "1100.00", "1180.46", "80.46", "COMPARABLE"}, records[2])
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "31666.67", FormatMoney(31666.666666))
	assert.Equal(t, "-0.50", FormatMoney(-0.499))
	assert.Equal(t, "0.00", FormatMoney(0))
	assert.Equal(t, "NaN", FormatMoney(math.NaN()))
	assert.Equal(t, "+Inf", FormatMoney(math.Inf(1)))
}

func TestMoney(t *testing.T) {
	m, ok := Money(1180.456)
	require.True(t, ok)
	assert.Equal(t, "1180.46", m.StringFixed(2))

	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, ok := Money(x)
		assert.False(t, ok, "%v", x)
	}
}
