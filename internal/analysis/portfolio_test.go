package analysis

import (
	"testing"

	"coop-budget/internal/model"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func atlasRecords() []model.ProductVarianceRecord {
	return []model.ProductVarianceRecord{
		{Name: "ATLAS P1", PlannedQuantity: 15000, PlannedPrice: 180, ActualQuantity: 12000, ActualPrice: 195, StandardUnitCost: 120},
		{Name: "ATLAS P2", PlannedQuantity: 8000, PlannedPrice: 250, ActualQuantity: 9000, ActualPrice: 240, StandardUnitCost: 170},
		{Name: "ATLAS P3", PlannedQuantity: 5000, PlannedPrice: 90, ActualQuantity: 5000, ActualPrice: 90, StandardUnitCost: 55},
	}
}

func TestAggregateVariances_Empty(t *testing.T) {
	for _, in := range [][]model.ProductVarianceRecord{nil, {}} {
		p := AggregateVariances(in)

		require.NotNil(t, p.PerProduct)
		assert.Empty(t, p.PerProduct)
		assert.Zero(t, p.TotalPriceVariance)
		assert.Zero(t, p.TotalQuantityVariance)
		assert.Zero(t, p.TotalVariance)
		assert.True(t, p.Favorable())
	}
}

func TestAggregateVariances_OrderAndTotals(t *testing.T) {
	records := atlasRecords()
	p := AggregateVariances(records)

	require.Len(t, p.PerProduct, 3)
	for i, r := range records {
		assert.Equal(t, r.Name, p.PerProduct[i].Name)
		assert.Equal(t, model.ComputeVariance(r), p.PerProduct[i].VarianceResult)
	}

	// P1: 180000 / -540000, P2: -90000 / 250000, P3: 0 / 0
	assert.InDelta(t, 90000.0, p.TotalPriceVariance, 1e-9)
	assert.InDelta(t, -290000.0, p.TotalQuantityVariance, 1e-9)
	assert.InDelta(t, -200000.0, p.TotalVariance, 1e-9)
	assert.False(t, p.Favorable())
}

func TestAggregateVariances_Linearity(t *testing.T) {
	f := gofakeit.New(7)

	for i := 0; i < 200; i++ {
		r1 := randomRecord(f)
		r2 := randomRecord(f)

		p := AggregateVariances([]model.ProductVarianceRecord{r1, r2})
		want := model.ComputeVariance(r1).TotalVariance + model.ComputeVariance(r2).TotalVariance

		assert.InDelta(t, want, p.TotalVariance, 1e-9)
		assert.InDelta(t, p.TotalVariance, p.TotalPriceVariance+p.TotalQuantityVariance, 1e-6)
	}
}

func TestRankByImpact(t *testing.T) {
	ranked := RankByImpact(AggregateVariances(atlasRecords()))

	require.Len(t, ranked, 3)
	assert.Equal(t, "ATLAS P1", ranked[0].Name)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "ATLAS P2", ranked[1].Name)
	assert.Equal(t, "ATLAS P3", ranked[2].Name)
	assert.Equal(t, 3, ranked[2].Rank)
}

func TestRankByImpact_TiesKeepInputOrder(t *testing.T) {
	records := []model.ProductVarianceRecord{
		{Name: "a", PlannedQuantity: 10, PlannedPrice: 1, ActualQuantity: 11, ActualPrice: 1},
		{Name: "b", PlannedQuantity: 10, PlannedPrice: 1, ActualQuantity: 9, ActualPrice: 1},
	}
	ranked := RankByImpact(AggregateVariances(records))

	assert.Equal(t, "a", ranked[0].Name)
	assert.Equal(t, "b", ranked[1].Name)
}

func randomRecord(f *gofakeit.Faker) model.ProductVarianceRecord {
	return model.ProductVarianceRecord{
		Name:            f.ProductName(),
		PlannedQuantity: f.Float64Range(0, 20000),
		PlannedPrice:    f.Float64Range(1, 400),
		ActualQuantity:  f.Float64Range(0, 20000),
		ActualPrice:     f.Float64Range(1, 400),
	}
}
