package model

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
)

func TestComputeVariance_AtlasP1(t *testing.T) {
	r := ProductVarianceRecord{
		Name:            "ATLAS P1",
		PlannedQuantity: 15000,
		PlannedPrice:    180,
		ActualQuantity:  12000,
		ActualPrice:     195,
	}

	v := ComputeVariance(r)

	assert.Equal(t, 180000.0, v.PriceVariance)
	assert.Equal(t, -540000.0, v.QuantityVariance)
	assert.Equal(t, -360000.0, v.TotalVariance)
	assert.False(t, v.Favorable)
	assert.Equal(t, DirectionUnfavorable, v.Direction())
}

func TestComputeVariance_Cases(t *testing.T) {
	tests := []struct {
		name      string
		record    ProductVarianceRecord
		wantTotal float64
		favorable bool
	}{
		{
			name:      "on plan is favorable",
			record:    ProductVarianceRecord{PlannedQuantity: 10, PlannedPrice: 5, ActualQuantity: 10, ActualPrice: 5},
			wantTotal: 0,
			favorable: true,
		},
		{
			name:      "higher price and volume",
			record:    ProductVarianceRecord{PlannedQuantity: 100, PlannedPrice: 10, ActualQuantity: 120, ActualPrice: 11},
			wantTotal: 120*11 - 100*10,
			favorable: true,
		},
		{
			name:      "negative inputs follow arithmetic",
			record:    ProductVarianceRecord{PlannedQuantity: -5, PlannedPrice: 2, ActualQuantity: 3, ActualPrice: 1},
			wantTotal: 3*1 - (-5 * 2),
			favorable: true,
		},
		{
			name:      "price drop outweighs volume gain",
			record:    ProductVarianceRecord{PlannedQuantity: 100, PlannedPrice: 10, ActualQuantity: 110, ActualPrice: 8},
			wantTotal: 110*8 - 100*10,
			favorable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ComputeVariance(tt.record)
			assert.InDelta(t, tt.wantTotal, v.TotalVariance, 1e-9)
			assert.Equal(t, tt.favorable, v.Favorable)
		})
	}
}

func TestComputeVariance_NonFinitePropagates(t *testing.T) {
	v := ComputeVariance(ProductVarianceRecord{
		PlannedQuantity: 10,
		PlannedPrice:    math.NaN(),
		ActualQuantity:  10,
		ActualPrice:     5,
	})
	assert.True(t, math.IsNaN(v.TotalVariance))
	assert.False(t, v.Favorable)

	v = ComputeVariance(ProductVarianceRecord{
		PlannedQuantity: 10,
		PlannedPrice:    5,
		ActualQuantity:  10,
		ActualPrice:     math.Inf(1),
	})
	assert.True(t, math.IsInf(v.TotalVariance, 1))
	assert.True(t, v.Favorable)
}

func TestComputeVariance_Identity(t *testing.T) {
	f := gofakeit.New(20240101)

	for i := 0; i < 500; i++ {
		r := ProductVarianceRecord{
			Name:             f.ProductName(),
			PlannedQuantity:  f.Float64Range(0, 50000),
			PlannedPrice:     f.Float64Range(0, 500),
			ActualQuantity:   f.Float64Range(0, 50000),
			ActualPrice:      f.Float64Range(0, 500),
			StandardUnitCost: f.Float64Range(0, 300),
		}
		v := ComputeVariance(r)

		assert.InDelta(t, v.TotalVariance, v.PriceVariance+v.QuantityVariance, 1e-9, "record %+v", r)

		// Scale the tolerance with the magnitudes involved; the two forms round differently.
		tol := 1e-9 * math.Max(1, math.Abs(r.ActualRevenue())+math.Abs(r.PlannedRevenue()))
		assert.InDelta(t, r.ActualRevenue()-r.PlannedRevenue(), v.TotalVariance, tol, "record %+v", r)
		assert.Equal(t, v.TotalVariance >= 0, v.Favorable)
	}
}

func TestMargins(t *testing.T) {
	r := ProductVarianceRecord{
		PlannedQuantity:  15000,
		PlannedPrice:     180,
		ActualQuantity:   12000,
		ActualPrice:      195,
		StandardUnitCost: 120,
	}
	assert.Equal(t, 900000.0, r.PlannedMargin())
	assert.Equal(t, 900000.0, r.ActualMargin())
	assert.Equal(t, 2700000.0, r.PlannedRevenue())
	assert.Equal(t, 2340000.0, r.ActualRevenue())
}
