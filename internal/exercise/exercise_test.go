package exercise

import (
	"testing"

	"coop-budget/internal/analysis"
	"coop-budget/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		kind    Kind
		wantErr bool
	}{
		{
			name: "variance",
			raw: `{"name":"Q1 review","kind":"variance","payload":{"records":[
				{"name":"ATLAS P1","planned_quantity":15000,"planned_price":180,"actual_quantity":12000,"actual_price":195}]}}`,
			kind: KindVariance,
		},
		{
			name: "optimization",
			raw: `{"name":"pricing","kind":"optimization","payload":{"current_price":100,"current_quantity":1000,
				"variable_cost_per_unit":60,"fixed_costs":10000,"elasticity":-2}}`,
			kind: KindOptimization,
		},
		{
			name: "budget",
			raw:  `{"name":"sales","kind":"budget","payload":{"budgeted":[{"product":"P1","market":"maroc","quarter":"Q1","amount":1050}],"actual":[]}}`,
			kind: KindBudget,
		},
		{name: "missing name", raw: `{"kind":"budget","payload":{}}`, wantErr: true},
		{name: "unknown kind", raw: `{"name":"x","kind":"forecast","payload":{}}`, wantErr: true},
		{name: "missing payload", raw: `{"name":"x","kind":"variance"}`, wantErr: true},
		{name: "null payload", raw: `{"name":"x","kind":"variance","payload":null}`, wantErr: true},
		{name: "empty records", raw: `{"name":"x","kind":"variance","payload":{"records":[]}}`, kind: KindVariance},
		{name: "unnamed record", raw: `{"name":"x","kind":"variance","payload":{"records":[{"planned_price":1}]}}`, wantErr: true},
		{name: "bad quarter", raw: `{"name":"x","kind":"budget","payload":{"budgeted":[{"product":"P1","market":"m","quarter":"Q5"}]}}`, wantErr: true},
		{name: "unknown field", raw: `{"name":"x","kind":"optimization","payload":{"price":1}}`, wantErr: true},
		{name: "not json", raw: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := Decode([]byte(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidExercise)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, ex.Kind)
			assert.Equal(t, tt.kind == KindVariance, ex.Variance != nil)
			assert.Equal(t, tt.kind == KindOptimization, ex.Optimization != nil)
			assert.Equal(t, tt.kind == KindBudget, ex.Budget != nil)
		})
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	ex := Exercise{
		Name: "pricing",
		Kind: KindOptimization,
		Optimization: &model.PriceOptimizationInput{
			CurrentPrice: 100, CurrentQuantity: 1000, VariableCostPerUnit: 60, FixedCosts: 10000, Elasticity: -2,
		},
	}
	raw, err := ex.Payload()
	require.NoError(t, err)

	back, err := FromPayload(ex.Name, ex.Kind, raw)
	require.NoError(t, err)
	assert.Equal(t, *ex.Optimization, *back.Optimization)

	_, err = Exercise{Kind: KindBudget}.Payload()
	assert.ErrorIs(t, err, ErrInvalidExercise)
}

func TestRun(t *testing.T) {
	t.Run("variance", func(t *testing.T) {
		out, err := Run(Exercise{
			ID:   "ex-1",
			Name: "review",
			Kind: KindVariance,
			Variance: &VarianceInput{Records: []model.ProductVarianceRecord{
				{Name: "ATLAS P1", PlannedQuantity: 15000, PlannedPrice: 180, ActualQuantity: 12000, ActualPrice: 195},
			}},
		})
		require.NoError(t, err)
		_, perr := uuid.Parse(out.ID)
		assert.NoError(t, perr)
		assert.Equal(t, "ex-1", out.ExerciseID)
		require.NotNil(t, out.Portfolio)
		assert.Equal(t, -360000.0, out.Portfolio.TotalVariance)
		assert.Len(t, out.Ranking, 1)
		assert.False(t, out.CreatedAt.IsZero())
	})

	t.Run("optimization error", func(t *testing.T) {
		_, err := Run(Exercise{
			Kind:         KindOptimization,
			Optimization: &model.PriceOptimizationInput{CurrentPrice: 100, CurrentQuantity: 1000, VariableCostPerUnit: 60, Elasticity: -0.5},
		})
		assert.ErrorIs(t, err, analysis.ErrInvalidElasticity)
	})

	t.Run("budget", func(t *testing.T) {
		out, err := Run(Exercise{
			Kind: KindBudget,
			Budget: &BudgetInput{
				Budgeted: []model.SalesFigure{{Product: "P1", Market: "maroc", Quarter: model.Q1, Amount: 1050}},
			},
		})
		require.NoError(t, err)
		require.Len(t, out.Comparison, 1)
		assert.Equal(t, analysis.StatusMissingActual, out.Comparison[0].Status)
		assert.Equal(t, 1, out.Summary.Missing)
	})

	t.Run("mismatched payload", func(t *testing.T) {
		_, err := Run(Exercise{Kind: KindBudget})
		assert.ErrorIs(t, err, ErrInvalidExercise)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := Run(Exercise{Kind: "forecast"})
		assert.ErrorIs(t, err, ErrInvalidExercise)
	})
}
