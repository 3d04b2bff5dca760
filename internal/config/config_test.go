package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"coop-budget/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
name: ATLAS 2024
products:
  - name: ATLAS P1
    planned_quantity: 15000
    planned_price: 180
    actual_quantity: 12000
    actual_price: 195
    standard_unit_cost: 120
optimization:
  current_price: 100
  current_quantity: 1000
  variable_cost_per_unit: 60
  fixed_costs: 10000
  elasticity: -2
budget:
  - product: P1
    market: maroc
    quarters: [1050, 1100, 980, 1200]
actual:
  - product: P1
    market: maroc
    quarters: [~, 1150, 1000, 1250]
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "atlas.yaml", baseYAML)

	d, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "ATLAS 2024", d.Name)
	assert.Equal(t, "MAD", d.Currency)
	require.Len(t, d.Products, 1)
	assert.Equal(t, 195.0, d.Products[0].ActualPrice)
	require.NotNil(t, d.Optimization)
	assert.Equal(t, -2.0, d.Optimization.Elasticity)

	budget := d.BudgetFigures()
	require.Len(t, budget, 4)
	assert.Equal(t, model.SalesFigure{Product: "P1", Market: "maroc", Quarter: model.Q1, Amount: 1050}, budget[0])

	actual := d.ActualFigures()
	require.Len(t, actual, 3)
	assert.Equal(t, model.Q2, actual[0].Quarter)
}

func TestLoad_BaseFileMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", baseYAML)
	p := writeFile(t, dir, "what-if.yaml", `
base_file: base.yaml
name: ATLAS what-if
currency: EUR
optimization:
  current_price: 100
  current_quantity: 1000
  variable_cost_per_unit: 60
  fixed_costs: 10000
  elasticity: -3
`)

	d, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "ATLAS what-if", d.Name)
	assert.Equal(t, "EUR", d.Currency)
	assert.Equal(t, -3.0, d.Optimization.Elasticity)
	assert.Len(t, d.Products, 1, "products come from the base file")
	assert.Len(t, d.Budget, 1)
	assert.Empty(t, d.BaseFile)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no name", "products:\n  - name: P1\n"},
		{"empty", "name: empty\n"},
		{"unnamed product", "name: x\nproducts:\n  - planned_price: 3\n"},
		{"too many quarters", "name: x\nbudget:\n  - product: P1\n    market: m\n    quarters: [1, 2, 3, 4, 5]\n"},
		{"bad yaml", "name: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), "d.yaml", tt.body)
			_, err := Load(p)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingBaseFile(t *testing.T) {
	p := writeFile(t, t.TempDir(), "d.yaml", "base_file: nowhere.yaml\nname: x\n")
	_, err := LoadUnchecked(p)
	assert.Error(t, err)
}

func TestLoad_BaseFileCycle(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "base_file: b.yaml\nname: a\n")
	writeFile(t, dir, "b.yaml", "base_file: a.yaml\nname: b\n")
	self := writeFile(t, dir, "self.yaml", "base_file: self.yaml\nname: s\n")

	_, err := LoadUnchecked(a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_file cycle")

	_, err = Load(self)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_file cycle")
}

func TestMerge_KeepsBaseWhenOverrideEmpty(t *testing.T) {
	base := Dataset{Name: "a", Currency: "MAD", Products: []model.ProductVarianceRecord{{Name: "P1"}}}
	out := Merge(base, Dataset{})
	assert.Equal(t, base, out)
}

func TestLoadServer_Defaults(t *testing.T) {
	s, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, "8080", s.App.Port)
	assert.Equal(t, "development", s.App.Env)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, time.Hour, s.Cache.TTL)
	assert.Equal(t, []string{"*"}, s.HTTP.CORSAllowOrigins)
	assert.False(t, s.IsProduction())
}

func TestLoadServer_Env(t *testing.T) {
	t.Setenv("COOP_APP_PORT", "9090")
	t.Setenv("COOP_APP_ENV", "production")
	t.Setenv("COOP_STORE_PATH", "/tmp/x.db")
	t.Setenv("COOP_CACHE_TTL", "5m")

	s, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, "9090", s.App.Port)
	assert.True(t, s.IsProduction())
	assert.Equal(t, "/tmp/x.db", s.Store.Path)
	assert.Equal(t, 5*time.Minute, s.Cache.TTL)
}

func TestLoadServer_InvalidTTL(t *testing.T) {
	t.Setenv("COOP_CACHE_TTL", "0s")
	_, err := LoadServer()
	assert.Error(t, err)
}

func TestLoad_ShippedPresets(t *testing.T) {
	d, err := Load(filepath.Join("..", "..", "examples", "datasets", "atlas.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "MAD", d.Currency)
	require.Len(t, d.Products, 3)
	assert.Equal(t, 15000.0, d.Products[0].PlannedQuantity)
	// 3 full budget rows; P1/maroc Q1 and P3's last two quarters are unreported.
	assert.Len(t, d.BudgetFigures(), 12)
	assert.Len(t, d.ActualFigures(), 13)

	whatIf, err := Load(filepath.Join("..", "..", "examples", "datasets", "atlas-price-cut.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Cooperative Atlas (price cut)", whatIf.Name)
	assert.Equal(t, d.Products, whatIf.Products)
	require.NotNil(t, whatIf.Optimization)
	assert.Equal(t, -3.0, whatIf.Optimization.Elasticity)
}
