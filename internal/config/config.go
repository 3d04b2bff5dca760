package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coop-budget/internal/model"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Dataset is the on-disk shape (YAML) of one cooperative's figures for an
// exercise year.
type Dataset struct {
	// Optional: load figures from another dataset file (e.g. examples/datasets/*.yaml).
	// If both BaseFile and inline sections are provided, inline sections override BaseFile.
	BaseFile     string                        `yaml:"base_file,omitempty"`
	Name         string                        `yaml:"name"`
	Currency     string                        `yaml:"currency,omitempty"`
	Products     []model.ProductVarianceRecord `yaml:"products" validate:"dive"`
	Optimization *model.PriceOptimizationInput `yaml:"optimization,omitempty"`
	Budget       []SalesRow                    `yaml:"budget,omitempty" validate:"dive"`
	Actual       []SalesRow                    `yaml:"actual,omitempty" validate:"dive"`
}

// SalesRow is one product/market line of a quarterly sales table.
// Missing quarters are written as null (~) and become gaps, not zeros.
type SalesRow struct {
	Product  string     `yaml:"product" validate:"required"`
	Market   string     `yaml:"market" validate:"required"`
	Quarters []*float64 `yaml:"quarters" validate:"max=4"`
}

var validate = validator.New()

func Load(path string) (*Dataset, error) {
	d, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	// Default currency is the Moroccan dirham; most cooperative datasets omit it.
	if d.Currency == "" {
		d.Currency = "MAD"
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadUnchecked loads and merges a dataset, but does not validate it.
// Useful for debugging/printing partial datasets.
func LoadUnchecked(path string) (*Dataset, error) {
	return loadChain(path, nil)
}

// loadChain follows base_file links. chain holds the absolute paths already
// being loaded, so a cycle is reported instead of recursing forever.
func loadChain(path string, chain []string) (*Dataset, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	for _, seen := range chain {
		if seen == abs {
			return nil, fmt.Errorf("base_file cycle: %s", strings.Join(append(chain, abs), " -> "))
		}
	}
	chain = append(chain, abs)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Dataset
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if d.BaseFile == "" {
		return &d, nil
	}

	basePath := d.BaseFile
	if !filepath.IsAbs(basePath) {
		// Prefer interpreting relative paths as relative to the dataset file directory,
		// but fall back to the provided path (relative to cwd) if that doesn't exist.
		cand := filepath.Join(filepath.Dir(path), basePath)
		if _, err := os.Stat(cand); err == nil {
			basePath = cand
		}
	}
	base, err := loadChain(basePath, chain)
	if err != nil {
		return nil, fmt.Errorf("load base_file: %w", err)
	}
	merged := Merge(*base, d)
	merged.BaseFile = ""
	return &merged, nil
}

func (d *Dataset) Validate() error {
	if d == nil {
		return errors.New("dataset is nil")
	}
	if d.Name == "" {
		return errors.New("name is required")
	}
	if len(d.Products) == 0 && d.Optimization == nil && len(d.Budget) == 0 && len(d.Actual) == 0 {
		return errors.New("dataset has no products, optimization or budget sections")
	}
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("dataset invalid: %w", err)
	}
	return nil
}

// Merge overlays non-empty sections from override onto base.
// Sections are replaced whole; product lists are not merged line by line.
func Merge(base, override Dataset) Dataset {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Currency != "" {
		out.Currency = override.Currency
	}
	if len(override.Products) > 0 {
		out.Products = override.Products
	}
	if override.Optimization != nil {
		out.Optimization = override.Optimization
	}
	if len(override.Budget) > 0 {
		out.Budget = override.Budget
	}
	if len(override.Actual) > 0 {
		out.Actual = override.Actual
	}
	return out
}

// BudgetFigures flattens the budget table into per-quarter figures.
func (d *Dataset) BudgetFigures() []model.SalesFigure {
	return flatten(d.Budget)
}

// ActualFigures flattens the actual table into per-quarter figures.
func (d *Dataset) ActualFigures() []model.SalesFigure {
	return flatten(d.Actual)
}

func flatten(rows []SalesRow) []model.SalesFigure {
	out := make([]model.SalesFigure, 0, len(rows)*len(model.Quarters))
	for _, r := range rows {
		for i, v := range r.Quarters {
			if i >= len(model.Quarters) {
				break
			}
			if v == nil {
				continue
			}
			out = append(out, model.SalesFigure{
				Product: r.Product,
				Market:  r.Market,
				Quarter: model.Quarters[i],
				Amount:  *v,
			})
		}
	}
	return out
}
