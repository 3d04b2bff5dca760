package data

import (
	"encoding/json"
	"fmt"
	"os"

	"coop-budget/internal/model"
)

// LoadRecordsJSON reads a JSON array of sales lines, as exported by the dashboard.
func LoadRecordsJSON(path string) ([]model.ProductVarianceRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []model.ProductVarianceRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}
