package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRecordsJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(p, []byte(`[{"name":"ATLAS P1","planned_quantity":15000,"planned_price":180,"actual_quantity":12000,"actual_price":195}]`), 0o644))

	recs, err := LoadRecordsJSON(p)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 12000.0, recs[0].ActualQuantity)

	require.NoError(t, os.WriteFile(p, []byte(`{`), 0o644))
	_, err = LoadRecordsJSON(p)
	assert.Error(t, err)
}
