package analysis_service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"project-analysis/services/analysis_service"
)

func TestRiskLevelThresholds(t *testing.T) {
	s := analysis_service.DefaultSettings()

	assert.Equal(t, analysis_service.RiskHigh, s.RiskLevel(0.25))
	assert.Equal(t, analysis_service.RiskHigh, s.RiskLevel(0.20))
	assert.Equal(t, analysis_service.RiskMedium, s.RiskLevel(0.15))
	assert.Equal(t, analysis_service.RiskMedium, s.RiskLevel(0.10))
	assert.Equal(t, analysis_service.RiskLow, s.RiskLevel(0.05))
	assert.Equal(t, analysis_service.RiskLow, s.RiskLevel(0))
}

func TestDatasetStoreLifecycle(t *testing.T) {
	store := analysis_service.NewDatasetStore()

	_, _, ok := store.Dataset()
	assert.False(t, ok)

	ds := mustDataset(t, "a,b\n1,2\n")
	meta := store.SetDataset(ds, "orders.csv", analysis_service.SourceUpload)
	assert.Equal(t, "orders.csv", meta.FileName)
	assert.Equal(t, 1, meta.RowCount)
	assert.Equal(t, []string{"a", "b"}, meta.Columns)

	got, gotMeta, ok := store.Dataset()
	require.True(t, ok)
	assert.Same(t, ds, got)
	assert.Equal(t, meta.FileName, gotMeta.FileName)

	store.Clear()
	_, _, ok = store.Dataset()
	assert.False(t, ok)
}

func TestUpdateSettings(t *testing.T) {
	store := analysis_service.NewDatasetStore()

	s := store.Settings()
	s.HighViolationThreshold = 30
	s.ShowCharts = false
	store.UpdateSettings(s)

	got := store.Settings()
	assert.Equal(t, 30.0, got.HighViolationThreshold)
	assert.False(t, got.ShowCharts)
}
