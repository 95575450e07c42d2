package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

func aggregateFixture() []domain.AggregateRow {
	// Cost-sorted, as domain.Aggregate produces.
	return []domain.AggregateRow{
		{
			Category:      domain.CategoryRain,
			RecordCount:   100,
			Fatalities:    10,
			Injuries:      40,
			PropDamageUSD: 2_000_000_000,
			CropDamageUSD: 500_000_000,
			TotalCostUSD:  2_500_000_000,
			CasualtyRate:  50,
		},
		{
			Category:      domain.CategoryWind,
			RecordCount:   400,
			Fatalities:    90,
			Injuries:      700,
			PropDamageUSD: 900_000_000,
			CropDamageUSD: 0,
			TotalCostUSD:  900_000_000,
			CasualtyRate:  197.5,
		},
	}
}

func TestRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(&buf).Render(aggregateFixture(), 500)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "Storm Impact Report")
	assert.Contains(t, out, "Health impact")
	assert.Contains(t, out, "Economic impact")
	assert.Contains(t, out, "Summary")

	// Health ordering: wind (790 casualties) before rain (50).
	windIdx := strings.Index(out, "wind")
	rainIdx := strings.Index(out, "rain")
	assert.Less(t, windIdx, rainIdx)

	// Formatted figures.
	assert.Contains(t, out, "$2.5B")
	assert.Contains(t, out, "$900.0M")
	assert.Contains(t, out, "197.50")

	// Narrative names the extremes.
	assert.Contains(t, out, "WIND events are the most harmful")
	assert.Contains(t, out, "RAIN events carry the greatest economic cost")

	// Charts render bars.
	assert.Contains(t, out, "█")
}

func TestRenderer_Render_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(&buf).Render(nil, 0)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "nothing to report")
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"billions", 2_500_000_000, "$2.5B"},
		{"millions", 5_000_000, "$5.0M"},
		{"thousands", 10_000, "$10.0K"},
		{"units", 970, "$970"},
		{"zero", 0, "$0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatUSD(tt.value))
		})
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"small", 42, "42"},
		{"thousands", 6957, "6,957"},
		{"millions", 1_234_567, "1,234,567"},
		{"zero", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatCount(tt.value))
		})
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aggregates.xlsx")

	require.NoError(t, WriteWorkbook(path, aggregateFixture()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows("Aggregates")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 categories

	assert.Equal(t, "Category", rows[0][0])
	assert.Equal(t, "rain", rows[1][0])
	assert.Equal(t, "wind", rows[2][0])
}
