package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	t.Run("sums one category", func(t *testing.T) {
		records := []StormRecord{
			{Category: CategoryHeat, InScope: true, Injuries: 1},
			{Category: CategoryHeat, InScope: true, Injuries: 2},
			{Category: CategoryHeat, InScope: true, Injuries: 3},
		}

		rows := Aggregate(records)

		require.Len(t, rows, 1)
		assert.Equal(t, CategoryHeat, rows[0].Category)
		assert.Equal(t, 3, rows[0].RecordCount)
		assert.Equal(t, 6, rows[0].Injuries)
		assert.Equal(t, 0, rows[0].Fatalities)
		// (0+6)/3*100
		assert.InDelta(t, 200.0, rows[0].CasualtyRate, 1e-9)
	})

	t.Run("end-to-end scenario", func(t *testing.T) {
		raws := []RawRecord{
			{EventType: "TSTM WIND", State: "TX", PropDamage: 10, PropDamageExp: "K", Injuries: 2},
			{EventType: "HAIL", State: "TX", PropDamage: 5, PropDamageExp: "M", Fatalities: 1},
		}

		rows := Aggregate(EnrichRecords(raws))

		require.Len(t, rows, 2)
		byCategory := make(map[Category]AggregateRow, len(rows))
		for _, row := range rows {
			byCategory[row.Category] = row
		}

		wind := byCategory[CategoryWind]
		assert.Equal(t, 1, wind.RecordCount)
		assert.Equal(t, 10_000.0, wind.PropDamageUSD)
		assert.Equal(t, 2, wind.Injuries)

		hail := byCategory[CategoryHail]
		assert.Equal(t, 5_000_000.0, hail.PropDamageUSD)
		assert.Equal(t, 1, hail.Fatalities)
	})

	t.Run("out-of-scope records are excluded", func(t *testing.T) {
		records := []StormRecord{
			{Category: CategoryWind, InScope: true, Fatalities: 1},
			{Category: CategoryWind, InScope: false, Fatalities: 100},
			{Category: CategoryFire, InScope: false, Injuries: 50},
		}

		rows := Aggregate(records)

		require.Len(t, rows, 1)
		assert.Equal(t, CategoryWind, rows[0].Category)
		assert.Equal(t, 1, rows[0].Fatalities)
	})

	t.Run("total cost combines property and crop damage", func(t *testing.T) {
		records := []StormRecord{
			{Category: CategoryRain, InScope: true, PropDamageUSD: 1_000, CropDamageUSD: 250},
			{Category: CategoryRain, InScope: true, PropDamageUSD: 500},
		}

		rows := Aggregate(records)

		require.Len(t, rows, 1)
		assert.Equal(t, 1_500.0, rows[0].PropDamageUSD)
		assert.Equal(t, 250.0, rows[0].CropDamageUSD)
		assert.Equal(t, 1_750.0, rows[0].TotalCostUSD)
	})

	t.Run("rows sorted by total cost descending", func(t *testing.T) {
		records := []StormRecord{
			{Category: CategoryHail, InScope: true, PropDamageUSD: 10},
			{Category: CategoryWind, InScope: true, PropDamageUSD: 1_000},
			{Category: CategoryFire, InScope: true, PropDamageUSD: 100},
		}

		rows := Aggregate(records)

		require.Len(t, rows, 3)
		assert.Equal(t, CategoryWind, rows[0].Category)
		assert.Equal(t, CategoryFire, rows[1].Category)
		assert.Equal(t, CategoryHail, rows[2].Category)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Aggregate(nil))
	})
}
