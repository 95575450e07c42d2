package domain

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// Aggregate groups in-scope records by category and computes the per-group
// summary statistics. Out-of-scope records are ignored entirely. Categories
// with no observed records are absent from the output, so no row ever has a
// zero count. Rows come back sorted by total cost, highest first, with
// category name as the tiebreaker so output is deterministic.
func Aggregate(records []StormRecord) []AggregateRow {
	groups := make(map[Category][]StormRecord)
	for _, rec := range records {
		if !rec.InScope {
			continue
		}
		groups[rec.Category] = append(groups[rec.Category], rec)
	}

	rows := make([]AggregateRow, 0, len(groups))
	for category, group := range groups {
		rows = append(rows, aggregateGroup(category, group))
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalCostUSD != rows[j].TotalCostUSD {
			return rows[i].TotalCostUSD > rows[j].TotalCostUSD
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// aggregateGroup reduces one category's records to a single AggregateRow.
func aggregateGroup(category Category, group []StormRecord) AggregateRow {
	row := AggregateRow{Category: category, RecordCount: len(group)}

	propDamage := make([]float64, len(group))
	cropDamage := make([]float64, len(group))
	casualties := make([]float64, len(group))
	for i, rec := range group {
		row.Fatalities += rec.Fatalities
		row.Injuries += rec.Injuries
		propDamage[i] = rec.PropDamageUSD
		cropDamage[i] = rec.CropDamageUSD
		casualties[i] = float64(rec.Casualties())
	}

	// stats.Sum and stats.Mean only fail on empty input, which grouping
	// rules out.
	row.PropDamageUSD, _ = stats.Sum(propDamage)
	row.CropDamageUSD, _ = stats.Sum(cropDamage)
	row.TotalCostUSD = row.PropDamageUSD + row.CropDamageUSD

	// mean(casualties)*100 is exactly (fatalities+injuries)/count*100; the
	// x100 scaling is kept as-is for cross-category comparison, it is not a
	// percentage of anything bounded.
	meanCasualties, _ := stats.Mean(casualties)
	row.CasualtyRate = meanCasualties * 100

	return row
}
