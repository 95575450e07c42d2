package domain

import "time"

// RawRecord is one row of the Storm Events CSV, reduced to the columns the
// analysis needs. Numeric columns are parsed leniently at load time; exponent
// columns stay as raw text until enrichment.
type RawRecord struct {
	EventType     string  // EVTYPE free text
	State         string  // STATE 2-letter abbreviation
	BeginDate     string  // BGN_DATE, e.g. "4/18/1950 0:00:00"
	Fatalities    int     // FATALITIES
	Injuries      int     // INJURIES
	PropDamage    float64 // PROPDMG magnitude
	PropDamageExp string  // PROPDMGEXP exponent code
	CropDamage    float64 // CROPDMG magnitude
	CropDamageExp string  // CROPDMGEXP exponent code
}

// StormRecord is the enriched representation: the raw columns plus the
// derived fields the aggregation passes consume. Raw fields are copied, not
// mutated; enrichment is a pure transform over a RawRecord.
type StormRecord struct {
	EventType     string  `db:"event_type" json:"event_type"`
	State         string  `db:"state" json:"state"`
	BeginDateRaw  string  `db:"begin_date_raw" json:"begin_date_raw"`
	Fatalities    int     `db:"fatalities" json:"fatalities"`
	Injuries      int     `db:"injuries" json:"injuries"`
	PropDamage    float64 `db:"prop_damage" json:"prop_damage"`
	PropDamageExp string  `db:"prop_damage_exp" json:"prop_damage_exp"`
	CropDamage    float64 `db:"crop_damage" json:"crop_damage"`
	CropDamageExp string  `db:"crop_damage_exp" json:"crop_damage_exp"`

	// Derived fields.
	PropDamageUSD float64   `db:"prop_damage_usd" json:"prop_damage_usd"`
	CropDamageUSD float64   `db:"crop_damage_usd" json:"crop_damage_usd"`
	BeginDate     time.Time `db:"begin_date" json:"begin_date"` // zero when BGN_DATE did not parse
	Category      Category  `db:"category" json:"category"`
	InScope       bool      `db:"in_scope" json:"in_scope"`
	ProcessedAt   time.Time `db:"processed_at" json:"processed_at"`
}

// Casualties returns the combined human toll of the record.
func (r StormRecord) Casualties() int {
	return r.Fatalities + r.Injuries
}

// TotalDamageUSD returns combined property and crop damage in dollars.
func (r StormRecord) TotalDamageUSD() float64 {
	return r.PropDamageUSD + r.CropDamageUSD
}

// AggregateRow holds per-category summary statistics for reporting.
type AggregateRow struct {
	Category      Category `json:"category"`
	RecordCount   int      `json:"record_count"`
	Fatalities    int      `json:"fatalities"`
	Injuries      int      `json:"injuries"`
	PropDamageUSD float64  `json:"prop_damage_usd"`
	CropDamageUSD float64  `json:"crop_damage_usd"`
	TotalCostUSD  float64  `json:"total_cost_usd"`

	// CasualtyRate is (fatalities+injuries)/recordCount*100. It is a
	// relative-comparison figure, not a percentage of a bounded quantity.
	CasualtyRate float64 `json:"casualty_rate"`
}
