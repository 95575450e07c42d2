package domain

// EnrichRecord computes every derived field for a raw record: dollar values
// from the damage exponent columns, the canonical begin date, the weather
// category, and the scope flag. The input is copied, never mutated; the same
// raw record always enriches to the same result (aside from ProcessedAt,
// which comes from the package clock).
func EnrichRecord(raw RawRecord) StormRecord {
	return StormRecord{
		EventType:     raw.EventType,
		State:         raw.State,
		BeginDateRaw:  raw.BeginDate,
		Fatalities:    raw.Fatalities,
		Injuries:      raw.Injuries,
		PropDamage:    raw.PropDamage,
		PropDamageExp: raw.PropDamageExp,
		CropDamage:    raw.CropDamage,
		CropDamageExp: raw.CropDamageExp,

		PropDamageUSD: NormalizeDamage(raw.PropDamage, raw.PropDamageExp),
		CropDamageUSD: NormalizeDamage(raw.CropDamage, raw.CropDamageExp),
		BeginDate:     ParseBeginDate(raw.BeginDate),
		Category:      Classify(raw.EventType),
		InScope:       InScope(raw.State),
		ProcessedAt:   clock.Now(),
	}
}

// EnrichRecords applies EnrichRecord to every raw record in order.
func EnrichRecords(raws []RawRecord) []StormRecord {
	records := make([]StormRecord, len(raws))
	for i, raw := range raws {
		records[i] = EnrichRecord(raw)
	}
	return records
}
