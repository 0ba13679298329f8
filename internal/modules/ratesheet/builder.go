// README: Rate table builder; turns decoded rows into canonical rate records.
package ratesheet

// BuildRateTable converts body rows into rate records using the headers'
// resolved mapping. Blank rows and rows without a location are dropped;
// source order is kept.
func BuildRateTable(headerRow []any, body [][]any) []RateRecord {
	return buildRecords(headerRow, ResolveHeaders(headerRow), body)
}

func buildRecords(headerRow []any, mapping HeaderMapping, body [][]any) []RateRecord {
	zoneIdx, hasZone := ResolveZone(headerRow, mapping)
	records := make([]RateRecord, 0, len(body))
	for _, row := range body {
		if isBlankRow(row) {
			continue
		}
		cell := func(f CanonicalField) any {
			c, ok := mapping[f]
			if !ok || c.Index >= len(row) {
				return ""
			}
			return row[c.Index]
		}

		rec := RateRecord{
			Location:            cellString(cell(FieldLocation)),
			HourlyRate:          ParseNumber(cell(FieldHourlyRate), DefaultHourlyRate),
			FlatTravelFee:       ParseNumber(cell(FieldFlatTravelFee), DefaultFlatTravelFee),
			PerKmRate:           ParseNumber(cell(FieldPerKmRate), DefaultPerKmRate),
			MinDurationHours:    ParseNumber(cell(FieldMinDurationHours), DefaultMinDurationHours),
			NightSurchargePct:   ParseNumber(cell(FieldNightSurchargePct), DefaultNightSurchargePct),
			WeekendSurchargePct: ParseNumber(cell(FieldWeekendSurchargePct), DefaultWeekendSurchargePct),
			MaxDiscountPct:      ParseNumber(cell(FieldMaxDiscountPct), DefaultMaxDiscountPct),
			DefaultMinutes:      parseOptional(cell(FieldMinutes)),
			DefaultDistanceKm:   parseOptional(cell(FieldDistanceKm)),
		}
		if hasZone && zoneIdx < len(row) {
			rec.Zone = cellString(row[zoneIdx])
		}
		records = append(records, rec)
	}

	out := records[:0]
	for _, r := range records {
		if r.Location != "" {
			out = append(out, r)
		}
	}
	return out
}

func isBlankRow(row []any) bool {
	for _, v := range row {
		if cellString(v) != "" {
			return false
		}
	}
	return true
}

// SelectSheet picks the worksheet whose header binds a location column and
// the most canonical fields; earlier sheets win ties. Without any location
// column the first sheet that has rows is used.
func SelectSheet(sheets []Sheet) (Sheet, HeaderMapping, bool) {
	best, bestScore := -1, -1
	var bestMapping HeaderMapping
	for i, s := range sheets {
		if len(s.Rows) == 0 {
			continue
		}
		m := ResolveHeaders(s.Rows[0])
		if _, ok := m[FieldLocation]; !ok {
			continue
		}
		if len(m) > bestScore {
			best, bestScore, bestMapping = i, len(m), m
		}
	}
	if best >= 0 {
		return sheets[best], bestMapping, true
	}
	for _, s := range sheets {
		if len(s.Rows) > 0 {
			return s, ResolveHeaders(s.Rows[0]), true
		}
	}
	return Sheet{}, nil, false
}

// BuildFromSheet builds a table from one decoded sheet.
func BuildFromSheet(s Sheet, mapping HeaderMapping) *RateTable {
	if len(s.Rows) == 0 {
		return NewRateTable(nil, mapping, s.Name)
	}
	if mapping == nil {
		mapping = ResolveHeaders(s.Rows[0])
	}
	return NewRateTable(buildRecords(s.Rows[0], mapping, s.Rows[1:]), mapping, s.Name)
}
