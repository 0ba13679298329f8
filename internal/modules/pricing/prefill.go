// README: Trip prefill from the selected location's sheet values.
package pricing

import "tarif/internal/modules/ratesheet"

// Prefill resolves minutes and distance for a trip: explicit values win,
// then the record's sheet values, then zero.
func Prefill(rec ratesheet.RateRecord, minutes, distanceKm *float64) (float64, float64) {
	var m, d float64
	switch {
	case minutes != nil:
		m = *minutes
	case rec.DefaultMinutes != nil:
		m = *rec.DefaultMinutes
	}
	switch {
	case distanceKm != nil:
		d = *distanceKm
	case rec.DefaultDistanceKm != nil:
		d = *rec.DefaultDistanceKm
	}
	return m, d
}
