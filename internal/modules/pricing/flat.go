// README: Tiered flat-rate travel calculator.
package pricing

import "math"

// ComputeFlatTravel prices km and deliveryCount with DefaultFlatRateTariff.
func ComputeFlatTravel(km float64, deliveryCount int) float64 {
	return DefaultFlatRateTariff.Compute(km, deliveryCount)
}

// Compute returns base, plus one surcharge per started tier beyond the first
// tierKm kilometres, plus a fee for every delivery after the first.
func (t FlatRateTariff) Compute(km float64, deliveryCount int) float64 {
	if !(km > 0) || math.IsInf(km, 1) {
		km = 0
	}
	if deliveryCount < 1 {
		deliveryCount = 1
	}

	total := t.Base
	if t.TierKm > 0 && km > t.TierKm {
		tiers := math.Ceil((km - t.TierKm) / t.TierKm)
		total += tiers * t.TierSurcharge
	}
	if deliveryCount > 1 {
		total += float64(deliveryCount-1) * t.ExtraDeliveryFee
	}
	return total
}
