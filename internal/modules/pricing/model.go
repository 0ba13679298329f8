// README: Trip inputs, travel modes and the itemized quote result.
package pricing

import "fmt"

// TravelMode selects how the travel subtotal is priced.
type TravelMode string

const (
	TravelModeRateTable TravelMode = "rate_table"
	TravelModeFlatRate  TravelMode = "flat_rate"
)

// ParseTravelMode accepts the wire names; blank means rate_table.
func ParseTravelMode(s string) (TravelMode, error) {
	switch TravelMode(s) {
	case "", TravelModeRateTable:
		return TravelModeRateTable, nil
	case TravelModeFlatRate:
		return TravelModeFlatRate, nil
	default:
		return "", fmt.Errorf("unknown travel mode %q", s)
	}
}

// TripInput is one job as entered by the operator.
type TripInput struct {
	Minutes              float64
	DistanceKm           float64
	IsNight              bool
	IsWeekend            bool
	RequestedDiscountPct float64
	TaxRatePct           float64
	TravelMode           TravelMode

	// Used only with TravelModeFlatRate.
	FlatKm        float64
	DeliveryCount int
}

// QuoteResult is the itemized output of one quote computation.
type QuoteResult struct {
	Location   string     `json:"location"`
	TravelMode TravelMode `json:"travel_mode"`
	Minutes    float64    `json:"minutes"`
	DistanceKm float64    `json:"distance_km"`
	TaxRatePct float64    `json:"tax_rate_pct"`

	BillableHours        float64 `json:"billable_hours"`
	LaborSubtotal        float64 `json:"labor_subtotal"`
	TravelSubtotal       float64 `json:"travel_subtotal"`
	SurchargeAmount      float64 `json:"surcharge_amount"`
	PreDiscountSubtotal  float64 `json:"pre_discount_subtotal"`
	EffectiveDiscountPct float64 `json:"effective_discount_pct"`
	DiscountAmount       float64 `json:"discount_amount"`
	NetTotal             float64 `json:"net_total"`
	TaxAmount            float64 `json:"tax_amount"`
	GrossTotal           float64 `json:"gross_total"`
}

// FlatRateTariff parameterizes the tiered flat-rate travel charge.
type FlatRateTariff struct {
	Base             float64 `json:"base"`
	TierKm           float64 `json:"tier_km"`
	TierSurcharge    float64 `json:"tier_surcharge"`
	ExtraDeliveryFee float64 `json:"extra_delivery_fee"`
}

// DefaultFlatRateTariff is the courier tariff: 37 for the first 3 km, 3.10
// per started 3 km tier after that, 10 per extra delivery.
var DefaultFlatRateTariff = FlatRateTariff{
	Base:             37,
	TierKm:           3,
	TierSurcharge:    3.10,
	ExtraDeliveryFee: 10,
}
