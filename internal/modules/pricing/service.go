// README: Quote engine; prices a trip against one rate record.
package pricing

import (
	"math"

	"tarif/internal/modules/ratesheet"
)

// TravelStrategy prices the travel part of a quote.
type TravelStrategy interface {
	Travel(rec ratesheet.RateRecord, trip TripInput) float64
}

type rateTableTravel struct{}

func (rateTableTravel) Travel(rec ratesheet.RateRecord, trip TripInput) float64 {
	fee := finiteOr(rec.FlatTravelFee, ratesheet.DefaultFlatTravelFee)
	perKm := finiteOr(rec.PerKmRate, ratesheet.DefaultPerKmRate)
	return fee + perKm*nonNegative(trip.DistanceKm)
}

type flatRateTravel struct {
	tariff FlatRateTariff
}

func (f flatRateTravel) Travel(_ ratesheet.RateRecord, trip TripInput) float64 {
	return f.tariff.Compute(trip.FlatKm, trip.DeliveryCount)
}

type Service struct {
	strategies map[TravelMode]TravelStrategy
}

// NewService builds a quote engine whose flat-rate mode uses tariff.
func NewService(tariff FlatRateTariff) *Service {
	return &Service{
		strategies: map[TravelMode]TravelStrategy{
			TravelModeRateTable: rateTableTravel{},
			TravelModeFlatRate:  flatRateTravel{tariff: tariff},
		},
	}
}

var defaultService = NewService(DefaultFlatRateTariff)

// ComputeQuote prices trip against rec with the default flat-rate tariff.
// It reports false when no record is selected.
func ComputeQuote(rec *ratesheet.RateRecord, trip TripInput) (QuoteResult, bool) {
	return defaultService.Quote(rec, trip)
}

// Quote prices trip against rec. It reports false when rec is nil.
func (s *Service) Quote(rec *ratesheet.RateRecord, trip TripInput) (QuoteResult, bool) {
	if rec == nil {
		return QuoteResult{}, false
	}

	hourly := finiteOr(rec.HourlyRate, ratesheet.DefaultHourlyRate)
	minHours := finiteOr(rec.MinDurationHours, ratesheet.DefaultMinDurationHours)
	nightPct := finiteOr(rec.NightSurchargePct, ratesheet.DefaultNightSurchargePct)
	weekendPct := finiteOr(rec.WeekendSurchargePct, ratesheet.DefaultWeekendSurchargePct)
	maxDiscountPct := finiteOr(rec.MaxDiscountPct, ratesheet.DefaultMaxDiscountPct)

	minutes := nonNegative(trip.Minutes)
	taxPct := nonNegative(trip.TaxRatePct)

	billable := math.Max(minutes/60, minHours)
	labor := billable * hourly

	mode := trip.TravelMode
	strategy, ok := s.strategies[mode]
	if !ok {
		mode = TravelModeRateTable
		strategy = s.strategies[mode]
	}
	travel := strategy.Travel(*rec, trip)

	var surchargeFraction float64
	if trip.IsNight {
		surchargeFraction += nightPct / 100
	}
	if trip.IsWeekend {
		surchargeFraction += weekendPct / 100
	}
	surcharge := labor * surchargeFraction

	preDiscount := labor + travel + surcharge

	appliedPct := math.Max(0, math.Min(finiteOr(trip.RequestedDiscountPct, 0), maxDiscountPct))
	discount := preDiscount * (appliedPct / 100)
	net := preDiscount - discount
	tax := net * (taxPct / 100)

	return QuoteResult{
		Location:             rec.Location,
		TravelMode:           mode,
		Minutes:              minutes,
		DistanceKm:           nonNegative(trip.DistanceKm),
		TaxRatePct:           taxPct,
		BillableHours:        billable,
		LaborSubtotal:        labor,
		TravelSubtotal:       travel,
		SurchargeAmount:      surcharge,
		PreDiscountSubtotal:  preDiscount,
		EffectiveDiscountPct: appliedPct,
		DiscountAmount:       discount,
		NetTotal:             net,
		TaxAmount:            tax,
		GrossTotal:           net + tax,
	}, true
}

func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func nonNegative(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 1) {
		return 0
	}
	return v
}
