// README: Canonical rate-table fields, per-location rate records and the in-memory table.
package ratesheet

import "errors"

// CanonicalField identifies one pricing attribute regardless of source header wording.
type CanonicalField string

const (
	FieldLocation            CanonicalField = "location"
	FieldHourlyRate          CanonicalField = "hourlyRate"
	FieldFlatTravelFee       CanonicalField = "flatTravelFee"
	FieldPerKmRate           CanonicalField = "perKmRate"
	FieldMinDurationHours    CanonicalField = "minDurationHours"
	FieldNightSurchargePct   CanonicalField = "nightSurchargePct"
	FieldWeekendSurchargePct CanonicalField = "weekendSurchargePct"
	FieldMaxDiscountPct      CanonicalField = "maxDiscountPct"
	FieldDistanceKm          CanonicalField = "distanceKm"
	FieldMinutes             CanonicalField = "minutes"
)

// CanonicalFields is the closed field set in declaration order.
// Header resolution walks fields in this order.
var CanonicalFields = []CanonicalField{
	FieldLocation,
	FieldHourlyRate,
	FieldFlatTravelFee,
	FieldPerKmRate,
	FieldMinDurationHours,
	FieldNightSurchargePct,
	FieldWeekendSurchargePct,
	FieldMaxDiscountPct,
	FieldDistanceKm,
	FieldMinutes,
}

// Defaults applied when a numeric cell is blank or malformed.
const (
	DefaultHourlyRate          = 0.0
	DefaultFlatTravelFee       = 0.0
	DefaultPerKmRate           = 0.0
	DefaultMinDurationHours    = 1.0
	DefaultNightSurchargePct   = 0.0
	DefaultWeekendSurchargePct = 0.0
	DefaultMaxDiscountPct      = 10.0
)

var (
	ErrUnsupportedFormat = errors.New("unsupported rate sheet format")
	ErrEmptyWorkbook     = errors.New("rate sheet has no rows")
	ErrNotLoaded         = errors.New("no rate table loaded")
	ErrLocationNotFound  = errors.New("location not found")
)

// RateRecord holds the pricing parameters of one location.
type RateRecord struct {
	Location            string  `json:"location"`
	Zone                string  `json:"zone,omitempty"`
	HourlyRate          float64 `json:"hourly_rate"`
	FlatTravelFee       float64 `json:"flat_travel_fee"`
	PerKmRate           float64 `json:"per_km_rate"`
	MinDurationHours    float64 `json:"min_duration_hours"`
	NightSurchargePct   float64 `json:"night_surcharge_pct"`
	WeekendSurchargePct float64 `json:"weekend_surcharge_pct"`
	MaxDiscountPct      float64 `json:"max_discount_pct"`

	// Prefill values for the trip form, set only when the sheet carries them.
	DefaultMinutes    *float64 `json:"default_minutes,omitempty"`
	DefaultDistanceKm *float64 `json:"default_distance_km,omitempty"`
}

// Column is the source header a canonical field is bound to.
type Column struct {
	Label string `json:"label"`
	Index int    `json:"index"`
}

// HeaderMapping binds canonical fields to source columns. Unbound fields are absent.
type HeaderMapping map[CanonicalField]Column

// Label returns the original header bound to f, if any.
func (m HeaderMapping) Label(f CanonicalField) (string, bool) {
	c, ok := m[f]
	return c.Label, ok
}

// Sheet is one decoded worksheet: row 0 holds headers.
type Sheet struct {
	Name string
	Rows [][]any
}

// RateTable is an immutable, ordered set of records keyed by location.
type RateTable struct {
	records    []RateRecord
	byLocation map[string]int
	mapping    HeaderMapping
	sheetName  string
}

// NewRateTable indexes records by location. When a location repeats, the
// first row keeps the key and later duplicates are dropped.
func NewRateTable(records []RateRecord, mapping HeaderMapping, sheetName string) *RateTable {
	t := &RateTable{
		records:    make([]RateRecord, 0, len(records)),
		byLocation: make(map[string]int, len(records)),
		mapping:    mapping,
		sheetName:  sheetName,
	}
	for _, r := range records {
		if _, dup := t.byLocation[r.Location]; dup {
			continue
		}
		t.byLocation[r.Location] = len(t.records)
		t.records = append(t.records, r)
	}
	return t
}

func (t *RateTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Records returns a copy of the records in source row order.
func (t *RateTable) Records() []RateRecord {
	if t == nil {
		return nil
	}
	out := make([]RateRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Locations lists the location keys in source row order.
func (t *RateTable) Locations() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.records))
	for i, r := range t.records {
		out[i] = r.Location
	}
	return out
}

func (t *RateTable) Lookup(location string) (RateRecord, bool) {
	if t == nil {
		return RateRecord{}, false
	}
	i, ok := t.byLocation[location]
	if !ok {
		return RateRecord{}, false
	}
	return t.records[i], true
}

// Default is the first record, which becomes the initial selection.
func (t *RateTable) Default() (RateRecord, bool) {
	if t.Len() == 0 {
		return RateRecord{}, false
	}
	return t.records[0], true
}

func (t *RateTable) Mapping() HeaderMapping {
	if t == nil {
		return nil
	}
	return t.mapping
}

func (t *RateTable) SheetName() string {
	if t == nil {
		return ""
	}
	return t.sheetName
}
