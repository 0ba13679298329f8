// README: Header resolver; binds arbitrary sheet headers to canonical fields by alias containment.
package ratesheet

import (
	"strings"
	"unicode"

	"github.com/spf13/cast"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Aliases lists, per field and in priority order, the substrings that identify
// it in a source header. Entries are already normalized.
var Aliases = map[CanonicalField][]string{
	FieldLocation:            {"lieu", "ville", "secteur", "localite", "destination", "adresse", "point de livraison"},
	FieldHourlyRate:          {"tarif horaire", "prix horaire", "taux horaire", "heure ht"},
	FieldFlatTravelFee:       {"forfait deplacement", "forfait", "frais fixe", "frais deplacement"},
	FieldPerKmRate:           {"tarif au km", "tarif km", "prix km", "cout km", "km ht", "km"},
	FieldMinDurationHours:    {"duree minimale", "minimum h", "min h", "duree mini"},
	FieldNightSurchargePct:   {"maj nuit", "majoration nuit", "nuit %", "nuit"},
	FieldWeekendSurchargePct: {"maj weekend", "maj week-end", "majoration week-end", "weekend %", "we %"},
	FieldMaxDiscountPct:      {"remise max", "discount max", "rabais max"},
	FieldDistanceKm:          {"distance (km)", "distance km", "km", "distance"},
	FieldMinutes:             {"minutes", "duree (min)", "duree minutes", "min", "temps (min)"},
}

// ZoneAliases identify the optional zone column shown next to a location.
var ZoneAliases = []string{"zone", "region", "secteur"}

// ResolveZone returns the index of the first header matching a zone alias,
// skipping the location column.
func ResolveZone(headerRow []any, mapping HeaderMapping) (int, bool) {
	loc, hasLoc := mapping[FieldLocation]
	for idx, cell := range headerRow {
		if cell == nil || (hasLoc && idx == loc.Index) {
			continue
		}
		n := Normalize(cast.ToString(cell))
		for _, alias := range ZoneAliases {
			if strings.Contains(n, alias) {
				return idx, true
			}
		}
	}
	return 0, false
}

// Normalize lowercases s, strips diacritics and collapses whitespace.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// ResolveHeaders scans headers left to right and binds each field to the
// first header containing one of its aliases. A field binds at most once;
// a header may bind several fields.
func ResolveHeaders(headerRow []any) HeaderMapping {
	mapping := make(HeaderMapping, len(CanonicalFields))
	for idx, cell := range headerRow {
		var label string
		if cell != nil {
			label = cast.ToString(cell)
		}
		n := Normalize(label)
		if n == "" {
			continue
		}
		for _, f := range CanonicalFields {
			if _, bound := mapping[f]; bound {
				continue
			}
			for _, alias := range Aliases[f] {
				if strings.Contains(n, Normalize(alias)) {
					mapping[f] = Column{Label: label, Index: idx}
					break
				}
			}
		}
	}
	return mapping
}
