// README: Invoice assembly from a computed quote.
package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"tarif/internal/modules/pricing"
	"tarif/internal/types"
)

type Service struct {
	issuer   string
	currency string
	now      func() time.Time
}

func NewService(issuer, currency string) *Service {
	return &Service{issuer: issuer, currency: currency, now: time.Now}
}

// Assemble itemizes q into a document. Every amount is rounded to cents
// and the gross is the sum of the rounded net and tax.
func (s *Service) Assemble(q pricing.QuoteResult, meta Metadata) Document {
	number := strings.TrimSpace(meta.InvoiceNumber)
	if number == "" {
		number = NewNumber()
	}
	issued := meta.IssuedAt
	if issued.IsZero() {
		issued = s.now()
	}

	money := func(v float64) types.Money { return types.NewMoney(v, s.currency) }

	lines := []LineItem{
		{Label: fmt.Sprintf("Labor (%s h)", humanize.FormatFloat("#,###.##", q.BillableHours)), Amount: money(q.LaborSubtotal)},
		{Label: travelLabel(q), Amount: money(q.TravelSubtotal)},
	}
	if q.SurchargeAmount > 0 {
		lines = append(lines, LineItem{Label: "Night/weekend surcharge", Amount: money(q.SurchargeAmount)})
	}
	if q.DiscountAmount > 0 {
		lines = append(lines, LineItem{
			Label:  fmt.Sprintf("Discount (%s%%)", formatPct(q.EffectiveDiscountPct)),
			Amount: money(q.DiscountAmount).Neg(),
		})
	}

	net := money(q.NetTotal)
	tax := money(q.TaxAmount)

	extra := make([]Field, 0, len(meta.Extra))
	for _, f := range meta.Extra {
		if strings.TrimSpace(f.Label) == "" && strings.TrimSpace(f.Value) == "" {
			continue
		}
		extra = append(extra, f)
	}

	return Document{
		Number:     number,
		IssuedAt:   issued,
		Issuer:     s.issuer,
		ClientName: meta.ClientName,
		Location:   q.Location,
		Extra:      extra,
		Lines:      lines,
		Net:        net,
		TaxLabel:   fmt.Sprintf("VAT %s%%", formatPct(q.TaxRatePct)),
		Tax:        tax,
		Gross:      net.Add(tax),
		Quote:      q,
	}
}

// NewNumber returns a short invoice number such as "INV-3F2A9C1B".
func NewNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "INV-" + strings.ToUpper(id[:8])
}

func travelLabel(q pricing.QuoteResult) string {
	if q.TravelMode == pricing.TravelModeFlatRate {
		return "Travel (flat rate)"
	}
	return fmt.Sprintf("Travel (%s km)", humanize.FormatFloat("#,###.#", q.DistanceKm))
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
