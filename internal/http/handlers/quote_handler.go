// README: Quote and invoice handlers; resolve a trip request into a priced quote.
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"tarif/internal/modules/invoice"
	"tarif/internal/modules/pricing"
	"tarif/internal/modules/ratesheet"
	"tarif/internal/modules/routing"
)

type QuoteHandler struct {
	rates         *ratesheet.Service
	pricing       *pricing.Service
	routes        *routing.Service
	invoices      *invoice.Service
	defaultTaxPct float64
}

type QuoteDeps struct {
	Rates         *ratesheet.Service
	Pricing       *pricing.Service
	Routes        *routing.Service
	Invoices      *invoice.Service
	DefaultTaxPct float64
}

func NewQuoteHandler(deps QuoteDeps) *QuoteHandler {
	return &QuoteHandler{
		rates:         deps.Rates,
		pricing:       deps.Pricing,
		routes:        deps.Routes,
		invoices:      deps.Invoices,
		defaultTaxPct: deps.DefaultTaxPct,
	}
}

// Numeric fields accept numbers or locale strings such as "12,5".
type tripReq struct {
	Location      string `json:"location"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Minutes       any    `json:"minutes"`
	DistanceKm    any    `json:"distance_km"`
	IsNight       bool   `json:"is_night"`
	IsWeekend     bool   `json:"is_weekend"`
	DiscountPct   any    `json:"discount_pct"`
	TaxRatePct    any    `json:"tax_rate_pct"`
	TravelMode    string `json:"travel_mode"`
	FlatKm        any    `json:"flat_km"`
	DeliveryCount any    `json:"delivery_count"`
}

type quoteResp struct {
	Quote    *pricing.QuoteResult `json:"quote"`
	Advisory string               `json:"advisory,omitempty"`
}

type resolvedTrip struct {
	record   *ratesheet.RateRecord
	trip     pricing.TripInput
	advisory string
}

// resolve picks the record and fills minutes and distance: explicit values
// first, then a matching route estimate, then the sheet's prefill cells.
func (h *QuoteHandler) resolve(req tripReq) (resolvedTrip, error) {
	mode, err := pricing.ParseTravelMode(strings.TrimSpace(req.TravelMode))
	if err != nil {
		return resolvedTrip{}, err
	}

	var out resolvedTrip
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return out, nil
	}
	rec, err := h.rates.Lookup(location)
	if err != nil {
		return resolvedTrip{}, err
	}
	out.record = &rec

	minutes := optionalNumber(req.Minutes)
	distance := optionalNumber(req.DistanceKm)
	if req.Origin != "" || req.Destination != "" {
		if est, ok := h.routes.Resolve(req.Origin, req.Destination); ok {
			if minutes == nil {
				minutes = &est.Minutes
			}
			if distance == nil {
				distance = &est.DistanceKm
			}
		} else {
			out.advisory = h.routeAdvisory(req.Origin, req.Destination)
		}
	}
	m, d := pricing.Prefill(rec, minutes, distance)

	out.trip = pricing.TripInput{
		Minutes:              m,
		DistanceKm:           d,
		IsNight:              req.IsNight,
		IsWeekend:            req.IsWeekend,
		RequestedDiscountPct: numberOr(req.DiscountPct, 0),
		TaxRatePct:           numberOr(req.TaxRatePct, h.defaultTaxPct),
		TravelMode:           mode,
		FlatKm:               numberOr(req.FlatKm, 0),
		DeliveryCount:        cast.ToInt(numberOr(req.DeliveryCount, 1)),
	}
	return out, nil
}

func (h *QuoteHandler) routeAdvisory(origin, destination string) string {
	if advisory, ok := h.routes.FailureAdvisory(origin, destination); ok {
		return advisory
	}
	return "no route estimate for these endpoints; using manual values"
}

func (h *QuoteHandler) writeResolveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ratesheet.ErrNotLoaded), errors.Is(err, ratesheet.ErrLocationNotFound):
		writeRateError(c, err)
	default:
		writeError(c, http.StatusBadRequest, err.Error())
	}
}

// Quote handles POST /api/quotes. Without a location the quote is null.
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req tripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	rt, err := h.resolve(req)
	if err != nil {
		h.writeResolveError(c, err)
		return
	}

	resp := quoteResp{Advisory: rt.advisory}
	if q, ok := h.pricing.Quote(rt.record, rt.trip); ok {
		resp.Quote = &q
	}
	writeJSON(c, http.StatusOK, resp)
}

type invoiceReq struct {
	tripReq
	ClientName    string          `json:"client_name"`
	InvoiceNumber string          `json:"invoice_number"`
	Extra         []invoice.Field `json:"extra"`
	Format        string          `json:"format"`
}

// Invoice handles POST /api/invoices and returns the rendered document.
func (h *QuoteHandler) Invoice(c *gin.Context) {
	var req invoiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	renderer, err := invoice.RendererFor(req.Format)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	rt, err := h.resolve(req.tripReq)
	if err != nil {
		h.writeResolveError(c, err)
		return
	}
	q, ok := h.pricing.Quote(rt.record, rt.trip)
	if !ok {
		writeError(c, http.StatusBadRequest, "location required")
		return
	}

	doc := h.invoices.Assemble(q, invoice.Metadata{
		ClientName:    req.ClientName,
		InvoiceNumber: req.InvoiceNumber,
		Extra:         req.Extra,
	})
	var buf bytes.Buffer
	if err := renderer.Render(&buf, doc); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, doc.Number, renderer.Extension()))
	c.Data(http.StatusOK, renderer.ContentType(), buf.Bytes())
}
