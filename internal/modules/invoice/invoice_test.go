package invoice

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tarif/internal/modules/pricing"
	"tarif/internal/modules/ratesheet"
)

func sampleQuote(t *testing.T) pricing.QuoteResult {
	t.Helper()
	rec := &ratesheet.RateRecord{
		Location:          "Lyon",
		HourlyRate:        50,
		FlatTravelFee:     10,
		PerKmRate:         1,
		MinDurationHours:  1,
		NightSurchargePct: 20,
		MaxDiscountPct:    10,
	}
	q, ok := pricing.ComputeQuote(rec, pricing.TripInput{
		Minutes:              120,
		DistanceKm:           5,
		IsNight:              true,
		RequestedDiscountPct: 5,
		TaxRatePct:           20,
	})
	if !ok {
		t.Fatal("expected a quote")
	}
	return q
}

func fixedService() *Service {
	svc := NewService("Coursiers Rhône", "EUR")
	svc.now = func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestAssemble(t *testing.T) {
	doc := fixedService().Assemble(sampleQuote(t), Metadata{
		ClientName:    "Atelier Dupont",
		InvoiceNumber: " F-2024-017 ",
		Extra: []Field{
			{Label: "PO", Value: "4471"},
			{Label: " ", Value: ""},
		},
	})

	if doc.Number != "F-2024-017" {
		t.Errorf("number = %q", doc.Number)
	}
	if !doc.IssuedAt.Equal(time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("issued at = %v", doc.IssuedAt)
	}
	if doc.Location != "Lyon" || doc.Issuer != "Coursiers Rhône" || doc.ClientName != "Atelier Dupont" {
		t.Errorf("header fields = %+v", doc)
	}
	if len(doc.Extra) != 1 || doc.Extra[0].Label != "PO" {
		t.Errorf("extra = %+v", doc.Extra)
	}

	wantLines := []struct {
		label  string
		amount string
	}{
		{"Labor (2.00 h)", "100.00"},
		{"Travel (5.0 km)", "15.00"},
		{"Night/weekend surcharge", "20.00"},
		{"Discount (5%)", "-6.75"},
	}
	if len(doc.Lines) != len(wantLines) {
		t.Fatalf("lines = %+v", doc.Lines)
	}
	for i, want := range wantLines {
		got := doc.Lines[i]
		if got.Label != want.label || got.Amount.Amount.StringFixed(2) != want.amount {
			t.Errorf("line %d = %q %s, want %q %s", i, got.Label, got.Amount.Amount.StringFixed(2), want.label, want.amount)
		}
	}

	if doc.Net.Amount.StringFixed(2) != "128.25" || doc.Tax.Amount.StringFixed(2) != "25.65" || doc.Gross.Amount.StringFixed(2) != "153.90" {
		t.Errorf("totals = %s / %s / %s", doc.Net.Amount, doc.Tax.Amount, doc.Gross.Amount)
	}
	if doc.TaxLabel != "VAT 20%" {
		t.Errorf("tax label = %q", doc.TaxLabel)
	}
}

func TestAssemble_GeneratesNumberAndSkipsZeroLines(t *testing.T) {
	q := sampleQuote(t)
	q.SurchargeAmount = 0
	q.DiscountAmount = 0
	q.TravelMode = pricing.TravelModeFlatRate

	doc := fixedService().Assemble(q, Metadata{})

	if !strings.HasPrefix(doc.Number, "INV-") || len(doc.Number) != len("INV-")+8 {
		t.Errorf("generated number = %q", doc.Number)
	}
	if len(doc.Lines) != 2 || doc.Lines[1].Label != "Travel (flat rate)" {
		t.Errorf("lines = %+v", doc.Lines)
	}
	if NewNumber() == NewNumber() {
		t.Error("numbers should be unique")
	}
}

func TestTextRenderer(t *testing.T) {
	doc := fixedService().Assemble(sampleQuote(t), Metadata{ClientName: "Atelier Dupont", InvoiceNumber: "F-1"})

	var buf bytes.Buffer
	if err := (TextRenderer{}).Render(&buf, doc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"INVOICE F-1", "Date: 09/03/2024", "Client: Atelier Dupont", "Location: Lyon", "-6,75 EUR", "VAT 20%", "153,90 EUR"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPDFRenderer(t *testing.T) {
	doc := fixedService().Assemble(sampleQuote(t), Metadata{
		ClientName: "Société Générale d'Été",
		Extra:      []Field{{Label: "Référence", Value: "Œuvre 12"}},
	})

	var buf bytes.Buffer
	if err := (PDFRenderer{}).Render(&buf, doc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestRendererFor(t *testing.T) {
	tests := map[string]string{"": ".pdf", "PDF": ".pdf", "text": ".txt", " txt ": ".txt"}
	for in, ext := range tests {
		r, err := RendererFor(in)
		if err != nil || r.Extension() != ext {
			t.Errorf("RendererFor(%q) = %v, %v", in, r, err)
		}
	}
	if _, err := RendererFor("docx"); err == nil {
		t.Error("expected error for unknown format")
	}
}
