// README: Invoice renderers (paginated PDF and plain text).
package invoice

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const dateLayout = "02/01/2006"

// Renderer writes a document in one output format.
type Renderer interface {
	ContentType() string
	Extension() string
	Render(w io.Writer, doc Document) error
}

// RendererFor maps a format name to its renderer; blank means PDF.
func RendererFor(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "pdf":
		return PDFRenderer{}, nil
	case "text", "txt":
		return TextRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown invoice format %q", format)
	}
}

type TextRenderer struct{}

func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }
func (TextRenderer) Extension() string   { return ".txt" }

func (TextRenderer) Render(w io.Writer, doc Document) error {
	var b strings.Builder
	fmt.Fprintf(&b, "INVOICE %s\n", doc.Number)
	fmt.Fprintf(&b, "Date: %s\n", doc.IssuedAt.Format(dateLayout))
	if doc.Issuer != "" {
		fmt.Fprintf(&b, "From: %s\n", doc.Issuer)
	}
	if doc.ClientName != "" {
		fmt.Fprintf(&b, "Client: %s\n", doc.ClientName)
	}
	if doc.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", doc.Location)
	}
	for _, f := range doc.Extra {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
	}
	b.WriteString("\n")
	for _, l := range doc.Lines {
		fmt.Fprintf(&b, "%-32s %16s\n", l.Label, l.Amount)
	}
	b.WriteString(strings.Repeat("-", 49) + "\n")
	fmt.Fprintf(&b, "%-32s %16s\n", "Net", doc.Net)
	fmt.Fprintf(&b, "%-32s %16s\n", doc.TaxLabel, doc.Tax)
	fmt.Fprintf(&b, "%-32s %16s\n", "Total", doc.Gross)

	_, err := io.WriteString(w, b.String())
	return err
}

type PDFRenderer struct{}

func (PDFRenderer) ContentType() string { return "application/pdf" }
func (PDFRenderer) Extension() string   { return ".pdf" }

func (PDFRenderer) Render(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%s - page %d/{nb}", doc.Number, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("Invoice "+doc.Number), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	header := []Field{{Label: "Date", Value: doc.IssuedAt.Format(dateLayout)}}
	if doc.Issuer != "" {
		header = append(header, Field{Label: "From", Value: doc.Issuer})
	}
	if doc.ClientName != "" {
		header = append(header, Field{Label: "Client", Value: doc.ClientName})
	}
	if doc.Location != "" {
		header = append(header, Field{Label: "Location", Value: doc.Location})
	}
	header = append(header, doc.Extra...)
	for _, f := range header {
		pdf.CellFormat(40, 6, tr(f.Label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(f.Value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(130, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, l := range doc.Lines {
		pdf.CellFormat(130, 7, tr(l.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, tr(l.Amount.String()), "1", 1, "R", false, 0, "")
	}

	totals := []LineItem{
		{Label: "Net", Amount: doc.Net},
		{Label: doc.TaxLabel, Amount: doc.Tax},
		{Label: "Total", Amount: doc.Gross},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Helvetica", "B", 11)
		}
		pdf.CellFormat(130, 7, tr(t.Label), "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, tr(t.Amount.String()), "1", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
