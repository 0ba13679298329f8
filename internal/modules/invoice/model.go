// README: Invoice document, metadata and line items.
package invoice

import (
	"time"

	"tarif/internal/modules/pricing"
	"tarif/internal/types"
)

// Field is a free-form label/value pair printed in the invoice header.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Metadata is passed through to the document without interpretation.
type Metadata struct {
	ClientName    string    `json:"client_name"`
	InvoiceNumber string    `json:"invoice_number"`
	IssuedAt      time.Time `json:"issued_at"`
	Extra         []Field   `json:"extra"`
}

type LineItem struct {
	Label  string      `json:"label"`
	Amount types.Money `json:"amount"`
}

// Document is everything a renderer needs to print one invoice.
type Document struct {
	Number     string      `json:"number"`
	IssuedAt   time.Time   `json:"issued_at"`
	Issuer     string      `json:"issuer"`
	ClientName string      `json:"client_name"`
	Location   string      `json:"location"`
	Extra      []Field     `json:"extra"`
	Lines      []LineItem  `json:"lines"`
	Net        types.Money `json:"net"`
	TaxLabel   string      `json:"tax_label"`
	Tax        types.Money `json:"tax"`
	Gross      types.Money `json:"gross"`

	Quote pricing.QuoteResult `json:"quote"`
}
