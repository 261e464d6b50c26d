// Package document turns a saved quotation into the printable model shared
// by the PDF, Word and spreadsheet renderers.
package document

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mwd-interiors/quotedesk/internal/domain/quote"
)

type Line struct {
	No          int
	Name        string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// Section is one room as printed: its lines and the four summary rows.
type Section struct {
	Name            string
	Lines           []Line
	Subtotal        decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxPercent      decimal.Decimal
	TaxAmount       decimal.Decimal
	Total           decimal.Decimal
}

type Document struct {
	Number  string
	Date    time.Time
	Company quote.Company

	CustomerName    string
	CustomerAddress string
	CustomerMobile  string
	CustomerGST     string

	Sections           []Section
	InstallationCharge decimal.Decimal
	GrandTotal         decimal.Decimal
	AmountInWords      string
	Terms              []string

	SalespersonName    string
	SalespersonContact string
}

// Generator renders a Document into one file format.
type Generator interface {
	Generate(doc Document) ([]byte, error)
	ContentType() string
	Extension() string
}

// Build assembles the printable model. The quotation must name both a
// customer and a salesperson.
func Build(q quote.Quotation) (Document, error) {
	if err := q.Finalize(); err != nil {
		return Document{}, err
	}
	totals := quote.ComputeQuotation(q)

	doc := Document{
		Number:             q.Number,
		Date:               q.CreatedAt,
		Company:            q.Company,
		CustomerName:       q.Customer.Name,
		CustomerAddress:    q.Customer.Address,
		CustomerMobile:     q.Customer.Mobile,
		CustomerGST:        q.Customer.GST,
		InstallationCharge: totals.InstallationCharge,
		GrandTotal:         totals.GrandTotal,
		AmountInWords:      quote.RupeesInWords(totals.GrandTotal),
		Terms:              splitTerms(q.Terms),
		SalespersonName:    q.Salesperson.Name,
		SalespersonContact: q.Salesperson.Contact(),
	}

	doc.Sections = make([]Section, 0, len(q.Rooms))
	for i, r := range q.Rooms {
		rt := totals.Rooms[i]
		s := Section{
			Name:            r.Name,
			Lines:           make([]Line, 0, len(r.Items)),
			Subtotal:        rt.Subtotal,
			DiscountPercent: r.DiscountPercent,
			DiscountAmount:  rt.DiscountAmount,
			TaxPercent:      r.TaxPercent,
			TaxAmount:       rt.TaxAmount,
			Total:           rt.Total,
		}
		for j, it := range r.Items {
			s.Lines = append(s.Lines, Line{
				No:          j + 1,
				Name:        it.Name,
				Description: it.Specifications,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				Total:       it.Total(),
			})
		}
		doc.Sections = append(doc.Sections, s)
	}
	return doc, nil
}

// Filename is the download name for the given extension, e.g.
// "Quotation_Q-2025-001.pdf".
func (d Document) Filename(ext string) string {
	name := d.Number
	if name == "" {
		name = "draft"
	}
	return "Quotation_" + name + "." + strings.TrimPrefix(ext, ".")
}

func splitTerms(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
