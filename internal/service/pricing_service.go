package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"mwd-interiors/quotedesk/internal/domain/quote"
)

type PreviewItem struct {
	Quantity  quote.NumericInput `json:"quantity"`
	UnitPrice quote.NumericInput `json:"unit_price"`
}

type PreviewRoom struct {
	DiscountPercent quote.NumericInput `json:"discount_percent"`
	TaxPercent      quote.NumericInput `json:"tax_percent"`
	Items           []PreviewItem      `json:"items" validate:"dive"`
}

type PreviewInput struct {
	Rooms              []PreviewRoom      `json:"rooms" validate:"dive"`
	InstallationCharge quote.NumericInput `json:"installation_charge"`
}

type PreviewResult struct {
	Totals        quote.QuotationTotals `json:"totals"`
	AmountInWords string                `json:"amount_in_words"`
	FieldErrors   quote.FieldErrors     `json:"field_errors,omitempty"`
}

// Preview prices a posted quotation without touching any draft. Fields
// that fail to parse fall back to their defaults (quantity 1, everything
// else 0) and are reported by path.
func Preview(in PreviewInput, policy quote.PercentPolicy) PreviewResult {
	fe := quote.FieldErrors{}
	q := quote.Quotation{Rooms: make([]quote.Room, 0, len(in.Rooms))}

	q.InstallationCharge = decimal.Zero
	if in.InstallationCharge.IsSet() {
		f := quote.ParseAmount(in.InstallationCharge.String())
		fe.Check("installation_charge", f.Err)
		q.InstallationCharge = f.Value
	}

	for i, r := range in.Rooms {
		room := quote.Room{ID: int64(i + 1), DiscountPercent: decimal.Zero, TaxPercent: decimal.Zero}
		if r.DiscountPercent.IsSet() {
			f := quote.ParsePercent(r.DiscountPercent.String(), policy)
			fe.Check(fmt.Sprintf("rooms[%d].discount_percent", i), f.Err)
			room.DiscountPercent = f.Value
		}
		if r.TaxPercent.IsSet() {
			f := quote.ParsePercent(r.TaxPercent.String(), policy)
			fe.Check(fmt.Sprintf("rooms[%d].tax_percent", i), f.Err)
			room.TaxPercent = f.Value
		}
		for j, it := range r.Items {
			item := quote.LineItem{ID: int64(j + 1), Quantity: 1, UnitPrice: decimal.Zero}
			if it.Quantity.IsSet() {
				f := quote.ParseQuantity(it.Quantity.String())
				fe.Check(fmt.Sprintf("rooms[%d].items[%d].quantity", i, j), f.Err)
				item.Quantity = f.Value
			}
			if it.UnitPrice.IsSet() {
				f := quote.ParseAmount(it.UnitPrice.String())
				fe.Check(fmt.Sprintf("rooms[%d].items[%d].unit_price", i, j), f.Err)
				item.UnitPrice = f.Value
			}
			room.Items = append(room.Items, item)
		}
		q.Rooms = append(q.Rooms, room)
	}

	totals := quote.ComputeQuotation(q)
	res := PreviewResult{
		Totals:        totals,
		AmountInWords: quote.RupeesInWords(totals.GrandTotal),
	}
	if len(fe) > 0 {
		res.FieldErrors = fe
	}
	return res
}
