package quote

import "github.com/shopspring/decimal"

// All aggregates are recomputed from the live item list on every call.
// Percentages are used as given; range checks belong to the input boundary.

type RoomTotals struct {
	RoomID         int64           `json:"room_id"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
}

type QuotationTotals struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	TotalDiscount      decimal.Decimal `json:"total_discount"`
	TotalTax           decimal.Decimal `json:"total_tax"`
	InstallationCharge decimal.Decimal `json:"installation_charge"`
	GrandTotal         decimal.Decimal `json:"grand_total"`
	Rooms              []RoomTotals    `json:"rooms"`
}

func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

func (it LineItem) Total() decimal.Decimal {
	return LineTotal(it.Quantity, it.UnitPrice)
}

func (r Room) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range r.Items {
		sum = sum.Add(it.Total())
	}
	return sum
}

func (r Room) DiscountAmount() decimal.Decimal {
	return percentOf(r.Subtotal(), r.DiscountPercent)
}

// TaxAmount is charged on the post-discount base.
func (r Room) TaxAmount() decimal.Decimal {
	return percentOf(r.Subtotal().Sub(r.DiscountAmount()), r.TaxPercent)
}

func (r Room) Total() decimal.Decimal {
	return ComputeRoom(r).Total
}

func ComputeRoom(r Room) RoomTotals {
	subtotal := r.Subtotal()
	discount := percentOf(subtotal, r.DiscountPercent)
	base := subtotal.Sub(discount)
	tax := percentOf(base, r.TaxPercent)
	return RoomTotals{
		RoomID:         r.ID,
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          base.Add(tax),
	}
}

func ComputeQuotation(q Quotation) QuotationTotals {
	t := QuotationTotals{
		Subtotal:           decimal.Zero,
		TotalDiscount:      decimal.Zero,
		TotalTax:           decimal.Zero,
		InstallationCharge: q.InstallationCharge,
		Rooms:              make([]RoomTotals, 0, len(q.Rooms)),
	}
	roomsTotal := decimal.Zero
	for _, r := range q.Rooms {
		rt := ComputeRoom(r)
		t.Subtotal = t.Subtotal.Add(rt.Subtotal)
		t.TotalDiscount = t.TotalDiscount.Add(rt.DiscountAmount)
		t.TotalTax = t.TotalTax.Add(rt.TaxAmount)
		roomsTotal = roomsTotal.Add(rt.Total)
		t.Rooms = append(t.Rooms, rt)
	}
	t.GrandTotal = roomsTotal.Add(q.InstallationCharge)
	return t
}

func (q Quotation) GrandTotal() decimal.Decimal {
	return ComputeQuotation(q).GrandTotal
}

// percentOf is amount*pct/100; the shift keeps it exact.
func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Shift(-2)
}
