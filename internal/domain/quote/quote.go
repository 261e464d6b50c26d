// Package quote is the quotation model and its pricing engine: line, room and
// quotation aggregates plus the Indian-system amount-in-words formatter.
package quote

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mwd-interiors/quotedesk/internal/domain/catalog"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// Company is the issuing business printed in the document header.
type Company struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

type LineItem struct {
	ID             int64           `json:"id"`
	ProductID      *int64          `json:"product_id,omitempty"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand,omitempty"`
	Specifications string          `json:"specifications,omitempty"`
	MRP            decimal.Decimal `json:"mrp"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	PhotoURL       string          `json:"photo_url,omitempty"`
}

type Room struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	Items           []LineItem      `json:"items"`
}

// Quotation is the saved document. Customer and Salesperson are snapshots
// taken when the record was selected and may be nil on a draft.
type Quotation struct {
	ID                 int64                `json:"id"`
	Number             string               `json:"number"`
	CreatedAt          time.Time            `json:"created_at"`
	Status             Status               `json:"status"`
	Customer           *catalog.Customer    `json:"customer"`
	Salesperson        *catalog.Salesperson `json:"salesperson"`
	Company            Company              `json:"company"`
	Rooms              []Room               `json:"rooms"`
	InstallationCharge decimal.Decimal      `json:"installation_charge"`
	Terms              string               `json:"terms"`
	TotalAmount        decimal.Decimal      `json:"total_amount"`
}

func (q Quotation) GetID() int64     { return q.ID }
func (q *Quotation) SetID(id int64) { q.ID = id }

// CustomerName is empty when no customer has been chosen.
func (q Quotation) CustomerName() string {
	if q.Customer == nil {
		return ""
	}
	return q.Customer.Name
}

// Clone returns a copy that shares no slices or pointers with q.
func (q Quotation) Clone() Quotation {
	out := q
	if q.Customer != nil {
		c := *q.Customer
		out.Customer = &c
	}
	if q.Salesperson != nil {
		s := *q.Salesperson
		out.Salesperson = &s
	}
	out.Rooms = make([]Room, len(q.Rooms))
	for i, r := range q.Rooms {
		out.Rooms[i] = r
		out.Rooms[i].Items = make([]LineItem, len(r.Items))
		for j, it := range r.Items {
			if it.ProductID != nil {
				id := *it.ProductID
				it.ProductID = &id
			}
			out.Rooms[i].Items[j] = it
		}
	}
	return out
}

var ErrIncomplete = errors.New("quotation incomplete")

// Finalize checks the selections a document cannot be issued without.
func (q Quotation) Finalize() error {
	var missing []string
	if q.Customer == nil {
		missing = append(missing, "customer")
	}
	if q.Salesperson == nil {
		missing = append(missing, "salesperson")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: select %s", ErrIncomplete, strings.Join(missing, " and "))
	}
	return nil
}
