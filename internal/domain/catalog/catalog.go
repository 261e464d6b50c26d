// Package catalog holds the reference records a quotation is assembled from:
// customers, products and sales personnel.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Mobile  string `json:"mobile"`
	GST     string `json:"gst"`
}

func (c Customer) GetID() int64     { return c.ID }
func (c *Customer) SetID(id int64) { c.ID = id }

// Matches reports whether the customer is selected by a search term.
// Name and GST match case-insensitively, mobile by substring.
func (c Customer) Matches(term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Name), t) ||
		strings.Contains(c.Mobile, term) ||
		strings.Contains(strings.ToLower(c.GST), t)
}

type Product struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand"`
	Specifications string          `json:"specifications"`
	MRP            decimal.Decimal `json:"mrp"`
	PhotoURL       string          `json:"photo_url,omitempty"`
}

func (p Product) GetID() int64     { return p.ID }
func (p *Product) SetID(id int64) { p.ID = id }

func (p Product) Matches(term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), t) ||
		strings.Contains(strings.ToLower(p.Brand), t) ||
		strings.Contains(strings.ToLower(p.Specifications), t)
}

type Salesperson struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Place  string `json:"place"`
	Email  string `json:"email"`
}

func (s Salesperson) GetID() int64     { return s.ID }
func (s *Salesperson) SetID(id int64) { s.ID = id }

func (s Salesperson) Matches(term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(s.Name), t) ||
		strings.Contains(s.Mobile, term) ||
		strings.Contains(strings.ToLower(s.Place), t)
}

// Contact is the line printed under the salesperson's name on a document.
func (s Salesperson) Contact() string {
	switch {
	case s.Mobile != "" && s.Email != "":
		return s.Mobile + " / " + s.Email
	case s.Mobile != "":
		return s.Mobile
	default:
		return s.Email
	}
}

// Filter returns the records selected by term, preserving order.
func Filter[T interface{ Matches(string) bool }](items []T, term string) []T {
	term = strings.TrimSpace(term)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.Matches(term) {
			out = append(out, it)
		}
	}
	return out
}
