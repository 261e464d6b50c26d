package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"mwd-interiors/quotedesk/internal/domain/quote"
	"mwd-interiors/quotedesk/internal/service"
)

type WordsResponse struct {
	Amount string `json:"amount"`
	Words  string `json:"words"`
	INR    string `json:"inr"`
}

func (h *Handlers) PricingRoutes(r chi.Router) {
	r.Post("/preview", h.PreviewPricing)
	r.Get("/words", h.AmountInWords)
}

func (h *Handlers) PreviewPricing(w http.ResponseWriter, r *http.Request) {
	var req service.PreviewInput
	if !decode(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, service.Preview(req, h.percentPolicy))
}

func (h *Handlers) AmountInWords(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("amount")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		respondFieldErrors(w, map[string]string{"amount": "Must be a number"})
		return
	}
	if err := quote.CheckMagnitude(amount); err != nil {
		respondFieldErrors(w, map[string]string{"amount": err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, WordsResponse{
		Amount: amount.StringFixed(2),
		Words:  quote.RupeesInWords(amount),
		INR:    quote.FormatINR(amount),
	})
}
