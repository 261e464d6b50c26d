package handlers

import (
	"net/http"
)

type HealthResponse struct {
	Status  string   `json:"status"`
	Formats []string `json:"formats"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Formats: h.Quotations.Formats(),
	})
}
