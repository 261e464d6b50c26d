package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mwd-interiors/quotedesk/internal/domain/quote"
)

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// QuotationRoutes registers the saved-quotation routes. Export is passed
// its own middleware so it can be throttled separately.
func (h *Handlers) QuotationRoutes(exportLimit func(http.Handler) http.Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", h.ListQuotations)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetQuotation)
			r.Delete("/", h.DeleteQuotation)
			r.Put("/status", h.SetQuotationStatus)
			r.Post("/edit", h.EditQuotation)
			r.With(exportLimit).Get("/export", h.ExportQuotation)
		})
	}
}

func (h *Handlers) ListQuotations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := quote.ListFilter{Search: q.Get("search")}
	fields := map[string]string{}
	if s := q.Get("status"); s != "" && s != "all" {
		st, err := quote.ParseStatus(s)
		if err != nil {
			fields["status"] = err.Error()
		}
		f.Status = st
	}
	dr, err := quote.ParseDateRange(q.Get("date"))
	if err != nil {
		fields["date"] = err.Error()
	}
	f.Date = dr
	if len(fields) > 0 {
		respondFieldErrors(w, fields)
		return
	}

	out, err := h.Quotations.List(r.Context(), f)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) GetQuotation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	q, err := h.Quotations.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, q)
}

func (h *Handlers) DeleteQuotation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Quotations.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) SetQuotationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if !decode(w, r, &req) {
		return
	}
	st, err := quote.ParseStatus(req.Status)
	if err != nil {
		respondFieldErrors(w, map[string]string{"status": err.Error()})
		return
	}
	q, err := h.Quotations.SetStatus(r.Context(), id, st)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, q)
}

func (h *Handlers) EditQuotation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	d, err := h.Quotations.EditQuotation(r.Context(), id)
	h.respondDraft(w, r, http.StatusCreated, d, err)
}

func (h *Handlers) ExportQuotation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Quotations.Export(r.Context(), id, r.URL.Query().Get("format"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Data)
}
