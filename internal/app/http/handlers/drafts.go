package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mwd-interiors/quotedesk/internal/service"
)

func (h *Handlers) DraftRoutes(r chi.Router) {
	r.Get("/", h.ListDrafts)
	r.Post("/", h.CreateDraft)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.GetDraft)
		r.Put("/", h.UpdateDraft)
		r.Delete("/", h.DiscardDraft)
		r.Post("/save", h.SaveDraft)

		r.Post("/rooms", h.AddRoom)
		r.Put("/rooms/{roomID}", h.UpdateRoom)
		r.Delete("/rooms/{roomID}", h.RemoveRoom)

		r.Post("/rooms/{roomID}/items", h.AddItem)
		r.Put("/rooms/{roomID}/items/{itemID}", h.UpdateItem)
		r.Delete("/rooms/{roomID}/items/{itemID}", h.RemoveItem)
	})
}

func (h *Handlers) ListDrafts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Quotations.ListDrafts())
}

func (h *Handlers) CreateDraft(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusCreated, h.Quotations.NewDraft())
}

func (h *Handlers) GetDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	d, err := h.Quotations.GetDraft(id)
	h.respondDraft(w, r, http.StatusOK, d, err)
}

func (h *Handlers) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req service.DraftUpdate
	if !decode(w, r, &req) {
		return
	}
	d, err := h.Quotations.UpdateDraft(r.Context(), id, req)
	h.respondDraft(w, r, http.StatusOK, d, err)
}

func (h *Handlers) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Quotations.DiscardDraft(id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) SaveDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	q, err := h.Quotations.SaveDraft(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, q)
}

func (h *Handlers) AddRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req service.RoomInput
	if !decodeOptional(w, r, &req) {
		return
	}
	d, err := h.Quotations.AddRoom(id, req)
	h.respondDraft(w, r, http.StatusCreated, d, err)
}

func (h *Handlers) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	roomID, ok := pathID(w, r, "roomID")
	if !ok {
		return
	}
	var req service.RoomInput
	if !decode(w, r, &req) {
		return
	}
	d, err := h.Quotations.UpdateRoom(id, roomID, req)
	h.respondDraft(w, r, http.StatusOK, d, err)
}

func (h *Handlers) RemoveRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	roomID, ok := pathID(w, r, "roomID")
	if !ok {
		return
	}
	d, err := h.Quotations.RemoveRoom(id, roomID)
	h.respondDraft(w, r, http.StatusOK, d, err)
}

func (h *Handlers) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	roomID, ok := pathID(w, r, "roomID")
	if !ok {
		return
	}
	var req service.ItemInput
	if !decode(w, r, &req) {
		return
	}
	d, err := h.Quotations.AddItem(r.Context(), id, roomID, req)
	h.respondDraft(w, r, http.StatusCreated, d, err)
}

func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	roomID, ok := pathID(w, r, "roomID")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	var req service.ItemInput
	if !decode(w, r, &req) {
		return
	}
	d, err := h.Quotations.UpdateItem(id, roomID, itemID, req)
	h.respondDraft(w, r, http.StatusOK, d, err)
}

func (h *Handlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	roomID, ok := pathID(w, r, "roomID")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	d, err := h.Quotations.RemoveItem(id, roomID, itemID)
	h.respondDraft(w, r, http.StatusOK, d, err)
}

// respondDraft writes the draft view. Field errors do not fail the request:
// the rest of the change is applied and the errors travel in the body.
func (h *Handlers) respondDraft(w http.ResponseWriter, r *http.Request, status int, d service.DraftView, err error) {
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, status, d)
}
