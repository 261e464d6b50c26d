package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"mwd-interiors/quotedesk/internal/domain/catalog"
	"mwd-interiors/quotedesk/internal/domain/quote"
	"mwd-interiors/quotedesk/internal/service"
)

type CustomerRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"max=500"`
	Mobile  string `json:"mobile" validate:"max=20"`
	GST     string `json:"gst" validate:"max=20"`
}

type ProductRequest struct {
	Name           string             `json:"name" validate:"required,max=200"`
	Brand          string             `json:"brand" validate:"max=120"`
	Specifications string             `json:"specifications" validate:"max=2000"`
	MRP            quote.NumericInput `json:"mrp"`
	PhotoURL       string             `json:"photo_url" validate:"omitempty,url"`
}

type SalespersonRequest struct {
	Name   string `json:"name" validate:"required,max=200"`
	Mobile string `json:"mobile" validate:"max=20"`
	Place  string `json:"place" validate:"max=200"`
	Email  string `json:"email" validate:"omitempty,email"`
}

func parseCustomer(w http.ResponseWriter, r *http.Request) (catalog.Customer, bool) {
	var req CustomerRequest
	if !decode(w, r, &req) {
		return catalog.Customer{}, false
	}
	return catalog.Customer{
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Mobile:  strings.TrimSpace(req.Mobile),
		GST:     strings.ToUpper(strings.TrimSpace(req.GST)),
	}, true
}

func parseProduct(w http.ResponseWriter, r *http.Request) (catalog.Product, bool) {
	var req ProductRequest
	if !decode(w, r, &req) {
		return catalog.Product{}, false
	}
	mrp := quote.ParseAmount(req.MRP.String())
	if !mrp.OK() {
		respondFieldErrors(w, map[string]string{"mrp": mrp.Err.Error()})
		return catalog.Product{}, false
	}
	return catalog.Product{
		Name:           strings.TrimSpace(req.Name),
		Brand:          strings.TrimSpace(req.Brand),
		Specifications: strings.TrimSpace(req.Specifications),
		MRP:            mrp.Value,
		PhotoURL:       strings.TrimSpace(req.PhotoURL),
	}, true
}

func parseSalesperson(w http.ResponseWriter, r *http.Request) (catalog.Salesperson, bool) {
	var req SalespersonRequest
	if !decode(w, r, &req) {
		return catalog.Salesperson{}, false
	}
	return catalog.Salesperson{
		Name:   strings.TrimSpace(req.Name),
		Mobile: strings.TrimSpace(req.Mobile),
		Place:  strings.TrimSpace(req.Place),
		Email:  strings.TrimSpace(req.Email),
	}, true
}

type entityPtr[T any] interface {
	*T
	SetID(id int64)
}

// catalogHandler serves the list/get/create/update/delete routes of one
// catalog collection.
type catalogHandler[T service.Record, P entityPtr[T]] struct {
	h     *Handlers
	svc   *service.CatalogService[T, P]
	parse func(http.ResponseWriter, *http.Request) (T, bool)
}

func (c catalogHandler[T, P]) routes(r chi.Router) {
	r.Get("/", c.list)
	r.Post("/", c.create)
	r.Get("/{id}", c.get)
	r.Put("/{id}", c.update)
	r.Delete("/{id}", c.delete)
}

func (c catalogHandler[T, P]) list(w http.ResponseWriter, r *http.Request) {
	items, err := c.svc.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		c.h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (c catalogHandler[T, P]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	item, err := c.svc.Get(r.Context(), id)
	if err != nil {
		c.h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (c catalogHandler[T, P]) create(w http.ResponseWriter, r *http.Request) {
	v, ok := c.parse(w, r)
	if !ok {
		return
	}
	created, err := c.svc.Create(r.Context(), v)
	if err != nil {
		c.h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (c catalogHandler[T, P]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	v, ok := c.parse(w, r)
	if !ok {
		return
	}
	updated, err := c.svc.Update(r.Context(), id, v)
	if err != nil {
		c.h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (c catalogHandler[T, P]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.svc.Delete(r.Context(), id); err != nil {
		c.h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) CustomerRoutes(r chi.Router) {
	catalogHandler[catalog.Customer, *catalog.Customer]{h: h, svc: h.Customers, parse: parseCustomer}.routes(r)
}

func (h *Handlers) ProductRoutes(r chi.Router) {
	catalogHandler[catalog.Product, *catalog.Product]{h: h, svc: h.Products, parse: parseProduct}.routes(r)
}

func (h *Handlers) SalespersonRoutes(r chi.Router) {
	catalogHandler[catalog.Salesperson, *catalog.Salesperson]{h: h, svc: h.Salespeople, parse: parseSalesperson}.routes(r)
}
