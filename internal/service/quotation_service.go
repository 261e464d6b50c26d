package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mwd-interiors/quotedesk/internal/domain/catalog"
	"mwd-interiors/quotedesk/internal/domain/quote"
	"mwd-interiors/quotedesk/internal/domain/quote/document"
)

// QuotationOptions carries the configured defaults for new drafts.
type QuotationOptions struct {
	Defaults      quote.Defaults
	NumberPrefix  string
	PercentPolicy quote.PercentPolicy
}

// QuotationService edits drafts in the workspace, persists them as
// quotations and renders saved quotations into documents.
type QuotationService struct {
	repos      Repositories
	ws         *quote.Workspace
	opts       QuotationOptions
	generators map[string]document.Generator
	logger     *zap.Logger
	now        func() time.Time

	// serialises saves: draft read, number assignment, discard
	saveMu sync.Mutex
}

func NewQuotationService(
	repos Repositories,
	ws *quote.Workspace,
	opts QuotationOptions,
	generators []document.Generator,
	logger *zap.Logger,
) *QuotationService {
	if opts.NumberPrefix == "" {
		opts.NumberPrefix = "Q"
	}
	gens := make(map[string]document.Generator, len(generators))
	for _, g := range generators {
		gens[g.Extension()] = g
	}
	return &QuotationService{
		repos:      repos,
		ws:         ws,
		opts:       opts,
		generators: gens,
		logger:     logger,
		now:        time.Now,
	}
}

// DraftView is a draft together with its recomputed totals and any
// per-field input errors from the last change.
type DraftView struct {
	quote.Draft
	Totals      quote.QuotationTotals `json:"totals"`
	FieldErrors quote.FieldErrors     `json:"field_errors,omitempty"`
}

func view(d quote.Draft, fe quote.FieldErrors) DraftView {
	if len(fe) == 0 {
		fe = nil
	}
	return DraftView{Draft: d, Totals: quote.ComputeQuotation(d.Quotation), FieldErrors: fe}
}

func (s *QuotationService) NewDraft() DraftView {
	d := s.ws.Open(quote.NewDraft(s.opts.Defaults))
	s.logger.Debug("draft opened", zap.Int64("draft_id", d.ID))
	return view(d, nil)
}

func (s *QuotationService) GetDraft(id int64) (DraftView, error) {
	d, err := s.ws.Get(id)
	if err != nil {
		return DraftView{}, err
	}
	return view(d, nil), nil
}

func (s *QuotationService) ListDrafts() []DraftView {
	drafts := s.ws.List()
	out := make([]DraftView, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, view(d, nil))
	}
	return out
}

func (s *QuotationService) DiscardDraft(id int64) error {
	return s.ws.Discard(id)
}

// DraftUpdate changes quotation-level fields. A customer or salesperson id
// of 0 clears the selection; absent fields are left alone.
type DraftUpdate struct {
	CustomerID         *int64             `json:"customer_id" validate:"omitempty,min=0"`
	SalespersonID      *int64             `json:"salesperson_id" validate:"omitempty,min=0"`
	InstallationCharge quote.NumericInput `json:"installation_charge"`
	Terms              *string            `json:"terms" validate:"omitempty,max=5000"`
	Company            *quote.Company     `json:"company"`
}

func (s *QuotationService) UpdateDraft(ctx context.Context, id int64, in DraftUpdate) (DraftView, error) {
	var customer *catalog.Customer
	if in.CustomerID != nil && *in.CustomerID != 0 {
		c, err := s.repos.Customers.Get(ctx, *in.CustomerID)
		if err != nil {
			return DraftView{}, fmt.Errorf("failed to select customer: %w", err)
		}
		customer = &c
	}
	var salesperson *catalog.Salesperson
	if in.SalespersonID != nil && *in.SalespersonID != 0 {
		sp, err := s.repos.Salespeople.Get(ctx, *in.SalespersonID)
		if err != nil {
			return DraftView{}, fmt.Errorf("failed to select salesperson: %w", err)
		}
		salesperson = &sp
	}

	fe := quote.FieldErrors{}
	d, err := s.ws.Edit(id, func(d *quote.Draft) error {
		if in.CustomerID != nil {
			d.SelectCustomer(customer)
		}
		if in.SalespersonID != nil {
			d.SelectSalesperson(salesperson)
		}
		if in.InstallationCharge.IsSet() {
			f := quote.ParseAmount(in.InstallationCharge.String())
			if fe.Check("installation_charge", f.Err) {
				d.Quotation.InstallationCharge = f.Value
			}
		}
		if in.Terms != nil {
			d.Quotation.Terms = *in.Terms
		}
		if in.Company != nil {
			d.Quotation.Company = *in.Company
		}
		return nil
	})
	if err != nil {
		return DraftView{}, err
	}
	return view(d, fe), nil
}

type RoomInput struct {
	Name            *string            `json:"name" validate:"omitempty,min=1,max=120"`
	DiscountPercent quote.NumericInput `json:"discount_percent"`
	TaxPercent      quote.NumericInput `json:"tax_percent"`
}

func (s *QuotationService) AddRoom(id int64, in RoomInput) (DraftView, error) {
	fe := quote.FieldErrors{}
	d, err := s.ws.Edit(id, func(d *quote.Draft) error {
		r := d.AddRoom(s.opts.Defaults.TaxPercent)
		room, err := d.Room(r.ID)
		if err != nil {
			return err
		}
		s.applyRoom(room, in, fe)
		return nil
	})
	if err != nil {
		return DraftView{}, err
	}
	return view(d, fe), nil
}

func (s *QuotationService) UpdateRoom(id, roomID int64, in RoomInput) (DraftView, error) {
	fe := quote.FieldErrors{}
	d, err := s.ws.Edit(id, func(d *quote.Draft) error {
		room, err := d.Room(roomID)
		if err != nil {
			return err
		}
		s.applyRoom(room, in, fe)
		return nil
	})
	if err != nil {
		return DraftView{}, err
	}
	return view(d, fe), nil
}

func (s *QuotationService) applyRoom(room *quote.Room, in RoomInput, fe quote.FieldErrors) {
	if in.Name != nil {
		room.Name = strings.TrimSpace(*in.Name)
	}
	if in.DiscountPercent.IsSet() {
		f := quote.ParsePercent(in.DiscountPercent.String(), s.opts.PercentPolicy)
		if fe.Check("discount_percent", f.Err) {
			room.DiscountPercent = f.Value
		}
	}
	if in.TaxPercent.IsSet() {
		f := quote.ParsePercent(in.TaxPercent.String(), s.opts.PercentPolicy)
		if fe.Check("tax_percent", f.Err) {
			room.TaxPercent = f.Value
		}
	}
}

func (s *QuotationService) RemoveRoom(id, roomID int64) (DraftView, error) {
	d, err := s.ws.Edit(id, func(d *quote.Draft) error { return d.RemoveRoom(roomID) })
	if err != nil {
		return DraftView{}, err
	}
	return view(d, nil), nil
}

// ItemInput adds or edits a line item. When adding, ProductID picks a
// catalog product (one unit at its MRP) and the remaining fields override
// it; without ProductID the item is entered manually and needs a name.
type ItemInput struct {
	ProductID      *int64             `json:"product_id" validate:"omitempty,min=1"`
	Name           *string            `json:"name" validate:"omitempty,max=200"`
	Brand          *string            `json:"brand" validate:"omitempty,max=120"`
	Specifications *string            `json:"specifications" validate:"omitempty,max=2000"`
	MRP            quote.NumericInput `json:"mrp"`
	Quantity       quote.NumericInput `json:"quantity"`
	UnitPrice      quote.NumericInput `json:"unit_price"`
	PhotoURL       *string            `json:"photo_url" validate:"omitempty,max=2000"`
}

func (s *QuotationService) AddItem(ctx context.Context, id, roomID int64, in ItemInput) (DraftView, error) {
	var product *catalog.Product
	if in.ProductID != nil {
		p, err := s.repos.Products.Get(ctx, *in.ProductID)
		if err != nil {
			return DraftView{}, fmt.Errorf("failed to add product: %w", err)
		}
		product = &p
	} else if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return DraftView{}, fmt.Errorf("%w: a manual item needs a name", ErrInvalidInput)
	}

	fe := quote.FieldErrors{}
	d, err := s.ws.Edit(id, func(d *quote.Draft) error {
		var it quote.LineItem
		var err error
		if product != nil {
			it, err = d.AddProduct(roomID, *product)
		} else {
			it, err = d.AddItem(roomID, quote.LineItem{
				Quantity:  1,
				MRP:       decimal.Zero,
				UnitPrice: decimal.Zero,
			})
		}
		if err != nil {
			return err
		}
		item, err := d.Item(roomID, it.ID)
		if err != nil {
			return err
		}
		applyItem(item, in, fe)
		return nil
	})
	if err != nil {
		return DraftView{}, err
	}
	return view(d, fe), nil
}

func (s *QuotationService) UpdateItem(id, roomID, itemID int64, in ItemInput) (DraftView, error) {
	fe := quote.FieldErrors{}
	d, err := s.ws.Edit(id, func(d *quote.Draft) error {
		item, err := d.Item(roomID, itemID)
		if err != nil {
			return err
		}
		applyItem(item, in, fe)
		return nil
	})
	if err != nil {
		return DraftView{}, err
	}
	return view(d, fe), nil
}

// applyItem copies the set fields of in onto it. A field that fails to
// parse is reported and leaves the item's value unchanged.
func applyItem(it *quote.LineItem, in ItemInput, fe quote.FieldErrors) {
	if in.Name != nil {
		it.Name = strings.TrimSpace(*in.Name)
	}
	if in.Brand != nil {
		it.Brand = *in.Brand
	}
	if in.Specifications != nil {
		it.Specifications = *in.Specifications
	}
	if in.PhotoURL != nil {
		it.PhotoURL = *in.PhotoURL
	}
	if in.MRP.IsSet() {
		f := quote.ParseAmount(in.MRP.String())
		if fe.Check("mrp", f.Err) {
			it.MRP = f.Value
		}
	}
	if in.Quantity.IsSet() {
		f := quote.ParseQuantity(in.Quantity.String())
		if fe.Check("quantity", f.Err) {
			it.Quantity = f.Value
		}
	}
	if in.UnitPrice.IsSet() {
		f := quote.ParseAmount(in.UnitPrice.String())
		if fe.Check("unit_price", f.Err) {
			it.UnitPrice = f.Value
		}
	}
}

func (s *QuotationService) RemoveItem(id, roomID, itemID int64) (DraftView, error) {
	d, err := s.ws.Edit(id, func(d *quote.Draft) error { return d.RemoveItem(roomID, itemID) })
	if err != nil {
		return DraftView{}, err
	}
	return view(d, nil), nil
}

// SaveDraft persists the draft and drops it from the workspace. A new
// quotation gets the next number and today's date; a reopened one keeps
// both and is overwritten.
func (s *QuotationService) SaveDraft(ctx context.Context, id int64) (quote.Quotation, error) {
	// Held from the read to the discard so a draft is persisted at most once.
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	d, err := s.ws.Get(id)
	if err != nil {
		return quote.Quotation{}, err
	}
	q := d.Quotation.Clone()
	q.TotalAmount = q.GrandTotal()
	if q.Status == "" {
		q.Status = quote.StatusPending
	}

	var saved quote.Quotation
	if q.ID == 0 {
		now := s.now()
		q.CreatedAt = now
		if q.Number, err = s.nextNumber(ctx, now.Year()); err != nil {
			return quote.Quotation{}, err
		}
		saved, err = s.repos.Quotations.Create(ctx, q)
	} else {
		saved, err = s.repos.Quotations.Update(ctx, q)
	}
	if err != nil {
		return quote.Quotation{}, fmt.Errorf("failed to save quotation: %w", err)
	}
	if err := s.ws.Discard(id); err != nil {
		s.logger.Warn("draft already gone after save", zap.Int64("draft_id", id))
	}
	s.logger.Info("quotation saved",
		zap.Int64("id", saved.ID),
		zap.String("number", saved.Number),
		zap.String("total", saved.TotalAmount.StringFixed(2)),
	)
	return saved, nil
}

type numberLister interface {
	Numbers(ctx context.Context, prefix string, year int) ([]string, error)
}

func (s *QuotationService) nextNumber(ctx context.Context, year int) (string, error) {
	prefix := s.opts.NumberPrefix
	if nl, ok := s.repos.Quotations.(numberLister); ok {
		issued, err := nl.Numbers(ctx, prefix, year)
		if err != nil {
			return "", fmt.Errorf("failed to read quotation numbers: %w", err)
		}
		return quote.NextNumber(prefix, year, issued), nil
	}
	all, err := s.repos.Quotations.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read quotation numbers: %w", err)
	}
	issued := make([]string, 0, len(all))
	for _, q := range all {
		issued = append(issued, q.Number)
	}
	return quote.NextNumber(prefix, year, issued), nil
}

// EditQuotation opens a saved quotation as a new draft.
func (s *QuotationService) EditQuotation(ctx context.Context, quotationID int64) (DraftView, error) {
	q, err := s.repos.Quotations.Get(ctx, quotationID)
	if err != nil {
		return DraftView{}, fmt.Errorf("failed to load quotation: %w", err)
	}
	d := s.ws.Open(quote.DraftFrom(q))
	return view(d, nil), nil
}

func (s *QuotationService) Get(ctx context.Context, id int64) (quote.Quotation, error) {
	q, err := s.repos.Quotations.Get(ctx, id)
	if err != nil {
		return quote.Quotation{}, fmt.Errorf("failed to get quotation: %w", err)
	}
	return q, nil
}

// List returns saved quotations matching f, newest first.
func (s *QuotationService) List(ctx context.Context, f quote.ListFilter) ([]quote.Quotation, error) {
	all, err := s.repos.Quotations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}
	if f.Now.IsZero() {
		f.Now = s.now()
	}
	out := quote.FilterQuotations(all, f)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *QuotationService) SetStatus(ctx context.Context, id int64, status quote.Status) (quote.Quotation, error) {
	q, err := s.repos.Quotations.Get(ctx, id)
	if err != nil {
		return quote.Quotation{}, fmt.Errorf("failed to get quotation: %w", err)
	}
	q.Status = status
	out, err := s.repos.Quotations.Update(ctx, q)
	if err != nil {
		return quote.Quotation{}, fmt.Errorf("failed to update quotation: %w", err)
	}
	s.logger.Info("quotation status changed", zap.Int64("id", id), zap.String("status", string(status)))
	return out, nil
}

func (s *QuotationService) Delete(ctx context.Context, id int64) error {
	if err := s.repos.Quotations.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quotation: %w", err)
	}
	s.logger.Info("quotation deleted", zap.Int64("id", id))
	return nil
}

// Export is a rendered quotation ready to be downloaded.
type Export struct {
	Data        []byte
	ContentType string
	Filename    string
}

func (s *QuotationService) Formats() []string {
	out := make([]string, 0, len(s.generators))
	for _, f := range []string{"pdf", "doc", "xlsx"} {
		if _, ok := s.generators[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

func (s *QuotationService) Export(ctx context.Context, id int64, format string) (Export, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "pdf"
	}
	gen, ok := s.generators[format]
	if !ok {
		return Export{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	q, err := s.repos.Quotations.Get(ctx, id)
	if err != nil {
		return Export{}, fmt.Errorf("failed to get quotation: %w", err)
	}
	doc, err := document.Build(q)
	if err != nil {
		return Export{}, err
	}
	data, err := gen.Generate(doc)
	if err != nil {
		return Export{}, fmt.Errorf("failed to render %s: %w", format, err)
	}
	s.logger.Info("quotation exported",
		zap.Int64("id", id),
		zap.String("format", format),
		zap.Int("bytes", len(data)),
	)
	return Export{Data: data, ContentType: gen.ContentType(), Filename: doc.Filename(gen.Extension())}, nil
}
