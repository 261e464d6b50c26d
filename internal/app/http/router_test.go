package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mwd-interiors/quotedesk/internal/app/config"
	"mwd-interiors/quotedesk/internal/app/http/handlers"
	"mwd-interiors/quotedesk/internal/domain/catalog"
	"mwd-interiors/quotedesk/internal/domain/quote"
	"mwd-interiors/quotedesk/internal/domain/quote/document"
	"mwd-interiors/quotedesk/internal/domain/quote/document/excel"
	"mwd-interiors/quotedesk/internal/domain/quote/document/gofpdf"
	"mwd-interiors/quotedesk/internal/domain/quote/document/worddoc"
	"mwd-interiors/quotedesk/internal/infra/store/local"
	"mwd-interiors/quotedesk/internal/service"
)

func newTestRouter(t *testing.T, cfg config.Config) http.Handler {
	t.Helper()
	log := zap.NewNop()
	st := local.NewMemory(log)
	repos := service.Repositories{
		Customers:   st.Customers,
		Products:    st.Products,
		Salespeople: st.Salespeople,
		Quotations:  st.Quotations,
	}
	require.NoError(t, service.SeedCatalog(context.Background(), repos, log))

	quotations := service.NewQuotationService(repos, quote.NewWorkspace(), service.QuotationOptions{
		Defaults: quote.Defaults{
			Company:            quote.Company{Name: "MWD Interiors"},
			Terms:              "1. 50% advance payment required",
			InstallationCharge: decimal.NewFromInt(5000),
			TaxPercent:         decimal.NewFromInt(18),
		},
		NumberPrefix:  "Q",
		PercentPolicy: quote.PercentReject,
	}, []document.Generator{gofpdf.New("", log), worddoc.New(log), excel.New(log)}, log)

	h := handlers.New(
		service.NewCatalogService[catalog.Customer, *catalog.Customer]("customer", repos.Customers, log),
		service.NewCatalogService[catalog.Product, *catalog.Product]("product", repos.Products, log),
		service.NewCatalogService[catalog.Salesperson, *catalog.Salesperson]("salesperson", repos.Salespeople, log),
		quotations,
		quote.PercentReject,
		log,
	)
	return NewRouter(cfg, h, log)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func path(format string, args ...any) string {
	return "/v1" + fmt.Sprintf(format, args...)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, config.Config{})
	rec := do(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[handlers.HealthResponse](t, rec)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, []string{"pdf", "doc", "xlsx"}, body.Formats)
}

func TestInternalTokenGuardsV1(t *testing.T) {
	r := newTestRouter(t, config.Config{InternalToken: "secret"})

	rec := do(t, r, http.MethodGet, "/v1/customers", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/customers", nil)
	req.Header.Set("X-Internal-Token", "secret")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/health", "").Code)
}

func TestCustomerCRUD(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	rec := do(t, r, http.MethodGet, "/v1/customers?search=29abcde", "")
	require.Equal(t, http.StatusOK, rec.Code)
	found := decodeBody[[]catalog.Customer](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, "ABC Company", found[0].Name)

	rec = do(t, r, http.MethodPost, "/v1/customers", `{"name":"  Lotus Homes ","mobile":"9000000001","gst":"36abcde0000a1z1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[catalog.Customer](t, rec)
	assert.Equal(t, int64(4), created.ID)
	assert.Equal(t, "Lotus Homes", created.Name)
	assert.Equal(t, "36ABCDE0000A1Z1", created.GST)

	rec = do(t, r, http.MethodPut, "/v1/customers/4", `{"name":"Lotus Homes Pvt Ltd","mobile":"9000000001"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Lotus Homes Pvt Ltd", decodeBody[catalog.Customer](t, rec).Name)

	rec = do(t, r, http.MethodGet, "/v1/customers/4", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/v1/customers/4", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/v1/customers/4", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/v1/customers/abc", "").Code)
}

func TestCatalogValidation(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	tests := []struct {
		name  string
		path  string
		body  string
		field string
	}{
		{"customer without name", "/v1/customers", `{"mobile":"1"}`, "name"},
		{"salesperson bad email", "/v1/salespeople", `{"name":"A","email":"nope"}`, "email"},
		{"product bad mrp", "/v1/products", `{"name":"Hub","mrp":"12x"}`, "mrp"},
		{"product negative mrp", "/v1/products", `{"name":"Hub","mrp":-5}`, "mrp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			apiErr := decodeBody[handlers.APIError](t, rec)
			assert.Equal(t, handlers.ErrorTypeValidation, apiErr.Type)
			assert.Contains(t, apiErr.Errors, tt.field)
		})
	}
}

func TestProductCreateAcceptsNumberOrString(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	rec := do(t, r, http.MethodPost, "/v1/products", `{"name":"Sensor","brand":"eGlu","mrp":"4500.50"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, decimal.RequireFromString("4500.5").Equal(decodeBody[catalog.Product](t, rec).MRP))

	rec = do(t, r, http.MethodPost, "/v1/products", `{"name":"Sensor 2","mrp":4500}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/v1/products?search=sensor", "")
	assert.Len(t, decodeBody[[]catalog.Product](t, rec), 2)
}

// The draft flow mirrors the service scenario: 2 x In-Wall Switch at 6800
// and a manual item at 50, 10% discount, 18% tax, 5000 installation.
func TestDraftToExportFlow(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	rec := do(t, r, http.MethodPost, "/v1/drafts", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	d := decodeBody[service.DraftView](t, rec)
	assert.Equal(t, "5000", d.Totals.GrandTotal.String())

	rec = do(t, r, http.MethodPut, path("/drafts/%d", d.ID), `{"customer_id":1,"salesperson_id":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, r, http.MethodPost, path("/drafts/%d/rooms", d.ID), `{"name":"Living","discount_percent":"10"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	d = decodeBody[service.DraftView](t, rec)
	roomID := d.Quotation.Rooms[0].ID

	rec = do(t, r, http.MethodPost, path("/drafts/%d/rooms/%d/items", d.ID, roomID), `{"product_id":2,"quantity":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(t, r, http.MethodPost, path("/drafts/%d/rooms/%d/items", d.ID, roomID), `{"name":"Wiring","unit_price":"50"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	d = decodeBody[service.DraftView](t, rec)
	assert.Equal(t, "19496.3", d.Totals.GrandTotal.String())

	itemID := d.Quotation.Rooms[0].Items[0].ID
	rec = do(t, r, http.MethodPut, path("/drafts/%d/rooms/%d/items/%d", d.ID, roomID, itemID), `{"quantity":"two"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	d = decodeBody[service.DraftView](t, rec)
	assert.Contains(t, d.FieldErrors, "quantity")
	assert.Equal(t, "19496.3", d.Totals.GrandTotal.String())

	rec = do(t, r, http.MethodPut, path("/drafts/%d/rooms/%d", d.ID, roomID), `{"tax_percent":"120"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody[service.DraftView](t, rec).FieldErrors, "tax_percent")

	rec = do(t, r, http.MethodPost, path("/drafts/%d/save", d.ID), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decodeBody[quote.Quotation](t, rec)
	assert.Regexp(t, `^Q-\d{4}-001$`, saved.Number)
	assert.Equal(t, quote.StatusPending, saved.Status)
	assert.Equal(t, "19496.3", saved.TotalAmount.String())

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, path("/drafts/%d", d.ID), "").Code)

	rec = do(t, r, http.MethodGet, "/v1/quotations?search=abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]quote.Quotation](t, rec), 1)

	rec = do(t, r, http.MethodGet, "/v1/quotations?status=approved", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]quote.Quotation](t, rec))

	rec = do(t, r, http.MethodPut, path("/quotations/%d/status", saved.ID), `{"status":"approved"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, quote.StatusApproved, decodeBody[quote.Quotation](t, rec).Status)

	rec = do(t, r, http.MethodPut, path("/quotations/%d/status", saved.ID), `{"status":"lost"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, tc := range []struct {
		format      string
		contentType string
		prefix      []byte
	}{
		{"pdf", "application/pdf", []byte("%PDF-")},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []byte("PK")},
		{"doc", "application/msword", []byte("<")},
	} {
		t.Run("export "+tc.format, func(t *testing.T) {
			rec := do(t, r, http.MethodGet, path("/quotations/%d/export?format=%s", saved.ID, tc.format), "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tc.contentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Header().Get("Content-Disposition"), saved.Number+"."+tc.format)
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), tc.prefix))
		})
	}

	rec = do(t, r, http.MethodGet, path("/quotations/%d/export?format=odt", saved.ID), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPost, path("/quotations/%d/edit", saved.ID), "")
	require.Equal(t, http.StatusCreated, rec.Code)
	reopened := decodeBody[service.DraftView](t, rec)
	assert.Equal(t, saved.Number, reopened.Quotation.Number)

	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, path("/quotations/%d", saved.ID), "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, path("/quotations/%d", saved.ID), "").Code)
}

func TestAddRoomWithoutBody(t *testing.T) {
	r := newTestRouter(t, config.Config{})
	d := decodeBody[service.DraftView](t, do(t, r, http.MethodPost, "/v1/drafts", ""))

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"chunked empty", "", http.StatusCreated},
		{"whitespace only", " \n", http.StatusCreated},
		{"malformed", "{", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, path("/drafts/%d/rooms", d.ID), nil)
			req.Body = io.NopCloser(strings.NewReader(tt.body))
			req.ContentLength = -1
			req.TransferEncoding = []string{"chunked"}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}

	d = decodeBody[service.DraftView](t, do(t, r, http.MethodGet, path("/drafts/%d", d.ID), ""))
	require.Len(t, d.Quotation.Rooms, 2)
	assert.Equal(t, "18", d.Quotation.Rooms[0].TaxPercent.String())
}

func TestExportNeedsCustomerAndSalesperson(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	d := decodeBody[service.DraftView](t, do(t, r, http.MethodPost, "/v1/drafts", ""))
	rec := do(t, r, http.MethodPost, path("/drafts/%d/save", d.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	saved := decodeBody[quote.Quotation](t, rec)

	rec = do(t, r, http.MethodGet, path("/quotations/%d/export", saved.ID), "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestExportIsRateLimited(t *testing.T) {
	r := newTestRouter(t, config.Config{ExportRate: 1})

	d := decodeBody[service.DraftView](t, do(t, r, http.MethodPost, "/v1/drafts", ""))
	saved := decodeBody[quote.Quotation](t, do(t, r, http.MethodPost, path("/drafts/%d/save", d.ID), ""))

	first := do(t, r, http.MethodGet, path("/quotations/%d/export", saved.ID), "")
	assert.Equal(t, http.StatusUnprocessableEntity, first.Code)
	second := do(t, r, http.MethodGet, path("/quotations/%d/export", saved.ID), "")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, path("/quotations/%d", saved.ID), "").Code)
}

func TestQuotationListRejectsUnknownFilters(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	rec := do(t, r, http.MethodGet, "/v1/quotations?status=lost&date=yesterday", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeBody[handlers.APIError](t, rec)
	assert.Contains(t, apiErr.Errors, "status")
	assert.Contains(t, apiErr.Errors, "date")
}

func TestPricingPreview(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	body := `{"installation_charge":"5000","rooms":[{"discount_percent":"10","tax_percent":"18",
		"items":[{"quantity":2,"unit_price":"6800"},{"quantity":"x","unit_price":"50"}]}]}`
	rec := do(t, r, http.MethodPost, "/v1/pricing/preview", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeBody[service.PreviewResult](t, rec)
	assert.Equal(t, "19496.3", res.Totals.GrandTotal.String())
	assert.Equal(t, "Rupees Nineteen Thousand Four Hundred Ninety-Six Only", res.AmountInWords)
	assert.Contains(t, res.FieldErrors, "rooms[0].items[1].quantity")
}

func TestPricingWords(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	rec := do(t, r, http.MethodGet, "/v1/pricing/words?amount=12345678", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeBody[handlers.WordsResponse](t, rec)
	assert.Equal(t, "Rupees One Crore Twenty-Three Lakh Forty-Five Thousand Six Hundred Seventy-Eight Only", res.Words)
	assert.Equal(t, "₹1,23,45,678.00", res.INR)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/v1/pricing/words?amount=lots", "").Code)

	for _, amount := range []string{"1e15", "1e200000", "9223372036854775808"} {
		rec := do(t, r, http.MethodGet, "/v1/pricing/words?amount="+amount, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, amount)
		assert.Contains(t, decodeBody[handlers.APIError](t, rec).Errors, "amount")
	}
}

func TestHugeUnitPriceIsReportedNotApplied(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	d := decodeBody[service.DraftView](t, do(t, r, http.MethodPost, "/v1/drafts", ""))
	d = decodeBody[service.DraftView](t, do(t, r, http.MethodPost, path("/drafts/%d/rooms", d.ID), ""))
	roomID := d.Quotation.Rooms[0].ID

	rec := do(t, r, http.MethodPost, path("/drafts/%d/rooms/%d/items", d.ID, roomID),
		`{"name":"Hub","unit_price":"1e200000","quantity":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	d = decodeBody[service.DraftView](t, rec)
	assert.Contains(t, d.FieldErrors, "unit_price")
	assert.True(t, d.Quotation.Rooms[0].Items[0].UnitPrice.IsZero())
	assert.Equal(t, "5000", d.Totals.GrandTotal.String())
}
