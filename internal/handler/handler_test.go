package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01infinito/facturacion-api/internal/domain"
	"github.com/01infinito/facturacion-api/internal/pdf"
	"github.com/01infinito/facturacion-api/internal/repository"
	"github.com/01infinito/facturacion-api/internal/service"
)

// ---- in-memory fakes ----

type fakeCustomerRepo struct {
	customers map[string]domain.Customer
	nextID    int
	inUse     map[string]bool // customer ids referenced by invoices
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]domain.Customer{}, inUse: map[string]bool{}}
}

func (r *fakeCustomerRepo) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	out := []domain.Customer{}
	for _, c := range r.customers {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepo) CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	r.nextID++
	c.ID = "cust-" + strconv.Itoa(r.nextID)
	r.customers[c.ID] = *c
	return c, nil
}

func (r *fakeCustomerRepo) UpdateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if _, ok := r.customers[c.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.customers[c.ID] = *c
	return c, nil
}

func (r *fakeCustomerRepo) DeleteCustomer(ctx context.Context, id string) error {
	if _, ok := r.customers[id]; !ok {
		return repository.ErrNotFound
	}
	if r.inUse[id] {
		return repository.ErrConflict
	}
	delete(r.customers, id)
	return nil
}

type fakeServiceRepo struct {
	services map[string]domain.Service
	nextID   int
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: map[string]domain.Service{}}
}

func (r *fakeServiceRepo) ListServices(ctx context.Context) ([]domain.Service, error) {
	out := []domain.Service{}
	for _, s := range r.services {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeServiceRepo) GetServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *fakeServiceRepo) CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	for _, existing := range r.services {
		if existing.Description == s.Description {
			return nil, repository.ErrConflict
		}
	}
	r.nextID++
	s.ID = "svc-" + strconv.Itoa(r.nextID)
	r.services[s.ID] = *s
	return s, nil
}

func (r *fakeServiceRepo) UpdateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	if _, ok := r.services[s.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	for id, existing := range r.services {
		if id != s.ID && existing.Description == s.Description {
			return nil, repository.ErrConflict
		}
	}
	r.services[s.ID] = *s
	return s, nil
}

func (r *fakeServiceRepo) DeleteService(ctx context.Context, id string) error {
	if _, ok := r.services[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *fakeServiceRepo) FindServiceByDescription(ctx context.Context, description string) (*domain.Service, error) {
	for _, s := range r.services {
		if s.Description == description {
			match := s
			return &match, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeInvoiceRepo struct {
	invoices map[string]domain.Invoice
	nextID   int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[string]domain.Invoice{}}
}

func (r *fakeInvoiceRepo) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	out := []domain.Invoice{}
	for _, inv := range r.invoices {
		inv.Items = nil
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) GetInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &inv, nil
}

func (r *fakeInvoiceRepo) CreateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	r.nextID++
	inv.ID = "inv-" + strconv.Itoa(r.nextID)
	r.invoices[inv.ID] = *inv
	return inv, nil
}

func (r *fakeInvoiceRepo) UpdateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if _, ok := r.invoices[inv.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.invoices[inv.ID] = *inv
	return inv, nil
}

func (r *fakeInvoiceRepo) DeleteInvoice(ctx context.Context, id string) error {
	if _, ok := r.invoices[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) CountInvoices(ctx context.Context) (int, error) {
	return len(r.invoices), nil
}

// stubRenderer avoids generating a real PDF in handler tests
type stubRenderer struct{}

func (stubRenderer) Render(doc pdf.Document) ([]byte, error) {
	return []byte("%PDF-stub " + doc.FileName), nil
}

// ---- fixtures ----

type env struct {
	router    *gin.Engine
	customers *fakeCustomerRepo
	services  *fakeServiceRepo
	invoices  *fakeInvoiceRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := &env{
		router:    gin.New(),
		customers: newFakeCustomerRepo(),
		services:  newFakeServiceRepo(),
		invoices:  newFakeInvoiceRepo(),
	}
	NewCustomerHandler(e.customers).RegisterRoutes(e.router)
	NewServiceHandler(e.services).RegisterRoutes(e.router)
	invoiceService := service.NewInvoiceService(e.invoices, e.customers, stubRenderer{})
	NewInvoiceHandler(invoiceService).RegisterRoutes(e.router)
	return e
}

func (e *env) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestCustomerCRUD(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/v1/customers", map[string]any{
		"name":    "ACME Corp",
		"address": "742 Evergreen Terrace, Springfield",
		"taxId":   "99-1234567",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "ACME Corp", created.Name)

	w = e.do(t, http.MethodPut, "/v1/customers/"+created.ID, map[string]any{
		"name": "ACME Corporation",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/v1/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []domain.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "ACME Corporation", list[0].Name)

	w = e.do(t, http.MethodDelete, "/v1/customers/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCustomerDeleteConflict(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/v1/customers", map[string]any{"name": "Busy"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	e.customers.inUse[created.ID] = true
	w = e.do(t, http.MethodDelete, "/v1/customers/"+created.ID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCustomerValidation(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPost, "/v1/customers", map[string]any{"address": "no name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServiceUniqueDescription(t *testing.T) {
	e := newEnv(t)

	payload := map[string]any{"description": "Hosting", "price": 25, "category": "service"}
	w := e.do(t, http.MethodPost, "/v1/services", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPost, "/v1/services", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestServiceCategoryValidation(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPost, "/v1/services", map[string]any{
		"description": "Weird", "category": "subscription",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServiceLookup(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/v1/services", map[string]any{
		"description": "Consulting", "price": 120.5, "category": "service",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodGet, "/v1/services/lookup?description=Consulting", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var svc domain.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &svc))
	assert.Equal(t, 120.5, svc.Price.Float())

	w = e.do(t, http.MethodGet, "/v1/services/lookup?description=Unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvoiceSaveRecomputesTotals(t *testing.T) {
	e := newEnv(t)

	// string-encoded numbers and a display-form date, as a form would send
	w := e.do(t, http.MethodPost, "/v1/invoices", map[string]any{
		"invoiceNumber": "FACT-001",
		"date":          "31/12/2024",
		"taxRate":       "21",
		"items": []map[string]any{
			{"description": "Consulting", "quantity": 2, "price": "10"},
			{"description": "Hosting", "quantity": 1, "price": 5},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created domain.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 25.0, created.Subtotal)
	assert.Equal(t, 5.25, created.Tax)
	assert.Equal(t, 30.25, created.Total)
	assert.Equal(t, "2024-12-31", created.Date)
	assert.Equal(t, domain.StatusSaved, created.Status)
}

func TestInvoiceNextNumber(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/v1/invoices/next-number", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"invoiceNumber":"FACT-001"}`, w.Body.String())

	e.do(t, http.MethodPost, "/v1/invoices", map[string]any{"invoiceNumber": "FACT-001"})

	w = e.do(t, http.MethodGet, "/v1/invoices/next-number", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"invoiceNumber":"FACT-002"}`, w.Body.String())
}

func TestInvoiceDraft(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/v1/invoices/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var draft domain.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))
	assert.Equal(t, domain.StatusDraft, draft.Status)
	assert.Equal(t, "FACT-001", draft.InvoiceNumber)
	assert.NotEmpty(t, draft.ID)
	assert.Nil(t, draft.CustomerID) // no customers exist yet

	// the editor opens with one billable line and the standard terms
	require.Len(t, draft.Items, 1)
	assert.Equal(t, 1.0, draft.Items[0].Quantity.Float())
	assert.Equal(t, 0.0, draft.Items[0].Price.Float())
	assert.Equal(t, 21.0, draft.TaxRate.Float())

	// due date is 30 days after the invoice date
	date, err := time.Parse("2006-01-02", draft.Date)
	require.NoError(t, err)
	assert.Equal(t, date.AddDate(0, 0, 30).Format("2006-01-02"), draft.DueDate)

	assert.Contains(t, draft.Notes, "Account details")
	assert.Contains(t, draft.Notes, "01 INFINITO LLC")
}

func TestInvoiceDraftPreselectsFirstCustomer(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/v1/customers", map[string]any{"name": "First Co"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = e.do(t, http.MethodGet, "/v1/invoices/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var draft domain.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))
	require.NotNil(t, draft.CustomerID)
	assert.Equal(t, created.ID, *draft.CustomerID)
}

func TestInvoicePDFExport(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/v1/invoices", map[string]any{
		"invoiceNumber": "FACT-042",
		"items":         []map[string]any{{"description": "X", "quantity": 1, "price": 10}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = e.do(t, http.MethodGet, fmt.Sprintf("/v1/invoices/%s/pdf", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Factura-FACT-042.pdf")
}

func TestInvoiceNotFound(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodGet, "/v1/invoices/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(t, http.MethodDelete, "/v1/invoices/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvoiceDelete(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/v1/invoices", map[string]any{"invoiceNumber": "FACT-001"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = e.do(t, http.MethodDelete, "/v1/invoices/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = e.do(t, http.MethodGet, "/v1/invoices/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
