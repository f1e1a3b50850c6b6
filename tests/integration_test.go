package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"loja/api"
	"loja/internal/catalog"
	"loja/internal/clients"
	"loja/internal/sales"
	"loja/internal/suppliers"
	"loja/internal/users"
)

type env struct {
	router *gin.Engine
	token  string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)

	productStorage := catalog.NewLocalStorage()
	clientStorage := clients.NewLocalStorage()
	userStorage := users.NewLocalStorage()
	ledger := sales.NewLocalLedger()

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, userStorage.Create(context.Background(), &users.User{
		Name:     "Admin",
		Email:    "admin@loja.dev",
		Password: string(hashed),
	}))

	router := gin.New()
	api.InitRoutes(router, api.Dependencies{
		Products:  productStorage,
		Clients:   clientStorage,
		Suppliers: suppliers.NewLocalStorage(),
		Users:     userStorage,
		Sales:     sales.NewService(ledger, productStorage, clientStorage, logger),
		Secret:    "integration_secret",
		Logger:    logger,
	})

	e := &env{router: router}
	e.token = e.login(t)
	return e
}

func (e *env) login(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/login", map[string]string{
		"email":    "admin@loja.dev",
		"password": "s3cret",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login should succeed")
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *env) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(raw)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// TestSalesFlow drives the full happy path: create catalog and client data,
// record sales, then read every sales query back.
func TestSalesFlow(t *testing.T) {
	e := newEnv(t)

	var widgetID, gadgetID, acmeID int64

	t.Run("POST_CreateProducts", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/produtos", map[string]any{
			"name": "Widget", "price": "10.00", "supplier": "ACME Dist",
		}, e.token)
		require.Equal(t, http.StatusCreated, w.Code)
		var p catalog.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		require.NotZero(t, p.ID)
		widgetID = p.ID

		w = e.do(t, http.MethodPost, "/produtos", map[string]any{
			"name": "Gadget", "price": "4.00", "supplier": "ACME Dist",
		}, e.token)
		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		gadgetID = p.ID
	})

	t.Run("POST_CreateClient", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/clientes", map[string]any{
			"name": "Acme", "email": "acme@example.com",
		}, e.token)
		require.Equal(t, http.StatusCreated, w.Code)
		var c clients.Client
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
		require.NotZero(t, c.ID)
		acmeID = c.ID
	})

	t.Run("POST_RecordSales", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/vendas", map[string]any{
			"product_id": widgetID, "client_id": acmeID, "quantity": 2, "unit_price": "10.00",
		}, e.token)
		require.Equal(t, http.StatusCreated, w.Code)
		var sale sales.Sale
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
		assert.NotZero(t, sale.ID)
		assert.Equal(t, widgetID, sale.ProductID)
		assert.Equal(t, acmeID, sale.ClientID)
		assert.Equal(t, int64(2), sale.Quantity)
		assert.True(t, sale.UnitPrice.Equal(decimal.RequireFromString("10.00")))
		assert.False(t, sale.SoldAt.IsZero(), "sale timestamp must be stamped server-side")

		w = e.do(t, http.MethodPost, "/vendas", map[string]any{
			"product_id": widgetID, "client_id": acmeID, "quantity": 3, "unit_price": "12.00",
		}, e.token)
		require.Equal(t, http.StatusCreated, w.Code)

		w = e.do(t, http.MethodPost, "/vendas", map[string]any{
			"product_id": gadgetID, "client_id": acmeID, "quantity": 1, "unit_price": "4.00",
		}, e.token)
		require.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("GET_SalesByProduct", func(t *testing.T) {
		w := e.do(t, http.MethodGet, fmt.Sprintf("/vendas/produto/%d", widgetID), nil, e.token)
		require.Equal(t, http.StatusOK, w.Code)
		var rows []sales.DetailedSaleByProduct
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "Widget", rows[0].ProductName)
		assert.Equal(t, "Acme", rows[0].ClientName)
	})

	t.Run("GET_SummaryByProduct", func(t *testing.T) {
		w := e.do(t, http.MethodGet, fmt.Sprintf("/vendas/produto/%d/sumarizada", widgetID), nil, e.token)
		require.Equal(t, http.StatusOK, w.Code)
		var summaries []sales.SummarizedSaleByProduct
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
		require.Len(t, summaries, 1)
		assert.Equal(t, "Widget", summaries[0].ProductName)
		assert.Equal(t, int64(5), summaries[0].TotalQuantity)
		assert.True(t, summaries[0].TotalAmount.Equal(decimal.RequireFromString("56.00")),
			"got total %s", summaries[0].TotalAmount)
	})

	t.Run("GET_SalesByClient", func(t *testing.T) {
		w := e.do(t, http.MethodGet, fmt.Sprintf("/vendas/cliente/%d", acmeID), nil, e.token)
		require.Equal(t, http.StatusOK, w.Code)
		var rows []sales.DetailedSaleByClient
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
		require.Len(t, rows, 3)
		assert.Equal(t, "Widget", rows[0].ProductName)
	})

	t.Run("GET_SummaryByClient", func(t *testing.T) {
		w := e.do(t, http.MethodGet, fmt.Sprintf("/vendas/cliente/%d/sumarizada", acmeID), nil, e.token)
		require.Equal(t, http.StatusOK, w.Code)
		var summaries []sales.SummarizedSaleByClient
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
		require.Len(t, summaries, 2, "one row per distinct product")
		assert.Equal(t, "Widget", summaries[0].ProductName)
		assert.Equal(t, int64(5), summaries[0].TotalQuantity)
		assert.Equal(t, "Gadget", summaries[1].ProductName)
		assert.Equal(t, int64(1), summaries[1].TotalQuantity)
	})
}

func TestRecordSale_UnknownReferences(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/produtos", map[string]any{
		"name": "Widget", "price": "9.99", "supplier": "ACME Dist",
	}, e.token)
	require.Equal(t, http.StatusCreated, w.Code)
	var p catalog.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))

	w = e.do(t, http.MethodPost, "/clientes", map[string]any{
		"name": "Acme", "email": "acme@example.com",
	}, e.token)
	require.Equal(t, http.StatusCreated, w.Code)
	var c clients.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))

	t.Run("UnknownProduct", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/vendas", map[string]any{
			"product_id": 99, "client_id": c.ID, "quantity": 1, "unit_price": "5",
		}, e.token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "product not found")
	})

	t.Run("UnknownClient", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/vendas", map[string]any{
			"product_id": p.ID, "client_id": 99, "quantity": 1, "unit_price": "5",
		}, e.token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "client not found")
	})

	t.Run("LedgerUnchanged", func(t *testing.T) {
		w := e.do(t, http.MethodGet, fmt.Sprintf("/vendas/produto/%d", p.ID), nil, e.token)
		require.Equal(t, http.StatusOK, w.Code)
		var rows []sales.DetailedSaleByProduct
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
		assert.Empty(t, rows)
	})
}

func TestRecordSale_DiscardsCallerTimestamp(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/produtos", map[string]any{
		"name": "Widget", "price": "9.99", "supplier": "ACME Dist",
	}, e.token)
	require.Equal(t, http.StatusCreated, w.Code)
	var p catalog.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))

	w = e.do(t, http.MethodPost, "/clientes", map[string]any{
		"name": "Acme", "email": "acme@example.com",
	}, e.token)
	require.Equal(t, http.StatusCreated, w.Code)
	var c clients.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))

	// A backdated sold_at in the request body must be ignored: the sale is
	// stamped with the server clock at commit time.
	backdated := time.Now().AddDate(-1, 0, 0)
	before := time.Now()
	w = e.do(t, http.MethodPost, "/vendas", map[string]any{
		"product_id": p.ID,
		"client_id":  c.ID,
		"quantity":   1,
		"unit_price": "9.99",
		"sold_at":    backdated.Format(time.RFC3339),
	}, e.token)
	require.Equal(t, http.StatusCreated, w.Code)

	var sale sales.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
	assert.False(t, sale.SoldAt.Before(before), "sold_at must be the server's commit time, got %s", sale.SoldAt)
	assert.False(t, sale.SoldAt.After(time.Now()))
}

func TestSalesEndpoints_RequireAuth(t *testing.T) {
	e := newEnv(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/vendas"},
		{http.MethodGet, "/vendas/produto/1"},
		{http.MethodGet, "/vendas/produto/1/sumarizada"},
		{http.MethodGet, "/vendas/cliente/1"},
		{http.MethodGet, "/vendas/cliente/1/sumarizada"},
	}
	for _, p := range paths {
		w := e.do(t, p.method, p.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s should require a token", p.method, p.path)
	}
}
