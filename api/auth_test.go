package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"loja/internal/catalog"
	"loja/internal/clients"
	"loja/internal/sales"
	"loja/internal/suppliers"
	"loja/internal/users"
)

const testSecret = "test_secret"

func newTestRouter(t *testing.T) *gin.Engine {
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
	InitRoutes(router, Dependencies{
		Products:  productStorage,
		Clients:   clientStorage,
		Suppliers: suppliers.NewLocalStorage(),
		Users:     userStorage,
		Sales:     sales.NewService(ledger, productStorage, clientStorage, logger),
		Secret:    testSecret,
		Logger:    logger,
	})
	return router
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"email": "admin@loja.dev", "password": "s3cret"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"email": "admin@loja.dev", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"email": "nobody@loja.dev", "password": "s3cret"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/produtos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/produtos", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutes_ValidToken(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"email": "admin@loja.dev", "password": "s3cret"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	req = httptest.NewRequest(http.MethodGet, "/produtos", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
