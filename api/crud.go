package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"loja/internal/catalog"
	"loja/internal/clients"
	"loja/internal/suppliers"
	"loja/internal/users"
)

// crudHandler implements the plain per-entity CRUD endpoints. These are
// field-by-field persistence wrappers with no derived state.
type crudHandler struct {
	products  catalog.Storage
	clients   clients.Storage
	suppliers suppliers.Storage
	users     users.Storage
	logger    *zap.Logger
}

func newCRUDHandler(products catalog.Storage, clientStorage clients.Storage, supplierStorage suppliers.Storage, userStorage users.Storage, logger *zap.Logger) *crudHandler {
	return &crudHandler{
		products:  products,
		clients:   clientStorage,
		suppliers: supplierStorage,
		users:     userStorage,
		logger:    logger,
	}
}

func (h *crudHandler) storageError(ctx *gin.Context, err error, notFound error, entity string) {
	if errors.Is(err, notFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}
	h.logger.Error("storage operation failed", zap.String("entity", entity), zap.Error(err))
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// Products

func (h *crudHandler) listProducts(ctx *gin.Context) {
	products, err := h.products.GetAll(ctx.Request.Context())
	if err != nil {
		h.storageError(ctx, err, catalog.ErrNotFound, "product")
		return
	}
	ctx.JSON(http.StatusOK, products)
}

func (h *crudHandler) getProduct(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	product, err := h.products.GetByID(ctx.Request.Context(), id)
	if err != nil {
		h.storageError(ctx, err, catalog.ErrNotFound, "product")
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (h *crudHandler) createProduct(ctx *gin.Context) {
	var product catalog.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if err := h.products.Create(ctx.Request.Context(), &product); err != nil {
		h.storageError(ctx, err, catalog.ErrNotFound, "product")
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

func (h *crudHandler) updateProduct(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var product catalog.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if product.ID != id {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "product ID mismatch"})
		return
	}
	if err := h.products.Update(ctx.Request.Context(), &product); err != nil {
		h.storageError(ctx, err, catalog.ErrNotFound, "product")
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (h *crudHandler) deleteProduct(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(ctx.Request.Context(), id); err != nil {
		h.storageError(ctx, err, catalog.ErrNotFound, "product")
		return
	}
	ctx.Status(http.StatusOK)
}

// Clients

func (h *crudHandler) listClients(ctx *gin.Context) {
	all, err := h.clients.GetAll(ctx.Request.Context())
	if err != nil {
		h.storageError(ctx, err, clients.ErrNotFound, "client")
		return
	}
	ctx.JSON(http.StatusOK, all)
}

func (h *crudHandler) getClient(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	client, err := h.clients.GetByID(ctx.Request.Context(), id)
	if err != nil {
		h.storageError(ctx, err, clients.ErrNotFound, "client")
		return
	}
	ctx.JSON(http.StatusOK, client)
}

func (h *crudHandler) createClient(ctx *gin.Context) {
	var client clients.Client
	if err := ctx.ShouldBindJSON(&client); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if err := h.clients.Create(ctx.Request.Context(), &client); err != nil {
		h.storageError(ctx, err, clients.ErrNotFound, "client")
		return
	}
	ctx.JSON(http.StatusCreated, client)
}

func (h *crudHandler) updateClient(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var client clients.Client
	if err := ctx.ShouldBindJSON(&client); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if client.ID != id {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "client ID mismatch"})
		return
	}
	if err := h.clients.Update(ctx.Request.Context(), &client); err != nil {
		h.storageError(ctx, err, clients.ErrNotFound, "client")
		return
	}
	ctx.JSON(http.StatusOK, client)
}

func (h *crudHandler) deleteClient(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := h.clients.Delete(ctx.Request.Context(), id); err != nil {
		h.storageError(ctx, err, clients.ErrNotFound, "client")
		return
	}
	ctx.Status(http.StatusOK)
}

// Suppliers

func (h *crudHandler) listSuppliers(ctx *gin.Context) {
	all, err := h.suppliers.GetAll(ctx.Request.Context())
	if err != nil {
		h.storageError(ctx, err, suppliers.ErrNotFound, "supplier")
		return
	}
	ctx.JSON(http.StatusOK, all)
}

func (h *crudHandler) getSupplier(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	supplier, err := h.suppliers.GetByID(ctx.Request.Context(), id)
	if err != nil {
		h.storageError(ctx, err, suppliers.ErrNotFound, "supplier")
		return
	}
	ctx.JSON(http.StatusOK, supplier)
}

func (h *crudHandler) createSupplier(ctx *gin.Context) {
	var supplier suppliers.Supplier
	if err := ctx.ShouldBindJSON(&supplier); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if err := h.suppliers.Create(ctx.Request.Context(), &supplier); err != nil {
		h.storageError(ctx, err, suppliers.ErrNotFound, "supplier")
		return
	}
	ctx.JSON(http.StatusCreated, supplier)
}

func (h *crudHandler) updateSupplier(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var supplier suppliers.Supplier
	if err := ctx.ShouldBindJSON(&supplier); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if supplier.ID != id {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "supplier ID mismatch"})
		return
	}
	if err := h.suppliers.Update(ctx.Request.Context(), &supplier); err != nil {
		h.storageError(ctx, err, suppliers.ErrNotFound, "supplier")
		return
	}
	ctx.JSON(http.StatusOK, supplier)
}

func (h *crudHandler) deleteSupplier(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := h.suppliers.Delete(ctx.Request.Context(), id); err != nil {
		h.storageError(ctx, err, suppliers.ErrNotFound, "supplier")
		return
	}
	ctx.Status(http.StatusOK)
}

// Users

type userRequest struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *crudHandler) listUsers(ctx *gin.Context) {
	all, err := h.users.GetAll(ctx.Request.Context())
	if err != nil {
		h.storageError(ctx, err, users.ErrNotFound, "user")
		return
	}
	ctx.JSON(http.StatusOK, all)
}

func (h *crudHandler) getUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	user, err := h.users.GetByID(ctx.Request.Context(), id)
	if err != nil {
		h.storageError(ctx, err, users.ErrNotFound, "user")
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func (h *crudHandler) createUser(ctx *gin.Context) {
	var req userRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "unable to secure password"})
		return
	}
	user := users.User{Name: req.Name, Email: req.Email, Password: string(hashed)}
	if err := h.users.Create(ctx.Request.Context(), &user); err != nil {
		h.storageError(ctx, err, users.ErrNotFound, "user")
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

func (h *crudHandler) updateUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req userRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if req.ID != id {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "user ID mismatch"})
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "unable to secure password"})
		return
	}
	user := users.User{ID: req.ID, Name: req.Name, Email: req.Email, Password: string(hashed)}
	if err := h.users.Update(ctx.Request.Context(), &user); err != nil {
		h.storageError(ctx, err, users.ErrNotFound, "user")
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func (h *crudHandler) deleteUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := h.users.Delete(ctx.Request.Context(), id); err != nil {
		h.storageError(ctx, err, users.ErrNotFound, "user")
		return
	}
	ctx.Status(http.StatusOK)
}
