package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"loja/internal/catalog"
	"loja/internal/clients"
	"loja/internal/sales"
	"loja/internal/suppliers"
	"loja/internal/users"
)

// Dependencies carries everything the HTTP layer needs. Storages are
// interfaces so tests can plug in the in-memory implementations.
type Dependencies struct {
	Products  catalog.Storage
	Clients   clients.Storage
	Suppliers suppliers.Storage
	Users     users.Storage
	Sales     *sales.Service
	Secret    string
	Logger    *zap.Logger
}

// InitRoutes registers every endpoint on the given Gin engine. All business
// routes sit behind the bearer-token middleware; only /login and /ping are
// open.
func InitRoutes(e *gin.Engine, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	e.Use(requestLogger(logger))

	auth := newAuthHandler(deps.Users, deps.Secret, logger)
	salesHandler := NewSalesHandler(deps.Sales, logger)
	crud := newCRUDHandler(deps.Products, deps.Clients, deps.Suppliers, deps.Users, logger)

	e.POST("/login", auth.handleLogin)
	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	protected := e.Group("/", auth.middleware())

	protected.POST("/vendas", salesHandler.handleRecordSale)
	protected.GET("/vendas/produto/:produtoId", salesHandler.handleSalesByProduct)
	protected.GET("/vendas/produto/:produtoId/sumarizada", salesHandler.handleSummaryByProduct)
	protected.GET("/vendas/cliente/:clienteId", salesHandler.handleSalesByClient)
	protected.GET("/vendas/cliente/:clienteId/sumarizada", salesHandler.handleSummaryByClient)

	protected.GET("/produtos", crud.listProducts)
	protected.GET("/produtos/:id", crud.getProduct)
	protected.POST("/produtos", crud.createProduct)
	protected.PUT("/produtos/:id", crud.updateProduct)
	protected.DELETE("/produtos/:id", crud.deleteProduct)

	protected.GET("/clientes", crud.listClients)
	protected.GET("/clientes/:id", crud.getClient)
	protected.POST("/clientes", crud.createClient)
	protected.PUT("/clientes/:id", crud.updateClient)
	protected.DELETE("/clientes/:id", crud.deleteClient)

	protected.GET("/fornecedores", crud.listSuppliers)
	protected.GET("/fornecedores/:id", crud.getSupplier)
	protected.POST("/fornecedores", crud.createSupplier)
	protected.PUT("/fornecedores/:id", crud.updateSupplier)
	protected.DELETE("/fornecedores/:id", crud.deleteSupplier)

	protected.GET("/usuarios", crud.listUsers)
	protected.GET("/usuarios/:id", crud.getUser)
	protected.POST("/usuarios", crud.createUser)
	protected.PUT("/usuarios/:id", crud.updateUser)
	protected.DELETE("/usuarios/:id", crud.deleteUser)
}

// requestLogger tags each request with an ID and logs its outcome.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
