package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"loja/internal/sales"
)

// salesHandler holds the sales service and implements HTTP handlers for
// recording sales and answering the sales queries.
type salesHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(salesService *sales.Service, logger *zap.Logger) *salesHandler {
	return &salesHandler{
		salesService: salesService,
		logger:       logger,
	}
}

// handleRecordSale handles the POST /vendas endpoint.
func (h *salesHandler) handleRecordSale(ctx *gin.Context) {
	var input sales.SaleInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("failed to bind sale payload", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	sale, err := h.salesService.RecordSale(ctx.Request.Context(), input)
	if err != nil {
		if errors.Is(err, sales.ErrClientNotFound) || errors.Is(err, sales.ErrProductNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to record sale",
			zap.Int64("product_id", input.ProductID),
			zap.Int64("client_id", input.ClientID),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record sale"})
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// handleSalesByProduct handles GET /vendas/produto/:produtoId.
func (h *salesHandler) handleSalesByProduct(ctx *gin.Context) {
	productID, ok := pathID(ctx, "produtoId")
	if !ok {
		return
	}
	rows, err := h.salesService.SalesByProduct(ctx.Request.Context(), productID)
	if err != nil {
		h.logger.Error("failed to query sales by product", zap.Int64("product_id", productID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query sales"})
		return
	}
	ctx.JSON(http.StatusOK, rows)
}

// handleSummaryByProduct handles GET /vendas/produto/:produtoId/sumarizada.
func (h *salesHandler) handleSummaryByProduct(ctx *gin.Context) {
	productID, ok := pathID(ctx, "produtoId")
	if !ok {
		return
	}
	summaries, err := h.salesService.SummaryByProduct(ctx.Request.Context(), productID)
	if err != nil {
		h.logger.Error("failed to summarize sales by product", zap.Int64("product_id", productID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query sales"})
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}

// handleSalesByClient handles GET /vendas/cliente/:clienteId.
func (h *salesHandler) handleSalesByClient(ctx *gin.Context) {
	clientID, ok := pathID(ctx, "clienteId")
	if !ok {
		return
	}
	rows, err := h.salesService.SalesByClient(ctx.Request.Context(), clientID)
	if err != nil {
		h.logger.Error("failed to query sales by client", zap.Int64("client_id", clientID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query sales"})
		return
	}
	ctx.JSON(http.StatusOK, rows)
}

// handleSummaryByClient handles GET /vendas/cliente/:clienteId/sumarizada.
func (h *salesHandler) handleSummaryByClient(ctx *gin.Context) {
	clientID, ok := pathID(ctx, "clienteId")
	if !ok {
		return
	}
	summaries, err := h.salesService.SummaryByClient(ctx.Request.Context(), clientID)
	if err != nil {
		h.logger.Error("failed to summarize sales by client", zap.Int64("client_id", clientID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query sales"})
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}

// pathID parses an integer path parameter, answering 400 itself on failure.
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
