package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loja/internal/catalog"
	"loja/internal/clients"
)

// ErrProductNotFound is returned when a sale references a product ID that
// does not resolve in the catalog.
var ErrProductNotFound = errors.New("product not found")

// ErrClientNotFound is returned when a sale references a client ID that does
// not resolve in the client store.
var ErrClientNotFound = errors.New("client not found")

// ProductLookup resolves products by ID. The catalog storage satisfies it.
type ProductLookup interface {
	GetByID(ctx context.Context, id int64) (*catalog.Product, error)
}

// ClientLookup resolves clients by ID. The client storage satisfies it.
type ClientLookup interface {
	GetByID(ctx context.Context, id int64) (*clients.Client, error)
}

// Service records sales against the ledger and answers the detailed and
// summarized sales queries. Referential integrity against the catalog and
// client stores is checked at record time only; deleting a referenced product
// or client after a sale exists is out of scope here.
type Service struct {
	ledger   Ledger
	products ProductLookup
	clients  ClientLookup
	logger   *zap.Logger
}

// NewService creates a new Service.
func NewService(ledger Ledger, products ProductLookup, clientLookup ClientLookup, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ledger:   ledger,
		products: products,
		clients:  clientLookup,
		logger:   logger,
	}
}

// RecordSale validates and commits a candidate sale. Both references must
// resolve before the single ledger append happens, so a failed call leaves no
// partial state. The sale timestamp is always the server's commit time;
// caller-supplied timestamps are discarded to prevent backdating. The call is
// not idempotent: identical inputs produce distinct sales.
func (s *Service) RecordSale(ctx context.Context, input SaleInput) (*Sale, error) {
	if _, err := s.clients.GetByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrClientNotFound, input.ClientID)
		}
		s.logger.Error("client lookup failed", zap.Int64("client_id", input.ClientID), zap.Error(err))
		return nil, fmt.Errorf("looking up client: %w", err)
	}

	if _, err := s.products.GetByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, input.ProductID)
		}
		s.logger.Error("product lookup failed", zap.Int64("product_id", input.ProductID), zap.Error(err))
		return nil, fmt.Errorf("looking up product: %w", err)
	}

	sale := &Sale{
		ProductID: input.ProductID,
		ClientID:  input.ClientID,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
		SoldAt:    time.Now(),
	}

	if err := s.ledger.Append(ctx, sale); err != nil {
		s.logger.Error("failed to append sale", zap.Int64("product_id", sale.ProductID), zap.Error(err))
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	s.logger.Info("sale recorded",
		zap.Int64("sale_id", sale.ID),
		zap.Int64("product_id", sale.ProductID),
		zap.Int64("client_id", sale.ClientID),
		zap.Int64("quantity", sale.Quantity),
	)
	return sale, nil
}

// SalesByProduct returns one detailed row per sale of the given product.
func (s *Service) SalesByProduct(ctx context.Context, productID int64) ([]DetailedSaleByProduct, error) {
	matched, err := s.ledger.ByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("querying sales by product: %w", err)
	}

	productName, err := s.productName(ctx, productID)
	if err != nil {
		return nil, err
	}
	clientNames := map[int64]string{}

	out := make([]DetailedSaleByProduct, 0, len(matched))
	for _, sale := range matched {
		name, ok := clientNames[sale.ClientID]
		if !ok {
			name, err = s.clientName(ctx, sale.ClientID)
			if err != nil {
				return nil, err
			}
			clientNames[sale.ClientID] = name
		}
		out = append(out, DetailedSaleByProduct{
			ProductName: productName,
			SoldAt:      sale.SoldAt,
			SaleID:      sale.ID,
			ClientName:  name,
			Quantity:    sale.Quantity,
			UnitPrice:   sale.UnitPrice,
		})
	}
	return out, nil
}

// SalesByClient returns one detailed row per sale made to the given client.
func (s *Service) SalesByClient(ctx context.Context, clientID int64) ([]DetailedSaleByClient, error) {
	matched, err := s.ledger.ByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("querying sales by client: %w", err)
	}

	productNames := map[int64]string{}

	out := make([]DetailedSaleByClient, 0, len(matched))
	for _, sale := range matched {
		name, ok := productNames[sale.ProductID]
		if !ok {
			name, err = s.productName(ctx, sale.ProductID)
			if err != nil {
				return nil, err
			}
			productNames[sale.ProductID] = name
		}
		out = append(out, DetailedSaleByClient{
			ProductName: name,
			SoldAt:      sale.SoldAt,
			SaleID:      sale.ID,
			Quantity:    sale.Quantity,
			UnitPrice:   sale.UnitPrice,
		})
	}
	return out, nil
}

// SummaryByProduct totals every sale of the given product. The amount is the
// sum of quantity times each sale's own unit price, so it stays correct when
// the price varied across sales. A product with no sales yields an empty
// slice, never a zero-valued row.
func (s *Service) SummaryByProduct(ctx context.Context, productID int64) ([]SummarizedSaleByProduct, error) {
	matched, err := s.ledger.ByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("querying sales by product: %w", err)
	}
	if len(matched) == 0 {
		return []SummarizedSaleByProduct{}, nil
	}

	productName, err := s.productName(ctx, productID)
	if err != nil {
		return nil, err
	}
	summary := SummarizedSaleByProduct{ProductName: productName}
	for _, sale := range matched {
		summary.TotalQuantity += sale.Quantity
		summary.TotalAmount = summary.TotalAmount.Add(sale.UnitPrice.Mul(decimal.NewFromInt(sale.Quantity)))
	}
	return []SummarizedSaleByProduct{summary}, nil
}

// SummaryByClient groups the given client's sales by distinct product and
// totals each group. Groups appear in first-purchase order. A client with no
// sales yields an empty slice.
func (s *Service) SummaryByClient(ctx context.Context, clientID int64) ([]SummarizedSaleByClient, error) {
	matched, err := s.ledger.ByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("querying sales by client: %w", err)
	}

	order := []int64{}
	groups := map[int64]*SummarizedSaleByClient{}
	for _, sale := range matched {
		group, ok := groups[sale.ProductID]
		if !ok {
			name, err := s.productName(ctx, sale.ProductID)
			if err != nil {
				return nil, err
			}
			group = &SummarizedSaleByClient{ProductName: name}
			groups[sale.ProductID] = group
			order = append(order, sale.ProductID)
		}
		group.TotalQuantity += sale.Quantity
		group.TotalAmount = group.TotalAmount.Add(sale.UnitPrice.Mul(decimal.NewFromInt(sale.Quantity)))
	}

	out := make([]SummarizedSaleByClient, 0, len(order))
	for _, productID := range order {
		out = append(out, *groups[productID])
	}
	return out, nil
}

// productName resolves a product name for reporting. A product deleted after
// its sales were recorded shows up with a blank name rather than failing the
// whole query; any other lookup failure propagates.
func (s *Service) productName(ctx context.Context, productID int64) (string, error) {
	product, err := s.products.GetByID(ctx, productID)
	if errors.Is(err, catalog.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("looking up product %d: %w", productID, err)
	}
	return product.Name, nil
}

func (s *Service) clientName(ctx context.Context, clientID int64) (string, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if errors.Is(err, clients.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("looking up client %d: %w", clientID, err)
	}
	return client.Name, nil
}
