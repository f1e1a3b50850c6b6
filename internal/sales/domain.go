package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents a committed sales transaction. Sales are immutable once
// recorded: there is no update or delete path.
type Sale struct {
	ID        int64           `db:"id" json:"id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	ClientID  int64           `db:"client_id" json:"client_id"`
	Quantity  int64           `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	SoldAt    time.Time       `db:"sold_at" json:"sold_at"`
}

// SaleInput is a candidate sale as supplied by the caller. The unit price is
// always caller-supplied and is not defaulted from the catalog; any timestamp
// in the request is discarded in favor of the server clock.
type SaleInput struct {
	ProductID int64           `json:"product_id"`
	ClientID  int64           `json:"client_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// DetailedSaleByProduct is one row of the detailed-by-product query.
type DetailedSaleByProduct struct {
	ProductName string          `json:"product_name"`
	SoldAt      time.Time       `json:"sold_at"`
	SaleID      int64           `json:"sale_id"`
	ClientName  string          `json:"client_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// DetailedSaleByClient is one row of the detailed-by-client query.
type DetailedSaleByClient struct {
	ProductName string          `json:"product_name"`
	SoldAt      time.Time       `json:"sold_at"`
	SaleID      int64           `json:"sale_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// SummarizedSaleByProduct totals every sale of one product.
type SummarizedSaleByProduct struct {
	ProductName   string          `json:"product_name"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// SummarizedSaleByClient totals one client's sales of one distinct product.
type SummarizedSaleByClient struct {
	ProductName   string          `json:"product_name"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}
