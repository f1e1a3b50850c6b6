package catalog

import "github.com/shopspring/decimal"

// Product represents an item in the store catalog.
type Product struct {
	ID       int64           `db:"id" json:"id"`
	Name     string          `db:"name" json:"name"`
	Price    decimal.Decimal `db:"price" json:"price"`
	Supplier string          `db:"supplier" json:"supplier"`
}
