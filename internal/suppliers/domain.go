package suppliers

// Supplier represents a company the store buys from.
type Supplier struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	CNPJ  string `db:"cnpj" json:"cnpj"`
	Email string `db:"email" json:"email"`
}
