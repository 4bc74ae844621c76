package domain

// SizeStock tracks remaining units for a single size of a product.
type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// Product represents a product in the storefront catalog. Prices are whole
// Chilean pesos, no minor units.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Price       int64       `json:"price"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Sizes       []SizeStock `json:"sizes"`
}

// TotalStock sums the remaining stock across all sizes.
func (p *Product) TotalStock() int {
	total := 0
	for _, s := range p.Sizes {
		total += s.Stock
	}
	return total
}

// InStock reports whether any size has remaining stock.
func (p *Product) InStock() bool {
	return p.TotalStock() > 0
}

// CartLine is a single cart entry, keyed by (ProductID, Size). Name, Price
// and Image are snapshots captured when the line was created; they do not
// track later catalog changes.
type CartLine struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

// LineTotal returns price times quantity for this line.
func (l *CartLine) LineTotal() int64 {
	return l.Price * int64(l.Quantity)
}
