package catalog

import (
	"errors"
	"strings"

	"atelier-boutique/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("size out of stock")
)

// CategoryAll matches every category when filtering.
const CategoryAll = "all"

// FilterCriteria selects a subset of the catalog. All predicates are ANDed.
type FilterCriteria struct {
	// Category keeps only products of this category; empty or "all" keeps
	// everything.
	Category string
	// Query is a case-insensitive substring match on the product name.
	Query string
	// MaxPrice keeps products priced at or below the ceiling; nil means
	// unbounded.
	MaxPrice *int64
	// InStockOnly keeps only products with remaining stock in any size.
	InStockOnly bool
}

// Store is the source of truth for product listings and remaining stock.
// It is not safe for concurrent use; the owning session serializes access.
type Store struct {
	products []domain.Product
}

// NewStore builds a catalog from the given products, copying them so later
// stock mutations never alias the caller's data.
func NewStore(products []domain.Product) *Store {
	return &Store{products: copyProducts(products)}
}

// List returns the full catalog in insertion order. The returned products
// are copies; mutating them does not affect the store.
func (s *Store) List() []domain.Product {
	return copyProducts(s.products)
}

// Filter returns the products matching all criteria, preserving the order
// of List. The catalog itself is not mutated.
func (s *Store) Filter(c FilterCriteria) []domain.Product {
	query := strings.ToLower(c.Query)

	matched := []domain.Product{}
	for i := range s.products {
		p := &s.products[i]

		if c.Category != "" && c.Category != CategoryAll && p.Category != c.Category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if c.MaxPrice != nil && p.Price > *c.MaxPrice {
			continue
		}
		if c.InStockOnly && !p.InStock() {
			continue
		}

		matched = append(matched, copyProduct(p))
	}

	return matched
}

// Featured returns the products shown in the storefront hero carousel: the
// first three of the catalog, or fewer when the catalog is smaller.
func (s *Store) Featured() []domain.Product {
	n := 3
	if len(s.products) < n {
		n = len(s.products)
	}
	return copyProducts(s.products[:n])
}

// FindByID returns a copy of the product with the given id.
func (s *Store) FindByID(id string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			p := copyProduct(&s.products[i])
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// DecrementStock reduces the named size's stock by exactly one. It is the
// only catalog mutator. It fails with ErrOutOfStock when the product or
// size does not exist or the size has no stock left, leaving the catalog
// unchanged. On success it returns the remaining stock for that size.
func (s *Store) DecrementStock(productID, size string) (int, error) {
	for i := range s.products {
		if s.products[i].ID != productID {
			continue
		}
		for j := range s.products[i].Sizes {
			ss := &s.products[i].Sizes[j]
			if ss.Size != size {
				continue
			}
			if ss.Stock == 0 {
				return 0, ErrOutOfStock
			}
			ss.Stock--
			return ss.Stock, nil
		}
		return 0, ErrOutOfStock
	}
	return 0, ErrOutOfStock
}

func copyProduct(p *domain.Product) domain.Product {
	cp := *p
	cp.Sizes = make([]domain.SizeStock, len(p.Sizes))
	copy(cp.Sizes, p.Sizes)
	return cp
}

func copyProducts(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		out = append(out, copyProduct(&products[i]))
	}
	return out
}
