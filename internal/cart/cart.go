package cart

import (
	"fmt"

	"atelier-boutique/internal/catalog"
	"atelier-boutique/internal/domain"
	"atelier-boutique/internal/notify"
)

// Engine maintains the cart lines for one session, keeping them consistent
// with the catalog's per-size stock. A line is keyed by (productID, size);
// adding an existing key increments its quantity instead of duplicating.
// Not safe for concurrent use; the owning session serializes access.
type Engine struct {
	store    *catalog.Store
	notifier notify.Notifier
	lines    []domain.CartLine
}

// NewEngine creates an empty cart bound to the given catalog.
func NewEngine(store *catalog.Store, notifier notify.Notifier) *Engine {
	return &Engine{
		store:    store,
		notifier: notifier,
	}
}

// AddItem reserves one unit of stock and adds it to the cart. Stock
// decrement and line mutation are a single atomic step from the caller's
// perspective: when the size is out of stock, the error is returned and
// neither the catalog nor the cart changes.
func (e *Engine) AddItem(productID, size string) (*domain.CartLine, error) {
	product, err := e.store.FindByID(productID)
	if err != nil {
		return nil, err
	}

	remaining, err := e.store.DecrementStock(productID, size)
	if err != nil {
		return nil, err
	}

	line := e.find(productID, size)
	if line != nil {
		line.Quantity++
	} else {
		e.lines = append(e.lines, domain.CartLine{
			ProductID: productID,
			Size:      size,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  1,
		})
		line = &e.lines[len(e.lines)-1]
	}

	e.notifier.Notify(notify.KindItemAdded,
		fmt.Sprintf("Producto agregado: %s (Talla %s) se agregó a tu carrito.", product.Name, size))
	if remaining == 0 {
		e.notifier.Notify(notify.KindStockEmpty,
			fmt.Sprintf("Última unidad vendida: %s (Talla %s) quedó sin stock.", product.Name, size))
	}

	result := *line
	return &result, nil
}

// UpdateQuantity adjusts a line's quantity by delta, clamping at zero. A
// line that reaches zero is removed. An absent key is a no-op. Stock is not
// restored when quantity drops; that matches the storefront's behavior,
// where removed units stay reserved until the session resets.
func (e *Engine) UpdateQuantity(productID, size string, delta int) {
	for i := range e.lines {
		l := &e.lines[i]
		if l.ProductID != productID || l.Size != size {
			continue
		}

		quantity := l.Quantity + delta
		if quantity <= 0 {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
		} else {
			l.Quantity = quantity
		}
		return
	}
}

// Lines returns the current cart contents in insertion order.
func (e *Engine) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(e.lines))
	copy(out, e.lines)
	return out
}

// Subtotal sums price times quantity over all lines.
func (e *Engine) Subtotal() int64 {
	var subtotal int64
	for i := range e.lines {
		subtotal += e.lines[i].LineTotal()
	}
	return subtotal
}

// Total is the subtotal plus the flat shipping fee.
func (e *Engine) Total(shippingFee int64) int64 {
	return e.Subtotal() + shippingFee
}

// ItemCount sums the quantities of all lines, for the cart badge.
func (e *Engine) ItemCount() int {
	count := 0
	for i := range e.lines {
		count += e.lines[i].Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (e *Engine) IsEmpty() bool {
	return len(e.lines) == 0
}

// Clear drops every line. Used when the session resets after a confirmed
// order.
func (e *Engine) Clear() {
	e.lines = nil
}

func (e *Engine) find(productID, size string) *domain.CartLine {
	for i := range e.lines {
		if e.lines[i].ProductID == productID && e.lines[i].Size == size {
			return &e.lines[i]
		}
	}
	return nil
}
