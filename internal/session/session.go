package session

import (
	"sync"
	"time"

	"atelier-boutique/internal/cart"
	"atelier-boutique/internal/catalog"
	"atelier-boutique/internal/checkout"
	"atelier-boutique/internal/domain"
	"atelier-boutique/internal/notify"

	"go.uber.org/zap"
)

// Config carries the storefront knobs a session needs.
type Config struct {
	ShippingFee       int64
	PaymentDelay      time.Duration
	LowStockThreshold int
}

// CartView is the cart as the presentation layer consumes it.
type CartView struct {
	Lines     []domain.CartLine `json:"lines"`
	Subtotal  int64             `json:"subtotal"`
	Shipping  int64             `json:"shipping"`
	Total     int64             `json:"total"`
	ItemCount int               `json:"item_count"`
}

// CheckoutView is the current flow position.
type CheckoutView struct {
	State      checkout.State `json:"state"`
	Processing bool           `json:"processing"`
}

// Session is the explicit context object owning one browsing session's
// state: a catalog seeded from the sample data, a cart, an address book and
// a checkout flow. Every operation goes through the session, which
// serializes access; there is no ambient global state.
type Session struct {
	id       string
	cfg      Config
	notifier notify.Notifier
	logger   *zap.Logger

	mu      sync.Mutex
	catalog *catalog.Store
	cart    *cart.Engine
	book    *checkout.AddressBook
	flow    *checkout.Flow

	createdAt time.Time
	lastSeen  time.Time

	scheduler checkout.Scheduler
}

// New creates a session with its catalog freshly seeded.
func New(id string, cfg Config, scheduler checkout.Scheduler, notifier notify.Notifier, logger *zap.Logger) *Session {
	s := &Session{
		id:        id,
		cfg:       cfg,
		notifier:  notifier,
		logger:    logger.With(zap.String("session_id", id)),
		scheduler: scheduler,
		createdAt: time.Now(),
		lastSeen:  time.Now(),
	}
	s.initStores()
	return s
}

// initStores builds the per-session stores from seed data. Also used by
// StartNewOrder for the full session reset.
func (s *Session) initStores() {
	s.catalog = catalog.NewStore(catalog.SeedProducts())
	s.cart = cart.NewEngine(s.catalog, s.notifier)
	s.book = checkout.NewAddressBook()
	s.flow = checkout.NewFlow(s.cart, s.book, s.scheduler, s.notifier, s.cfg.PaymentDelay, s.logger)
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Touch records activity, for idle eviction.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

// IdleSince returns the time of the last recorded activity.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// ListProducts returns the full catalog in insertion order.
func (s *Session) ListProducts() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.List()
}

// FilterProducts returns the catalog subset matching the criteria.
func (s *Session) FilterProducts(c catalog.FilterCriteria) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Filter(c)
}

// FeaturedProducts returns the hero carousel products.
func (s *Session) FeaturedProducts() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Featured()
}

// FindProduct returns one product by id.
func (s *Session) FindProduct(id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.FindByID(id)
}

// LowStockThreshold is the stock level at or below which the UI shows a
// warning. It has no business effect.
func (s *Session) LowStockThreshold() int {
	return s.cfg.LowStockThreshold
}

// AddToCart reserves a unit of stock and merges it into the cart.
func (s *Session) AddToCart(productID, size string) (*domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.AddItem(productID, size)
}

// UpdateQuantity adjusts a cart line by delta, removing it at zero.
func (s *Session) UpdateQuantity(productID, size string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(productID, size, delta)
}

// Cart returns the cart with its derived totals.
func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartView{
		Lines:     s.cart.Lines(),
		Subtotal:  s.cart.Subtotal(),
		Shipping:  s.cfg.ShippingFee,
		Total:     s.cart.Total(s.cfg.ShippingFee),
		ItemCount: s.cart.ItemCount(),
	}
}

// Addresses returns the session's address book contents.
func (s *Session) Addresses() []domain.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.List()
}

// SelectedAddress returns the chosen shipping address, or nil.
func (s *Session) SelectedAddress() *domain.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Selected()
}

// AddAddress appends a validated address during address selection.
func (s *Session) AddAddress(in checkout.AddressInput) (*domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow.AddAddress(in)
}

// SelectAddress updates the shipping selection during address selection.
func (s *Session) SelectAddress(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow.SelectAddress(id)
}

// ProceedToCheckout starts address selection for a non-empty cart.
func (s *Session) ProceedToCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow.ProceedToCheckout()
}

// ContinueToPayment moves to the payment step.
func (s *Session) ContinueToPayment() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow.ContinueToPayment()
}

// CancelCheckout steps the flow backwards.
func (s *Session) CancelCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow.Cancel()
}

// SubmitPayment validates the card and schedules the simulated payment.
func (s *Session) SubmitPayment(card checkout.CardInput) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	paymentID, err := s.flow.SubmitPayment(card)
	if err != nil {
		return "", err
	}
	return paymentID.String(), nil
}

// Checkout returns the current flow position.
func (s *Session) Checkout() CheckoutView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CheckoutView{
		State:      s.flow.State(),
		Processing: s.flow.Processing(),
	}
}

// StartNewOrder leaves the Confirmed state and rebuilds the whole session
// from seed data: cart cleared, stock restored, addresses dropped, flow
// back to Browsing. Equivalent to the page reload the storefront performs.
func (s *Session) StartNewOrder() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.flow.StartNewOrder(); err != nil {
		return err
	}

	s.initStores()
	s.logger.Info("Session reset for new order")
	return nil
}
