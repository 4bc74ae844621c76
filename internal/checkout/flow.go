package checkout

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"atelier-boutique/internal/cart"
	"atelier-boutique/internal/domain"
	"atelier-boutique/internal/notify"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the position of a session in the checkout sequence.
type State string

const (
	StateBrowsing         State = "browsing"
	StateSelectingAddress State = "selecting_address"
	StateAwaitingPayment  State = "awaiting_payment"
	StateConfirmed        State = "confirmed"
)

var (
	ErrInvalidTransition = errors.New("invalid checkout transition")
	ErrPaymentInProgress = errors.New("payment already processing")
)

var validate *validator.Validate

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("card_expiry", func(fl validator.FieldLevel) bool {
		return expiryPattern.MatchString(fl.Field().String())
	})
}

// CardInput carries the simulated payment form fields. The number must be
// exactly 16 digits, expiry MM/YY with month 01-12, CVV 3 or 4 digits. The
// number tag admits digits only; numeric would also accept signs and
// decimal points.
type CardInput struct {
	Name   string `json:"name" validate:"required"`
	Number string `json:"number" validate:"required,number,len=16"`
	Expiry string `json:"expiry" validate:"required,card_expiry"`
	CVV    string `json:"cvv" validate:"required,number,min=3,max=4"`
}

// Flow is the checkout state machine: Browsing, SelectingAddress,
// AwaitingPayment, Confirmed. Each transition is gated by a guard; a failed
// guard returns ErrInvalidTransition and leaves all state untouched.
//
// Flow methods take an internal mutex because the payment completion
// callback fires on a timer goroutine. The callback touches only flow
// state, never the cart or catalog, so there is no lock ordering with the
// session lock.
type Flow struct {
	mu         sync.Mutex
	state      State
	processing bool
	paymentID  uuid.UUID
	cancelTask func()

	cart      *cart.Engine
	book      *AddressBook
	scheduler Scheduler
	notifier  notify.Notifier
	delay     time.Duration
	logger    *zap.Logger
}

// NewFlow creates a checkout flow in the Browsing state.
func NewFlow(engine *cart.Engine, book *AddressBook, scheduler Scheduler, notifier notify.Notifier, delay time.Duration, logger *zap.Logger) *Flow {
	return &Flow{
		state:     StateBrowsing,
		cart:      engine,
		book:      book,
		scheduler: scheduler,
		notifier:  notifier,
		delay:     delay,
		logger:    logger,
	}
}

// State returns the current checkout state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Processing reports whether a simulated payment is pending.
func (f *Flow) Processing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processing
}

// ProceedToCheckout moves from Browsing to SelectingAddress. Guarded by a
// non-empty cart.
func (f *Flow) ProceedToCheckout() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateBrowsing {
		return fmt.Errorf("%w: proceed to checkout from %s", ErrInvalidTransition, f.state)
	}
	if f.cart.IsEmpty() {
		return fmt.Errorf("%w: cart is empty", ErrInvalidTransition)
	}

	f.state = StateSelectingAddress
	return nil
}

// SelectAddress updates the shipping selection while choosing an address.
// The state does not change.
func (f *Flow) SelectAddress(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSelectingAddress {
		return fmt.Errorf("%w: select address from %s", ErrInvalidTransition, f.state)
	}
	return f.book.Select(id)
}

// AddAddress appends a validated address to the book while choosing an
// address. The first address is auto-selected by the book itself.
func (f *Flow) AddAddress(in AddressInput) (*domain.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSelectingAddress {
		return nil, fmt.Errorf("%w: add address from %s", ErrInvalidTransition, f.state)
	}

	address, err := f.book.Add(in)
	if err != nil {
		return nil, err
	}

	f.notifier.Notify(notify.KindAddressSaved, "Dirección guardada: tu dirección ha sido agregada correctamente.")
	return address, nil
}

// ContinueToPayment moves from SelectingAddress to AwaitingPayment. Guarded
// by a selected address.
func (f *Flow) ContinueToPayment() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSelectingAddress {
		return fmt.Errorf("%w: continue to payment from %s", ErrInvalidTransition, f.state)
	}
	if f.book.Selected() == nil {
		return fmt.Errorf("%w: no address selected", ErrInvalidTransition)
	}

	f.state = StateAwaitingPayment
	return nil
}

// Cancel steps backwards: SelectingAddress returns to Browsing, and
// AwaitingPayment returns to SelectingAddress unless a payment is pending.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateSelectingAddress:
		f.state = StateBrowsing
		return nil
	case StateAwaitingPayment:
		if f.processing {
			return ErrPaymentInProgress
		}
		f.state = StateSelectingAddress
		return nil
	default:
		return fmt.Errorf("%w: cancel from %s", ErrInvalidTransition, f.state)
	}
}

// SubmitPayment validates the card fields and schedules the simulated
// payment. While the delay is pending, further submissions are rejected
// with ErrPaymentInProgress. The returned id identifies the scheduled task.
func (f *Flow) SubmitPayment(card CardInput) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateAwaitingPayment {
		return uuid.Nil, fmt.Errorf("%w: submit payment from %s", ErrInvalidTransition, f.state)
	}
	if f.processing {
		return uuid.Nil, ErrPaymentInProgress
	}
	if err := validate.Struct(card); err != nil {
		return uuid.Nil, fmt.Errorf("invalid card: %w", err)
	}

	paymentID := uuid.New()
	f.processing = true
	f.paymentID = paymentID
	f.cancelTask = f.scheduler.Schedule(f.delay, func() {
		f.completePayment(paymentID)
	})

	f.logger.Info("Payment submitted",
		zap.String("payment_id", paymentID.String()),
		zap.Duration("delay", f.delay),
	)

	return paymentID, nil
}

// completePayment is the scheduled continuation of SubmitPayment. The
// simulation has no failure branch; an elapsed delay always confirms.
func (f *Flow) completePayment(paymentID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// A stale timer from a cancelled or reset flow must not confirm.
	if !f.processing || f.paymentID != paymentID {
		return
	}

	f.processing = false
	f.cancelTask = nil
	f.state = StateConfirmed

	f.logger.Info("Payment confirmed", zap.String("payment_id", paymentID.String()))
	f.notifier.Notify(notify.KindPayment, "¡Pedido confirmado! Gracias por tu compra.")
}

// StartNewOrder leaves the terminal Confirmed state and returns the flow to
// Browsing. The owning session resets the cart, catalog and address book
// alongside.
func (f *Flow) StartNewOrder() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateConfirmed {
		return fmt.Errorf("%w: start new order from %s", ErrInvalidTransition, f.state)
	}

	f.resetLocked()
	return nil
}

// Reset forces the flow back to Browsing, cancelling any pending payment
// task.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Flow) resetLocked() {
	if f.cancelTask != nil {
		f.cancelTask()
		f.cancelTask = nil
	}
	f.processing = false
	f.paymentID = uuid.Nil
	f.state = StateBrowsing
}
