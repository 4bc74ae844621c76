package session

import (
	"testing"
	"time"

	"atelier-boutique/internal/checkout"
	"atelier-boutique/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// manualScheduler holds scheduled callbacks until the test fires them.
type manualScheduler struct {
	pending []func()
}

func (s *manualScheduler) Schedule(d time.Duration, fn func()) func() {
	s.pending = append(s.pending, fn)
	idx := len(s.pending) - 1
	return func() { s.pending[idx] = nil }
}

func (s *manualScheduler) Fire() {
	for _, fn := range s.pending {
		if fn != nil {
			fn()
		}
	}
	s.pending = nil
}

func testConfig() Config {
	return Config{
		ShippingFee:       5000,
		PaymentDelay:      2 * time.Second,
		LowStockThreshold: 3,
	}
}

func newTestSession(t *testing.T) (*Session, *manualScheduler) {
	t.Helper()
	scheduler := &manualScheduler{}
	return New("test-session", testConfig(), scheduler, notify.Nop{}, zap.NewNop()), scheduler
}

func validAddress() checkout.AddressInput {
	return checkout.AddressInput{
		FullName: "María González",
		Phone:    "+56912345678",
		Street:   "Av. Providencia 1234, Depto 305",
		City:     "Santiago",
		Region:   "Metropolitana",
		ZipCode:  "7500000",
	}
}

func validCard() checkout.CardInput {
	return checkout.CardInput{
		Name:   "María González",
		Number: "4111111111111111",
		Expiry: "12/27",
		CVV:    "123",
	}
}

// Three additions of the same key merge into one line of quantity 3 and
// leave the seeded stock of 5 at 2.
func TestRepeatedAdditionsMergeAndDrainStock(t *testing.T) {
	sess, _ := newTestSession(t)

	for i := 0; i < 3; i++ {
		_, err := sess.AddToCart("1", "M")
		require.NoError(t, err)
	}

	view := sess.Cart()
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "1", view.Lines[0].ProductID)
	assert.Equal(t, "M", view.Lines[0].Size)
	assert.Equal(t, 3, view.Lines[0].Quantity)

	p, err := sess.FindProduct("1")
	require.NoError(t, err)
	for _, s := range p.Sizes {
		if s.Size == "M" {
			assert.Equal(t, 2, s.Stock)
		}
	}
}

func TestCartViewTotals(t *testing.T) {
	sess, _ := newTestSession(t)

	_, err := sess.AddToCart("1", "M") // 89900
	require.NoError(t, err)

	view := sess.Cart()
	assert.Equal(t, int64(89900), view.Subtotal)
	assert.Equal(t, int64(5000), view.Shipping)
	assert.Equal(t, int64(94900), view.Total)
	assert.Equal(t, 1, view.ItemCount)
}

func TestSessionsAreIsolated(t *testing.T) {
	a, _ := newTestSession(t)
	scheduler := &manualScheduler{}
	b := New("other-session", testConfig(), scheduler, notify.Nop{}, zap.NewNop())

	_, err := a.AddToCart("1", "M")
	require.NoError(t, err)

	pb, err := b.FindProduct("1")
	require.NoError(t, err)
	assert.Equal(t, 5, pb.Sizes[1].Stock, "one session's purchases never touch another's catalog")
	assert.Empty(t, b.Cart().Lines)
}

func TestFullCheckoutJourney(t *testing.T) {
	sess, scheduler := newTestSession(t)

	_, err := sess.AddToCart("1", "M")
	require.NoError(t, err)

	require.NoError(t, sess.ProceedToCheckout())
	assert.Equal(t, checkout.StateSelectingAddress, sess.Checkout().State)

	address, err := sess.AddAddress(validAddress())
	require.NoError(t, err)
	assert.Equal(t, address.ID, sess.SelectedAddress().ID)

	require.NoError(t, sess.ContinueToPayment())

	paymentID, err := sess.SubmitPayment(validCard())
	require.NoError(t, err)
	assert.NotEmpty(t, paymentID)
	assert.True(t, sess.Checkout().Processing)

	scheduler.Fire()
	assert.Equal(t, checkout.StateConfirmed, sess.Checkout().State)
}

func TestStartNewOrder_FullReset(t *testing.T) {
	sess, scheduler := newTestSession(t)

	_, err := sess.AddToCart("1", "M")
	require.NoError(t, err)
	require.NoError(t, sess.ProceedToCheckout())
	_, err = sess.AddAddress(validAddress())
	require.NoError(t, err)
	require.NoError(t, sess.ContinueToPayment())
	_, err = sess.SubmitPayment(validCard())
	require.NoError(t, err)
	scheduler.Fire()
	require.Equal(t, checkout.StateConfirmed, sess.Checkout().State)

	require.NoError(t, sess.StartNewOrder())

	assert.Equal(t, checkout.StateBrowsing, sess.Checkout().State)
	assert.Empty(t, sess.Cart().Lines)
	assert.Empty(t, sess.Addresses())

	p, err := sess.FindProduct("1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Sizes[1].Stock, "stock restored from seed")
}

func TestStartNewOrder_OnlyFromConfirmed(t *testing.T) {
	sess, _ := newTestSession(t)
	assert.ErrorIs(t, sess.StartNewOrder(), checkout.ErrInvalidTransition)
}

func TestManager(t *testing.T) {
	scheduler := &manualScheduler{}
	manager := NewManager(testConfig(), scheduler, notify.Nop{}, zap.NewNop())

	t.Run("acquire creates then reuses", func(t *testing.T) {
		created := manager.Acquire("")
		assert.NotEmpty(t, created.ID())

		again := manager.Acquire(created.ID())
		assert.Same(t, created, again)
		assert.Equal(t, 1, manager.Count())
	})

	t.Run("unknown id is adopted", func(t *testing.T) {
		sess := manager.Acquire("returning-client")
		assert.Equal(t, "returning-client", sess.ID())
	})

	t.Run("evicts idle sessions", func(t *testing.T) {
		before := manager.Count()
		require.Greater(t, before, 0)

		evicted := manager.EvictIdle(0)
		assert.Equal(t, before, evicted)
		assert.Equal(t, 0, manager.Count())
	})
}
