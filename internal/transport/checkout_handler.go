package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"atelier-boutique/internal/catalog"
	"atelier-boutique/internal/checkout"
	"atelier-boutique/internal/middleware"
	"atelier-boutique/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddCartItemRequest represents the add-to-cart request payload
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
}

// UpdateCartItemRequest represents the quantity adjustment payload
type UpdateCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Delta     int    `json:"delta"`
}

// PaymentResponse acknowledges a scheduled payment simulation
type PaymentResponse struct {
	PaymentID string `json:"payment_id"`
	State     string `json:"state"`
}

// CheckoutHandler handles HTTP requests for the cart, addresses and the
// checkout flow
type CheckoutHandler struct {
	logger *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{logger: logger}
}

// RegisterRoutes registers all cart, address and checkout routes
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Post("/items", h.AddItem)
		r.Patch("/items", h.UpdateItem)
	})

	r.Route("/api/addresses", func(r chi.Router) {
		r.Get("/", h.ListAddresses)
		r.Post("/", h.AddAddress)
		r.Post("/{id}/select", h.SelectAddress)
	})

	r.Route("/api/checkout", func(r chi.Router) {
		r.Get("/", h.GetCheckout)
		r.Post("/proceed", h.Proceed)
		r.Post("/continue", h.ContinueToPayment)
		r.Post("/payment", h.SubmitPayment)
		r.Post("/cancel", h.Cancel)
		r.Post("/new-order", h.StartNewOrder)
	})
}

// GetCart returns the cart lines and derived totals.
func (h *CheckoutHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, sess.Cart())
}

// AddItem reserves a unit of stock and merges it into the cart.
func (h *CheckoutHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	line, err := sess.AddToCart(req.ProductID, req.Size)
	if err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	h.logger.Info("Item added to cart",
		zap.String("product_id", req.ProductID),
		zap.String("size", req.Size),
		zap.Int("quantity", line.Quantity),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, line)
}

// UpdateItem adjusts a cart line's quantity by delta. Reaching zero removes
// the line.
func (h *CheckoutHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Update quantity validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess.UpdateQuantity(req.ProductID, req.Size, req.Delta)
	middleware.RespondWithJSON(w, http.StatusOK, sess.Cart())
}

// ListAddresses returns the address book with the current selection.
func (h *CheckoutHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	selectedID := ""
	if selected := sess.SelectedAddress(); selected != nil {
		selectedID = selected.ID
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"addresses":   sess.Addresses(),
		"selected_id": selectedID,
	})
}

// AddAddress appends a validated shipping address during address selection.
func (h *CheckoutHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var in checkout.AddressInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Field validation lives in the address book itself.
	address, err := sess.AddAddress(in)
	if err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	h.logger.Info("Address saved", zap.String("address_id", address.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, address)
}

// SelectAddress updates the shipping selection.
func (h *CheckoutHandler) SelectAddress(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := sess.SelectAddress(chi.URLParam(r, "id")); err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "address selected"})
}

// GetCheckout returns the flow position.
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, sess.Checkout())
}

// Proceed starts address selection for a non-empty cart.
func (h *CheckoutHandler) Proceed(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := sess.ProceedToCheckout(); err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sess.Checkout())
}

// ContinueToPayment moves from address selection to the payment step.
func (h *CheckoutHandler) ContinueToPayment(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := sess.ContinueToPayment(); err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sess.Checkout())
}

// SubmitPayment validates the card and schedules the simulated charge. The
// response acknowledges the pending payment; the client polls GetCheckout
// for confirmation.
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var card checkout.CardInput
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	paymentID, err := sess.SubmitPayment(card)
	if err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	h.logger.Info("Payment scheduled", zap.String("payment_id", paymentID))
	middleware.RespondWithJSON(w, http.StatusAccepted, PaymentResponse{
		PaymentID: paymentID,
		State:     string(checkout.StateAwaitingPayment),
	})
}

// Cancel steps the flow backwards.
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := sess.CancelCheckout(); err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sess.Checkout())
}

// StartNewOrder resets the session after a confirmed order.
func (h *CheckoutHandler) StartNewOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := sess.StartNewOrder(); err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sess.Checkout())
}

func (h *CheckoutHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("Session not found in context")
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return nil, false
	}
	return sess, true
}

// respondCoreError maps core errors onto HTTP statuses. Validation errors
// carry per-field details; guard failures and stock conflicts are 409s.
func respondCoreError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, catalog.ErrOutOfStock):
		middleware.RespondWithError(w, http.StatusConflict, "producto sin stock")
	case errors.Is(err, catalog.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, checkout.ErrAddressNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "address not found")
	case errors.Is(err, checkout.ErrPaymentInProgress):
		middleware.RespondWithError(w, http.StatusConflict, "payment already processing")
	case errors.Is(err, checkout.ErrInvalidTransition):
		middleware.RespondWithError(w, http.StatusConflict, "action not allowed in the current checkout step")
	default:
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		logger.Error("Unexpected storefront error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
