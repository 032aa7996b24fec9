package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Kr4ToS117/Site-Location/internal/domain"
	"github.com/Kr4ToS117/Site-Location/internal/http/response"
	"github.com/Kr4ToS117/Site-Location/pkg/events"
	"github.com/Kr4ToS117/Site-Location/pkg/logger"
)

type createIntentReq struct {
	BookingID string       `json:"booking_id"`
	Amount    domain.Cents `json:"amount"`
}

// CreatePaymentIntent initiates payment for a booking. With a booking id
// the amount is taken from the stored total; a bare amount is accepted for
// pre-booking checkout flows.
func (h *Handlers) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	amount := req.Amount
	if req.BookingID != "" {
		booking, err := h.bookings.Get(r.Context(), req.BookingID)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}
		amount = booking.TotalPrice
	}
	if amount <= 0 {
		response.BadRequest(w, "amount or booking_id is required")
		return
	}

	intent, err := h.gateway.CreateIntent(r.Context(), amount, req.BookingID)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to create payment intent", "error", err)
		response.InternalError(w, "payment initiation failed")
		return
	}

	// The client secret is never published on the bus.
	event := events.PaymentIntentCreatedEvent{
		BookingID: req.BookingID,
		IntentID:  intent.ID,
		Amount:    int64(intent.Amount),
		Currency:  intent.Currency,
	}
	if err := h.eventBus.Publish(r.Context(), events.PaymentIntentCreated, event); err != nil {
		logger.ErrorContext(r.Context(), "Failed to publish payment intent event", "error", err, "intent_id", intent.ID)
	}

	writeJSON(w, http.StatusOK, intent)
}

type confirmPaymentReq struct {
	PaymentIntentID string `json:"payment_intent_id"`
	BookingID       string `json:"booking_id"`
}

// ConfirmPayment checks the intent status with the gateway and, when it
// succeeded for a known booking, moves the booking to paid.
func (h *Handlers) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req confirmPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if req.PaymentIntentID == "" {
		response.BadRequest(w, "payment_intent_id is required")
		return
	}

	confirmation, err := h.gateway.ConfirmIntent(r.Context(), req.PaymentIntentID)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to confirm payment intent", "error", err)
		response.InternalError(w, "payment confirmation failed")
		return
	}

	if confirmation.Status == "succeeded" && req.BookingID != "" {
		if _, err := h.bookings.MarkPaid(r.Context(), req.BookingID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.ErrorContext(r.Context(), "Failed to mark booking paid", "error", err, "booking_id", req.BookingID)
		}
	}

	writeJSON(w, http.StatusOK, confirmation)
}
