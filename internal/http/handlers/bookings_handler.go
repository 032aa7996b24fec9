package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kr4ToS117/Site-Location/internal/domain"
	"github.com/Kr4ToS117/Site-Location/internal/http/response"
	"github.com/Kr4ToS117/Site-Location/pkg/logger"
)

// ListBookings returns all non-cancelled bookings, newest first.
func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list bookings", "error", err)
		response.WriteDomainError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// CreateBooking validates the guest payload, prices the stay and persists
// the booking with status pending_payment.
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.BookingCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	booking, err := h.bookings.Create(r.Context(), &req)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	logger.InfoContext(r.Context(), "Booking created",
		"booking_id", booking.ID,
		"check_in", booking.CheckIn.String(),
		"check_out", booking.CheckOut.String(),
	)
	writeJSON(w, http.StatusCreated, booking)
}

// GetBooking fetches one booking by id.
func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// CancelBooking marks a booking cancelled.
func (h *Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.bookings.Cancel(r.Context(), id); err != nil {
		response.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled successfully"})
}
