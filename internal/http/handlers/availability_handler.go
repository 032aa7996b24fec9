package handlers

import (
	"net/http"

	"github.com/Kr4ToS117/Site-Location/internal/http/response"
	"github.com/Kr4ToS117/Site-Location/pkg/logger"
)

// CheckAvailability reports whether a candidate stay is free of
// overlapping bookings.
func (h *Handlers) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	checkIn, checkOut, err := parseDateRange(r)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	available, err := h.bookings.IsRangeAvailable(r.Context(), checkIn, checkOut)
	if err != nil {
		logger.ErrorContext(r.Context(), "Availability check failed", "error", err)
		response.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"available": available,
		"check_in":  checkIn,
		"check_out": checkOut,
	})
}
