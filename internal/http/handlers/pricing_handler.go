package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kr4ToS117/Site-Location/internal/domain"
	"github.com/Kr4ToS117/Site-Location/internal/http/response"
)

// GetPricing is the legacy pricing endpoint: base rate and fees only.
func (h *Handlers) GetPricing(w http.ResponseWriter, r *http.Request) {
	cfg := h.pricing.Configuration()
	writeJSON(w, http.StatusOK, map[string]domain.Cents{
		"base_rate":        cfg.BaseRate,
		"cleaning_fee":     cfg.CleaningFee,
		"security_deposit": cfg.SecurityDeposit,
	})
}

// GetPricingConfiguration returns the full fee and rate-bound configuration.
func (h *Handlers) GetPricingConfiguration(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.pricing.Configuration())
}

// QuoteDates computes the price breakdown for a candidate stay.
func (h *Handlers) QuoteDates(w http.ResponseWriter, r *http.Request) {
	checkIn, checkOut, err := parseDateRange(r)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	quote, err := h.pricing.Quote(r.Context(), checkIn, checkOut)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

type setRateReq struct {
	Date domain.Date  `json:"date"`
	Rate domain.Cents `json:"rate"`
}

// SetDateRate stores a nightly-rate override for one date.
func (h *Handlers) SetDateRate(w http.ResponseWriter, r *http.Request) {
	var req setRateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if req.Date.IsZero() {
		response.BadRequest(w, "date is required")
		return
	}

	if err := h.pricing.SetRateForDate(r.Context(), req.Date, req.Rate); err != nil {
		response.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date": req.Date,
		"rate": req.Rate,
	})
}

func parseDateRange(r *http.Request) (domain.Date, domain.Date, error) {
	checkIn, err := domain.ParseDate(chi.URLParam(r, "checkIn"))
	if err != nil {
		return domain.Date{}, domain.Date{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	checkOut, err := domain.ParseDate(chi.URLParam(r, "checkOut"))
	if err != nil {
		return domain.Date{}, domain.Date{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !checkIn.Before(checkOut) {
		return domain.Date{}, domain.Date{}, domain.ErrInvalidDateRange
	}
	return checkIn, checkOut, nil
}
