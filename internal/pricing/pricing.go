// Package pricing computes stay quotes from a nightly rate table with
// per-date overrides and fixed fees. All arithmetic is in integer cents.
package pricing

import (
	"fmt"

	"github.com/Kr4ToS117/Site-Location/internal/domain"
)

// Config is the process-wide pricing configuration. It is initialized once
// at startup; only per-date overrides change afterwards.
type Config struct {
	BaseRate        domain.Cents `json:"base_rate"`
	MinRate         domain.Cents `json:"min_rate"`
	MaxRate         domain.Cents `json:"max_rate"`
	CleaningFee     domain.Cents `json:"cleaning_fee"`
	SecurityDeposit domain.Cents `json:"security_deposit"`
}

func DefaultConfig() Config {
	return Config{
		BaseRate:        domain.Euros(180),
		MinRate:         domain.Euros(140),
		MaxRate:         domain.Euros(280),
		CleaningFee:     domain.Euros(45),
		SecurityDeposit: domain.Euros(600),
	}
}

// Overrides maps a calendar date to the nightly rate superseding the base
// rate for that date.
type Overrides map[domain.Date]domain.Cents

// NightRate is one line of a quote's per-night breakdown.
type NightRate struct {
	Date domain.Date  `json:"date"`
	Rate domain.Cents `json:"rate"`
}

// Quote is the price breakdown for a candidate stay.
type Quote struct {
	CheckIn         domain.Date  `json:"check_in"`
	CheckOut        domain.Date  `json:"check_out"`
	Nights          int          `json:"nights"`
	PerNight        []NightRate  `json:"per_night"`
	Subtotal        domain.Cents `json:"subtotal"`
	CleaningFee     domain.Cents `json:"cleaning_fee"`
	SecurityDeposit domain.Cents `json:"security_deposit"`
	Total           domain.Cents `json:"total"`
}

// RateFor returns the override rate for date if one exists, else the base rate.
func (c Config) RateFor(date domain.Date, overrides Overrides) domain.Cents {
	if rate, ok := overrides[date]; ok {
		return rate
	}
	return c.BaseRate
}

// CheckRate validates an override rate against the configured bounds.
func (c Config) CheckRate(rate domain.Cents) error {
	if rate < c.MinRate || rate > c.MaxRate {
		return fmt.Errorf("%w: rate %s outside allowed range %s-%s",
			domain.ErrInvalidInput, rate, c.MinRate, c.MaxRate)
	}
	return nil
}

// QuoteStay computes the quote for [checkIn, checkOut). Each night in the
// stay is priced individually so overrides land on the exact date they
// were set for.
func (c Config) QuoteStay(checkIn, checkOut domain.Date, overrides Overrides) (*Quote, error) {
	if checkIn.IsZero() || checkOut.IsZero() || !checkIn.Before(checkOut) {
		return nil, domain.ErrInvalidDateRange
	}

	nights := checkIn.DaysUntil(checkOut)
	q := &Quote{
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Nights:          nights,
		PerNight:        make([]NightRate, 0, nights),
		CleaningFee:     c.CleaningFee,
		SecurityDeposit: c.SecurityDeposit,
	}

	for night := checkIn; night.Before(checkOut); night = night.AddDays(1) {
		rate := c.RateFor(night, overrides)
		q.PerNight = append(q.PerNight, NightRate{Date: night, Rate: rate})
		q.Subtotal += rate
	}

	q.Total = q.Subtotal + q.CleaningFee + q.SecurityDeposit
	return q, nil
}
