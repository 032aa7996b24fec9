// Package availability holds the pure date checks backing the booking
// calendar. A linear scan over existing bookings is fine at the scale of a
// single apartment.
package availability

import "github.com/Kr4ToS117/Site-Location/internal/domain"

// IsDateBooked reports whether date falls inside any non-cancelled
// booking's stay. The range is inclusive on both ends: the checkout day
// itself counts as booked. That matches the calendar the guests see and is
// deliberate, not an off-by-one.
func IsDateBooked(date domain.Date, bookings []domain.Booking) bool {
	for _, b := range bookings {
		if b.Status == domain.BookingCancelled {
			continue
		}
		if !date.Before(b.CheckIn) && !date.After(b.CheckOut) {
			return true
		}
	}
	return false
}

// RangeConflicts reports whether the candidate stay [checkIn, checkOut)
// overlaps any non-cancelled booking. Back-to-back stays are allowed: a new
// check-in on an existing checkout day does not conflict.
func RangeConflicts(checkIn, checkOut domain.Date, bookings []domain.Booking) bool {
	for _, b := range bookings {
		if b.Status == domain.BookingCancelled {
			continue
		}
		if checkIn.Before(b.CheckOut) && b.CheckIn.Before(checkOut) {
			return true
		}
	}
	return false
}
