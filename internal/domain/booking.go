package domain

import "time"

type BookingStatus string

const (
	BookingPendingPayment BookingStatus = "pending_payment"
	BookingPaid           BookingStatus = "paid"
	BookingCancelled      BookingStatus = "cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPendingPayment, BookingPaid, BookingCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// ArrivalSlots are the check-in windows offered to guests.
var ArrivalSlots = []string{
	"14:00 - 16:00",
	"16:00 - 18:00",
	"18:00 - 20:00",
	"20:00 - 22:00",
}

func IsArrivalSlot(s string) bool {
	for _, slot := range ArrivalSlots {
		if s == slot {
			return true
		}
	}
	return false
}

const (
	MinGuests = 1
	MaxGuests = 4
)

type Booking struct {
	ID     string        `json:"id"`
	Status BookingStatus `json:"status"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	PetsAllowed bool   `json:"pets_allowed"`

	CheckIn         Date   `json:"check_in"`
	CheckOut        Date   `json:"check_out"`
	Guests          int    `json:"guests"`
	ArrivalTime     string `json:"arrival_time"`
	SpecialRequests string `json:"special_requests"`

	Nights          int   `json:"nights"`
	Subtotal        Cents `json:"subtotal"`
	CleaningFee     Cents `json:"cleaning_fee"`
	SecurityDeposit Cents `json:"security_deposit"`
	TotalPrice      Cents `json:"total_price"`

	CreatedAt time.Time `json:"created_at"`
}

// BookingCreateReq is the guest-submitted payload. Computed fields (nights,
// totals, status) are never accepted from the client.
type BookingCreateReq struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	PetsAllowed     bool   `json:"pets_allowed"`
	CheckIn         Date   `json:"check_in"`
	CheckOut        Date   `json:"check_out"`
	Guests          int    `json:"guests"`
	ArrivalTime     string `json:"arrival_time"`
	SpecialRequests string `json:"special_requests"`
}
