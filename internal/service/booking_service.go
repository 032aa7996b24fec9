package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Kr4ToS117/Site-Location/internal/availability"
	"github.com/Kr4ToS117/Site-Location/internal/domain"
	"github.com/Kr4ToS117/Site-Location/internal/mailer"
	"github.com/Kr4ToS117/Site-Location/internal/repo/postgres"
	"github.com/Kr4ToS117/Site-Location/internal/utils"
	"github.com/Kr4ToS117/Site-Location/pkg/events"
	"github.com/Kr4ToS117/Site-Location/pkg/logger"
)

type BookingService interface {
	Create(ctx context.Context, req *domain.BookingCreateReq) (*domain.Booking, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	Cancel(ctx context.Context, id string) error
	MarkPaid(ctx context.Context, id string) (*domain.Booking, error)
	// IsRangeAvailable reports whether [checkIn, checkOut) is free of
	// overlapping non-cancelled bookings.
	IsRangeAvailable(ctx context.Context, checkIn, checkOut domain.Date) (bool, error)
}

type bookingService struct {
	bookings postgres.BookingRepo
	pricing  PricingService
	eventBus events.Publisher
	mail     mailer.Service
}

func NewBookingService(
	bookings postgres.BookingRepo,
	pricing PricingService,
	eventBus events.Publisher,
	mail mailer.Service,
) BookingService {
	return &bookingService{
		bookings: bookings,
		pricing:  pricing,
		eventBus: eventBus,
		mail:     mail,
	}
}

func (s *bookingService) Create(ctx context.Context, req *domain.BookingCreateReq) (*domain.Booking, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}
	if !req.CheckIn.Before(req.CheckOut) {
		return nil, domain.ErrInvalidDateRange
	}

	available, err := s.IsRangeAvailable(ctx, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrDatesUnavailable
	}

	// Totals are always computed server-side; a client-supplied price is
	// never trusted.
	quote, err := s.pricing.Quote(ctx, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Status:          domain.BookingPendingPayment,
		FirstName:       utils.NormalizeString(req.FirstName),
		LastName:        utils.NormalizeString(req.LastName),
		Email:           utils.NormalizeEmail(req.Email),
		Phone:           utils.NormalizePhone(req.Phone),
		Address:         utils.NormalizeString(req.Address),
		PetsAllowed:     req.PetsAllowed,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Guests:          req.Guests,
		ArrivalTime:     req.ArrivalTime,
		SpecialRequests: utils.NormalizeString(req.SpecialRequests),
		Nights:          quote.Nights,
		Subtotal:        quote.Subtotal,
		CleaningFee:     quote.CleaningFee,
		SecurityDeposit: quote.SecurityDeposit,
		TotalPrice:      quote.Total,
	}

	stored, err := s.bookings.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	event := events.BookingCreatedEvent{
		BookingID:  stored.ID,
		GuestEmail: stored.Email,
		GuestName:  stored.FirstName + " " + stored.LastName,
		CheckIn:    stored.CheckIn.String(),
		CheckOut:   stored.CheckOut.String(),
		Guests:     stored.Guests,
		TotalPrice: stored.TotalPrice.String(),
		CreatedAt:  stored.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.BookingCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_id", stored.ID)
	}

	if err := s.mail.SendBookingConfirmation(stored); err != nil {
		logger.WarnContext(ctx, "Failed to send booking confirmation", "error", err, "booking_id", stored.ID)
	}

	return stored, nil
}

func (s *bookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	// Ids are uuids; anything else can never match a row.
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (s *bookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *bookingService) Cancel(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	ok, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}

	event := events.BookingCanceledEvent{BookingID: id, CanceledAt: time.Now()}
	if err := s.eventBus.Publish(ctx, events.BookingCanceled, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking canceled event", "error", err, "booking_id", id)
	}
	return nil
}

func (s *bookingService) MarkPaid(ctx context.Context, id string) (*domain.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	ok, err := s.bookings.MarkPaid(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}

	event := events.BookingPaidEvent{BookingID: id, PaidAt: time.Now()}
	if err := s.eventBus.Publish(ctx, events.BookingPaid, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking paid event", "error", err, "booking_id", id)
	}
	return s.Get(ctx, id)
}

func (s *bookingService) IsRangeAvailable(ctx context.Context, checkIn, checkOut domain.Date) (bool, error) {
	existing, err := s.bookings.List(ctx)
	if err != nil {
		return false, err
	}
	return !availability.RangeConflicts(checkIn, checkOut, existing), nil
}

func validateBookingRequest(req *domain.BookingCreateReq) error {
	verr := domain.NewValidationError()

	if utils.NormalizeString(req.FirstName) == "" {
		verr.Add("first_name", "first name is required")
	}
	if utils.NormalizeString(req.LastName) == "" {
		verr.Add("last_name", "last name is required")
	}
	if utils.NormalizeString(req.Email) == "" {
		verr.Add("email", "email is required")
	} else if !utils.IsValidEmail(req.Email) {
		verr.Add("email", "invalid email address")
	}
	if utils.NormalizeString(req.Phone) == "" {
		verr.Add("phone", "phone number is required")
	} else if !utils.IsValidPhone(req.Phone) {
		verr.Add("phone", "invalid phone number")
	}
	if utils.NormalizeString(req.Address) == "" {
		verr.Add("address", "address is required")
	}
	if req.Guests < domain.MinGuests || req.Guests > domain.MaxGuests {
		verr.Add("guests", fmt.Sprintf("number of guests must be between %d and %d", domain.MinGuests, domain.MaxGuests))
	}
	if !domain.IsArrivalSlot(req.ArrivalTime) {
		verr.Add("arrival_time", "arrival time must be one of the offered slots")
	}
	if req.CheckIn.IsZero() {
		verr.Add("check_in", "check-in date is required")
	}
	if req.CheckOut.IsZero() {
		verr.Add("check_out", "check-out date is required")
	}

	if !verr.Empty() {
		return verr
	}
	return nil
}
