package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Kr4ToS117/Site-Location/internal/domain"
	"github.com/Kr4ToS117/Site-Location/internal/http/handlers"
	"github.com/Kr4ToS117/Site-Location/internal/payments"
	"github.com/Kr4ToS117/Site-Location/internal/pricing"
	"github.com/Kr4ToS117/Site-Location/internal/service"
	"github.com/Kr4ToS117/Site-Location/pkg/events"
)

// ---------- Mocks ----------

type mockBookingRepo struct {
	bookings []domain.Booking
}

func (m *mockBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	stored := *b
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	m.bookings = append(m.bookings, stored)
	return &stored, nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			b := m.bookings[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (m *mockBookingRepo) List(_ context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	for i := len(m.bookings) - 1; i >= 0; i-- {
		if m.bookings[i].Status != domain.BookingCancelled {
			out = append(out, m.bookings[i])
		}
	}
	return out, nil
}

func (m *mockBookingRepo) Cancel(_ context.Context, id string) (bool, error) {
	for i := range m.bookings {
		if m.bookings[i].ID == id && m.bookings[i].Status != domain.BookingCancelled {
			m.bookings[i].Status = domain.BookingCancelled
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBookingRepo) MarkPaid(_ context.Context, id string) (bool, error) {
	for i := range m.bookings {
		if m.bookings[i].ID == id && m.bookings[i].Status == domain.BookingPendingPayment {
			m.bookings[i].Status = domain.BookingPaid
			return true, nil
		}
	}
	return false, nil
}

type mockRateRepo struct {
	rates map[domain.Date]domain.Cents
}

func (m *mockRateRepo) Upsert(_ context.Context, date domain.Date, rate domain.Cents) error {
	m.rates[date] = rate
	return nil
}

func (m *mockRateRepo) Get(_ context.Context, date domain.Date) (*domain.Cents, error) {
	if rate, ok := m.rates[date]; ok {
		return &rate, nil
	}
	return nil, nil
}

func (m *mockRateRepo) ListRange(_ context.Context, from, to domain.Date) (pricing.Overrides, error) {
	out := make(pricing.Overrides)
	for d, r := range m.rates {
		if !d.Before(from) && d.Before(to) {
			out[d] = r
		}
	}
	return out, nil
}

type mockMailer struct{}

func (mockMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	return "mock-id", nil
}
func (mockMailer) SendBookingConfirmation(b *domain.Booking) error { return nil }

type recordingBus struct {
	subjects []string
}

func (b *recordingBus) Publish(_ context.Context, subject string, _ interface{}) error {
	b.subjects = append(b.subjects, subject)
	return nil
}

func (b *recordingBus) Close() error { return nil }

// ---------- Test server ----------

func testConfig() pricing.Config {
	return pricing.Config{
		BaseRate:        domain.Euros(200),
		MinRate:         domain.Euros(140),
		MaxRate:         domain.Euros(280),
		CleaningFee:     domain.Euros(45),
		SecurityDeposit: domain.Euros(600),
	}
}

func newTestRouter() (http.Handler, *recordingBus) {
	bus := &recordingBus{}
	bookingRepo := &mockBookingRepo{}
	rateRepo := &mockRateRepo{rates: make(map[domain.Date]domain.Cents)}
	pricingSvc := service.NewPricingService(testConfig(), rateRepo)
	bookingSvc := service.NewBookingService(bookingRepo, pricingSvc, bus, mockMailer{})
	h := handlers.New(bookingSvc, pricingSvc, payments.NewGateway(""), bus)

	r := chi.NewRouter()
	r.Route("/api/bookings", func(r chi.Router) {
		r.Get("/", h.ListBookings)
		r.Post("/", h.CreateBooking)
		r.Get("/{id}", h.GetBooking)
		r.Put("/{id}/cancel", h.CancelBooking)
	})
	r.Route("/api/pricing", func(r chi.Router) {
		r.Get("/", h.GetPricing)
		r.Get("/configuration", h.GetPricingConfiguration)
		r.Get("/dates/{checkIn}/{checkOut}", h.QuoteDates)
		r.Post("/dates", h.SetDateRate)
	})
	r.Get("/api/availability/{checkIn}/{checkOut}", h.CheckAvailability)
	r.Post("/api/create-payment-intent", h.CreatePaymentIntent)
	r.Post("/api/confirm-payment", h.ConfirmPayment)
	return r, bus
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"first_name":       "Jean",
		"last_name":        "Dupont",
		"email":            "jean.dupont@example.com",
		"phone":            "+33612345678",
		"address":          "12 rue de la Paix, Paris",
		"pets_allowed":     true,
		"check_in":         "2025-08-10",
		"check_out":        "2025-08-13",
		"guests":           2,
		"arrival_time":     "16:00 - 18:00",
		"special_requests": "Late arrival expected",
	}
}

// ---------- Tests ----------

func TestGetPricingConfiguration(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/pricing/configuration", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var cfg struct {
		BaseRate        float64 `json:"base_rate"`
		MinRate         float64 `json:"min_rate"`
		MaxRate         float64 `json:"max_rate"`
		CleaningFee     float64 `json:"cleaning_fee"`
		SecurityDeposit float64 `json:"security_deposit"`
	}
	decode(t, rec, &cfg)

	if cfg.CleaningFee != 45 || cfg.SecurityDeposit != 600 {
		t.Errorf("fees = %v/%v, want 45/600", cfg.CleaningFee, cfg.SecurityDeposit)
	}
	if cfg.MinRate != 140 || cfg.MaxRate != 280 {
		t.Errorf("bounds = %v-%v, want 140-280", cfg.MinRate, cfg.MaxRate)
	}
}

func TestCreateBooking(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/bookings", validPayload())
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var booking struct {
		ID          string  `json:"id"`
		Status      string  `json:"status"`
		PetsAllowed bool    `json:"pets_allowed"`
		Nights      int     `json:"nights"`
		TotalPrice  float64 `json:"total_price"`
	}
	decode(t, rec, &booking)

	if booking.ID == "" {
		t.Error("response has no booking id")
	}
	if booking.Status != "pending_payment" {
		t.Errorf("status = %q, want pending_payment", booking.Status)
	}
	if !booking.PetsAllowed {
		t.Error("pets_allowed not echoed back")
	}
	if booking.Nights != 3 {
		t.Errorf("nights = %d, want 3", booking.Nights)
	}
	if booking.TotalPrice != 1245 {
		t.Errorf("total_price = %v, want 1245", booking.TotalPrice)
	}

	// The booking now shows up in the listing.
	rec = doJSON(t, router, http.MethodGet, "/api/bookings", nil)
	var listed []map[string]interface{}
	decode(t, rec, &listed)
	if len(listed) != 1 {
		t.Errorf("listing has %d bookings, want 1", len(listed))
	}
}

func TestCreateBookingMissingEmail(t *testing.T) {
	router, _ := newTestRouter()

	payload := validPayload()
	delete(payload, "email")

	rec := doJSON(t, router, http.MethodPost, "/api/bookings", payload)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}

	var errResp struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	decode(t, rec, &errResp)

	if errResp.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", errResp.Code)
	}
	if _, ok := errResp.Fields["email"]; !ok {
		t.Errorf("fields = %v, want detail for email", errResp.Fields)
	}
}

func TestCreateBookingOverlapRejected(t *testing.T) {
	router, _ := newTestRouter()

	if rec := doJSON(t, router, http.MethodPost, "/api/bookings", validPayload()); rec.Code != http.StatusCreated {
		t.Fatalf("first booking status = %d", rec.Code)
	}

	overlapping := validPayload()
	overlapping["check_in"] = "2025-08-12"
	overlapping["check_out"] = "2025-08-15"
	rec := doJSON(t, router, http.MethodPost, "/api/bookings", overlapping)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}

	var errResp struct {
		Code string `json:"code"`
	}
	decode(t, rec, &errResp)
	if errResp.Code != "DATES_UNAVAILABLE" {
		t.Errorf("code = %q, want DATES_UNAVAILABLE", errResp.Code)
	}
}

func TestGetBookingNotFound(t *testing.T) {
	router, _ := newTestRouter()

	// A malformed id must read as not found, not as a server error.
	rec := doJSON(t, router, http.MethodGet, "/api/bookings/no-such-id", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("malformed id status = %d, want 404: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/bookings/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestCancelBooking(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/bookings", validPayload())
	var created struct {
		ID string `json:"id"`
	}
	decode(t, rec, &created)

	rec = doJSON(t, router, http.MethodPut, "/api/bookings/"+created.ID+"/cancel", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/bookings/"+created.ID, nil)
	var got struct {
		Status string `json:"status"`
	}
	decode(t, rec, &got)
	if got.Status != "cancelled" {
		t.Errorf("status = %q, want cancelled", got.Status)
	}

	if rec := doJSON(t, router, http.MethodPut, "/api/bookings/no-such-id/cancel", nil); rec.Code != http.StatusNotFound {
		t.Errorf("cancel unknown status = %d, want 404", rec.Code)
	}
}

func TestQuoteDates(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/pricing/dates/2025-08-10/2025-08-13", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var quote struct {
		Nights   int     `json:"nights"`
		Subtotal float64 `json:"subtotal"`
		Total    float64 `json:"total"`
		PerNight []struct {
			Date string  `json:"date"`
			Rate float64 `json:"rate"`
		} `json:"per_night"`
	}
	decode(t, rec, &quote)

	if quote.Nights != 3 || quote.Subtotal != 600 || quote.Total != 1245 {
		t.Errorf("quote = %d nights, %v subtotal, %v total; want 3/600/1245", quote.Nights, quote.Subtotal, quote.Total)
	}
	if len(quote.PerNight) != 3 {
		t.Errorf("per_night has %d entries, want 3", len(quote.PerNight))
	}
}

func TestQuoteDatesInvalidRange(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/pricing/dates/2025-08-13/2025-08-10", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}

	var errResp struct {
		Code string `json:"code"`
	}
	decode(t, rec, &errResp)
	if errResp.Code != "INVALID_DATE_RANGE" {
		t.Errorf("code = %q, want INVALID_DATE_RANGE", errResp.Code)
	}

	if rec := doJSON(t, router, http.MethodGet, "/api/pricing/dates/not-a-date/2025-08-10", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed date status = %d, want 400", rec.Code)
	}
}

func TestSetDateRate(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/pricing/dates", map[string]interface{}{
		"date": "2025-08-11",
		"rate": 250,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	// The override now shows up in the quote.
	rec = doJSON(t, router, http.MethodGet, "/api/pricing/dates/2025-08-10/2025-08-13", nil)
	var quote struct {
		Subtotal float64 `json:"subtotal"`
	}
	decode(t, rec, &quote)
	if quote.Subtotal != 650 {
		t.Errorf("subtotal = %v, want 650 (200+250+200)", quote.Subtotal)
	}
}

func TestSetDateRateOutOfBounds(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/pricing/dates", map[string]interface{}{
		"date": "2025-08-11",
		"rate": 300,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}

	var errResp struct {
		Code string `json:"code"`
	}
	decode(t, rec, &errResp)
	if errResp.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", errResp.Code)
	}
}

func TestCheckAvailability(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/availability/2025-08-10/2025-08-13", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var avail struct {
		Available bool `json:"available"`
	}
	decode(t, rec, &avail)
	if !avail.Available {
		t.Error("empty calendar reported unavailable")
	}

	if rec := doJSON(t, router, http.MethodPost, "/api/bookings", validPayload()); rec.Code != http.StatusCreated {
		t.Fatalf("booking status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/availability/2025-08-11/2025-08-14", nil)
	decode(t, rec, &avail)
	if avail.Available {
		t.Error("overlapping range reported available")
	}
}

func TestCreatePaymentIntentStubIsDeterministic(t *testing.T) {
	router, bus := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/bookings", validPayload())
	var created struct {
		ID string `json:"id"`
	}
	decode(t, rec, &created)

	body := map[string]interface{}{"booking_id": created.ID}
	first := doJSON(t, router, http.MethodPost, "/api/create-payment-intent", body)
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", first.Code, first.Body.String())
	}
	second := doJSON(t, router, http.MethodPost, "/api/create-payment-intent", body)

	if first.Body.String() != second.Body.String() {
		t.Errorf("repeated intent requests differ:\n%s\n%s", first.Body.String(), second.Body.String())
	}

	var intent struct {
		ID           string  `json:"id"`
		ClientSecret string  `json:"client_secret"`
		Amount       float64 `json:"amount"`
		Currency     string  `json:"currency"`
	}
	decode(t, first, &intent)
	if intent.Amount != 1245 {
		t.Errorf("amount = %v, want booking total 1245", intent.Amount)
	}
	if intent.Currency != "eur" {
		t.Errorf("currency = %q, want eur", intent.Currency)
	}
	if intent.ID == "" || intent.ClientSecret == "" {
		t.Error("intent id or client secret missing")
	}

	var published int
	for _, subject := range bus.subjects {
		if subject == events.PaymentIntentCreated {
			published++
		}
	}
	if published != 2 {
		t.Errorf("%s published %d times, want 2", events.PaymentIntentCreated, published)
	}
}

func TestCreatePaymentIntentRequiresAmount(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/create-payment-intent", map[string]interface{}{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestConfirmPaymentMarksBookingPaid(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/bookings", validPayload())
	var created struct {
		ID string `json:"id"`
	}
	decode(t, rec, &created)

	rec = doJSON(t, router, http.MethodPost, "/api/confirm-payment", map[string]interface{}{
		"payment_intent_id": "pi_stub_" + created.ID + "_124500",
		"booking_id":        created.ID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var confirmation struct {
		Status string `json:"status"`
	}
	decode(t, rec, &confirmation)
	if confirmation.Status != "succeeded" {
		t.Errorf("status = %q, want succeeded", confirmation.Status)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/bookings/"+created.ID, nil)
	var got struct {
		Status string `json:"status"`
	}
	decode(t, rec, &got)
	if got.Status != "paid" {
		t.Errorf("booking status = %q, want paid", got.Status)
	}
}

func TestConfirmPaymentRequiresIntentID(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/confirm-payment", map[string]interface{}{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}
