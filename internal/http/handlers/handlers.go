package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Kr4ToS117/Site-Location/internal/payments"
	"github.com/Kr4ToS117/Site-Location/internal/service"
	"github.com/Kr4ToS117/Site-Location/pkg/events"
)

type Handlers struct {
	bookings service.BookingService
	pricing  service.PricingService
	gateway  payments.Gateway
	eventBus events.Publisher
}

func New(bookings service.BookingService, pricing service.PricingService, gateway payments.Gateway, eventBus events.Publisher) *Handlers {
	return &Handlers{
		bookings: bookings,
		pricing:  pricing,
		gateway:  gateway,
		eventBus: eventBus,
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
