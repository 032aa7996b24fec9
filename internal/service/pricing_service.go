package service

import (
	"context"

	"github.com/Kr4ToS117/Site-Location/internal/domain"
	"github.com/Kr4ToS117/Site-Location/internal/pricing"
	"github.com/Kr4ToS117/Site-Location/internal/repo/postgres"
)

type PricingService interface {
	Configuration() pricing.Config
	RateForDate(ctx context.Context, date domain.Date) (domain.Cents, error)
	SetRateForDate(ctx context.Context, date domain.Date, rate domain.Cents) error
	Quote(ctx context.Context, checkIn, checkOut domain.Date) (*pricing.Quote, error)
}

type pricingService struct {
	cfg   pricing.Config
	rates postgres.RateRepo
}

func NewPricingService(cfg pricing.Config, rates postgres.RateRepo) PricingService {
	return &pricingService{cfg: cfg, rates: rates}
}

func (s *pricingService) Configuration() pricing.Config {
	return s.cfg
}

func (s *pricingService) RateForDate(ctx context.Context, date domain.Date) (domain.Cents, error) {
	override, err := s.rates.Get(ctx, date)
	if err != nil {
		return 0, err
	}
	if override != nil {
		return *override, nil
	}
	return s.cfg.BaseRate, nil
}

func (s *pricingService) SetRateForDate(ctx context.Context, date domain.Date, rate domain.Cents) error {
	if err := s.cfg.CheckRate(rate); err != nil {
		return err
	}
	return s.rates.Upsert(ctx, date, rate)
}

func (s *pricingService) Quote(ctx context.Context, checkIn, checkOut domain.Date) (*pricing.Quote, error) {
	if checkIn.IsZero() || checkOut.IsZero() || !checkIn.Before(checkOut) {
		return nil, domain.ErrInvalidDateRange
	}
	overrides, err := s.rates.ListRange(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return s.cfg.QuoteStay(checkIn, checkOut, overrides)
}
