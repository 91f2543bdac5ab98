package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/offsetcf/offsetcf/internal/clock"
	"github.com/offsetcf/offsetcf/internal/config"
	"github.com/offsetcf/offsetcf/internal/estimator/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// offsetScale is the fixed number of fractional digits in an estimate.
// It is a wire contract, not a tunable.
const offsetScale = 3

const timestampLayout = "2006-01-02T15:04:05.000Z"

type Params struct {
	fx.In

	Cfg   config.Config
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	log             *zap.Logger
	clock           clock.Clock
	rate            decimal.Decimal
	defaultCurrency string
	version         string
}

// New parses the configured rate once; a malformed rate fails startup.
func New(p Params) (domain.Service, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(p.Cfg.EstimateRate))
	if err != nil {
		return nil, fmt.Errorf("invalid estimate rate %q: %w", p.Cfg.EstimateRate, err)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("estimate rate %q must be non-negative", p.Cfg.EstimateRate)
	}

	return &Service{
		log:             p.Log.Named("estimator.service"),
		clock:           p.Clock,
		rate:            rate,
		defaultCurrency: p.Cfg.DefaultCurrency,
		version:         p.Cfg.EstimatorVersion,
	}, nil
}

// Estimate computes subtotal*rate rounded to 3 decimal places, rounding
// half away from zero. Pure aside from reading the clock; safe for
// concurrent use.
func (s *Service) Estimate(ctx context.Context, req domain.EstimateRequest) (domain.Estimate, error) {
	_ = ctx

	if req.Subtotal.IsNegative() {
		return domain.Estimate{}, domain.ErrNegativeSubtotal
	}

	return domain.Estimate{
		EstimatedOffset:  req.Subtotal.Mul(s.rate).Round(offsetScale),
		Rate:             s.rate,
		Currency:         s.normalizeCurrency(req.Currency),
		EstimatorVersion: s.version,
		UpdatedAt:        s.clock.Now().UTC().Format(timestampLayout),
	}, nil
}

func (s *Service) normalizeCurrency(raw string) string {
	currency := strings.ToUpper(strings.TrimSpace(raw))
	if currency == "" {
		currency = s.defaultCurrency
	}
	if len(currency) > 3 {
		currency = currency[:3]
	}
	return currency
}
