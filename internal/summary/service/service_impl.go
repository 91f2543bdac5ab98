package service

import (
	"context"
	"sort"

	"github.com/offsetcf/offsetcf/internal/clock"
	merchantdomain "github.com/offsetcf/offsetcf/internal/merchant/domain"
	optindomain "github.com/offsetcf/offsetcf/internal/optin/domain"
	"github.com/offsetcf/offsetcf/internal/summary/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dayLayout = "2006-01-02"

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	OptIns    optindomain.Repository
	Merchants merchantdomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	optIns    optindomain.Repository
	merchants merchantdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("summary.service"),
		clock:     p.Clock,
		optIns:    p.OptIns,
		merchants: p.Merchants,
	}
}

func (s *Service) MonthlySummary(ctx context.Context, req domain.MonthlySummaryRequest) (domain.Summary, error) {
	merchant, err := s.merchants.GetByStoreDomain(ctx, req.StoreDomain)
	if err != nil {
		return domain.Summary{}, err
	}

	window, err := domain.ResolveMonth(req.Month, s.clock.Now())
	if err != nil {
		return domain.Summary{}, err
	}

	events, err := s.optIns.ListInWindow(ctx, s.db, merchant.ID, window.Start, window.End)
	if err != nil {
		return domain.Summary{}, err
	}

	totals, daily := Aggregate(events, window)

	return domain.Summary{
		Store:    merchant.StoreDomain,
		Month:    window.Month(),
		Currency: merchant.Currency,
		Totals:   totals,
		Daily:    daily,
	}, nil
}

// Aggregate filters events to the window, groups them by UTC calendar day
// and sums counts and offsets with decimal accumulators. The store already
// range-filters its query; re-filtering here keeps the math correct for
// unfiltered inputs too. Output is independent of input order: the daily
// series is sorted ascending by day and days without events are omitted.
func Aggregate(events []optindomain.OptIn, window domain.Window) (domain.Totals, []domain.DayBucket) {
	totals := domain.Totals{EstimatedOffset: decimal.Zero}
	buckets := make(map[string]*domain.DayBucket)

	for _, event := range events {
		if !window.Contains(event.UpdatedAt) {
			continue
		}

		totals.OptIns++
		totals.EstimatedOffset = totals.EstimatedOffset.Add(event.EstimatedOffset)

		day := event.UpdatedAt.UTC().Format(dayLayout)
		bucket, ok := buckets[day]
		if !ok {
			bucket = &domain.DayBucket{Day: day, EstimatedOffset: decimal.Zero}
			buckets[day] = bucket
		}
		bucket.OptIns++
		bucket.EstimatedOffset = bucket.EstimatedOffset.Add(event.EstimatedOffset)
	}

	daily := make([]domain.DayBucket, 0, len(buckets))
	for _, bucket := range buckets {
		daily = append(daily, *bucket)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Day < daily[j].Day })

	return totals, daily
}
