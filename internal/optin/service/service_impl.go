package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/offsetcf/offsetcf/internal/clock"
	"github.com/offsetcf/offsetcf/internal/config"
	merchantdomain "github.com/offsetcf/offsetcf/internal/merchant/domain"
	"github.com/offsetcf/offsetcf/internal/optin/domain"
	"github.com/offsetcf/offsetcf/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Cfg       config.Config
	Repo      domain.Repository
	Merchants merchantdomain.Service
}

type Service struct {
	db              *gorm.DB
	log             *zap.Logger
	genID           *snowflake.Node
	clock           clock.Clock
	defaultCurrency string
	repo            domain.Repository
	merchants       merchantdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("optin.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		defaultCurrency: p.Cfg.DefaultCurrency,
		repo:            p.Repo,
		merchants:       p.Merchants,
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordOptInRequest) (*domain.OptIn, error) {
	merchant, err := s.merchants.GetByStoreDomain(ctx, req.Store)
	if err != nil {
		if errors.Is(err, merchantdomain.ErrNotFound) || errors.Is(err, merchantdomain.ErrInvalidStoreDomain) {
			return nil, domain.ErrUnknownStore
		}
		return nil, err
	}

	if req.Cart.Subtotal.IsNegative() {
		return nil, domain.ErrInvalidSubtotal
	}
	if req.EstimatedOffset.IsNegative() {
		return nil, domain.ErrInvalidOffset
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Cart.Currency))
	if currency == "" {
		currency = s.defaultCurrency
	}
	if len(currency) > 3 {
		currency = currency[:3]
	}

	now := s.clock.Now().UTC()
	optIn := domain.OptIn{
		ID:               s.genID.Generate(),
		MerchantID:       merchant.ID,
		CustomerID:       customerField(req.Customer, "id"),
		CustomerEmail:    customerField(req.Customer, "email"),
		SessionID:        req.SessionID,
		OrderRef:         req.OrderRef,
		CartSubtotal:     req.Cart.Subtotal.Round(2),
		Currency:         currency,
		EstimatedOffset:  req.EstimatedOffset.Round(3),
		EstimatorVersion: req.EstimatorVersion,
		Customer:         datatypes.JSONMap(req.Customer),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, s.db, &optIn); err != nil {
		return nil, err
	}

	s.log.Info("opt-in recorded",
		zap.String("store", merchant.StoreDomain),
		zap.String("cart_subtotal", optIn.CartSubtotal.String()),
		zap.String("estimated_offset", optIn.EstimatedOffset.String()),
	)

	return &optIn, nil
}

func (s *Service) List(ctx context.Context, req domain.ListOptInRequest) (domain.ListOptInResponse, error) {
	merchant, err := s.merchants.GetByStoreDomain(ctx, req.StoreDomain)
	if err != nil {
		return domain.ListOptInResponse{}, err
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, merchant.ID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListOptInResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(optIn *domain.OptIn) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        optIn.ID.String(),
			CreatedAt: optIn.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	optIns := make([]domain.OptIn, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		optIns = append(optIns, *item)
	}

	return domain.ListOptInResponse{
		PageInfo: *pageInfo,
		OptIns:   optIns,
	}, nil
}

// customerField lifts a value out of the opaque customer blob without
// validating its shape.
func customerField(customer map[string]any, key string) *string {
	if customer == nil {
		return nil
	}
	v, ok := customer[key]
	if !ok || v == nil {
		return nil
	}
	str := fmt.Sprint(v)
	if str == "" {
		return nil
	}
	return &str
}
