package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/offsetcf/offsetcf/internal/merchant/domain"
	"github.com/offsetcf/offsetcf/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("merchant.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateMerchantRequest) (domain.Merchant, error) {
	storeDomain := normalizeStoreDomain(req.StoreDomain)
	if storeDomain == "" || !strings.Contains(storeDomain, ".") {
		return domain.Merchant{}, domain.ErrInvalidStoreDomain
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return domain.Merchant{}, domain.ErrInvalidCurrency
	}

	merchant := domain.Merchant{
		ID:           s.genID.Generate(),
		StoreDomain:  storeDomain,
		InvoiceEmail: req.InvoiceEmail,
		Currency:     currency,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &merchant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Merchant{}, domain.ErrDomainTaken
		}
		return domain.Merchant{}, err
	}

	return merchant, nil
}

func (s *Service) GetByStoreDomain(ctx context.Context, storeDomain string) (domain.Merchant, error) {
	storeDomain = normalizeStoreDomain(storeDomain)
	if storeDomain == "" {
		return domain.Merchant{}, domain.ErrInvalidStoreDomain
	}

	merchant, err := s.repo.FindByStoreDomain(ctx, s.db, storeDomain)
	if err != nil {
		return domain.Merchant{}, err
	}
	if merchant == nil {
		return domain.Merchant{}, domain.ErrNotFound
	}
	return *merchant, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Merchant, error) {
	if id <= 0 {
		return domain.Merchant{}, domain.ErrInvalidID
	}

	merchant, err := s.repo.FindByID(ctx, s.db, snowflake.ID(id))
	if err != nil {
		return domain.Merchant{}, err
	}
	if merchant == nil {
		return domain.Merchant{}, domain.ErrNotFound
	}
	return *merchant, nil
}

func normalizeStoreDomain(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
