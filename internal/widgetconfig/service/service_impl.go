package service

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/offsetcf/offsetcf/internal/config"
	merchantdomain "github.com/offsetcf/offsetcf/internal/merchant/domain"
	"github.com/offsetcf/offsetcf/internal/widgetconfig/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Repo      domain.Repository
	Merchants merchantdomain.Service
	Defaults  *config.WidgetDefaultsHolder
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	repo      domain.Repository
	merchants merchantdomain.Service
	defaults  *config.WidgetDefaultsHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("widgetconfig.service"),
		repo:      p.Repo,
		merchants: p.Merchants,
		defaults:  p.Defaults,
	}
}

// Resolve looks up the newest config row for the key. A merchant or row
// that does not exist is not an error: the widget must always render, so
// the process-wide default is served instead. Store failures still
// propagate.
func (s *Service) Resolve(ctx context.Context, req domain.ResolveRequest) (domain.ResolvedConfig, error) {
	var merchantID snowflake.ID

	switch {
	case req.MerchantID > 0:
		// merchant_id wins when both keys are present
		merchantID = snowflake.ID(req.MerchantID)
	case req.StoreDomain != "":
		merchant, err := s.merchants.GetByStoreDomain(ctx, req.StoreDomain)
		if err != nil {
			if errors.Is(err, merchantdomain.ErrNotFound) {
				return s.defaultConfig(), nil
			}
			return domain.ResolvedConfig{}, err
		}
		merchantID = merchant.ID
	default:
		return domain.ResolvedConfig{}, domain.ErrMissingKey
	}

	row, err := s.repo.FindLatest(ctx, s.db, merchantID)
	if err != nil {
		return domain.ResolvedConfig{}, err
	}
	if row == nil {
		return s.defaultConfig(), nil
	}

	return resolveRow(row), nil
}

func (s *Service) defaultConfig() domain.ResolvedConfig {
	d := s.defaults.Get()
	return domain.ResolvedConfig{
		Placement:      d.Placement,
		Verbiage:       d.Verbiage,
		Theme:          d.Theme,
		InsertPosition: d.InsertPosition,
		IsEnabled:      d.IsEnabled,
	}
}

// resolveRow fills per-field defaults for values the row left unset.
func resolveRow(row *domain.WidgetConfig) domain.ResolvedConfig {
	theme := map[string]any(row.Theme)
	if theme == nil {
		theme = map[string]any{}
	}

	insertPosition := row.InsertPosition
	if insertPosition == "" {
		insertPosition = "before"
	}

	isEnabled := true
	if row.IsEnabled != nil {
		isEnabled = *row.IsEnabled
	}

	return domain.ResolvedConfig{
		Placement:      row.Placement,
		Verbiage:       row.Verbiage,
		Theme:          theme,
		InsertPosition: insertPosition,
		IsEnabled:      isEnabled,
	}
}
