package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/offsetcf/offsetcf/internal/widgetconfig/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, cfg *domain.WidgetConfig) error {
	return db.WithContext(ctx).Create(cfg).Error
}

func (r *repo) FindLatest(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) (*domain.WidgetConfig, error) {
	var rows []domain.WidgetConfig
	err := db.WithContext(ctx).
		Model(&domain.WidgetConfig{}).
		Where("merchant_id = ?", merchantID).
		Order("updated_at desc, id desc").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
