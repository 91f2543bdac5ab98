package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/offsetcf/offsetcf/internal/optin/domain"
	"github.com/offsetcf/offsetcf/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, optIn *domain.OptIn) error {
	return db.WithContext(ctx).Create(optIn).Error
}

func (r *repo) ListInWindow(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, start, end time.Time) ([]domain.OptIn, error) {
	var optIns []domain.OptIn
	err := db.WithContext(ctx).
		Model(&domain.OptIn{}).
		Where("merchant_id = ?", merchantID).
		Where("updated_at >= ?", start).
		Where("updated_at < ?", end).
		Order("updated_at asc, id asc").
		Find(&optIns).Error
	if err != nil {
		return nil, err
	}
	return optIns, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, page pagination.Pagination) ([]*domain.OptIn, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.OptIn{}).
		Where("merchant_id = ?", merchantID)

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		createdAt, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return nil, err
		}
		id, err := strconv.ParseInt(cursor.ID, 10, 64)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Where("created_at < ? OR (created_at = ? AND id < ?)", createdAt, createdAt, id)
	}

	limit := page.PageSize
	if limit <= 0 {
		limit = 50
	}

	var optIns []*domain.OptIn
	err := stmt.
		Order("created_at desc, id desc").
		Limit(limit + 1). // one extra row to detect has_more
		Find(&optIns).Error
	if err != nil {
		return nil, err
	}
	return optIns, nil
}
