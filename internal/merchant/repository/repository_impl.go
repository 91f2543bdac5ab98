package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/offsetcf/offsetcf/internal/merchant/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, merchant *domain.Merchant) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO merchants (id, store_domain, invoice_email, currency, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		merchant.ID,
		merchant.StoreDomain,
		merchant.InvoiceEmail,
		merchant.Currency,
		merchant.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Merchant, error) {
	var merchant domain.Merchant
	err := db.WithContext(ctx).Raw(
		`SELECT id, store_domain, invoice_email, currency, created_at
		 FROM merchants WHERE id = ?`,
		id,
	).Scan(&merchant).Error
	if err != nil {
		return nil, err
	}
	if merchant.ID == 0 {
		return nil, nil
	}
	return &merchant, nil
}

func (r *repo) FindByStoreDomain(ctx context.Context, db *gorm.DB, storeDomain string) (*domain.Merchant, error) {
	var merchant domain.Merchant
	err := db.WithContext(ctx).Raw(
		`SELECT id, store_domain, invoice_email, currency, created_at
		 FROM merchants WHERE store_domain = ?`,
		storeDomain,
	).Scan(&merchant).Error
	if err != nil {
		return nil, err
	}
	if merchant.ID == 0 {
		return nil, nil
	}
	return &merchant, nil
}
