package domain

import (
	"context"
	"errors"
)

type CreateMerchantRequest struct {
	StoreDomain  string  `json:"store_domain"`
	InvoiceEmail *string `json:"invoice_email"`
	Currency     string  `json:"currency"`
}

type Service interface {
	Create(context.Context, CreateMerchantRequest) (Merchant, error)
	GetByStoreDomain(ctx context.Context, storeDomain string) (Merchant, error)
	GetByID(ctx context.Context, id int64) (Merchant, error)
}

var (
	ErrInvalidStoreDomain = errors.New("invalid_store_domain")
	ErrInvalidCurrency    = errors.New("invalid_currency")
	ErrInvalidID          = errors.New("invalid_id")
	ErrDomainTaken        = errors.New("store_domain_taken")
	ErrNotFound           = errors.New("not_found")
)
