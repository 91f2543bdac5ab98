// Package domain defines the offset estimation contract.
package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type EstimateRequest struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Currency string          `json:"currency"`
}

// Estimate is the per-request estimation result. UpdatedAt is the UTC
// instant of computation, ISO-8601 with millisecond precision and a literal
// Z designator.
type Estimate struct {
	EstimatedOffset  decimal.Decimal `json:"estimated_offset"`
	Rate             decimal.Decimal `json:"rate"`
	Currency         string          `json:"currency"`
	EstimatorVersion string          `json:"estimator_version"`
	UpdatedAt        string          `json:"updated_at"`
}

type Service interface {
	Estimate(context.Context, EstimateRequest) (Estimate, error)
}

var (
	ErrNegativeSubtotal = errors.New("subtotal_must_be_non_negative")
)
