package domain

import (
	"context"
	"errors"

	"github.com/offsetcf/offsetcf/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type CartInput struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Currency string          `json:"currency"`
}

// RecordOptInRequest mirrors the widget beacon payload. Customer is an
// opaque blob stored as-is; only id/email are lifted into columns.
type RecordOptInRequest struct {
	Store            string          `json:"store"`
	Cart             CartInput       `json:"cart"`
	EstimatedOffset  decimal.Decimal `json:"estimated_offset"`
	EstimatorVersion *string         `json:"estimator_version"`
	SessionID        *string         `json:"session_id"`
	Customer         map[string]any  `json:"customer"`
	OrderRef         *string         `json:"order_ref"`
}

type ListOptInRequest struct {
	StoreDomain string
	PageToken   string
	PageSize    int
}

type ListOptInResponse struct {
	pagination.PageInfo
	OptIns []OptIn `json:"opt_ins"`
}

type Service interface {
	Record(context.Context, RecordOptInRequest) (*OptIn, error)
	List(context.Context, ListOptInRequest) (ListOptInResponse, error)
}

var (
	ErrUnknownStore    = errors.New("unknown_store")
	ErrInvalidSubtotal = errors.New("invalid_subtotal")
	ErrInvalidOffset   = errors.New("invalid_estimated_offset")
)
