package domain

import (
	"context"
	"errors"
)

// ResolvedConfig is what the rendering surface consumes. Lookup can never
// fail with "no config": the process-wide default fills the gap.
type ResolvedConfig struct {
	Placement      string         `json:"placement"`
	Verbiage       string         `json:"verbiage"`
	Theme          map[string]any `json:"theme"`
	InsertPosition string         `json:"insert_position"`
	IsEnabled      bool           `json:"is_enabled"`
}

// ResolveRequest carries the lookup key. Exactly one of StoreDomain or
// MerchantID is required; when both are set MerchantID wins.
type ResolveRequest struct {
	StoreDomain string
	MerchantID  int64
}

type Service interface {
	Resolve(context.Context, ResolveRequest) (ResolvedConfig, error)
}

var (
	ErrMissingKey = errors.New("missing_lookup_key")
)
