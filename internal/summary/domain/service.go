// Package domain defines the monthly summary contract.
package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Totals struct {
	OptIns          int64           `json:"opt_ins"`
	EstimatedOffset decimal.Decimal `json:"estimated_offset"`
}

// DayBucket is one day of the sparse daily series. Day is the UTC calendar
// date in "YYYY-MM-DD" form.
type DayBucket struct {
	Day             string          `json:"day"`
	OptIns          int64           `json:"opt_ins"`
	EstimatedOffset decimal.Decimal `json:"estimated_offset"`
}

type Summary struct {
	Store    string      `json:"store"`
	Month    string      `json:"month"`
	Currency string      `json:"currency"`
	Totals   Totals      `json:"totals"`
	Daily    []DayBucket `json:"daily"`
}

type MonthlySummaryRequest struct {
	StoreDomain string
	Month       string
}

type Service interface {
	MonthlySummary(context.Context, MonthlySummaryRequest) (Summary, error)
}
