// Package domain contains persistence models for recorded opt-in events.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OptIn is an append-only record of a customer accepting the offset
// contribution at checkout. UpdatedAt is the aggregation bucketing key.
type OptIn struct {
	ID               snowflake.ID      `gorm:"primaryKey" json:"id"`
	MerchantID       snowflake.ID      `gorm:"not null;index:idx_opt_ins_merchant_updated,priority:1" json:"merchant_id"`
	CustomerID       *string           `gorm:"type:text" json:"customer_id,omitempty"`
	CustomerEmail    *string           `gorm:"type:text" json:"customer_email,omitempty"`
	SessionID        *string           `gorm:"type:text" json:"session_id,omitempty"`
	OrderRef         *string           `gorm:"type:text" json:"order_ref,omitempty"`
	CartSubtotal     decimal.Decimal   `gorm:"type:numeric(14,2);not null" json:"cart_subtotal"`
	Currency         string            `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	EstimatedOffset  decimal.Decimal   `gorm:"type:numeric(14,3);not null" json:"estimated_offset"`
	EstimatorVersion *string           `gorm:"type:text" json:"estimator_version,omitempty"`
	Customer         datatypes.JSONMap `gorm:"type:jsonb" json:"customer,omitempty"`
	CreatedAt        time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_opt_ins_merchant_updated,priority:2" json:"updated_at"`
}

// TableName sets the database table name.
func (OptIn) TableName() string { return "opt_ins" }
