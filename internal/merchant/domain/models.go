// Package domain contains persistence models for merchant tenants.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Merchant is a tenant store identified by a numeric id and a domain string.
type Merchant struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	StoreDomain  string       `gorm:"uniqueIndex;not null" json:"store_domain"`
	InvoiceEmail *string      `gorm:"type:text" json:"invoice_email,omitempty"`
	Currency     string       `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Merchant) TableName() string { return "merchants" }
