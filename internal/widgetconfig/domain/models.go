// Package domain contains persistence models for merchant widget configs.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// WidgetConfig is one stored configuration row. Rows are kept as history;
// the row with the latest updated_at wins on lookup.
type WidgetConfig struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	MerchantID     snowflake.ID      `gorm:"not null;index" json:"merchant_id"`
	Placement      string            `gorm:"type:text" json:"placement"`
	Verbiage       string            `gorm:"type:text" json:"verbiage"`
	Theme          datatypes.JSONMap `gorm:"type:jsonb" json:"theme"`
	InsertPosition string            `gorm:"type:text" json:"insert_position"` // 'before' | 'after' | 'append'
	IsEnabled      *bool             `gorm:"default:true" json:"is_enabled"`
	UpdatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (WidgetConfig) TableName() string { return "widget_configs" }
