package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, cfg *WidgetConfig) error
	// FindLatest returns the most recently updated row for the merchant,
	// ties broken by id descending, or nil when no row exists.
	FindLatest(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) (*WidgetConfig, error)
}
