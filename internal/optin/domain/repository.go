package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/offsetcf/offsetcf/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, optIn *OptIn) error
	// ListInWindow returns every opt-in for the merchant with
	// updated_at in [start, end), ordered ascending by updated_at.
	ListInWindow(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, start, end time.Time) ([]OptIn, error)
	List(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, page pagination.Pagination) ([]*OptIn, error)
}
