package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/offsetcf/offsetcf/internal/clock"
	merchantdomain "github.com/offsetcf/offsetcf/internal/merchant/domain"
	merchantrepo "github.com/offsetcf/offsetcf/internal/merchant/repository"
	merchantservice "github.com/offsetcf/offsetcf/internal/merchant/service"
	optindomain "github.com/offsetcf/offsetcf/internal/optin/domain"
	optinrepo "github.com/offsetcf/offsetcf/internal/optin/repository"
	"github.com/offsetcf/offsetcf/internal/summary/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupSummaryTest(t *testing.T) (*gorm.DB, *snowflake.Node, domain.Service, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&merchantdomain.Merchant{}, &optindomain.OptIn{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fakeClock := clock.NewFakeClock(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	merchants := merchantservice.New(merchantservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  merchantrepo.Provide(),
	})

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		Clock:     fakeClock,
		OptIns:    optinrepo.Provide(),
		Merchants: merchants,
	})

	return db, node, svc, fakeClock
}

func seedMerchant(t *testing.T, db *gorm.DB, node *snowflake.Node, storeDomain string) merchantdomain.Merchant {
	t.Helper()
	merchant := merchantdomain.Merchant{
		ID:          node.Generate(),
		StoreDomain: storeDomain,
		Currency:    "USD",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(&merchant).Error)
	return merchant
}

func seedOptIn(t *testing.T, db *gorm.DB, node *snowflake.Node, merchantID snowflake.ID, at time.Time, offset string) {
	t.Helper()
	require.NoError(t, db.Create(&optindomain.OptIn{
		ID:              node.Generate(),
		MerchantID:      merchantID,
		CartSubtotal:    decimal.RequireFromString("100.00"),
		Currency:        "USD",
		EstimatedOffset: decimal.RequireFromString(offset),
		CreatedAt:       at,
		UpdatedAt:       at,
	}).Error)
}

func TestMonthlySummary_AggregatesMonth(t *testing.T) {
	db, node, svc, _ := setupSummaryTest(t)
	merchant := seedMerchant(t, db, node, "green.example.com")

	seedOptIn(t, db, node, merchant.ID, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), "1.000")
	seedOptIn(t, db, node, merchant.ID, time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC), "2.500")
	seedOptIn(t, db, node, merchant.ID, time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC), "0.750")
	// outside the requested month
	seedOptIn(t, db, node, merchant.ID, time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC), "9.000")
	seedOptIn(t, db, node, merchant.ID, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), "9.000")

	got, err := svc.MonthlySummary(context.Background(), domain.MonthlySummaryRequest{
		StoreDomain: "green.example.com",
		Month:       "2024-03",
	})
	require.NoError(t, err)

	assert.Equal(t, "green.example.com", got.Store)
	assert.Equal(t, "2024-03", got.Month)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, int64(3), got.Totals.OptIns)
	assert.Equal(t, "4.250", got.Totals.EstimatedOffset.StringFixed(3))

	require.Len(t, got.Daily, 2)
	assert.Equal(t, "2024-03-01", got.Daily[0].Day)
	assert.Equal(t, int64(2), got.Daily[0].OptIns)
	assert.Equal(t, "3.500", got.Daily[0].EstimatedOffset.StringFixed(3))
	assert.Equal(t, "2024-03-03", got.Daily[1].Day)
}

func TestMonthlySummary_DefaultsToClockMonth(t *testing.T) {
	db, node, svc, fakeClock := setupSummaryTest(t)
	merchant := seedMerchant(t, db, node, "green.example.com")

	seedOptIn(t, db, node, merchant.ID, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), "0.500")

	fakeClock.Set(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	got, err := svc.MonthlySummary(context.Background(), domain.MonthlySummaryRequest{
		StoreDomain: "green.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03", got.Month)
	assert.Equal(t, int64(1), got.Totals.OptIns)

	// A different current month yields an empty summary, not an error.
	fakeClock.Set(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
	got, err = svc.MonthlySummary(context.Background(), domain.MonthlySummaryRequest{
		StoreDomain: "green.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-05", got.Month)
	assert.Equal(t, int64(0), got.Totals.OptIns)
	assert.Empty(t, got.Daily)
}

func TestMonthlySummary_UnknownStore(t *testing.T) {
	_, _, svc, _ := setupSummaryTest(t)

	_, err := svc.MonthlySummary(context.Background(), domain.MonthlySummaryRequest{
		StoreDomain: "missing.example.com",
		Month:       "2024-03",
	})
	assert.ErrorIs(t, err, merchantdomain.ErrNotFound)
}

func TestMonthlySummary_InvalidMonth(t *testing.T) {
	db, node, svc, _ := setupSummaryTest(t)
	seedMerchant(t, db, node, "green.example.com")

	_, err := svc.MonthlySummary(context.Background(), domain.MonthlySummaryRequest{
		StoreDomain: "green.example.com",
		Month:       "2024-13",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}
