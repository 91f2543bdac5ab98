package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/offsetcf/offsetcf/internal/config"
	merchantdomain "github.com/offsetcf/offsetcf/internal/merchant/domain"
	merchantrepo "github.com/offsetcf/offsetcf/internal/merchant/repository"
	merchantservice "github.com/offsetcf/offsetcf/internal/merchant/service"
	"github.com/offsetcf/offsetcf/internal/widgetconfig/domain"
	"github.com/offsetcf/offsetcf/internal/widgetconfig/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupConfigTest(t *testing.T) (*gorm.DB, *snowflake.Node, domain.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&merchantdomain.Merchant{}, &domain.WidgetConfig{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	defaults, err := config.NewWidgetDefaultsHolder()
	require.NoError(t, err)

	merchants := merchantservice.New(merchantservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  merchantrepo.Provide(),
	})

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		Repo:      repository.Provide(),
		Merchants: merchants,
		Defaults:  defaults,
	})

	return db, node, svc
}

func boolPtr(v bool) *bool { return &v }

func TestResolve_MissingKey(t *testing.T) {
	_, _, svc := setupConfigTest(t)

	_, err := svc.Resolve(context.Background(), domain.ResolveRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingKey)
}

func TestResolve_NoRowFallsBackToDefault(t *testing.T) {
	db, node, svc := setupConfigTest(t)
	merchant := merchantdomain.Merchant{
		ID:          node.Generate(),
		StoreDomain: "bare.example.com",
		Currency:    "USD",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(&merchant).Error)

	want := config.DefaultWidgetConfig()
	got, err := svc.Resolve(context.Background(), domain.ResolveRequest{StoreDomain: "bare.example.com"})
	require.NoError(t, err)
	assert.Equal(t, want.Verbiage, got.Verbiage)
	assert.Equal(t, want.InsertPosition, got.InsertPosition)
	assert.Equal(t, want.IsEnabled, got.IsEnabled)
	assert.NotNil(t, got.Theme)
	assert.Empty(t, got.Theme)
}

func TestResolve_UnknownStoreServesDefault(t *testing.T) {
	_, _, svc := setupConfigTest(t)

	got, err := svc.Resolve(context.Background(), domain.ResolveRequest{StoreDomain: "missing.example.com"})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultWidgetConfig().Verbiage, got.Verbiage)
}

func TestResolve_LatestRowWins(t *testing.T) {
	db, node, svc := setupConfigTest(t)
	merchantID := node.Generate()

	require.NoError(t, db.Create(&domain.WidgetConfig{
		ID:         node.Generate(),
		MerchantID: merchantID,
		Placement:  "#old",
		Verbiage:   "old verbiage",
		UpdatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}).Error)
	require.NoError(t, db.Create(&domain.WidgetConfig{
		ID:         node.Generate(),
		MerchantID: merchantID,
		Placement:  "#new",
		Verbiage:   "new verbiage",
		UpdatedAt:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}).Error)

	got, err := svc.Resolve(context.Background(), domain.ResolveRequest{MerchantID: int64(merchantID)})
	require.NoError(t, err)
	assert.Equal(t, "#new", got.Placement)
	assert.Equal(t, "new verbiage", got.Verbiage)
}

func TestResolve_TimestampTieIsDeterministic(t *testing.T) {
	db, node, svc := setupConfigTest(t)
	merchantID := node.Generate()
	at := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	for _, placement := range []string{"#a", "#b"} {
		require.NoError(t, db.Create(&domain.WidgetConfig{
			ID:         node.Generate(),
			MerchantID: merchantID,
			Placement:  placement,
			Verbiage:   "v",
			UpdatedAt:  at,
		}).Error)
	}

	first, err := svc.Resolve(context.Background(), domain.ResolveRequest{MerchantID: int64(merchantID)})
	require.NoError(t, err)
	second, err := svc.Resolve(context.Background(), domain.ResolveRequest{MerchantID: int64(merchantID)})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_MerchantIDTakesPrecedence(t *testing.T) {
	db, node, svc := setupConfigTest(t)

	storeMerchant := merchantdomain.Merchant{
		ID:          node.Generate(),
		StoreDomain: "store.example.com",
		Currency:    "USD",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(&storeMerchant).Error)
	require.NoError(t, db.Create(&domain.WidgetConfig{
		ID:         node.Generate(),
		MerchantID: storeMerchant.ID,
		Placement:  "#by-store",
		Verbiage:   "v",
		UpdatedAt:  time.Now().UTC(),
	}).Error)

	otherID := node.Generate()
	require.NoError(t, db.Create(&domain.WidgetConfig{
		ID:         node.Generate(),
		MerchantID: otherID,
		Placement:  "#by-id",
		Verbiage:   "v",
		UpdatedAt:  time.Now().UTC(),
	}).Error)

	got, err := svc.Resolve(context.Background(), domain.ResolveRequest{
		StoreDomain: "store.example.com",
		MerchantID:  int64(otherID),
	})
	require.NoError(t, err)
	assert.Equal(t, "#by-id", got.Placement)
}

func TestResolve_FieldDefaults(t *testing.T) {
	db, node, svc := setupConfigTest(t)
	merchantID := node.Generate()

	require.NoError(t, db.Create(&domain.WidgetConfig{
		ID:             node.Generate(),
		MerchantID:     merchantID,
		Placement:      "#checkout",
		Verbiage:       "offset it",
		Theme:          nil,
		InsertPosition: "",
		IsEnabled:      nil,
		UpdatedAt:      time.Now().UTC(),
	}).Error)

	got, err := svc.Resolve(context.Background(), domain.ResolveRequest{MerchantID: int64(merchantID)})
	require.NoError(t, err)
	assert.NotNil(t, got.Theme)
	assert.Empty(t, got.Theme)
	assert.Equal(t, "before", got.InsertPosition)
	assert.True(t, got.IsEnabled)
}

func TestResolve_StoredValuesPassThrough(t *testing.T) {
	db, node, svc := setupConfigTest(t)
	merchantID := node.Generate()

	require.NoError(t, db.Create(&domain.WidgetConfig{
		ID:             node.Generate(),
		MerchantID:     merchantID,
		Placement:      "#cart-footer",
		Verbiage:       "offset my order",
		Theme:          datatypes.JSONMap{"accent": "#00aa55"},
		InsertPosition: "append",
		IsEnabled:      boolPtr(false),
		UpdatedAt:      time.Now().UTC(),
	}).Error)

	got, err := svc.Resolve(context.Background(), domain.ResolveRequest{MerchantID: int64(merchantID)})
	require.NoError(t, err)
	assert.Equal(t, "#cart-footer", got.Placement)
	assert.Equal(t, "append", got.InsertPosition)
	assert.False(t, got.IsEnabled)
	assert.Equal(t, "#00aa55", got.Theme["accent"])
}
