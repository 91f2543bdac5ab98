package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/offsetcf/offsetcf/internal/config"
	merchantdomain "github.com/offsetcf/offsetcf/internal/merchant/domain"
	widgetconfigdomain "github.com/offsetcf/offsetcf/internal/widgetconfig/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnsureDemoMerchant seeds a demo merchant and its widget config so a fresh
// install can serve the widget without any manual onboarding. Idempotent.
func EnsureDemoMerchant(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	storeDomain := strings.ToLower(strings.TrimSpace(cfg.Bootstrap.DemoStoreDomain))
	if storeDomain == "" {
		return errors.New("demo store domain is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		merchant, err := ensureMerchantTx(ctx, tx, node, storeDomain, cfg.DefaultCurrency)
		if err != nil {
			return err
		}
		return ensureWidgetConfigTx(ctx, tx, node, merchant.ID)
	})
}

func ensureMerchantTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, storeDomain, currency string) (*merchantdomain.Merchant, error) {
	var merchant merchantdomain.Merchant
	err := tx.WithContext(ctx).
		Where("store_domain = ?", storeDomain).
		First(&merchant).Error
	if err == nil {
		return &merchant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if strings.TrimSpace(currency) == "" {
		currency = "USD"
	}
	merchant = merchantdomain.Merchant{
		ID:          node.Generate(),
		StoreDomain: storeDomain,
		Currency:    strings.ToUpper(strings.TrimSpace(currency)),
		CreatedAt:   time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(&merchant).Error; err != nil {
		return nil, err
	}
	return &merchant, nil
}

func ensureWidgetConfigTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, merchantID snowflake.ID) error {
	var count int64
	err := tx.WithContext(ctx).
		Model(&widgetconfigdomain.WidgetConfig{}).
		Where("merchant_id = ?", merchantID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := config.DefaultWidgetConfig()
	enabled := defaults.IsEnabled
	row := widgetconfigdomain.WidgetConfig{
		ID:             node.Generate(),
		MerchantID:     merchantID,
		Placement:      defaults.Placement,
		Verbiage:       defaults.Verbiage,
		Theme:          datatypes.JSONMap(defaults.Theme),
		InsertPosition: defaults.InsertPosition,
		IsEnabled:      &enabled,
		UpdatedAt:      time.Now().UTC(),
	}
	return tx.WithContext(ctx).Create(&row).Error
}
