package migration

import (
	"strings"

	"github.com/offsetcf/offsetcf/internal/config"
	merchantdomain "github.com/offsetcf/offsetcf/internal/merchant/domain"
	optindomain "github.com/offsetcf/offsetcf/internal/optin/domain"
	"github.com/offsetcf/offsetcf/internal/seed"
	widgetconfigdomain "github.com/offsetcf/offsetcf/internal/widgetconfig/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Versioned SQL migrations target postgres. Other dialects fall back
		// to gorm schema sync, which covers local sqlite and mysql setups.
		if strings.EqualFold(strings.TrimSpace(cfg.DBType), "postgres") {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(
				&merchantdomain.Merchant{},
				&widgetconfigdomain.WidgetConfig{},
				&optindomain.OptIn{},
			); err != nil {
				return err
			}
		}

		if cfg.Bootstrap.EnsureDemoMerchant {
			return seed.EnsureDemoMerchant(conn, cfg)
		}
		return nil
	}),
)
