package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// WidgetDefaults is the process-wide fallback widget configuration served
// when a merchant has no stored config row.
type WidgetDefaults struct {
	Placement      string         `mapstructure:"placement" json:"placement"`
	Verbiage       string         `mapstructure:"verbiage" json:"verbiage"`
	Theme          map[string]any `mapstructure:"theme" json:"theme"`
	InsertPosition string         `mapstructure:"insertPosition" json:"insert_position"`
	IsEnabled      bool           `mapstructure:"isEnabled" json:"is_enabled"`
}

func DefaultWidgetConfig() WidgetDefaults {
	return WidgetDefaults{
		Placement:      "",
		Verbiage:       "to offset my carbon footprint",
		Theme:          map[string]any{},
		InsertPosition: "before",
		IsEnabled:      true,
	}
}

// WidgetDefaultsHolder exposes the fallback widget config. It is read once
// at startup; there is deliberately no file watch, the fallback is immutable
// for the process lifetime.
type WidgetDefaultsHolder struct {
	current WidgetDefaults
}

func NewWidgetDefaultsHolder() (*WidgetDefaultsHolder, error) {
	v := viper.New()

	v.SetConfigName("widget")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/offsetcf/config") // Volume-mounted config
	v.AddConfigPath("/etc/offsetcf")            // System config
	v.AddConfigPath(".")                        // Current directory (dev mode)

	v.SetEnvPrefix("OFFSETCF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultWidgetConfig()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// if config file not found, use defaults
		v.SetDefault("widget.placement", defaults.Placement)
		v.SetDefault("widget.verbiage", defaults.Verbiage)
		v.SetDefault("widget.theme", defaults.Theme)
		v.SetDefault("widget.insertPosition", defaults.InsertPosition)
		v.SetDefault("widget.isEnabled", defaults.IsEnabled)
	}

	cfg := defaults
	if err := v.UnmarshalKey("widget", &cfg); err != nil {
		return nil, err
	}
	if err := validateWidgetDefaults(cfg); err != nil {
		return nil, err
	}
	if cfg.Theme == nil {
		cfg.Theme = map[string]any{}
	}

	return &WidgetDefaultsHolder{current: cfg}, nil
}

// Get returns a copy so callers cannot mutate the process-wide fallback.
func (h *WidgetDefaultsHolder) Get() WidgetDefaults {
	cfg := h.current
	theme := make(map[string]any, len(cfg.Theme))
	for k, val := range cfg.Theme {
		theme[k] = val
	}
	cfg.Theme = theme
	return cfg
}

func validateWidgetDefaults(cfg WidgetDefaults) error {
	switch cfg.InsertPosition {
	case "", "before", "after", "append":
	default:
		return errors.New("widget.insertPosition must be one of before, after, append")
	}
	if strings.TrimSpace(cfg.Verbiage) == "" {
		return errors.New("widget.verbiage cannot be empty")
	}
	return nil
}
