package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/offsetcf/offsetcf/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const (
	keyOptInStore    = "optin:record:store:%s"
	keyOptInEndpoint = "optin:record:endpoint"
)

// OptInLimiter throttles the public opt-in beacon endpoint, per store and
// globally. Nil (disabled) limiters allow everything.
type OptInLimiter struct {
	enabled bool

	bucket *TokenBucket

	storeRate     float64
	storeBurst    int
	endpointRate  float64
	endpointBurst int
}

func NewOptInLimiter(cfg config.Config) (*OptInLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.OptInStoreRate <= 0 || limitCfg.OptInStoreBurst <= 0 {
		return nil, errors.New("opt-in store rate limit must be positive")
	}
	if limitCfg.OptInEndpointRate <= 0 || limitCfg.OptInEndpointBurst <= 0 {
		return nil, errors.New("opt-in endpoint rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &OptInLimiter{
		enabled:       true,
		bucket:        NewTokenBucket(client),
		storeRate:     limitCfg.OptInStoreRate,
		storeBurst:    limitCfg.OptInStoreBurst,
		endpointRate:  limitCfg.OptInEndpointRate,
		endpointBurst: limitCfg.OptInEndpointBurst,
	}, nil
}

func (l *OptInLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *OptInLimiter) AllowStore(ctx context.Context, storeDomain string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyOptInStore, strings.TrimSpace(storeDomain)), l.storeRate, l.storeBurst)
}

func (l *OptInLimiter) AllowEndpoint(ctx context.Context) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, keyOptInEndpoint, l.endpointRate, l.endpointBurst)
}
