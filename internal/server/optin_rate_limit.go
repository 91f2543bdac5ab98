package server

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/offsetcf/offsetcf/internal/observability/logger"
	obsmetrics "github.com/offsetcf/offsetcf/internal/observability/metrics"
	"go.uber.org/zap"
)

const (
	rateLimitReasonStoreRate    = "store-rate"
	rateLimitReasonEndpointRate = "endpoint-rate"
)

type optInRateLimitKey struct {
	Store string `json:"store"`
}

func (s *Server) OptInRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.optInLimiter == nil || !s.optInLimiter.Enabled() {
			c.Next()
			return
		}

		endpoint := normalizeRateLimitEndpoint(c)
		ctx := c.Request.Context()

		allowed, err := s.optInLimiter.AllowEndpoint(ctx)
		if err != nil {
			logger.FromContext(ctx).Warn("opt-in endpoint rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !allowed {
			denyOptInRateLimit(c, endpoint, rateLimitReasonEndpointRate, s.obsMetrics)
			return
		}

		store, err := readOptInStoreKey(c)
		if err != nil {
			logger.FromContext(ctx).Warn("opt-in rate limit read body failed", zap.Error(err))
			AbortWithError(c, invalidRequestError())
			return
		}

		if store != "" {
			allowed, err = s.optInLimiter.AllowStore(ctx, store)
			if err != nil {
				logger.FromContext(ctx).Warn("opt-in store rate limit check failed", zap.Error(err))
				AbortWithError(c, ErrServiceUnavailable)
				return
			}
			if !allowed {
				denyOptInRateLimit(c, endpoint, rateLimitReasonStoreRate, s.obsMetrics)
				return
			}
		}

		if s.obsMetrics != nil {
			s.obsMetrics.RecordRateLimitAllowed(endpoint)
		}
		c.Next()
	}
}

func denyOptInRateLimit(c *gin.Context, endpoint, reason string, metrics *obsmetrics.Metrics) {
	ctx := c.Request.Context()
	logger.FromContext(ctx).Warn("opt-in rate limit exceeded",
		zap.String("reason", reason),
		zap.String("endpoint", endpoint),
	)
	if metrics != nil {
		metrics.RecordRateLimitDenied(reason)
	}

	c.Header("Retry-After", "1")
	c.Header("X-Rate-Limited-Reason", reason)
	AbortWithError(c, ErrRateLimited)
}

// readOptInStoreKey peeks at the JSON body for the store domain and restores
// the body for the handler.
func readOptInStoreKey(c *gin.Context) (string, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return "", nil
	}

	var payload optInRateLimitKey
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", nil
	}

	return strings.ToLower(strings.TrimSpace(payload.Store)), nil
}

func normalizeRateLimitEndpoint(c *gin.Context) string {
	if c == nil {
		return "unknown"
	}
	endpoint := strings.TrimSpace(c.FullPath())
	if endpoint == "" {
		endpoint = strings.TrimSpace(c.Request.URL.Path)
	}
	if endpoint == "" {
		endpoint = "unknown"
	}
	return endpoint
}
