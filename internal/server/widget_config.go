package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	widgetconfigdomain "github.com/offsetcf/offsetcf/internal/widgetconfig/domain"
)

// GetWidgetConfig resolves the widget configuration by store domain or
// merchant id. The widget calls this on every page load, so unknown stores
// still get the process default rather than an error.
func (s *Server) GetWidgetConfig(c *gin.Context) {
	req := widgetconfigdomain.ResolveRequest{
		StoreDomain: strings.TrimSpace(c.Query("store")),
	}

	if raw := strings.TrimSpace(c.Query("merchant_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			AbortWithError(c, newValidationError("merchant_id", "invalid_merchant_id", "merchant_id must be a positive integer"))
			return
		}
		req.MerchantID = id
	}

	cfg, err := s.widgetConfigSvc.Resolve(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (s *Server) GetMerchantWidgetConfig(c *gin.Context) {
	cfg, err := s.widgetConfigSvc.Resolve(c.Request.Context(), widgetconfigdomain.ResolveRequest{
		StoreDomain: c.Param("store"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}
