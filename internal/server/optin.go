package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	optindomain "github.com/offsetcf/offsetcf/internal/optin/domain"
	"github.com/offsetcf/offsetcf/pkg/db/pagination"
)

// RecordOptIn accepts the widget beacon. sendBeacon posts JSON with a
// text/plain content type, so the body is decoded as JSON regardless of the
// declared type.
func (s *Server) RecordOptIn(c *gin.Context) {
	var req optindomain.RecordOptInRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	optIn, err := s.optInSvc.Record(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordOptIn(req.Store)
	}

	c.JSON(http.StatusCreated, optIn)
}

func (s *Server) ListOptIns(c *gin.Context) {
	req := optindomain.ListOptInRequest{
		StoreDomain: c.Param("store"),
		PageToken:   c.Query("page_token"),
		PageSize:    pagination.ParsePageSize(c.Query("page_size"), 50, 200),
	}

	resp, err := s.optInSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
