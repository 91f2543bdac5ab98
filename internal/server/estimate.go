package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	estimatordomain "github.com/offsetcf/offsetcf/internal/estimator/domain"
)

func (s *Server) EstimateOffset(c *gin.Context) {
	var req estimatordomain.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	estimate, err := s.estimatorSvc.Estimate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordEstimate()
	}

	c.JSON(http.StatusOK, estimate)
}
