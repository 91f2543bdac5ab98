package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	summarydomain "github.com/offsetcf/offsetcf/internal/summary/domain"
)

func (s *Server) GetMonthlySummary(c *gin.Context) {
	result, err := s.summarySvc.MonthlySummary(c.Request.Context(), summarydomain.MonthlySummaryRequest{
		StoreDomain: c.Param("store"),
		Month:       c.Query("month"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
