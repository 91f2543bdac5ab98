package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	merchantdomain "github.com/offsetcf/offsetcf/internal/merchant/domain"
)

func (s *Server) CreateMerchant(c *gin.Context) {
	var req merchantdomain.CreateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	merchant, err := s.merchantSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, merchant)
}
