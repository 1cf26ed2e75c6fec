package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vendorcompare/models"
	"vendorcompare/services"
)

// CompareVendors runs a vendor comparison for a prospective order.
// @Summary Compare vendors for a product order
// @Description Ranks vendor quotations for a product by landed cost and lead time, applying a 20% interstate delivery surcharge. Persists the run as an order request plus its comparison results. Requires Authorization header.
// @Tags Compare
// @Accept json
// @Produce json
// @Param body body models.CompareRequest true "Comparison request"
// @Success 200 {object} models.CompareResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/compare [post]
func CompareVendors(svc *services.CompareService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CompareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON input", "details": err.Error()})
			return
		}

		resp, err := svc.CompareVendors(c.Request.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidInput):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrNoQuotations):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run comparison", "details": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
