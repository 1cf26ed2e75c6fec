package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vendorcompare/models"
	"vendorcompare/repository"
)

// GetAllOrderRequests lists past comparison runs.
// @Summary List order requests
// @Description Returns the governing company's order requests, newest first. Requires Authorization header.
// @Tags Orders
// @Produce json
// @Success 200 {array} models.OrderRequest
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/orders [get]
func GetAllOrderRequests(store repository.Store, companyID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := store.ListOrderRequests(c.Request.Context(), companyID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order requests", "details": err.Error()})
			return
		}

		type orderRow struct {
			models.OrderRequest
			ProductName string `json:"product_name"`
		}
		rows := make([]orderRow, len(orders))
		for i, o := range orders {
			rows[i] = orderRow{OrderRequest: o, ProductName: o.Product.Name}
		}
		c.JSON(http.StatusOK, rows)
	}
}

// GetComparisonResults returns the persisted ranked results of one run.
// @Summary Get comparison results for an order request
// @Description Returns the ranked comparison results of one comparison run, ascending by rank. Requires Authorization header.
// @Tags Orders
// @Produce json
// @Param id path int true "Order request ID"
// @Success 200 {array} models.ComparisonResultRow
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/orders/{id}/results [get]
func GetComparisonResults(store repository.Store, companyID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order request ID"})
			return
		}

		order, err := store.GetOrderRequest(c.Request.Context(), companyID, uint(orderID))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order request not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order request", "details": err.Error()})
			return
		}

		results, err := store.ListComparisonResults(c.Request.Context(), order.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comparison results", "details": err.Error()})
			return
		}

		rows := make([]models.ComparisonResultRow, len(results))
		for i, r := range results {
			rows[i] = models.ComparisonResultRow{
				ID:               r.ID,
				OrderRequestID:   r.OrderRequestID,
				Rank:             r.Rank,
				VendorID:         r.VendorID,
				VendorName:       r.Vendor.Name,
				VendorCity:       r.Vendor.City,
				VendorState:      r.Vendor.State,
				QuotationID:      r.QuotationID,
				ProductPrice:     r.Quotation.ProductPrice,
				DeliveryPrice:    r.Quotation.DeliveryPrice,
				TotalCostPerUnit: r.TotalCostPerUnit,
				TotalOrderCost:   r.TotalOrderCost,
				Score:            r.Score,
				LeadTimeDays:     r.Quotation.LeadTimeDays,
				GradeSpec:        r.Quotation.GradeSpec,
			}
		}
		c.JSON(http.StatusOK, rows)
	}
}
