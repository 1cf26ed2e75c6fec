package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"vendorcompare/repository"
)

// ExportComparisonExcel exports one comparison run as an xlsx file.
// @Summary Export comparison results as Excel
// @Description Streams an xlsx with the ranked comparison results of one order request. Requires Authorization header.
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Order request ID"
// @Success 200 {file} file "Excel file"
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/orders/{id}/export_excel [get]
func ExportComparisonExcel(store repository.Store, companyID uint) gin.HandlerFunc {
	titleCaser := cases.Title(language.English)

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

		f := excelize.NewFile()
		sheet := "Comparison"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{
			"Rank", "Vendor", "City", "State", "Product Price", "Delivery Price",
			"Total Cost Per Unit", "Total Order Cost", "Score", "Lead Time (Days)", "Grade Spec",
		}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		headerStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
		})
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheet, startCell, endCell, headerStyle)

		for i, r := range results {
			row := i + 2
			values := []interface{}{
				r.Rank,
				titleCaser.String(r.Vendor.Name),
				titleCaser.String(r.Vendor.City),
				titleCaser.String(r.Vendor.State),
				r.Quotation.ProductPrice.InexactFloat64(),
				r.Quotation.DeliveryPrice.InexactFloat64(),
				r.TotalCostPerUnit.InexactFloat64(),
				r.TotalOrderCost.InexactFloat64(),
				r.Score,
				r.Quotation.LeadTimeDays,
				r.Quotation.GradeSpec,
			}
			for j, v := range values {
				cell, _ := excelize.CoordinatesToCellName(j+1, row)
				f.SetCellValue(sheet, cell, v)
			}
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=comparison_%d.xlsx", order.ID))
		if err := f.Write(c.Writer); err != nil {
			log.Printf("Error writing excel export: %v\n", err)
		}
	}
}
