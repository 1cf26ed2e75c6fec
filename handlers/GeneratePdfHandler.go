package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"

	"vendorcompare/repository"
)

// addLabel draws text onto an image at the given position.
func addLabel(img *image.RGBA, x, y int, label string) {
	col := color.RGBA{0, 0, 0, 255}
	face := inconsolata.Bold8x16

	point := fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  point,
	}
	d.DrawString(label)
}

// orderQRImage renders a labelled QR code carrying the order request id so a
// printed report can be traced back to its comparison run.
func orderQRImage(orderID uint) ([]byte, error) {
	qr, err := qrcode.New(fmt.Sprintf("order_request:%d", orderID), qrcode.Medium)
	if err != nil {
		return nil, err
	}
	qrImg := qr.Image(160)

	bounds := qrImg.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()+24))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, bounds, qrImg, image.Point{}, draw.Over)
	addLabel(canvas, 8, bounds.Dy()+16, fmt.Sprintf("Order #%d", orderID))

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateComparisonPDF streams a PDF report of one comparison run.
// @Summary Generate comparison report PDF
// @Description Builds a PDF with the ranked comparison results of one order request, including a QR code for the order reference. Requires Authorization header.
// @Tags Export
// @Produce application/pdf
// @Param id path int true "Order request ID"
// @Success 200 {file} file "PDF file"
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/orders/{id}/report_pdf [get]
func GenerateComparisonPDF(store repository.Store, companyID uint) gin.HandlerFunc {
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

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetMargins(10, 10, 10)

		// --- Header ---
		pdf.SetFont("Arial", "B", 18)
		pdf.Cell(190, 10, "VENDOR COMPARISON REPORT")
		pdf.Ln(12)

		// --- Order Info ---
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(95, 6, fmt.Sprintf("Order Request: #%d", order.ID))
		pdf.Cell(95, 6, fmt.Sprintf("Required Date: %s", order.RequiredDate.Format("02-Jan-2006")))
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(95, 6, fmt.Sprintf("Product: %s", order.Product.Name))
		pdf.Cell(95, 6, fmt.Sprintf("Quantity: %d", order.OrderQty))
		pdf.Ln(6)
		pdf.Cell(190, 6, fmt.Sprintf("Delivery Location: %s", order.DeliveryLocation))
		pdf.Ln(10)

		// --- Table Header ---
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(12, 8, "Rank", "1", 0, "C", true, 0, "")
		pdf.CellFormat(55, 8, "Vendor", "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 8, "State", "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 8, "Cost/Unit", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 8, "Order Cost", "1", 0, "C", true, 0, "")
		pdf.CellFormat(28, 8, "Lead (Days)", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, r := range results {
			pdf.CellFormat(12, 8, strconv.Itoa(r.Rank), "1", 0, "C", false, 0, "")
			pdf.CellFormat(55, 8, r.Vendor.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 8, r.Vendor.State, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 8, r.TotalCostPerUnit.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 8, r.TotalOrderCost.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(28, 8, strconv.Itoa(r.Quotation.LeadTimeDays), "1", 1, "C", false, 0, "")
		}

		// --- QR code ---
		qrPNG, err := orderQRImage(order.ID)
		if err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader(fmt.Sprintf("qr-%d", order.ID), opts, bytes.NewReader(qrPNG))
			pdf.ImageOptions(fmt.Sprintf("qr-%d", order.ID), 160, pdf.GetY()+8, 35, 0, false, opts, 0, "")
		}

		// --- Footer ---
		pdf.SetY(-20)
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(190, 6, "This is a computer-generated report. No signature required.")
		pdf.Ln(5)
		pdf.Cell(190, 6, "Generated on: "+time.Now().Format("2006-01-02 15:04:05"))

		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF", "details": err.Error()})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=comparison_report_%d.pdf", order.ID))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}
