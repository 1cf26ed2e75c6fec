package models

import (
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CompareRequest is the POST /api/compare body.
type CompareRequest struct {
	ProductID        uint   `json:"product_id" binding:"required"`
	OrderQty         int    `json:"order_qty" binding:"required,gt=0"`
	DeliveryLocation string `json:"delivery_location" binding:"required"`
	RequiredDate     string `json:"required_date"` // optional, YYYY-MM-DD
}

// ComparisonRow is one ranked candidate in the compare response. The
// is_interstate / base_delivery_price / adjusted_delivery_price fields are
// computed per request and not persisted on comparison_results.
type ComparisonRow struct {
	Rank                  int             `json:"rank"`
	VendorID              uint            `json:"vendor_id"`
	VendorName            string          `json:"vendor_name"`
	VendorCity            string          `json:"vendor_city"`
	VendorState           string          `json:"vendor_state"`
	QuotationID           uint            `json:"quotation_id"`
	ProductPrice          decimal.Decimal `json:"product_price"`
	DeliveryPrice         decimal.Decimal `json:"delivery_price"`
	IsInterstate          bool            `json:"is_interstate"`
	BaseDeliveryPrice     decimal.Decimal `json:"base_delivery_price"`
	AdjustedDeliveryPrice decimal.Decimal `json:"adjusted_delivery_price"`
	TotalCostPerUnit      decimal.Decimal `json:"total_cost_per_unit"`
	TotalOrderCost        decimal.Decimal `json:"total_order_cost"`
	Score                 float64         `json:"score"`
	LeadTimeDays          int             `json:"lead_time_days"`
	GradeSpec             string          `json:"grade_spec"`
}

// CompareResponse is the POST /api/compare success body, comparisons ordered
// by ascending rank.
type CompareResponse struct {
	OrderRequestID   uint            `json:"order_request_id"`
	ProductName      string          `json:"product_name"`
	OrderQty         int             `json:"order_qty"`
	DeliveryLocation string          `json:"delivery_location"`
	Comparisons      []ComparisonRow `json:"comparisons"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	IP       string `json:"ip"`
}

type LoginResponse struct {
	Message     string `json:"message"`
	SessionID   string `json:"session_id"`
	AccessToken string `json:"access_token"`
	User        struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// ComparisonResultRow is the read-side row for GET /api/orders/:id/results,
// the persisted result joined with its vendor and quotation.
type ComparisonResultRow struct {
	ID               uint            `json:"id"`
	OrderRequestID   uint            `json:"order_request_id"`
	Rank             int             `json:"rank"`
	VendorID         uint            `json:"vendor_id"`
	VendorName       string          `json:"vendor_name"`
	VendorCity       string          `json:"vendor_city"`
	VendorState      string          `json:"vendor_state"`
	QuotationID      uint            `json:"quotation_id"`
	ProductPrice     decimal.Decimal `json:"product_price"`
	DeliveryPrice    decimal.Decimal `json:"delivery_price"`
	TotalCostPerUnit decimal.Decimal `json:"total_cost_per_unit"`
	TotalOrderCost   decimal.Decimal `json:"total_order_cost"`
	Score            float64         `json:"score"`
	LeadTimeDays     int             `json:"lead_time_days"`
	GradeSpec        string          `json:"grade_spec"`
}
