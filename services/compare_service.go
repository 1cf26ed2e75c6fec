package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"vendorcompare/models"
	"vendorcompare/repository"
	"vendorcompare/utils"
)

var (
	// ErrProductNotFound and ErrNoQuotations carry the exact messages the
	// API surfaces on 404 responses.
	ErrProductNotFound = errors.New("Product not found")
	ErrNoQuotations    = errors.New("no quotations available")

	// ErrInvalidInput marks request validation failures (400).
	ErrInvalidInput = errors.New("invalid input")
)

// interstateSurcharge is the fixed uplift applied to delivery price when the
// vendor's state differs from the delivery destination after normalization.
var interstateSurcharge = decimal.RequireFromString("1.20")

// defaultRequiredDate is the fallback when the caller omits required_date.
var defaultRequiredDate = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

// CompareService ranks vendor quotations for a prospective order by landed
// cost and lead time. It is stateless over an injected store; the governing
// company id scopes every read and write.
type CompareService struct {
	store     repository.Store
	companyID uint
}

func NewCompareService(store repository.Store, companyID uint) *CompareService {
	return &CompareService{store: store, companyID: companyID}
}

// candidate holds one quotation's computed costs before ranking. The exact
// (unrounded) decimals are the sort keys; rounding to currency precision
// happens only when rows are persisted.
type candidate struct {
	quotation        models.Quotation
	isInterstate     bool
	adjustedDelivery decimal.Decimal
	totalCostPerUnit decimal.Decimal
	totalOrderCost   decimal.Decimal
	score            float64
}

// CompareVendors loads the product's quotations, computes adjusted landed
// cost per quotation, ranks them and persists the run as one OrderRequest
// plus its ComparisonResult rows in a single transaction.
//
// Ranking is a three-key ascending sort: total_order_cost, then
// total_cost_per_unit, then lead_time_days. Candidates equal on all three
// keep store iteration order. score is stored for display only and is never
// the sort key.
func (s *CompareService) CompareVendors(ctx context.Context, req models.CompareRequest) (*models.CompareResponse, error) {
	if req.OrderQty <= 0 {
		return nil, fmt.Errorf("%w: order_qty must be a positive integer", ErrInvalidInput)
	}
	if strings.TrimSpace(req.DeliveryLocation) == "" {
		return nil, fmt.Errorf("%w: delivery_location is required", ErrInvalidInput)
	}
	requiredDate := defaultRequiredDate
	if req.RequiredDate != "" {
		parsed, err := time.Parse("2006-01-02", req.RequiredDate)
		if err != nil {
			return nil, fmt.Errorf("%w: required_date must be YYYY-MM-DD", ErrInvalidInput)
		}
		requiredDate = parsed
	}

	product, err := s.store.GetProductByID(ctx, s.companyID, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	quotations, err := s.store.ListQuotationsByProduct(ctx, s.companyID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if len(quotations) == 0 {
		return nil, ErrNoQuotations
	}

	destination := utils.NormalizeState(req.DeliveryLocation)
	qty := decimal.NewFromInt(int64(req.OrderQty))

	candidates := make([]candidate, 0, len(quotations))
	for _, q := range quotations {
		interstate := utils.NormalizeState(q.Vendor.State) != destination

		adjustedDelivery := q.DeliveryPrice
		if interstate {
			adjustedDelivery = q.DeliveryPrice.Mul(interstateSurcharge)
		}

		deliveryPerUnit := adjustedDelivery.Div(qty)
		totalCostPerUnit := q.ProductPrice.Add(deliveryPerUnit)
		totalOrderCost := totalCostPerUnit.Mul(qty)

		score := totalOrderCost.InexactFloat64() +
			totalCostPerUnit.InexactFloat64() +
			float64(q.LeadTimeDays)*0.01

		candidates = append(candidates, candidate{
			quotation:        q,
			isInterstate:     interstate,
			adjustedDelivery: adjustedDelivery,
			totalCostPerUnit: totalCostPerUnit,
			totalOrderCost:   totalOrderCost,
			score:            score,
		})
	}

	// Stable: full ties keep input order.
	sort.SliceStable(candidates, func(i, j int) bool {
		if cmp := candidates[i].totalOrderCost.Cmp(candidates[j].totalOrderCost); cmp != 0 {
			return cmp < 0
		}
		if cmp := candidates[i].totalCostPerUnit.Cmp(candidates[j].totalCostPerUnit); cmp != 0 {
			return cmp < 0
		}
		return candidates[i].quotation.LeadTimeDays < candidates[j].quotation.LeadTimeDays
	})

	now := time.Now()
	order := models.OrderRequest{
		CompanyID:        s.companyID,
		ProductID:        product.ID,
		OrderQty:         req.OrderQty,
		DeliveryLocation: req.DeliveryLocation,
		RequiredDate:     requiredDate,
		CreatedAt:        now,
	}

	results := make([]models.ComparisonResult, len(candidates))
	for i, cand := range candidates {
		results[i] = models.ComparisonResult{
			VendorID:         cand.quotation.VendorID,
			QuotationID:      cand.quotation.ID,
			TotalCostPerUnit: cand.totalCostPerUnit.Round(2),
			TotalOrderCost:   cand.totalOrderCost.Round(2),
			Score:            cand.score,
			Rank:             i + 1,
			CreatedAt:        now,
		}
	}

	if err := s.store.CreateComparison(ctx, &order, results); err != nil {
		utils.LogError(utils.GetLogger(), "compare_service", "CompareVendors", "store.CreateComparison", req, err)
		return nil, err
	}

	rows := make([]models.ComparisonRow, len(candidates))
	for i, cand := range candidates {
		rows[i] = models.ComparisonRow{
			Rank:                  i + 1,
			VendorID:              cand.quotation.VendorID,
			VendorName:            cand.quotation.Vendor.Name,
			VendorCity:            cand.quotation.Vendor.City,
			VendorState:           cand.quotation.Vendor.State,
			QuotationID:           cand.quotation.ID,
			ProductPrice:          cand.quotation.ProductPrice,
			DeliveryPrice:         cand.quotation.DeliveryPrice,
			IsInterstate:          cand.isInterstate,
			BaseDeliveryPrice:     cand.quotation.DeliveryPrice,
			AdjustedDeliveryPrice: cand.adjustedDelivery,
			TotalCostPerUnit:      cand.totalCostPerUnit.Round(2),
			TotalOrderCost:        cand.totalOrderCost.Round(2),
			Score:                 cand.score,
			LeadTimeDays:          cand.quotation.LeadTimeDays,
			GradeSpec:             cand.quotation.GradeSpec,
		}
	}

	return &models.CompareResponse{
		OrderRequestID:   order.ID,
		ProductName:      product.Name,
		OrderQty:         req.OrderQty,
		DeliveryLocation: req.DeliveryLocation,
		Comparisons:      rows,
	}, nil
}
