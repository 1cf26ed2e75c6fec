package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"vendorcompare/models"
	"vendorcompare/repository"
)

const testCompanyID uint = 1

func money(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

// seedScenario loads the three-vendor PP Granules data set: Chennai (Tamil
// Nadu, 120/30, lead 5), Delhi (Delhi, 90/80, lead 7), Mumbai (Maharashtra,
// 110/50, lead 4).
func seedScenario(t *testing.T) *repository.MemoryStore {
	t.Helper()
	store := repository.NewMemoryStore()

	store.AddVendor(models.Vendor{ID: 101, CompanyID: testCompanyID, Name: "Chennai Polymers Pvt Ltd", City: "Chennai", State: "Tamil Nadu"})
	store.AddVendor(models.Vendor{ID: 102, CompanyID: testCompanyID, Name: "Delhi Resin Suppliers", City: "Delhi", State: "Delhi"})
	store.AddVendor(models.Vendor{ID: 103, CompanyID: testCompanyID, Name: "Mumbai Materials Ltd", City: "Mumbai", State: "Maharashtra"})

	store.AddProduct(models.Product{ID: 11, CompanyID: testCompanyID, Name: "PP Granules", GradeSpec: "Grade A - High Impact", UnitType: "kg"})

	store.AddQuotation(models.Quotation{ID: 1001, VendorID: 101, ProductID: 11, ProductPrice: money(t, "120.00"), DeliveryPrice: money(t, "30.00"), GradeSpec: "Grade A", LeadTimeDays: 5})
	store.AddQuotation(models.Quotation{ID: 1002, VendorID: 102, ProductID: 11, ProductPrice: money(t, "90.00"), DeliveryPrice: money(t, "80.00"), GradeSpec: "Grade A", LeadTimeDays: 7})
	store.AddQuotation(models.Quotation{ID: 1003, VendorID: 103, ProductID: 11, ProductPrice: money(t, "110.00"), DeliveryPrice: money(t, "50.00"), GradeSpec: "Grade A", LeadTimeDays: 4})

	return store
}

func TestCompareVendors_RanksByTotalOrderCost(t *testing.T) {
	store := seedScenario(t)
	svc := NewCompareService(store, testCompanyID)

	resp, err := svc.CompareVendors(context.Background(), models.CompareRequest{
		ProductID:        11,
		OrderQty:         100,
		DeliveryLocation: "Andhra Pradesh",
	})
	if err != nil {
		t.Fatalf("CompareVendors failed: %v", err)
	}

	if len(resp.Comparisons) != 3 {
		t.Fatalf("expected 3 comparisons, got %d", len(resp.Comparisons))
	}
	if resp.ProductName != "PP Granules" {
		t.Errorf("product name = %q", resp.ProductName)
	}
	if resp.OrderRequestID == 0 {
		t.Error("order_request_id not set")
	}

	// All vendors are out of state: delivery surcharged by 1.20 before the
	// per-unit split. Cheapest total landed cost wins.
	expected := []struct {
		vendorName     string
		totalPerUnit   string
		totalOrderCost string
		leadTimeDays   int
	}{
		{"Delhi Resin Suppliers", "90.96", "9096.00", 7},
		{"Mumbai Materials Ltd", "110.60", "11060.00", 4},
		{"Chennai Polymers Pvt Ltd", "120.36", "12036.00", 5},
	}

	for i, want := range expected {
		got := resp.Comparisons[i]
		if got.Rank != i+1 {
			t.Errorf("row %d: rank = %d, want %d", i, got.Rank, i+1)
		}
		if got.VendorName != want.vendorName {
			t.Errorf("rank %d: vendor = %q, want %q", i+1, got.VendorName, want.vendorName)
		}
		if !got.TotalCostPerUnit.Equal(money(t, want.totalPerUnit)) {
			t.Errorf("rank %d: total_cost_per_unit = %s, want %s", i+1, got.TotalCostPerUnit, want.totalPerUnit)
		}
		if !got.TotalOrderCost.Equal(money(t, want.totalOrderCost)) {
			t.Errorf("rank %d: total_order_cost = %s, want %s", i+1, got.TotalOrderCost, want.totalOrderCost)
		}
		if got.LeadTimeDays != want.leadTimeDays {
			t.Errorf("rank %d: lead_time_days = %d, want %d", i+1, got.LeadTimeDays, want.leadTimeDays)
		}
		if !got.IsInterstate {
			t.Errorf("rank %d: expected interstate", i+1)
		}
	}
}

func TestCompareVendors_InterstateSurchargeExact(t *testing.T) {
	store := seedScenario(t)
	svc := NewCompareService(store, testCompanyID)

	resp, err := svc.CompareVendors(context.Background(), models.CompareRequest{
		ProductID:        11,
		OrderQty:         10,
		DeliveryLocation: "Delhi",
	})
	if err != nil {
		t.Fatalf("CompareVendors failed: %v", err)
	}

	for _, row := range resp.Comparisons {
		switch row.VendorName {
		case "Chennai Polymers Pvt Ltd":
			// Tamil Nadu vendor delivering to Delhi: 30.00 * 1.20 = 36.00.
			if !row.IsInterstate {
				t.Error("Tamil Nadu -> Delhi should be interstate")
			}
			if !row.AdjustedDeliveryPrice.Equal(money(t, "36.00")) {
				t.Errorf("adjusted_delivery_price = %s, want 36.00", row.AdjustedDeliveryPrice)
			}
			if !row.BaseDeliveryPrice.Equal(money(t, "30.00")) {
				t.Errorf("base_delivery_price = %s, want 30.00", row.BaseDeliveryPrice)
			}
		case "Delhi Resin Suppliers":
			if row.IsInterstate {
				t.Error("Delhi -> Delhi should not be interstate")
			}
			if !row.AdjustedDeliveryPrice.Equal(row.BaseDeliveryPrice) {
				t.Errorf("same-state delivery price adjusted: %s != %s", row.AdjustedDeliveryPrice, row.BaseDeliveryPrice)
			}
		}
	}
}

func TestCompareVendors_AbbreviatedDestinationMatchesState(t *testing.T) {
	store := seedScenario(t)
	svc := NewCompareService(store, testCompanyID)

	// "dl" expands to delhi; the Delhi vendor must not be surcharged.
	resp, err := svc.CompareVendors(context.Background(), models.CompareRequest{
		ProductID:        11,
		OrderQty:         10,
		DeliveryLocation: "dl",
	})
	if err != nil {
		t.Fatalf("CompareVendors failed: %v", err)
	}

	for _, row := range resp.Comparisons {
		if row.VendorName == "Delhi Resin Suppliers" && row.IsInterstate {
			t.Error("abbreviated destination should match vendor state Delhi")
		}
	}
}

func TestCompareVendors_ScoreIsInformationalSummary(t *testing.T) {
	store := seedScenario(t)
	svc := NewCompareService(store, testCompanyID)

	resp, err := svc.CompareVendors(context.Background(), models.CompareRequest{
		ProductID:        11,
		OrderQty:         100,
		DeliveryLocation: "Andhra Pradesh",
	})
	if err != nil {
		t.Fatalf("CompareVendors failed: %v", err)
	}

	for _, row := range resp.Comparisons {
		want := row.TotalOrderCost.InexactFloat64() +
			row.TotalCostPerUnit.InexactFloat64() +
			float64(row.LeadTimeDays)*0.01
		if math.Abs(row.Score-want) > 1e-6 {
			t.Errorf("rank %d: score = %v, want %v", row.Rank, row.Score, want)
		}
	}
}

func TestCompareVendors_LeadTimeBreaksCostTies(t *testing.T) {
	store := repository.NewMemoryStore()
	store.AddVendor(models.Vendor{ID: 1, CompanyID: testCompanyID, Name: "Slow Vendor", State: "Kerala"})
	store.AddVendor(models.Vendor{ID: 2, CompanyID: testCompanyID, Name: "Fast Vendor", State: "Kerala"})
	store.AddProduct(models.Product{ID: 5, CompanyID: testCompanyID, Name: "Widget"})
	store.AddQuotation(models.Quotation{ID: 1, VendorID: 1, ProductID: 5, ProductPrice: money(t, "10.00"), DeliveryPrice: money(t, "5.00"), LeadTimeDays: 9})
	store.AddQuotation(models.Quotation{ID: 2, VendorID: 2, ProductID: 5, ProductPrice: money(t, "10.00"), DeliveryPrice: money(t, "5.00"), LeadTimeDays: 2})

	svc := NewCompareService(store, testCompanyID)
	resp, err := svc.CompareVendors(context.Background(), models.CompareRequest{
		ProductID:        5,
		OrderQty:         10,
		DeliveryLocation: "Kerala",
	})
	if err != nil {
		t.Fatalf("CompareVendors failed: %v", err)
	}

	if resp.Comparisons[0].VendorName != "Fast Vendor" {
		t.Errorf("rank 1 = %q, want Fast Vendor (shorter lead time)", resp.Comparisons[0].VendorName)
	}
}

func TestCompareVendors_FullTieKeepsInputOrder(t *testing.T) {
	store := repository.NewMemoryStore()
	store.AddVendor(models.Vendor{ID: 1, CompanyID: testCompanyID, Name: "First In", State: "Goa"})
	store.AddVendor(models.Vendor{ID: 2, CompanyID: testCompanyID, Name: "Second In", State: "Goa"})
	store.AddProduct(models.Product{ID: 5, CompanyID: testCompanyID, Name: "Widget"})
	store.AddQuotation(models.Quotation{ID: 1, VendorID: 1, ProductID: 5, ProductPrice: money(t, "10.00"), DeliveryPrice: money(t, "5.00"), LeadTimeDays: 4})
	store.AddQuotation(models.Quotation{ID: 2, VendorID: 2, ProductID: 5, ProductPrice: money(t, "10.00"), DeliveryPrice: money(t, "5.00"), LeadTimeDays: 4})

	svc := NewCompareService(store, testCompanyID)
	resp, err := svc.CompareVendors(context.Background(), models.CompareRequest{
		ProductID:        5,
		OrderQty:         10,
		DeliveryLocation: "Goa",
	})
	if err != nil {
		t.Fatalf("CompareVendors failed: %v", err)
	}

	if resp.Comparisons[0].VendorName != "First In" || resp.Comparisons[1].VendorName != "Second In" {
		t.Errorf("full tie reordered candidates: %q, %q",
			resp.Comparisons[0].VendorName, resp.Comparisons[1].VendorName)
	}
}

func TestCompareVendors_ProductNotFound(t *testing.T) {
	store := seedScenario(t)
	svc := NewCompareService(store, testCompanyID)

	_, err := svc.CompareVendors(context.Background(), models.CompareRequest{
		ProductID:        999,
		OrderQty:         10,
		DeliveryLocation: "Delhi",
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
	if store.OrderCount() != 0 {
		t.Error("order request created despite validation failure")
	}
}

func TestCompareVendors_OtherCompanyProductNotFound(t *testing.T) {
	store := seedScenario(t)
	store.AddProduct(models.Product{ID: 77, CompanyID: 2, Name: "Foreign Product"})
	svc := NewCompareService(store, testCompanyID)

	_, err := svc.CompareVendors(context.Background(), models.CompareRequest{
		ProductID:        77,
		OrderQty:         10,
		DeliveryLocation: "Delhi",
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound for out-of-company product", err)
	}
}

func TestCompareVendors_NoQuotations(t *testing.T) {
	store := seedScenario(t)
	store.AddProduct(models.Product{ID: 12, CompanyID: testCompanyID, Name: "PVC Resin"})
	svc := NewCompareService(store, testCompanyID)

	_, err := svc.CompareVendors(context.Background(), models.CompareRequest{
		ProductID:        12,
		OrderQty:         10,
		DeliveryLocation: "Delhi",
	})
	if !errors.Is(err, ErrNoQuotations) {
		t.Fatalf("err = %v, want ErrNoQuotations", err)
	}
	if store.OrderCount() != 0 {
		t.Error("order request created despite missing quotations")
	}
}

func TestCompareVendors_ExcludesOtherCompanyVendors(t *testing.T) {
	store := seedScenario(t)
	store.AddVendor(models.Vendor{ID: 201, CompanyID: 2, Name: "Foreign Vendor", State: "Delhi"})
	store.AddQuotation(models.Quotation{ID: 2001, VendorID: 201, ProductID: 11, ProductPrice: money(t, "1.00"), DeliveryPrice: money(t, "1.00"), LeadTimeDays: 1})

	svc := NewCompareService(store, testCompanyID)
	resp, err := svc.CompareVendors(context.Background(), models.CompareRequest{
		ProductID:        11,
		OrderQty:         100,
		DeliveryLocation: "Delhi",
	})
	if err != nil {
		t.Fatalf("CompareVendors failed: %v", err)
	}
	if len(resp.Comparisons) != 3 {
		t.Fatalf("expected 3 comparisons (foreign vendor excluded), got %d", len(resp.Comparisons))
	}
	for _, row := range resp.Comparisons {
		if row.VendorName == "Foreign Vendor" {
			t.Error("quotation from another company's vendor was ranked")
		}
	}
}

func TestCompareVendors_ValidationFailures(t *testing.T) {
	store := seedScenario(t)
	svc := NewCompareService(store, testCompanyID)

	cases := []struct {
		name string
		req  models.CompareRequest
	}{
		{"zero qty", models.CompareRequest{ProductID: 11, OrderQty: 0, DeliveryLocation: "Delhi"}},
		{"negative qty", models.CompareRequest{ProductID: 11, OrderQty: -5, DeliveryLocation: "Delhi"}},
		{"blank location", models.CompareRequest{ProductID: 11, OrderQty: 10, DeliveryLocation: "   "}},
		{"bad date", models.CompareRequest{ProductID: 11, OrderQty: 10, DeliveryLocation: "Delhi", RequiredDate: "31-12-2025"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CompareVendors(context.Background(), tc.req)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
	if store.OrderCount() != 0 {
		t.Error("order request created despite validation failures")
	}
}

func TestCompareVendors_PersistsRankedRun(t *testing.T) {
	store := seedScenario(t)
	svc := NewCompareService(store, testCompanyID)

	resp, err := svc.CompareVendors(context.Background(), models.CompareRequest{
		ProductID:        11,
		OrderQty:         100,
		DeliveryLocation: "Andhra Pradesh",
		RequiredDate:     "2026-01-15",
	})
	if err != nil {
		t.Fatalf("CompareVendors failed: %v", err)
	}

	order, err := store.GetOrderRequest(context.Background(), testCompanyID, resp.OrderRequestID)
	if err != nil {
		t.Fatalf("order request not persisted: %v", err)
	}
	if order.OrderQty != 100 || order.DeliveryLocation != "Andhra Pradesh" {
		t.Errorf("persisted order = qty %d location %q", order.OrderQty, order.DeliveryLocation)
	}
	if order.RequiredDate.Format("2006-01-02") != "2026-01-15" {
		t.Errorf("required_date = %s", order.RequiredDate.Format("2006-01-02"))
	}

	results, err := store.ListComparisonResults(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("ListComparisonResults failed: %v", err)
	}
	if len(results) != len(resp.Comparisons) {
		t.Fatalf("persisted %d results, response had %d", len(results), len(resp.Comparisons))
	}

	qty := decimal.NewFromInt(100)
	for i, r := range results {
		if r.Rank != i+1 {
			t.Errorf("persisted rank sequence broken at %d: rank %d", i, r.Rank)
		}
		// total_order_cost must equal total_cost_per_unit * qty to currency
		// rounding.
		diff := r.TotalOrderCost.Sub(r.TotalCostPerUnit.Mul(qty)).Abs()
		if diff.GreaterThan(money(t, "0.01").Mul(qty)) {
			t.Errorf("rank %d: total_order_cost %s vs per-unit %s * 100", r.Rank, r.TotalOrderCost, r.TotalCostPerUnit)
		}
		if !r.TotalOrderCost.Equal(resp.Comparisons[i].TotalOrderCost) {
			t.Errorf("rank %d: persisted total %s != response total %s", r.Rank, r.TotalOrderCost, resp.Comparisons[i].TotalOrderCost)
		}
	}
}

func TestCompareVendors_DefaultRequiredDate(t *testing.T) {
	store := seedScenario(t)
	svc := NewCompareService(store, testCompanyID)

	resp, err := svc.CompareVendors(context.Background(), models.CompareRequest{
		ProductID:        11,
		OrderQty:         10,
		DeliveryLocation: "Delhi",
	})
	if err != nil {
		t.Fatalf("CompareVendors failed: %v", err)
	}

	order, err := store.GetOrderRequest(context.Background(), testCompanyID, resp.OrderRequestID)
	if err != nil {
		t.Fatalf("order request not persisted: %v", err)
	}
	if order.RequiredDate.Format("2006-01-02") != "2025-12-31" {
		t.Errorf("default required_date = %s, want 2025-12-31", order.RequiredDate.Format("2006-01-02"))
	}
}

func TestCompareVendors_PartialWriteLeavesNothing(t *testing.T) {
	store := seedScenario(t)
	store.FailResultsAfter = 2
	svc := NewCompareService(store, testCompanyID)

	_, err := svc.CompareVendors(context.Background(), models.CompareRequest{
		ProductID:        11,
		OrderQty:         100,
		DeliveryLocation: "Andhra Pradesh",
	})
	if err == nil {
		t.Fatal("expected persistence failure")
	}
	if store.OrderCount() != 0 {
		t.Errorf("orphan order request left behind: %d orders", store.OrderCount())
	}
	if store.ResultCount() != 0 {
		t.Errorf("partial comparison rows left behind: %d rows", store.ResultCount())
	}
}
