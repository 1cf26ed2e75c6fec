package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"vendorcompare/models"
	"vendorcompare/repository"
	"vendorcompare/services"
)

const testCompanyID uint = 1

func newTestRouter(store *repository.MemoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewCompareService(store, testCompanyID)
	r := gin.New()
	r.POST("/api/compare", CompareVendors(svc))
	r.GET("/api/orders/:id/results", GetComparisonResults(store, testCompanyID))
	return r
}

func seedStore(t *testing.T) *repository.MemoryStore {
	t.Helper()
	store := repository.NewMemoryStore()
	store.AddVendor(models.Vendor{ID: 1, CompanyID: testCompanyID, Name: "Chennai Polymers Pvt Ltd", City: "Chennai", State: "Tamil Nadu"})
	store.AddVendor(models.Vendor{ID: 2, CompanyID: testCompanyID, Name: "Delhi Resin Suppliers", City: "Delhi", State: "Delhi"})
	store.AddProduct(models.Product{ID: 1, CompanyID: testCompanyID, Name: "PP Granules", UnitType: "kg"})
	store.AddProduct(models.Product{ID: 2, CompanyID: testCompanyID, Name: "PVC Resin", UnitType: "kg"})
	store.AddQuotation(models.Quotation{ID: 1, VendorID: 1, ProductID: 1, ProductPrice: decimal.RequireFromString("120.00"), DeliveryPrice: decimal.RequireFromString("30.00"), LeadTimeDays: 5})
	store.AddQuotation(models.Quotation{ID: 2, VendorID: 2, ProductID: 1, ProductPrice: decimal.RequireFromString("90.00"), DeliveryPrice: decimal.RequireFromString("80.00"), LeadTimeDays: 7})
	return store
}

func postCompare(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/compare", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCompareEndpoint_Success(t *testing.T) {
	store := seedStore(t)
	r := newTestRouter(store)

	w := postCompare(t, r, `{"product_id":1,"order_qty":100,"delivery_location":"Andhra Pradesh"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp models.CompareResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.ProductName != "PP Granules" || resp.OrderQty != 100 {
		t.Errorf("response header fields: %+v", resp)
	}
	if len(resp.Comparisons) != 2 {
		t.Fatalf("comparisons = %d, want 2", len(resp.Comparisons))
	}
	for i, row := range resp.Comparisons {
		if row.Rank != i+1 {
			t.Errorf("comparisons not ordered by rank: position %d has rank %d", i, row.Rank)
		}
	}
	// Both vendors are interstate for Andhra Pradesh; Delhi's 9096 total beats
	// Chennai's 12036.
	if resp.Comparisons[0].VendorName != "Delhi Resin Suppliers" {
		t.Errorf("rank 1 vendor = %q", resp.Comparisons[0].VendorName)
	}
	if !resp.Comparisons[0].TotalOrderCost.Equal(decimal.RequireFromString("9096.00")) {
		t.Errorf("rank 1 total = %s", resp.Comparisons[0].TotalOrderCost)
	}
	if resp.OrderRequestID == 0 {
		t.Error("order_request_id missing from response")
	}
}

func TestCompareEndpoint_MalformedBody(t *testing.T) {
	r := newTestRouter(seedStore(t))

	w := postCompare(t, r, `{"product_id": `)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCompareEndpoint_MissingFields(t *testing.T) {
	r := newTestRouter(seedStore(t))

	cases := []string{
		`{}`,
		`{"product_id":1}`,
		`{"product_id":1,"order_qty":0,"delivery_location":"Delhi"}`,
		`{"product_id":1,"order_qty":-3,"delivery_location":"Delhi"}`,
	}
	for _, body := range cases {
		if w := postCompare(t, r, body); w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestCompareEndpoint_ProductNotFound(t *testing.T) {
	r := newTestRouter(seedStore(t))

	w := postCompare(t, r, `{"product_id":999,"order_qty":10,"delivery_location":"Delhi"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad error body: %v", err)
	}
	if body["error"] != "Product not found" {
		t.Errorf("error = %q, want %q", body["error"], "Product not found")
	}
}

func TestCompareEndpoint_NoQuotations(t *testing.T) {
	r := newTestRouter(seedStore(t))

	// Product 2 exists but has no quotations.
	w := postCompare(t, r, `{"product_id":2,"order_qty":10,"delivery_location":"Delhi"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad error body: %v", err)
	}
	if body["error"] != "no quotations available" {
		t.Errorf("error = %q, want %q", body["error"], "no quotations available")
	}
}

func TestComparisonResultsEndpoint(t *testing.T) {
	store := seedStore(t)
	r := newTestRouter(store)

	w := postCompare(t, r, `{"product_id":1,"order_qty":100,"delivery_location":"Andhra Pradesh"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("compare status = %d", w.Code)
	}
	var resp models.CompareResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad compare body: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/1/results", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("results status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var rows []models.ComparisonResultRow
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("bad results body: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	for i, row := range rows {
		if row.Rank != i+1 {
			t.Errorf("results not ordered by rank at %d: rank %d", i, row.Rank)
		}
		if row.VendorName == "" {
			t.Errorf("rank %d: vendor name missing", row.Rank)
		}
	}
	if !rows[0].TotalOrderCost.Equal(resp.Comparisons[0].TotalOrderCost) {
		t.Errorf("persisted total %s != response total %s", rows[0].TotalOrderCost, resp.Comparisons[0].TotalOrderCost)
	}
}

func TestComparisonResultsEndpoint_NotFound(t *testing.T) {
	r := newTestRouter(seedStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/orders/42/results", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad error body: %v", err)
	}
	if body["error"] != "Order request not found" {
		t.Errorf("error = %q", body["error"])
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/abc/results", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric id: status = %d, want 400", rec.Code)
	}
}
