package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"vendorcompare/models"
)

// MemoryStore is an in-memory Store used by tests and as the engine's
// fake-store seam. Quotation iteration order is insertion order, mirroring
// the id-ordered reads of the gorm store.
type MemoryStore struct {
	mu sync.RWMutex

	products   map[uint]models.Product
	vendors    map[uint]models.Vendor
	quotations []models.Quotation
	orders     map[uint]models.OrderRequest
	results    map[uint][]models.ComparisonResult

	nextOrderID  uint
	nextResultID uint

	// FailResultsAfter, when > 0, makes CreateComparison fail once that many
	// result rows have been written, to exercise rollback behavior.
	FailResultsAfter int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:    make(map[uint]models.Product),
		vendors:     make(map[uint]models.Vendor),
		orders:      make(map[uint]models.OrderRequest),
		results:     make(map[uint][]models.ComparisonResult),
		nextOrderID: 1,
	}
}

func (s *MemoryStore) AddVendor(v models.Vendor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vendors[v.ID] = v
}

func (s *MemoryStore) AddProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *MemoryStore) AddQuotation(q models.Quotation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.vendors[q.VendorID]; ok {
		q.Vendor = v
	}
	s.quotations = append(s.quotations, q)
}

func (s *MemoryStore) GetProductByID(ctx context.Context, companyID, productID uint) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok || p.CompanyID != companyID {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) ListQuotationsByProduct(ctx context.Context, companyID, productID uint) ([]models.Quotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Quotation
	for _, q := range s.quotations {
		if q.ProductID != productID {
			continue
		}
		if q.Vendor.CompanyID != companyID {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (s *MemoryStore) CreateComparison(ctx context.Context, order *models.OrderRequest, results []models.ComparisonResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orderID := s.nextOrderID
	written := make([]models.ComparisonResult, 0, len(results))
	for i := range results {
		if s.FailResultsAfter > 0 && len(written) >= s.FailResultsAfter {
			// Transaction semantics: discard everything written so far.
			return errors.New("simulated write failure")
		}
		s.nextResultID++
		row := results[i]
		row.ID = s.nextResultID
		row.OrderRequestID = orderID
		written = append(written, row)
	}

	s.nextOrderID++
	order.ID = orderID
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	s.orders[orderID] = *order
	s.results[orderID] = written
	for i := range results {
		results[i].ID = written[i].ID
		results[i].OrderRequestID = orderID
	}
	return nil
}

func (s *MemoryStore) GetOrderRequest(ctx context.Context, companyID, orderID uint) (*models.OrderRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[orderID]
	if !ok || o.CompanyID != companyID {
		return nil, ErrNotFound
	}
	if p, ok := s.products[o.ProductID]; ok {
		o.Product = p
	}
	return &o, nil
}

func (s *MemoryStore) ListOrderRequests(ctx context.Context, companyID uint) ([]models.OrderRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.OrderRequest
	for _, o := range s.orders {
		if o.CompanyID != companyID {
			continue
		}
		if p, ok := s.products[o.ProductID]; ok {
			o.Product = p
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) ListComparisonResults(ctx context.Context, orderID uint) ([]models.ComparisonResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.results[orderID]
	out := make([]models.ComparisonResult, len(rows))
	copy(out, rows)
	for i := range out {
		if v, ok := s.vendors[out[i].VendorID]; ok {
			out[i].Vendor = v
		}
		for _, q := range s.quotations {
			if q.ID == out[i].QuotationID {
				out[i].Quotation = q
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

// OrderCount reports how many order requests exist, across all companies.
func (s *MemoryStore) OrderCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// ResultCount reports how many comparison result rows exist in total.
func (s *MemoryStore) ResultCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, rows := range s.results {
		n += len(rows)
	}
	return n
}
