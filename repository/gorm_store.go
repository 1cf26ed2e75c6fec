package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vendorcompare/models"
)

// GormStore implements Store on a gorm-managed PostgreSQL database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetProductByID(ctx context.Context, companyID, productID uint) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", productID, companyID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *GormStore) ListQuotationsByProduct(ctx context.Context, companyID, productID uint) ([]models.Quotation, error) {
	var quotations []models.Quotation
	err := s.db.WithContext(ctx).
		Joins("JOIN vendors ON vendors.id = quotations.vendor_id").
		Where("quotations.product_id = ? AND vendors.company_id = ?", productID, companyID).
		Preload("Vendor").
		Order("quotations.id").
		Find(&quotations).Error
	if err != nil {
		return nil, err
	}
	return quotations, nil
}

// CreateComparison writes the order request and all result rows inside one
// transaction. A failure on any row rolls back everything, including the
// order request itself.
func (s *GormStore) CreateComparison(ctx context.Context, order *models.OrderRequest, results []models.ComparisonResult) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range results {
			results[i].OrderRequestID = order.ID
		}
		if err := tx.Create(&results).Error; err != nil {
			return err
		}
		return nil
	})
}

func (s *GormStore) GetOrderRequest(ctx context.Context, companyID, orderID uint) (*models.OrderRequest, error) {
	var order models.OrderRequest
	err := s.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", orderID, companyID).
		Preload("Product").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *GormStore) ListOrderRequests(ctx context.Context, companyID uint) ([]models.OrderRequest, error) {
	var orders []models.OrderRequest
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Preload("Product").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *GormStore) ListComparisonResults(ctx context.Context, orderID uint) ([]models.ComparisonResult, error) {
	var results []models.ComparisonResult
	err := s.db.WithContext(ctx).
		Where("order_request_id = ?", orderID).
		Preload("Vendor").
		Preload("Quotation").
		Order("rank").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
