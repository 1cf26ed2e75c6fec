package repository

import (
	"context"
	"errors"

	"vendorcompare/models"
)

// ErrNotFound is returned by lookup methods when no row matches.
var ErrNotFound = errors.New("record not found")

// Store is the narrow persistence capability set the comparison engine and
// its read side depend on. Keeping it this small lets the engine run against
// an in-memory implementation in tests.
type Store interface {
	// GetProductByID fetches a product scoped to the given company.
	GetProductByID(ctx context.Context, companyID, productID uint) (*models.Product, error)

	// ListQuotationsByProduct returns every quotation for the product whose
	// vendor belongs to the given company, each with Vendor populated.
	ListQuotationsByProduct(ctx context.Context, companyID, productID uint) ([]models.Quotation, error)

	// CreateComparison persists the order request and its result rows in one
	// transaction. Either all rows exist afterwards or none do; on error no
	// orphan order request may remain.
	CreateComparison(ctx context.Context, order *models.OrderRequest, results []models.ComparisonResult) error

	// GetOrderRequest fetches one order request scoped to the given company,
	// with Product populated.
	GetOrderRequest(ctx context.Context, companyID, orderID uint) (*models.OrderRequest, error)

	// ListOrderRequests returns the company's order requests, newest first.
	ListOrderRequests(ctx context.Context, companyID uint) ([]models.OrderRequest, error)

	// ListComparisonResults returns the persisted results of one run ordered
	// by rank, each with Vendor and Quotation populated.
	ListComparisonResults(ctx context.Context, orderID uint) ([]models.ComparisonResult, error)
}
