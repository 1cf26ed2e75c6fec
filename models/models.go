package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company represents the governing company. The system runs in single-tenant
// mode: every vendor, product and comparison is scoped to one company row,
// selected by GOVERNING_COMPANY_ID at startup.
type Company struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	IndustryType string    `gorm:"column:industry_type" json:"industry_type"`
	Address      string    `gorm:"column:address" json:"address"`
	ContactEmail string    `gorm:"column:contact_email" json:"contact_email"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

// Vendor is a supplier submitting quotations. State is the geographic
// attribute the interstate surcharge decision is made on.
type Vendor struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	CompanyID uint      `gorm:"column:company_id;not null;index" json:"company_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	City      string    `gorm:"column:city" json:"city"`
	State     string    `gorm:"column:state" json:"state"`
	Rating    *float64  `gorm:"column:rating" json:"rating,omitempty"`
	Contact   string    `gorm:"column:contact" json:"contact,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Vendor) TableName() string {
	return "vendors"
}

type Product struct {
	ID        uint             `gorm:"primaryKey;column:id" json:"id"`
	CompanyID uint             `gorm:"column:company_id;not null;index" json:"company_id"`
	Name      string           `gorm:"column:name;not null" json:"name"`
	Category  string           `gorm:"column:category" json:"category"`
	GradeSpec string           `gorm:"column:grade_spec" json:"grade_spec"`
	UnitType  string           `gorm:"column:unit_type" json:"unit_type"`
	UnitPrice *decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2)" json:"unit_price,omitempty"`
	CreatedAt time.Time        `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time        `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// Quotation is one vendor's offer for one product. No uniqueness is enforced
// per vendor+product; the engine treats every row for a product as a candidate.
type Quotation struct {
	ID            uint            `gorm:"primaryKey;column:id" json:"id"`
	VendorID      uint            `gorm:"column:vendor_id;not null;index" json:"vendor_id"`
	ProductID     uint            `gorm:"column:product_id;not null;index" json:"product_id"`
	ProductPrice  decimal.Decimal `gorm:"column:product_price;type:numeric(10,2);not null" json:"product_price"`
	DeliveryPrice decimal.Decimal `gorm:"column:delivery_price;type:numeric(10,2);not null" json:"delivery_price"`
	GradeSpec     string          `gorm:"column:grade_spec" json:"grade_spec"`
	LeadTimeDays  int             `gorm:"column:lead_time_days;not null" json:"lead_time_days"`
	CreatedAt     time.Time       `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;not null" json:"updated_at"`

	Vendor Vendor `gorm:"foreignKey:VendorID" json:"-"`
}

func (Quotation) TableName() string {
	return "quotations"
}

// OrderRequest is the immutable audit record of one comparison invocation.
// Rows are created once and never updated.
type OrderRequest struct {
	ID               uint      `gorm:"primaryKey;column:id" json:"id"`
	CompanyID        uint      `gorm:"column:company_id;not null;index" json:"company_id"`
	ProductID        uint      `gorm:"column:product_id;not null;index" json:"product_id"`
	OrderQty         int       `gorm:"column:order_qty;not null" json:"order_qty"`
	DeliveryLocation string    `gorm:"column:delivery_location;not null" json:"delivery_location"`
	RequiredDate     time.Time `gorm:"column:required_date;type:date" json:"required_date"`
	CreatedAt        time.Time `gorm:"column:created_at;not null" json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (OrderRequest) TableName() string {
	return "order_requests"
}

// ComparisonResult is one ranked candidate of one comparison run. Rank values
// for a given order request are 1..N with no gaps. score is an informational
// summary only; rank comes from the engine's three-key sort, never from score.
type ComparisonResult struct {
	ID               uint            `gorm:"primaryKey;column:id" json:"id"`
	OrderRequestID   uint            `gorm:"column:order_request_id;not null;index" json:"order_request_id"`
	VendorID         uint            `gorm:"column:vendor_id;not null" json:"vendor_id"`
	QuotationID      uint            `gorm:"column:quotation_id;not null" json:"quotation_id"`
	TotalCostPerUnit decimal.Decimal `gorm:"column:total_cost_per_unit;type:numeric(10,2);not null" json:"total_cost_per_unit"`
	TotalOrderCost   decimal.Decimal `gorm:"column:total_order_cost;type:numeric(12,2);not null" json:"total_order_cost"`
	Score            float64         `gorm:"column:score;not null" json:"score"`
	Rank             int             `gorm:"column:rank;not null" json:"rank"`
	CreatedAt        time.Time       `gorm:"column:created_at;not null" json:"created_at"`

	Vendor    Vendor    `gorm:"foreignKey:VendorID" json:"-"`
	Quotation Quotation `gorm:"foreignKey:QuotationID" json:"-"`
}

func (ComparisonResult) TableName() string {
	return "comparison_results"
}

// User represents the users table. Passwords are bcrypt hashes.
type User struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Email     string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password;not null" json:"-"`
	FirstName string    `gorm:"column:first_name" json:"first_name"`
	LastName  string    `gorm:"column:last_name" json:"last_name"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Session represents the session table (managed through database/sql, see
// storage/db.go).
type Session struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	UserID    int       `gorm:"column:user_id;not null" json:"user_id"`
	SessionID string    `gorm:"column:session_id;uniqueIndex;not null" json:"session_id"`
	HostName  string    `gorm:"column:host_name" json:"host_name"`
	IPAddress string    `gorm:"column:ip_address" json:"ip_address"`
	Timestamp time.Time `gorm:"column:timestp;not null" json:"timestp"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
}

func (Session) TableName() string {
	return "sessions"
}
