// Development seeding tool: creates the demo company, vendors, products,
// quotations and one login user. Refuses to touch a database that already
// holds a company unless -force is given.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"

	"vendorcompare/models"
	"vendorcompare/storage"
	"vendorcompare/utils"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func main() {
	force := flag.Bool("force", false, "Seed even if companies already exist")
	flag.Parse()

	db := storage.InitGormDB()

	var count int64
	if err := db.Model(&models.Company{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count companies: %v", err)
	}
	if count > 0 && !*force {
		fmt.Fprintln(os.Stderr, "Database already seeded (use -force to seed anyway)")
		os.Exit(1)
	}

	fmt.Println("Creating seed data...")

	company := models.Company{
		Name:         "Plastic Manufacturing Co.",
		IndustryType: "Plastic Manufacturing",
		Address:      "Industrial Area, Andhra Pradesh, India",
		ContactEmail: "contact@plasticmfg.com",
	}
	if err := db.Create(&company).Error; err != nil {
		log.Fatalf("Failed to create company: %v", err)
	}
	fmt.Printf("Created company: %s\n", company.Name)

	rating := func(v float64) *float64 { return &v }
	vendors := []models.Vendor{
		{CompanyID: company.ID, Name: "Chennai Polymers Pvt Ltd", City: "Chennai", State: "Tamil Nadu", Rating: rating(4.5), Contact: "+91-9876543210"},
		{CompanyID: company.ID, Name: "Delhi Resin Suppliers", City: "Delhi", State: "Delhi", Rating: rating(4.2), Contact: "+91-9876543211"},
		{CompanyID: company.ID, Name: "Mumbai Materials Ltd", City: "Mumbai", State: "Maharashtra", Rating: rating(4.7), Contact: "+91-9876543212"},
	}
	if err := db.Create(&vendors).Error; err != nil {
		log.Fatalf("Failed to create vendors: %v", err)
	}
	fmt.Printf("Created %d vendors\n", len(vendors))

	unitPrice1 := money("100.00")
	unitPrice2 := money("85.00")
	products := []models.Product{
		{CompanyID: company.ID, Name: "PP Granules", Category: "Raw Material", GradeSpec: "Grade A - High Impact", UnitType: "kg", UnitPrice: &unitPrice1},
		{CompanyID: company.ID, Name: "PVC Resin", Category: "Raw Material", GradeSpec: "Grade B - Standard", UnitType: "kg", UnitPrice: &unitPrice2},
	}
	if err := db.Create(&products).Error; err != nil {
		log.Fatalf("Failed to create products: %v", err)
	}
	fmt.Printf("Created %d products\n", len(products))

	quotations := []models.Quotation{
		{VendorID: vendors[0].ID, ProductID: products[0].ID, ProductPrice: money("120.00"), DeliveryPrice: money("30.00"), GradeSpec: "Grade A - High Impact", LeadTimeDays: 5},
		{VendorID: vendors[1].ID, ProductID: products[0].ID, ProductPrice: money("90.00"), DeliveryPrice: money("80.00"), GradeSpec: "Grade A - High Impact", LeadTimeDays: 7},
		{VendorID: vendors[2].ID, ProductID: products[0].ID, ProductPrice: money("110.00"), DeliveryPrice: money("50.00"), GradeSpec: "Grade A - High Impact", LeadTimeDays: 4},
		{VendorID: vendors[0].ID, ProductID: products[1].ID, ProductPrice: money("95.00"), DeliveryPrice: money("25.00"), GradeSpec: "Grade B - Standard", LeadTimeDays: 6},
		{VendorID: vendors[2].ID, ProductID: products[1].ID, ProductPrice: money("88.00"), DeliveryPrice: money("40.00"), GradeSpec: "Grade B - Standard", LeadTimeDays: 3},
	}
	if err := db.Create(&quotations).Error; err != nil {
		log.Fatalf("Failed to create quotations: %v", err)
	}
	fmt.Printf("Created %d quotations\n", len(quotations))

	password := os.Getenv("SEED_USER_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	user := models.User{
		Email:     "admin@plasticmfg.com",
		Password:  hash,
		FirstName: "Admin",
		LastName:  "User",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	fmt.Printf("Created user: %s\n", user.Email)

	fmt.Println("Seed data created successfully")
}
