package storage

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vendorcompare/models"
)

var gormDB *gorm.DB

// InitGormDB initializes the GORM database connection and migrates the
// entity tables.
func InitGormDB() *gorm.DB {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Kolkata",
		host, user, password, dbname, port)

	var err error
	gormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database with GORM:", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := gormDB.AutoMigrate(
		&models.Company{},
		&models.Vendor{},
		&models.Product{},
		&models.Quotation{},
		&models.OrderRequest{},
		&models.ComparisonResult{},
		&models.User{},
		&models.Session{},
	); err != nil {
		log.Fatal("Failed to migrate tables:", err)
	}

	return gormDB
}

// GetGormDB returns the GORM database instance
func GetGormDB() *gorm.DB {
	return gormDB
}
