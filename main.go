// @title           Vendor Comparison API
// @version         1.0
// @description     Procurement backend - ranks vendor quotations for a prospective order by landed cost and lead time.

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "vendorcompare/docs"
	"vendorcompare/handlers"
	"vendorcompare/repository"
	"vendorcompare/services"
	"vendorcompare/storage"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:4200",
		"http://localhost:8080",
		"http://localhost:3000",
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Authorization", "Content-Type", "Content-Disposition",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

// governingCompanyID reads the single tenant the server is scoped to. Every
// read and write runs against this company; there is no per-request tenant.
func governingCompanyID() uint {
	raw := os.Getenv("GOVERNING_COMPANY_ID")
	if raw == "" {
		return 1
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		log.Fatalf("Invalid GOVERNING_COMPANY_ID: %s", raw)
	}
	return uint(id)
}

func main() {
	db := storage.InitDB()
	gormDB := storage.InitGormDB()

	companyID := governingCompanyID()
	store := repository.NewGormStore(gormDB)
	compareService := services.NewCompareService(store, companyID)

	// Daily maintenance: clear expired sessions.
	c := cron.New()
	_, err := c.AddFunc("50 11 * * *", func() {
		if err := storage.CleanupExpiredSessions(db); err != nil {
			log.Printf("Session cleanup failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule session cleanup cron job: %v", err)
	}
	c.Start()

	r := gin.Default()
	r.Use(cors.New(CORSConfig()))

	// ==================== AUTH & LOGIN ====================
	r.POST("/api/login", handlers.LoginHandler(db))
	r.POST("/api/logout", handlers.LogoutHandler(db))
	r.POST("/api/validate-session", handlers.ValidateSession(db))

	// ==================== COMPARISON ====================
	auth := r.Group("/api", handlers.AuthRequired(db))
	auth.POST("/compare", handlers.CompareVendors(compareService))
	auth.GET("/orders", handlers.GetAllOrderRequests(store, companyID))
	auth.GET("/orders/:id/results", handlers.GetComparisonResults(store, companyID))
	auth.GET("/orders/:id/export_excel", handlers.ExportComparisonExcel(store, companyID))
	auth.GET("/orders/:id/report_pdf", handlers.GenerateComparisonPDF(store, companyID))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}
	portInt, err := strconv.Atoi(port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
