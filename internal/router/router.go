package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"hisaab/internal/handler"
	"hisaab/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health    *handler.HealthHandler
	Profile   *handler.ProfileHandler
	Customer  *handler.CustomerHandler
	Item      *handler.ItemHandler
	Invoice   *handler.InvoiceHandler
	Ledger    *handler.LedgerHandler
	Inward    *handler.InwardHandler
	Dashboard *handler.DashboardHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Links sent to buyers
	r.GET("/public/invoices/:token", h.Invoice.SharedPDF)

	v1 := r.Group("/api/v1")

	v1.GET("/dashboard", h.Dashboard.Get)

	v1.GET("/profile", h.Profile.Get)
	v1.PUT("/profile", h.Profile.Update)

	customers := v1.Group("/customers")
	customers.POST("", h.Customer.Create)
	customers.GET("", h.Customer.List)
	customers.POST("/import", h.Customer.Import)
	customers.GET("/export", h.Customer.Export)
	customers.GET("/template", h.Customer.Template)
	customers.GET("/:id", h.Customer.GetByID)
	customers.PUT("/:id", h.Customer.Update)
	customers.DELETE("/:id", h.Customer.Delete)
	customers.GET("/:id/ledger", h.Ledger.CustomerLedger)

	items := v1.Group("/items")
	items.POST("", h.Item.Create)
	items.GET("", h.Item.List)
	items.GET("/:id", h.Item.GetByID)
	items.PUT("/:id", h.Item.Update)
	items.DELETE("/:id", h.Item.Delete)

	invoices := v1.Group("/invoices")
	invoices.POST("", h.Invoice.Generate)
	invoices.GET("", h.Invoice.List)
	invoices.POST("/preview", h.Invoice.Preview)
	invoices.GET("/next-number", h.Invoice.NextNumber)
	invoices.GET("/export", h.Invoice.ExportCSV)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.GET("/:id/pdf", h.Invoice.PDF)
	invoices.POST("/:id/share", h.Invoice.Share)

	v1.POST("/receipts", h.Ledger.RecordReceipt)
	v1.GET("/ledger/balances", h.Ledger.Balances)

	inward := v1.Group("/inward")
	inward.POST("", h.Inward.Record)
	inward.GET("", h.Inward.List)
	inward.GET("/export", h.Inward.Export)
	inward.DELETE("/:id", h.Inward.Delete)

	return r
}
