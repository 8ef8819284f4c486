// @title        HisaabKeeper API
// @version      1.0
// @description  GST invoicing for small Indian businesses.
// @BasePath     /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "hisaab/docs"
	"hisaab/internal/config"
	"hisaab/internal/email/noop"
	"hisaab/internal/email/ses"
	"hisaab/internal/handler"
	"hisaab/internal/port"
	"hisaab/internal/repository/postgres"
	"hisaab/internal/router"
	"hisaab/internal/service"
	"hisaab/internal/sharelink"
	s3storage "hisaab/internal/storage/s3"
	"hisaab/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	profileRepo := postgres.NewProfileRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)
	itemRepo := postgres.NewItemRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	receiptRepo := postgres.NewReceiptRepo(db)
	inwardRepo := postgres.NewInwardSupplyRepo(db)
	hsnRepo := postgres.NewHSNRepo(db)

	// HSN master is advisory; without it invoices carry no HSN warnings.
	var hsnLookup *validator.HSNLookup
	if entries, err := hsnRepo.LoadAll(context.Background()); err != nil {
		log.Printf("HSN master unavailable, rate warnings disabled: %v", err)
	} else {
		hsnLookup = validator.NewHSNLookup(entries)
		log.Printf("Loaded %d HSN entries", len(entries))
	}

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var mailer port.InvoiceMailer
	switch cfg.Email.Provider {
	case "ses":
		mailer, err = ses.NewSESMailer(&cfg.Email)
		if err != nil {
			return fmt.Errorf("failed to initialize SES mailer: %w", err)
		}
	default:
		mailer = noop.NewNoopMailer()
	}

	signer := sharelink.NewSigner(&cfg.Share)

	// Initialize services
	profileSvc := service.NewProfileService(profileRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	itemSvc := service.NewItemService(itemRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, profileRepo, customerRepo, itemRepo,
		s3Client, mailer, signer, hsnLookup, service.InvoiceSettingsFrom(cfg))
	ledgerSvc := service.NewLedgerService(receiptRepo, customerRepo)
	inwardSvc := service.NewInwardService(inwardRepo, cfg.Invoice.DateFormat)
	dashboardSvc := service.NewDashboardService(invoiceRepo, receiptRepo)

	// Setup router
	r := router.Setup(router.Handlers{
		Health:    handler.NewHealthHandler(db),
		Profile:   handler.NewProfileHandler(profileSvc),
		Customer:  handler.NewCustomerHandler(customerSvc),
		Item:      handler.NewItemHandler(itemSvc),
		Invoice:   handler.NewInvoiceHandler(invoiceSvc),
		Ledger:    handler.NewLedgerHandler(ledgerSvc),
		Inward:    handler.NewInwardHandler(inwardSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
