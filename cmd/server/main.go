package main

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/01infinito/facturacion-api/internal/config"
	"github.com/01infinito/facturacion-api/internal/database"
	"github.com/01infinito/facturacion-api/internal/handler"
	"github.com/01infinito/facturacion-api/internal/logger"
	"github.com/01infinito/facturacion-api/internal/pdf"
	"github.com/01infinito/facturacion-api/internal/repository"
	"github.com/01infinito/facturacion-api/internal/server"
	"github.com/01infinito/facturacion-api/internal/service"
)

// @title Facturación API
// @version 1.0
// @description Invoice management backend: customers, service catalog, invoices and PDF export.
// @BasePath /v1
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := logger.Setup(logger.LogConfig{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logging")
	}

	db, err := database.NewPostgresDB(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	customerRepo := repository.NewPostgresCustomerRepository(db.GetPool())
	serviceRepo := repository.NewPostgresServiceRepository(db.GetPool())
	invoiceRepo := repository.NewPostgresInvoiceRepository(db.GetPool())

	// The renderer is configured once at startup; issuer and draft-notes
	// overrides from the environment replace the built-in blocks.
	renderer := pdf.NewRenderer(pdf.DefaultRenderConfig())
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, renderer)
	if len(cfg.IssuerLines) > 0 || cfg.IssuerContact != "" {
		issuer := pdf.DefaultIssuer()
		if len(cfg.IssuerLines) > 0 {
			issuer.Lines = cfg.IssuerLines
		}
		if cfg.IssuerContact != "" {
			issuer.ContactPerson = cfg.IssuerContact
		}
		invoiceService.WithIssuer(issuer)
	}
	if len(cfg.DraftNotes) > 0 {
		invoiceService.WithDraftNotes(strings.Join(cfg.DraftNotes, "\n"))
	}

	appServer := server.NewServer(cfg,
		handler.NewCustomerHandler(customerRepo),
		handler.NewServiceHandler(serviceRepo),
		handler.NewInvoiceHandler(invoiceService),
	)

	if err := appServer.Start(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}

	log.Info().Msg("server shutdown complete")
}
