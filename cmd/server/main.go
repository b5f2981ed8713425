package main

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"fiscaudit/internal/config"
	"fiscaudit/internal/extractor/gemini"
	"fiscaudit/internal/handler"
	"fiscaudit/internal/ledger/postgres"
	"fiscaudit/internal/recon"
	"fiscaudit/internal/router"
	"fiscaudit/internal/service"
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

	tolerance, err := decimal.NewFromString(cfg.Recon.AmountTolerance)
	if err != nil {
		return fmt.Errorf("invalid recon.amount_tolerance %q: %w", cfg.Recon.AmountTolerance, err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ledgerClient := postgres.NewLedgerClient(db)

	extractor := gemini.NewExtractor(&cfg.Extractor)

	engine := recon.NewReconciler(recon.Config{
		AmountTolerance:         tolerance,
		RecognizedDocumentTypes: cfg.Recon.RecognizedDocumentTypes,
		AllowFallbackMatch:      cfg.Recon.AllowFallbackMatch,
	})

	auditSvc := service.NewAuditService(extractor, ledgerClient, engine, cfg.Extractor.MaxFileSizeMB)

	auditH := handler.NewAuditHandler(auditSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(auditH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
