// Command batch audits a folder of invoice documents in one run and writes
// the combined results to a spreadsheet.
// Usage:
//
//	batch -dir ./invoices
//	batch -s3-bucket my-bucket -s3-prefix invoices/2026-08/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fiscaudit/internal/config"
	"fiscaudit/internal/domain"
	"fiscaudit/internal/extractor/gemini"
	"fiscaudit/internal/ledger/postgres"
	"fiscaudit/internal/recon"
	"fiscaudit/internal/service"
	s3storage "fiscaudit/internal/storage/s3"
	"fiscaudit/internal/xlsxexport"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dir := flag.String("dir", "", "local directory containing PDF documents")
	s3Bucket := flag.String("s3-bucket", "", "S3 bucket containing PDF documents")
	s3Prefix := flag.String("s3-prefix", "", "S3 key prefix to scan")
	out := flag.String("out", "", "output spreadsheet path (default audit_results_<timestamp>.xlsx)")
	flag.Parse()

	if *dir == "" && *s3Bucket == "" {
		flag.Usage()
		return fmt.Errorf("one of -dir or -s3-bucket is required")
	}
	if *dir != "" && *s3Bucket != "" {
		return fmt.Errorf("-dir and -s3-bucket are mutually exclusive")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	tolerance, err := decimal.NewFromString(cfg.Recon.AmountTolerance)
	if err != nil {
		return fmt.Errorf("invalid recon.amount_tolerance %q: %w", cfg.Recon.AmountTolerance, err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Batch runs attach the leftover ledger row to invoices without an exact
	// document-number match so a reviewer sees the pairing the ledger implies.
	engine := recon.NewReconciler(recon.Config{
		AmountTolerance:         tolerance,
		RecognizedDocumentTypes: cfg.Recon.RecognizedDocumentTypes,
		AllowFallbackMatch:      true,
	})

	auditSvc := service.NewAuditService(
		gemini.NewExtractor(&cfg.Extractor),
		postgres.NewLedgerClient(db),
		engine,
		cfg.Extractor.MaxFileSizeMB,
	)

	ctx := context.Background()

	docs, err := loadDocuments(ctx, cfg, *dir, *s3Bucket, *s3Prefix)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no PDF documents found")
	}
	log.Printf("Auditing %d documents", len(docs))

	var results []domain.ReconciledResult
	for _, doc := range docs {
		report, err := auditSvc.AnalyzeDocument(ctx, doc.name, doc.data)
		if err != nil {
			log.Printf("WARN: skipping %s: %v", doc.name, err)
			continue
		}
		results = append(results, report.Results...)
		log.Printf("Processed %s: %d rows", doc.name, len(report.Results))
	}

	outPath := *out
	if outPath == "" {
		outPath = fmt.Sprintf("audit_results_%s.xlsx", time.Now().Format("20060102_150405"))
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := xlsxexport.Write(f, results); err != nil {
		return fmt.Errorf("writing spreadsheet: %w", err)
	}

	log.Printf("Batch complete: %d result rows written to %s", len(results), outPath)
	return nil
}

type batchDocument struct {
	name string
	data []byte
}

func loadDocuments(ctx context.Context, cfg *config.Config, dir, bucket, prefix string) ([]batchDocument, error) {
	if dir != "" {
		return loadLocal(dir)
	}
	return loadS3(ctx, cfg, bucket, prefix)
}

func loadLocal(dir string) ([]batchDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]batchDocument, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		docs = append(docs, batchDocument{name: name, data: data})
	}
	return docs, nil
}

func loadS3(ctx context.Context, cfg *config.Config, bucket, prefix string) ([]batchDocument, error) {
	store, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("initializing object storage: %w", err)
	}

	keys, err := store.List(ctx, bucket, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing s3://%s/%s: %w", bucket, prefix, err)
	}

	var docs []batchDocument
	for _, key := range keys {
		if !strings.EqualFold(filepath.Ext(key), ".pdf") {
			continue
		}
		data, err := store.Download(ctx, bucket, key)
		if err != nil {
			return nil, fmt.Errorf("downloading %s: %w", key, err)
		}
		docs = append(docs, batchDocument{name: filepath.Base(key), data: data})
	}
	return docs, nil
}
