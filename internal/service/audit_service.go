package service

import (
	"context"
	"fmt"
	"log"

	"fiscaudit/internal/domain"
	"fiscaudit/internal/pdfmeta"
	"fiscaudit/internal/port"
	"fiscaudit/internal/recon"
)

const defaultMaxFileSizeMB = 100

// AnalysisReport is the outcome of auditing one source document.
type AnalysisReport struct {
	Document domain.SourceDocument     `json:"document"`
	Results  []domain.ReconciledResult `json:"results"`
}

// AuditService drives the per-document audit pipeline: extraction, one
// ledger lookup per document, then reconciliation and classification.
type AuditService interface {
	AnalyzeDocument(ctx context.Context, name string, data []byte) (*AnalysisReport, error)
}

type auditService struct {
	extractor     port.InvoiceExtractor
	ledger        port.LedgerClient
	engine        *recon.Reconciler
	maxFileSizeMB int64
}

// NewAuditService creates a new AuditService implementation. ledger may be
// nil when no ledger is configured; every invoice then classifies with
// "unavailable" ledger fields.
func NewAuditService(
	extractor port.InvoiceExtractor,
	ledger port.LedgerClient,
	engine *recon.Reconciler,
	maxFileSizeMB int64,
) AuditService {
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = defaultMaxFileSizeMB
	}
	return &auditService{
		extractor:     extractor,
		ledger:        ledger,
		engine:        engine,
		maxFileSizeMB: maxFileSizeMB,
	}
}

// AnalyzeDocument audits one document. Upstream failures surface as
// error-sentinel result rows, never as an error return; the error return is
// reserved for caller mistakes (an empty payload).
func (s *auditService) AnalyzeDocument(ctx context.Context, name string, data []byte) (*AnalysisReport, error) {
	if len(data) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	doc := domain.SourceDocument{
		Name:      name,
		SizeBytes: int64(len(data)),
	}
	if pages, err := pdfmeta.PageCount(data); err != nil {
		log.Printf("auditService: counting pages of %s: %v", name, err)
	} else {
		doc.PageCount = pages
	}

	invoices := s.extract(ctx, doc, data)

	var rows []domain.LedgerRow
	if s.ledger != nil && hasValidRecord(invoices) {
		found, err := s.ledger.FindByDocument(ctx, name)
		if err != nil {
			// Ledger unavailability must not abort the document; the
			// invoices still classify, with verdict 1 = NO.
			log.Printf("auditService: ledger lookup for %s: %v", name, err)
		} else {
			rows = found
		}
	}

	report := &AnalysisReport{
		Document: doc,
		Results:  s.engine.Reconcile(doc, invoices, rows),
	}
	return report, nil
}

func (s *auditService) extract(ctx context.Context, doc domain.SourceDocument, data []byte) []domain.ExtractedInvoice {
	sizeMB := float64(doc.SizeBytes) / (1 << 20)
	if sizeMB > float64(s.maxFileSizeMB) {
		return []domain.ExtractedInvoice{{
			Error: fmt.Sprintf("document too large for analysis (%.2f MB - limit: %d MB)", sizeMB, s.maxFileSizeMB),
		}}
	}

	invoices, err := s.extractor.Extract(ctx, port.ExtractInput{
		FileBytes:   data,
		SourceName:  doc.Name,
		ContentType: "application/pdf",
	})
	if err != nil {
		log.Printf("auditService: extraction for %s: %v", doc.Name, err)
		return []domain.ExtractedInvoice{{
			Error: fmt.Sprintf("extraction failed: %v", err),
		}}
	}
	if len(invoices) == 0 {
		return []domain.ExtractedInvoice{{Error: "extraction returned no records"}}
	}
	return invoices
}

func hasValidRecord(invoices []domain.ExtractedInvoice) bool {
	for i := range invoices {
		if !invoices[i].IsError() {
			return true
		}
	}
	return false
}
