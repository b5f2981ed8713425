package port

import (
	"context"

	"fiscaudit/internal/domain"
)

// ExtractInput carries the data needed for invoice extraction.
type ExtractInput struct {
	FileBytes   []byte
	SourceName  string
	ContentType string
}

// InvoiceExtractor abstracts the multimodal extraction service. The returned
// slice is ordered as found in the document; a document without invoices
// yields a single error-sentinel record, not an error return. Errors are
// reserved for transport and contract failures.
type InvoiceExtractor interface {
	Extract(ctx context.Context, input ExtractInput) ([]domain.ExtractedInvoice, error)
}
