package port

import (
	"context"

	"fiscaudit/internal/domain"
)

// LedgerClient abstracts the system of record for declared expenses. One
// query serves all invoices extracted from the same source document. An
// empty slice is valid: no ledger activity for that document.
type LedgerClient interface {
	FindByDocument(ctx context.Context, sourceName string) ([]domain.LedgerRow, error)
}
