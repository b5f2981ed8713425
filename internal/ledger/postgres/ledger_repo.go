package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"fiscaudit/internal/domain"
	"fiscaudit/internal/port"
)

// documentKindInvoice is the expense ledger's kind discriminator for
// invoice-backed entries.
const documentKindInvoice = "1"

type ledgerRepo struct {
	db *sqlx.DB
}

// NewLedgerClient creates a PostgreSQL-backed LedgerClient over the
// expenses table.
func NewLedgerClient(db *sqlx.DB) port.LedgerClient {
	return &ledgerRepo{db: db}
}

type expenseRow struct {
	DocumentNumber sql.NullString `db:"document_number"`
	DeclaredAmount sql.NullString `db:"declared_amount"`
	PaidTotal      sql.NullString `db:"paid_total"`
}

// FindByDocument returns every declared-expense row recorded against the
// given source document, with payments summed per document number. The
// description column stores the document's file name, sometimes without the
// extension, so both spellings are queried.
func (r *ledgerRepo) FindByDocument(ctx context.Context, sourceName string) ([]domain.LedgerRow, error) {
	bare := strings.TrimSuffix(strings.TrimSuffix(sourceName, ".pdf"), ".PDF")

	query := `SELECT
		document_number,
		declared_amount::text AS declared_amount,
		SUM(paid_amount)::text AS paid_total
	FROM expenses
	WHERE document_kind = $1
	  AND (description = $2 OR UPPER(description) = UPPER($2)
	       OR description = $3 OR UPPER(description) = UPPER($3))
	GROUP BY description, document_number, declared_amount
	ORDER BY description, document_number`

	var rows []expenseRow
	err := r.db.SelectContext(ctx, &rows, query, documentKindInvoice, sourceName, bare)
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.FindByDocument: %w", err)
	}

	out := make([]domain.LedgerRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.LedgerRow{
			DocumentNumber: row.DocumentNumber.String,
			DeclaredAmount: nullableAmount(row.DeclaredAmount),
			PaidTotal:      nullableAmount(row.PaidTotal),
		})
	}
	return out, nil
}

func nullableAmount(v sql.NullString) domain.Amount {
	if !v.Valid {
		return domain.Amount{}
	}
	return domain.ParseAmount(v.String)
}
