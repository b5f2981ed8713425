package recon

import (
	"fiscaudit/internal/domain"
)

// FindExactMatch returns the index of the first ledger row whose normalized
// document number equals the given normalized invoice number, or -1. Rows
// with no recorded document number never match.
func FindExactMatch(normalizedNumber string, rows []domain.LedgerRow) int {
	for i := range rows {
		if rows[i].DocumentNumber == "" {
			continue
		}
		if NormalizeDocumentNumber(rows[i].DocumentNumber) == normalizedNumber {
			return i
		}
	}
	return -1
}

// matchSet tracks ledger row attachment over one source-document pass.
// Exact matches do not consume a row (two invoices may legitimately point at
// the same ledger entry); fallback attachment does, so each unmatched row is
// handed out at most once. Rows never selected become orphans.
type matchSet struct {
	rows     []domain.LedgerRow
	selected []bool
}

func newMatchSet(rows []domain.LedgerRow) *matchSet {
	return &matchSet{rows: rows, selected: make([]bool, len(rows))}
}

// matchExact selects the first row matching the normalized invoice number.
func (m *matchSet) matchExact(normalizedNumber string) (*domain.LedgerRow, bool) {
	idx := FindExactMatch(normalizedNumber, m.rows)
	if idx < 0 {
		return nil, false
	}
	m.selected[idx] = true
	return &m.rows[idx], true
}

// takeFallback consumes the first not-yet-selected row, if any.
func (m *matchSet) takeFallback() (*domain.LedgerRow, bool) {
	for i := range m.rows {
		if !m.selected[i] {
			m.selected[i] = true
			return &m.rows[i], true
		}
	}
	return nil, false
}

// orphans returns the rows never selected by any invoice, in ledger order.
func (m *matchSet) orphans() []domain.LedgerRow {
	var out []domain.LedgerRow
	for i := range m.rows {
		if !m.selected[i] {
			out = append(out, m.rows[i])
		}
	}
	return out
}
