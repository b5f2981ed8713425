package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SourceDocument identifies one uploaded document under analysis.
type SourceDocument struct {
	Name      string `json:"name"`
	PageCount int    `json:"page_count"`
	SizeBytes int64  `json:"size_bytes"`
}

// ExtractedInvoice is one invoice found in a source document by the
// extraction service. When Error is set the record is an error sentinel and
// every other field is meaningless.
type ExtractedInvoice struct {
	SourcePage     int    `json:"source_page,omitempty"`
	ProviderTaxID  string `json:"provider_id,omitempty"`
	DocumentType   string `json:"document_type,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	TotalAmount    Amount `json:"total_amount,omitempty"`
	Error          string `json:"error,omitempty"`
}

// IsError reports whether the record is the extraction error sentinel.
func (e *ExtractedInvoice) IsError() bool { return e.Error != "" }

// UnmarshalJSON tolerates the extraction model swapping numbers and strings:
// document_number and provider_id coerce to strings, source_page to an int.
// A mistyped field must not sink the record, let alone its siblings.
func (e *ExtractedInvoice) UnmarshalJSON(data []byte) error {
	var aux struct {
		SourcePage     json.RawMessage `json:"source_page"`
		ProviderTaxID  json.RawMessage `json:"provider_id"`
		DocumentType   string          `json:"document_type"`
		DocumentNumber json.RawMessage `json:"document_number"`
		TotalAmount    Amount          `json:"total_amount"`
		Error          string          `json:"error"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.SourcePage = coerceInt(aux.SourcePage)
	e.ProviderTaxID = coerceString(aux.ProviderTaxID)
	e.DocumentType = aux.DocumentType
	e.DocumentNumber = coerceString(aux.DocumentNumber)
	e.TotalAmount = aux.TotalAmount
	e.Error = aux.Error
	return nil
}

// coerceString reads a JSON string or number as a string; anything else
// (null, absent, structured values) becomes "".
func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// coerceInt reads a JSON number or numeric string as an int, 0 otherwise.
func coerceInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var i int
	if err := json.Unmarshal(raw, &i); err == nil {
		return i
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return v
		}
	}
	return 0
}

// LedgerRow is one declared-expense row returned by the ledger query for a
// source document. DocumentNumber is empty when the ledger has no number
// recorded. Rows are read-only once built.
type LedgerRow struct {
	DocumentNumber string
	DeclaredAmount Amount
	PaidTotal      Amount
}

// ReconciledResult is the flat, export-ready outcome for one extracted
// invoice or one orphan ledger row. The three ledger fields and the three
// verdicts always carry defined values; "unavailable" stands in for
// anything that could not be determined.
type ReconciledResult struct {
	SourceFile string `json:"source_file"`
	PageCount  int    `json:"page_count"`

	// Extraction fields; blank on orphan rows.
	SourcePage     int    `json:"source_page,omitempty"`
	ProviderTaxID  string `json:"provider_id,omitempty"`
	DocumentType   string `json:"document_type,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	TotalAmount    Amount `json:"total_amount"`

	// Matched ledger fields.
	LedgerDocumentNumber string    `json:"ledger_document_number"`
	LedgerDeclaredAmount Amount    `json:"ledger_declared_amount"`
	LedgerPaidTotal      Amount    `json:"ledger_paid_total"`
	MatchType            MatchType `json:"match_type"`

	// Verdicts and final judgement.
	DocumentInLedger      Verdict        `json:"document_in_ledger"`
	PaidWithinDeclared    Verdict        `json:"paid_within_declared"`
	AmountMatchesDeclared Verdict        `json:"amount_matches_declared"`
	Classification        Classification `json:"classification"`

	// Error carries the extraction failure message on error rows.
	Error string `json:"error,omitempty"`
}

// IsOrphan reports whether the row represents a ledger record with no
// corresponding extracted invoice.
func (r *ReconciledResult) IsOrphan() bool {
	return r.Error == "" && r.DocumentType == "" && r.DocumentNumber == ""
}
