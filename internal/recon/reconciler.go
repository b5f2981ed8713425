package recon

import (
	"github.com/shopspring/decimal"

	"fiscaudit/internal/domain"
)

// DefaultRecognizedDocumentTypes is the built-in set of invoice-type
// substrings accepted by the validator when none are configured.
var DefaultRecognizedDocumentTypes = []string{
	"nota fiscal",
	"danfe",
	"fatura",
	"invoice",
	"utility bill",
	"telecom bill",
	"nf",
	"nfe",
	"nf-e",
}

// Config holds the tunables of the reconciliation engine.
type Config struct {
	// AmountTolerance bounds the invoice-total vs declared-amount
	// comparison (verdict 3).
	AmountTolerance decimal.Decimal
	// RecognizedDocumentTypes are case-insensitive substrings identifying
	// an extracted record as an invoice-class document.
	RecognizedDocumentTypes []string
	// AllowFallbackMatch attaches an unmatched ledger row to an invoice
	// with no exact match, for display context. Such rows are tagged
	// MatchFallback, never MatchExact.
	AllowFallbackMatch bool
}

// Reconciler combines extracted invoice records with ledger rows for one
// source document and classifies every record. It holds no mutable state
// between calls; documents are independent and result lists concatenate.
type Reconciler struct {
	validator     *Validator
	allowFallback bool
}

// NewReconciler builds a Reconciler from config, applying defaults for the
// recognized document types and the amount tolerance.
func NewReconciler(cfg Config) *Reconciler {
	tolerance := cfg.AmountTolerance
	if tolerance.IsZero() {
		tolerance = decimal.RequireFromString("0.01")
	}
	types := cfg.RecognizedDocumentTypes
	if len(types) == 0 {
		types = DefaultRecognizedDocumentTypes
	}
	return &Reconciler{
		validator:     NewValidator(tolerance, types),
		allowFallback: cfg.AllowFallbackMatch,
	}
}

// Reconcile runs the matcher and validator over every extracted invoice of
// one source document and appends unmatched ledger rows as orphan results.
// It never fails: malformed records classify as "Unable to analyze".
func (r *Reconciler) Reconcile(doc domain.SourceDocument, invoices []domain.ExtractedInvoice, rows []domain.LedgerRow) []domain.ReconciledResult {
	results := make([]domain.ReconciledResult, 0, len(invoices)+len(rows))
	set := newMatchSet(rows)

	for i := range invoices {
		inv := &invoices[i]
		if inv.IsError() {
			results = append(results, r.errorResult(doc, inv))
			continue
		}
		results = append(results, r.reconcileInvoice(doc, inv, set))
	}

	for _, row := range set.orphans() {
		results = append(results, r.orphanResult(doc, row))
	}
	return results
}

func (r *Reconciler) reconcileInvoice(doc domain.SourceDocument, inv *domain.ExtractedInvoice, set *matchSet) domain.ReconciledResult {
	number := NormalizeDocumentNumber(inv.DocumentNumber)

	res := domain.ReconciledResult{
		SourceFile:     doc.Name,
		PageCount:      doc.PageCount,
		SourcePage:     inv.SourcePage,
		ProviderTaxID:  inv.ProviderTaxID,
		DocumentType:   inv.DocumentType,
		DocumentNumber: number,
		TotalAmount:    inv.TotalAmount,
		MatchType:      domain.MatchNone,
	}

	row, ok := set.matchExact(number)
	if ok {
		res.MatchType = domain.MatchExact
	} else if r.allowFallback {
		if row, ok = set.takeFallback(); ok {
			res.MatchType = domain.MatchFallback
		}
	}

	if row != nil {
		res.LedgerDocumentNumber = row.DocumentNumber
		res.LedgerDeclaredAmount = row.DeclaredAmount
		res.LedgerPaidTotal = row.PaidTotal
	}

	verdicts := r.validator.Validate(Candidate{
		DocumentType:         inv.DocumentType,
		TotalAmount:          inv.TotalAmount,
		LedgerDocumentNumber: res.LedgerDocumentNumber,
		LedgerDeclaredAmount: res.LedgerDeclaredAmount,
		LedgerPaidTotal:      res.LedgerPaidTotal,
	})
	applyVerdicts(&res, verdicts)
	sealLedgerFields(&res)
	return res
}

func (r *Reconciler) errorResult(doc domain.SourceDocument, inv *domain.ExtractedInvoice) domain.ReconciledResult {
	res := domain.ReconciledResult{
		SourceFile: doc.Name,
		PageCount:  doc.PageCount,
		MatchType:  domain.MatchNone,
		Error:      inv.Error,
	}
	applyVerdicts(&res, r.validator.Validate(Candidate{ExtractionError: true}))
	sealLedgerFields(&res)
	return res
}

func (r *Reconciler) orphanResult(doc domain.SourceDocument, row domain.LedgerRow) domain.ReconciledResult {
	res := domain.ReconciledResult{
		SourceFile:           doc.Name,
		PageCount:            doc.PageCount,
		LedgerDocumentNumber: row.DocumentNumber,
		LedgerDeclaredAmount: row.DeclaredAmount,
		LedgerPaidTotal:      row.PaidTotal,
		MatchType:            domain.MatchNone,
	}
	// An orphan has no extracted document type, so validation lands on
	// "Unable to analyze" with every verdict unavailable.
	applyVerdicts(&res, r.validator.Validate(Candidate{
		LedgerDocumentNumber: row.DocumentNumber,
		LedgerDeclaredAmount: row.DeclaredAmount,
		LedgerPaidTotal:      row.PaidTotal,
	}))
	sealLedgerFields(&res)
	return res
}

func applyVerdicts(res *domain.ReconciledResult, v Verdicts) {
	res.DocumentInLedger = v.DocumentInLedger
	res.PaidWithinDeclared = v.PaidWithinDeclared
	res.AmountMatchesDeclared = v.AmountMatchesDeclared
	res.Classification = v.Classification
}

// sealLedgerFields guarantees the exported invariant: the ledger document
// number is never blank on a result row.
func sealLedgerFields(res *domain.ReconciledResult) {
	if res.LedgerDocumentNumber == "" {
		res.LedgerDocumentNumber = domain.Unavailable
	}
}
