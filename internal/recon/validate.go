package recon

import (
	"strings"

	"github.com/shopspring/decimal"

	"fiscaudit/internal/domain"
)

// Candidate carries the already-normalized inputs for validating one
// extracted invoice against its matched ledger fields.
type Candidate struct {
	ExtractionError bool
	DocumentType    string
	TotalAmount     domain.Amount

	// LedgerDocumentNumber is empty when no ledger document number exists.
	LedgerDocumentNumber string
	LedgerDeclaredAmount domain.Amount
	LedgerPaidTotal      domain.Amount
}

// Verdicts is the outcome of the three-rule validation protocol.
type Verdicts struct {
	DocumentInLedger      domain.Verdict
	PaidWithinDeclared    domain.Verdict
	AmountMatchesDeclared domain.Verdict
	Classification        domain.Classification
}

// Validator applies the three-rule validation protocol. It is a pure
// decision tree: no I/O, no state beyond its configuration, re-evaluated
// from scratch on every call.
type Validator struct {
	tolerance       decimal.Decimal
	recognizedTypes []string
}

// NewValidator builds a Validator. tolerance bounds the verdict-3 amount
// comparison; recognizedTypes are matched case-insensitively as substrings
// of the extracted document type.
func NewValidator(tolerance decimal.Decimal, recognizedTypes []string) *Validator {
	types := make([]string, 0, len(recognizedTypes))
	for _, t := range recognizedTypes {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			types = append(types, t)
		}
	}
	return &Validator{tolerance: tolerance, recognizedTypes: types}
}

// RecognizesDocumentType reports whether the extracted document type
// contains any of the configured invoice-type substrings.
func (v *Validator) RecognizesDocumentType(docType string) bool {
	docType = strings.ToLower(strings.TrimSpace(docType))
	if docType == "" {
		return false
	}
	for _, t := range v.recognizedTypes {
		if strings.Contains(docType, t) {
			return true
		}
	}
	return false
}

// Validate produces the three verdicts and the final classification for one
// candidate. Any uncertainty beyond a clean all-YES pass classifies as
// Suspect, never as a silent pass.
func (v *Validator) Validate(c Candidate) Verdicts {
	if c.ExtractionError || !v.RecognizesDocumentType(c.DocumentType) {
		return Verdicts{
			DocumentInLedger:      domain.VerdictUnavailable,
			PaidWithinDeclared:    domain.VerdictUnavailable,
			AmountMatchesDeclared: domain.VerdictUnavailable,
			Classification:        domain.ClassificationUnableToAnalyze,
		}
	}

	// Verdict 1: the document exists in the ledger. Without it the
	// remaining checks are meaningless.
	if c.LedgerDocumentNumber == "" {
		return Verdicts{
			DocumentInLedger:      domain.VerdictNo,
			PaidWithinDeclared:    domain.VerdictUnavailable,
			AmountMatchesDeclared: domain.VerdictUnavailable,
			Classification:        domain.ClassificationSuspect,
		}
	}

	out := Verdicts{DocumentInLedger: domain.VerdictYes}

	// Verdict 2: total paid against the document does not exceed the
	// declared amount. Inclusive comparison, no tolerance.
	out.PaidWithinDeclared = domain.VerdictUnavailable
	if c.LedgerPaidTotal.Valid() && c.LedgerDeclaredAmount.Valid() {
		if c.LedgerPaidTotal.Decimal().LessThanOrEqual(c.LedgerDeclaredAmount.Decimal()) {
			out.PaidWithinDeclared = domain.VerdictYes
		} else {
			out.PaidWithinDeclared = domain.VerdictNo
		}
	}

	// Verdict 3: the invoice total equals the declared amount within the
	// configured tolerance (strict less-than, absorbing currency rounding).
	out.AmountMatchesDeclared = domain.VerdictUnavailable
	if c.TotalAmount.Valid() && c.LedgerDeclaredAmount.Valid() {
		diff := c.TotalAmount.Decimal().Sub(c.LedgerDeclaredAmount.Decimal()).Abs()
		if diff.LessThan(v.tolerance) {
			out.AmountMatchesDeclared = domain.VerdictYes
		} else {
			out.AmountMatchesDeclared = domain.VerdictNo
		}
	}

	if out.PaidWithinDeclared == domain.VerdictYes && out.AmountMatchesDeclared == domain.VerdictYes {
		out.Classification = domain.ClassificationDiscarded
	} else {
		out.Classification = domain.ClassificationSuspect
	}
	return out
}
