package domain

// FileType represents the allowed file types for analysis.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
}

// Verdict is the outcome of a single validation rule.
type Verdict string

const (
	VerdictYes         Verdict = "YES"
	VerdictNo          Verdict = "NO"
	VerdictUnavailable Verdict = Unavailable
)

// Classification is the final judgement for a result row.
type Classification string

const (
	// ClassificationDiscarded marks an invoice as consistent with the ledger
	// and dropped from further audit attention.
	ClassificationDiscarded Classification = "Discarded"
	// ClassificationSuspect marks an invoice that failed a check or could
	// not be fully verified against the ledger.
	ClassificationSuspect Classification = "Suspect"
	// ClassificationUnableToAnalyze marks records where no validation was
	// possible (extraction error or unrecognized document type).
	ClassificationUnableToAnalyze Classification = "Unable to analyze"
)

// MatchType records how a ledger row was attached to an invoice.
type MatchType string

const (
	MatchNone MatchType = "none"
	// MatchExact means the normalized document numbers are equal.
	MatchExact MatchType = "exact"
	// MatchFallback means an unmatched ledger row was attached for display
	// context only; the correspondence is not guaranteed.
	MatchFallback MatchType = "fallback"
)
