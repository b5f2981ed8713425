package xlsxexport_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fiscaudit/internal/domain"
	"fiscaudit/internal/xlsxexport"
)

func readRows(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Analysis")
	require.NoError(t, err)
	return rows
}

func TestWrite_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsxexport.Write(&buf, nil))

	rows := readRows(t, &buf)
	require.Len(t, rows, 1)
	assert.Equal(t, "Source File", rows[0][0])
	assert.Equal(t, "Classification", rows[0][14])
	assert.Len(t, rows[0], 16)
}

func TestWrite_MatchedResult(t *testing.T) {
	results := []domain.ReconciledResult{{
		SourceFile:            "invoice_045.pdf",
		PageCount:             2,
		SourcePage:            1,
		ProviderTaxID:         "12.345.678/0001-90",
		DocumentType:          "nota fiscal",
		DocumentNumber:        "45",
		TotalAmount:           domain.AmountFromFloat(250),
		LedgerDocumentNumber:  "45",
		LedgerDeclaredAmount:  domain.AmountFromFloat(250),
		LedgerPaidTotal:       domain.AmountFromFloat(250),
		MatchType:             domain.MatchExact,
		DocumentInLedger:      domain.VerdictYes,
		PaidWithinDeclared:    domain.VerdictYes,
		AmountMatchesDeclared: domain.VerdictYes,
		Classification:        domain.ClassificationDiscarded,
	}}

	var buf bytes.Buffer
	require.NoError(t, xlsxexport.Write(&buf, results))

	rows := readRows(t, &buf)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "invoice_045.pdf", row[0])
	assert.Equal(t, "2", row[1])
	assert.Equal(t, "1", row[2])
	assert.Equal(t, "nota fiscal", row[4])
	assert.Equal(t, "250.00", row[6])
	assert.Equal(t, "45", row[7])
	assert.Equal(t, "exact", row[10])
	assert.Equal(t, "YES", row[11])
	assert.Equal(t, "Discarded", row[14])
}

func TestWrite_ErrorRow(t *testing.T) {
	results := []domain.ReconciledResult{{
		SourceFile:            "scan.pdf",
		PageCount:             1,
		LedgerDocumentNumber:  domain.Unavailable,
		MatchType:             domain.MatchNone,
		DocumentInLedger:      domain.VerdictUnavailable,
		PaidWithinDeclared:    domain.VerdictUnavailable,
		AmountMatchesDeclared: domain.VerdictUnavailable,
		Classification:        domain.ClassificationUnableToAnalyze,
		Error:                 "no invoice found",
	}}

	var buf bytes.Buffer
	require.NoError(t, xlsxexport.Write(&buf, results))

	rows := readRows(t, &buf)
	require.Len(t, rows, 2)

	row := rows[1]
	// Invoice columns stay blank; the verdicts and ledger columns still
	// carry their unavailable markers.
	assert.Empty(t, row[4])
	assert.Empty(t, row[5])
	assert.Equal(t, "unavailable", row[7])
	assert.Equal(t, "unavailable", row[8])
	assert.Equal(t, "unavailable", row[11])
	assert.Equal(t, "Unable to analyze", row[14])
	assert.Equal(t, "no invoice found", row[15])
}

func TestWrite_OrphanRow(t *testing.T) {
	results := []domain.ReconciledResult{{
		SourceFile:            "invoice.pdf",
		PageCount:             1,
		TotalAmount:           domain.Amount{},
		LedgerDocumentNumber:  "77",
		LedgerDeclaredAmount:  domain.AmountFromFloat(99.9),
		LedgerPaidTotal:       domain.AmountFromFloat(99.9),
		MatchType:             domain.MatchNone,
		DocumentInLedger:      domain.VerdictUnavailable,
		PaidWithinDeclared:    domain.VerdictUnavailable,
		AmountMatchesDeclared: domain.VerdictUnavailable,
		Classification:        domain.ClassificationUnableToAnalyze,
	}}

	var buf bytes.Buffer
	require.NoError(t, xlsxexport.Write(&buf, results))

	rows := readRows(t, &buf)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Empty(t, row[4])
	assert.Equal(t, "77", row[7])
	assert.Equal(t, "99.90", row[8])
	assert.Equal(t, "Unable to analyze", row[14])
}
