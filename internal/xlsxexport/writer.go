package xlsxexport

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"fiscaudit/internal/domain"
)

const sheetName = "Analysis"

// columns defines the workbook header row (16 columns).
var columns = []string{
	"Source File",
	"Page Count",
	"Invoice Page",
	"Provider Tax ID",
	"Document Type",
	"Document Number",
	"Invoice Total",
	"Ledger Document Number",
	"Ledger Declared Amount",
	"Ledger Paid Total",
	"Match Type",
	"Document In Ledger?",
	"Paid Within Declared?",
	"Amount Matches Declared?",
	"Classification",
	"Notes",
}

// Write renders the result rows as a single-sheet xlsx workbook.
func Write(w io.Writer, results []domain.ReconciledResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range results {
		row := resultToRow(&results[i])
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("building cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// resultToRow converts one result to a 16-element row. Invoice columns stay
// blank on orphan and error rows; the three ledger columns and the verdicts
// always carry a value, with "unavailable" standing in for the unknown.
func resultToRow(r *domain.ReconciledResult) []string {
	row := make([]string, len(columns))

	row[0] = r.SourceFile
	row[1] = strconv.Itoa(r.PageCount)
	row[7] = r.LedgerDocumentNumber
	row[8] = r.LedgerDeclaredAmount.Display()
	row[9] = r.LedgerPaidTotal.Display()
	row[10] = string(r.MatchType)
	row[11] = string(r.DocumentInLedger)
	row[12] = string(r.PaidWithinDeclared)
	row[13] = string(r.AmountMatchesDeclared)
	row[14] = string(r.Classification)
	row[15] = r.Error

	if r.Error != "" || r.IsOrphan() {
		return row
	}

	if r.SourcePage > 0 {
		row[2] = strconv.Itoa(r.SourcePage)
	}
	row[3] = r.ProviderTaxID
	row[4] = r.DocumentType
	row[5] = r.DocumentNumber
	row[6] = r.TotalAmount.Display()
	return row
}
