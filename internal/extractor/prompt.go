package extractor

// ErrorNoInvoiceFound is the error-sentinel message the extraction service
// returns when a document contains no invoice-class record.
const ErrorNoInvoiceFound = "no invoice found"

// BuildInvoiceExtractionPrompt returns the extraction prompt for invoice
// audit documents.
func BuildInvoiceExtractionPrompt() string {
	return `Analyze the provided PDF document and extract the data of ALL invoices found in it.

The following documents count as invoices:
- Invoice / tax invoice (any kind)
- DANFE (auxiliary document of an electronic invoice)
- Telecom carrier bills
- Utility bills (power, gas, water)

For EACH invoice found in the document, extract the following fields:

1. "source_page": page number where the invoice appears
2. "provider_id": service provider tax identification number (digits only)
3. "document_type": document category (Invoice, DANFE, Telecom Bill, Utility Bill, ...)
4. "document_number": the invoice number
5. "total_amount": the invoice total as a plain number, e.g. 1234.56

IMPORTANT:
- If the document contains MULTIPLE invoices, return a list with all of them.
- If NO invoice is found, return exactly: [{"error": "` + ErrorNoInvoiceFound + `"}]

Return ONLY a valid JSON array with no markdown formatting, no code fences, no explanation:

[
  {
    "source_page": 1,
    "provider_id": "12345678000190",
    "document_type": "DANFE",
    "document_number": "12345",
    "total_amount": 1500.00
  }
]`
}
