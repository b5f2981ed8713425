package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiscaudit/internal/domain"
)

func TestExtractedInvoice_UnmarshalJSON_CoercesMistypedFields(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want domain.ExtractedInvoice
	}{
		{
			name: "document number and provider id as numbers",
			in:   `{"source_page":1,"provider_id":12345678000190,"document_type":"nota fiscal","document_number":12345,"total_amount":1500.00}`,
			want: domain.ExtractedInvoice{
				SourcePage:     1,
				ProviderTaxID:  "12345678000190",
				DocumentType:   "nota fiscal",
				DocumentNumber: "12345",
				TotalAmount:    domain.AmountFromFloat(1500),
			},
		},
		{
			name: "source page as numeric string",
			in:   `{"source_page":"2","document_type":"invoice","document_number":"45","total_amount":"100.00"}`,
			want: domain.ExtractedInvoice{
				SourcePage:     2,
				DocumentType:   "invoice",
				DocumentNumber: "45",
				TotalAmount:    domain.ParseAmount("100.00"),
			},
		},
		{
			name: "null and absent fields",
			in:   `{"document_number":null,"total_amount":null}`,
			want: domain.ExtractedInvoice{},
		},
		{
			name: "error sentinel",
			in:   `{"error":"no invoice found"}`,
			want: domain.ExtractedInvoice{Error: "no invoice found"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got domain.ExtractedInvoice
			require.NoError(t, json.Unmarshal([]byte(c.in), &got))
			assert.Equal(t, c.want.SourcePage, got.SourcePage)
			assert.Equal(t, c.want.ProviderTaxID, got.ProviderTaxID)
			assert.Equal(t, c.want.DocumentType, got.DocumentType)
			assert.Equal(t, c.want.DocumentNumber, got.DocumentNumber)
			assert.Equal(t, c.want.TotalAmount.Display(), got.TotalAmount.Display())
			assert.Equal(t, c.want.Error, got.Error)
		})
	}
}

func TestExtractedInvoice_UnmarshalJSON_MistypedFieldKeepsSiblings(t *testing.T) {
	in := `[{"document_number":12345,"document_type":"invoice","total_amount":100},
	        {"document_number":"67","document_type":"invoice","total_amount":200}]`

	var invoices []domain.ExtractedInvoice
	require.NoError(t, json.Unmarshal([]byte(in), &invoices))
	require.Len(t, invoices, 2)
	assert.Equal(t, "12345", invoices[0].DocumentNumber)
	assert.Equal(t, "67", invoices[1].DocumentNumber)
}
