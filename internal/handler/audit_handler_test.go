package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fiscaudit/internal/domain"
	"fiscaudit/internal/handler"
	"fiscaudit/internal/service"
	"fiscaudit/mocks"
)

func multipartPDF(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func sampleReport(name string) *service.AnalysisReport {
	return &service.AnalysisReport{
		Document: domain.SourceDocument{Name: name, PageCount: 1, SizeBytes: 21},
		Results: []domain.ReconciledResult{{
			SourceFile:            name,
			PageCount:             1,
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
		}},
	}
}

func TestAuditHandler_Analyze_Success(t *testing.T) {
	mockSvc := new(mocks.MockAuditService)
	h := handler.NewAuditHandler(mockSvc)

	mockSvc.On("AnalyzeDocument", mock.Anything, "invoice_045.pdf", mock.Anything).
		Return(sampleReport("invoice_045.pdf"), nil)

	body, contentType := multipartPDF(t, "file", "invoice_045.pdf", []byte("%PDF-1.4 test content"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/audits", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Analyze(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestAuditHandler_Analyze_XLSXFormat(t *testing.T) {
	mockSvc := new(mocks.MockAuditService)
	h := handler.NewAuditHandler(mockSvc)

	mockSvc.On("AnalyzeDocument", mock.Anything, "invoice_045.pdf", mock.Anything).
		Return(sampleReport("invoice_045.pdf"), nil)

	body, contentType := multipartPDF(t, "file", "invoice_045.pdf", []byte("%PDF-1.4 test content"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/audits?format=xlsx", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Analyze(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestAuditHandler_Analyze_NoFile(t *testing.T) {
	mockSvc := new(mocks.MockAuditService)
	h := handler.NewAuditHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/audits", nil)

	h.Analyze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "AnalyzeDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuditHandler_Analyze_NonPDF(t *testing.T) {
	mockSvc := new(mocks.MockAuditService)
	h := handler.NewAuditHandler(mockSvc)

	body, contentType := multipartPDF(t, "file", "notes.txt", []byte("plain text"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/audits", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Analyze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
	mockSvc.AssertNotCalled(t, "AnalyzeDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuditHandler_Analyze_EmptyDocument(t *testing.T) {
	mockSvc := new(mocks.MockAuditService)
	h := handler.NewAuditHandler(mockSvc)

	mockSvc.On("AnalyzeDocument", mock.Anything, "empty.pdf", mock.Anything).
		Return(nil, domain.ErrEmptyDocument)

	body, contentType := multipartPDF(t, "file", "empty.pdf", []byte{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/audits", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Analyze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "EMPTY_DOCUMENT", resp.Error.Code)
}

func TestAuditHandler_Analyze_ServiceFailure(t *testing.T) {
	mockSvc := new(mocks.MockAuditService)
	h := handler.NewAuditHandler(mockSvc)

	mockSvc.On("AnalyzeDocument", mock.Anything, "invoice.pdf", mock.Anything).
		Return(nil, assert.AnError)

	body, contentType := multipartPDF(t, "file", "invoice.pdf", []byte("%PDF-1.4"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/audits", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Analyze(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
