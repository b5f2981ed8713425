package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fiscaudit/internal/domain"
	"fiscaudit/internal/service"
	"fiscaudit/internal/xlsxexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AuditHandler handles document audit endpoints.
type AuditHandler struct {
	auditService service.AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// Analyze handles POST /api/v1/audits. It accepts a multipart PDF upload
// and returns the classified result rows as JSON, or as an xlsx workbook
// when format=xlsx is requested.
func (h *AuditHandler) Analyze(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if !isPDF(header.Filename, header.Header.Get("Content-Type")) {
		HandleError(c, domain.ErrUnsupportedFileType)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}

	report, err := h.auditService.AnalyzeDocument(c.Request.Context(), header.Filename, data)
	if err != nil {
		HandleError(c, err)
		return
	}

	if c.Query("format") == "xlsx" {
		h.respondXLSX(c, report)
		return
	}
	RespondOK(c, report)
}

func (h *AuditHandler) respondXLSX(c *gin.Context, report *service.AnalysisReport) {
	var buf bytes.Buffer
	if err := xlsxexport.Write(&buf, report.Results); err != nil {
		HandleError(c, err)
		return
	}
	name := fmt.Sprintf("audit_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func isPDF(filename, contentType string) bool {
	if _, ok := domain.AllowedContentTypes[contentType]; ok {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}
