package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mattiafranchi89-debug/Mattia-UW/export"
	"github.com/mattiafranchi89-debug/Mattia-UW/session"
)

// ExportHandler handles HTTP requests for the record export formats.
type ExportHandler struct {
	session *session.Session
}

// NewExportHandler creates a new export handler
func NewExportHandler(s *session.Session) *ExportHandler {
	return &ExportHandler{session: s}
}

// ExportCSV handles GET /api/export/csv
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	record, _, ok := h.session.Record()
	if !ok {
		respondNoRecord(c)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, record); err != nil {
		respondExportError(c, "CSV_EXPORT_FAILED", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.CSVFilename(record)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportPDF handles POST /api/export/pdf
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	record, _, ok := h.session.Record()
	if !ok {
		respondNoRecord(c)
		return
	}

	cfg := export.DefaultPDFConfig()
	if err := c.ShouldBindJSON(&cfg); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PDF_CONFIG",
				"message": err.Error(),
			},
		})
		return
	}

	news, _ := h.session.News()
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, record, news, cfg); err != nil {
		respondExportError(c, "PDF_EXPORT_FAILED", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.PDFFilename(record)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// DraftEmail handles POST /api/email/draft
func (h *ExportHandler) DraftEmail(c *gin.Context) {
	record, _, ok := h.session.Record()
	if !ok {
		respondNoRecord(c)
		return
	}

	draft, err := export.DraftMissingDataEmail(record)
	if err != nil {
		respondExportError(c, "EMAIL_DRAFT_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    draft,
	})
}

func respondExportError(c *gin.Context, code string, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}
