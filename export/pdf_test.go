package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

func TestWritePDFProducesDocument(t *testing.T) {
	summary := "Recent expansion news."
	news := &models.NewsData{
		Summary:   &summary,
		Citations: []models.Citation{{Title: "Acme expands", URI: "https://news.example/acme"}},
	}

	var buf bytes.Buffer
	err := WritePDF(&buf, sampleRecord(), news, DefaultPDFConfig())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"), "output must be a PDF document")
	assert.Greater(t, buf.Len(), 1000)
}

func TestWritePDFWithEmptyRecordAndNoNews(t *testing.T) {
	data := &models.ExtractedData{}
	data.Normalize()

	var buf bytes.Buffer
	err := WritePDF(&buf, data, nil, DefaultPDFConfig())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}

func TestWritePDFCoverPageConfig(t *testing.T) {
	cfg := DefaultPDFConfig()
	cfg.UseCustomCoverPage = true
	cfg.PolicyNumber = "POL-2026-001"
	cfg.UnderwriterName = "M. Rossi"

	var buf bytes.Buffer
	err := WritePDF(&buf, sampleRecord(), nil, cfg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}

func TestPDFFilename(t *testing.T) {
	assert.Equal(t, "Acme_S.p.A._Risk_Report.pdf", PDFFilename(sampleRecord()))

	empty := &models.ExtractedData{}
	empty.Normalize()
	assert.Equal(t, "N/A_Risk_Report.pdf", PDFFilename(empty))
}
