package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

// PDFConfig selects which sections of the report to render and the optional
// cover page metadata.
type PDFConfig struct {
	IncludeRiskSummary             bool   `json:"includeRiskSummary"`
	IncludeLatestNews              bool   `json:"includeLatestNews"`
	IncludeAnagrafica              bool   `json:"includeAnagrafica"`
	IncludePropertyDetails         bool   `json:"includePropertyDetails"`
	IncludeGeneralLiabilityDetails bool   `json:"includeGeneralLiabilityDetails"`
	IncludeProductLiabilityDetails bool   `json:"includeProductLiabilityDetails"`
	IncludeSublimits               bool   `json:"includeSublimits"`
	IncludeBuildingDetails         bool   `json:"includeBuildingDetails"`
	UseCustomCoverPage             bool   `json:"useCustomCoverPage"`
	PolicyNumber                   string `json:"policyNumber"`
	UnderwriterName                string `json:"underwriterName"`
}

// DefaultPDFConfig includes every data section and no custom cover metadata.
func DefaultPDFConfig() PDFConfig {
	return PDFConfig{
		IncludeRiskSummary:             true,
		IncludeLatestNews:              true,
		IncludeAnagrafica:              true,
		IncludePropertyDetails:         true,
		IncludeGeneralLiabilityDetails: true,
		IncludeProductLiabilityDetails: true,
		IncludeSublimits:               true,
		IncludeBuildingDetails:         true,
	}
}

// sanitizePDF renders a value for the report, standing in "N/A" for absent
// ones.
func sanitizePDF(v any) string {
	if v == nil {
		return "N/A"
	}
	return formatValue(v)
}

type pdfReport struct {
	doc    *gofpdf.Fpdf
	margin float64
	entity string
	nextNo int
}

// WritePDF renders the record as a paginated A4 report: cover page, then one
// numbered subsection per included data section, with grid tables for the
// sublimits and the building schedule.
func WritePDF(out io.Writer, data *models.ExtractedData, news *models.NewsData, cfg PDFConfig) error {
	doc := gofpdf.New("P", "pt", "A4", "")
	r := &pdfReport{doc: doc, margin: 40, entity: sanitizePDF(deref(data.Anagrafica.EntityName)), nextNo: 1}
	doc.SetMargins(r.margin, r.margin, r.margin)
	doc.AliasNbPages("")

	footerEntity := r.entity
	if footerEntity == "N/A" {
		footerEntity = "Risk Report"
	}
	doc.SetFooterFunc(func() {
		doc.SetY(-30)
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(150, 150, 150)
		doc.CellFormat(0, 10, footerEntity, "", 0, "L", false, 0, "")
		doc.SetX(-200)
		doc.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", doc.PageNo()), "", 0, "R", false, 0, "")
	})

	r.coverPage(cfg)
	doc.AddPage()

	if cfg.IncludeRiskSummary {
		r.sectionTitle("Risk Summary")
		r.paragraph(sanitizePDF(deref(data.RiskSummary.RiskSummary)))
	}
	if cfg.IncludeLatestNews && news != nil {
		r.newsSection(news)
	}
	if cfg.IncludeAnagrafica {
		keyValueSection(r, "General Information", anagraficaFields, &data.Anagrafica, "", nil)
	}
	if cfg.IncludePropertyDetails {
		keyValueSection(r, "Property Details", propertyFields, &data.PropertyDetails,
			"Property Notes", data.PropertyDetails.PropertyNotes)
	}
	if cfg.IncludeGeneralLiabilityDetails {
		keyValueSection(r, "General Liability Details", generalLiabilityFields, &data.GeneralLiabilityDetails,
			"General Liability Notes", data.GeneralLiabilityDetails.GeneralLiabilityNotes)
	}
	if cfg.IncludeProductLiabilityDetails {
		keyValueSection(r, "Product Liability Details", productLiabilityFields, &data.ProductLiabilityDetails,
			"Product Liability Notes", data.ProductLiabilityDetails.ProductLiabilityNotes)
	}
	if cfg.IncludeSublimits && len(data.Sublimits) > 0 {
		r.sectionTitle("Sublimits")
		tableSection(r, sublimitColumns, data.Sublimits)
	}
	if cfg.IncludeBuildingDetails && len(data.BuildingDetails) > 0 {
		doc.AddPageFormat("L", gofpdf.SizeType{Wd: 595.28, Ht: 841.89})
		r.sectionTitle("Building Details")
		tableSection(r, buildingColumns, data.BuildingDetails)
	}

	return doc.Output(out)
}

// PDFFilename derives the download name from the entity, underscoring
// spaces.
func PDFFilename(data *models.ExtractedData) string {
	return underscored(sanitizePDF(deref(data.Anagrafica.EntityName))) + "_Risk_Report.pdf"
}

func (r *pdfReport) coverPage(cfg PDFConfig) {
	doc := r.doc
	doc.AddPage()
	pageW, pageH := doc.GetPageSize()

	doc.SetFont("Helvetica", "B", 28)
	doc.SetTextColor(45, 55, 72)
	doc.SetXY(0, 150)
	doc.CellFormat(pageW, 30, "Risk Assessment Report", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 16)
	doc.SetTextColor(74, 85, 104)
	doc.SetXY(0, 200)
	doc.CellFormat(pageW, 20, "Prepared for: "+r.entity, "", 1, "C", false, 0, "")

	metaY := 250.0
	if cfg.UseCustomCoverPage {
		doc.SetFont("Helvetica", "", 11)
		if cfg.PolicyNumber != "" {
			doc.SetXY(0, metaY)
			doc.CellFormat(pageW, 14, "Policy Number: "+cfg.PolicyNumber, "", 1, "C", false, 0, "")
			metaY += 20
		}
		if cfg.UnderwriterName != "" {
			doc.SetXY(0, metaY)
			doc.CellFormat(pageW, 14, "Underwriter: "+cfg.UnderwriterName, "", 1, "C", false, 0, "")
		}
	}

	doc.SetFont("Helvetica", "", 11)
	doc.SetTextColor(150, 150, 150)
	doc.SetXY(0, pageH-100)
	doc.CellFormat(pageW, 14, "Generated on: "+time.Now().Format("02 Jan 2006"), "", 1, "C", false, 0, "")
}

func (r *pdfReport) sectionTitle(title string) {
	doc := r.doc
	if doc.GetY() > 700 {
		doc.AddPage()
	}
	doc.SetFont("Helvetica", "B", 18)
	doc.SetTextColor(210, 25, 47)
	doc.CellFormat(0, 24, fmt.Sprintf("%d. %s", r.nextNo, title), "", 1, "L", false, 0, "")
	doc.Ln(4)
	r.nextNo++
}

func (r *pdfReport) paragraph(text string) {
	if text == "N/A" || text == "" {
		return
	}
	doc := r.doc
	doc.SetFont("Helvetica", "", 11)
	doc.SetTextColor(45, 55, 72)
	doc.MultiCell(0, 14, text, "", "L", false)
	doc.Ln(10)
}

func (r *pdfReport) subheading(text string) {
	doc := r.doc
	doc.SetFont("Helvetica", "B", 14)
	doc.SetTextColor(45, 55, 72)
	doc.CellFormat(0, 18, text, "", 1, "L", false, 0, "")
	doc.Ln(2)
}

func (r *pdfReport) newsSection(news *models.NewsData) {
	r.sectionTitle("Latest News")
	doc := r.doc

	if summary := sanitizePDF(deref(news.Summary)); summary != "N/A" && summary != "" {
		r.subheading("Web Summary")
		r.paragraph(summary)
	}

	if len(news.Citations) > 0 {
		r.subheading("Recent Mentions")
		for _, citation := range news.Citations {
			doc.SetFont("Helvetica", "B", 11)
			doc.SetTextColor(45, 55, 72)
			title := citation.Title
			if title == "" {
				title = "N/A"
			}
			doc.MultiCell(0, 14, title, "", "L", false)
			if citation.URI != "" {
				doc.SetFont("Helvetica", "", 9)
				doc.SetTextColor(43, 108, 176)
				doc.WriteLinkString(12, citation.URI, citation.URI)
				doc.Ln(16)
			}
		}
	}
	doc.Ln(6)
}

// keyValueSection renders a label column and a value column for each field,
// with an optional trailing notes row.
func keyValueSection[T any](r *pdfReport, title string, fields []fieldSpec[T], section *T, notesLabel string, notes *string) {
	r.sectionTitle(title)
	doc := r.doc
	pageW, _ := doc.GetPageSize()
	valueWidth := pageW - r.margin*2 - 180

	row := func(label, value string) {
		if doc.GetY() > 760 {
			doc.AddPage()
		}
		y := doc.GetY()
		doc.SetFont("Helvetica", "B", 11)
		doc.SetTextColor(45, 55, 72)
		doc.CellFormat(180, 14, label+":", "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.SetTextColor(74, 85, 104)
		doc.SetXY(r.margin+180, y)
		doc.MultiCell(valueWidth, 14, value, "", "L", false)
	}

	for _, f := range fields {
		row(f.Label, sanitizePDF(f.Value(section)))
	}
	if notesLabel != "" && notes != nil && *notes != "" {
		row(notesLabel, *notes)
	}
	doc.Ln(14)
}

// tableSection renders a grid table with a filled header row.
func tableSection[T any](r *pdfReport, columns []fieldSpec[T], rows []T) {
	doc := r.doc
	pageW, _ := doc.GetPageSize()
	colWidth := (pageW - r.margin*2) / float64(len(columns))

	doc.SetFont("Helvetica", "B", 8)
	doc.SetFillColor(210, 25, 47)
	doc.SetTextColor(255, 255, 255)
	for _, col := range columns {
		doc.CellFormat(colWidth, 16, col.Label, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(45, 55, 72)
	for i := range rows {
		if doc.GetY() > 760 {
			doc.AddPage()
		}
		for _, col := range columns {
			doc.CellFormat(colWidth, 14, sanitizePDF(col.Value(&rows[i])), "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}
	doc.Ln(14)
}
