package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

// formatValue renders one cell. Absent values become empty cells; numbers
// keep their shortest exact decimal form.
func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	default:
		return fmt.Sprint(value)
	}
}

// WriteCSV renders the record as the sectioned CSV layout: a risk summary
// block, a Field/Value table per flat section, and header-plus-rows tables
// for sublimits and buildings when present. Sections are separated by blank
// lines. Cells containing commas, quotes or newlines are quoted with
// embedded quotes doubled.
func WriteCSV(out io.Writer, data *models.ExtractedData) error {
	w := csv.NewWriter(out)

	write := func(record ...string) {
		w.Write(record)
	}

	write("Risk Summary")
	write(formatValue(deref(data.RiskSummary.RiskSummary)))
	write("")

	write("General Information (Anagrafica)")
	write("Field", "Value")
	for _, f := range anagraficaFields {
		write(f.Label, formatValue(f.Value(&data.Anagrafica)))
	}
	write("Data Status", formatValue(deref(data.Anagrafica.DataStatus)))
	write("")

	write("Property Details")
	write("Field", "Value")
	for _, f := range propertyFields {
		write(f.Label, formatValue(f.Value(&data.PropertyDetails)))
	}
	write("Property Notes", formatValue(deref(data.PropertyDetails.PropertyNotes)))
	write("Data Status", formatValue(deref(data.PropertyDetails.DataStatus)))
	write("")

	write("General Liability Details")
	write("Field", "Value")
	for _, f := range generalLiabilityFields {
		write(f.Label, formatValue(f.Value(&data.GeneralLiabilityDetails)))
	}
	write("General Liability Notes", formatValue(deref(data.GeneralLiabilityDetails.GeneralLiabilityNotes)))
	write("Data Status", formatValue(deref(data.GeneralLiabilityDetails.DataStatus)))
	write("")

	write("Product Liability Details")
	write("Field", "Value")
	for _, f := range productLiabilityFields {
		write(f.Label, formatValue(f.Value(&data.ProductLiabilityDetails)))
	}
	write("Product Liability Notes", formatValue(deref(data.ProductLiabilityDetails.ProductLiabilityNotes)))
	write("Data Status", formatValue(deref(data.ProductLiabilityDetails.DataStatus)))
	write("")

	if len(data.Sublimits) > 0 {
		write("Sublimits")
		w.Write(labels(sublimitColumns))
		for i := range data.Sublimits {
			row := make([]string, len(sublimitColumns))
			for j, col := range sublimitColumns {
				row[j] = formatValue(col.Value(&data.Sublimits[i]))
			}
			w.Write(row)
		}
		write("")
	}

	if len(data.BuildingDetails) > 0 {
		write("Building Details (Dettaglio Edifici)")
		w.Write(labels(buildingColumns))
		for i := range data.BuildingDetails {
			row := make([]string, len(buildingColumns))
			for j, col := range buildingColumns {
				row[j] = formatValue(col.Value(&data.BuildingDetails[i]))
			}
			w.Write(row)
		}
		write("")
	}

	w.Flush()
	return w.Error()
}

// CSVFilename derives the download name from the entity, underscoring
// spaces.
func CSVFilename(data *models.ExtractedData) string {
	if entity := data.EntityName(); entity != "" {
		return underscored(entity) + "_Underwriting_Data.csv"
	}
	return "underwriting_data.csv"
}
