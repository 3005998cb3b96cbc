package export

import (
	"strings"
	"text/template"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

// EmailDraft is a ready-to-send follow-up message.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ValueMissing is the single predicate deciding whether a field needs to be
// requested from the broker. Null, empty string and zero all count as
// missing; a legitimate zero therefore triggers a request too, which is the
// safer direction for underwriting.
func ValueMissing(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case float64:
		return value == 0
	case int:
		return value == 0
	default:
		return false
	}
}

type missingSection struct {
	Title  string
	Fields []string
}

var missingBodyTemplate = template.Must(template.New("missing").Parse(
	`Dear Broker,

Thank you for sending over the documentation. To proceed with the underwriting process for {{.Entity}}, we kindly request the following missing or zero-value information:

{{range $i, $s := .Sections}}{{if $i}}

{{end}}{{$s.Title}}:
{{- range $s.Fields}}
- {{.}}{{end}}{{end}}

Please provide these details at your earliest convenience.

Best regards,
Your Underwriting Team`))

var completeBodyTemplate = template.Must(template.New("complete").Parse(
	`Dear Broker,

Thank you for sending over the documentation for {{.Entity}}. All primary data fields appear to be complete based on our initial review.

If you have any additional information to provide, please let us know.

Best regards,
Your Underwriting Team`))

func missingFields[T any](fields []fieldSpec[T], section *T) []string {
	var missing []string
	for _, f := range fields {
		if ValueMissing(f.Value(section)) {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

// DraftMissingDataEmail scans the four flat sections for missing values and
// drafts a broker follow-up listing them grouped by section. When nothing is
// missing the draft is a completeness confirmation instead.
func DraftMissingDataEmail(data *models.ExtractedData) (EmailDraft, error) {
	var sections []missingSection
	add := func(title string, fields []string) {
		if len(fields) > 0 {
			sections = append(sections, missingSection{Title: title, Fields: fields})
		}
	}
	add("General Information", missingFields(anagraficaFields, &data.Anagrafica))
	add("Property Details", missingFields(propertyFields, &data.PropertyDetails))
	add("General Liability Details", missingFields(generalLiabilityFields, &data.GeneralLiabilityDetails))
	add("Product Liability Details", missingFields(productLiabilityFields, &data.ProductLiabilityDetails))

	subjectEntity := data.EntityName()
	if subjectEntity == "" {
		subjectEntity = "N/A"
	}
	bodyEntity := data.EntityName()
	if bodyEntity == "" {
		bodyEntity = "your client"
	}

	var body strings.Builder
	var err error
	if len(sections) > 0 {
		err = missingBodyTemplate.Execute(&body, struct {
			Entity   string
			Sections []missingSection
		}{bodyEntity, sections})
	} else {
		err = completeBodyTemplate.Execute(&body, struct{ Entity string }{bodyEntity})
	}
	if err != nil {
		return EmailDraft{}, err
	}

	return EmailDraft{
		Subject: "Request for Information: Policy for " + subjectEntity,
		Body:    body.String(),
	}, nil
}
