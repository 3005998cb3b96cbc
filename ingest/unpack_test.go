package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

func staticParser(parsed *ParsedEmail) EmailParser {
	return func([]byte) (*ParsedEmail, error) { return parsed, nil }
}

func failingParser(err error) EmailParser {
	return func([]byte) (*ParsedEmail, error) { return nil, err }
}

func TestExpandPassesThroughRegularFiles(t *testing.T) {
	u := &Unpacker{}
	in := []models.StagedFile{
		{Name: "slip.pdf", ContentType: "application/pdf", Data: []byte("pdf")},
		{Name: "notes.txt", ContentType: "text/plain", Data: []byte("txt")},
	}

	out := u.Expand(in)
	assert.Equal(t, in, out)
}

func TestExpandEmlIntoBodyAndAttachments(t *testing.T) {
	u := &Unpacker{
		ParseEml: staticParser(&ParsedEmail{
			Body: "Please find the slip attached.",
			Attachments: []models.StagedFile{
				{Name: "slip.pdf", ContentType: "application/pdf", Data: []byte("pdf")},
			},
		}),
	}

	out := u.Expand([]models.StagedFile{{Name: "submission.eml", Data: []byte("raw")}})
	require.Len(t, out, 2)
	assert.Equal(t, "submission.eml_body.txt", out[0].Name)
	assert.Equal(t, "text/plain", out[0].ContentType)
	assert.Equal(t, "Please find the slip attached.", string(out[0].Data))
	assert.Equal(t, "slip.pdf", out[1].Name)
}

func TestExpandEmlEmptyBodyUsesPlaceholder(t *testing.T) {
	u := &Unpacker{ParseEml: staticParser(&ParsedEmail{})}

	out := u.Expand([]models.StagedFile{{Name: "empty.eml", Data: []byte("raw")}})
	require.Len(t, out, 1)
	assert.Equal(t, noBodyPlaceholder, string(out[0].Data))
}

func TestExpandEmlParseFailureFallsBackToPlainText(t *testing.T) {
	u := &Unpacker{ParseEml: failingParser(errors.New("boom"))}
	raw := []byte("From: someone\n\nbody text")

	out := u.Expand([]models.StagedFile{{Name: "broken.eml", ContentType: "message/rfc822", Data: raw}})
	require.Len(t, out, 1, "a parse failure must yield exactly one file")
	assert.Equal(t, "broken.eml", out[0].Name)
	assert.Equal(t, "text/plain", out[0].ContentType)
	assert.Equal(t, raw, out[0].Data)
}

func TestExpandMsgParseFailurePassesOriginalThrough(t *testing.T) {
	u := &Unpacker{ParseMsg: failingParser(errors.New("not an OLE file"))}
	original := models.StagedFile{Name: "broken.msg", ContentType: "application/vnd.ms-outlook", Data: []byte{0x01, 0x02}}

	out := u.Expand([]models.StagedFile{original})
	require.Len(t, out, 1)
	assert.Equal(t, original, out[0])
}

func TestExpandNilParserFallsBack(t *testing.T) {
	u := &Unpacker{}

	out := u.Expand([]models.StagedFile{{Name: "mail.eml", ContentType: "message/rfc822", Data: []byte("raw")}})
	require.Len(t, out, 1)
	assert.Equal(t, "text/plain", out[0].ContentType)
}

func TestExpandPreservesOrderAndContiguity(t *testing.T) {
	u := &Unpacker{
		ParseEml: staticParser(&ParsedEmail{
			Body: "body",
			Attachments: []models.StagedFile{
				{Name: "a.pdf", ContentType: "application/pdf", Data: []byte("a")},
				{Name: "b.pdf", ContentType: "application/pdf", Data: []byte("b")},
			},
		}),
	}

	out := u.Expand([]models.StagedFile{
		{Name: "first.txt", ContentType: "text/plain", Data: []byte("1")},
		{Name: "mail.eml", Data: []byte("raw")},
		{Name: "last.txt", ContentType: "text/plain", Data: []byte("2")},
	})

	names := make([]string, len(out))
	for i, f := range out {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"first.txt", "mail.eml_body.txt", "a.pdf", "b.pdf", "last.txt"}, names)
}

func TestParseEmlEnvelope(t *testing.T) {
	raw := []byte("From: broker@example.com\r\n" +
		"To: underwriting@example.com\r\n" +
		"Subject: Submission\r\n" +
		"Content-Type: text/plain; charset=us-ascii\r\n" +
		"\r\n" +
		"Please review the attached slip.\r\n")

	parsed, err := parseEmlEnvelope(raw)
	require.NoError(t, err)
	assert.Contains(t, parsed.Body, "Please review the attached slip.")
	assert.Empty(t, parsed.Attachments)
}
