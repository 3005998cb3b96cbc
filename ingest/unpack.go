package ingest

import (
	"bytes"
	"errors"
	"log"
	"path/filepath"
	"strings"

	"github.com/jhillyerd/enmime"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

// noBodyPlaceholder stands in for a message with neither a text nor an HTML
// body, so the synthetic body file is never empty.
const noBodyPlaceholder = "No text body found in email."

// ParsedEmail is the unpacker's view of a message container: one body plus
// zero or more attachments.
type ParsedEmail struct {
	Body        string
	Attachments []models.StagedFile
}

// EmailParser parses one message container format. A nil parser means the
// capability is unavailable; it feeds the same fallback path as a parse
// failure.
type EmailParser func(data []byte) (*ParsedEmail, error)

// ErrParserUnavailable unifies "parser not wired" with "parser errored".
var ErrParserUnavailable = errors.New("message parser unavailable")

// Unpacker expands message-container files (.eml, .msg) into their body and
// attachments. Every other file passes through unchanged. Parsing never
// fails the batch: each input file always yields at least one output file.
type Unpacker struct {
	ParseEml EmailParser
	ParseMsg EmailParser
}

// NewUnpacker returns an unpacker wired with the enmime reader for .eml and
// the OLE compound-file reader for .msg.
func NewUnpacker() *Unpacker {
	return &Unpacker{
		ParseEml: parseEmlEnvelope,
		ParseMsg: parseMsgFile,
	}
}

// Expand flattens the staged file list, expanding each message container into
// a synthetic body file followed by its attachments. Output preserves input
// order and each input file's expansion is contiguous.
func (u *Unpacker) Expand(files []models.StagedFile) []models.StagedFile {
	out := make([]models.StagedFile, 0, len(files))
	for _, f := range files {
		out = append(out, u.expandOne(f)...)
	}
	return out
}

func (u *Unpacker) expandOne(f models.StagedFile) []models.StagedFile {
	switch strings.ToLower(filepath.Ext(f.Name)) {
	case ".eml":
		parsed, err := parseWith(u.ParseEml, f.Data)
		if err != nil {
			log.Printf("Warning: failed to parse email file %q: %v. Falling back to plain text.", f.Name, err)
			// .eml is a text-based container: a best-effort plain read
			// beats dropping the file.
			return []models.StagedFile{{Name: f.Name, ContentType: "text/plain", Data: f.Data}}
		}
		return materialize(f.Name, parsed)
	case ".msg":
		parsed, err := parseWith(u.ParseMsg, f.Data)
		if err != nil {
			log.Printf("Warning: failed to parse email file %q: %v. Passing the original file through.", f.Name, err)
			// Binary container: re-emitting raw bytes as text would corrupt
			// content, so pass the file through and let downstream reject it
			// with a clear error.
			return []models.StagedFile{f}
		}
		return materialize(f.Name, parsed)
	default:
		return []models.StagedFile{f}
	}
}

func parseWith(parser EmailParser, data []byte) (*ParsedEmail, error) {
	if parser == nil {
		return nil, ErrParserUnavailable
	}
	return parser(data)
}

// materialize turns a parsed message into the synthetic body file followed
// by its attachments, each under its own declared content type.
func materialize(name string, parsed *ParsedEmail) []models.StagedFile {
	body := parsed.Body
	if body == "" {
		body = noBodyPlaceholder
	}
	out := make([]models.StagedFile, 0, 1+len(parsed.Attachments))
	out = append(out, models.StagedFile{
		Name:        name + "_body.txt",
		ContentType: "text/plain",
		Data:        []byte(body),
	})
	out = append(out, parsed.Attachments...)
	return out
}

// parseEmlEnvelope reads an RFC 5322 message via enmime. The text body is
// preferred; the HTML body is used when no text body exists.
func parseEmlEnvelope(data []byte) (*ParsedEmail, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	body := env.Text
	if body == "" {
		body = env.HTML
	}
	parsed := &ParsedEmail{Body: body}
	for _, att := range env.Attachments {
		parsed.Attachments = append(parsed.Attachments, models.StagedFile{
			Name:        att.FileName,
			ContentType: att.ContentType,
			Data:        att.Content,
		})
	}
	return parsed, nil
}
